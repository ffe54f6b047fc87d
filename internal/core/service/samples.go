package service

import (
	"time"

	"github.com/rooman-dev/agl-new/internal/core/ports"
)

const sampleAuthor = "AdsGeniusLab Team"

func samplePosts() []ports.CreatePostInput {
	date := func(s string) *time.Time {
		t, _ := time.Parse(time.DateOnly, s)
		return &t
	}

	return []ports.CreatePostInput{
		{
			Title:       "10 SEO Strategies to Boost Your Rankings",
			TitleAr:     "10 استراتيجيات لتحسين محركات البحث لتعزيز ترتيبك",
			Slug:        "seo-strategies",
			Excerpt:     "Proven SEO techniques that help your website rank higher in search results.",
			ExcerptAr:   "تقنيات مثبتة لتحسين محركات البحث تساعد موقعك على الظهور في مراتب أعلى.",
			Content:     "<h2>Introduction</h2><p>Search engine optimization keeps evolving. Focus on user experience, quality content and voice search.</p>",
			ContentAr:   "<h2>مقدمة</h2><p>يستمر تحسين محركات البحث في التطور.</p>",
			Category:    "SEO",
			Author:      sampleAuthor,
			ImageURL:    "/images/blog-1.jpg",
			PublishedAt: date("2024-11-01"),
			IsPublished: true,
		},
		{
			Title:       "The Role of Social Media Marketing in Modern Business Growth",
			TitleAr:     "دور التسويق عبر وسائل التواصل الاجتماعي في نمو الأعمال الحديثة",
			Slug:        "social-media-marketing-growth",
			Excerpt:     "How social media became a critical growth channel for brand visibility.",
			ExcerptAr:   "كيف أصبحت وسائل التواصل الاجتماعي قناة نمو حاسمة لبناء العلامة التجارية.",
			Content:     "<h2>The Power of Social Media</h2><p>Post consistently, engage with your audience and use paid reach.</p>",
			ContentAr:   "<h2>قوة وسائل التواصل الاجتماعي</h2><p>غيرت المنصات طريقة تواصل الشركات مع جمهورها.</p>",
			Category:    "Social Media",
			Author:      sampleAuthor,
			ImageURL:    "/images/blog-2.jpg",
			PublishedAt: date("2024-11-19"),
			IsPublished: true,
		},
		{
			Title:       "Content Marketing: How to Create Content That Converts",
			TitleAr:     "تسويق المحتوى: كيفية إنشاء محتوى يحقق التحويل",
			Slug:        "content-marketing-converts",
			Excerpt:     "Create valuable content that drives engagement and converts visitors into customers.",
			ExcerptAr:   "أنشئ محتوى قيما يدفع المشاركة ويحول الزوار إلى عملاء.",
			Content:     "<h2>Understanding Your Audience</h2><p>Effective content starts with your audience's needs and pain points.</p>",
			ContentAr:   "<h2>فهم جمهورك</h2><p>أساس تسويق المحتوى الفعال هو فهم احتياجات جمهورك.</p>",
			Category:    "Content",
			Author:      sampleAuthor,
			ImageURL:    "/images/blog-3.jpg",
			PublishedAt: date("2024-12-03"),
			IsPublished: true,
		},
	}
}
