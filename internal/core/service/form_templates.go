package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

type siteView struct {
	Name  string
	URL   string
	Phone string
}

type contactView struct {
	Site    siteView
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type consultationView struct {
	Site    siteView
	Name    string
	Email   string
	Phone   string
	Company string
	Website string
	Service string
	Budget  string
	Message string
}

// nl2br escapes s and turns line breaks into <br>.
func nl2br(s string) template.HTML {
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

// pair bundles a table label with its value for the "row" template.
func pair(label, value string) [2]string { return [2]string{label, value} }

var mailTemplates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"nl2br": nl2br,
	"pair":  pair,
}).Parse(`
{{define "contact_notice"}}<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<hr />
<h3>Message:</h3>
<p>{{nl2br .Message}}</p>
<hr />
<p><em>Sent from the {{.Site.Name}} website contact form</em></p>{{end}}

{{define "contact_ack"}}<h2>Thank you for reaching out, {{.Name}}!</h2>
<p>We have received your message and will get back to you within 24-48 hours.</p>
{{if .Site.URL}}<p>In the meantime, feel free to explore our services at <a href="{{.Site.URL}}">{{.Site.URL}}</a></p>{{end}}
<br />
<p>Best regards,</p>
<p><strong>{{.Site.Name}} Team</strong></p>{{end}}

{{define "row"}}<tr>
<td style="padding: 10px; border: 1px solid #ddd;"><strong>{{index . 0}}:</strong></td>
<td style="padding: 10px; border: 1px solid #ddd;">{{index . 1}}</td>
</tr>{{end}}

{{define "consultation_notice"}}<h2>New Consultation Request</h2>
<table style="border-collapse: collapse; width: 100%;">
{{template "row" (pair "Name" .Name)}}
{{template "row" (pair "Email" .Email)}}
{{template "row" (pair "Phone" .Phone)}}
{{template "row" (pair "Company" .Company)}}
{{template "row" (pair "Website" .Website)}}
{{template "row" (pair "Service Interest" .Service)}}
{{template "row" (pair "Budget" .Budget)}}
</table>
<hr />
<h3>Additional Message:</h3>
<p>{{nl2br .Message}}</p>
<hr />
<p><em>Sent from the {{.Site.Name}} website consultation form</em></p>{{end}}

{{define "consultation_ack"}}<h2>Thank you for your consultation request, {{.Name}}!</h2>
<p>We're excited to learn more about your business and how we can help you grow.</p>
<p>One of our digital marketing experts will contact you within 24-48 hours to schedule your free consultation.</p>
<h3>What to expect:</h3>
<ul>
<li>A personalized review of your current digital presence</li>
<li>Competitive analysis and market opportunity assessment</li>
<li>Customized growth strategy recommendations</li>
<li>Clear timeline and investment overview</li>
</ul>
{{if .Site.Phone}}<p>If you have any immediate questions, reply to this email or call us at <strong>{{.Site.Phone}}</strong>.</p>{{end}}
<p>Best regards,</p>
<p><strong>{{.Site.Name}} Team</strong></p>{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
