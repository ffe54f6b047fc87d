package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmissionWindow is how long a relayed form submission is remembered.
const SubmissionWindow = 10 * time.Minute

// SubmissionDeduper remembers fingerprints of recently relayed forms.
// Key format: form:seen:<fingerprint>
type SubmissionDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSubmissionDeduper(client *redis.Client, ttl time.Duration) *SubmissionDeduper {
	if ttl <= 0 {
		ttl = SubmissionWindow
	}
	return &SubmissionDeduper{client: client, ttl: ttl}
}

// Claim reserves the fingerprint for the window with SET NX. It reports
// false when the fingerprint is already held.
func (d *SubmissionDeduper) Claim(ctx context.Context, fingerprint string) (bool, error) {
	ok, err := d.client.SetNX(ctx, seenKey(fingerprint), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submission dedup claim: %w", err)
	}
	return ok, nil
}

// Release drops a claim so the submission can be retried.
func (d *SubmissionDeduper) Release(ctx context.Context, fingerprint string) error {
	if err := d.client.Del(ctx, seenKey(fingerprint)).Err(); err != nil {
		return fmt.Errorf("submission dedup release: %w", err)
	}
	return nil
}

func seenKey(fingerprint string) string { return "form:seen:" + fingerprint }
