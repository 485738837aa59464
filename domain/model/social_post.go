package model

import "time"

const (
	SocialPostStatusScheduled = "scheduled"
	SocialPostStatusPublished = "published"
	SocialPostStatusFailed    = "failed"
)

// SocialPost is an organization post authored in the admin panel and
// published to LinkedIn when its scheduled time is due.
type SocialPost struct {
	ID             int64      `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Body           string     `json:"body"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	Status         string     `json:"status"`
	ExternalRef    *string    `json:"external_ref,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	AttemptCount   int        `json:"attempt_count"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
