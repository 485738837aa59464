package dto

import "time"

// SocialPostRequest schedules a new organization post.
type SocialPostRequest struct {
	OrganizationID string     `json:"organization_id"`
	Body           string     `json:"body" binding:"required"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"` // nil means publish on next processor pass
}
