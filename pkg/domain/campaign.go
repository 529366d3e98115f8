package domain

import (
	"time"

	"github.com/google/uuid"
)

// Campaign represents a lead-generation campaign.
type Campaign struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Audience    string    `json:"audience,omitempty"` // free-form target audience description
	Status      string    `json:"status"`             // "draft", "active", "paused", "completed"
	LeadsFound  int       `json:"leads_found"`
	LeadsTarget int       `json:"leads_target,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Campaign statuses.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)
