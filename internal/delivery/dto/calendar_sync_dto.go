package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type IntegrationResponse struct {
	ID            uuid.UUID  `json:"id"`
	Provider      string     `json:"provider"`
	CalendarID    string     `json:"calendar_id"`
	SyncEnabled   bool       `json:"sync_enabled"`
	SyncDirection string     `json:"sync_direction"`
	LastSyncAt    *time.Time `json:"last_sync_at,omitempty"`
}

type IntegrationListResponse struct {
	Integrations []IntegrationResponse `json:"integrations"`
	Total        int                   `json:"total"`
}

type CalendarSyncResponse struct {
	IntegrationID uuid.UUID `json:"integration_id"`
	SyncedEvents  int       `json:"synced_events"`
	PushedEvents  int       `json:"pushed_events"`
	NewConflicts  int       `json:"new_conflicts"`
	SyncedAt      time.Time `json:"synced_at"`
}
