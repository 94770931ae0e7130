package entity

import (
	"time"

	"github.com/google/uuid"
)

// SyncDirection controls which way events flow for a calendar integration.
type SyncDirection string

const (
	SyncInbound       SyncDirection = "INBOUND"
	SyncOutbound      SyncDirection = "OUTBOUND"
	SyncBidirectional SyncDirection = "BIDIRECTIONAL"
)

// AllowsInbound reports whether external busy blocks may be pulled in.
func (d SyncDirection) AllowsInbound() bool {
	return d == SyncInbound || d == SyncBidirectional
}

// AllowsOutbound reports whether local appointments may be pushed out.
func (d SyncDirection) AllowsOutbound() bool {
	return d == SyncOutbound || d == SyncBidirectional
}

// CalendarIntegration links a doctor to an external calendar. Credentials and
// provider settings are opaque to the engine; only sync flags and the last
// sync timestamp drive scheduling decisions.
type CalendarIntegration struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Provider      string        `gorm:"type:varchar(50);not null" json:"provider"`
	ProviderID    string        `gorm:"type:varchar(255);not null" json:"provider_id"`
	CalendarID    string        `gorm:"type:varchar(255);not null" json:"calendar_id"`
	SyncEnabled   bool          `gorm:"not null;default:true" json:"sync_enabled"`
	SyncDirection SyncDirection `gorm:"type:varchar(20);not null;default:'BIDIRECTIONAL'" json:"sync_direction"`
	LastSyncAt    *time.Time    `json:"last_sync_at,omitempty"`
	SyncToken     string        `gorm:"type:varchar(512)" json:"-"`
	Credentials   JSON          `gorm:"type:jsonb" json:"-"`
	Settings      JSON          `gorm:"type:jsonb" json:"settings,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CalendarIntegration) TableName() string {
	return "calendar_integrations"
}
