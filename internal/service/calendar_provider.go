package service

import (
	"context"
	"time"

	"go-hospital-scheduling/internal/domain/entity"
)

// BusyBlock is one external calendar event mapped into the engine's terms.
type BusyBlock struct {
	ExternalID string
	Summary    string
	Start      time.Time
	End        time.Time
	AllDay     bool
}

// CalendarProvider is the boundary to a third-party calendar. OAuth plumbing
// and wire formats live behind it; the engine only sees busy blocks and a
// continuation token. Implementations must respect the context deadline so
// a slow provider cannot stall availability resolution.
type CalendarProvider interface {
	// FetchBusyBlocks returns external events within the window, plus the
	// next sync token for incremental pulls.
	FetchBusyBlocks(ctx context.Context, integration *entity.CalendarIntegration, from, to time.Time) ([]BusyBlock, string, error)
	// PushAppointments exports local appointments for outbound-enabled
	// integrations. Advisory: failures never mutate local state.
	PushAppointments(ctx context.Context, integration *entity.CalendarIntegration, appointments []entity.Appointment) (int, error)
}
