package service

import (
	"time"

	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/pkg/timestr"
)

// SlotGenerator derives candidate time slots for one day from a working-day
// configuration. It is deterministic and has no side effects; availability
// checks against leave and appointments happen later in the resolver.
type SlotGenerator struct{}

func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{}
}

// Generate walks a cursor from the working day's start time, emitting one
// slot per appointment window and advancing by duration plus buffer.
//
// A candidate slot is rejected when it would extend past the end of the day,
// or when it intersects the break window (half-open interval test). When the
// rejection was caused by the break, the cursor jumps straight to the break's
// end instead of crawling through it slot by slot.
func (g *SlotGenerator) Generate(day *entity.WorkingDay, date time.Time) []entity.TimeSlot {
	slots := []entity.TimeSlot{}
	if day == nil || !day.IsWorking || day.AppointmentDuration <= 0 {
		return slots
	}
	if !day.StartTime.Before(day.EndTime) {
		return slots
	}

	hasBreak := day.HasBreak()
	step := day.AppointmentDuration + day.BufferTime
	endMin := day.EndTime.Minutes()

	for cursor := day.StartTime.Minutes(); cursor < endMin; {
		slotStart := timestr.FromMinutes(cursor)
		slotEndMin := cursor + day.AppointmentDuration
		if slotEndMin > endMin {
			break
		}
		slotEnd := timestr.FromMinutes(slotEndMin)

		if hasBreak && timestr.Overlaps(slotStart, slotEnd, *day.BreakStart, *day.BreakEnd) {
			// Skip the whole break instead of emitting rejected slots across it.
			if breakEnd := day.BreakEnd.Minutes(); breakEnd > cursor {
				cursor = breakEnd
			} else {
				cursor += step
			}
			continue
		}

		slots = append(slots, entity.TimeSlot{
			ID:              entity.SlotID(date, slotStart),
			Date:            date.Truncate(24 * time.Hour),
			StartTime:       slotStart,
			EndTime:         slotEnd,
			Duration:        day.AppointmentDuration,
			IsAvailable:     true,
			MaxBookings:     1,
			CurrentBookings: 0,
			Type:            entity.SlotRegular,
		})
		cursor += step
	}

	return slots
}
