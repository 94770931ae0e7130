package service

import (
	"time"

	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
)

// FixCommandKind enumerates the side effects an auto-fix may request.
type FixCommandKind string

const (
	// FixSuppressSlot blocks one derived slot by persisting a custom timed
	// exception over its window. Slots are ephemeral, so suppression is the
	// durable form of "remove this slot".
	FixSuppressSlot FixCommandKind = "SUPPRESS_SLOT"
	// FixCancelAppointment cancels a booked appointment. Only ever produced
	// for manual resolutions with an explicit cancel method.
	FixCancelAppointment FixCommandKind = "CANCEL_APPOINTMENT"
)

// FixCommand is one side effect the persistence layer must apply atomically
// together with the conflict's status transition. Planning is pure; applying
// is the usecase's job.
type FixCommand struct {
	Kind          FixCommandKind
	SlotID        string
	Date          time.Time
	Start         timestr.TimeOfDay
	End           timestr.TimeOfDay
	AppointmentID *uuid.UUID
}

// PlanAutoFix computes the side-effect commands that resolve an auto-fixable
// conflict. Only the slots named in the conflict's affected set are touched;
// unrelated entries are never part of the plan.
func (d *ConflictDetector) PlanAutoFix(conflict *entity.ScheduleConflict, snapshot *ScheduleSnapshot) ([]FixCommand, error) {
	if conflict.IsTerminal() {
		return nil, entity.ErrConflictAlreadyTerminal
	}
	if !conflict.AutoFixable {
		return nil, entity.ErrConflictNotAutoFixable
	}

	switch conflict.ConflictType {
	case entity.ConflictOverlap:
		// Keep the earlier slot, suppress the later one. Affected ids are
		// stored sorted by start time, so the second entry is the later slot.
		if len(conflict.AffectedSlotIDs) < 2 {
			return nil, entity.ErrConflictNotAutoFixable
		}
		return commandsForSlots(snapshot, conflict.AffectedSlotIDs[1:2]), nil

	case entity.ConflictBreakViolation, entity.ConflictLeave:
		return commandsForSlots(snapshot, conflict.AffectedSlotIDs), nil
	}

	return nil, entity.ErrConflictNotAutoFixable
}

// commandsForSlots maps affected slot ids back to their windows using the
// snapshot, producing one suppression per slot still present.
func commandsForSlots(snapshot *ScheduleSnapshot, slotIDs entity.StringList) []FixCommand {
	wanted := make(map[string]bool, len(slotIDs))
	for _, id := range slotIDs {
		wanted[id] = true
	}

	commands := []FixCommand{}
	for i := range snapshot.Days {
		day := &snapshot.Days[i]
		for j := range day.Slots {
			slot := &day.Slots[j]
			if !wanted[slot.ID] {
				continue
			}
			commands = append(commands, FixCommand{
				Kind:   FixSuppressSlot,
				SlotID: slot.ID,
				Date:   day.Date,
				Start:  slot.StartTime,
				End:    slot.EndTime,
			})
		}
	}
	return commands
}
