package usecase

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error kinds. Every error returned by this package wraps at most one of them,
// so the delivery layer can map with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

var ErrUnauthenticated = errors.New("identity not found in context")

var (
	ErrDoctorNotFound      = fmt.Errorf("%w: doctor not found", ErrNotFound)
	ErrPatientNotFound     = fmt.Errorf("%w: patient not found", ErrNotFound)
	ErrSlotNotFound        = fmt.Errorf("%w: slot not found", ErrNotFound)
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment not found", ErrNotFound)
	ErrQueueEntryNotFound  = fmt.Errorf("%w: queue entry not found", ErrNotFound)
	ErrTimeOffNotFound     = fmt.Errorf("%w: time-off period not found", ErrNotFound)
	ErrAuditLogNotFound    = fmt.Errorf("%w: audit log not found", ErrNotFound)
	ErrLinkNotFound        = fmt.Errorf("%w: link not found", ErrNotFound)
)

var (
	ErrSlotNotAvailable            = fmt.Errorf("%w: slot is not available", ErrInvalidState)
	ErrSlotInPast                  = fmt.Errorf("%w: slot has already started", ErrInvalidState)
	ErrSlotNotBlockable            = fmt.Errorf("%w: only AVAILABLE slots can be blocked", ErrInvalidState)
	ErrSlotNotBlocked              = fmt.Errorf("%w: slot is not blocked", ErrInvalidState)
	ErrAppointmentAlreadyCancelled = fmt.Errorf("%w: appointment is already cancelled", ErrInvalidState)
	ErrAppointmentNotOpen          = fmt.Errorf("%w: appointment is no longer scheduled or confirmed", ErrInvalidState)
	ErrAppointmentNotToday         = fmt.Errorf("%w: only appointments dated today can be checked in", ErrInvalidState)
	ErrAppointmentInFuture         = fmt.Errorf("%w: appointment date has not been reached yet", ErrInvalidState)
	ErrAppointmentCheckedIn        = fmt.Errorf("%w: appointment is already checked in", ErrInvalidState)
	ErrInvalidStatusChange         = fmt.Errorf("%w: status change is not allowed", ErrInvalidState)
	ErrQueueEntryNotQueued         = fmt.Errorf("%w: only QUEUED entries can be moved to the top", ErrInvalidState)
	ErrQueueEntryNotRemovable      = fmt.Errorf("%w: only QUEUED or WAITING entries can be removed", ErrInvalidState)
	ErrQueueEntryFinished          = fmt.Errorf("%w: queue entry is already finished", ErrInvalidState)
	ErrTimeOffAlreadyReviewed      = fmt.Errorf("%w: time-off period was already reviewed", ErrInvalidState)
	ErrRescheduleOtherDoctor       = fmt.Errorf("%w: new slot belongs to another doctor", ErrInvalidState)
	ErrRescheduleSameSlot          = fmt.Errorf("%w: new slot is the current slot", ErrInvalidState)
	ErrQueueNotCancellable         = fmt.Errorf("%w: queue entry can no longer be cancelled", ErrInvalidState)
	// ErrPublicLinkExpired is returned for queue links of a past service date.
	ErrPublicLinkExpired = fmt.Errorf("%w: this queue link has expired", ErrInvalidState)
)

// ErrSlotAlreadyBooked means another booking won the race for the slot.
var ErrSlotAlreadyBooked = fmt.Errorf("%w: slot was just booked by someone else, pick another slot", ErrConflict)

var ErrOutOfScope = fmt.Errorf("%w: doctor is outside your scope", ErrForbidden)

// ErrRegenerationIncomplete is returned together with a partial result when
// one or more regeneration steps failed. Re-running resumes the work.
var ErrRegenerationIncomplete = errors.New("regeneration incomplete, re-run to resume")

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// isUniqueViolation reports whether err is a unique_violation from postgres
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
