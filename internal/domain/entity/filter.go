package entity

import (
	"time"

	"github.com/google/uuid"
)

// VisibilityFilter is the caller's resolved doctor scope. The zero value is
// unrestricted.
type VisibilityFilter struct {
	Restricted bool
	DoctorIDs  []uuid.UUID
}

// Unrestricted returns a filter that allows every doctor
func Unrestricted() VisibilityFilter {
	return VisibilityFilter{}
}

// RestrictTo returns a filter limited to the given doctors
func RestrictTo(doctorIDs ...uuid.UUID) VisibilityFilter {
	return VisibilityFilter{Restricted: true, DoctorIDs: doctorIDs}
}

// Allows reports whether the doctor is inside the scope
func (f VisibilityFilter) Allows(doctorID uuid.UUID) bool {
	if !f.Restricted {
		return true
	}
	for _, id := range f.DoctorIDs {
		if id == doctorID {
			return true
		}
	}
	return false
}

// AppointmentFilter is a domain-level filter for listing appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	HospitalID uuid.UUID
	DoctorID   *uuid.UUID
	PatientID  *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Statuses   []AppointmentStatus
	Visibility VisibilityFilter
	Limit      int
	Offset     int
}
