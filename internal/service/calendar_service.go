package service

import (
	"context"
	"fmt"
	"time"

	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BusinessDay is the clock reading for one request: the instant and the
// hospital-local calendar date it falls on.
type BusinessDay struct {
	Now      time.Time
	Date     time.Time
	Location *time.Location
}

// Calendar is read once at the top of a request. The result is passed down
// instead of asking again mid-operation.
type Calendar interface {
	Today(ctx context.Context, hospitalID uuid.UUID) (BusinessDay, error)
}

type calendarService struct {
	tx           repository.Transactor
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	fallback     *time.Location
	now          func() time.Time
}

func NewCalendarService(
	tx repository.Transactor,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	defaultTimezone string,
	now func() time.Time,
) (Calendar, error) {
	fallback, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid default timezone %q: %w", defaultTimezone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &calendarService{
		tx:           tx,
		log:          log,
		hospitalRepo: hospitalRepo,
		fallback:     fallback,
		now:          now,
	}, nil
}

func (s *calendarService) Today(ctx context.Context, hospitalID uuid.UUID) (BusinessDay, error) {
	loc := s.fallback

	hospital, err := s.hospitalRepo.FindByID(s.tx.Conn(ctx), hospitalID)
	if err != nil {
		s.log.Warnf("Failed to find hospital %s: %+v", hospitalID, err)
		return BusinessDay{}, err
	}
	if hospital != nil && hospital.Timezone != "" {
		if tz, err := time.LoadLocation(hospital.Timezone); err == nil {
			loc = tz
		} else {
			s.log.Warnf("Hospital %s has invalid timezone %q, using %s", hospitalID, hospital.Timezone, loc)
		}
	}

	now := s.now().UTC()
	return BusinessDay{
		Now:      now,
		Date:     scheduling.CivilDate(now, loc),
		Location: loc,
	}, nil
}

// ClockMinute is the hospital-local wall clock in minutes after midnight
func (d BusinessDay) ClockMinute() int {
	local := d.Now
	if d.Location != nil {
		local = local.In(d.Location)
	}
	return local.Hour()*60 + local.Minute()
}

// Started reports whether a slot on date starting at startMinute has begun
func (d BusinessDay) Started(date time.Time, startMinute int) bool {
	if !date.Equal(d.Date) {
		return date.Before(d.Date)
	}
	return startMinute <= d.ClockMinute()
}
