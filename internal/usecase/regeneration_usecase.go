package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/scheduling"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	stepCancel   = "cancel"
	stepPurge    = "purge"
	stepGenerate = "generate"
)

type RegenerationUsecase interface {
	// AnalyzeConflicts simulates a change and reports the appointments it
	// would break. It never writes.
	AnalyzeConflicts(ctx context.Context, doctorID uuid.UUID, req *dto.ConflictAnalysisRequest) (*dto.ConflictAnalysisResponse, error)
	// Regenerate cancels the approved appointments, purges unreferenced
	// future slots and rebuilds inventory. When a step fails the partial
	// result is returned along with ErrRegenerationIncomplete.
	Regenerate(ctx context.Context, doctorID uuid.UUID, req *dto.RegenerateRequest) (*dto.RegenerationResponse, error)
}

type regenerationUsecase struct {
	tx              repository.Transactor
	log             *logrus.Logger
	horizonMonths   int
	calendar        service.Calendar
	auditService    service.AuditService
	slotUsecase     SlotUsecase
	doctorRepo      repository.DoctorProfileRepository
	slotRepo        repository.SlotRepository
	appointmentRepo repository.AppointmentRepository
	queueRepo       repository.QueueEntryRepository
	lifecycle       *bookingLifecycle
}

func NewRegenerationUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	horizonMonths int,
	calendar service.Calendar,
	auditService service.AuditService,
	slotUsecase SlotUsecase,
	doctorRepo repository.DoctorProfileRepository,
	slotRepo repository.SlotRepository,
	appointmentRepo repository.AppointmentRepository,
	queueRepo repository.QueueEntryRepository,
) RegenerationUsecase {
	return &regenerationUsecase{
		tx:              tx,
		log:             log,
		horizonMonths:   horizonMonths,
		calendar:        calendar,
		auditService:    auditService,
		slotUsecase:     slotUsecase,
		doctorRepo:      doctorRepo,
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		queueRepo:       queueRepo,
		lifecycle: &bookingLifecycle{
			log:             log,
			slotRepo:        slotRepo,
			appointmentRepo: appointmentRepo,
			queueRepo:       queueRepo,
		},
	}
}

func (u *regenerationUsecase) AnalyzeConflicts(ctx context.Context, doctorID uuid.UUID, req *dto.ConflictAnalysisRequest) (*dto.ConflictAnalysisResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := u.tx.Conn(ctx)
	doctor, err := loadDoctor(db, u.doctorRepo, identity, doctorID)
	if err != nil {
		return nil, err
	}

	change, err := proposedChangeFromRequest(doctor.ID, req)
	if err != nil {
		return nil, invalidInput(err)
	}

	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}

	upcoming, err := u.appointmentRepo.FindOpenByDoctorFrom(db, doctor.ID, today.Date)
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	conflicts, err := scheduling.FindConflicts(upcoming, change)
	if err != nil {
		return nil, invalidInput(err)
	}

	ids := make([]uuid.UUID, len(conflicts))
	for i := range conflicts {
		ids[i] = conflicts[i].ID
	}
	live, err := u.queueRepo.FindLiveByAppointmentIDs(db, ids)
	if err != nil {
		u.log.Warnf("Failed to find queue entries for conflicts of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}
	queued := make(map[uuid.UUID]bool, len(live))
	for _, e := range live {
		if e.AppointmentID != nil {
			queued[*e.AppointmentID] = true
		}
	}

	purgeable, err := u.slotRepo.CountPurgeable(db, doctor.ID, today.Date)
	if err != nil {
		u.log.Warnf("Failed to count purgeable slots of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	response := &dto.ConflictAnalysisResponse{
		DoctorID:   doctor.ID,
		ChangeType: req.ChangeType,
		Conflicts:  make([]dto.ConflictingAppointment, len(conflicts)),
	}
	for i := range conflicts {
		response.Conflicts[i] = converter.AppointmentToConflict(&conflicts[i], queued[conflicts[i].ID])
	}

	summary := scheduling.Summarize(conflicts)
	response.Summary = dto.ConflictSummary{
		AffectedCount:  summary.AffectedCount,
		FirstDate:      formatDatePtr(summary.FirstDate),
		LastDate:       formatDatePtr(summary.LastDate),
		PurgeableSlots: purgeable,
	}

	return response, nil
}

func proposedChangeFromRequest(doctorID uuid.UUID, req *dto.ConflictAnalysisRequest) (scheduling.ProposedChange, error) {
	change := scheduling.ProposedChange{Type: scheduling.ChangeType(req.ChangeType)}
	switch change.Type {
	case scheduling.ChangeTypeSchedule:
		change.Schedule = converter.WeeklyScheduleFromRequest(doctorID, req.Schedule)
	case scheduling.ChangeTypeDuration:
		change.DurationMinutes = req.DurationMinutes
	case scheduling.ChangeTypeTimeOff:
		start, err := scheduling.ParseDate(req.StartDate)
		if err != nil {
			return change, err
		}
		end, err := scheduling.ParseDate(req.EndDate)
		if err != nil {
			return change, err
		}
		change.TimeOffStart, change.TimeOffEnd = start, end
	}
	return change, change.Validate()
}

func (u *regenerationUsecase) Regenerate(ctx context.Context, doctorID uuid.UUID, req *dto.RegenerateRequest) (*dto.RegenerationResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	doctor, err := loadDoctor(u.tx.Conn(ctx), u.doctorRepo, identity, doctorID)
	if err != nil {
		return nil, err
	}

	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}
	horizonEnd := today.Date.AddDate(0, u.horizonMonths, 0)

	result := &dto.RegenerationResponse{
		DoctorID:            doctor.ID,
		Cancelled:           []uuid.UUID{},
		AlreadyCancelled:    []uuid.UUID{},
		FailedCancellations: []dto.RegenerationFailure{},
		HorizonStart:        today.Date.Format(entity.DateLayout),
		HorizonEnd:          horizonEnd.Format(entity.DateLayout),
		StepErrors:          map[string]string{},
	}

	// Step 1: cancel the approved conflicts, one transaction each
	seen := make(map[uuid.UUID]bool, len(req.ApprovedAppointmentIDs))
	for _, id := range req.ApprovedAppointmentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		err := u.cancelForScheduleChange(ctx, actorOf(identity), doctor.ID, id, today)
		switch {
		case err == nil:
			result.Cancelled = append(result.Cancelled, id)
		case errors.Is(err, ErrAppointmentAlreadyCancelled):
			result.AlreadyCancelled = append(result.AlreadyCancelled, id)
		default:
			result.FailedCancellations = append(result.FailedCancellations, dto.RegenerationFailure{
				AppointmentID: id,
				Reason:        err.Error(),
			})
			// Records that are gone or finished will not change on a re-run.
			if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidState) {
				result.StepErrors[stepCancel] = err.Error()
			}
			u.stepFailed(doctor.ID, stepCancel, logrus.Fields{"appointment_id": id}, err)
		}
	}

	// Step 2: drop future AVAILABLE slots nothing references
	purged, err := u.slotRepo.DeletePurgeable(u.tx.Conn(ctx), doctor.ID, today.Date)
	if err != nil {
		result.StepErrors[stepPurge] = err.Error()
		u.stepFailed(doctor.ID, stepPurge, logrus.Fields{"from": result.HorizonStart}, err)
	} else {
		result.PurgedSlots = purged
	}

	// Step 3: rebuild inventory under the current rules
	generated, err := u.slotUsecase.GenerateForDoctor(ctx, identity.HospitalID, doctor.ID, today.Date, horizonEnd, 0)
	if err != nil {
		result.StepErrors[stepGenerate] = err.Error()
		u.stepFailed(doctor.ID, stepGenerate, logrus.Fields{"from": result.HorizonStart, "to": result.HorizonEnd}, err)
	} else {
		result.Generated = generated.Generated
		result.SkippedDuplicates = generated.SkippedDuplicates
	}

	if err := u.auditService.LogCreate(ctx, u.tx.Conn(ctx), actorOf(identity), entity.AuditActionSlotsRegenerate, "slots", doctor.ID.String(), result); err != nil {
		u.log.Warnf("Failed to audit regeneration of doctor %s: %+v", doctor.ID, err)
	}

	u.log.WithFields(logrus.Fields{
		"doctor_id":         doctor.ID,
		"cancelled":         len(result.Cancelled),
		"already_cancelled": len(result.AlreadyCancelled),
		"failed":            len(result.FailedCancellations),
		"purged":            result.PurgedSlots,
		"generated":         result.Generated,
		"skipped":           result.SkippedDuplicates,
	}).Info("Regeneration finished")

	if len(result.StepErrors) > 0 {
		return result, ErrRegenerationIncomplete
	}
	result.StepErrors = nil
	return result, nil
}

func (u *regenerationUsecase) cancelForScheduleChange(ctx context.Context, actor service.Actor, doctorID, appointmentID uuid.UUID, today service.BusinessDay) error {
	return u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, appointmentID)
		if err != nil {
			return err
		}
		if appointment == nil || appointment.HospitalID != actor.HospitalID || appointment.DoctorID != doctorID {
			return ErrAppointmentNotFound
		}

		old := appointment.Status
		if err := u.lifecycle.cancel(tx, appointment, entity.CancelReasonScheduleChange, today.Now); err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(),
			map[string]interface{}{"status": old},
			map[string]interface{}{"status": appointment.Status, "reason": appointment.CancellationReason},
		)
	})
}

func (u *regenerationUsecase) stepFailed(doctorID uuid.UUID, step string, fields logrus.Fields, err error) {
	fields["doctor_id"] = doctorID
	fields["step"] = step
	u.log.WithFields(fields).Errorf("Regeneration step failed: %+v", err)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(entity.DateLayout)
	return &s
}
