package usecase

import (
	"context"

	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func identityFrom(ctx context.Context) (middleware.Identity, error) {
	identity, ok := middleware.GetIdentityFromContext(ctx)
	if !ok {
		return middleware.Identity{}, ErrUnauthenticated
	}
	return identity, nil
}

func actorOf(identity middleware.Identity) service.Actor {
	userID := identity.UserID
	return service.Actor{HospitalID: identity.HospitalID, UserID: &userID}
}

// publicActor is recorded for actions taken through a patient link
func publicActor(hospitalID uuid.UUID) service.Actor {
	return service.Actor{HospitalID: hospitalID}
}

// loadDoctor returns the doctor when it is inside the caller's hospital and
// visibility scope.
func loadDoctor(db *gorm.DB, repo repository.DoctorProfileRepository, identity middleware.Identity, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	if !identity.Visibility.Allows(doctorID) {
		return nil, ErrOutOfScope
	}
	doctor, err := repo.FindByID(db, identity.HospitalID, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
