package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAll(db *gorm.DB, hospitalID uuid.UUID, limit, offset int) ([]entity.AuditLog, int64, error)
	FindByID(db *gorm.DB, hospitalID uuid.UUID, id int64) (*entity.AuditLog, error)
}
