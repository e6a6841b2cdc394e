package service

import (
	"docspot-odonto/internal/domain/entity"
	"docspot-odonto/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Audit actions recorded by the booking flow
const (
	AuditActionRegister           = "user.register"
	AuditActionCreateAppointment  = "appointment.create"
	AuditActionReserveAppointment = "appointment.reserve"
	AuditActionCancelAppointment  = "appointment.cancel"
)

type AuditService interface {
	LogAction(db *gorm.DB, userID *string, action string, entityName string, entityID string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogAction records an audit trail entry. Callers invoke it after their
// transaction commits: audit writes are best-effort and must never undo or
// fail a committed mutation. Failures are logged and returned.
func (s *auditService) LogAction(db *gorm.DB, userID *string, action string, entityName string, entityID string, metadata entity.JSON) error {
	if metadata == nil {
		metadata = entity.JSON{}
	}
	metadata["entity"] = entityName
	metadata["entity_id"] = entityID

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
