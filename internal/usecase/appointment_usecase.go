package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docspot-odonto/internal/converter"
	"docspot-odonto/internal/delivery/dto"
	"docspot-odonto/internal/domain/entity"
	"docspot-odonto/internal/domain/repository"
	"docspot-odonto/internal/service"
	"docspot-odonto/pkg/identifier"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound          = errors.New("doctor not found or is not a doctor")
	ErrPatientNotFound         = errors.New("patient not found or is not a patient")
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotAvailable = errors.New("appointment is not available for reservation")
)

// DefaultPaymentStatus is the mocked payment state applied when a
// reservation omits it.
const DefaultPaymentStatus = "paid"

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAll(ctx context.Context, status string) ([]dto.AppointmentResponse, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]dto.AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID string) ([]dto.AppointmentResponse, error)
	Reserve(ctx context.Context, appointmentID string, req *dto.ReserveAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID string) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	cacheService    *service.AppointmentCacheService
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	cacheService *service.AppointmentCacheService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		cacheService:    cacheService,
		auditService:    auditService,
	}
}

// Create publishes a new available slot for a doctor, snapshotting the
// doctor's name and clinic into the record.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindByIDAndRole(tx, req.DoctorID, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointmentID, err := u.uniqueAppointmentID(tx)
	if err != nil {
		return nil, err
	}

	commission := entity.DefaultCommission
	if req.Commission != nil {
		commission = *req.Commission
	}

	var clinic string
	if doctor.Clinic != nil {
		clinic = *doctor.Clinic
	}

	appointment := &entity.Appointment{
		ID:         appointmentID,
		DoctorID:   doctor.ID,
		DoctorName: doctor.Name,
		Clinic:     clinic,
		Service:    req.Service,
		Time:       req.Time,
		Date:       req.Date,
		Price:      req.Price,
		Commission: commission,
		Status:     entity.AppointmentStatusAvailable,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Best-effort, after the commit so an audit failure cannot undo the slot
	u.auditService.LogAction(u.db.WithContext(ctx), &doctor.ID, service.AuditActionCreateAppointment, "appointment", appointment.ID, entity.JSON{
		"service": appointment.Service,
		"date":    appointment.Date,
		"time":    appointment.Time,
	})

	u.cacheService.Invalidate(ctx)

	return converter.AppointmentToResponse(appointment), nil
}

// ListAll returns every appointment, optionally filtered by exact status.
// Reads go through the Redis listing cache first.
func (u *appointmentUsecase) ListAll(ctx context.Context, status string) ([]dto.AppointmentResponse, error) {
	if cached := u.cacheService.GetListing(ctx, status); cached != nil {
		return cached, nil
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), entity.AppointmentStatus(status))
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	listing := converter.AppointmentsToResponses(appointments)
	u.cacheService.SetListing(ctx, status, listing)
	return listing, nil
}

// ListByDoctor returns all appointments owned by a doctor, any status.
func (u *appointmentUsecase) ListByDoctor(ctx context.Context, doctorID string) ([]dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.userRepo.FindByIDAndRole(db, doctorID, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

// ListByPatient returns all appointments reserved by a patient.
func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID string) ([]dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.userRepo.FindByIDAndRole(db, patientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list reservations for patient %s: %+v", patientID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

// Reserve claims an available appointment for a patient.
//
// The pre-read gives the caller precise errors (missing appointment vs.
// taken slot vs. missing patient), but the transition itself is a single
// conditional UPDATE guarded on status, so at most one of any number of
// concurrent reservations can win.
func (u *appointmentUsecase) Reserve(ctx context.Context, appointmentID string, req *dto.ReserveAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsAvailable() {
		return nil, ErrAppointmentNotAvailable
	}

	patient, err := u.userRepo.FindByIDAndRole(db, req.PatientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = DefaultPaymentStatus
	}
	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	rows, err := u.appointmentRepo.Reserve(db, appointmentID, patient, paymentStatus, paymentDate)
	if err != nil {
		u.log.Warnf("Failed to reserve appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		// Lost the race: another reservation landed between the read
		// and the conditional write
		return nil, ErrAppointmentNotAvailable
	}

	u.auditService.LogAction(db, &patient.ID, service.AuditActionReserveAppointment, "appointment", appointmentID, entity.JSON{
		"payment_status": paymentStatus,
	})

	u.cacheService.Invalidate(ctx)

	// The reservation is already durable here; a reload failure is an
	// internal fault, not a missing appointment.
	reserved, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to reload appointment %s after reservation: %+v", appointmentID, err)
		return nil, fmt.Errorf("reload appointment %s after reservation: %w", appointmentID, err)
	}
	if reserved == nil {
		u.log.Warnf("Appointment %s missing after reservation", appointmentID)
		return nil, fmt.Errorf("appointment %s missing after reservation", appointmentID)
	}

	u.log.Infof("Appointment reserved: id=%s, patient=%s", appointmentID, patient.ID)
	return converter.AppointmentToResponse(reserved), nil
}

// Cancel hard-deletes an appointment regardless of status or ownership.
func (u *appointmentUsecase) Cancel(ctx context.Context, appointmentID string) error {
	db := u.db.WithContext(ctx)

	rows, err := u.appointmentRepo.Delete(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	u.auditService.LogAction(db, nil, service.AuditActionCancelAppointment, "appointment", appointmentID, nil)

	u.cacheService.Invalidate(ctx)

	u.log.Infof("Appointment cancelled: id=%s", appointmentID)
	return nil
}

// uniqueAppointmentID mirrors the user id hardening for appointment ids.
func (u *appointmentUsecase) uniqueAppointmentID(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := identifier.NewAppointmentID()
		exists, err := u.appointmentRepo.ExistsByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to check id uniqueness: %+v", err)
			return "", err
		}
		if !exists {
			return id, nil
		}
		u.log.Warnf("Appointment id collision on %s, retrying", id)
	}
	return "", ErrIDGeneration
}
