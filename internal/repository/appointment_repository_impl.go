package repository

import (
	"errors"
	"time"

	"docspot-odonto/internal/domain/entity"
	domainRepo "docspot-odonto/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) ExistsByID(db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindAll returns every appointment, optionally restricted to an exact
// status match. No pagination or ordering guarantee.
func (r *appointmentRepository) FindAll(db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	if err := db.Where("doctor_id = ?", doctorID).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	if err := db.Where("patient_id = ?", patientID).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// Reserve atomically claims an available appointment for a patient.
// The status guard lives inside the UPDATE itself, so two concurrent
// reservations can never both succeed: the loser sees 0 affected rows.
func (r *appointmentRepository) Reserve(db *gorm.DB, id string, patient *entity.User, paymentStatus string, paymentDate time.Time) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusAvailable).
		Updates(map[string]interface{}{
			"status":         entity.AppointmentStatusReserved,
			"patient_id":     patient.ID,
			"patient_name":   patient.Name,
			"payment_status": paymentStatus,
			"payment_date":   paymentDate,
		})
	return result.RowsAffected, result.Error
}

// Delete hard-removes an appointment regardless of its status.
// Returns affected rows: 0 means the id did not exist.
func (r *appointmentRepository) Delete(db *gorm.DB, id string) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
