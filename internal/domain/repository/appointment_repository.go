package repository

import (
	"time"

	"docspot-odonto/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id string) (*entity.Appointment, error)
	ExistsByID(db *gorm.DB, id string) (bool, error)
	FindAll(db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID string) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID string) ([]entity.Appointment, error)
	Reserve(db *gorm.DB, id string, patient *entity.User, paymentStatus string, paymentDate time.Time) (int64, error)
	Delete(db *gorm.DB, id string) (int64, error)
}
