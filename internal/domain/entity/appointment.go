package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusAvailable AppointmentStatus = "available"
	AppointmentStatusReserved  AppointmentStatus = "reserved"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// DefaultCommission is applied when an appointment is created without an
// explicit commission value.
var DefaultCommission = decimal.NewFromFloat(2.0)

// Appointment represents a bookable time slot published by a doctor.
// DoctorName and Clinic are snapshots taken at creation time; PatientName,
// PaymentStatus and PaymentDate are snapshots taken when the slot is
// reserved. They are intentionally not kept in sync with later user edits.
type Appointment struct {
	ID            string            `gorm:"type:varchar(64);primaryKey" json:"id"`
	DoctorID      string            `gorm:"type:varchar(64);not null;index" json:"doctor_id"`
	DoctorName    string            `gorm:"type:varchar(255);not null" json:"doctor_name"`
	Clinic        string            `gorm:"type:varchar(255);not null" json:"clinic"`
	Service       string            `gorm:"type:varchar(255);not null" json:"service"`
	Time          string            `gorm:"type:varchar(50);not null" json:"time"`
	Date          string            `gorm:"type:varchar(50);not null" json:"date"`
	Price         decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"price"`
	Commission    decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:2.0" json:"commission"`
	Status        AppointmentStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	PatientID     *string           `gorm:"type:varchar(64);index" json:"patient_id,omitempty"`
	PatientName   *string           `gorm:"type:varchar(255)" json:"patient_name,omitempty"`
	PaymentStatus *string           `gorm:"type:varchar(50)" json:"payment_status,omitempty"`
	PaymentDate   *time.Time        `json:"payment_date,omitempty"`

	// Relationships
	Doctor  User  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient *User `gorm:"foreignKey:PatientID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsAvailable checks if the appointment can still be reserved
func (a *Appointment) IsAvailable() bool {
	return a.Status == AppointmentStatusAvailable
}

// IsReserved checks if the appointment has been claimed by a patient
func (a *Appointment) IsReserved() bool {
	return a.Status == AppointmentStatusReserved
}

// HasPatient reports whether patient data is attached. Consistency rule:
// this must hold exactly when the status is reserved or completed.
func (a *Appointment) HasPatient() bool {
	return a.PatientID != nil
}
