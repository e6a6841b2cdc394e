package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID   string           `json:"doctor_id" validate:"required"`
	Service    string           `json:"service" validate:"required"`
	Time       string           `json:"time" validate:"required"`
	Date       string           `json:"date" validate:"required"`
	Price      decimal.Decimal  `json:"price"` // zero allowed, no range check by design
	Commission *decimal.Decimal `json:"commission" validate:"omitempty"` // defaults to 2.0 when absent
}

type ReserveAppointmentRequest struct {
	PatientID     string     `json:"patient_id" validate:"required"`
	PaymentStatus string     `json:"payment_status" validate:"omitempty"` // mocked, defaults to "paid"
	PaymentDate   *time.Time `json:"payment_date" validate:"omitempty"`   // defaults to now
}

// Response DTOs

type AppointmentResponse struct {
	ID            string          `json:"id"`
	DoctorID      string          `json:"doctor_id"`
	DoctorName    string          `json:"doctor_name"`
	Clinic        string          `json:"clinic"`
	Service       string          `json:"service"`
	Time          string          `json:"time"`
	Date          string          `json:"date"`
	Price         decimal.Decimal `json:"price"`
	Commission    decimal.Decimal `json:"commission"`
	Status        string          `json:"status"`
	PatientID     *string         `json:"patient_id,omitempty"`
	PatientName   *string         `json:"patient_name,omitempty"`
	PaymentStatus *string         `json:"payment_status,omitempty"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
}
