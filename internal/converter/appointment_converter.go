package converter

import (
	"docspot-odonto/internal/delivery/dto"
	"docspot-odonto/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:            appointment.ID,
		DoctorID:      appointment.DoctorID,
		DoctorName:    appointment.DoctorName,
		Clinic:        appointment.Clinic,
		Service:       appointment.Service,
		Time:          appointment.Time,
		Date:          appointment.Date,
		Price:         appointment.Price,
		Commission:    appointment.Commission,
		Status:        string(appointment.Status),
		PatientID:     appointment.PatientID,
		PatientName:   appointment.PatientName,
		PaymentStatus: appointment.PaymentStatus,
		PaymentDate:   appointment.PaymentDate,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
