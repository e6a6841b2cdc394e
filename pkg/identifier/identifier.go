// Package identifier generates the role-prefixed ids used across the system:
// "doc_" for doctors, "pac_" for patients and "apt_" for appointments, each
// followed by 8 random hexadecimal characters.
package identifier

import (
	"strings"

	"github.com/google/uuid"

	"docspot-odonto/internal/domain/entity"
)

const (
	DoctorPrefix      = "doc_"
	PatientPrefix     = "pac_"
	AppointmentPrefix = "apt_"

	suffixLength = 8
)

// NewUserID returns a fresh id for the given role. Roles outside the known
// set fall back to a full UUID, matching the registration contract.
func NewUserID(role string) string {
	switch role {
	case entity.RoleDoctor:
		return DoctorPrefix + hexSuffix()
	case entity.RolePatient:
		return PatientPrefix + hexSuffix()
	default:
		return uuid.NewString()
	}
}

// NewAppointmentID returns a fresh appointment id.
func NewAppointmentID() string {
	return AppointmentPrefix + hexSuffix()
}

func hexSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
}
