package entity

// Role values a User can hold. The frontend this backend was built for uses
// the Spanish "paciente" for patients, so the stored value keeps it.
const (
	RoleDoctor  = "doctor"
	RolePatient = "paciente"
)

// User represents a registered doctor or patient.
// IDs are role-prefixed strings ("doc_xxxxxxxx" / "pac_xxxxxxxx") assigned at
// registration time, never a database sequence.
type User struct {
	ID       string  `gorm:"type:varchar(64);primaryKey" json:"id"`
	Username string  `gorm:"type:varchar(255);uniqueIndex:idx_users_username;not null" json:"username"`
	Password string  `gorm:"type:text;not null" json:"-"`
	Role     string  `gorm:"type:varchar(20);not null;index" json:"role"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    string  `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null" json:"email"`
	Phone    string  `gorm:"type:varchar(50);not null" json:"phone"`
	Clinic   *string `gorm:"type:varchar(255)" json:"clinic,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsDoctor reports whether the user holds the doctor role.
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

// IsPatient reports whether the user holds the patient role.
func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}
