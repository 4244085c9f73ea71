package models

import "gorm.io/gorm"

// Role defines the access level of a user.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleShelterStaff Role = "shelter_staff"
	RoleAdopter      Role = "adopter"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleShelterStaff, RoleAdopter:
		return true
	}
	return false
}

// User represents a registered account in the system.
type User struct {
	gorm.Model
	Username       string  `gorm:"size:255;unique;not null"`
	Email          string  `gorm:"size:255;unique;not null"`
	PasswordHash   string  `gorm:"size:255;not null"`
	Role           Role    `gorm:"size:50;not null;default:'adopter';index"`
	ProfilePicture *string `gorm:"size:512"`

	Pets         []Pet                 `gorm:"foreignKey:OwnerID"`
	Applications []AdoptionApplication `gorm:"foreignKey:UserID"`
}

// IsStaff reports whether the user may manage pets, users and applications.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleShelterStaff
}
