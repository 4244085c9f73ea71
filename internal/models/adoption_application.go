package models

import "gorm.io/gorm"

// ApplicationStatus defines the lifecycle state of an adoption application.
type ApplicationStatus string

const (
	// ApplicationStatusPending is the initial state of every application.
	ApplicationStatusPending ApplicationStatus = "Pending"

	// Approved, Rejected and Cancelled are terminal states.
	ApplicationStatusApproved  ApplicationStatus = "Approved"
	ApplicationStatusRejected  ApplicationStatus = "Rejected"
	ApplicationStatusCancelled ApplicationStatus = "Cancelled"
)

// ValidApplicationStatus reports whether s is one of the known application statuses.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved,
		ApplicationStatusRejected, ApplicationStatusCancelled:
		return true
	}
	return false
}

// PetStatusFor returns the pet status implied by an application status.
// A pet with a pending application is Pending, an approved application
// adopts the pet, and closing the application releases it again.
func PetStatusFor(s ApplicationStatus) PetStatus {
	switch s {
	case ApplicationStatusApproved:
		return PetStatusAdopted
	case ApplicationStatusPending:
		return PetStatusPending
	default:
		return PetStatusAvailable
	}
}

// AdoptionApplication represents a user's request to adopt a specific pet.
type AdoptionApplication struct {
	gorm.Model
	UserID uint              `gorm:"not null;index"`
	PetID  uint              `gorm:"not null;index"`
	Status ApplicationStatus `gorm:"size:20;not null;default:'Pending';index"`

	User User `gorm:"foreignKey:UserID"`
	Pet  Pet  `gorm:"foreignKey:PetID"`
}
