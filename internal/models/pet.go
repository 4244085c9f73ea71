package models

import "gorm.io/gorm"

// PetStatus defines the adoption state of a pet.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "Available"
	PetStatusPending   PetStatus = "Pending"
	PetStatusAdopted   PetStatus = "Adopted"
)

// ValidPetStatus reports whether s is one of the known pet statuses.
func ValidPetStatus(s PetStatus) bool {
	switch s {
	case PetStatusAvailable, PetStatusPending, PetStatusAdopted:
		return true
	}
	return false
}

// AgeUnit qualifies a pet's numeric age.
type AgeUnit string

const (
	AgeUnitDays   AgeUnit = "days"
	AgeUnitWeeks  AgeUnit = "weeks"
	AgeUnitMonths AgeUnit = "months"
	AgeUnitYears  AgeUnit = "years"
)

// ValidAgeUnit reports whether u is one of the known age units.
func ValidAgeUnit(u AgeUnit) bool {
	switch u {
	case AgeUnitDays, AgeUnitWeeks, AgeUnitMonths, AgeUnitYears:
		return true
	}
	return false
}

// Pet represents an animal listed for adoption.
type Pet struct {
	gorm.Model
	Name           string    `gorm:"size:255;not null"`
	Breed          *string   `gorm:"size:255"`
	Age            int       `gorm:"not null"`
	AgeUnit        AgeUnit   `gorm:"size:20;not null"`
	Description    *string
	MedicalHistory *string
	Status         PetStatus `gorm:"size:20;not null;default:'Available';index"`
	ImageURL       *string   `gorm:"size:512"`
	OwnerID        uint      `gorm:"not null;index"`
	Gender         *string   `gorm:"size:20"`
	Contact        *string   `gorm:"size:255"`
	Location       *string   `gorm:"size:255"`

	Owner User `gorm:"foreignKey:OwnerID"`
}
