package models

import (
	"time"

	"carrental-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Admin struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Nom        string `gorm:"not null" json:"nom"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	MotDePasse string `gorm:"not null" json:"-"`

	DateCreation time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"date_creation"`

	gorm.Model `json:"-"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.DateCreation.IsZero() {
		a.DateCreation = time.Now()
	}
	hashed, err := utils.HashPassword(a.MotDePasse)
	if err != nil {
		return err
	}
	a.MotDePasse = hashed
	return
}
