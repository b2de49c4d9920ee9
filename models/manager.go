package models

import (
	"time"

	"carrental-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ManagerStatus string

const (
	ManagerActif   ManagerStatus = "actif"
	ManagerInactif ManagerStatus = "inactif"
)

type Manager struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Nom        string        `gorm:"not null" json:"nom"`
	Prenom     string        `gorm:"not null" json:"prenom"`
	Email      string        `gorm:"uniqueIndex;not null" json:"email"`
	MotDePasse string        `gorm:"not null" json:"-"`
	Telephone  string        `gorm:"uniqueIndex;not null" json:"telephone"`
	Statut     ManagerStatus `gorm:"type:varchar(10);default:'actif'" json:"statut"`

	DateCreation time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"date_creation"`

	ReservationsCreees   []Reservation `gorm:"foreignKey:ManagerCreateurID" json:"-"`
	ReservationsTraitees []Reservation `gorm:"foreignKey:ManagerTraiteurID" json:"-"`

	gorm.Model `json:"-"`
}

// Hash the password before persisting.
func (m *Manager) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Statut == "" {
		m.Statut = ManagerActif
	}
	if m.DateCreation.IsZero() {
		m.DateCreation = time.Now()
	}
	hashed, err := utils.HashPassword(m.MotDePasse)
	if err != nil {
		return err
	}
	m.MotDePasse = hashed
	return
}
