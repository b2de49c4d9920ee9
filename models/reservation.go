package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Paiement is the optional payment sub-record carried on a reservation,
// stored as jsonb like the legacy document did.
type Paiement struct {
	Methode      PaymentMethod `json:"methode"`
	Statut       PaymentStatus `json:"statut"`
	DatePaiement *time.Time    `json:"date_paiement,omitempty"`
}

func (p Paiement) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Paiement) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, p)
}

type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	ClientID          uuid.UUID  `gorm:"type:uuid;index;not null" json:"client_id"`
	VoitureID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"voiture_id"`
	ManagerCreateurID uuid.UUID  `gorm:"type:uuid;index;not null" json:"manager_createur_id"`
	ManagerTraiteurID *uuid.UUID `gorm:"type:uuid;index" json:"manager_traiteur_id,omitempty"`

	DateDebut time.Time `gorm:"not null" json:"date_debut"`
	DateFin   time.Time `gorm:"not null" json:"date_fin"`
	PrixTotal float64   `gorm:"type:decimal(10,2);not null" json:"prix_total"`

	Statut   ReservationStatus `gorm:"type:varchar(20);default:'en_attente'" json:"statut"`
	Paiement *Paiement         `gorm:"type:jsonb" json:"paiement,omitempty"`

	DateReservation time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"date_reservation"`

	Client  *Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Voiture *Voiture `gorm:"foreignKey:VoitureID" json:"voiture,omitempty"`

	gorm.Model `json:"-"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Statut == "" {
		r.Statut = StatusEnAttente
	}
	if r.DateReservation.IsZero() {
		r.DateReservation = time.Now()
	}
	return
}
