package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is a jsonb-backed list of option tags (GPS, Bluetooth, ...).
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

// PlaceholderImage is served for vehicles without an uploaded photo.
const PlaceholderImage = "/static/placeholder-car.png"

type Voiture struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Marque          string        `gorm:"not null" json:"marque"`
	Modele          string        `gorm:"not null" json:"modele"`
	Annee           int           `json:"annee"`
	Immatriculation string        `gorm:"uniqueIndex;not null" json:"immatriculation"`
	Couleur         string        `json:"couleur"`
	Kilometrage     int           `gorm:"default:0" json:"kilometrage"`
	PrixJournalier  float64       `gorm:"type:decimal(10,2);not null" json:"prix_journalier"`
	Status          VoitureStatus `gorm:"type:varchar(20);default:'disponible'" json:"status"`
	TypeCarburant   TypeCarburant `gorm:"type:varchar(20)" json:"type_carburant"`
	NombrePlaces    int           `gorm:"default:5" json:"nombre_places"`
	Options         StringArray   `gorm:"type:jsonb;default:'[]'" json:"options"`
	Image           string        `json:"image,omitempty"`

	DateAjout time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"date_ajout"`

	Reservations []Reservation `gorm:"foreignKey:VoitureID" json:"-"`

	gorm.Model `json:"-"`
}

func (v *Voiture) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Status == "" {
		v.Status = VoitureDisponible
	}
	if v.DateAjout.IsZero() {
		v.DateAjout = time.Now()
	}
	return
}
