package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Adresse is stored as a jsonb column, matching the document shape the
// legacy API exposed under "adresse".
type Adresse struct {
	Rue         string `json:"rue"`
	Immeuble    string `json:"immeuble,omitempty"`
	Appartement string `json:"appartement,omitempty"`
	Ville       string `json:"ville"`
	CodePostal  string `json:"code_postal"`
	Pays        string `json:"pays,omitempty"`
}

func (a Adresse) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Adresse) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}

type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Nom       string  `gorm:"not null" json:"nom"`
	Prenom    string  `gorm:"not null" json:"prenom"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Telephone string  `gorm:"not null" json:"telephone"`
	Adresse   Adresse `gorm:"type:jsonb;default:'{}'" json:"adresse"`

	PermisConduire string     `gorm:"type:varchar(5)" json:"permis_conduire"` // A, B, C, D...
	NumeroPermis   string     `json:"numero_permis"`
	DateExpiration *time.Time `json:"date_expiration,omitempty"`
	CIN            string     `gorm:"column:cin" json:"CIN"`
	Photo          string     `json:"photo,omitempty"`

	DateAjout time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"date_ajout"`

	Reservations []Reservation `gorm:"foreignKey:ClientID" json:"-"`

	gorm.Model `json:"-"`
}

func (cl *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	if cl.DateAjout.IsZero() {
		cl.DateAjout = time.Now()
	}
	return
}
