package gateway

import (
	"time"

	"carrental-backend/models"
)

// Patch types use pointer fields so an omitted field is left untouched
// server-side (PATCH semantics over a PUT route).

type ClientPatch struct {
	Nom            *string         `json:"nom,omitempty"`
	Prenom         *string         `json:"prenom,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Telephone      *string         `json:"telephone,omitempty"`
	Adresse        *models.Adresse `json:"adresse,omitempty"`
	PermisConduire *string         `json:"permis_conduire,omitempty"`
	NumeroPermis   *string         `json:"numero_permis,omitempty"`
	DateExpiration *time.Time      `json:"date_expiration,omitempty"`
	CIN            *string         `json:"CIN,omitempty"`
	Photo          *string         `json:"photo,omitempty"`
}

type VoiturePatch struct {
	Marque          *string               `json:"marque,omitempty"`
	Modele          *string               `json:"modele,omitempty"`
	Annee           *int                  `json:"annee,omitempty"`
	Immatriculation *string               `json:"immatriculation,omitempty"`
	Couleur         *string               `json:"couleur,omitempty"`
	Kilometrage     *int                  `json:"kilometrage,omitempty"`
	PrixJournalier  *float64              `json:"prix_journalier,omitempty"`
	Status          *models.VoitureStatus `json:"status,omitempty"`
	TypeCarburant   *models.TypeCarburant `json:"type_carburant,omitempty"`
	NombrePlaces    *int                  `json:"nombre_places,omitempty"`
	Options         *[]string             `json:"options,omitempty"`
	Image           *string               `json:"image,omitempty"`
}

type ManagerInput struct {
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Email      string `json:"email"`
	MotDePasse string `json:"mot_de_passe"`
	Telephone  string `json:"telephone"`
}

type ManagerPatch struct {
	Nom       *string               `json:"nom,omitempty"`
	Prenom    *string               `json:"prenom,omitempty"`
	Email     *string               `json:"email,omitempty"`
	Telephone *string               `json:"telephone,omitempty"`
	Statut    *models.ManagerStatus `json:"statut,omitempty"`
}

type ReservationInput struct {
	ClientID          string           `json:"client_id"`
	VoitureID         string           `json:"voiture_id"`
	ManagerCreateurID string           `json:"manager_createur_id"`
	DateDebut         time.Time        `json:"date_debut"`
	DateFin           time.Time        `json:"date_fin"`
	PrixTotal         float64          `json:"prix_total"`
	Paiement          *models.Paiement `json:"paiement,omitempty"`
}

type ReservationPatch struct {
	ClientID          *string          `json:"client_id,omitempty"`
	VoitureID         *string          `json:"voiture_id,omitempty"`
	ManagerTraiteurID *string          `json:"manager_traiteur_id,omitempty"`
	DateDebut         *time.Time       `json:"date_debut,omitempty"`
	DateFin           *time.Time       `json:"date_fin,omitempty"`
	PrixTotal         *float64         `json:"prix_total,omitempty"`
	Paiement          *models.Paiement `json:"paiement,omitempty"`
}
