package models

import "strings"

type ReservationStatus string

const (
	StatusEnAttente ReservationStatus = "en_attente"
	StatusAcceptee  ReservationStatus = "acceptee"
	StatusRefusee   ReservationStatus = "refusee"
	StatusTerminee  ReservationStatus = "terminee"
	StatusAnnulee   ReservationStatus = "annulee"
)

// statusAliases folds the variants seen in legacy data (accented forms,
// "en attente" with a space, the superseded "reservee") into the canonical set.
var statusAliases = map[string]ReservationStatus{
	"en attente": StatusEnAttente,
	"en_attente": StatusEnAttente,
	"acceptée":   StatusAcceptee,
	"acceptee":   StatusAcceptee,
	"reservee":   StatusAcceptee,
	"réservée":   StatusAcceptee,
	"refusée":    StatusRefusee,
	"refusee":    StatusRefusee,
	"terminée":   StatusTerminee,
	"terminee":   StatusTerminee,
	"annulée":    StatusAnnulee,
	"annulee":    StatusAnnulee,
}

// NormalizeStatus maps any known status spelling to its canonical token.
// Unknown tokens are returned lowercased so callers can reject them.
func NormalizeStatus(raw string) ReservationStatus {
	key := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := statusAliases[key]; ok {
		return s
	}
	return ReservationStatus(key)
}

// IsValidReservationStatus reports whether s is one of the canonical tokens.
func IsValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case StatusEnAttente, StatusAcceptee, StatusRefusee, StatusTerminee, StatusAnnulee:
		return true
	}
	return false
}

type VoitureStatus string

const (
	VoitureDisponible  VoitureStatus = "disponible"
	VoitureReservee    VoitureStatus = "reservee"
	VoitureMaintenance VoitureStatus = "maintenance"
	VoitureHorsService VoitureStatus = "hors_service"
)

type TypeCarburant string

const (
	CarburantEssence    TypeCarburant = "essence"
	CarburantDiesel     TypeCarburant = "diesel"
	CarburantHybride    TypeCarburant = "hybride"
	CarburantElectrique TypeCarburant = "electrique"
	CarburantGPL        TypeCarburant = "gpl"
)

type PaymentMethod string

const (
	PaiementCarte    PaymentMethod = "carte"
	PaiementEspeces  PaymentMethod = "especes"
	PaiementCheque   PaymentMethod = "cheque"
	PaiementVirement PaymentMethod = "virement"
)

type PaymentStatus string

const (
	PaiementPaye   PaymentStatus = "paye"
	PaiementImpaye PaymentStatus = "impaye"
)
