package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]ReservationStatus{
		"en_attente": StatusEnAttente,
		"en attente": StatusEnAttente,
		"En_Attente": StatusEnAttente,
		"acceptee":   StatusAcceptee,
		"acceptée":   StatusAcceptee,
		"reservee":   StatusAcceptee,
		"refusee":    StatusRefusee,
		"refusée":    StatusRefusee,
		"terminee":   StatusTerminee,
		"terminée":   StatusTerminee,
		"annulee":    StatusAnnulee,
		"annulée":    StatusAnnulee,
		"  acceptee ": StatusAcceptee,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "raw %q", raw)
	}

	// Unknown tokens pass through so validation can name them in errors.
	assert.Equal(t, ReservationStatus("confirmed"), NormalizeStatus("confirmed"))
}

func TestIsValidReservationStatus(t *testing.T) {
	for _, s := range []ReservationStatus{StatusEnAttente, StatusAcceptee, StatusRefusee, StatusTerminee, StatusAnnulee} {
		assert.True(t, IsValidReservationStatus(s))
	}
	assert.False(t, IsValidReservationStatus("confirmed"))
	assert.False(t, IsValidReservationStatus(""))
}
