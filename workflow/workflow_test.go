package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"carrental-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChanger struct {
	calls   int
	lastID  string
	last    models.ReservationStatus
	failErr error
}

func (f *fakeChanger) ChangeReservationStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, error) {
	f.calls++
	f.lastID = id
	f.last = status
	if f.failErr != nil {
		return nil, f.failErr
	}
	return &models.Reservation{Statut: status}, nil
}

func reservationFixture(statut models.ReservationStatus) models.Reservation {
	return models.Reservation{
		ID:        uuid.New(),
		Statut:    statut,
		PrixTotal: 1200,
		DateDebut: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DateFin:   time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to models.ReservationStatus
		legal    bool
	}{
		{models.StatusEnAttente, models.StatusAcceptee, true},
		{models.StatusEnAttente, models.StatusRefusee, true},
		{models.StatusEnAttente, models.StatusTerminee, false},
		{models.StatusAcceptee, models.StatusTerminee, true},
		{models.StatusAcceptee, models.StatusAnnulee, true},
		{models.StatusAcceptee, models.StatusEnAttente, false},
		{models.StatusRefusee, models.StatusEnAttente, false},
		{models.StatusTerminee, models.StatusEnAttente, false},
		{models.StatusAnnulee, models.StatusAcceptee, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.legal, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionNormalizesLegacyTokens(t *testing.T) {
	assert.True(t, CanTransition("en attente", "acceptée"))
	assert.True(t, CanTransition("reservee", "terminee"))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(models.StatusEnAttente))
	assert.False(t, IsTerminal(models.StatusAcceptee))
	assert.True(t, IsTerminal(models.StatusRefusee))
	assert.True(t, IsTerminal(models.StatusTerminee))
	assert.True(t, IsTerminal(models.StatusAnnulee))
}

func TestNextReturnsCopy(t *testing.T) {
	next := Next(models.StatusEnAttente)
	require.Len(t, next, 2)
	next[0] = models.StatusAnnulee

	assert.Equal(t, models.StatusAcceptee, Next(models.StatusEnAttente)[0])
}

func TestTransitionAcceptsPendingReservation(t *testing.T) {
	changer := &fakeChanger{}
	reservations := []models.Reservation{
		reservationFixture(models.StatusEnAttente),
		reservationFixture(models.StatusTerminee),
	}
	before := reservations[0]

	updated, err := Transition(context.Background(), changer, reservations, before.ID.String(), models.StatusAcceptee)

	require.NoError(t, err)
	assert.Equal(t, 1, changer.calls)
	assert.Equal(t, before.ID.String(), changer.lastID)
	assert.Equal(t, models.StatusAcceptee, changer.last)

	// The local item is patched in place: statut changed, nothing else.
	assert.Equal(t, models.StatusAcceptee, reservations[0].Statut)
	assert.Equal(t, before.PrixTotal, reservations[0].PrixTotal)
	assert.Equal(t, before.DateDebut, reservations[0].DateDebut)
	assert.Equal(t, before.ID, reservations[0].ID)
	assert.Same(t, &reservations[0], updated)

	// The other reservation is untouched.
	assert.Equal(t, models.StatusTerminee, reservations[1].Statut)
}

func TestTransitionIllegalEdgeMakesNoBackendCall(t *testing.T) {
	changer := &fakeChanger{}
	reservations := []models.Reservation{reservationFixture(models.StatusTerminee)}

	_, err := Transition(context.Background(), changer, reservations, reservations[0].ID.String(), models.StatusEnAttente)

	var illegal *IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, models.StatusTerminee, illegal.From)
	assert.Equal(t, models.StatusEnAttente, illegal.To)
	assert.Zero(t, changer.calls, "illegal transition must not reach the backend")
	assert.Equal(t, models.StatusTerminee, reservations[0].Statut)
}

func TestTransitionBackendFailureLeavesCollectionUnchanged(t *testing.T) {
	changer := &fakeChanger{failErr: errors.New("boom")}
	reservations := []models.Reservation{reservationFixture(models.StatusEnAttente)}

	_, err := Transition(context.Background(), changer, reservations, reservations[0].ID.String(), models.StatusAcceptee)

	require.Error(t, err)
	assert.Equal(t, 1, changer.calls)
	assert.Equal(t, models.StatusEnAttente, reservations[0].Statut)
}

func TestTransitionUnknownReservation(t *testing.T) {
	changer := &fakeChanger{}
	reservations := []models.Reservation{reservationFixture(models.StatusEnAttente)}

	_, err := Transition(context.Background(), changer, reservations, uuid.NewString(), models.StatusAcceptee)

	var missing *NotInCollectionError
	require.ErrorAs(t, err, &missing)
	assert.Zero(t, changer.calls)
}

func TestTransitionRejectsUnknownTargetStatus(t *testing.T) {
	changer := &fakeChanger{}
	reservations := []models.Reservation{reservationFixture(models.StatusEnAttente)}

	_, err := Transition(context.Background(), changer, reservations, reservations[0].ID.String(), "confirmed")

	var illegal *IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Zero(t, changer.calls)
}

func TestTransitionAcceptsAccentedTarget(t *testing.T) {
	changer := &fakeChanger{}
	reservations := []models.Reservation{reservationFixture(models.StatusEnAttente)}

	_, err := Transition(context.Background(), changer, reservations, reservations[0].ID.String(), "acceptée")

	require.NoError(t, err)
	assert.Equal(t, models.StatusAcceptee, changer.last, "legacy spelling is canonicalized before the call")
	assert.Equal(t, models.StatusAcceptee, reservations[0].Statut)
}
