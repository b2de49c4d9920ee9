// Package workflow encodes the reservation status state machine. The same
// transition table guards the manager console's action buttons and the
// server-side status endpoint, so an illegal edge can never reach the
// database through either path.
package workflow

import (
	"context"
	"fmt"

	"carrental-backend/models"
)

// transitions lists, per state, the states an operator may move to.
// Terminal states (refusee, terminee, annulee) have no outgoing edges.
var transitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.StatusEnAttente: {models.StatusAcceptee, models.StatusRefusee},
	models.StatusAcceptee:  {models.StatusTerminee, models.StatusAnnulee},
	models.StatusRefusee:   {},
	models.StatusTerminee:  {},
	models.StatusAnnulee:   {},
}

// IllegalTransitionError reports a requested edge that is not in the table.
// No backend call is made when this error is returned.
type IllegalTransitionError struct {
	From models.ReservationStatus
	To   models.ReservationStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal reservation transition %q -> %q", e.From, e.To)
}

// NotInCollectionError reports that the reservation to transition was not
// found in the caller's local collection.
type NotInCollectionError struct {
	ID string
}

func (e *NotInCollectionError) Error() string {
	return fmt.Sprintf("reservation %s not in local collection", e.ID)
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to models.ReservationStatus) bool {
	for _, next := range transitions[models.NormalizeStatus(string(from))] {
		if next == models.NormalizeStatus(string(to)) {
			return true
		}
	}
	return false
}

// Next returns the states reachable from the given state.
func Next(from models.ReservationStatus) []models.ReservationStatus {
	next := transitions[models.NormalizeStatus(string(from))]
	out := make([]models.ReservationStatus, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether the state has no outgoing edges.
func IsTerminal(s models.ReservationStatus) bool {
	return len(transitions[models.NormalizeStatus(string(s))]) == 0
}

// StatusChanger is the one gateway operation the workflow needs.
type StatusChanger interface {
	ChangeReservationStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, error)
}

// Transition moves the reservation with the given id to target.
//
// The legality check happens locally first: an illegal edge returns
// *IllegalTransitionError without touching the backend. On a legal edge the
// status change is sent through the gateway; only after it succeeds is the
// caller's slice patched in place (statut only, every other field kept).
// On a backend failure the slice is left exactly as it was.
func Transition(ctx context.Context, changer StatusChanger, reservations []models.Reservation, id string, target models.ReservationStatus) (*models.Reservation, error) {
	target = models.NormalizeStatus(string(target))
	if !models.IsValidReservationStatus(target) {
		return nil, &IllegalTransitionError{From: "", To: target}
	}

	idx := -1
	for i := range reservations {
		if reservations[i].ID.String() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotInCollectionError{ID: id}
	}

	from := models.NormalizeStatus(string(reservations[idx].Statut))
	if !CanTransition(from, target) {
		return nil, &IllegalTransitionError{From: from, To: target}
	}

	if _, err := changer.ChangeReservationStatus(ctx, id, target); err != nil {
		return nil, err
	}

	// Patch statut only; every other field of the local item stays put.
	reservations[idx].Statut = target
	return &reservations[idx], nil
}
