// Package console wires the gateway, the collection view models and the
// status workflow into the state one back-office session holds. It is the
// composition layer the admin and manager UIs sit on top of; it renders
// nothing itself.
package console

import (
	"context"

	"carrental-backend/collection"
	"carrental-backend/gateway"
	"carrental-backend/models"
	"carrental-backend/workflow"
)

// DefaultPageSize matches the list screens' fixed page size.
const DefaultPageSize = 8

type Console struct {
	api     *gateway.Client
	session *Session

	Clients      *collection.ViewModel[models.Client]
	Voitures     *collection.ViewModel[models.Voiture]
	Reservations *collection.ViewModel[models.Reservation]
	Managers     *collection.ViewModel[models.Manager]

	clientLoader      gateway.Loader[models.Client]
	voitureLoader     gateway.Loader[models.Voiture]
	reservationLoader gateway.Loader[models.Reservation]
	managerLoader     gateway.Loader[models.Manager]
}

func New(api *gateway.Client, session *Session) *Console {
	// A session restored from storage ("page reload") already holds the
	// bearer token; hand it to the gateway so guarded calls keep working.
	if session.IsAuthenticated() {
		api.SetToken(session.Token())
	}
	return &Console{
		api:          api,
		session:      session,
		Clients:      collection.NewViewModel(ClientView()),
		Voitures:     collection.NewViewModel(VoitureView()),
		Reservations: collection.NewViewModel(ReservationView()),
		Managers:     collection.NewViewModel(ManagerView()),
	}
}

// Login authenticates and persists the session for route guards.
func (c *Console) Login(ctx context.Context, email, password string) error {
	result, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	c.session.SaveLogin(result)
	return nil
}

// Guard is called before rendering any protected screen.
func (c *Console) Guard() error {
	return c.session.RequireAuth()
}

// LoadClients refreshes the client list. Stale responses are discarded by the
// loader, so rapid refreshes cannot apply out of order.
func (c *Console) LoadClients(ctx context.Context) error {
	return c.clientLoader.Load(ctx, c.api.ListClients, c.Clients.SetItems)
}

func (c *Console) LoadVoitures(ctx context.Context) error {
	return c.voitureLoader.Load(ctx, c.api.ListVoitures, c.Voitures.SetItems)
}

func (c *Console) LoadReservations(ctx context.Context) error {
	return c.reservationLoader.Load(ctx, c.api.ListReservations, c.Reservations.SetItems)
}

func (c *Console) LoadManagers(ctx context.Context) error {
	return c.managerLoader.Load(ctx, c.api.ListManagers, c.Managers.SetItems)
}

// UpdateReservationStatus drives one workflow transition and patches the
// loaded collection in place on success.
func (c *Console) UpdateReservationStatus(ctx context.Context, id string, target models.ReservationStatus) (*models.Reservation, error) {
	return workflow.Transition(ctx, c.api, c.Reservations.Items(), id, target)
}

// DeleteClient removes the client remotely, then drops it from the local
// collection. A NotFound on an already-deleted id counts as success.
func (c *Console) DeleteClient(ctx context.Context, id string) error {
	if err := c.api.DeleteClient(ctx, id); err != nil && !gateway.IsNotFound(err) {
		return err
	}
	c.Clients.RemoveItem(func(cl models.Client) bool { return cl.ID.String() == id })
	return nil
}

func (c *Console) DeleteReservation(ctx context.Context, id string) error {
	if err := c.api.DeleteReservation(ctx, id); err != nil && !gateway.IsNotFound(err) {
		return err
	}
	c.Reservations.RemoveItem(func(r models.Reservation) bool { return r.ID.String() == id })
	return nil
}
