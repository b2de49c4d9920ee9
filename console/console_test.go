package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carrental-backend/collection"
	"carrental-backend/gateway"
	"carrental-backend/models"
	"carrental-backend/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(baseURL string) *Console {
	return New(gateway.New(baseURL), NewSession(NewMemoryStorage()))
}

func TestClientViewFiltersByVilleSubstring(t *testing.T) {
	vm := collection.NewViewModel(ClientView())
	vm.SetItems([]models.Client{
		{Nom: "Alami", Adresse: models.Adresse{Ville: "Tétouan"}},
		{Nom: "Bennis", Adresse: models.Adresse{Ville: "Tanger"}},
	})

	vm.SetFilter("ville", "tet")

	page := vm.Visible()
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Alami", page.Items[0].Nom)
}

func TestClientViewSearchesNameEmailPhoneAndCity(t *testing.T) {
	vm := collection.NewViewModel(ClientView())
	vm.SetItems([]models.Client{
		{Nom: "Alami", Prenom: "Sara", Email: "sara@mail.ma", Telephone: "0612345678"},
		{Nom: "Bennis", Prenom: "Omar", Email: "omar@mail.ma", Telephone: "0698765432"},
	})

	vm.SetSearch("sara alami")
	assert.Equal(t, 1, vm.Visible().TotalMatching)

	vm.SetSearch("0698")
	page := vm.Visible()
	require.Equal(t, 1, page.TotalMatching)
	assert.Equal(t, "Bennis", page.Items[0].Nom)
}

func TestVoitureViewOptionFilterRequiresEveryOption(t *testing.T) {
	vm := collection.NewViewModel(VoitureView())
	vm.SetItems([]models.Voiture{
		{Modele: "Clio", Options: models.StringArray{"GPS", "Bluetooth"}},
		{Modele: "Golf", Options: models.StringArray{"GPS", "Climatisation"}},
	})

	vm.SetFilter("options", "GPS")
	assert.Equal(t, 2, vm.Visible().TotalMatching)

	vm.SetFilter("options", "GPS,Climatisation")
	page := vm.Visible()
	require.Equal(t, 1, page.TotalMatching)
	assert.Equal(t, "Golf", page.Items[0].Modele)
}

func TestReservationViewNormalizesStatusFilter(t *testing.T) {
	vm := collection.NewViewModel(ReservationView())
	vm.SetItems([]models.Reservation{
		{ID: uuid.New(), Statut: "en attente"},
		{ID: uuid.New(), Statut: models.StatusAcceptee},
	})

	vm.SetFilter("statut", "en_attente")
	assert.Equal(t, 1, vm.Visible().TotalMatching, "legacy spelling in the data still matches the canonical filter")
}

func TestUpdateReservationStatusPatchesLoadedCollection(t *testing.T) {
	id := uuid.New()
	statusCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/reservations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": id.String(), "statut": "en_attente", "prix_total": 750.0},
		})
	})
	mux.HandleFunc("/reservations/"+id.String()+"/statut", func(w http.ResponseWriter, r *http.Request) {
		statusCalls++
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "acceptee", body["statut"])
		json.NewEncoder(w).Encode(map[string]interface{}{"id": id.String(), "statut": body["statut"]})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestConsole(server.URL)
	require.NoError(t, c.LoadReservations(context.Background()))

	updated, err := c.UpdateReservationStatus(context.Background(), id.String(), models.StatusAcceptee)

	require.NoError(t, err)
	assert.Equal(t, 1, statusCalls)
	assert.Equal(t, models.StatusAcceptee, updated.Statut)
	assert.Equal(t, 750.0, updated.PrixTotal, "only statut changes on the local item")
	assert.Equal(t, models.StatusAcceptee, c.Reservations.Items()[0].Statut)
	assert.Contains(t, c.Reservations.FilterOptions("statut"), "acceptee",
		"the statut selector sees the patched value without a reload")
}

func TestUpdateReservationStatusIllegalEdgeSkipsBackend(t *testing.T) {
	id := uuid.New()
	statusCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/reservations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": id.String(), "statut": "terminee"},
		})
	})
	mux.HandleFunc("/reservations/"+id.String()+"/statut", func(w http.ResponseWriter, r *http.Request) {
		statusCalls++
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestConsole(server.URL)
	require.NoError(t, c.LoadReservations(context.Background()))

	_, err := c.UpdateReservationStatus(context.Background(), id.String(), models.StatusEnAttente)

	var illegal *workflow.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Zero(t, statusCalls)
	assert.Equal(t, models.StatusTerminee, c.Reservations.Items()[0].Statut)
}

func TestDeleteClientTreatsNotFoundAsSuccess(t *testing.T) {
	id := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{{"id": id.String(), "nom": "Alami"}})
	})
	mux.HandleFunc("/clients/"+id.String(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Client not found"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestConsole(server.URL)
	require.NoError(t, c.LoadClients(context.Background()))
	require.Len(t, c.Clients.Items(), 1)

	require.NoError(t, c.DeleteClient(context.Background(), id.String()))
	assert.Empty(t, c.Clients.Items())
}

func TestRestoredSessionAuthenticatesGatewayCalls(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	storage := NewMemoryStorage()
	NewSession(storage).SaveLogin(&gateway.LoginResult{Success: true, Token: "jwt-token"})

	c := New(gateway.New(server.URL), NewSession(storage))

	require.NoError(t, c.Guard())
	require.NoError(t, c.LoadClients(context.Background()))
	assert.Equal(t, "Bearer jwt-token", authHeader)
}

func TestExpiredSessionLeavesGatewayUnauthenticated(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	storage := NewMemoryStorage()
	NewSession(storage).WithClock(func() time.Time { return now }).
		SaveLogin(&gateway.LoginResult{Success: true, Token: "jwt-token"})

	later := NewSession(storage).WithClock(func() time.Time { return now.Add(25 * time.Hour) })
	c := New(gateway.New(server.URL), later)

	assert.True(t, gateway.IsNotAuthenticated(c.Guard()))
	require.NoError(t, c.LoadClients(context.Background()))
	assert.Empty(t, authHeader)
}

func TestGuardRedirectsUnauthenticatedSessions(t *testing.T) {
	c := newTestConsole("http://api.local")

	err := c.Guard()
	assert.True(t, gateway.IsNotAuthenticated(err))
}

func TestLoginPersistsSessionForGuard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"token":   "jwt-token",
			"admin":   map[string]string{"nom": "Amine", "email": "amine@location.ma"},
		})
	}))
	defer server.Close()

	storage := NewMemoryStorage()
	c := New(gateway.New(server.URL), NewSession(storage))

	require.NoError(t, c.Login(context.Background(), "amine@location.ma", "secret"))
	assert.NoError(t, c.Guard())

	// The session survives a "page reload": a fresh Session over the same
	// storage still passes the guard.
	reloaded := NewSession(storage)
	assert.NoError(t, reloaded.RequireAuth())
	admin, ok := reloaded.Admin()
	require.True(t, ok)
	assert.Equal(t, "Amine", admin.Nom)
}
