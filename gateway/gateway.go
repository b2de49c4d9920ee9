// Package gateway is the typed client for the rental API, used by the admin
// and manager consoles. Every operation is one HTTP request; the gateway owns
// URL and payload shaping plus the error taxonomy, nothing else. It never
// retries: a retry, if any, is a user-facing action in the caller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"carrental-backend/models"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches the JWT used on guarded routes.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &NotAuthenticatedError{Message: apiMessage(raw, "not authenticated")}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Kind: path, ID: ""}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return parseValidationError(raw)
	case resp.StatusCode >= 500:
		return &NetworkError{Op: op, Err: fmt.Errorf("server returned %d", resp.StatusCode)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &NetworkError{Op: op, Err: err}
		}
	}
	return nil
}

func apiMessage(raw []byte, fallback string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return fallback
}

func parseValidationError(raw []byte) error {
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return &ValidationError{Message: "request rejected"}
	}
	return &ValidationError{Message: body.Error, Fields: body.Fields}
}

// ─── Auth ───────────────────────────────────────────────────────────────────

type LoginResult struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	Admin   *models.Admin   `json:"admin,omitempty"`
	Manager *models.Manager `json:"manager,omitempty"`
}

// Login authenticates an admin and stores the session token on success.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/admin/login", payload, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// ManagerLogin authenticates a manager console session.
func (c *Client) ManagerLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/manager/login", payload, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// ─── Clients ────────────────────────────────────────────────────────────────

func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	if err := c.do(ctx, http.MethodGet, "/clients", nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *Client) CreateClient(ctx context.Context, client models.Client) (*models.Client, error) {
	var created models.Client
	if err := c.do(ctx, http.MethodPost, "/clients", client, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateClient(ctx context.Context, id string, patch ClientPatch) (*models.Client, error) {
	var updated models.Client
	if err := c.do(ctx, http.MethodPut, "/clients/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/clients/"+id, nil, nil)
}

// ─── Voitures ───────────────────────────────────────────────────────────────

func (c *Client) ListVoitures(ctx context.Context) ([]models.Voiture, error) {
	voitures := []models.Voiture{}
	if err := c.do(ctx, http.MethodGet, "/voiture", nil, &voitures); err != nil {
		return nil, err
	}
	return voitures, nil
}

func (c *Client) CreateVoiture(ctx context.Context, voiture models.Voiture) (*models.Voiture, error) {
	var created models.Voiture
	if err := c.do(ctx, http.MethodPost, "/voiture", voiture, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateVoiture(ctx context.Context, id string, patch VoiturePatch) (*models.Voiture, error) {
	var updated models.Voiture
	if err := c.do(ctx, http.MethodPut, "/voiture/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteVoiture(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/voiture/"+id, nil, nil)
}

// VoitureImageURL resolves the image endpoint for a vehicle, degrading to a
// placeholder when no image was ever attached.
func (c *Client) VoitureImageURL(v models.Voiture) string {
	if v.Image == "" {
		return models.PlaceholderImage
	}
	return c.BaseURL + "/voiture/" + v.ID.String() + "/image"
}

// ─── Managers ───────────────────────────────────────────────────────────────

func (c *Client) ListManagers(ctx context.Context) ([]models.Manager, error) {
	managers := []models.Manager{}
	if err := c.do(ctx, http.MethodGet, "/managers", nil, &managers); err != nil {
		return nil, err
	}
	return managers, nil
}

func (c *Client) CreateManager(ctx context.Context, manager ManagerInput) (*models.Manager, error) {
	var created models.Manager
	if err := c.do(ctx, http.MethodPost, "/managers", manager, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateManager(ctx context.Context, id string, patch ManagerPatch) (*models.Manager, error) {
	var updated models.Manager
	if err := c.do(ctx, http.MethodPut, "/managers/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteManager(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/managers/"+id, nil, nil)
}

// ─── Reservations ───────────────────────────────────────────────────────────

func (c *Client) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	if err := c.do(ctx, http.MethodGet, "/reservations", nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (c *Client) CreateReservation(ctx context.Context, input ReservationInput) (*models.Reservation, error) {
	var created models.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservations", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateReservation(ctx context.Context, id string, patch ReservationPatch) (*models.Reservation, error) {
	var updated models.Reservation
	if err := c.do(ctx, http.MethodPut, "/reservations/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteReservation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reservations/"+id, nil, nil)
}

// ChangeReservationStatus is the one write the status workflow performs:
// a PATCH restricted to the statut field.
func (c *Client) ChangeReservationStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, error) {
	var updated models.Reservation
	payload := map[string]models.ReservationStatus{"statut": status}
	if err := c.do(ctx, http.MethodPatch, "/reservations/"+id+"/statut", payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ─── Dashboard ──────────────────────────────────────────────────────────────

type DashboardStats struct {
	TotalReservations int64 `json:"totalReservations"`
	AvailableCars     int64 `json:"availableCars"`
	ActiveClients     int64 `json:"activeClients"`
	TotalVoitures     int64 `json:"total_voitures"`
	TotalClients      int64 `json:"total_clients"`
}

func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
