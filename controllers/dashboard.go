package controllers

import (
	"net/http"
	"time"

	"carrental-backend/config"
	"carrental-backend/models"
	"carrental-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpcomingReservation struct {
	ClientName string    `json:"clientName"`
	CarModel   string    `json:"carModel"`
	StartDate  time.Time `json:"startDate"`
	Status     string    `json:"status"`
}

type CalendarEntry struct {
	ID         string    `json:"id"`
	ClientName string    `json:"clientName"`
	CarModel   string    `json:"carModel"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Status     string    `json:"status"`
}

// GetDashboardStats aggregates the numbers the admin dashboard opens with.
func GetDashboardStats(c *gin.Context) {
	now := time.Now()

	var totalReservations int64
	config.DB.Model(&models.Reservation{}).Count(&totalReservations)

	var totalVoitures int64
	config.DB.Model(&models.Voiture{}).Count(&totalVoitures)

	var totalClients int64
	config.DB.Model(&models.Client{}).Count(&totalClients)

	// Cars with a reservation covering today are not available
	var reservedCars int64
	config.DB.Model(&models.Reservation{}).
		Where("date_debut <= ? AND date_fin >= ? AND statut = ?", now, now, models.StatusAcceptee).
		Distinct("voiture_id").Count(&reservedCars)
	availableCars := totalVoitures - reservedCars
	if availableCars < 0 {
		availableCars = 0
	}

	// Clients with a reservation that has not ended yet
	var activeClients int64
	config.DB.Model(&models.Reservation{}).
		Where("date_fin >= ?", now).
		Distinct("client_id").Count(&activeClients)

	c.JSON(http.StatusOK, gin.H{
		"totalReservations": totalReservations,
		"availableCars":     availableCars,
		"activeClients":     activeClients,
		"total_voitures":    totalVoitures,
		"total_clients":     totalClients,
	})
}

// GetUpcomingReservations lists reservations that have not started yet,
// soonest first, with the display fields expanded.
func GetUpcomingReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := config.DB.Preload("Client").Preload("Voiture").
		Where("date_debut >= ?", time.Now()).
		Order("date_debut ASC").
		Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	upcoming := make([]UpcomingReservation, 0, len(reservations))
	for _, r := range reservations {
		upcoming = append(upcoming, UpcomingReservation{
			ClientName: displayClientName(r.Client),
			CarModel:   displayCarModel(r.Voiture),
			StartDate:  r.DateDebut,
			Status:     string(r.Statut),
		})
	}

	c.JSON(http.StatusOK, gin.H{"upcomingReservations": upcoming})
}

// GetCalendarReservations feeds the calendar view: every reservation with
// its date span and expanded display fields.
func GetCalendarReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := config.DB.Preload("Client").Preload("Voiture").
		Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	entries := make([]CalendarEntry, 0, len(reservations))
	for _, r := range reservations {
		entries = append(entries, CalendarEntry{
			ID:         r.ID.String(),
			ClientName: displayClientName(r.Client),
			CarModel:   displayCarModel(r.Voiture),
			StartDate:  r.DateDebut,
			EndDate:    r.DateFin,
			Status:     string(r.Statut),
		})
	}

	c.JSON(http.StatusOK, gin.H{"reservations": entries})
}

func displayClientName(client *models.Client) string {
	if client == nil {
		return "Unknown"
	}
	return client.Prenom + " " + client.Nom
}

func displayCarModel(voiture *models.Voiture) string {
	if voiture == nil {
		return "Unknown"
	}
	return voiture.Marque + " " + voiture.Modele
}
