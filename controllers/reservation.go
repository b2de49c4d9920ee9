package controllers

import (
	"errors"
	"net/http"
	"time"

	"carrental-backend/config"
	"carrental-backend/models"
	"carrental-backend/utils"
	"carrental-backend/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReservationInput struct {
	ClientID          string           `json:"client_id" binding:"required"`
	VoitureID         string           `json:"voiture_id" binding:"required"`
	ManagerCreateurID string           `json:"manager_createur_id"`
	DateDebut         time.Time        `json:"date_debut" binding:"required"`
	DateFin           time.Time        `json:"date_fin" binding:"required"`
	PrixTotal         float64          `json:"prix_total" binding:"min=0"`
	Paiement          *models.Paiement `json:"paiement"`
}

type UpdateReservationInput struct {
	ClientID          *string          `json:"client_id"`
	VoitureID         *string          `json:"voiture_id"`
	ManagerTraiteurID *string          `json:"manager_traiteur_id"`
	DateDebut         *time.Time       `json:"date_debut"`
	DateFin           *time.Time       `json:"date_fin"`
	PrixTotal         *float64         `json:"prix_total"`
	Paiement          *models.Paiement `json:"paiement"`
}

type ChangeStatusInput struct {
	Statut string `json:"statut" binding:"required"`
}

// CreateReservation books a car for a client
func CreateReservation(c *gin.Context) {
	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	clientUUID, err := uuid.Parse(input.ClientID)
	if err != nil {
		utils.RespondWithValidationError(c, "Invalid input", map[string]string{
			"client_id": "Invalid client ID format",
		})
		return
	}
	voitureUUID, err := uuid.Parse(input.VoitureID)
	if err != nil {
		utils.RespondWithValidationError(c, "Invalid input", map[string]string{
			"voiture_id": "Invalid car ID format",
		})
		return
	}

	if input.DateFin.Before(input.DateDebut) {
		utils.RespondWithValidationError(c, "Invalid input", map[string]string{
			"date_fin": "End date must not be before start date",
		})
		return
	}

	// Creator defaults to the authenticated manager
	creatorID := input.ManagerCreateurID
	if creatorID == "" {
		if subject, exists := c.Get("subjectId"); exists {
			creatorID, _ = subject.(string)
		}
	}
	creatorUUID, err := uuid.Parse(creatorID)
	if err != nil {
		utils.RespondWithValidationError(c, "Invalid input", map[string]string{
			"manager_createur_id": "Invalid manager ID format",
		})
		return
	}

	// Referenced client and car must exist
	var client models.Client
	if err := config.DB.Where("id = ?", clientUUID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	var voiture models.Voiture
	if err := config.DB.Where("id = ?", voitureUUID).First(&voiture).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Car not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Default the price from the car's daily rate when not supplied
	prix := input.PrixTotal
	if prix == 0 {
		days := utils.DaysBetween(input.DateDebut, input.DateFin) + 1
		prix = float64(days) * voiture.PrixJournalier
	}

	reservation := models.Reservation{
		ID:                uuid.New(),
		ClientID:          clientUUID,
		VoitureID:         voitureUUID,
		ManagerCreateurID: creatorUUID,
		DateDebut:         input.DateDebut,
		DateFin:           input.DateFin,
		PrixTotal:         prix,
		Statut:            models.StatusEnAttente,
		Paiement:          input.Paiement,
		DateReservation:   time.Now(),
	}

	if err := config.DB.Create(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetReservations lists reservations with client and car references expanded
func GetReservations(c *gin.Context) {
	var reservations []models.Reservation
	query := config.DB.Preload("Client").Preload("Voiture").Order("date_reservation DESC")

	if statut := c.Query("statut"); statut != "" {
		query = query.Where("statut = ?", models.NormalizeStatus(statut))
	}

	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// GetReservation retrieves one reservation by ID
func GetReservation(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var reservation models.Reservation
	if err := config.DB.Preload("Client").Preload("Voiture").
		Where("id = ?", reservationUUID).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation edits a reservation's bookable fields. Status changes go
// through ChangeReservationStatus so the transition table stays authoritative.
func UpdateReservation(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var input UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var reservation models.Reservation
	if err := config.DB.Where("id = ?", reservationUUID).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientID != nil {
		id, err := uuid.Parse(*input.ClientID)
		if err != nil {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"client_id": "Invalid client ID format",
			})
			return
		}
		reservation.ClientID = id
	}
	if input.VoitureID != nil {
		id, err := uuid.Parse(*input.VoitureID)
		if err != nil {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"voiture_id": "Invalid car ID format",
			})
			return
		}
		reservation.VoitureID = id
	}
	if input.ManagerTraiteurID != nil {
		id, err := uuid.Parse(*input.ManagerTraiteurID)
		if err != nil {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"manager_traiteur_id": "Invalid manager ID format",
			})
			return
		}
		reservation.ManagerTraiteurID = &id
	}
	if input.DateDebut != nil {
		reservation.DateDebut = *input.DateDebut
	}
	if input.DateFin != nil {
		reservation.DateFin = *input.DateFin
	}
	if reservation.DateFin.Before(reservation.DateDebut) {
		utils.RespondWithValidationError(c, "Invalid input", map[string]string{
			"date_fin": "End date must not be before start date",
		})
		return
	}
	if input.PrixTotal != nil {
		if *input.PrixTotal < 0 {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"prix_total": "Total price cannot be negative",
			})
			return
		}
		reservation.PrixTotal = *input.PrixTotal
	}
	if input.Paiement != nil {
		reservation.Paiement = input.Paiement
	}

	if err := config.DB.Save(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// ChangeReservationStatus applies one workflow transition. The edge is
// validated against the transition table before anything is written; an
// illegal edge is a 409 and leaves the row untouched. The acting manager is
// recorded as the handler.
func ChangeReservationStatus(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var input ChangeStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	target := models.NormalizeStatus(input.Statut)
	if !models.IsValidReservationStatus(target) {
		utils.RespondWithValidationError(c, "Invalid input", map[string]string{
			"statut": "Unknown reservation status",
		})
		return
	}

	var reservation models.Reservation
	if err := config.DB.Where("id = ?", reservationUUID).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !workflow.CanTransition(reservation.Statut, target) {
		utils.RespondWithError(c, http.StatusConflict,
			(&workflow.IllegalTransitionError{From: reservation.Statut, To: target}).Error())
		return
	}

	reservation.Statut = target
	if subject, exists := c.Get("subjectId"); exists {
		if subjectID, ok := subject.(string); ok {
			if managerUUID, err := uuid.Parse(subjectID); err == nil {
				reservation.ManagerTraiteurID = &managerUUID
			}
		}
	}

	if err := config.DB.Save(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reservation status")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation removes a reservation
func DeleteReservation(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	result := config.DB.Where("id = ?", reservationUUID).Delete(&models.Reservation{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete reservation")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}
