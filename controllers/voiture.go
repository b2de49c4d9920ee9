package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"carrental-backend/config"
	"carrental-backend/models"
	"carrental-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateVoitureInput defines the expected JSON structure for adding a car
type CreateVoitureInput struct {
	Marque          string               `json:"marque" binding:"required"`
	Modele          string               `json:"modele" binding:"required"`
	Annee           int                  `json:"annee" binding:"required,min=1950"`
	Immatriculation string               `json:"immatriculation" binding:"required"`
	Couleur         string               `json:"couleur"`
	Kilometrage     int                  `json:"kilometrage" binding:"min=0"`
	PrixJournalier  float64              `json:"prix_journalier" binding:"required,min=0"`
	Status          models.VoitureStatus `json:"status"`
	TypeCarburant   models.TypeCarburant `json:"type_carburant" binding:"required"`
	NombrePlaces    int                  `json:"nombre_places" binding:"required,min=1,max=9"`
	Options         []string             `json:"options"`
	Image           string               `json:"image"`
}

type UpdateVoitureInput struct {
	Marque          *string               `json:"marque"`
	Modele          *string               `json:"modele"`
	Annee           *int                  `json:"annee"`
	Immatriculation *string               `json:"immatriculation"`
	Couleur         *string               `json:"couleur"`
	Kilometrage     *int                  `json:"kilometrage"`
	PrixJournalier  *float64              `json:"prix_journalier"`
	Status          *models.VoitureStatus `json:"status"`
	TypeCarburant   *models.TypeCarburant `json:"type_carburant"`
	NombrePlaces    *int                  `json:"nombre_places"`
	Options         *[]string             `json:"options"`
	Image           *string               `json:"image"`
}

var validVoitureStatus = map[models.VoitureStatus]bool{
	models.VoitureDisponible:  true,
	models.VoitureReservee:    true,
	models.VoitureMaintenance: true,
	models.VoitureHorsService: true,
}

var validCarburant = map[models.TypeCarburant]bool{
	models.CarburantEssence:    true,
	models.CarburantDiesel:     true,
	models.CarburantHybride:    true,
	models.CarburantElectrique: true,
	models.CarburantGPL:        true,
}

// CreateVoiture adds a car to the fleet
func CreateVoiture(c *gin.Context) {
	var input CreateVoitureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	fields := map[string]string{}
	if !utils.ValidatePlate(input.Immatriculation) {
		fields["immatriculation"] = "Invalid registration plate format"
	}
	if input.Status != "" && !validVoitureStatus[input.Status] {
		fields["status"] = "Unknown vehicle status"
	}
	if !validCarburant[input.TypeCarburant] {
		fields["type_carburant"] = "Unknown fuel type"
	}
	if len(fields) > 0 {
		utils.RespondWithValidationError(c, "Invalid input", fields)
		return
	}

	// Plates are unique across the fleet
	var existing models.Voiture
	if err := config.DB.Where("immatriculation = ?", strings.ToUpper(input.Immatriculation)).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A car with this registration plate already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	voiture := models.Voiture{
		ID:              uuid.New(),
		Marque:          input.Marque,
		Modele:          input.Modele,
		Annee:           input.Annee,
		Immatriculation: strings.ToUpper(input.Immatriculation),
		Couleur:         input.Couleur,
		Kilometrage:     input.Kilometrage,
		PrixJournalier:  input.PrixJournalier,
		Status:          input.Status,
		TypeCarburant:   input.TypeCarburant,
		NombrePlaces:    input.NombrePlaces,
		Options:         input.Options,
		Image:           input.Image,
		DateAjout:       time.Now(),
	}

	if err := config.DB.Create(&voiture).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create car")
		return
	}

	c.JSON(http.StatusCreated, voiture)
}

// GetVoitures lists the fleet, newest first
func GetVoitures(c *gin.Context) {
	var voitures []models.Voiture
	query := config.DB.Order("date_ajout DESC")

	// Public catalog filters by availability
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&voitures).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve cars")
		return
	}

	c.JSON(http.StatusOK, voitures)
}

// GetVoiture retrieves one car by ID
func GetVoiture(c *gin.Context) {
	voitureUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
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

	c.JSON(http.StatusOK, voiture)
}

// GetVoitureImage resolves a car's image reference. A car without an image
// degrades to the placeholder rather than a 404.
func GetVoitureImage(c *gin.Context) {
	voitureUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
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

	image := voiture.Image
	if image == "" {
		image = models.PlaceholderImage
	}
	c.JSON(http.StatusOK, gin.H{"image": image})
}

// UpdateVoiture updates an existing car
func UpdateVoiture(c *gin.Context) {
	voitureUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	var input UpdateVoitureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	if input.Marque != nil {
		voiture.Marque = *input.Marque
	}
	if input.Modele != nil {
		voiture.Modele = *input.Modele
	}
	if input.Annee != nil {
		voiture.Annee = *input.Annee
	}
	if input.Immatriculation != nil {
		plate := strings.ToUpper(*input.Immatriculation)
		if !utils.ValidatePlate(plate) {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"immatriculation": "Invalid registration plate format",
			})
			return
		}
		if voiture.Immatriculation != plate {
			var existing models.Voiture
			if err := config.DB.Where("immatriculation = ?", plate).First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "A car with this registration plate already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		voiture.Immatriculation = plate
	}
	if input.Couleur != nil {
		voiture.Couleur = *input.Couleur
	}
	if input.Kilometrage != nil {
		if *input.Kilometrage < 0 {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"kilometrage": "Mileage cannot be negative",
			})
			return
		}
		voiture.Kilometrage = *input.Kilometrage
	}
	if input.PrixJournalier != nil {
		if *input.PrixJournalier < 0 {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"prix_journalier": "Daily price cannot be negative",
			})
			return
		}
		voiture.PrixJournalier = *input.PrixJournalier
	}
	if input.Status != nil {
		if !validVoitureStatus[*input.Status] {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"status": "Unknown vehicle status",
			})
			return
		}
		voiture.Status = *input.Status
	}
	if input.TypeCarburant != nil {
		if !validCarburant[*input.TypeCarburant] {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"type_carburant": "Unknown fuel type",
			})
			return
		}
		voiture.TypeCarburant = *input.TypeCarburant
	}
	if input.NombrePlaces != nil {
		if *input.NombrePlaces < 1 || *input.NombrePlaces > 9 {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"nombre_places": "Seat count must be between 1 and 9",
			})
			return
		}
		voiture.NombrePlaces = *input.NombrePlaces
	}
	if input.Options != nil {
		voiture.Options = *input.Options
	}
	if input.Image != nil {
		voiture.Image = *input.Image
	}

	if err := config.DB.Save(&voiture).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update car")
		return
	}

	c.JSON(http.StatusOK, voiture)
}

// DeleteVoiture removes a car from the fleet
func DeleteVoiture(c *gin.Context) {
	voitureUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	result := config.DB.Where("id = ?", voitureUUID).Delete(&models.Voiture{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete car")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Car not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}
