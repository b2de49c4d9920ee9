package controllers

import (
	"errors"
	"net/http"
	"time"

	"carrental-backend/config"
	"carrental-backend/models"
	"carrental-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Nom            string         `json:"nom" binding:"required"`
	Prenom         string         `json:"prenom" binding:"required"`
	Email          string         `json:"email" binding:"required,email"`
	Telephone      string         `json:"telephone" binding:"required"`
	Adresse        models.Adresse `json:"adresse"`
	PermisConduire string         `json:"permis_conduire"`
	NumeroPermis   string         `json:"numero_permis"`
	DateExpiration *time.Time     `json:"date_expiration"`
	CIN            string         `json:"CIN"`
	Photo          string         `json:"photo"`
}

// UpdateClientInput uses pointers so omitted fields keep their stored value
type UpdateClientInput struct {
	Nom            *string         `json:"nom"`
	Prenom         *string         `json:"prenom"`
	Email          *string         `json:"email"`
	Telephone      *string         `json:"telephone"`
	Adresse        *models.Adresse `json:"adresse"`
	PermisConduire *string         `json:"permis_conduire"`
	NumeroPermis   *string         `json:"numero_permis"`
	DateExpiration *time.Time      `json:"date_expiration"`
	CIN            *string         `json:"CIN"`
	Photo          *string         `json:"photo"`
}

// CreateClient registers a new rental client
func CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Telephone) {
		utils.RespondWithValidationError(c, "Invalid input", map[string]string{
			"telephone": "Invalid phone number format",
		})
		return
	}

	// Check if email already exists
	var existing models.Client
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Client with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	client := models.Client{
		ID:             uuid.New(),
		Nom:            input.Nom,
		Prenom:         input.Prenom,
		Email:          input.Email,
		Telephone:      input.Telephone,
		Adresse:        input.Adresse,
		PermisConduire: input.PermisConduire,
		NumeroPermis:   input.NumeroPermis,
		DateExpiration: input.DateExpiration,
		CIN:            input.CIN,
		Photo:          input.Photo,
		DateAjout:      time.Now(),
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients
func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := config.DB.Order("date_ajout DESC").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID
func GetClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Where("id = ?", clientUUID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("id = ?", clientUUID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Nom != nil {
		client.Nom = *input.Nom
	}
	if input.Prenom != nil {
		client.Prenom = *input.Prenom
	}
	if input.Email != nil {
		if client.Email != *input.Email {
			var existing models.Client
			if err := config.DB.Where("email = ?", *input.Email).First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another client with this email already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		client.Email = *input.Email
	}
	if input.Telephone != nil {
		if !utils.ValidatePhone(*input.Telephone) {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"telephone": "Invalid phone number format",
			})
			return
		}
		client.Telephone = *input.Telephone
	}
	if input.Adresse != nil {
		client.Adresse = *input.Adresse
	}
	if input.PermisConduire != nil {
		client.PermisConduire = *input.PermisConduire
	}
	if input.NumeroPermis != nil {
		client.NumeroPermis = *input.NumeroPermis
	}
	if input.DateExpiration != nil {
		client.DateExpiration = input.DateExpiration
	}
	if input.CIN != nil {
		client.CIN = *input.CIN
	}
	if input.Photo != nil {
		client.Photo = *input.Photo
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client
func DeleteClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	result := config.DB.Where("id = ?", clientUUID).Delete(&models.Client{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
