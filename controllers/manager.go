package controllers

import (
	"errors"
	"net/http"

	"carrental-backend/config"
	"carrental-backend/models"
	"carrental-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateManagerInput struct {
	Nom        string `json:"nom" binding:"required"`
	Prenom     string `json:"prenom" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	MotDePasse string `json:"mot_de_passe" binding:"required,min=8"`
	Telephone  string `json:"telephone" binding:"required"`
}

type UpdateManagerInput struct {
	Nom       *string               `json:"nom"`
	Prenom    *string               `json:"prenom"`
	Email     *string               `json:"email"`
	Telephone *string               `json:"telephone"`
	Statut    *models.ManagerStatus `json:"statut"`
}

// CreateManager adds a manager account (admin console only)
func CreateManager(c *gin.Context) {
	var input CreateManagerInput
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

	// Email and phone are both unique at creation
	var existing models.Manager
	if err := config.DB.Where("email = ? OR telephone = ?", input.Email, input.Telephone).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	manager := models.Manager{
		Nom:        input.Nom,
		Prenom:     input.Prenom,
		Email:      input.Email,
		MotDePasse: input.MotDePasse, // hashed in BeforeCreate hook
		Telephone:  input.Telephone,
		Statut:     models.ManagerActif,
	}

	if err := config.DB.Create(&manager).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create manager")
		return
	}

	c.JSON(http.StatusCreated, manager)
}

// GetManagers lists all manager accounts
func GetManagers(c *gin.Context) {
	var managers []models.Manager
	if err := config.DB.Order("date_creation DESC").Find(&managers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve managers")
		return
	}

	c.JSON(http.StatusOK, managers)
}

// GetManager retrieves one manager by ID
func GetManager(c *gin.Context) {
	managerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid manager ID format")
		return
	}

	var manager models.Manager
	if err := config.DB.Where("id = ?", managerUUID).First(&manager).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Manager not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, manager)
}

// UpdateManager updates an existing manager
func UpdateManager(c *gin.Context) {
	managerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid manager ID format")
		return
	}

	var input UpdateManagerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var manager models.Manager
	if err := config.DB.Where("id = ?", managerUUID).First(&manager).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Manager not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Nom != nil {
		manager.Nom = *input.Nom
	}
	if input.Prenom != nil {
		manager.Prenom = *input.Prenom
	}
	if input.Email != nil {
		if manager.Email != *input.Email {
			var existing models.Manager
			if err := config.DB.Where("email = ?", *input.Email).First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another manager with this email already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		manager.Email = *input.Email
	}
	if input.Telephone != nil {
		if !utils.ValidatePhone(*input.Telephone) {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"telephone": "Invalid phone number format",
			})
			return
		}
		manager.Telephone = *input.Telephone
	}
	if input.Statut != nil {
		if *input.Statut != models.ManagerActif && *input.Statut != models.ManagerInactif {
			utils.RespondWithValidationError(c, "Invalid input", map[string]string{
				"statut": "Status must be actif or inactif",
			})
			return
		}
		manager.Statut = *input.Statut
	}

	if err := config.DB.Save(&manager).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update manager")
		return
	}

	c.JSON(http.StatusOK, manager)
}

// DeleteManager soft deletes a manager account
func DeleteManager(c *gin.Context) {
	managerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid manager ID format")
		return
	}

	result := config.DB.Where("id = ?", managerUUID).Delete(&models.Manager{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete manager")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Manager not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Manager deleted successfully"})
}
