package handler

import (
	"net/http"
	"strconv"
	"time"

	"pawhome/backend/internal/database"
	"pawhome/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// AdoptionInput defines the structure for submitting an adoption request.
type AdoptionInput struct {
	PetID uint `json:"petId" binding:"required"`
}

// StatusInput defines the structure for transitioning an application.
type StatusInput struct {
	Status string `json:"status"`
}

// ApplicationResponse defines the wire format of an adoption application.
type ApplicationResponse struct {
	ApplicationID uint      `json:"application_id"`
	UserID        uint      `json:"user_id"`
	PetID         uint      `json:"pet_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newApplicationResponse(app models.AdoptionApplication) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		PetID:         app.PetID,
		Status:        string(app.Status),
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}

// ApplicationListRow is the staff view of an application joined with the
// applicant and pet names.
type ApplicationListRow struct {
	ApplicationID uint      `json:"application_id"`
	UserName      string    `json:"user_name"`
	PetName       string    `json:"pet_name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HistoryRow is one entry of a user's adoption history, joined with a
// snapshot of the pet.
type HistoryRow struct {
	PetName           string    `json:"pet_name"`
	Breed             *string   `json:"breed"`
	Age               int       `json:"age"`
	AgeUnit           string    `json:"age_unit"`
	Gender            *string   `json:"gender"`
	PetStatus         string    `json:"pet_status"`
	ApplicationStatus string    `json:"application_status"`
	ApplicationDate   time.Time `json:"application_date"`
	ApplicationID     uint      `json:"application_id"`
}

// endregion

// region --- Adoption Workflow Handlers ---

// SubmitApplication godoc
// @Summary      Apply to adopt a pet
// @Description  Creates a Pending application for an Available pet and moves the pet to Pending. Both writes happen in one transaction; when two users race for the same pet, only one application is accepted.
// @Tags         adoptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AdoptionInput true "Pet to adopt"
// @Success      200  {object}  map[string]interface{} "{"success": true, "applicationId": 1}"
// @Failure      400  {object}  ErrorResponse "Pet is not available for adoption"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /adopt-pet [post]
func SubmitApplication(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input AdoptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Pet ID is required"})
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database operation failed"})
		return
	}

	// The guarded update claims the pet: only one concurrent submit can move
	// it from Available to Pending, the rest see zero affected rows.
	claim := tx.Model(&models.Pet{}).
		Where("id = ? AND status = ?", input.PetID, models.PetStatusAvailable).
		Update("status", models.PetStatusPending)
	if claim.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database operation failed"})
		return
	}
	if claim.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Pet is not available for adoption"})
		return
	}

	application := models.AdoptionApplication{
		UserID: userID.(uint),
		PetID:  input.PetID,
		Status: models.ApplicationStatusPending,
	}
	if err := tx.Create(&application).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database operation failed"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database operation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Adoption application submitted successfully",
		"applicationId": application.ID,
	})
}

// ListApplications godoc
// @Summary      List all adoption applications
// @Description  Retrieves every application joined with the applicant username and pet name.
// @Tags         adoptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "{"success": true, "applications": [...]}"
// @Failure      403  {object}  ErrorResponse "Staff access required"
// @Failure      500  {object}  ErrorResponse
// @Router       /adoption-applications [get]
func ListApplications(c *gin.Context) {
	var rows []ApplicationListRow
	err := database.DB.Model(&models.AdoptionApplication{}).
		Select("adoption_applications.id AS application_id, users.username AS user_name, pets.name AS pet_name, adoption_applications.status, adoption_applications.created_at, adoption_applications.updated_at").
		Joins("JOIN users ON users.id = adoption_applications.user_id").
		Joins("JOIN pets ON pets.id = adoption_applications.pet_id").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching adoption applications"})
		return
	}

	if rows == nil {
		rows = []ApplicationListRow{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "applications": rows})
}

// GetApplication godoc
// @Summary      Get an adoption application
// @Description  Retrieves a single application by ID.
// @Tags         adoptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  ApplicationResponse
// @Failure      404  {object}  ErrorResponse "Application not found"
// @Router       /adoption-applications/{id} [get]
func GetApplication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid application ID"})
		return
	}

	var application models.AdoptionApplication
	if err := database.DB.First(&application, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, newApplicationResponse(application))
}

// UpdateApplicationStatus godoc
// @Summary      Transition an adoption application
// @Description  Sets the application status and synchronizes the pet: Approved adopts the pet, Rejected or Cancelled releases it (unless another Pending application holds it or the pet was already adopted), Pending holds it.
// @Tags         adoptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int         true  "Application ID"
// @Param        input body      StatusInput true  "New status"
// @Success      200   {object}  map[string]string "{"message": "Application status updated successfully"}"
// @Failure      400   {object}  ErrorResponse "Invalid status"
// @Failure      404   {object}  ErrorResponse "Application not found"
// @Failure      500   {object}  ErrorResponse
// @Router       /adoption-applications/{id} [put]
func UpdateApplicationStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid application ID"})
		return
	}

	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	newStatus := models.ApplicationStatus(input.Status)
	if !models.ValidApplicationStatus(newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	var application models.AdoptionApplication
	if err := database.DB.First(&application, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating adoption application"})
		return
	}

	if err := tx.Model(&application).Update("status", newStatus).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating adoption application"})
		return
	}

	petStatus := models.PetStatusFor(newStatus)
	if petStatus == models.PetStatusAvailable {
		// The pet stays Pending while other pending applications remain.
		var remaining int64
		if err := tx.Model(&models.AdoptionApplication{}).
			Where("pet_id = ? AND status = ? AND id <> ?", application.PetID, models.ApplicationStatusPending, application.ID).
			Count(&remaining).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating adoption application"})
			return
		}
		if remaining > 0 {
			petStatus = models.PetStatusPending
		}
	}

	petQuery := tx.Model(&models.Pet{}).Where("id = ?", application.PetID)
	if petStatus != models.PetStatusAdopted {
		// Closing a leftover application must not downgrade a pet that was
		// already adopted through another one.
		petQuery = petQuery.Where("status <> ?", models.PetStatusAdopted)
	}
	if err := petQuery.Update("status", petStatus).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating adoption application"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating adoption application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application status updated successfully"})
}

// DeleteApplication godoc
// @Summary      Delete an adoption application
// @Description  Removes an application. A pet left without Pending applications reverts to Available.
// @Tags         adoptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  map[string]string "{"message": "Adoption application deleted successfully"}"
// @Failure      404  {object}  ErrorResponse "Application not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /adoption-applications/{id} [delete]
func DeleteApplication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid application ID"})
		return
	}

	var application models.AdoptionApplication
	if err := database.DB.First(&application, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting adoption application"})
		return
	}

	if err := tx.Delete(&application).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting adoption application"})
		return
	}

	if application.Status == models.ApplicationStatusPending {
		var remaining int64
		if err := tx.Model(&models.AdoptionApplication{}).
			Where("pet_id = ? AND status = ?", application.PetID, models.ApplicationStatusPending).
			Count(&remaining).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting adoption application"})
			return
		}
		if remaining == 0 {
			// Guarded so an Adopted pet is never resurrected.
			if err := tx.Model(&models.Pet{}).
				Where("id = ? AND status = ?", application.PetID, models.PetStatusPending).
				Update("status", models.PetStatusAvailable).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting adoption application"})
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting adoption application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adoption application deleted successfully"})
}

// AdoptionHistory godoc
// @Summary      Get a user's adoption history
// @Description  Retrieves the user's applications joined with a pet snapshot, newest first. Without a userId parameter, the authenticated user's history is returned.
// @Tags         adoptions
// @Produce      json
// @Security     BearerAuth
// @Param        userId query    int  false  "User ID"
// @Success      200  {object}  map[string]interface{} "{"success": true, "history": [...]}"
// @Failure      400  {object}  ErrorResponse "User ID is required"
// @Failure      500  {object}  ErrorResponse
// @Router       /adoption-history [get]
func AdoptionHistory(c *gin.Context) {
	var userID uint
	if param := c.Query("userId"); param != "" {
		parsed, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
			return
		}
		userID = uint(parsed)
	} else if fromToken, ok := c.Get("userID"); ok {
		userID = fromToken.(uint)
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
		return
	}

	var rows []HistoryRow
	err := database.DB.Model(&models.AdoptionApplication{}).
		Select("pets.name AS pet_name, pets.breed, pets.age, pets.age_unit, pets.gender, pets.status AS pet_status, adoption_applications.status AS application_status, adoption_applications.created_at AS application_date, adoption_applications.id AS application_id").
		Joins("JOIN pets ON pets.id = adoption_applications.pet_id").
		Where("adoption_applications.user_id = ?", userID).
		Order("adoption_applications.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch adoption history"})
		return
	}

	if rows == nil {
		rows = []HistoryRow{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "history": rows})
}

// endregion
