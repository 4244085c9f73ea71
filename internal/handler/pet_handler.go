package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"pawhome/backend/internal/database"
	"pawhome/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// PetInput defines the structure for creating or updating a pet. All fields
// are pointers so that missing required fields can be reported by name.
type PetInput struct {
	Name           *string `json:"name"`
	Breed          *string `json:"breed"`
	Age            *int    `json:"age"`
	AgeUnit        *string `json:"age_unit"`
	Description    *string `json:"description"`
	MedicalHistory *string `json:"medical_history"`
	Status         *string `json:"status"`
	ImageURL       *string `json:"image_url"`
	OwnerID        *uint   `json:"user_id"`
	Gender         *string `json:"gender"`
	Contact        *string `json:"contact"`
	Location       *string `json:"location"`
}

// PetResponse defines the wire format of a pet record.
type PetResponse struct {
	PetID          uint      `json:"pet_id"`
	Name           string    `json:"name"`
	Breed          *string   `json:"breed"`
	Age            int       `json:"age"`
	AgeUnit        string    `json:"age_unit"`
	Description    *string   `json:"description"`
	MedicalHistory *string   `json:"medical_history"`
	Status         string    `json:"status"`
	ImageURL       *string   `json:"image_url"`
	OwnerID        uint      `json:"user_id"`
	Gender         *string   `json:"gender"`
	Contact        *string   `json:"contact"`
	Location       *string   `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}

func newPetResponse(pet models.Pet) PetResponse {
	return PetResponse{
		PetID:          pet.ID,
		Name:           pet.Name,
		Breed:          pet.Breed,
		Age:            pet.Age,
		AgeUnit:        string(pet.AgeUnit),
		Description:    pet.Description,
		MedicalHistory: pet.MedicalHistory,
		Status:         string(pet.Status),
		ImageURL:       pet.ImageURL,
		OwnerID:        pet.OwnerID,
		Gender:         pet.Gender,
		Contact:        pet.Contact,
		Location:       pet.Location,
		CreatedAt:      pet.CreatedAt,
	}
}

func newPetResponses(pets []models.Pet) []PetResponse {
	responses := make([]PetResponse, 0, len(pets))
	for _, pet := range pets {
		responses = append(responses, newPetResponse(pet))
	}
	return responses
}

// missingPetFields lists the required fields absent from the input.
func missingPetFields(input PetInput) []string {
	var missing []string
	if input.Name == nil || *input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Age == nil {
		missing = append(missing, "age")
	}
	if input.Status == nil || *input.Status == "" {
		missing = append(missing, "status")
	}
	if input.OwnerID == nil {
		missing = append(missing, "user_id")
	}
	if input.AgeUnit == nil || *input.AgeUnit == "" {
		missing = append(missing, "age_unit")
	}
	return missing
}

// endregion

// region --- Pet CRUD Handlers ---

// CreatePet godoc
// @Summary      Add a new pet
// @Description  Creates a new pet record listed for adoption.
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PetInput true "Pet Info"
// @Success      201  {object}  map[string]interface{} "{"success": true, "pet": {...}}"
// @Failure      400  {object}  ErrorResponse "Missing required fields"
// @Failure      500  {object}  ErrorResponse
// @Router       /pets [post]
func CreatePet(c *gin.Context) {
	var input PetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if missing := missingPetFields(input); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: " + strings.Join(missing, ", "),
		})
		return
	}

	status := models.PetStatus(*input.Status)
	if !models.ValidPetStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}

	ageUnit := models.AgeUnit(*input.AgeUnit)
	if !models.ValidAgeUnit(ageUnit) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid age unit"})
		return
	}

	pet := models.Pet{
		Name:           *input.Name,
		Breed:          input.Breed,
		Age:            *input.Age,
		AgeUnit:        ageUnit,
		Description:    input.Description,
		MedicalHistory: input.MedicalHistory,
		Status:         status,
		ImageURL:       input.ImageURL,
		OwnerID:        *input.OwnerID,
		Gender:         input.Gender,
		Contact:        input.Contact,
		Location:       input.Location,
	}

	if err := database.DB.Create(&pet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding pet"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Pet added successfully",
		"pet":     newPetResponse(pet),
	})
}

// ListPets godoc
// @Summary      List pets
// @Description  Retrieves pets filtered by status. Without a filter, pets that are Available or Pending are returned.
// @Tags         pets
// @Produce      json
// @Param        status query    string false "Filter by status (Available, Pending, Adopted)"
// @Param        page   query    int    false "Page number" default(1)
// @Param        limit  query    int    false "Items per page" default(20)
// @Success      200  {object}  map[string]interface{} "{"success": true, "pets": [...], "meta": {...}}"
// @Failure      500  {object}  ErrorResponse
// @Router       /pets [get]
func ListPets(c *gin.Context) {
	page, limit := parsePageLimit(c)

	query := database.DB.Model(&models.Pet{})
	status := models.PetStatus(c.Query("status"))
	if models.ValidPetStatus(status) {
		query = query.Where("status = ?", status)
	} else {
		// Default view: everything not yet adopted.
		query = query.Where("status IN ?", []models.PetStatus{models.PetStatusAvailable, models.PetStatusPending})
	}

	result, err := Paginate[models.Pet](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching pets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pets": newPetResponses(result.Data), "meta": result.Meta})
}

// GetPetByID godoc
// @Summary      Get a pet by ID
// @Description  Retrieves a single pet record.
// @Tags         pets
// @Produce      json
// @Param        id   path      int  true  "Pet ID"
// @Success      200  {object}  map[string]interface{} "{"success": true, "pet": {...}}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Pet not found"
// @Router       /pets/{id} [get]
func GetPetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid pet ID"})
		return
	}

	var pet models.Pet
	if err := database.DB.First(&pet, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Pet not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pet": newPetResponse(pet)})
}

// UpdatePet godoc
// @Summary      Update a pet
// @Description  Replaces a pet's fields. Served for both PUT and PATCH to match existing clients.
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int      true  "Pet ID"
// @Param        input body      PetInput true  "New Pet Info"
// @Success      200   {object}  map[string]string "{"message": "Pet updated successfully"}"
// @Failure      400   {object}  ErrorResponse "Required fields missing"
// @Failure      404   {object}  ErrorResponse "Pet not found"
// @Router       /pets/{id} [put]
func UpdatePet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pet ID"})
		return
	}

	var input PetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if input.Name == nil || *input.Name == "" || input.Status == nil || input.Age == nil ||
		input.AgeUnit == nil || *input.AgeUnit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Required fields missing"})
		return
	}

	status := models.PetStatus(*input.Status)
	if !models.ValidPetStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	ageUnit := models.AgeUnit(*input.AgeUnit)
	if !models.ValidAgeUnit(ageUnit) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid age unit"})
		return
	}

	updates := map[string]interface{}{
		"name":            *input.Name,
		"breed":           input.Breed,
		"age":             *input.Age,
		"age_unit":        ageUnit,
		"description":     input.Description,
		"medical_history": input.MedicalHistory,
		"status":          status,
		"image_url":       input.ImageURL,
		"gender":          input.Gender,
		"contact":         input.Contact,
		"location":        input.Location,
	}

	result := database.DB.Model(&models.Pet{}).Where("id = ?", uint(id)).Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating pet"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Pet not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet updated successfully"})
}

// DeletePet godoc
// @Summary      Delete a pet
// @Description  Removes a pet record.
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Pet ID"
// @Success      200  {object}  map[string]string "{"message": "Pet deleted successfully"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Pet not found"
// @Router       /pets/{id} [delete]
func DeletePet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pet ID"})
		return
	}

	result := database.DB.Delete(&models.Pet{}, uint(id))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting pet"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Pet not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted successfully"})
}

// endregion

// region --- Owner Views ---

// MyPets godoc
// @Summary      List the caller's pets
// @Description  Retrieves the pets owned by the authenticated user.
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "{"success": true, "pets": [...]}"
// @Failure      401  {object}  ErrorResponse
// @Router       /users-pet [get]
func MyPets(c *gin.Context) {
	userID, _ := c.Get("userID")

	var pets []models.Pet
	if err := database.DB.Where("owner_id = ?", userID.(uint)).Find(&pets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching pets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pets": newPetResponses(pets)})
}

// AdopterPets godoc
// @Summary      List pets for an adopter
// @Description  Retrieves the pets of a given adopter, optionally filtered by status ("All" disables the filter).
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Param        adopterId query    int    true  "Adopter user ID"
// @Param        status    query    string false "Filter by status"
// @Success      200  {object}  map[string]interface{} "{"success": true, "pets": [...]}"
// @Failure      400  {object}  ErrorResponse "Adopter ID is required"
// @Router       /adopter-pets [get]
func AdopterPets(c *gin.Context) {
	adopterID := c.Query("adopterId")
	if adopterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Adopter ID is required"})
		return
	}

	query := database.DB.Where("owner_id = ?", adopterID)
	if status := c.Query("status"); status != "" && status != "All" {
		query = query.Where("status = ?", status)
	}

	var pets []models.Pet
	if err := query.Find(&pets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch pets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pets": newPetResponses(pets)})
}

// endregion
