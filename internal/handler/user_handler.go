package handler

import (
	"net/http"
	"strconv"
	"time"

	"pawhome/backend/internal/database"
	"pawhome/backend/internal/models"
	"pawhome/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username string `json:"username" binding:"required" example:"janedoe"`
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
	Role     string `json:"role" binding:"required,oneof=admin shelter_staff adopter" example:"adopter"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UserUpdateInput defines the structure for updating a user as staff.
// Password is optional; when present it is re-hashed.
type UserUpdateInput struct {
	Username       string  `json:"username" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password"`
	Role           string  `json:"role" binding:"required,oneof=admin shelter_staff adopter"`
	ProfilePicture *string `json:"profile_picture"`
}

// UserResponse defines the public view of a user. The password hash is
// never serialized.
type UserResponse struct {
	UserID         uint      `json:"user_id" example:"1"`
	Username       string    `json:"username" example:"janedoe"`
	Email          string    `json:"email" example:"jane@example.com"`
	Role           string    `json:"role" example:"adopter"`
	ProfilePicture *string   `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"An error message"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		UserID:         user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           string(user.Role),
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
	}
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new account with a hashed password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]interface{} "{"success": true, "message": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required."})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Username or email already exists."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error registering user."})
		return
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         models.Role(input.Role),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error registering user."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered successfully."})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user by email and password and returns a signed token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]interface{} "{"success": true, "token": "...", "user": {...}}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required."})
		return
	}

	// A missing account and a wrong password produce the same response,
	// so the endpoint cannot be used to probe for registered emails.
	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password."})
		return
	}

	token, err := jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error logging in."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful.",
		"token":   token,
		"user":    newUserResponse(user),
	})
}

// endregion

// region --- User Management Handlers (staff) ---

// ListUsers godoc
// @Summary      List users
// @Description  Retrieves a paginated list of all users.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(20)
// @Success      200  {object}  map[string]interface{} "{"success": true, "users": [...], "meta": {...}}"
// @Failure      403  {object}  ErrorResponse "Staff access required"
// @Router       /users [get]
func ListUsers(c *gin.Context) {
	page, limit := parsePageLimit(c)

	result, err := Paginate[models.User](database.DB, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users."})
		return
	}

	userResponses := make([]UserResponse, 0, len(result.Data))
	for _, user := range result.Data {
		userResponses = append(userResponses, newUserResponse(user))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": userResponses, "meta": result.Meta})
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves a single user by their ID.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{} "{"success": true, "user": {...}}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID."})
		return
	}

	var user models.User
	if err := database.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": newUserResponse(user)})
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Updates a user's account fields. The password is only changed when provided.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "User ID"
// @Param        input body      UserUpdateInput  true  "New User Info"
// @Success      200   {object}  map[string]string "{"message": "User updated successfully."}"
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse "Username or email already exists."
// @Router       /users/{id} [put]
func UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID."})
		return
	}

	var input UserUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields."})
		return
	}

	var user models.User
	if err := database.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}

	var conflict models.User
	if err := database.DB.Where("(username = ? OR email = ?) AND id <> ?", input.Username, input.Email, user.ID).First(&conflict).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Username or email already exists."})
		return
	}

	updates := map[string]interface{}{
		"username":        input.Username,
		"email":           input.Email,
		"role":            input.Role,
		"profile_picture": input.ProfilePicture,
	}

	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user."})
			return
		}
		updates["password_hash"] = string(hashedPassword)
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully."})
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Deletes a user account.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string "{"message": "User deleted successfully."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID."})
		return
	}

	result := database.DB.Delete(&models.User{}, uint(id))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}

// endregion
