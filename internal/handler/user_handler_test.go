package handler

import (
	"net/http"
	"testing"

	"pawhome/backend/internal/database"
	"pawhome/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	setupTest(t)
	router := newTestRouter()

	input := map[string]interface{}{
		"username": "janedoe",
		"email":    "jane@example.com",
		"password": "password123",
		"role":     "adopter",
	}

	w := performRequest(router, http.MethodPost, "/api/register", "", input)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	var user models.User
	require.NoError(t, database.DB.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, "janedoe", user.Username)
	assert.Equal(t, models.RoleAdopter, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTest(t)
	router := newTestRouter()

	input := map[string]interface{}{
		"username": "janedoe",
		"email":    "jane@example.com",
		"password": "password123",
		"role":     "adopter",
	}
	w := performRequest(router, http.MethodPost, "/api/register", "", input)
	require.Equal(t, http.StatusCreated, w.Code)

	input["username"] = "someoneelse"
	w = performRequest(router, http.MethodPost, "/api/register", "", input)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	setupTest(t)
	router := newTestRouter()

	input := map[string]interface{}{
		"username": "janedoe",
		"email":    "jane@example.com",
		"password": "password123",
		"role":     "superuser",
	}

	w := performRequest(router, http.MethodPost, "/api/register", "", input)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSuccess(t *testing.T) {
	setupTest(t)
	router := newTestRouter()
	createUser(t, "janedoe", "jane@example.com", models.RoleAdopter)

	w := performRequest(router, http.MethodPost, "/api/login", "", map[string]interface{}{
		"email":    "jane@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "janedoe", user["username"])
	assert.NotContains(t, user, "password_hash")
}

func TestLoginDoesNotDiscloseAccounts(t *testing.T) {
	setupTest(t)
	router := newTestRouter()
	createUser(t, "janedoe", "jane@example.com", models.RoleAdopter)

	// Wrong password for an existing account and an unknown email must be
	// indistinguishable.
	wrongPassword := performRequest(router, http.MethodPost, "/api/login", "", map[string]interface{}{
		"email":    "jane@example.com",
		"password": "not-the-password",
	})
	unknownEmail := performRequest(router, http.MethodPost, "/api/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, decodeBody(t, wrongPassword)["message"], decodeBody(t, unknownEmail)["message"])
}

func TestListUsersRequiresStaff(t *testing.T) {
	setupTest(t)
	router := newTestRouter()
	_, adopterToken := createUser(t, "adopter", "adopter@example.com", models.RoleAdopter)

	w := performRequest(router, http.MethodGet, "/api/users", adopterToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserManagement(t *testing.T) {
	setupTest(t)
	router := newTestRouter()
	_, adminToken := createUser(t, "admin", "admin@example.com", models.RoleAdmin)
	target, _ := createUser(t, "target", "target@example.com", models.RoleAdopter)

	w := performRequest(router, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	users, ok := body["users"].([]interface{})
	require.True(t, ok)
	assert.Len(t, users, 2)

	targetPath := "/api/users/" + itoa(target.ID)

	w = performRequest(router, http.MethodPut, targetPath, adminToken, map[string]interface{}{
		"username": "renamed",
		"email":    "target@example.com",
		"role":     "shelter_staff",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, targetPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "renamed", user["username"])
	assert.Equal(t, "shelter_staff", user["role"])

	w = performRequest(router, http.MethodDelete, targetPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, targetPath, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	setupTest(t)
	router := newTestRouter()
	_, adminToken := createUser(t, "admin", "admin@example.com", models.RoleAdmin)
	taken, _ := createUser(t, "taken", "taken@example.com", models.RoleAdopter)
	target, _ := createUser(t, "target", "target@example.com", models.RoleAdopter)

	w := performRequest(router, http.MethodPut, "/api/users/"+itoa(target.ID), adminToken, map[string]interface{}{
		"username": "target",
		"email":    taken.Email,
		"role":     "adopter",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username or email already exists.", decodeBody(t, w)["message"])

	// Keeping your own username/email is not a conflict.
	w = performRequest(router, http.MethodPut, "/api/users/"+itoa(target.ID), adminToken, map[string]interface{}{
		"username": "target",
		"email":    target.Email,
		"role":     "adopter",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateUserNotFound(t *testing.T) {
	setupTest(t)
	router := newTestRouter()
	_, adminToken := createUser(t, "admin", "admin@example.com", models.RoleAdmin)

	w := performRequest(router, http.MethodPut, "/api/users/9999", adminToken, map[string]interface{}{
		"username": "ghost",
		"email":    "ghost@example.com",
		"role":     "adopter",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
