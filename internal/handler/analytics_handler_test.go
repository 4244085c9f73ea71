package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"pawhome/backend/internal/database"
	"pawhome/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchStats(t *testing.T, router *gin.Engine, path, token string) map[string]float64 {
	t.Helper()

	w := performRequest(router, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		Key   string  `json:"key"`
		Count float64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))

	counts := make(map[string]float64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts
}

func TestAnalytics(t *testing.T) {
	setupTest(t)
	router := newTestRouter()
	owner, staffToken := createUser(t, "staff", "staff@example.com", models.RoleShelterStaff)
	createUser(t, "adopter1", "adopter1@example.com", models.RoleAdopter)
	adopter, _ := createUser(t, "adopter2", "adopter2@example.com", models.RoleAdopter)

	createPet(t, "A", models.PetStatusAvailable, owner.ID)
	createPet(t, "B", models.PetStatusAvailable, owner.ID)
	pet := createPet(t, "C", models.PetStatusAdopted, owner.ID)

	application := models.AdoptionApplication{UserID: adopter.ID, PetID: pet.ID, Status: models.ApplicationStatusApproved}
	require.NoError(t, database.DB.Create(&application).Error)

	users := fetchStats(t, router, "/api/analytics/users", staffToken)
	assert.EqualValues(t, 1, users["shelter_staff"])
	assert.EqualValues(t, 2, users["adopter"])

	pets := fetchStats(t, router, "/api/analytics/pets", staffToken)
	assert.EqualValues(t, 2, pets["Available"])
	assert.EqualValues(t, 1, pets["Adopted"])

	applications := fetchStats(t, router, "/api/analytics/adoption-applications", staffToken)
	assert.EqualValues(t, 1, applications["Approved"])
}

func TestAnalyticsRequireStaff(t *testing.T) {
	setupTest(t)
	router := newTestRouter()
	_, adopterToken := createUser(t, "adopter", "adopter@example.com", models.RoleAdopter)

	w := performRequest(router, http.MethodGet, "/api/analytics/pets", adopterToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
