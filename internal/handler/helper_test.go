package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"pawhome/backend/internal/auth"
	"pawhome/backend/internal/config"
	"pawhome/backend/internal/database"
	"pawhome/backend/internal/models"
	"pawhome/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTest points database.DB at a fresh in-memory sqlite database named
// after the test, so tests stay isolated from each other.
func setupTest(t *testing.T) {
	t.Helper()

	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
}

// setupFileTest is like setupTest but backs the database with a file, so
// concurrent transactions queue on the sqlite write lock instead of failing
// with a table-locked error.
func setupFileTest(t *testing.T) {
	t.Helper()

	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
}

// newTestRouter mirrors the route wiring of cmd/server.
func newTestRouter() *gin.Engine {
	router := gin.New()

	api := router.Group("/api")

	api.POST("/register", RegisterUser)
	api.POST("/login", LoginUser)

	api.GET("/pets", ListPets)
	api.GET("/pets/:id", GetPetByID)

	petRoutes := api.Group("/pets")
	petRoutes.Use(auth.AuthMiddleware())
	{
		petRoutes.POST("", CreatePet)
		petRoutes.PUT("/:id", UpdatePet)
		petRoutes.PATCH("/:id", UpdatePet)
		petRoutes.DELETE("/:id", DeletePet)
	}

	adoptRoutes := api.Group("")
	adoptRoutes.Use(auth.AuthMiddleware())
	{
		adoptRoutes.POST("/adopt-pet", SubmitApplication)
		adoptRoutes.GET("/users-pet", MyPets)
		adoptRoutes.GET("/adopter-pets", AdopterPets)
	}

	api.GET("/adoption-history", auth.OptionalAuthMiddleware(), AdoptionHistory)

	staffRoutes := api.Group("")
	staffRoutes.Use(auth.AuthMiddleware(), auth.StaffMiddleware())
	{
		staffRoutes.GET("/adoption-applications", ListApplications)
		staffRoutes.GET("/adoption-applications/:id", GetApplication)
		staffRoutes.PUT("/adoption-applications/:id", UpdateApplicationStatus)
		staffRoutes.DELETE("/adoption-applications/:id", DeleteApplication)

		staffRoutes.GET("/users", ListUsers)
		staffRoutes.GET("/users/:id", GetUserByID)
		staffRoutes.PUT("/users/:id", UpdateUser)
		staffRoutes.DELETE("/users/:id", DeleteUser)

		staffRoutes.GET("/analytics/users", UserStats)
		staffRoutes.GET("/analytics/pets", PetStats)
		staffRoutes.GET("/analytics/adoption-applications", ApplicationStats)
	}

	return router
}

func performRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createUser(t *testing.T, username, email string, role models.Role) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := jwt.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	return user, token
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func createPet(t *testing.T, name string, status models.PetStatus, ownerID uint) models.Pet {
	t.Helper()

	pet := models.Pet{
		Name:    name,
		Age:     2,
		AgeUnit: models.AgeUnitYears,
		Status:  status,
		OwnerID: ownerID,
	}
	require.NoError(t, database.DB.Create(&pet).Error)
	return pet
}
