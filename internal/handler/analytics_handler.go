package handler

import (
	"net/http"

	"pawhome/backend/internal/database"
	"pawhome/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// CountRow is one bar of a dashboard chart: a distinct column value and the
// number of rows carrying it.
type CountRow struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// countByColumn groups the model's table by a column. The result set is
// bounded by the enum cardinality of the grouped column.
func countByColumn(model interface{}, column string) ([]CountRow, error) {
	var rows []CountRow
	err := database.DB.Model(model).
		Select(column + ` AS "key", COUNT(*) AS count`).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CountRow{}
	}
	return rows, nil
}

// UserStats godoc
// @Summary      User counts by role
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   CountRow
// @Failure      500  {object}  ErrorResponse
// @Router       /analytics/users [get]
func UserStats(c *gin.Context) {
	rows, err := countByColumn(&models.User{}, "role")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// PetStats godoc
// @Summary      Pet counts by status
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   CountRow
// @Failure      500  {object}  ErrorResponse
// @Router       /analytics/pets [get]
func PetStats(c *gin.Context) {
	rows, err := countByColumn(&models.Pet{}, "status")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ApplicationStats godoc
// @Summary      Adoption application counts by status
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   CountRow
// @Failure      500  {object}  ErrorResponse
// @Router       /analytics/adoption-applications [get]
func ApplicationStats(c *gin.Context) {
	rows, err := countByColumn(&models.AdoptionApplication{}, "status")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
