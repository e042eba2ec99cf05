package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuk-nabung/backend/internal/models"
)

// RegisterCronRoutes registers the batch job endpoints with the
// RouterGroup that is passed. The router guards the group with the
// shared cron secret.
func RegisterCronRoutes(r *gin.RouterGroup) {
	r.POST("/daily-reset", RunDailyReset)
	r.POST("/weekly-settlement", RunWeeklySettlement)
}

type BatchResponse struct {
	Data  *models.BatchResult `json:"data"`
	Error *string             `json:"error"`
}

// RunDailyReset folds yesterday's leftovers into the weekly records
// and opens today's daily record for every user. Safe to re-run.
func RunDailyReset(c *gin.Context) {
	result, err := models.RunDailyReset(models.DB, Now())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BatchResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, BatchResponse{Data: &result})
}

// RunWeeklySettlement transfers the leftovers of completed weeks into
// the users' savings balances. Safe to re-run.
func RunWeeklySettlement(c *gin.Context) {
	result, err := models.RunWeeklySettlement(models.DB, Now())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BatchResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, BatchResponse{Data: &result})
}
