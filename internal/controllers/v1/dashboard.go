package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuk-nabung/backend/internal/models"
)

// RegisterDashboardRoutes registers the dashboard route with the
// RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.GET("", GetDashboard)
}

type DashboardResponse struct {
	Data  *models.Dashboard `json:"data"`
	Error *string           `json:"error"`
}

// GetDashboard returns the daily, weekly and monthly aggregates for
// the requesting user. Its only side effect is the lazy creation of
// today's daily record.
func GetDashboard(c *gin.Context) {
	dashboard, err := models.GetDashboard(models.DB, currentUser(c).ID, Now())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &dashboard})
}
