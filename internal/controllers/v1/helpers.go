package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/yuk-nabung/backend/internal/models"
)

// currentUser returns the user resolved by the router's authentication
// middleware. The middleware guarantees it is set for every /v1 route.
func currentUser(c *gin.Context) models.User {
	return c.MustGet(string(models.ContextUser)).(models.User)
}
