package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConnectAccount is the storefront destination payload. The account id is
// opaque to the wizard core; this endpoint only describes the store the
// deep link pointed at.
type ConnectAccount struct {
	ID                     string `json:"id"`
	DisplayName            string `json:"displayName"`
	OnboardingComplete     bool   `json:"onboardingComplete"`
	ReadyToProcessPayments bool   `json:"readyToProcessPayments"`
	SubscriptionStatus     string `json:"subscriptionStatus"` // active|past_due|canceled|none
}

// RegisterStorefrontRoutes registers the storefront lookup used by the store
// destination.
func RegisterStorefrontRoutes(rg *gin.RouterGroup) {
	rg.GET("/stores/:id", GetStore)
}

// GetStore echoes the connect account for the given id. Account state lives
// with the payment platform; until that integration lands this returns a
// ready placeholder so the storefront view can render.
func GetStore(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, ConnectAccount{
		ID:                     id,
		DisplayName:            "Partner store " + id,
		OnboardingComplete:     true,
		ReadyToProcessPayments: true,
		SubscriptionStatus:     "active",
	})
}
