package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ukfreewill/will-service/internal/config"
	"github.com/ukfreewill/will-service/internal/payment"
	"github.com/ukfreewill/will-service/internal/tokens"
	"github.com/ukfreewill/will-service/pkg/logger"
	"github.com/ukfreewill/will-service/pkg/middleware"
)

// AdminHandler serves the partner admin gate and the donation dashboard.
type AdminHandler struct {
	cfg    *config.Config
	ledger *payment.Ledger
}

func NewAdminHandler(cfg *config.Config, ledger *payment.Ledger) *AdminHandler {
	return &AdminHandler{cfg: cfg, ledger: ledger}
}

// Register routes under /admin
func (h *AdminHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/admin")
	a.POST("/login", h.Login)
	a.POST("/logout", middleware.AdminAuthMiddleware(h.cfg), h.Logout)
	a.GET("/donations", middleware.AdminAuthMiddleware(h.cfg), h.Donations)
}

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the shared admin password for a short-lived access token.
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.cfg.Admin.Password == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Admin.Password)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}
	ttl := h.cfg.JWT.AccessTokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	access, err := tokens.GenerateAdminToken(h.cfg, ttl)
	if err != nil {
		logger.Errorf("failed to create admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access, "expiresIn": int(ttl.Seconds())})
}

// Logout acknowledges the end of an admin session. Tokens are stateless and
// short-lived; the client discards its copy.
func (h *AdminHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Donations lists recorded transactions plus the running total.
func (h *AdminHandler) Donations(c *gin.Context) {
	recs, err := h.ledger.List(c.Request.Context())
	if err != nil {
		logger.Errorf("failed to list donations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list donations"})
		return
	}
	var total float64
	for _, r := range recs {
		total += r.Amount
	}
	c.JSON(http.StatusOK, gin.H{"donations": recs, "count": len(recs), "totalAmount": total})
}

// timeoutContext is shared by handlers doing background work.
func timeoutContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
