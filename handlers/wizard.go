package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ukfreewill/will-service/internal/archive"
	"github.com/ukfreewill/will-service/internal/config"
	"github.com/ukfreewill/will-service/internal/deeplink"
	"github.com/ukfreewill/will-service/internal/payment"
	"github.com/ukfreewill/will-service/internal/snapshot"
	"github.com/ukfreewill/will-service/internal/will"
	"github.com/ukfreewill/will-service/internal/wizard"
	"github.com/ukfreewill/will-service/pkg/logger"
	"github.com/ukfreewill/will-service/pkg/metrics"
)

// WizardHandler exposes the wizard session API: lifecycle, the sequencer
// triple (advance/retreat/mutate), destination switching, checkout and the
// payment-return verification entry point.
type WizardHandler struct {
	cfg       *config.Config
	sessions  *wizard.Store
	snapshots snapshot.Repository
	gate      *payment.Gate
	archive   *archive.Archive // optional; nil disables archiving
}

func NewWizardHandler(cfg *config.Config, sessions *wizard.Store, snapshots snapshot.Repository, gate *payment.Gate, arch *archive.Archive) *WizardHandler {
	return &WizardHandler{cfg: cfg, sessions: sessions, snapshots: snapshots, gate: gate, archive: arch}
}

// Register routes under /sessions
func (h *WizardHandler) Register(rg *gin.RouterGroup) {
	s := rg.Group("/sessions")
	s.POST("", h.CreateSession)
	s.GET("/:id", h.GetState)
	s.POST("/:id/advance", h.Advance)
	s.POST("/:id/retreat", h.Retreat)
	s.PATCH("/:id/will", h.UpdateWill)
	s.POST("/:id/checkout", h.Checkout)
	s.POST("/:id/view", h.SwitchView)
	s.POST("/:id/home", h.Home)
	s.DELETE("/:id", h.DeleteSession)
}

// CreateSession starts a wizard session. The deep-link resolver runs exactly
// once, here, against the request's query parameters: a `store` id selects
// the storefront destination, and a payment-success indicator starts the
// verification gate before any step is exposed.
func (h *WizardHandler) CreateSession(c *gin.Context) {
	sess, ctx, err := h.sessions.Create(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	entry := deeplink.Resolve(c.Request.URL.Query())
	if entry.StoreID != "" {
		sess.SetView(wizard.ViewStore, entry.StoreID)
	}
	if entry.PaymentSuccess {
		h.gate.Begin(ctx, sess, entry.SessionRef)
	}
	c.JSON(http.StatusCreated, sess.State())
}

// GetState returns the render snapshot. While the gate is pending the
// verifying flag is set and no step or document data appears.
func (h *WizardHandler) GetState(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess.State())
}

// Advance moves the sequencer forward one step.
func (h *WizardHandler) Advance(c *gin.Context) {
	sess, ok := h.navigable(c)
	if !ok {
		return
	}
	step := sess.Advance()
	metrics.StepTransitions.WithLabelValues("advance").Inc()
	if step == wizard.StepCompletion {
		h.archiveCompleted(sess)
	}
	c.JSON(http.StatusOK, sess.State())
}

// Retreat moves the sequencer back one step.
func (h *WizardHandler) Retreat(c *gin.Context) {
	sess, ok := h.navigable(c)
	if !ok {
		return
	}
	sess.Retreat()
	metrics.StepTransitions.WithLabelValues("retreat").Inc()
	c.JSON(http.StatusOK, sess.State())
}

// UpdateWill shallow-merges a partial update into the Document Model.
func (h *WizardHandler) UpdateWill(c *gin.Context) {
	sess, ok := h.navigable(c)
	if !ok {
		return
	}
	var u will.Update
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess.ApplyUpdate(&u)
	c.JSON(http.StatusOK, sess.State())
}

// CheckoutRequest optionally fixes the donation amount before the snapshot
// is taken.
type CheckoutRequest struct {
	Amount *float64 `json:"amount,omitempty"`
}

// Checkout writes the durable snapshot and returns the external processor
// redirect URL. The snapshot must be durable before the client navigates
// away: in-memory state does not survive the round trip, the slot is the
// only channel carrying it.
func (h *WizardHandler) Checkout(c *gin.Context) {
	sess, ok := h.navigable(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Amount != nil {
		sess.ApplyUpdate(&will.Update{DonationAmount: req.Amount})
	}
	data := sess.Data()
	if err := h.snapshots.Save(c.Request.Context(), sess.ID, &data); err != nil {
		logger.Errorf("session %s: snapshot save failed: %v", sess.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist session before checkout"})
		return
	}
	redirect := fmt.Sprintf("%s?session=%s&amount=%.2f", h.cfg.Payment.CheckoutURL, sess.ID, data.DonationAmount)
	c.JSON(http.StatusOK, gin.H{"redirectUrl": redirect})
}

// SwitchViewRequest names the target destination; storeId only matters for
// the storefront.
type SwitchViewRequest struct {
	View    wizard.View `json:"view" binding:"required"`
	StoreID string      `json:"storeId"`
}

// SwitchView changes the top-level destination. The wizard step and document
// stay untouched; returning to the wizard destination resumes where it was.
func (h *WizardHandler) SwitchView(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	var req SwitchViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !wizard.ValidView(req.View) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown view"})
		return
	}
	sess.SetView(req.View, req.StoreID)
	c.JSON(http.StatusOK, sess.State())
}

// Home is the explicit full restart: destination, step and document all
// reset, storefront id cleared.
func (h *WizardHandler) Home(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	sess.ReturnToWizard(time.Now())
	c.JSON(http.StatusOK, sess.State())
}

// DeleteSession tears the session down, cancelling anything scoped to it
// (including a pending verification timer).
func (h *WizardHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// navigable loads the session and rejects wizard operations while payment
// verification is pending; the verifying presentation strictly precedes any
// step interaction.
func (h *WizardHandler) navigable(c *gin.Context) (*wizard.Session, bool) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	if sess.Verifying() {
		c.JSON(http.StatusConflict, gin.H{"error": "payment verification in progress"})
		return nil, false
	}
	return sess, true
}

func (h *WizardHandler) archiveCompleted(sess *wizard.Session) {
	if h.archive == nil {
		return
	}
	data := sess.Data()
	if data.SignatureData == "" {
		return
	}
	go func() {
		ctx, cancel := timeoutContext()
		defer cancel()
		key, err := h.archive.Store(ctx, sess.ID, &data)
		if err != nil {
			logger.Warnf("session %s: archive failed: %v", sess.ID, err)
			return
		}
		logger.Infof("session %s: archived completed will as %s", sess.ID, key)
	}()
}
