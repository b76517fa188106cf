package wizard

import (
	"sync"
	"time"

	"github.com/ukfreewill/will-service/internal/will"
)

// View is the top-level destination selector, orthogonal to the wizard step.
// Switching destinations suspends the wizard in place; only ReturnToWizard
// resets it.
type View string

const (
	ViewWizard    View = "wizard"
	ViewHelp      View = "help"
	ViewLegality  View = "legality"
	ViewTerms     View = "terms"
	ViewPremium   View = "premium"
	ViewDashboard View = "dashboard"
	ViewStore     View = "store"
)

// ValidView reports whether v names a known destination.
func ValidView(v View) bool {
	switch v {
	case ViewWizard, ViewHelp, ViewLegality, ViewTerms, ViewPremium, ViewDashboard, ViewStore:
		return true
	}
	return false
}

// Session is the owned state aggregate for one wizard session: current
// destination, current step, the Document Model, the active storefront id
// and the payment-verification flags. All mutation goes through its methods.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time

	view           View
	step           Step
	data           *will.WillData
	activeStoreID  string
	verifying      bool
	paymentPending bool
}

// NewSession creates a session at the default landing state with an
// all-empty Document Model.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		view:      ViewWizard,
		step:      StepLanding,
		data:      will.New(now),
	}
}

// State is an immutable snapshot handed to the HTTP layer. Step is withheld
// (nil) while payment verification is pending: the verifying presentation
// strictly precedes any wizard step.
type State struct {
	ID            string         `json:"id"`
	View          View           `json:"view"`
	Step          *Step          `json:"step,omitempty"`
	StepName      string         `json:"stepName,omitempty"`
	Verifying     bool           `json:"verifying"`
	ActiveStoreID string         `json:"activeStoreId,omitempty"`
	Data          *will.WillData `json:"data,omitempty"`
	// PaymentPending mirrors the success indicator from the entry
	// parameters; it disappears once the gate has consumed it, so a refresh
	// of the state cannot re-trigger verification.
	PaymentPending bool `json:"paymentPending,omitempty"`
}

// State returns the current snapshot for rendering.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		ID:             s.ID,
		View:           s.view,
		Verifying:      s.verifying,
		ActiveStoreID:  s.activeStoreID,
		PaymentPending: s.paymentPending,
	}
	if s.verifying {
		return st
	}
	step := s.step
	st.Step = &step
	st.StepName = step.String()
	data := *s.data
	st.Data = &data
	return st
}

// Advance moves the sequencer forward one step. Call sites are the fixed set
// of step components that have a next step; no clamping beyond that.
func (s *Session) Advance() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step < StepCompletion {
		s.step++
	}
	return s.step
}

// Retreat moves the sequencer back one step.
func (s *Session) Retreat() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > StepLanding {
		s.step--
	}
	return s.step
}

// JumpTo sets the step directly. Used by the payment gate's resumption and
// by view-level shortcuts such as starting the wizard from the premium page.
func (s *Session) JumpTo(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
}

// ApplyUpdate shallow-merges a partial update into the Document Model.
func (s *Session) ApplyUpdate(u *will.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Apply(u)
}

// Data returns a copy of the current Document Model.
func (s *Session) Data() will.WillData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.data
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// SetView switches the top-level destination without touching the wizard
// step or the Document Model. storeID is only meaningful for ViewStore.
func (s *Session) SetView(v View, storeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
	if v == ViewStore && storeID != "" {
		s.activeStoreID = storeID
	}
}

// ReturnToWizard is the explicit full restart: destination back to the
// wizard, step to landing, a fresh Document Model and no active storefront.
// This is the only path that discards in-progress data.
func (s *Session) ReturnToWizard(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ViewWizard
	s.step = StepLanding
	s.data = will.New(now)
	s.activeStoreID = ""
}

// BeginVerification marks the session as awaiting payment confirmation. No
// wizard step is exposed until the gate resolves.
func (s *Session) BeginVerification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifying = true
	s.paymentPending = true
}

// ResolveVerification ends the verifying state. When recovered is non-nil it
// becomes the session's Document Model with premium set, and the sequencer
// resumes at the fixed resumption step. Either way the success indicator is
// scrubbed so a repeated state read cannot re-trigger verification.
func (s *Session) ResolveVerification(recovered *will.WillData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if recovered != nil {
		recovered.IsPremium = true
		s.data = recovered
		s.step = ResumptionStep
	}
	s.verifying = false
	s.paymentPending = false
}

// Verifying reports whether the payment gate is still pending.
func (s *Session) Verifying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verifying
}

// PaymentPending reports whether an unconsumed payment-success indicator is
// attached to this session.
func (s *Session) PaymentPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentPending
}

// ActiveStoreID returns the storefront identifier, empty when none.
func (s *Session) ActiveStoreID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeStoreID
}

// CurrentView returns the active destination.
func (s *Session) CurrentView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}
