package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"careflow/models"
	"careflow/services/payment"

	"go.uber.org/zap"
)

// IntentStatus is the explicit state of a session's payment authorization.
type IntentStatus string

const (
	IntentIdle     IntentStatus = "idle"
	IntentFetching IntentStatus = "fetching"
	IntentReady    IntentStatus = "ready"
	IntentError    IntentStatus = "error"
)

// intentFetchTimeout bounds a single create-intent attempt. The processor
// call has no client-side retry loop; retry stays user-driven.
const intentFetchTimeout = 15 * time.Second

// IntentView is the externally visible snapshot of an intent handle.
type IntentView struct {
	Status       IntentStatus `json:"status"`
	ClientSecret string       `json:"clientSecret,omitempty"`
	TrackingID   string       `json:"trackingId,omitempty"`
	Error        string       `json:"error,omitempty"`
}

// intentHandle is the per-session authorization state. The generation counter
// is the liveness check: a fetch result is applied only while its generation
// is still current, so a superseded fetch's late arrival is a no-op.
type intentHandle struct {
	status       IntentStatus
	clientSecret string
	trackingID   string
	errMsg       string
	generation   uint64
	cancel       context.CancelFunc
	touchedAt    time.Time
}

func (h *intentHandle) view() IntentView {
	return IntentView{
		Status:       h.status,
		ClientSecret: h.clientSecret,
		TrackingID:   h.trackingID,
		Error:        h.errMsg,
	}
}

// IntentOrchestrator manages the asynchronous lifecycle of payment
// authorizations, one handle per checkout session: prefetch, single-flight
// cancel-and-replace, error surfacing with retry, and a last-resort
// synchronous fetch at the payment step.
type IntentOrchestrator struct {
	mu        sync.Mutex
	handles   map[string]*intentHandle
	client    payment.IntentClient
	logger    *zap.Logger
	timeout   time.Duration
	handleTTL time.Duration
}

// NewIntentOrchestrator returns an orchestrator backed by the given processor
// client. Handles untouched for handleTTL are evicted, so abandoned sessions
// do not pin memory for the process lifetime; a ready authorization survives
// eviction through the session's persisted mirror.
func NewIntentOrchestrator(client payment.IntentClient, logger *zap.Logger, handleTTL time.Duration) *IntentOrchestrator {
	o := &IntentOrchestrator{
		handles:   make(map[string]*intentHandle),
		client:    client,
		logger:    logger,
		timeout:   intentFetchTimeout,
		handleTTL: handleTTL,
	}
	if handleTTL > 0 {
		go o.sweepLoop()
	}
	return o
}

func (o *IntentOrchestrator) handleLocked(sessionID string) *intentHandle {
	h, ok := o.handles[sessionID]
	if !ok {
		h = &intentHandle{status: IntentIdle}
		o.handles[sessionID] = h
	}
	h.touchedAt = time.Now()
	return h
}

// sweepLoop periodically drops handles whose session has gone quiet for the
// handle TTL.
func (o *IntentOrchestrator) sweepLoop() {
	ticker := time.NewTicker(o.handleTTL / 4)
	defer ticker.Stop()
	for range ticker.C {
		o.sweep(time.Now().Add(-o.handleTTL))
	}
}

// sweep evicts every handle not touched since the cutoff. Any in-flight
// fetch is cancelled; no processor-side cancel is issued, since a resumed
// session restores a ready authorization from its persisted mirror.
func (o *IntentOrchestrator) sweep(cutoff time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for sessionID, h := range o.handles {
		if h.touchedAt.After(cutoff) {
			continue
		}
		if h.cancel != nil {
			h.cancel()
		}
		delete(o.handles, sessionID)
		o.logger.Debug("Evicted idle payment intent handle", zap.String("session", sessionID))
	}
}

// supersedeLocked cancels any in-flight fetch, releases any held
// authorization, and resets the handle to idle. Callers must hold o.mu.
func (o *IntentOrchestrator) supersedeLocked(sessionID string, h *intentHandle) {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.generation++
	if h.trackingID != "" {
		o.releaseRemote(sessionID, h.trackingID)
	}
	h.status = IntentIdle
	h.clientSecret = ""
	h.trackingID = ""
	h.errMsg = ""
}

// releaseRemote cancels a processor-side authorization best-effort.
func (o *IntentOrchestrator) releaseRemote(sessionID, trackingID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		defer cancel()
		if err := o.client.CancelIntent(ctx, trackingID); err != nil {
			o.logger.Warn("Failed to release superseded authorization",
				zap.String("session", sessionID),
				zap.String("tracking", trackingID),
				zap.Error(err))
		}
	}()
}

// BeginPrefetch starts an asynchronous authorization fetch for the session.
// An outstanding fetch or held authorization for the session is always
// superseded first: a stale authorization for the wrong fee must never
// survive a replacement.
func (o *IntentOrchestrator) BeginPrefetch(sessionID string, fees models.VisitFees, metadata map[string]string) {
	o.mu.Lock()
	h := o.handleLocked(sessionID)
	o.supersedeLocked(sessionID, h)
	gen := h.generation
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	h.cancel = cancel
	h.status = IntentFetching
	o.mu.Unlock()

	go func() {
		defer cancel()
		pi, err := o.client.CreateIntent(ctx, fees, metadata)
		o.applyResult(sessionID, gen, pi, err)
	}()
}

// Retry clears a recorded error and re-invokes the fetch.
func (o *IntentOrchestrator) Retry(sessionID string, fees models.VisitFees, metadata map[string]string) {
	o.logger.Info("Retrying payment authorization", zap.String("session", sessionID))
	o.BeginPrefetch(sessionID, fees, metadata)
}

// Ensure is the fallback force-fetch: if the session reaches the payment step
// with no authorization, no error, and no fetch in flight, it fetches
// synchronously so the patient is never left stuck. In every other state it
// returns the current snapshot untouched.
func (o *IntentOrchestrator) Ensure(ctx context.Context, sessionID string, fees models.VisitFees, metadata map[string]string) IntentView {
	o.mu.Lock()
	h := o.handleLocked(sessionID)
	if h.status != IntentIdle {
		v := h.view()
		o.mu.Unlock()
		return v
	}

	h.generation++
	gen := h.generation
	fctx, cancel := context.WithTimeout(ctx, o.timeout)
	h.cancel = cancel
	h.status = IntentFetching
	o.mu.Unlock()

	pi, err := o.client.CreateIntent(fctx, fees, metadata)
	cancel()
	o.applyResult(sessionID, gen, pi, err)
	return o.Snapshot(sessionID)
}

// applyResult folds a fetch outcome into the handle, unless the fetch was
// superseded in the meantime. An authorization won by a superseded fetch is
// released; cancellation is a silent outcome, never an error.
func (o *IntentOrchestrator) applyResult(sessionID string, gen uint64, pi *models.PaymentIntent, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	h, ok := o.handles[sessionID]
	if !ok || h.generation != gen {
		if err == nil && pi != nil {
			o.releaseRemote(sessionID, pi.TrackingID)
		}
		return
	}
	h.cancel = nil
	h.touchedAt = time.Now()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			h.status = IntentIdle
			return
		}
		h.status = IntentError
		h.errMsg = "We couldn't set up your payment. Please try again."
		o.logger.Warn("Payment authorization fetch failed",
			zap.String("session", sessionID),
			zap.Error(err))
		return
	}

	h.status = IntentReady
	h.clientSecret = pi.ClientSecret
	h.trackingID = pi.TrackingID
	h.errMsg = ""
	o.logger.Info("Payment authorization ready",
		zap.String("session", sessionID),
		zap.String("tracking", pi.TrackingID))
}

// Invalidate cancels any in-flight fetch and releases any held authorization
// for the session. Called whenever a fee-affecting answer changes.
func (o *IntentOrchestrator) Invalidate(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	h, ok := o.handles[sessionID]
	if !ok {
		return
	}
	o.supersedeLocked(sessionID, h)
}

// Snapshot returns the current intent view for a session.
func (o *IntentOrchestrator) Snapshot(sessionID string) IntentView {
	o.mu.Lock()
	defer o.mu.Unlock()
	h, ok := o.handles[sessionID]
	if !ok {
		return IntentView{Status: IntentIdle}
	}
	return h.view()
}

// Restore seeds a ready handle from a rehydrated session, so an
// authorization obtained before a process restart survives the reload.
func (o *IntentOrchestrator) Restore(sessionID, clientSecret, trackingID string) {
	if clientSecret == "" || trackingID == "" {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	h := o.handleLocked(sessionID)
	if h.status != IntentIdle {
		return
	}
	h.status = IntentReady
	h.clientSecret = clientSecret
	h.trackingID = trackingID
}

// Release drops the session's handle without touching the processor-side
// intent. Used on checkout completion, when the authorization is being
// captured rather than discarded.
func (o *IntentOrchestrator) Release(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	h, ok := o.handles[sessionID]
	if !ok {
		return
	}
	if h.cancel != nil {
		h.cancel()
	}
	delete(o.handles, sessionID)
}
