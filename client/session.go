// File: /client/session.go
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"eventhub-api/models"
)

// NoticeKind classifies user-facing notices raised by the booking
// session.
type NoticeKind int

const (
	NoticeSpotsLimit    NoticeKind = iota // quantity increment rejected
	NoticeCouponCleared                   // coupon invalidated by quantity change
)

// Notice is a transient message for the user.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// BookingSession holds the state of one booking form: quantity, coupon
// input and the applied server-validated coupon result. All state is
// explicit; nothing is global.
type BookingSession struct {
	api   *API
	event models.Event

	quantity      int
	couponInput   string
	appliedCoupon *models.CouponValidationResult
}

// NewBookingSession starts a booking form for an event with quantity 1.
func NewBookingSession(api *API, event models.Event) *BookingSession {
	return &BookingSession{
		api:      api,
		event:    event,
		quantity: 1,
	}
}

func (s *BookingSession) Quantity() int {
	return s.quantity
}

func (s *BookingSession) SpotsLeft() int {
	return s.event.SpotsLeft()
}

// AppliedCoupon returns the server-validated coupon result, or nil.
func (s *BookingSession) AppliedCoupon() *models.CouponValidationResult {
	return s.appliedCoupon
}

func (s *BookingSession) CouponInput() string {
	return s.couponInput
}

// IncrementQuantity raises the quantity by one. At the spots-left bound
// the quantity is left unchanged and a notice is returned, never a
// silent clamp. Changing the quantity invalidates an applied coupon.
func (s *BookingSession) IncrementQuantity() *Notice {
	if s.quantity >= s.SpotsLeft() {
		return &Notice{
			Kind:    NoticeSpotsLimit,
			Message: fmt.Sprintf("Only %d spots available", s.SpotsLeft()),
		}
	}
	s.quantity++
	return s.clearCouponAfterQuantityChange()
}

// DecrementQuantity lowers the quantity by one, bounded below by 1.
func (s *BookingSession) DecrementQuantity() *Notice {
	if s.quantity <= 1 {
		return nil
	}
	s.quantity--
	return s.clearCouponAfterQuantityChange()
}

// A coupon is validated for one exact quantity; after any change it must
// be re-applied.
func (s *BookingSession) clearCouponAfterQuantityChange() *Notice {
	if s.appliedCoupon == nil {
		return nil
	}
	s.appliedCoupon = nil
	s.couponInput = ""
	return &Notice{
		Kind:    NoticeCouponCleared,
		Message: "Coupon removed, please re-apply it for the new quantity",
	}
}

// ApplyCoupon validates the code server-side for the current quantity
// and stores the result verbatim. Errors of kind ErrInvalidCoupon belong
// inline under the coupon input, not in a global toast. Applying the
// same code again for the same quantity is idempotent.
func (s *BookingSession) ApplyCoupon(ctx context.Context, code string) error {
	if s.appliedCoupon != nil && s.appliedCoupon.Coupon.Code == code {
		return nil
	}

	result, err := s.api.ValidateCoupon(ctx, code, s.event.ID, s.quantity)
	if err != nil {
		return err
	}

	s.appliedCoupon = &result
	s.couponInput = code
	return nil
}

// RemoveCoupon clears the applied coupon and the input text.
func (s *BookingSession) RemoveCoupon() {
	s.appliedCoupon = nil
	s.couponInput = ""
}

// Quote returns the current price breakdown.
func (s *BookingSession) Quote() PriceQuote {
	return ComputeQuote(s.event.JoiningFee, s.quantity, s.appliedCoupon)
}

// Submit creates the booking. Free events come back confirmed with no
// payment required; paid events come back pending and the caller opens a
// PaymentSession for the booking id.
func (s *BookingSession) Submit(ctx context.Context) (models.CreateBookingResult, error) {
	code := ""
	if s.appliedCoupon != nil {
		code = s.appliedCoupon.Coupon.Code
	}
	return s.api.CreateBooking(ctx, s.event.ID, s.quantity, code)
}

// PaymentState is the payment dialog's lifecycle state.
type PaymentState int

const (
	StateIdle PaymentState = iota
	StateRequesting
	StateDemoReady
	StateLiveReady
	StateConfirming
	StateSucceeded
	StateFailed
)

func (st PaymentState) String() string {
	switch st {
	case StateIdle:
		return "IDLE"
	case StateRequesting:
		return "REQUESTING"
	case StateDemoReady:
		return "DEMO_READY"
	case StateLiveReady:
		return "LIVE_READY"
	case StateConfirming:
		return "CONFIRMING"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ErrSessionNotReady is returned by Confirm when no intent is ready.
var ErrSessionNotReady = errors.New("payment session has no ready intent")

// PaymentSession drives the payment dialog for one pending booking:
//
//	IDLE -> REQUESTING -> {DEMO_READY | LIVE_READY} -> CONFIRMING -> {SUCCEEDED | FAILED}
//
// Open is idempotent while a request is pending or an intent is ready,
// so reopening the dialog never issues a duplicate create-intent call.
// Close resets everything to IDLE; responses that arrive after a close
// are discarded.
type PaymentSession struct {
	api       *API
	bookingID string

	mu           sync.Mutex
	generation   int
	state        PaymentState
	intentID     string
	clientSecret string
	demo         bool
	lastErr      error
}

func NewPaymentSession(api *API, bookingID string) *PaymentSession {
	return &PaymentSession{
		api:       api,
		bookingID: bookingID,
		state:     StateIdle,
	}
}

func (ps *PaymentSession) State() PaymentState {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.state
}

// IntentID returns the current intent id, empty while IDLE/REQUESTING.
func (ps *PaymentSession) IntentID() string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.intentID
}

// ClientSecret returns the processor secret for mounting the hosted
// payment form. Empty for demo intents.
func (ps *PaymentSession) ClientSecret() string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.clientSecret
}

// IsDemo reports whether the ready intent is a demo placeholder.
func (ps *PaymentSession) IsDemo() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.demo
}

// LastError returns the error that moved the session to FAILED, if any.
func (ps *PaymentSession) LastError() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.lastErr
}

// Open requests a payment intent for the booking. Calling Open again
// while a request is in flight, an intent is ready, or the payment
// already succeeded is a no-op: exactly one create-intent request is
// issued per dialog instance. The backend keeps one pending intent per
// booking and hands it back on repeat creates, so reopening a closed
// dialog recovers the intent. A conflict from the backend (the booking
// was already paid) moves the session to FAILED but keeps it open so
// the user can see the state; any other creation error resets the
// session so the dialog closes.
func (ps *PaymentSession) Open(ctx context.Context) error {
	ps.mu.Lock()
	if ps.state != StateIdle {
		ps.mu.Unlock()
		return nil
	}
	ps.state = StateRequesting
	gen := ps.generation
	ps.mu.Unlock()

	result, err := ps.api.CreatePaymentIntent(ctx, ps.bookingID)

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.generation != gen {
		// Dialog was closed while the request was in flight
		return nil
	}

	if err != nil {
		if errors.Is(err, ErrConflict) {
			ps.state = StateFailed
			ps.lastErr = err
			return err
		}
		ps.resetLocked()
		return err
	}

	ps.intentID = result.ID
	ps.clientSecret = result.ClientSecret
	ps.demo = models.IsDemoIntentID(result.ID)
	if ps.demo {
		ps.state = StateDemoReady
	} else {
		ps.state = StateLiveReady
	}
	return nil
}

// Confirm finalizes the payment with the backend. For live intents the
// caller invokes this after the processor form reports success; for demo
// intents it is wired straight to the confirm button.
func (ps *PaymentSession) Confirm(ctx context.Context) (models.Booking, error) {
	ps.mu.Lock()
	if ps.state != StateDemoReady && ps.state != StateLiveReady && ps.state != StateFailed {
		ps.mu.Unlock()
		return models.Booking{}, ErrSessionNotReady
	}
	intentID := ps.intentID
	gen := ps.generation
	ps.state = StateConfirming
	ps.mu.Unlock()

	booking, err := ps.api.ConfirmPayment(ctx, intentID)

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.generation != gen {
		return models.Booking{}, nil
	}

	if err != nil {
		ps.state = StateFailed
		ps.lastErr = err
		return models.Booking{}, err
	}

	ps.state = StateSucceeded
	return booking, nil
}

// Close tears the dialog down from any state: intent id, client secret
// and demo flag are cleared and the session returns to IDLE. This is the
// sole teardown path and runs on cancel, backdrop dismiss and success
// alike.
func (ps *PaymentSession) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.resetLocked()
}

func (ps *PaymentSession) resetLocked() {
	ps.generation++
	ps.state = StateIdle
	ps.intentID = ""
	ps.clientSecret = ""
	ps.demo = false
	ps.lastErr = nil
}
