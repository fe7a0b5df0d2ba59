// File: /client/client.go

// Package client is a Go client for the EventHub API. It wraps the REST
// endpoints with typed requests and responses and carries the booking
// flow logic (price quoting, coupon application, payment session) used
// by EventHub frontends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventhub-api/models"
	"eventhub-api/utils"
)

// Error kinds surfaced by API calls. Callers match with errors.Is and
// decide how to present each: unauthenticated redirects to login,
// invalid coupons render inline, conflicts keep the payment dialog open.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("permission denied")
	ErrNotFound        = errors.New("not found")
	ErrInvalidCoupon   = errors.New("invalid coupon")
	ErrAlreadyBooked   = errors.New("already booked")
	ErrEventFull       = errors.New("event full")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
)

// APIError carries the backend's message alongside the mapped kind.
type APIError struct {
	StatusCode int
	Message    string
	Kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// API is a typed client for the EventHub REST API. Zero-value fields get
// sensible defaults; Token is the bearer token of the signed-in user.
type API struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *API {
	return &API{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login signs in and stores the bearer token on the client.
func (a *API) Login(ctx context.Context, email, password string) (models.User, error) {
	var resp authResponse
	err := a.do(ctx, http.MethodPost, "/api/v1/auth/login", loginRequest{Email: email, Password: password}, &resp, nil)
	if err != nil {
		return models.User{}, err
	}
	a.Token = resp.Token
	return resp.User, nil
}

// GetEvent fetches a single event.
func (a *API) GetEvent(ctx context.Context, eventID string) (models.Event, error) {
	var event models.Event
	err := a.do(ctx, http.MethodGet, "/api/v1/events/"+url.PathEscape(eventID), nil, &event, nil)
	return event, err
}

type validateCouponRequest struct {
	Code     string `json:"code"`
	EventID  string `json:"event_id"`
	Quantity int    `json:"quantity"`
}

// ValidateCoupon asks the backend to validate a code for an event and
// quantity. The returned discount and final amount are displayed
// verbatim; the client recomputes nothing.
func (a *API) ValidateCoupon(ctx context.Context, code, eventID string, quantity int) (models.CouponValidationResult, error) {
	var result models.CouponValidationResult
	err := a.do(ctx, http.MethodPost, "/api/v1/coupons/validate",
		validateCouponRequest{Code: code, EventID: eventID, Quantity: quantity}, &result,
		func(status int, message string) error {
			if status == http.StatusBadRequest {
				return ErrInvalidCoupon
			}
			return nil
		})
	return result, err
}

type createBookingRequest struct {
	EventID    string `json:"event_id"`
	Quantity   int    `json:"quantity"`
	CouponCode string `json:"coupon_code,omitempty"`
}

// CreateBooking creates a reservation. RequiresPayment on the result
// tells the caller whether to open a payment session.
func (a *API) CreateBooking(ctx context.Context, eventID string, quantity int, couponCode string) (models.CreateBookingResult, error) {
	var result models.CreateBookingResult
	err := a.do(ctx, http.MethodPost, "/api/v1/bookings/",
		createBookingRequest{EventID: eventID, Quantity: quantity, CouponCode: couponCode}, &result,
		func(status int, message string) error {
			if status != http.StatusConflict {
				return nil
			}
			if strings.Contains(strings.ToLower(message), "already booked") {
				return ErrAlreadyBooked
			}
			return ErrEventFull
		})
	return result, err
}

type createIntentRequest struct {
	BookingID string `json:"booking_id"`
}

// CreatePaymentIntent opens a payment intent for a pending booking.
func (a *API) CreatePaymentIntent(ctx context.Context, bookingID string) (models.PaymentIntentResult, error) {
	var result models.PaymentIntentResult
	err := a.do(ctx, http.MethodPost, "/api/v1/payments/create-intent",
		createIntentRequest{BookingID: bookingID}, &result, nil)
	return result, err
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// ErrEmptyIntentID is returned locally by ConfirmPayment before any
// network call is made.
var ErrEmptyIntentID = errors.New("payment intent id must not be empty")

// ConfirmPayment finalizes a payment intent with the backend.
func (a *API) ConfirmPayment(ctx context.Context, paymentIntentID string) (models.Booking, error) {
	if paymentIntentID == "" {
		return models.Booking{}, ErrEmptyIntentID
	}
	var booking models.Booking
	err := a.do(ctx, http.MethodPost, "/api/v1/payments/confirm",
		confirmPaymentRequest{PaymentIntentID: paymentIntentID}, &booking, nil)
	return booking, err
}

// CancelBooking cancels the caller's booking before the event date.
func (a *API) CancelBooking(ctx context.Context, bookingID string) error {
	return a.do(ctx, http.MethodPatch, "/api/v1/bookings/"+url.PathEscape(bookingID)+"/cancel", nil, nil, nil)
}

// BookingPage is one page of the caller's bookings.
type BookingPage struct {
	Bookings   []models.Booking
	Pagination utils.Pagination
}

// MyBookings fetches a page of the caller's bookings.
func (a *API) MyBookings(ctx context.Context, page, limit int) (BookingPage, error) {
	path := "/api/v1/bookings/my-bookings?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)

	var envelope struct {
		Data       []models.Booking `json:"data"`
		Pagination utils.Pagination `json:"pagination"`
	}
	if err := a.doRaw(ctx, http.MethodGet, path, nil, &envelope, nil); err != nil {
		return BookingPage{}, err
	}
	return BookingPage{Bookings: envelope.Data, Pagination: envelope.Pagination}, nil
}

// kindOverride lets a call site refine the error kind for a status code
// before the default mapping applies.
type kindOverride func(status int, message string) error

// do performs a request and decodes the {"data": ...} envelope into out.
func (a *API) do(ctx context.Context, method, path string, body, out interface{}, override kindOverride) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := a.doRaw(ctx, method, path, body, &envelope, override); err != nil {
		return err
	}
	if out == nil || envelope.Data == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

// doRaw performs a request and decodes the whole response body into out.
func (a *API) doRaw(ctx context.Context, method, path string, body, out interface{}, override kindOverride) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}

	httpClient := a.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return a.mapError(resp.StatusCode, decodeErrorMessage(resp), override)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeErrorMessage(resp *http.Response) string {
	var envelope utils.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Message == "" {
		return http.StatusText(resp.StatusCode)
	}
	return envelope.Error.Message
}

func (a *API) mapError(status int, message string, override kindOverride) error {
	kind := error(nil)
	if override != nil {
		kind = override(status, message)
	}
	if kind == nil {
		switch status {
		case http.StatusUnauthorized:
			kind = ErrUnauthenticated
		case http.StatusForbidden:
			kind = ErrForbidden
		case http.StatusNotFound:
			kind = ErrNotFound
		case http.StatusConflict:
			kind = ErrConflict
		case http.StatusBadRequest:
			kind = ErrValidation
		}
	}
	return &APIError{StatusCode: status, Message: message, Kind: kind}
}
