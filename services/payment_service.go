// File: /services/payment_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"eventhub-api/config"
	"eventhub-api/models"
)

// ProcessorIntent is what a provider returns for a created or fetched
// payment intent.
type ProcessorIntent struct {
	ID           string
	ClientSecret string
	Amount       float64
	Succeeded    bool
}

// PaymentProvider creates intents with the processor and checks their
// final state before the backend confirms a booking.
type PaymentProvider interface {
	CreateIntent(amount float64, bookingID string) (ProcessorIntent, error)
	RetrieveIntent(intentID string) (ProcessorIntent, error)
}

// NewPaymentProvider selects the provider from configuration.
func NewPaymentProvider(cfg *config.Config) PaymentProvider {
	if cfg.PaymentMode == "live" {
		return &HTTPProvider{
			baseURL:   strings.TrimRight(cfg.PaymentAPIBase, "/"),
			secretKey: cfg.PaymentSecretKey,
			returnURL: cfg.PaymentReturnURL,
			client:    &http.Client{Timeout: 15 * time.Second},
		}
	}
	logrus.Info("Payment provider running in demo mode, no processor charges will be made")
	return &DemoProvider{}
}

// DemoProvider issues placeholder intents identified by the demo id
// prefix. There is no client secret and confirmation always succeeds.
type DemoProvider struct{}

func (p *DemoProvider) CreateIntent(amount float64, bookingID string) (ProcessorIntent, error) {
	return ProcessorIntent{
		ID:     models.DemoIntentPrefix + uuid.New().String(),
		Amount: amount,
	}, nil
}

func (p *DemoProvider) RetrieveIntent(intentID string) (ProcessorIntent, error) {
	if !models.IsDemoIntentID(intentID) {
		return ProcessorIntent{}, errors.New("not a demo intent")
	}
	return ProcessorIntent{ID: intentID, Succeeded: true}, nil
}

// HTTPProvider talks to the processor's REST API with form-encoded
// requests authenticated by the secret key.
type HTTPProvider struct {
	baseURL   string
	secretKey string
	returnURL string
	client    *http.Client
}

type processorIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"` // minor units
	Status       string `json:"status"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *HTTPProvider) CreateIntent(amount float64, bookingID string) (ProcessorIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(int64(amount*100), 10))
	form.Set("currency", "usd")
	form.Set("metadata[booking_id]", bookingID)
	form.Set("return_url", p.returnURL)

	return p.do(http.MethodPost, "/v1/payment_intents", form)
}

func (p *HTTPProvider) RetrieveIntent(intentID string) (ProcessorIntent, error) {
	return p.do(http.MethodGet, "/v1/payment_intents/"+url.PathEscape(intentID), nil)
}

func (p *HTTPProvider) do(method, path string, form url.Values) (ProcessorIntent, error) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequest(method, p.baseURL+path, body)
	if err != nil {
		return ProcessorIntent{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return ProcessorIntent{}, fmt.Errorf("processor request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded processorIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ProcessorIntent{}, fmt.Errorf("processor response invalid: %w", err)
	}

	if resp.StatusCode >= 400 {
		message := "processor error"
		if decoded.Error != nil {
			message = decoded.Error.Message
		}
		return ProcessorIntent{}, fmt.Errorf("processor error (%d): %s", resp.StatusCode, message)
	}

	return ProcessorIntent{
		ID:           decoded.ID,
		ClientSecret: decoded.ClientSecret,
		Amount:       float64(decoded.Amount) / 100,
		Succeeded:    decoded.Status == "succeeded",
	}, nil
}
