// File: /services/payment_service_test.go
package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub-api/models"
)

func TestDemoProviderIssuesPrefixedIntents(t *testing.T) {
	provider := &DemoProvider{}

	intent, err := provider.CreateIntent(900, "booking-1")

	require.NoError(t, err)
	assert.True(t, models.IsDemoIntentID(intent.ID))
	assert.Empty(t, intent.ClientSecret)
	assert.Equal(t, 900.0, intent.Amount)
}

func TestDemoProviderRetrieveAlwaysSucceeds(t *testing.T) {
	provider := &DemoProvider{}

	intent, err := provider.RetrieveIntent("demo_abc")

	require.NoError(t, err)
	assert.True(t, intent.Succeeded)
}

func TestDemoProviderRejectsLiveIntentIDs(t *testing.T) {
	provider := &DemoProvider{}

	_, err := provider.RetrieveIntent("pi_abc")

	assert.Error(t, err)
}

func TestHTTPProviderCreateIntent(t *testing.T) {
	var gotPath, gotAuth, gotAmount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		gotAmount = r.PostForm.Get("amount")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "pi_123",
			"client_secret": "pi_123_secret",
			"amount":        90000,
			"status":        "requires_payment_method",
		})
	}))
	defer srv.Close()

	provider := &HTTPProvider{
		baseURL:   srv.URL,
		secretKey: "sk_test_123",
		client:    &http.Client{Timeout: 5 * time.Second},
	}

	intent, err := provider.CreateIntent(900, "booking-1")

	require.NoError(t, err)
	assert.Equal(t, "/v1/payment_intents", gotPath)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "90000", gotAmount, "amount is sent in minor units")
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.Equal(t, 900.0, intent.Amount)
	assert.False(t, intent.Succeeded)
}

func TestHTTPProviderRetrieveSucceededIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/pi_123"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "pi_123",
			"amount": 90000,
			"status": "succeeded",
		})
	}))
	defer srv.Close()

	provider := &HTTPProvider{
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	intent, err := provider.RetrieveIntent("pi_123")

	require.NoError(t, err)
	assert.True(t, intent.Succeeded)
}

func TestHTTPProviderSurfacesProcessorErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Your card was declined."},
		})
	}))
	defer srv.Close()

	provider := &HTTPProvider{
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	_, err := provider.CreateIntent(900, "booking-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "card was declined")
}
