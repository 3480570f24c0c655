package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentInitiate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		json.NewEncoder(w).Encode(intentCreateResponse{
			ID:           "pi_3MtwBwLkdIwHu7ix28a3tqPa",
			ClientSecret: "pi_3MtwBwLkdIwHu7ix28a3tqPa_secret_YrKJUKribcBjcG8HVhfZluoGH",
			Status:       "requires_payment_method",
		})
	}))
	defer server.Close()

	g := NewIntentGateway(&Config{IntentBaseURL: server.URL, RequestTimeoutSecs: 5})
	handle, err := g.Initiate(context.Background(), InitiateRequest{
		Amount:        10000,
		Currency:      "KES",
		InvoiceNumber: "INV202506-0003",
	})
	assert.NoError(t, err)
	assert.Equal(t, "pi_3MtwBwLkdIwHu7ix28a3tqPa", handle.Reference)
	assert.NotEmpty(t, handle.Continuation)
}

func TestIntentInitiateBadRequestIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	g := NewIntentGateway(&Config{IntentBaseURL: server.URL, RequestTimeoutSecs: 5})
	_, err := g.Initiate(context.Background(), InitiateRequest{Amount: 10000, Currency: "KES"})
	gwErr := &Error{}
	assert.ErrorAs(t, err, &gwErr)
	assert.False(t, gwErr.Transient)
}

func TestIntentParseNotification(t *testing.T) {
	g := NewIntentGateway(&Config{})

	notification, err := g.ParseNotification([]byte(`{
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_3MtwBwLkdIwHu7ix28a3tqPa"}}
	}`))
	assert.NoError(t, err)
	assert.True(t, notification.Succeeded)
	assert.Equal(t, "pi_3MtwBwLkdIwHu7ix28a3tqPa", notification.Reference)

	notification, err = g.ParseNotification([]byte(`{
		"type": "payment_intent.payment_failed",
		"data": {"object": {"id": "pi_3MtwBwLkdIwHu7ix28a3tqPa", "last_payment_message": "card declined"}}
	}`))
	assert.NoError(t, err)
	assert.False(t, notification.Succeeded)
	assert.Equal(t, "card declined", notification.Message)

	_, err = g.ParseNotification([]byte(`{"type": "payment_intent.succeeded"}`))
	assert.Error(t, err)
}

func TestIntentParseNotificationIgnoresLifecycleEvents(t *testing.T) {
	g := NewIntentGateway(&Config{})

	// creation precedes the result and must not fail the record
	_, err := g.ParseNotification([]byte(`{
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_3MtwBwLkdIwHu7ix28a3tqPa"}}
	}`))
	assert.ErrorIs(t, err, ErrIgnoreNotification)
}
