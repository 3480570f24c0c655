package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func redirectTestConfig(url string) *Config {
	return &Config{
		RedirectBaseURL:    url,
		RedirectReturnURL:  "https://members.example.com/payments/return",
		RequestTimeoutSecs: 5,
	}
}

func TestRedirectInitiate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		req := redirectOrderRequest{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://members.example.com/payments/return", req.ReturnURL)
		json.NewEncoder(w).Encode(redirectOrderResponse{
			OrderID:     "O-5XJ87530",
			ApprovalURL: "https://wallet.example.com/approve/O-5XJ87530",
			Status:      "CREATED",
		})
	}))
	defer server.Close()

	g := NewRedirectGateway(redirectTestConfig(server.URL))
	handle, err := g.Initiate(context.Background(), InitiateRequest{
		Amount:        2500,
		Currency:      "KES",
		InvoiceNumber: "INV202506-0002",
	})
	assert.NoError(t, err)
	assert.Equal(t, "O-5XJ87530", handle.Reference)
	assert.Equal(t, "https://wallet.example.com/approve/O-5XJ87530", handle.Continuation)
}

func TestRedirectCapture(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/O-5XJ87530/capture", r.URL.Path)
		json.NewEncoder(w).Encode(redirectCaptureResponse{
			OrderID: "O-5XJ87530",
			Status:  "COMPLETED",
		})
	}))
	defer server.Close()

	g := NewRedirectGateway(redirectTestConfig(server.URL))
	result, err := g.Capture(context.Background(), "O-5XJ87530")
	assert.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, "O-5XJ87530", result.Reference)
}

func TestRedirectCaptureDenied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(redirectCaptureResponse{
			OrderID: "O-5XJ87530",
			Status:  "DENIED",
			Reason:  "payer did not approve",
		})
	}))
	defer server.Close()

	g := NewRedirectGateway(redirectTestConfig(server.URL))
	result, err := g.Capture(context.Background(), "O-5XJ87530")
	assert.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, "payer did not approve", result.Message)
}

func TestRedirectParseNotification(t *testing.T) {
	g := NewRedirectGateway(redirectTestConfig(""))

	notification, err := g.ParseNotification([]byte(`{"event": "ORDER.COMPLETED", "order_id": "O-5XJ87530"}`))
	assert.NoError(t, err)
	assert.True(t, notification.Succeeded)
	assert.Equal(t, "O-5XJ87530", notification.Reference)

	notification, err = g.ParseNotification([]byte(`{"event": "order.denied", "order_id": "O-5XJ87530"}`))
	assert.NoError(t, err)
	assert.False(t, notification.Succeeded)
}

func TestRedirectParseNotificationIgnoresLifecycleEvents(t *testing.T) {
	g := NewRedirectGateway(redirectTestConfig(""))

	// approval precedes the result and must not fail the record
	_, err := g.ParseNotification([]byte(`{"event": "order.approved", "order_id": "O-5XJ87530"}`))
	assert.ErrorIs(t, err, ErrIgnoreNotification)

	_, err = g.ParseNotification([]byte(`{"event": "order.created", "order_id": "O-5XJ87530"}`))
	assert.ErrorIs(t, err, ErrIgnoreNotification)
}
