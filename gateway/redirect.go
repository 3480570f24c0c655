package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// RedirectGateway integrates a hosted wallet processor. Initiate creates a
// pending order and returns the payer-facing approval URL; settlement needs
// an explicit Capture after the payer approved, or arrives via webhook.
type RedirectGateway struct {
	*restClient
	returnURL string
}

func NewRedirectGateway(c *Config) *RedirectGateway {
	return &RedirectGateway{
		restClient: newRestClient(c.RedirectBaseURL, c.RedirectAPIKey, c.RequestTimeoutSecs),
		returnURL:  c.RedirectReturnURL,
	}
}

type redirectOrderRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
	ReturnURL string `json:"return_url"`
}

type redirectOrderResponse struct {
	OrderID     string `json:"order_id"`
	ApprovalURL string `json:"approval_url"`
	Status      string `json:"status"`
}

type redirectCaptureResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
}

type redirectWebhookPayload struct {
	Event   string `json:"event"`
	OrderID string `json:"order_id"`
	Summary string `json:"summary,omitempty"`
}

func (g *RedirectGateway) Name() string {
	return RedirectGatewayName
}

func (g *RedirectGateway) Initiate(ctx context.Context, req InitiateRequest) (*Handle, error) {
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = g.returnURL
	}
	order := redirectOrderRequest{
		Amount:    req.Amount,
		Currency:  req.Currency,
		Reference: req.InvoiceNumber,
		ReturnURL: returnURL,
	}
	response := redirectOrderResponse{}
	err := g.request(ctx, http.MethodPost, "/v1/orders", &order, &response)
	if err != nil {
		return nil, err
	}
	if response.OrderID == "" {
		return nil, transientError("redirect gateway returned no order id")
	}
	return &Handle{
		Reference:    response.OrderID,
		Continuation: response.ApprovalURL,
	}, nil
}

func (g *RedirectGateway) Capture(ctx context.Context, orderID string) (*CaptureResult, error) {
	response := redirectCaptureResponse{}
	err := g.request(ctx, http.MethodPost, fmt.Sprintf("/v1/orders/%s/capture", orderID), nil, &response)
	if err != nil {
		return nil, err
	}
	return &CaptureResult{
		Reference: response.OrderID,
		Succeeded: strings.EqualFold(response.Status, "completed"),
		Message:   response.Reason,
	}, nil
}

func (g *RedirectGateway) ParseNotification(payload []byte) (*Notification, error) {
	webhook := redirectWebhookPayload{}
	if err := json.Unmarshal(payload, &webhook); err != nil {
		return nil, err
	}
	if webhook.OrderID == "" {
		return nil, permanentError("redirect webhook is missing the order id")
	}
	var succeeded bool
	switch strings.ToLower(webhook.Event) {
	case "order.completed":
		succeeded = true
	case "order.denied", "order.cancelled":
		succeeded = false
	default:
		// order.created, order.approved and the like precede the result
		return nil, ErrIgnoreNotification
	}
	return &Notification{
		Reference: webhook.OrderID,
		Succeeded: succeeded,
		Message:   webhook.Summary,
	}, nil
}
