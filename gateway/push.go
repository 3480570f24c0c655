package gateway

import (
	"context"
	"encoding/json"
	"net/http"
)

// PushGateway integrates a mobile money processor that prompts the payer's
// device. A successful Initiate only means the processor accepted the prompt
// request, settlement arrives later through the callback.
type PushGateway struct {
	*restClient
	shortCode string
}

func NewPushGateway(c *Config) *PushGateway {
	return &PushGateway{
		restClient: newRestClient(c.PushBaseURL, c.PushAPIKey, c.RequestTimeoutSecs),
		shortCode:  c.PushShortCode,
	}
}

type pushCheckoutRequest struct {
	ShortCode        string `json:"short_code"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	PhoneNumber      string `json:"phone_number"`
	AccountReference string `json:"account_reference"`
}

type pushCheckoutResponse struct {
	CheckoutRequestID   string `json:"checkout_request_id"`
	ResponseCode        string `json:"response_code"`
	ResponseDescription string `json:"response_description"`
}

type pushCallbackPayload struct {
	CheckoutRequestID string `json:"checkout_request_id"`
	ResultCode        int    `json:"result_code"`
	ResultDesc        string `json:"result_desc"`
}

func (g *PushGateway) Name() string {
	return PushGatewayName
}

func (g *PushGateway) Initiate(ctx context.Context, req InitiateRequest) (*Handle, error) {
	if req.Phone == "" {
		return nil, permanentError("push payment requires a phone number")
	}
	checkout := pushCheckoutRequest{
		ShortCode:        g.shortCode,
		Amount:           req.Amount,
		Currency:         req.Currency,
		PhoneNumber:      req.Phone,
		AccountReference: req.InvoiceNumber,
	}
	response := pushCheckoutResponse{}
	err := g.request(ctx, http.MethodPost, "/checkout", &checkout, &response)
	if err != nil {
		return nil, err
	}
	if response.ResponseCode != "0" {
		return nil, permanentError("push gateway rejected the checkout: %s", response.ResponseDescription)
	}
	// no continuation: the payer confirms on their device
	return &Handle{Reference: response.CheckoutRequestID}, nil
}

func (g *PushGateway) ParseNotification(payload []byte) (*Notification, error) {
	callback := pushCallbackPayload{}
	if err := json.Unmarshal(payload, &callback); err != nil {
		return nil, err
	}
	if callback.CheckoutRequestID == "" {
		return nil, permanentError("push callback is missing the checkout request id")
	}
	return &Notification{
		Reference: callback.CheckoutRequestID,
		Succeeded: callback.ResultCode == 0,
		Message:   callback.ResultDesc,
	}, nil
}
