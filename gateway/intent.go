package gateway

import (
	"context"
	"encoding/json"
	"net/http"
)

// IntentGateway integrates a card processor. Initiate creates a payment
// intent bound to the invoice; the payer's browser completes the charge with
// the client secret and settlement arrives through the webhook.
type IntentGateway struct {
	*restClient
}

func NewIntentGateway(c *Config) *IntentGateway {
	return &IntentGateway{
		restClient: newRestClient(c.IntentBaseURL, c.IntentAPIKey, c.RequestTimeoutSecs),
	}
}

type intentCreateRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type intentCreateResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type intentWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID                 string `json:"id"`
			LastPaymentMessage string `json:"last_payment_message,omitempty"`
		} `json:"object"`
	} `json:"data"`
}

func (g *IntentGateway) Name() string {
	return IntentGatewayName
}

func (g *IntentGateway) Initiate(ctx context.Context, req InitiateRequest) (*Handle, error) {
	intent := intentCreateRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.InvoiceNumber,
	}
	response := intentCreateResponse{}
	err := g.request(ctx, http.MethodPost, "/v1/payment_intents", &intent, &response)
	if err != nil {
		return nil, err
	}
	if response.ID == "" || response.ClientSecret == "" {
		return nil, transientError("intent gateway returned an incomplete intent")
	}
	return &Handle{
		Reference:    response.ID,
		Continuation: response.ClientSecret,
	}, nil
}

func (g *IntentGateway) ParseNotification(payload []byte) (*Notification, error) {
	webhook := intentWebhookPayload{}
	if err := json.Unmarshal(payload, &webhook); err != nil {
		return nil, err
	}
	if webhook.Data.Object.ID == "" {
		return nil, permanentError("intent webhook is missing the intent id")
	}
	var succeeded bool
	switch webhook.Type {
	case "payment_intent.succeeded":
		succeeded = true
	case "payment_intent.payment_failed", "payment_intent.canceled":
		succeeded = false
	default:
		// payment_intent.created and the other lifecycle events precede the result
		return nil, ErrIgnoreNotification
	}
	return &Notification{
		Reference: webhook.Data.Object.ID,
		Succeeded: succeeded,
		Message:   webhook.Data.Object.LastPaymentMessage,
	}, nil
}
