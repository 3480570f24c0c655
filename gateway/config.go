package gateway

import (
	"github.com/kelseyhightower/envconfig"
)

const (
	PushGatewayName     = "push"
	RedirectGatewayName = "redirect"
	IntentGatewayName   = "intent"
)

type Config struct {
	PushBaseURL        string `envconfig:"PUSH_GATEWAY_URL"`
	PushAPIKey         string `envconfig:"PUSH_GATEWAY_API_KEY"`
	PushShortCode      string `envconfig:"PUSH_GATEWAY_SHORT_CODE"`
	RedirectBaseURL    string `envconfig:"REDIRECT_GATEWAY_URL"`
	RedirectAPIKey     string `envconfig:"REDIRECT_GATEWAY_API_KEY"`
	RedirectReturnURL  string `envconfig:"REDIRECT_GATEWAY_RETURN_URL"`
	IntentBaseURL      string `envconfig:"INTENT_GATEWAY_URL"`
	IntentAPIKey       string `envconfig:"INTENT_GATEWAY_API_KEY"`
	RequestTimeoutSecs int    `envconfig:"GATEWAY_REQUEST_TIMEOUT" default:"30"`
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// InitGateways builds the adapter for every gateway with a configured base
// URL, keyed by the method that selects it.
func InitGateways(c *Config) map[string]PaymentGateway {
	gateways := map[string]PaymentGateway{}
	if c.PushBaseURL != "" {
		gateways[PushGatewayName] = NewPushGateway(c)
	}
	if c.RedirectBaseURL != "" {
		gateways[RedirectGatewayName] = NewRedirectGateway(c)
	}
	if c.IntentBaseURL != "" {
		gateways[IntentGatewayName] = NewIntentGateway(c)
	}
	return gateways
}
