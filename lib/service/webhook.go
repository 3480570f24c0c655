package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/wazohub/memberpay/common"
	"github.com/wazohub/memberpay/db/models"
)

// StartWebhookSubscription forwards settled payments to the configured
// webhook url, so the membership application can render receipts and update
// its own views without polling.
func (svc *MemberPayService) StartWebhookSubscription(ctx context.Context, url string) {

	svc.Logger.Infof("Starting webhook subscription with webhook url %s", url)
	completedPayments := make(chan models.Payment)
	failedPayments := make(chan models.Payment)
	completedId, _ := svc.PaymentPubSub.Subscribe(common.PaymentStatusCompleted, completedPayments)
	failedId, _ := svc.PaymentPubSub.Subscribe(common.PaymentStatusFailed, failedPayments)
	for {
		select {
		case <-ctx.Done():
			svc.PaymentPubSub.Unsubscribe(completedId, common.PaymentStatusCompleted)
			svc.PaymentPubSub.Unsubscribe(failedId, common.PaymentStatusFailed)
			return
		case completed := <-completedPayments:
			svc.postToWebhook(completed, url)
		case failed := <-failedPayments:
			svc.postToWebhook(failed, url)
		}
	}
}

func (svc *MemberPayService) postToWebhook(payment models.Payment, url string) {

	payload := new(bytes.Buffer)
	err := json.NewEncoder(payload).Encode(payment)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	resp, err := http.Post(url, "application/json", payload)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
