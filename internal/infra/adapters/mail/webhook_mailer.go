// Package mail adapts the external mail transport to the Mailer port.
// Delivery itself is out of scope; this adapter only hands the reminder off
// to the hosted transport over HTTP.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"subsentry/internal/domain/ports/adapter"
)

type WebhookMailer struct {
	endpoint string
	token    string
	http     *http.Client
	log      *zerolog.Logger
}

var _ adapter.Mailer = (*WebhookMailer)(nil)

func NewWebhookMailer(endpoint, token string, logger *zerolog.Logger) *WebhookMailer {
	l := logger.With().Str("component", "WebhookMailer").Logger()
	return &WebhookMailer{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      &l,
	}
}

type reminderPayload struct {
	UserID           string `json:"user_id"`
	SubscriptionID   string `json:"subscription_id"`
	SubscriptionName string `json:"subscription_name"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	DaysAhead        int    `json:"days_ahead"`
}

func (m *WebhookMailer) SendRenewalReminder(ctx context.Context, msg adapter.ReminderMessage) error {
	payload := reminderPayload{
		UserID:           msg.UserID,
		SubscriptionID:   msg.SubscriptionID,
		SubscriptionName: msg.SubscriptionName,
		Amount:           msg.Amount.StringFixed(2),
		Currency:         string(msg.Currency),
		DaysAhead:        msg.DaysAhead,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("deliver reminder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("deliver reminder: unexpected status %d", resp.StatusCode)
	}
	m.log.Debug().Str("subscription_id", msg.SubscriptionID).Msg("reminder handed off to mail transport")
	return nil
}
