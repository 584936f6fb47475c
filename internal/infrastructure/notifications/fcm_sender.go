package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/pkg/config"
	"github.com/mysahara/health-assistant/backend/pkg/retry"
)

// FCMSender sends push notifications via the FCM legacy HTTP API.
type FCMSender struct {
	serverKey  string
	httpClient *http.Client
	baseURL    string
}

// NewFCMSender creates a new FCM sender
func NewFCMSender(cfg *config.FCMConfig) (*FCMSender, error) {
	if cfg == nil || cfg.ServerKey == "" {
		return nil, fmt.Errorf("FCM_SERVER_KEY must be set")
	}

	return &FCMSender{
		serverKey: cfg.ServerKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://fcm.googleapis.com/fcm",
	}, nil
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Priority     string            `json:"priority"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// Send delivers one message to one device token, retrying transient failures.
func (s *FCMSender) Send(ctx context.Context, msg entities.PushMessage) (*entities.DeliveryResult, error) {
	if msg.Token == "" {
		return &entities.DeliveryResult{Succeeded: false, Error: "device token is empty"}, nil
	}

	payload := fcmMessage{
		To: msg.Token,
		Notification: fcmNotification{
			Title: msg.Title,
			Body:  msg.Body,
			Sound: "default",
		},
		Data:     msg.Data,
		Priority: "high",
	}

	var result *entities.DeliveryResult
	err := retry.Do(ctx, retry.SendConfig(), func() error {
		var sendErr error
		result, sendErr = s.sendMessage(ctx, payload)
		return sendErr
	})
	if err != nil {
		return &entities.DeliveryResult{Succeeded: false, Error: err.Error()}, err
	}

	return result, nil
}

// SendBulk delivers the same title/body to many tokens. Individual failures
// do not abort the batch.
func (s *FCMSender) SendBulk(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]entities.DeliveryResult, error) {
	results := make([]entities.DeliveryResult, 0, len(tokens))
	for _, token := range tokens {
		result, err := s.Send(ctx, entities.PushMessage{
			Token: token,
			Title: title,
			Body:  body,
			Data:  data,
		})
		if err != nil {
			results = append(results, entities.DeliveryResult{Succeeded: false, Error: err.Error()})
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

func (s *FCMSender) sendMessage(ctx context.Context, payload fcmMessage) (*entities.DeliveryResult, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "key="+s.serverKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("FCM API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var fcmResp fcmResponse
	if err := json.Unmarshal(respBody, &fcmResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(fcmResp.Results) > 0 {
		r := fcmResp.Results[0]
		if r.Error != "" {
			return &entities.DeliveryResult{Succeeded: false, Error: r.Error}, nil
		}
		return &entities.DeliveryResult{Succeeded: true, MessageID: r.MessageID}, nil
	}

	return &entities.DeliveryResult{Succeeded: fcmResp.Success > 0}, nil
}
