// Package push provides a client for sending reminder notifications
// through FCM device tokens.
//
// A single registered device gets a direct send; several devices get
// one multicast call. Multicast results are reported per token so the
// caller can treat a partially delivered notification as a success.
package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultAPIURL = "https://fcm.googleapis.com/fcm/send"

// Client represents an FCM client used to send push notifications.
type Client struct {
	serverKey string       // server key for authentication
	apiURL    string       // endpoint, overridable in tests
	client    *http.Client // HTTP client used to make requests
}

// NewClient creates a new push Client instance with the given server key.
func NewClient(serverKey string) *Client {
	return &Client{
		serverKey: serverKey,
		apiURL:    defaultAPIURL,
		client:    &http.Client{},
	}
}

// Notification is the visible part of a push payload.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Data is the structured part of a push payload the app consumes on tap.
type Data struct {
	GoalID      string `json:"goalId"`
	Type        string `json:"type"`
	ReminderID  string `json:"reminderId"`
	Timestamp   string `json:"timestamp"`
	ClickAction string `json:"clickAction"`
}

// Payload is one logical push notification.
type Payload struct {
	Notification Notification
	Data         Data
}

// sendRequest represents the FCM send API request body.
type sendRequest struct {
	To              string       `json:"to,omitempty"`
	RegistrationIDs []string     `json:"registration_ids,omitempty"`
	Notification    Notification `json:"notification"`
	Data            Data         `json:"data"`
}

// sendResponse represents the FCM send API response body.
type sendResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// MulticastResult reports per-token outcomes of a multicast send.
type MulticastResult struct {
	Success int
	Failure int
	Errors  map[string]string // token -> error code for failed tokens
}

// Send sends one notification to a single device token.
func (c *Client) Send(token string, payload Payload) error {
	resp, err := c.post(sendRequest{
		To:           token,
		Notification: payload.Notification,
		Data:         payload.Data,
	})
	if err != nil {
		return err
	}

	if resp.Success < 1 {
		code := "unknown"
		if len(resp.Results) > 0 && resp.Results[0].Error != "" {
			code = resp.Results[0].Error
		}

		return fmt.Errorf("push send failed: %s", code)
	}

	return nil
}

// SendMulticast sends one notification to several device tokens in a
// single call and returns the per-token outcome. It only errors on
// transport or API-level failure; delivery failures for individual
// tokens are reported in the result.
func (c *Client) SendMulticast(tokens []string, payload Payload) (MulticastResult, error) {
	resp, err := c.post(sendRequest{
		RegistrationIDs: tokens,
		Notification:    payload.Notification,
		Data:            payload.Data,
	})
	if err != nil {
		return MulticastResult{}, err
	}

	result := MulticastResult{
		Success: resp.Success,
		Failure: resp.Failure,
		Errors:  make(map[string]string),
	}

	for i, res := range resp.Results {
		if res.Error != "" && i < len(tokens) {
			result.Errors[tokens[i]] = res.Error
		}
	}

	return result, nil
}

func (c *Client) post(req sendRequest) (sendResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return sendResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return sendResponse{}, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return sendResponse{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return sendResponse{}, fmt.Errorf("FCM API error: %s", resp.Status)
	}

	var parsed sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return sendResponse{}, fmt.Errorf("decode response: %w", err)
	}

	return parsed, nil
}
