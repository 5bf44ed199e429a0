package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEntities maps summary names onto the input_text helpers the
// summaries are stored in.
var DefaultEntities = map[string]string{
	"today":     "input_text.stored_task_data",
	"this-week": "input_text.stored_weekly_task_data",
	"upcoming":  "input_text.stored_upcoming_task_data",
}

// HATimeout bounds one service call.
const HATimeout = 10 * time.Second

// HomeAssistant writes values to input_text entities through the Home
// Assistant REST API (input_text.set_value service).
type HomeAssistant struct {
	baseURL  string
	token    string
	entities map[string]string
	client   *http.Client
}

// NewHomeAssistant creates a sink for the instance at baseURL using a
// long-lived access token. A nil entities map selects DefaultEntities.
func NewHomeAssistant(baseURL, token string, entities map[string]string, client *http.Client) (*HomeAssistant, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("home assistant url is required")
	}
	if token == "" {
		return nil, fmt.Errorf("home assistant token is required")
	}
	if entities == nil {
		entities = DefaultEntities
	}
	if client == nil {
		client = &http.Client{Timeout: HATimeout}
	}
	return &HomeAssistant{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		entities: entities,
		client:   client,
	}, nil
}

type setValueRequest struct {
	EntityID string `json:"entity_id"`
	Value    string `json:"value"`
}

// Set implements Sink.
func (h *HomeAssistant) Set(ctx context.Context, name, value string) error {
	entityID, ok := h.entities[name]
	if !ok {
		return &UnknownSinkError{Name: name}
	}

	body, err := json.Marshal(setValueRequest{EntityID: entityID, Value: value})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		h.baseURL+"/api/services/input_text/set_value", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("set %s: %w", entityID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("set %s: %s: %s", entityID, resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}
