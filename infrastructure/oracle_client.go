package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"akashic/domain/entities"

	log "github.com/sirupsen/logrus"
)

const oracleSystemPrompt = "You are the Oracle of the Akashic Archive, a keeper of " +
	"esoteric knowledge. Answer seekers' questions in a wise, measured voice. " +
	"Keep answers under three paragraphs."

// OracleClientConfig configures the completion endpoint and HTTP behavior
type OracleClientConfig struct {
	Endpoint   string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// OracleClient implements the OracleProvider interface against an
// OpenAI-compatible chat completions endpoint.
type OracleClient struct {
	cfg OracleClientConfig
}

// NewOracleClient builds an oracle client
func NewOracleClient(cfg OracleClientConfig) *OracleClient {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &OracleClient{cfg: cfg}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete forwards a question to the completion endpoint and returns the answer
func (c *OracleClient) Complete(ctx context.Context, question string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: oracleSystemPrompt},
			{Role: "user", Content: question},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Oracle completion request failed")
		return "", entities.ErrOracleUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"status": resp.StatusCode,
		}).Warn("Oracle completion endpoint returned an error")
		return "", entities.ErrOracleUnavailable
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", entities.ErrOracleUnavailable
	}

	answer := strings.TrimSpace(completion.Choices[0].Message.Content)
	if answer == "" {
		return "", entities.ErrOracleUnavailable
	}
	return answer, nil
}
