package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shangobashi/NoteSquared-C/internal/config"
	"github.com/shangobashi/NoteSquared-C/internal/model"
)

// WorkerClient delegates transcription to a remote worker service over HTTP.
// The worker fetches the (signed) audio URL itself and returns plain text.
type WorkerClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewWorkerClient(cfg config.TranscriptionConfig) *WorkerClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &WorkerClient{
		baseURL: strings.TrimRight(cfg.WorkerURL, "/"),
		token:   cfg.WorkerToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *WorkerClient) Name() string { return "worker" }

func (c *WorkerClient) Enabled() bool { return c.baseURL != "" }

func (c *WorkerClient) Transcribe(ctx context.Context, audioURL string) (string, error) {
	payload := model.WorkerTranscribeRequest{AudioURL: audioURL}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal worker request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create worker request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("X-Worker-Token", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("worker request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return "", fmt.Errorf("worker rejected token")
	default:
		return "", fmt.Errorf("worker returned HTTP %d", resp.StatusCode)
	}

	var workerResp model.WorkerTranscribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&workerResp); err != nil {
		return "", fmt.Errorf("failed to decode worker response: %w", err)
	}

	return strings.TrimSpace(workerResp.Text), nil
}
