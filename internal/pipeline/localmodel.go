package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shangobashi/NoteSquared-C/internal/config"
)

const defaultModelAPIURL = "https://api.openai.com/v1/audio/transcriptions"

// LocalModelStrategy calls a speech-model transcription API directly. Remote
// audio URLs are first downloaded to a scratch file under the upload dir; the
// scratch file is removed on every exit path.
type LocalModelStrategy struct {
	apiKey     string
	apiURL     string
	modelName  string
	uploadDir  string
	httpClient *http.Client
}

func NewLocalModelStrategy(cfg config.TranscriptionConfig) *LocalModelStrategy {
	apiURL := cfg.ModelAPIURL
	if apiURL == "" {
		apiURL = defaultModelAPIURL
	}
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "whisper-1"
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &LocalModelStrategy{
		apiKey:    cfg.ModelAPIKey,
		apiURL:    apiURL,
		modelName: modelName,
		uploadDir: cfg.UploadDir,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *LocalModelStrategy) Name() string { return "local-model" }

func (s *LocalModelStrategy) Enabled() bool { return s.apiKey != "" }

func (s *LocalModelStrategy) Transcribe(ctx context.Context, audioURL string) (string, error) {
	localPath, cleanup, err := s.ensureLocal(ctx, audioURL)
	if err != nil {
		return "", err
	}
	defer cleanup()

	return s.callModel(ctx, localPath)
}

// ensureLocal returns a readable local path for the audio. The returned
// cleanup removes the scratch file when one was created and is a no-op for
// already-local paths.
func (s *LocalModelStrategy) ensureLocal(ctx context.Context, audioURL string) (string, func(), error) {
	if !strings.HasPrefix(audioURL, "http://") && !strings.HasPrefix(audioURL, "https://") {
		return audioURL, func() {}, nil
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	localPath := filepath.Join(s.uploadDir, fmt.Sprintf("audio_%s.bin", uuid.NewString()))
	cleanup := func() { os.Remove(localPath) }

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("audio download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("audio download returned HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(localPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scratch file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := out.Close(); err != nil {
		cleanup()
		return "", nil, err
	}

	return localPath, cleanup, nil
}

func (s *LocalModelStrategy) callModel(ctx context.Context, localPath string) (string, error) {
	audioFile, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer audioFile.Close()

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("model", s.modelName); err != nil {
		return "", err
	}
	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return "", fmt.Errorf("failed to buffer audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("failed to create model request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model API returned HTTP %d", resp.StatusCode)
	}

	var modelResp struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&modelResp); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}

	return strings.TrimSpace(modelResp.Text), nil
}
