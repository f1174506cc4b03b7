package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shangobashi/NoteSquared-C/internal/config"
	"github.com/shangobashi/NoteSquared-C/internal/model"
)

type passthroughResolver struct{}

func (passthroughResolver) Resolve(_ context.Context, ref string) (string, error) {
	return ref, nil
}

type failingStrategy struct{ name string }

func (s failingStrategy) Name() string { return s.name }
func (failingStrategy) Enabled() bool  { return true }
func (failingStrategy) Transcribe(context.Context, string) (string, error) {
	return "", fmt.Errorf("provider down")
}

type disabledStrategy struct{}

func (disabledStrategy) Name() string { return "disabled" }
func (disabledStrategy) Enabled() bool { return false }
func (disabledStrategy) Transcribe(context.Context, string) (string, error) {
	return "should never run", fmt.Errorf("should never run")
}

func TestChainFallsBackToPlaceholder(t *testing.T) {
	chain := NewChainTranscriber(passthroughResolver{}, true, zerolog.Nop(),
		disabledStrategy{},
		failingStrategy{name: "worker"},
		PlaceholderStrategy{},
	)

	text, err := chain.Transcribe(context.Background(), "https://example.com/audio.m4a")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if !strings.Contains(text, "C major scale") {
		t.Fatalf("expected placeholder transcript, got %q", text[:min(len(text), 60)])
	}
}

func TestChainFailsWhenDegradeDisabled(t *testing.T) {
	chain := NewChainTranscriber(passthroughResolver{}, false, zerolog.Nop(),
		failingStrategy{name: "worker"},
		PlaceholderStrategy{},
	)

	_, err := chain.Transcribe(context.Background(), "https://example.com/audio.m4a")
	if err == nil {
		t.Fatal("Transcribe() error = nil, want strategy failure to propagate")
	}
	if !strings.Contains(err.Error(), "worker") {
		t.Fatalf("error %q does not name the failed strategy", err)
	}
}

func TestChainSkipsEmptyText(t *testing.T) {
	empty := stubStrategy{name: "empty", text: ""}
	chain := NewChainTranscriber(passthroughResolver{}, false, zerolog.Nop(),
		empty,
		stubStrategy{name: "second", text: "real transcript"},
	)

	text, err := chain.Transcribe(context.Background(), "audio.m4a")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "real transcript" {
		t.Fatalf("text = %q, want fall-through to second strategy", text)
	}
}

type stubStrategy struct {
	name string
	text string
}

func (s stubStrategy) Name() string { return s.name }
func (stubStrategy) Enabled() bool { return true }
func (s stubStrategy) Transcribe(context.Context, string) (string, error) {
	return s.text, nil
}

func TestWorkerClientTranscribe(t *testing.T) {
	var gotToken string
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("path = %s, want /transcribe", r.URL.Path)
		}
		gotToken = r.Header.Get("X-Worker-Token")

		var req model.WorkerTranscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotURL = req.AudioURL

		json.NewEncoder(w).Encode(model.WorkerTranscribeResponse{Text: "  worker transcript  "})
	}))
	defer server.Close()

	client := NewWorkerClient(config.TranscriptionConfig{
		WorkerURL:   server.URL,
		WorkerToken: "secret",
	})

	if !client.Enabled() {
		t.Fatal("client with base URL should be enabled")
	}

	text, err := client.Transcribe(context.Background(), "https://signed.example/audio.m4a")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "worker transcript" {
		t.Fatalf("text = %q, want trimmed worker transcript", text)
	}
	if gotToken != "secret" {
		t.Fatalf("token header = %q, want secret", gotToken)
	}
	if gotURL != "https://signed.example/audio.m4a" {
		t.Fatalf("audio url = %q", gotURL)
	}
}

func TestWorkerClientRejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewWorkerClient(config.TranscriptionConfig{WorkerURL: server.URL})
	if _, err := client.Transcribe(context.Background(), "url"); err == nil {
		t.Fatal("Transcribe() error = nil, want token rejection")
	}
}

func TestWorkerClientDisabledWithoutURL(t *testing.T) {
	client := NewWorkerClient(config.TranscriptionConfig{})
	if client.Enabled() {
		t.Fatal("client without base URL should be disabled")
	}
}

// signerOnly adapts a recordingSigner to the storage interface; only
// SignedURL is exercised by the resolver.
type signerOnly struct{ s *recordingSigner }

func (signerOnly) Download(context.Context, string) (io.ReadCloser, error) { return nil, nil }
func (signerOnly) Upload(context.Context, string, io.Reader) error         { return nil }
func (signerOnly) Delete(context.Context, string) error                    { return nil }
func (signerOnly) Exists(context.Context, string) (bool, error)            { return false, nil }
func (signerOnly) Ref(string) string                                       { return "" }

func (a signerOnly) SignedURL(bucket, key string, expires time.Duration) (string, error) {
	return a.s.SignedURL(bucket, key, expires)
}

type recordingSigner struct {
	signedBucket string
	signedKey    string
	signedTTL    time.Duration
}

func (s *recordingSigner) SignedURL(bucket, key string, expires time.Duration) (string, error) {
	s.signedBucket = bucket
	s.signedKey = key
	s.signedTTL = expires
	return "https://signed.example/" + key, nil
}

func TestSignedRefResolver(t *testing.T) {
	signer := &recordingSigner{}
	resolver := NewSignedRefResolver(signerOnly{signer}, 30*time.Minute)

	url, err := resolver.Resolve(context.Background(), "s3://recordings/lessons/l-1/audio.m4a")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if url != "https://signed.example/lessons/l-1/audio.m4a" {
		t.Fatalf("url = %q", url)
	}
	if signer.signedBucket != "recordings" || signer.signedKey != "lessons/l-1/audio.m4a" {
		t.Fatalf("signed %s/%s, want recordings/lessons/l-1/audio.m4a", signer.signedBucket, signer.signedKey)
	}
	if signer.signedTTL != 30*time.Minute {
		t.Fatalf("ttl = %v, want 30m", signer.signedTTL)
	}
}

func TestSignedRefResolverPassthrough(t *testing.T) {
	signer := &recordingSigner{}
	resolver := NewSignedRefResolver(signerOnly{signer}, time.Hour)

	for _, ref := range []string{
		"https://example.com/audio.m4a",
		"uploads/audio.m4a",
		"s3://bucket-only",
	} {
		url, err := resolver.Resolve(context.Background(), ref)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", ref, err)
		}
		if url != ref {
			t.Fatalf("Resolve(%q) = %q, want passthrough", ref, url)
		}
	}
	if signer.signedKey != "" {
		t.Fatalf("signer called for non-signed ref: %s", signer.signedKey)
	}
}
