package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shangobashi/NoteSquared-C/internal/config"
	"github.com/shangobashi/NoteSquared-C/internal/storage"
)

// Strategy is one transcription provider in the fallback chain. Disabled
// strategies (missing credentials) are skipped without counting as failures.
type Strategy interface {
	Name() string
	Enabled() bool
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// RefResolver resolves a signed-storage audio reference to a fetchable URL.
// Plain paths and http(s) URLs pass through unchanged.
type RefResolver interface {
	Resolve(ctx context.Context, audioRef string) (string, error)
}

// ChainTranscriber tries an ordered list of strategies until one yields text.
// The deterministic placeholder sits last and always succeeds, so the
// transcription stage is total unless degrade is disabled, in which case a
// strategy error propagates and fails the stage.
type ChainTranscriber struct {
	resolver   RefResolver
	strategies []Strategy
	degrade    bool
	log        zerolog.Logger
}

func NewChainTranscriber(resolver RefResolver, degrade bool, log zerolog.Logger, strategies ...Strategy) *ChainTranscriber {
	return &ChainTranscriber{
		resolver:   resolver,
		strategies: strategies,
		degrade:    degrade,
		log:        log,
	}
}

// NewTranscriber wires the default chain from config: remote worker, local
// model, then the placeholder.
func NewTranscriber(cfg *config.Config, store storage.Storage, log zerolog.Logger) *ChainTranscriber {
	return NewChainTranscriber(
		NewSignedRefResolver(store, cfg.Transcription.SignedURLTTL),
		cfg.Transcription.DegradeToPlaceholder,
		log,
		NewWorkerClient(cfg.Transcription),
		NewLocalModelStrategy(cfg.Transcription),
		PlaceholderStrategy{},
	)
}

func (t *ChainTranscriber) Transcribe(ctx context.Context, audioRef string) (string, error) {
	audioURL, err := t.resolver.Resolve(ctx, audioRef)
	if err != nil {
		return "", fmt.Errorf("failed to resolve audio reference: %w", err)
	}

	for _, strategy := range t.strategies {
		if !strategy.Enabled() {
			continue
		}

		text, err := strategy.Transcribe(ctx, audioURL)
		if err != nil {
			if !t.degrade {
				return "", fmt.Errorf("%s transcription failed: %w", strategy.Name(), err)
			}
			t.log.Warn().Err(err).Str("strategy", strategy.Name()).Msg("Transcription strategy failed, trying next")
			continue
		}
		if text == "" {
			t.log.Warn().Str("strategy", strategy.Name()).Msg("Transcription strategy returned empty text, trying next")
			continue
		}

		t.log.Debug().Str("strategy", strategy.Name()).Msg("Transcription succeeded")
		return text, nil
	}

	return "", fmt.Errorf("no transcription strategy produced text")
}

// SignedRefResolver turns s3://bucket/object references into short-lived
// presigned URLs. Anything else passes through untouched.
type SignedRefResolver struct {
	store storage.Storage
	ttl   time.Duration
}

func NewSignedRefResolver(store storage.Storage, ttl time.Duration) *SignedRefResolver {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SignedRefResolver{store: store, ttl: ttl}
}

func (r *SignedRefResolver) Resolve(_ context.Context, audioRef string) (string, error) {
	bucket, key, ok := storage.ParseRef(audioRef)
	if !ok {
		return audioRef, nil
	}
	return r.store.SignedURL(bucket, key, r.ttl)
}

// PlaceholderStrategy is the always-succeeds tail of the chain. It returns a
// fixed deterministic transcript so the pipeline stays total when no real
// provider is configured.
type PlaceholderStrategy struct{}

func (PlaceholderStrategy) Name() string  { return "placeholder" }
func (PlaceholderStrategy) Enabled() bool { return true }

func (PlaceholderStrategy) Transcribe(_ context.Context, _ string) (string, error) {
	return placeholderTranscript, nil
}

const placeholderTranscript = `
Let's start with the C major scale today. Remember to keep your wrists relaxed and your fingers curved.
Good! Try to make each note even. The third finger is a little weak, so really press down with it.

Now let's work on the Bach Minuet. Start from measure 12. The left hand is rushing here -
count "1 and 2 and 3 and" while you play. Good, that's better!

For the Sonatina, I want you to focus on the dynamics. There's a crescendo starting in measure 8
leading up to the forte in measure 12. Make sure you really bring out that contrast.

Your C major scale has improved a lot! The evenness is much better than last week.
Keep practicing with the metronome at 60 BPM this week, then we can speed it up.

For homework this week:
- Practice C major scale hands separate, then hands together, at 60 BPM
- Bach Minuet measures 12-16, left hand only first, then hands together slowly
- Sonatina - work on the crescendo in measures 8-12, really exaggerate the dynamic change
- Try to memorize the first line of the Bach by next week

Great lesson today! You're making excellent progress.
`
