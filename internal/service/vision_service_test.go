package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"claimcheck/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVisionGenerator struct {
	reply string
	err   error

	gotMime   string
	gotPrompt string
}

func (s *stubVisionGenerator) GenerateVision(_ context.Context, mimeType string, _ []byte, prompt string) (string, error) {
	s.gotMime = mimeType
	s.gotPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func matchReply(percentage string) string {
	return fmt.Sprintf("```json\n{\"Object Name\": \"Alternator\", \"Analyzed Image\": \"A car alternator on a workbench\", \"Matching percentage\": %s}\n```", percentage)
}

func TestVisionServiceScore(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff}

	t.Run("above threshold is authorized", func(t *testing.T) {
		gen := &stubVisionGenerator{reply: matchReply(`"85%"`)}
		svc := NewVisionService(gen, zap.NewNop())

		result, err := svc.Score(context.Background(), image, "image/jpeg", "Alternator")
		require.NoError(t, err)

		assert.Equal(t, 85, result.MatchingPercentage)
		assert.Equal(t, models.DecisionAuthorized, result.Decision.Status)
		assert.Empty(t, result.Decision.Reason)
		assert.Equal(t, "Alternator", result.ObjectName)
		assert.Equal(t, "image/jpeg", gen.gotMime)
		assert.Contains(t, gen.gotPrompt, `"Alternator"`)
	})

	t.Run("threshold boundary is authorized", func(t *testing.T) {
		gen := &stubVisionGenerator{reply: matchReply(`"80%"`)}
		svc := NewVisionService(gen, zap.NewNop())

		result, err := svc.Score(context.Background(), image, "image/jpeg", "Alternator")
		require.NoError(t, err)
		assert.Equal(t, models.DecisionAuthorized, result.Decision.Status)
	})

	t.Run("below threshold is rejected with reason", func(t *testing.T) {
		gen := &stubVisionGenerator{reply: matchReply(`"79%"`)}
		svc := NewVisionService(gen, zap.NewNop())

		result, err := svc.Score(context.Background(), image, "image/jpeg", "Alternator")
		require.NoError(t, err)
		assert.Equal(t, 79, result.MatchingPercentage)
		assert.Equal(t, models.DecisionRejected, result.Decision.Status)
		assert.Equal(t, rejectionReason, result.Decision.Reason)
	})

	t.Run("numeric percentage without percent sign", func(t *testing.T) {
		gen := &stubVisionGenerator{reply: matchReply("92")}
		svc := NewVisionService(gen, zap.NewNop())

		result, err := svc.Score(context.Background(), image, "image/png", "Alternator")
		require.NoError(t, err)
		assert.Equal(t, 92, result.MatchingPercentage)
	})

	t.Run("model failure surfaces as scoring service error", func(t *testing.T) {
		gen := &stubVisionGenerator{err: errors.New("upstream unavailable")}
		svc := NewVisionService(gen, zap.NewNop())

		result, err := svc.Score(context.Background(), image, "image/jpeg", "Alternator")
		require.ErrorIs(t, err, ErrScoringService)
		assert.Nil(t, result)
	})

	t.Run("reply without JSON is malformed", func(t *testing.T) {
		gen := &stubVisionGenerator{reply: "```json\n{\"Object Name\": \"Alternator\""}
		svc := NewVisionService(gen, zap.NewNop())

		result, err := svc.Score(context.Background(), image, "image/jpeg", "Alternator")
		require.ErrorIs(t, err, ErrMalformedResponse)
		assert.Nil(t, result)
	})

	t.Run("missing percentage field is malformed", func(t *testing.T) {
		gen := &stubVisionGenerator{reply: "```json\n{\"Object Name\": \"Alternator\"}\n```"}
		svc := NewVisionService(gen, zap.NewNop())

		result, err := svc.Score(context.Background(), image, "image/jpeg", "Alternator")
		require.ErrorIs(t, err, ErrMalformedResponse)
		assert.Nil(t, result)
	})

	t.Run("non integer percentage is malformed", func(t *testing.T) {
		gen := &stubVisionGenerator{reply: matchReply(`"almost certainly"`)}
		svc := NewVisionService(gen, zap.NewNop())

		result, err := svc.Score(context.Background(), image, "image/jpeg", "Alternator")
		require.ErrorIs(t, err, ErrMalformedResponse)
		assert.Nil(t, result)
	})
}
