package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"claimcheck/internal/models"
	"claimcheck/pkg/jsonx"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// matchThreshold is the fixed authorization policy: a match percentage at or
// above it authorizes the claim. It is not user-configurable.
const matchThreshold = 80

const rejectionReason = "matching percentage below acceptable threshold"

// VisionGenerator is the vision-understanding dependency of the scorer.
type VisionGenerator interface {
	GenerateVision(ctx context.Context, mimeType string, image []byte, prompt string) (string, error)
}

// VisionService scores how well a photographed object matches the claimed
// item label.
type VisionService struct {
	gen    VisionGenerator
	logger *zap.Logger
}

func NewVisionService(gen VisionGenerator, logger *zap.Logger) *VisionService {
	return &VisionService{gen: gen, logger: logger}
}

// Score submits the image and the covered-item label to the vision model and
// parses its reply into a MatchResult. There is no fallback score: any parse
// failure is returned as ErrMalformedResponse.
func (s *VisionService) Score(ctx context.Context, image []byte, mimeType, itemLabel string) (*models.MatchResult, error) {
	reply, err := s.gen.GenerateVision(ctx, mimeType, image, buildMatchPrompt(itemLabel))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringService, err)
	}

	result, err := parseMatchReply(reply)
	if err != nil {
		return nil, err
	}

	if result.MatchingPercentage >= matchThreshold {
		result.Decision = models.ClaimDecision{Status: models.DecisionAuthorized}
	} else {
		result.Decision = models.ClaimDecision{
			Status: models.DecisionRejected,
			Reason: rejectionReason,
		}
	}

	s.logger.Info("Image match scored",
		zap.String("item_label", itemLabel),
		zap.String("object_name", result.ObjectName),
		zap.Int("matching_percentage", result.MatchingPercentage),
		zap.String("decision", result.Decision.Status),
	)

	return result, nil
}

func buildMatchPrompt(itemLabel string) string {
	return fmt.Sprintf(`Analyze the image and identify the object it contains. Then compute a percentage match between the identified object and the claimed item %q.

Return your answer as a JSON object inside a fenced code block, with exactly these keys:
- "Object Name": the name of the identified object
- "Analyzed Image": a one-sentence description of the image
- "Matching percentage": the match between the identified object and the claimed item, as an integer from 0 to 100

No text outside the fenced block.`, itemLabel)
}

func parseMatchReply(reply string) (*models.MatchResult, error) {
	candidate, err := jsonx.ExtractCandidate(reply)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !gjson.Valid(candidate) {
		return nil, fmt.Errorf("%w: reply is not valid JSON", ErrMalformedResponse)
	}

	percentField := gjson.Get(candidate, "Matching percentage")
	if !percentField.Exists() {
		return nil, fmt.Errorf("%w: missing matching percentage", ErrMalformedResponse)
	}

	percentage, err := parsePercentage(percentField.String())
	if err != nil {
		return nil, err
	}

	return &models.MatchResult{
		ObjectName:         gjson.Get(candidate, "Object Name").String(),
		AnalyzedImage:      gjson.Get(candidate, "Analyzed Image").String(),
		MatchingPercentage: percentage,
	}, nil
}

// parsePercentage accepts "85" or "85%" and rejects everything else.
func parsePercentage(raw string) (int, error) {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	percentage, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: unparseable matching percentage %q", ErrMalformedResponse, raw)
	}
	return percentage, nil
}
