package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"claimcheck/internal/models"
	"claimcheck/pkg/jsonx"

	"go.uber.org/zap"
)

// TextGenerator is the text-understanding dependency of the field extractor.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// roleSpec describes how one submitter role is recognized and which fields its
// extraction prompt asks for. The three roles share one prompt template; only
// the name description and the secondary field differ.
type roleSpec struct {
	role       models.Role
	sentinel   string
	nameDesc   string
	extraField string
	extraDesc  string
}

// Order matters: the first matching sentinel wins.
var roleSpecs = []roleSpec{
	{
		role:       models.RoleClaimant,
		sentinel:   "Claimant Information:",
		nameDesc:   "The full name of the customer",
		extraField: "Vehicle Info",
		extraDesc:  "Details about the vehicle involved",
	},
	{
		role:       models.RoleDealer,
		sentinel:   "Dealer Information:",
		nameDesc:   "The full name of the dealer",
		extraField: "Location",
		extraDesc:  "The address of the dealership",
	},
	{
		role:       models.RoleServiceCenter,
		sentinel:   "Service Center Information:",
		nameDesc:   "The name of the service center",
		extraField: "Location",
		extraDesc:  "The location of the service center",
	},
}

// FieldService extracts structured claim fields from document text via a
// text-understanding model.
type FieldService struct {
	gen    TextGenerator
	logger *zap.Logger
}

func NewFieldService(gen TextGenerator, logger *zap.Logger) *FieldService {
	return &FieldService{gen: gen, logger: logger}
}

// Extract classifies the document by its sentinel label, asks the model for
// the role's field set, and parses the reply into a ClaimRecord. It never
// substitutes a default record: every failure is returned to the caller.
func (s *FieldService) Extract(ctx context.Context, text string) (*models.ClaimRecord, error) {
	spec, err := detectRole(text)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Document classified", zap.String("role", string(spec.role)))

	reply, err := s.gen.GenerateText(ctx, buildFieldPrompt(spec, text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionService, err)
	}

	candidate, err := jsonx.ExtractCandidate(reply)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var record models.ClaimRecord
	if err := json.Unmarshal([]byte(candidate), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	record.Role = spec.role

	s.logger.Info("Claim fields extracted",
		zap.String("role", string(spec.role)),
		zap.String("claim_status", string(record.ClaimStatus)),
		zap.String("items_covered", record.ItemsCovered),
	)

	return &record, nil
}

func detectRole(text string) (*roleSpec, error) {
	for i := range roleSpecs {
		if strings.Contains(text, roleSpecs[i].sentinel) {
			return &roleSpecs[i], nil
		}
	}
	return nil, ErrUnrecognizedDocument
}

func buildFieldPrompt(spec *roleSpec, text string) string {
	return fmt.Sprintf(`Analyze the following text and extract the following information in JSON format:
- Name: %s
- %s: %s
- Claim Status: The current status of the claim, which should be one of "Approved", "Rejected", or "Pending"
- Claim Date: The date the claim was received
- Reason: If the claim is rejected, provide the reason; if approved, provide the reason for approval
- Items Covered: The item covered in the claim (Component)

Return ONLY a single JSON object with exactly those keys, without any commentary before or after it.

Here's the text to analyze:
%s`, spec.nameDesc, spec.extraField, spec.extraDesc, text)
}
