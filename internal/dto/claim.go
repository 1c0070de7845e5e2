package dto

import "claimcheck/internal/models"

type ExtractPDFResponse struct {
	ClaimInfo models.ClaimRecord `json:"claimInfo"`
}

type VerifyMetadataResponse struct {
	Message string            `json:"message"`
	Tags    map[string]string `json:"tags"`
}

// AnalyzeImageResponse keeps the spaced key names the original API exposed.
type AnalyzeImageResponse struct {
	ObjectName         string               `json:"Object Name"`
	AnalyzedImage      string               `json:"Analyzed Image"`
	MatchingPercentage int                  `json:"Matching percentage"`
	ClaimStatus        models.ClaimDecision `json:"Claim Status"`
}
