package service

import (
	"fmt"
	"strings"
	"time"

	"claimcheck/internal/models"

	"go.uber.org/zap"
)

// Recency-verdict messages surfaced to the client.
const (
	MessageValidDate = "Valid Date"
	MessageStaleDate = "photo predates the one-month recency window relative to the claim date"
)

// claimDateLayouts are the formats a claim date may arrive in: the
// colon-delimited EXIF-style form, ISO, and the free-text forms the
// extraction model tends to produce.
var claimDateLayouts = []string{
	"2006:01:02 15:04:05",
	"2006:01:02",
	"2006-01-02",
	"January 2, 2006",
	"2 January 2006",
	"01/02/2006",
}

// ConsistencyService judges photo recency against the claim date.
type ConsistencyService struct {
	logger *zap.Logger
}

func NewConsistencyService(logger *zap.Logger) *ConsistencyService {
	return &ConsistencyService{logger: logger}
}

// Check compares the photo capture date with the claim date. The verdict is
// valid iff captureDate >= claimDate - 1 month; the bound is inclusive and the
// window is anchored at the claim date, not the current date. Comparison is at
// calendar-day granularity in UTC.
func (s *ConsistencyService) Check(captureDate time.Time, claimDateRaw string) (*models.DateVerdict, error) {
	claimDate, err := ParseClaimDate(claimDateRaw)
	if err != nil {
		return nil, err
	}

	capture := toDate(captureDate)
	windowStart := minusOneMonth(claimDate)

	verdict := &models.DateVerdict{
		Valid:       !capture.Before(windowStart),
		CaptureDate: capture,
		ClaimDate:   claimDate,
		WindowStart: windowStart,
	}
	if verdict.Valid {
		verdict.Message = MessageValidDate
	} else {
		verdict.Message = MessageStaleDate
	}

	s.logger.Info("Consistency check completed",
		zap.Time("capture_date", capture),
		zap.Time("claim_date", claimDate),
		zap.Time("window_start", windowStart),
		zap.Bool("valid", verdict.Valid),
	)

	return verdict, nil
}

// ParseClaimDate normalizes a textual claim date, trying the known layouts in
// order.
func ParseClaimDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty claim date", ErrInvalidDate)
	}

	for _, layout := range claimDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return toDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable claim date %q", ErrInvalidDate, raw)
}

// minusOneMonth moves a date one calendar month back, clamping the day to the
// last valid day of the target month (March 31 -> February 28/29). AddDate is
// deliberately not used: it normalizes the overflow forward into the wrong
// month.
func minusOneMonth(t time.Time) time.Time {
	year, month, day := t.Date()

	firstOfTarget := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

func toDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
