package models

import "time"

// ImageMetadata holds the tags decoded from an uploaded image. CaptureTime is
// nil when the image carries no capture-date tag.
type ImageMetadata struct {
	Tags        map[string]string `json:"tags"`
	CaptureTime *time.Time        `json:"capture_time,omitempty"`
}

// DateVerdict is the outcome of checking a photo capture date against the
// one-month recency window anchored at the claim date.
type DateVerdict struct {
	Valid       bool
	CaptureDate time.Time
	ClaimDate   time.Time
	WindowStart time.Time
	Message     string
}
