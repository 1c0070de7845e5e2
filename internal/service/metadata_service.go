package service

import (
	"bytes"
	"fmt"
	"strings"

	"claimcheck/internal/models"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"go.uber.org/zap"
)

// MetadataService decodes capture metadata embedded in uploaded images.
type MetadataService struct {
	logger *zap.Logger
}

func NewMetadataService(logger *zap.Logger) *MetadataService {
	return &MetadataService{logger: logger}
}

// Read decodes the EXIF block of the image held in data. The capture time is
// taken from DateTimeOriginal (falling back to DateTime); it is left nil when
// the image carries neither tag.
func (s *MetadataService) Read(data []byte) (*models.ImageMetadata, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image metadata: %w", err)
	}

	collector := &tagCollector{tags: make(map[string]string)}
	if err := x.Walk(collector); err != nil {
		return nil, fmt.Errorf("failed to read image tags: %w", err)
	}

	meta := &models.ImageMetadata{Tags: collector.tags}
	if captured, err := x.DateTime(); err == nil {
		meta.CaptureTime = &captured
	} else {
		s.logger.Warn("Image has no capture-date tag", zap.Error(err))
	}

	s.logger.Info("Image metadata decoded",
		zap.Int("tag_count", len(meta.Tags)),
		zap.Bool("has_capture_time", meta.CaptureTime != nil),
	)

	return meta, nil
}

type tagCollector struct {
	tags map[string]string
}

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.tags[string(name)] = strings.Trim(tag.String(), `"`)
	return nil
}
