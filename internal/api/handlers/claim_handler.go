package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"time"

	"claimcheck/internal/dto"
	"claimcheck/internal/models"
	"claimcheck/internal/service"
	"claimcheck/internal/state"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline dependencies of the claim handler. Interfaces are declared here,
// at the point of consumption, so tests can substitute the model-backed
// services.

type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

type FieldExtractor interface {
	Extract(ctx context.Context, text string) (*models.ClaimRecord, error)
}

type MetadataReader interface {
	Read(data []byte) (*models.ImageMetadata, error)
}

type ConsistencyChecker interface {
	Check(captureDate time.Time, claimDateRaw string) (*models.DateVerdict, error)
}

type MatchScorer interface {
	Score(ctx context.Context, image []byte, mimeType, itemLabel string) (*models.MatchResult, error)
}

// ClaimHandler sequences the claim-verification pipeline per endpoint and
// owns the session holding the latest claim record and verification image.
type ClaimHandler struct {
	extractor TextExtractor
	fields    FieldExtractor
	metadata  MetadataReader
	checker   ConsistencyChecker
	scorer    MatchScorer
	session   *state.Session
	logger    *zap.Logger
}

func NewClaimHandler(
	extractor TextExtractor,
	fields FieldExtractor,
	metadata MetadataReader,
	checker ConsistencyChecker,
	scorer MatchScorer,
	session *state.Session,
	logger *zap.Logger,
) *ClaimHandler {
	return &ClaimHandler{
		extractor: extractor,
		fields:    fields,
		metadata:  metadata,
		checker:   checker,
		scorer:    scorer,
		session:   session,
		logger:    logger,
	}
}

// ExtractPDF godoc
// @Summary Submit a claim document
// @Description Extract text from an uploaded claim PDF and pull structured claim fields from it
// @Tags claims
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "Claim document (PDF)"
// @Success 200 {object} dto.ExtractPDFResponse
// @Failure 400 {object} map[string]string
// @Router /extract-pdf [post]
func (h *ClaimHandler) ExtractPDF(c *fiber.Ctx) error {
	requestLogger := h.requestLogger(c)

	file, err := c.FormFile("pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded.",
		})
	}

	data, err := readUpload(file)
	if err != nil {
		requestLogger.Error("Failed to read uploaded PDF", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file.",
		})
	}

	text, err := h.extractor.ExtractText(data)
	if err != nil {
		requestLogger.Error("PDF text extraction failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing PDF.",
		})
	}

	record, err := h.fields.Extract(c.Context(), text)
	if err != nil {
		if errors.Is(err, service.ErrUnrecognizedDocument) {
			requestLogger.Warn("Unrecognized document type")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unrecognized document type.",
			})
		}
		requestLogger.Error("Claim field extraction failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing PDF.",
		})
	}

	h.session.SetClaim(record)

	requestLogger.Info("Claim document processed",
		zap.String("role", string(record.Role)),
		zap.String("items_covered", record.ItemsCovered),
		zap.String("claim_date", record.ClaimDate),
	)

	return c.JSON(dto.ExtractPDFResponse{ClaimInfo: *record})
}

// VerifyMetadata godoc
// @Summary Submit a verification photo
// @Description Read the photo's capture metadata and check it against the one-month recency window of the stored claim date
// @Tags claims
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Verification photo"
// @Success 200 {object} dto.VerifyMetadataResponse
// @Failure 400 {object} map[string]string
// @Router /verify-metadata [post]
func (h *ClaimHandler) VerifyMetadata(c *fiber.Ctx) error {
	requestLogger := h.requestLogger(c)

	file, err := h.imageUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded.",
		})
	}

	data, err := readUpload(file)
	if err != nil {
		requestLogger.Error("Failed to read uploaded image", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file.",
		})
	}

	meta, err := h.metadata.Read(data)
	if err != nil {
		requestLogger.Error("Failed to decode image metadata", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing image.",
		})
	}

	// Cache the image so /analyze-image can score it without a re-upload
	h.session.SetImage(data, file.Header.Get("Content-Type"))

	claim, err := h.session.Claim()
	if err != nil {
		requestLogger.Warn("Consistency check without a stored claim")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No claim on record. Submit a claim document first.",
		})
	}

	if meta.CaptureTime == nil {
		requestLogger.Warn("Uploaded image carries no capture date")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date is not valid",
		})
	}

	verdict, err := h.checker.Check(*meta.CaptureTime, claim.ClaimDate)
	if err != nil {
		requestLogger.Warn("Date consistency check failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date is not valid",
		})
	}

	requestLogger.Info("Verification photo processed",
		zap.Bool("valid", verdict.Valid),
		zap.Time("capture_date", verdict.CaptureDate),
		zap.Time("claim_date", verdict.ClaimDate),
	)

	return c.JSON(dto.VerifyMetadataResponse{
		Message: verdict.Message,
		Tags:    meta.Tags,
	})
}

// AnalyzeImage godoc
// @Summary Score the verification photo against the claimed item
// @Description Ask the vision model to identify the photographed object and score its match against the stored covered item
// @Tags claims
// @Accept multipart/form-data
// @Produce json
// @Param image formData file false "Photo to analyze (falls back to the most recently uploaded verification photo)"
// @Success 200 {object} dto.AnalyzeImageResponse
// @Failure 400 {object} map[string]string
// @Router /analyze-image [post]
func (h *ClaimHandler) AnalyzeImage(c *fiber.Ctx) error {
	requestLogger := h.requestLogger(c)

	var (
		data     []byte
		mimeType string
	)

	if file, err := c.FormFile("image"); err == nil {
		data, err = readUpload(file)
		if err != nil {
			requestLogger.Error("Failed to read uploaded image", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read uploaded file.",
			})
		}
		mimeType = file.Header.Get("Content-Type")
		h.session.SetImage(data, mimeType)
	} else {
		data, mimeType, err = h.session.Image()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No file uploaded.",
			})
		}
	}

	claim, err := h.session.Claim()
	if err != nil {
		requestLogger.Warn("Image analysis without a stored claim")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No claim on record. Submit a claim document first.",
		})
	}

	result, err := h.scorer.Score(c.Context(), data, mimeType, claim.ItemsCovered)
	if err != nil {
		requestLogger.Error("Image match scoring failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing image.",
		})
	}

	requestLogger.Info("Image analyzed",
		zap.String("object_name", result.ObjectName),
		zap.Int("matching_percentage", result.MatchingPercentage),
		zap.String("decision", result.Decision.Status),
	)

	return c.JSON(dto.AnalyzeImageResponse{
		ObjectName:         result.ObjectName,
		AnalyzedImage:      result.AnalyzedImage,
		MatchingPercentage: result.MatchingPercentage,
		ClaimStatus:        result.Decision,
	})
}

// imageUpload accepts either the single "image" field or the first element of
// an "images" array.
func (h *ClaimHandler) imageUpload(c *fiber.Ctx) (*multipart.FileHeader, error) {
	if file, err := c.FormFile("image"); err == nil {
		return file, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, fiber.ErrBadRequest
	}
	return files[0], nil
}

func (h *ClaimHandler) requestLogger(c *fiber.Ctx) *zap.Logger {
	return h.logger.With(
		zap.String("request_id", uuid.New().String()),
		zap.String("path", c.Path()),
	)
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
