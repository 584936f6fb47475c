package services

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/providers"
	apperrors "github.com/mysahara/health-assistant/backend/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const documentCacheTTL = 24 * time.Hour

// DocumentService turns uploaded document images into raw OCR text and
// best-effort structured records.
type DocumentService struct {
	ocr   providers.OCRProvider
	cache providers.CacheProvider
}

// NewDocumentService creates a new document service. A nil OCR provider
// means extraction is unavailable (missing credentials); a nil cache
// disables parse caching.
func NewDocumentService(ocr providers.OCRProvider, cache providers.CacheProvider) *DocumentService {
	return &DocumentService{ocr: ocr, cache: cache}
}

// DecodeImagePayload validates and decodes a base64 image payload,
// stripping any data-URL prefix. Undecodable input is a validation failure
// surfaced before any provider call.
func DecodeImagePayload(payload string) ([]byte, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, apperrors.NewValidationError("image payload is empty")
	}

	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid base64 image format")
	}
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("decoded image is empty")
	}

	return data, nil
}

// ExtractText runs plain OCR over decoded image bytes.
func (s *DocumentService) ExtractText(ctx context.Context, image []byte, locale string) *entities.OCRResult {
	recordOCRRequest(ctx, "text")

	if s.ocr == nil {
		return &entities.OCRResult{
			Succeeded: false,
			Locale:    locale,
			Error:     "OCR service is not configured",
		}
	}

	result, err := s.ocr.ExtractText(ctx, image, locale)
	if err != nil {
		log.Error().Err(err).Msg("OCR extraction failed")
		return &entities.OCRResult{
			Succeeded: false,
			Locale:    locale,
			Error:     err.Error(),
		}
	}

	return result
}

// ExtractDocument runs OCR and dispatches the raw text to the extractor for
// the declared document type. Raw text and confidence pass through
// unchanged. Parses are cached by image digest so re-uploads skip the
// provider call.
func (s *DocumentService) ExtractDocument(ctx context.Context, image []byte, documentType entities.DocumentType, locale string) *entities.ParsedDocument {
	recordOCRRequest(ctx, string(documentType))

	if cached := s.cachedParse(ctx, image, documentType); cached != nil {
		return cached
	}

	ocrResult := s.ExtractText(ctx, image, locale)
	if !ocrResult.Succeeded {
		return &entities.ParsedDocument{
			Succeeded:    false,
			DocumentType: documentType,
			Error:        ocrResult.Error,
		}
	}

	parsed := &entities.ParsedDocument{
		Succeeded:     true,
		DocumentType:  documentType,
		ExtractedData: ParseDocument(ocrResult.Text, documentType),
		RawText:       ocrResult.Text,
		Confidence:    ocrResult.Confidence,
	}

	s.storeParse(ctx, image, documentType, parsed)
	return parsed
}

func (s *DocumentService) cachedParse(ctx context.Context, image []byte, documentType entities.DocumentType) *entities.ParsedDocument {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, parseCacheKey(image, documentType))
	if err != nil {
		return nil
	}

	var parsed entities.ParsedDocument
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil
	}
	return &parsed
}

func (s *DocumentService) storeParse(ctx context.Context, image []byte, documentType entities.DocumentType, parsed *entities.ParsedDocument) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(parsed)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, parseCacheKey(image, documentType), data, documentCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache document parse")
	}
}

func parseCacheKey(image []byte, documentType entities.DocumentType) string {
	digest := sha256.Sum256(image)
	return "ocr:parse:" + string(documentType) + ":" + hex.EncodeToString(digest[:])
}

var (
	ocrCounterOnce sync.Once
	ocrCounter     metric.Int64Counter
)

func recordOCRRequest(ctx context.Context, kind string) {
	ocrCounterOnce.Do(func() {
		meter := otel.Meter("github.com/mysahara/health-assistant/backend")
		counter, err := meter.Int64Counter(
			"ocr.request.count",
			metric.WithDescription("Number of OCR extraction requests"),
		)
		if err == nil {
			ocrCounter = counter
		}
	})
	if ocrCounter == nil {
		return
	}
	ocrCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("ocr.kind", kind)))
}
