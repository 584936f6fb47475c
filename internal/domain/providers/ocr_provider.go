package providers

import (
	"context"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// OCRProvider extracts text from image bytes.
type OCRProvider interface {
	// ExtractText runs text detection over the image. Locale is a hint for
	// the detection engine, not a guarantee about the returned text.
	ExtractText(ctx context.Context, image []byte, locale string) (*entities.OCRResult, error)
}
