package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOCRProvider struct {
	result *entities.OCRResult
	err    error
	calls  int
}

func (p *stubOCRProvider) ExtractText(_ context.Context, _ []byte, _ string) (*entities.OCRResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

type memoryCache struct {
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := c.store[key]
	if !ok {
		return nil, errors.New("key not found: " + key)
	}
	return data, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.store[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func TestDecodeImagePayload(t *testing.T) {
	decoded, err := DecodeImagePayload(base64.StdEncoding.EncodeToString([]byte("image bytes")))
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), decoded)
}

func TestDecodeImagePayload_DataURLPrefix(t *testing.T) {
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))
	decoded, err := DecodeImagePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), decoded)
}

func TestDecodeImagePayload_Invalid(t *testing.T) {
	_, err := DecodeImagePayload("")
	assert.Error(t, err)

	_, err = DecodeImagePayload("not!!valid!!base64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid base64 image format")
}

func TestExtractText_NotConfigured(t *testing.T) {
	service := NewDocumentService(nil, nil)

	result := service.ExtractText(context.Background(), []byte("img"), "en")

	assert.False(t, result.Succeeded)
	assert.Equal(t, "OCR service is not configured", result.Error)
}

func TestExtractText_ProviderError(t *testing.T) {
	service := NewDocumentService(&stubOCRProvider{err: errors.New("vision API quota exceeded")}, nil)

	result := service.ExtractText(context.Background(), []byte("img"), "en")

	assert.False(t, result.Succeeded)
	assert.Equal(t, "vision API quota exceeded", result.Error)
}

func TestExtractDocument_ParsesPrescription(t *testing.T) {
	ocr := &stubOCRProvider{result: &entities.OCRResult{
		Succeeded:  true,
		Text:       "Dr. Rahman\nTab Napa 500mg twice daily",
		Confidence: 0.91,
	}}
	service := NewDocumentService(ocr, nil)

	parsed := service.ExtractDocument(context.Background(), []byte("img"), entities.DocumentPrescription, "en")

	assert.True(t, parsed.Succeeded)
	assert.Equal(t, entities.DocumentPrescription, parsed.DocumentType)
	assert.Equal(t, 0.91, parsed.Confidence)
	assert.Equal(t, "Dr. Rahman\nTab Napa 500mg twice daily", parsed.RawText)

	record, ok := parsed.ExtractedData.(entities.PrescriptionRecord)
	require.True(t, ok)
	assert.Equal(t, "Dr. Rahman", record.DoctorName)
	require.Len(t, record.Medications, 1)
}

func TestExtractDocument_OCRFailurePropagates(t *testing.T) {
	ocr := &stubOCRProvider{result: &entities.OCRResult{
		Succeeded: false,
		Error:     "No text detected in image",
	}}
	service := NewDocumentService(ocr, nil)

	parsed := service.ExtractDocument(context.Background(), []byte("img"), entities.DocumentLabReport, "en")

	assert.False(t, parsed.Succeeded)
	assert.Equal(t, "No text detected in image", parsed.Error)
}

func TestExtractDocument_CachesByImageDigest(t *testing.T) {
	ocr := &stubOCRProvider{result: &entities.OCRResult{
		Succeeded:  true,
		Text:       "Hemoglobin: 13.5",
		Confidence: 0.8,
	}}
	service := NewDocumentService(ocr, newMemoryCache())

	first := service.ExtractDocument(context.Background(), []byte("same image"), entities.DocumentLabReport, "en")
	second := service.ExtractDocument(context.Background(), []byte("same image"), entities.DocumentLabReport, "en")

	assert.Equal(t, 1, ocr.calls)
	assert.True(t, second.Succeeded)
	assert.Equal(t, first.RawText, second.RawText)

	// A different document type misses the cache even for the same image.
	service.ExtractDocument(context.Background(), []byte("same image"), entities.DocumentPrescription, "en")
	assert.Equal(t, 2, ocr.calls)
}
