package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/pkg/config"
)

const defaultBaseURL = "https://vision.googleapis.com/v1"

// Client implements the OCR provider against the Cloud Vision images:annotate
// endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Vision client.
func NewClient(cfg *config.VisionConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("vision api key is required")
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type annotateRequest struct {
	Requests []struct {
		Image struct {
			Content string `json:"content"`
		} `json:"image"`
		Features []struct {
			Type string `json:"type"`
		} `json:"features"`
		ImageContext struct {
			LanguageHints []string `json:"languageHints,omitempty"`
		} `json:"imageContext"`
	} `json:"requests"`
}

type annotateResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string  `json:"description"`
			Confidence  float64 `json:"confidence,omitempty"`
		} `json:"textAnnotations"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	} `json:"responses"`
}

// ExtractText runs TEXT_DETECTION over the image bytes. The locale hint maps
// to Vision language hints; "bn" adds the Bangla hints the detection engine
// understands.
func (c *Client) ExtractText(ctx context.Context, image []byte, locale string) (*entities.OCRResult, error) {
	if len(image) == 0 {
		return nil, errors.New("image is empty")
	}

	hints := []string{"en"}
	if locale == "bn" {
		hints = []string{"bn", "bn-BD"}
	}

	var payload annotateRequest
	payload.Requests = make([]struct {
		Image struct {
			Content string `json:"content"`
		} `json:"image"`
		Features []struct {
			Type string `json:"type"`
		} `json:"features"`
		ImageContext struct {
			LanguageHints []string `json:"languageHints,omitempty"`
		} `json:"imageContext"`
	}, 1)
	payload.Requests[0].Image.Content = base64.StdEncoding.EncodeToString(image)
	payload.Requests[0].Features = []struct {
		Type string `json:"type"`
	}{{Type: "TEXT_DETECTION"}}
	payload.Requests[0].ImageContext.LanguageHints = hints

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/images:annotate?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vision request failed with status %d", resp.StatusCode)
	}

	var parsed annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	if len(parsed.Responses) == 0 {
		return nil, errors.New("vision response is empty")
	}

	annotation := parsed.Responses[0]
	if annotation.Error != nil {
		return nil, fmt.Errorf("vision api error: %s", annotation.Error.Message)
	}

	if len(annotation.TextAnnotations) == 0 {
		return &entities.OCRResult{
			Succeeded: false,
			Locale:    locale,
			Error:     "No text detected in image",
		}, nil
	}

	// The first annotation carries the full detected text; the rest are
	// per-word annotations used for the confidence average.
	fullText := annotation.TextAnnotations[0].Description

	var total float64
	for _, t := range annotation.TextAnnotations {
		total += t.Confidence
	}
	avgConfidence := total / float64(len(annotation.TextAnnotations))

	return &entities.OCRResult{
		Succeeded:  true,
		Text:       fullText,
		Confidence: avgConfidence,
		Locale:     locale,
		WordCount:  len(strings.Fields(fullText)),
	}, nil
}
