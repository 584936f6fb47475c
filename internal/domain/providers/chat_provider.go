package providers

import (
	"context"
	"errors"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// ErrProviderUnauthorized marks authentication failures from a chat provider.
// The orchestrator treats it like any other failure and moves on.
var ErrProviderUnauthorized = errors.New("chat provider rejected credentials")

// ChatProvider is a single text-generation backend. Implementations make at
// most one network call per Generate; retrying across providers is the
// orchestrator's job.
type ChatProvider interface {
	// Name identifies the provider in results and logs.
	Name() string

	// Generate produces a completion for the request, or an error when the
	// provider call fails for any reason (auth, timeout, quota, malformed
	// response).
	Generate(ctx context.Context, req entities.GenerationRequest) (string, error)
}
