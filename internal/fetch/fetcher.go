// Package fetch defines the upstream content fetcher contract and its
// concrete RSS implementation. The core never assumes a fetch succeeds:
// every call site falls back to the deterministic fallback shuffle when a
// fetch errors, times out, or comes back empty.
package fetch

import (
	"context"

	"github.com/wfedor/telecast/internal/models"
)

// Fetcher retrieves candidate videos for the given content parameters.
// Implementations must be bounded (a few seconds) and treat timeouts the
// same as empty results. A nil or empty slice means "nothing fetched".
type Fetcher interface {
	Fetch(ctx context.Context, params models.SearchParams) ([]*models.Video, error)
}

// None is a Fetcher that never returns content. Used for channels without
// live-content configuration, and in tests.
type None struct{}

// Fetch always reports no content
func (None) Fetch(_ context.Context, _ models.SearchParams) ([]*models.Video, error) {
	return nil, nil
}
