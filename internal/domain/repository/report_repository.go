package repository

import (
	"context"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
)

// ReportRepository defines the interface for turning a raw usage document into
// a normalized report.
type ReportRepository interface {
	// BuildReport parses a full raw CSV document. Row-level problems are
	// recorded on the report; document-level problems (empty input, zero
	// surviving rows) are returned as errors.
	BuildReport(ctx context.Context, raw string) (*entity.Report, error)

	// DetectSchema classifies a raw header line into one of the known schema
	// variants.
	DetectSchema(headerLine string) entity.Schema
}
