package ingest

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/repository"
	"github.com/actionlens/gh-usage-dashboard-go/internal/shared/types"
)

// Builder turns a raw usage document into a normalized report. It implements
// repository.ReportRepository.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a report builder. A nil logger falls back to a no-op one.
func NewBuilder(logger *zap.Logger) repository.ReportRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// DetectSchema classifies a raw header line.
func (b *Builder) DetectSchema(headerLine string) entity.Schema {
	return DetectSchema(headerLine)
}

// BuildReport parses a full raw CSV document. One malformed row never
// invalidates the file: rejected rows are recorded on the report and logged.
// Empty input and zero surviving rows are the only fatal outcomes.
func (b *Builder) BuildReport(ctx context.Context, raw string) (*entity.Report, error) {
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	if len(lines) < 2 {
		return nil, types.ErrEmptyDocument
	}

	schema := DetectSchema(lines[0])
	b.logger.Debug("detected usage report schema",
		zap.String("schema", string(schema)),
		zap.Int("lines", len(lines)-1))

	report := &entity.Report{
		Schema:     schema,
		FormatType: schema.FormatType(),
	}

	for i, rawLine := range lines[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(rawLine) == "" {
			continue
		}

		line, err := ParseLine(schema, splitFields(rawLine))
		if err != nil {
			// Line numbers are 1-based and count the header.
			issue := entity.RowIssue{Line: i + 2, Reason: err.Error()}
			report.RowIssues = append(report.RowIssues, issue)
			b.logger.Warn("skipping usage row",
				zap.Int("line", issue.Line),
				zap.String("reason", issue.Reason))
			continue
		}
		report.Lines = append(report.Lines, line)
	}

	if len(report.Lines) == 0 {
		return nil, types.ErrNoValidRows
	}

	// Stable sort keeps original row order for equal timestamps.
	sort.SliceStable(report.Lines, func(i, j int) bool {
		return report.Lines[i].Date.Before(report.Lines[j].Date)
	})

	report.StartDate = report.Lines[0].Date
	report.EndDate = report.Lines[len(report.Lines)-1].Date
	report.Days = report.EndDate.Sub(report.StartDate).Hours() / 24

	b.logger.Info("built usage report",
		zap.String("format", string(report.FormatType)),
		zap.Int("rows", len(report.Lines)),
		zap.Int("skipped", len(report.RowIssues)))

	return report, nil
}
