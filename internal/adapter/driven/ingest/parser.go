package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
)

// Accepted timestamp layouts for the date column, tried in order. The
// summarized export writes bare dates; legacy exports write full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseDate parses the date column against the accepted layouts.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// parseFloat coerces a numeric column. Non-numeric input degrades to zero;
// maximal data recovery is preferred over per-field strictness.
func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseLine maps one raw CSV row, already split into quote-stripped fields,
// onto a normalized usage line according to the schema's positional layout.
// A row with fewer columns than the schema requires is rejected; an
// unparseable date rejects the row as well.
func ParseLine(schema entity.Schema, fields []string) (entity.UsageLine, error) {
	if len(fields) < schema.MinColumns() {
		return entity.UsageLine{}, fmt.Errorf("expected at least %d columns, got %d", schema.MinColumns(), len(fields))
	}

	date, err := parseDate(fields[0])
	if err != nil {
		return entity.UsageLine{}, err
	}

	line := entity.UsageLine{
		Date:           date,
		Product:        fields[1],
		SKU:            fields[2],
		Quantity:       parseFloat(fields[3]),
		UnitType:       fields[4],
		PricePerUnit:   parseFloat(fields[5]),
		GrossAmount:    parseFloat(fields[6]),
		DiscountAmount: parseFloat(fields[7]),
		NetAmount:      parseFloat(fields[8]),
	}

	switch schema {
	case entity.SchemaLegacy15:
		line.Username = fields[9]
		line.Organization = fields[10]
		line.RepositoryName = fields[11]
		line.WorkflowName = fields[12]
		line.WorkflowPath = fields[13]
		line.CostCenterName = fields[14]
	case entity.SchemaLegacy14:
		line.Username = fields[9]
		line.Organization = fields[10]
		line.RepositoryName = fields[11]
		line.WorkflowPath = fields[12]
		line.CostCenterName = fields[13]
	default: // summarized-12 has no per-user or per-workflow breakdown
		line.Organization = fields[9]
		line.RepositoryName = fields[10]
		line.CostCenterName = fields[11]
	}

	return line, nil
}
