package ingest

import (
	"strings"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
)

// splitFields splits a raw CSV line on bare commas and strips a single layer
// of surrounding double quotes from each field. Embedded delimiters inside
// quoted fields are not handled; the billing export never emits them.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) {
			f = f[1 : len(f)-1]
		}
		fields[i] = f
	}
	return fields
}

// DetectSchema classifies a raw header line into one of the known schema
// variants. Headers that match none of the known signatures fall through to
// the summarized layout; the export has no other shape in the wild.
func DetectSchema(headerLine string) entity.Schema {
	headers := map[string]bool{}
	for _, f := range splitFields(headerLine) {
		headers[strings.ToLower(strings.TrimSpace(f))] = true
	}

	switch {
	case headers["usage_at"] || headers["workflow_name"]:
		return entity.SchemaLegacy15
	case headers["username"] || headers["workflow_path"]:
		return entity.SchemaLegacy14
	default:
		return entity.SchemaSummarized12
	}
}
