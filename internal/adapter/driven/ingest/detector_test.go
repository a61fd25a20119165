package ingest

import (
	"strings"
	"testing"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
)

const legacy15Header = "usage_at,product,sku,quantity,unit_type,applied_cost_per_quantity,gross_amount,discount_amount,net_amount,username,organization,repository_name,workflow_name,workflow_path,cost_center_name"
const legacy14Header = "date,product,sku,quantity,unit_type,applied_cost_per_quantity,gross_amount,discount_amount,net_amount,username,organization,repository,workflow_path,cost_center_name"
const summarized12Header = "date,product,sku,quantity,unit_type,applied_cost_per_quantity,gross_amount,discount_amount,net_amount,organization,repository,cost_center_name"

func TestDetectSchema(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   entity.Schema
	}{
		{"legacy 15 column header", legacy15Header, entity.SchemaLegacy15},
		{"legacy 14 column header", legacy14Header, entity.SchemaLegacy14},
		{"summarized 12 column header", summarized12Header, entity.SchemaSummarized12},
		{"workflow_name alone forces legacy-15", "a,b,workflow_name", entity.SchemaLegacy15},
		{"usage_at alone forces legacy-15", "usage_at,product", entity.SchemaLegacy15},
		{"username alone forces legacy-14", "username,product", entity.SchemaLegacy14},
		{"workflow_path alone forces legacy-14", "date,workflow_path", entity.SchemaLegacy14},
		{"quoted upper-case headers", `"USAGE_AT","PRODUCT"`, entity.SchemaLegacy15},
		{"unrecognized header falls through to summarized", "foo,bar,baz", entity.SchemaSummarized12},
		{"empty header falls through to summarized", "", entity.SchemaSummarized12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSchema(tt.header); got != tt.want {
				t.Errorf("DetectSchema(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

// Re-serializing the field set of a recognized header must classify
// identically: detection only depends on the header set, not on field order
// or quoting.
func TestDetectSchemaRoundTrip(t *testing.T) {
	for _, header := range []string{legacy15Header, legacy14Header, summarized12Header} {
		first := DetectSchema(header)

		fields := splitFields(header)
		for i, f := range fields {
			fields[i] = `"` + strings.ToUpper(f) + `"`
		}
		second := DetectSchema(strings.Join(fields, ","))

		if first != second {
			t.Errorf("round-trip classification changed: %q then %q", first, second)
		}
	}
}

func TestSplitFields(t *testing.T) {
	got := splitFields(`"a",b, "c" ,""`)
	want := []string{"a", "b", "c", ""}
	if len(got) != len(want) {
		t.Fatalf("splitFields returned %d fields, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, got[i], want[i])
		}
	}
}
