package entity

import "time"

// Schema identifies one of the recognized CSV column layouts of a usage export.
type Schema string

const (
	SchemaLegacy15     Schema = "legacy-15"
	SchemaLegacy14     Schema = "legacy-14"
	SchemaSummarized12 Schema = "summarized-12"
)

// MinColumns returns the smallest column count a data row of this schema may have.
func (s Schema) MinColumns() int {
	switch s {
	case SchemaLegacy15:
		return 15
	case SchemaLegacy14:
		return 14
	default:
		return 12
	}
}

// FormatType is the two-valued public category a consumer presents, collapsing
// the three schema variants.
type FormatType string

const (
	FormatLegacy     FormatType = "legacy"
	FormatSummarized FormatType = "summarized"
)

// FormatType maps the detected schema to its public format class.
func (s Schema) FormatType() FormatType {
	if s == SchemaSummarized12 {
		return FormatSummarized
	}
	return FormatLegacy
}

// UsageLine is one normalized billing record for a single product/SKU/day
// combination, regardless of which schema variant it was parsed from.
type UsageLine struct {
	Date           time.Time `json:"date"`
	Product        string    `json:"product"`
	SKU            string    `json:"sku"`
	Quantity       float64   `json:"quantity"`
	UnitType       string    `json:"unit_type"`
	PricePerUnit   float64   `json:"price_per_unit"`
	GrossAmount    float64   `json:"gross_amount"`
	DiscountAmount float64   `json:"discount_amount"`
	NetAmount      float64   `json:"net_amount"`
	Username       string    `json:"username,omitempty"`
	Organization   string    `json:"organization"`
	RepositoryName string    `json:"repository_name"`
	WorkflowName   string    `json:"workflow_name,omitempty"`
	WorkflowPath   string    `json:"workflow_path,omitempty"`
	CostCenterName string    `json:"cost_center_name"`
}

// Workflow returns the workflow name, falling back to the workflow path for
// schema variants that only carry the path.
func (l UsageLine) Workflow() string {
	if l.WorkflowName != "" {
		return l.WorkflowName
	}
	return l.WorkflowPath
}

// RowIssue records one data row that was dropped during a build.
type RowIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Report is the result of parsing one uploaded usage document. Lines are
// ordered chronologically ascending; insertion order is not preserved.
type Report struct {
	Lines      []UsageLine `json:"lines"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    time.Time   `json:"end_date"`
	Days       float64     `json:"days"`
	Schema     Schema      `json:"schema"`
	FormatType FormatType  `json:"format_type"`
	RowIssues  []RowIssue  `json:"row_issues,omitempty"`
}
