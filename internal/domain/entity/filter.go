package entity

import (
	"math"
	"strings"
	"time"
)

// ValueMode controls whether the derived per-line value represents raw usage
// quantity (minutes) or computed monetary cost.
type ValueMode string

const (
	ModeMinutes ValueMode = "minutes"
	ModeCost    ValueMode = "cost"
)

// Filter is the active selection applied against the full unfiltered line set.
// Empty workflow/SKU strings mean "no filter". Filters are never applied
// against a previously filtered subset.
type Filter struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Workflow  string    `json:"workflow"`
	SKU       string    `json:"sku"`
}

// FilterPatch is a partial filter update. Nil fields leave the current value
// untouched.
type FilterPatch struct {
	StartDate *time.Time
	EndDate   *time.Time
	Workflow  *string
	SKU       *string
}

// Matches reports whether a line survives this filter. All clauses AND
// together; the date clause only applies when both bounds are set.
func (f Filter) Matches(l UsageLine) bool {
	if f.SKU != "" && l.SKU != f.SKU {
		return false
	}
	if f.Workflow != "" && l.Workflow() != f.Workflow {
		return false
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() {
		if l.Date.Before(f.StartDate) || l.Date.After(f.EndDate) {
			return false
		}
	}
	return true
}

// ValuedLine is an independently owned copy of a usage line carrying the
// derived value for the active value mode. The engine never mutates originals.
type ValuedLine struct {
	UsageLine
	Value float64 `json:"value"`
}

// ValueOf computes the per-line value under the given mode. Non-numeric
// products degrade to zero rather than propagating NaN.
func ValueOf(l UsageLine, mode ValueMode) float64 {
	var v float64
	if mode == ModeCost {
		v = l.Quantity * l.PricePerUnit
	} else {
		v = l.Quantity
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MatchProduct reports whether the line's product category contains any of the
// given tokens (OR semantics). No tokens matches everything.
func MatchProduct(l UsageLine, categories ...string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if c != "" && strings.Contains(l.Product, c) {
			return true
		}
	}
	return false
}

// Facets are the distinct string values observed across all lines of the
// current report, each in first-seen order, used to populate filter choices.
type Facets struct {
	Owners       []string `json:"owners"`
	Repositories []string `json:"repositories"`
	Workflows    []string `json:"workflows"`
	SKUs         []string `json:"skus"`
	Products     []string `json:"products"`
	Usernames    []string `json:"usernames"`

	HasWorkflowData bool `json:"has_workflow_data"`
	HasUsernameData bool `json:"has_username_data"`
}
