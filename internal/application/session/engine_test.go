package session

import (
	"math"
	"testing"
	"time"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func sampleLines() []entity.UsageLine {
	return []entity.UsageLine{
		{Date: day(1), Product: "actions", SKU: "actions_linux", Quantity: 2, PricePerUnit: 0.008, WorkflowName: "CI", Organization: "acme"},
		{Date: day(2), Product: "actions", SKU: "actions_windows", Quantity: 5, PricePerUnit: 0.016, WorkflowPath: ".github/workflows/deploy.yml", Organization: "acme"},
		{Date: day(3), Product: "copilot", SKU: "copilot_premium", Quantity: 10, PricePerUnit: 0.04, Organization: "acme"},
	}
}

func TestApplyValueModes(t *testing.T) {
	lines := sampleLines()
	filter := entity.Filter{StartDate: day(1), EndDate: day(3)}

	minutes := Apply(lines, filter, entity.ModeMinutes)
	if minutes[0].Value != 2 {
		t.Errorf("minutes value = %v, want 2", minutes[0].Value)
	}

	cost := Apply(lines, filter, entity.ModeCost)
	if cost[0].Value != 0.016 {
		t.Errorf("cost value = %v, want 0.016", cost[0].Value)
	}
}

func TestApplySKUFilter(t *testing.T) {
	lines := sampleLines()
	filter := entity.Filter{SKU: "actions_windows"}

	out := Apply(lines, filter, entity.ModeMinutes)
	if len(out) != 1 {
		t.Fatalf("got %d lines, want 1", len(out))
	}
	if out[0].SKU != "actions_windows" {
		t.Errorf("SKU = %q, want %q", out[0].SKU, "actions_windows")
	}
}

func TestApplyWorkflowFilterWithPathFallback(t *testing.T) {
	lines := sampleLines()

	byName := Apply(lines, entity.Filter{Workflow: "CI"}, entity.ModeMinutes)
	if len(byName) != 1 || byName[0].WorkflowName != "CI" {
		t.Fatalf("workflow name filter matched %d lines", len(byName))
	}

	// The second line has no workflow name; the filter must fall back to
	// the workflow path.
	byPath := Apply(lines, entity.Filter{Workflow: ".github/workflows/deploy.yml"}, entity.ModeMinutes)
	if len(byPath) != 1 || byPath[0].SKU != "actions_windows" {
		t.Fatalf("workflow path fallback matched %d lines", len(byPath))
	}
}

func TestApplyDateRangeInclusive(t *testing.T) {
	lines := sampleLines()
	filter := entity.Filter{StartDate: day(2), EndDate: day(3)}

	out := Apply(lines, filter, entity.ModeMinutes)
	if len(out) != 2 {
		t.Fatalf("got %d lines, want 2 (bounds are inclusive)", len(out))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	lines := sampleLines()
	filter := entity.Filter{StartDate: day(1), EndDate: day(2), SKU: "actions_linux"}

	first := Apply(lines, filter, entity.ModeCost)
	second := Apply(lines, filter, entity.ModeCost)

	if len(first) != len(second) {
		t.Fatalf("idempotence broken: %d then %d lines", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("line %d differs between applications", i)
		}
	}
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	lines := sampleLines()
	out := Apply(lines, entity.Filter{}, entity.ModeMinutes)

	out[0].Product = "mutated"
	if lines[0].Product == "mutated" {
		t.Error("output aliases input lines")
	}
}

func TestValueOfDegradesNaNToZero(t *testing.T) {
	l := entity.UsageLine{Quantity: math.NaN(), PricePerUnit: 1}
	if v := entity.ValueOf(l, entity.ModeCost); v != 0 {
		t.Errorf("ValueOf(NaN) = %v, want 0", v)
	}
	if v := entity.ValueOf(l, entity.ModeMinutes); v != 0 {
		t.Errorf("ValueOf(NaN) = %v, want 0", v)
	}
}

func TestAggregateBy(t *testing.T) {
	lines := Apply(sampleLines(), entity.Filter{}, entity.ModeMinutes)

	buckets := AggregateBy(lines, func(l entity.UsageLine) string { return l.Product })
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	// Sorted by descending total: copilot 10, actions 7.
	if buckets[0].Key != "copilot" || buckets[0].Total != 10 {
		t.Errorf("buckets[0] = %+v, want copilot/10", buckets[0])
	}
	if buckets[1].Key != "actions" || buckets[1].Total != 7 {
		t.Errorf("buckets[1] = %+v, want actions/7", buckets[1])
	}
}

func TestDailyTotals(t *testing.T) {
	lines := Apply(sampleLines(), entity.Filter{}, entity.ModeMinutes)

	daily := DailyTotals(lines)
	if len(daily) != 3 {
		t.Fatalf("got %d days, want 3", len(daily))
	}
	if daily[0].Day != "2024-06-01" || daily[0].Value != 2 {
		t.Errorf("daily[0] = %+v, want 2024-06-01/2", daily[0])
	}
	if daily[2].Day != "2024-06-03" || daily[2].Value != 10 {
		t.Errorf("daily[2] = %+v, want 2024-06-03/10", daily[2])
	}
}

func TestMatchProduct(t *testing.T) {
	l := entity.UsageLine{Product: "actions"}

	if !entity.MatchProduct(l, "actions") {
		t.Error("exact category should match")
	}
	if !entity.MatchProduct(l, "act") {
		t.Error("substring containment should match")
	}
	if !entity.MatchProduct(l, "copilot", "actions") {
		t.Error("OR semantics across tokens should match")
	}
	if entity.MatchProduct(l, "copilot") {
		t.Error("non-matching category should not match")
	}
	if !entity.MatchProduct(l) {
		t.Error("no tokens should match everything")
	}
}
