package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
	"github.com/actionlens/gh-usage-dashboard-go/internal/shared/types"
)

func buildDoc(t *testing.T, doc string) (*entity.Report, error) {
	t.Helper()
	return NewBuilder(nil).BuildReport(context.Background(), doc)
}

func TestBuildReportEmptyDocument(t *testing.T) {
	for _, doc := range []string{"", legacy15Header} {
		_, err := buildDoc(t, doc)
		if !errors.Is(err, types.ErrEmptyDocument) {
			t.Errorf("BuildReport(%q lines) error = %v, want ErrEmptyDocument", doc, err)
		}
	}
}

func TestBuildReportNoValidRows(t *testing.T) {
	doc := strings.Join([]string{
		summarized12Header,
		"too,few,columns",
		"not-a-date,actions,sku,1,minutes,0.008,0,0,0,acme,acme/api,cc",
	}, "\n")

	_, err := buildDoc(t, doc)
	if !errors.Is(err, types.ErrNoValidRows) {
		t.Fatalf("BuildReport error = %v, want ErrNoValidRows", err)
	}
}

func TestBuildReportSortsChronologically(t *testing.T) {
	doc := strings.Join([]string{
		summarized12Header,
		"2024-06-05,actions,sku_a,1,minutes,0.008,0,0,0,acme,acme/api,cc",
		"2024-06-01,actions,sku_b,2,minutes,0.008,0,0,0,acme,acme/api,cc",
		"2024-06-03,actions,sku_c,3,minutes,0.008,0,0,0,acme,acme/api,cc",
	}, "\n")

	report, err := buildDoc(t, doc)
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}

	for i := 1; i < len(report.Lines); i++ {
		if report.Lines[i].Date.Before(report.Lines[i-1].Date) {
			t.Fatalf("lines not sorted ascending at index %d", i)
		}
	}
	if !report.StartDate.Equal(report.Lines[0].Date) {
		t.Errorf("StartDate = %v, want %v", report.StartDate, report.Lines[0].Date)
	}
	if !report.EndDate.Equal(report.Lines[len(report.Lines)-1].Date) {
		t.Errorf("EndDate = %v, want %v", report.EndDate, report.Lines[len(report.Lines)-1].Date)
	}
	if report.Days != 4 {
		t.Errorf("Days = %v, want 4", report.Days)
	}
}

// Rows with equal timestamps must keep their original order: the sort is
// stable.
func TestBuildReportStableTieBreak(t *testing.T) {
	doc := strings.Join([]string{
		summarized12Header,
		"2024-06-02,actions,first,1,minutes,0.008,0,0,0,acme,acme/api,cc",
		"2024-06-01,actions,earliest,1,minutes,0.008,0,0,0,acme,acme/api,cc",
		"2024-06-02,actions,second,1,minutes,0.008,0,0,0,acme,acme/api,cc",
		"2024-06-02,actions,third,1,minutes,0.008,0,0,0,acme,acme/api,cc",
	}, "\n")

	report, err := buildDoc(t, doc)
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}

	wantOrder := []string{"earliest", "first", "second", "third"}
	for i, want := range wantOrder {
		if report.Lines[i].SKU != want {
			t.Errorf("line %d SKU = %q, want %q", i, report.Lines[i].SKU, want)
		}
	}
}

func TestBuildReportPartialSuccess(t *testing.T) {
	doc := strings.Join([]string{
		summarized12Header,
		"2024-06-01,actions,sku_a,1,minutes,0.008,0,0,0,acme,acme/api,cc",
		"broken row",
		"",
		"2024-06-02,actions,sku_b,2,minutes,0.008,0,0,0,acme,acme/api,cc",
	}, "\n")

	report, err := buildDoc(t, doc)
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}

	if len(report.Lines) != 2 {
		t.Errorf("parsed %d lines, want 2", len(report.Lines))
	}
	if len(report.RowIssues) != 1 {
		t.Fatalf("recorded %d row issues, want 1", len(report.RowIssues))
	}
	if report.RowIssues[0].Line != 3 {
		t.Errorf("RowIssues[0].Line = %d, want 3", report.RowIssues[0].Line)
	}
}

func TestBuildReportHandlesCRLF(t *testing.T) {
	doc := summarized12Header + "\r\n" +
		"2024-06-01,actions,sku_a,1,minutes,0.008,0,0,0,acme,acme/api,cc\r\n"

	report, err := buildDoc(t, doc)
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}
	if len(report.Lines) != 1 {
		t.Fatalf("parsed %d lines, want 1", len(report.Lines))
	}
	if report.Lines[0].CostCenterName != "cc" {
		t.Errorf("CostCenterName = %q, want %q (trailing CR not stripped?)", report.Lines[0].CostCenterName, "cc")
	}
}

func TestBuildReportFormatTypeMapping(t *testing.T) {
	tests := []struct {
		header string
		row    string
		want   entity.FormatType
	}{
		{
			legacy15Header,
			"2024-06-01,actions,sku,1,minutes,0.008,0,0,0,octocat,acme,acme/api,CI,.github/workflows/ci.yml,cc",
			entity.FormatLegacy,
		},
		{
			legacy14Header,
			"2024-06-01,actions,sku,1,minutes,0.008,0,0,0,octocat,acme,acme/api,.github/workflows/ci.yml,cc",
			entity.FormatLegacy,
		},
		{
			summarized12Header,
			"2024-06-01,actions,sku,1,minutes,0.008,0,0,0,acme,acme/api,cc",
			entity.FormatSummarized,
		},
	}

	for _, tt := range tests {
		report, err := buildDoc(t, tt.header+"\n"+tt.row)
		if err != nil {
			t.Fatalf("BuildReport returned error: %v", err)
		}
		if report.FormatType != tt.want {
			t.Errorf("FormatType = %q, want %q", report.FormatType, tt.want)
		}
	}
}

func TestBuildReportCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := summarized12Header + "\n" +
		"2024-06-01,actions,sku,1,minutes,0.008,0,0,0,acme,acme/api,cc"

	_, err := NewBuilder(nil).BuildReport(ctx, doc)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("BuildReport error = %v, want context.Canceled", err)
	}
}

func TestBuildReportFractionalDays(t *testing.T) {
	doc := strings.Join([]string{
		legacy15Header,
		"2024-06-01T00:00:00Z,actions,sku,1,minutes,0.008,0,0,0,octocat,acme,acme/api,CI,wf.yml,cc",
		"2024-06-02T12:00:00Z,actions,sku,1,minutes,0.008,0,0,0,octocat,acme,acme/api,CI,wf.yml,cc",
	}, "\n")

	report, err := buildDoc(t, doc)
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}
	if report.Days != 1.5 {
		t.Errorf("Days = %v, want 1.5", report.Days)
	}

	wantEnd := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	if !report.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", report.EndDate, wantEnd)
	}
}
