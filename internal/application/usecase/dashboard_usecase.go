package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/actionlens/gh-usage-dashboard-go/internal/application/session"
	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/repository"
	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/sku"
	"github.com/actionlens/gh-usage-dashboard-go/internal/shared/types"
)

const defaultTopN = 10

// DashboardUseCase drives one usage exploration session: load a report,
// apply the requested filters and value mode, display summary and
// aggregation views, and export the filtered set.
type DashboardUseCase struct {
	session    *session.Session
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	sess *session.Session,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		session:    sess,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// ResolveConfig loads the optional config file, applies environment
// overrides, then lets explicit CLI flags win over both.
func (uc *DashboardUseCase) ResolveConfig(args *types.CLIArgs) (*types.Config, error) {
	config := &types.Config{}

	if args.ConfigFile != "" {
		loaded, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := uc.configRepo.LoadEnv(config); err != nil {
		return nil, err
	}

	if args.ValueMode != "" {
		config.ValueMode = args.ValueMode
	}
	if args.SKU != "" {
		config.SKU = args.SKU
	}
	if args.Workflow != "" {
		config.Workflow = args.Workflow
	}
	if len(args.Products) > 0 {
		config.Products = args.Products
	}
	if args.Top > 0 {
		config.Top = args.Top
	}
	if args.ReportName != "" {
		config.ReportName = args.ReportName
	}
	if len(args.ReportType) > 0 {
		config.ReportType = args.ReportType
	}
	if args.Dir != "" {
		config.Dir = args.Dir
	}

	if config.ValueMode == "" {
		config.ValueMode = string(entity.ModeMinutes)
	}
	if config.Top <= 0 {
		config.Top = defaultTopN
	}

	return config, nil
}

// RunDashboard executes the main dashboard flow.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	config, err := uc.ResolveConfig(args)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args.File)
	if err != nil {
		return fmt.Errorf("could not read usage report %s: %w", args.File, err)
	}

	status := uc.console.Status(fmt.Sprintf("Parsing usage report %s...", args.File))

	// Report building is deferred so an interactive caller never blocks;
	// here we simply wait for the outcome.
	result := <-uc.session.LoadAsync(ctx, string(raw))
	status.Stop()
	if result.Err != nil {
		return result.Err
	}
	report := result.Report

	for _, issue := range report.RowIssues {
		uc.console.LogWarning("Skipped row %d: %s", issue.Line, issue.Reason)
	}

	// The filtered view arrives via subscription; every filter or mode
	// change below republishes it.
	var filtered []entity.ValuedLine
	unsubscribe := uc.session.Subscribe(func(lines []entity.ValuedLine) {
		filtered = lines
	})
	defer unsubscribe()

	uc.session.SetValueMode(entity.ValueMode(config.ValueMode))
	patch, err := filterPatch(args, config)
	if err != nil {
		return err
	}
	uc.session.SetFilter(patch)

	formatter := sku.NewFormatter(config.SKULabels)

	uc.displaySummary(report, len(filtered))
	uc.displayAggregates(filtered, formatter, config)
	uc.displayTrend(filtered, config)

	return uc.exportReports(filtered, config)
}

// filterPatch builds the filter update requested via config/flags. Date
// bounds left unset keep the report's full span.
func filterPatch(args *types.CLIArgs, config *types.Config) (entity.FilterPatch, error) {
	patch := entity.FilterPatch{}
	if config.SKU != "" {
		patch.SKU = &config.SKU
	}
	if config.Workflow != "" {
		patch.Workflow = &config.Workflow
	}
	if args.StartDate != "" {
		t, err := ParseDateFlag(args.StartDate)
		if err != nil {
			return entity.FilterPatch{}, err
		}
		patch.StartDate = &t
	}
	if args.EndDate != "" {
		t, err := ParseDateFlag(args.EndDate)
		if err != nil {
			return entity.FilterPatch{}, err
		}
		patch.EndDate = &t
	}
	return patch, nil
}

// displaySummary prints the report-level summary table.
func (uc *DashboardUseCase) displaySummary(report *entity.Report, filteredCount int) {
	facets := uc.session.Facets()

	table := uc.console.CreateTable()
	table.AddColumn("Period")
	table.AddColumn("Days")
	table.AddColumn("Format")
	table.AddColumn("Rows")
	table.AddColumn("Skipped")
	table.AddColumn("Filtered")
	table.AddColumn("Facets")

	facetSummary := []string{
		fmt.Sprintf("owners: %d", len(facets.Owners)),
		fmt.Sprintf("repositories: %d", len(facets.Repositories)),
		fmt.Sprintf("products: %d", len(facets.Products)),
		fmt.Sprintf("skus: %d", len(facets.SKUs)),
	}
	if facets.HasWorkflowData {
		facetSummary = append(facetSummary, fmt.Sprintf("workflows: %d", len(facets.Workflows)))
	}
	if facets.HasUsernameData {
		facetSummary = append(facetSummary, fmt.Sprintf("usernames: %d", len(facets.Usernames)))
	}

	table.AddRow(
		pterm.FgCyan.Sprintf("%s to %s",
			report.StartDate.Format("2006-01-02"),
			report.EndDate.Format("2006-01-02")),
		fmt.Sprintf("%.1f", report.Days),
		pterm.FgMagenta.Sprint(string(report.FormatType)),
		fmt.Sprintf("%d", len(report.Lines)),
		fmt.Sprintf("%d", len(report.RowIssues)),
		fmt.Sprintf("%d", filteredCount),
		strings.Join(facetSummary, "\n"),
	)

	uc.console.Print(table.Render())
}

// displayAggregates prints the top-N SKU and workflow tables for the
// filtered view.
func (uc *DashboardUseCase) displayAggregates(filtered []entity.ValuedLine, formatter *sku.Formatter, config *types.Config) {
	unit := valueUnit(config.ValueMode)

	bySKU := session.AggregateBy(filtered, func(l entity.UsageLine) string { return l.SKU })
	if len(bySKU) > config.Top {
		bySKU = bySKU[:config.Top]
	}

	skuTable := uc.console.CreateTable()
	skuTable.AddColumn("SKU")
	skuTable.AddColumn(fmt.Sprintf("Total %s", unit))
	for _, bucket := range bySKU {
		skuTable.AddRow(
			pterm.FgGreen.Sprint(formatter.Format(bucket.Key)),
			fmt.Sprintf("%.4f", bucket.Total),
		)
	}
	uc.console.Print(skuTable.Render())

	if !uc.session.Facets().HasWorkflowData {
		return
	}

	// Workflow breakdown honors the product-category selection, which is
	// layered on top of the published filtered set.
	categoryLines := filtered
	if len(config.Products) > 0 {
		categoryLines = []entity.ValuedLine{}
		for _, l := range filtered {
			if entity.MatchProduct(l.UsageLine, config.Products...) {
				categoryLines = append(categoryLines, l)
			}
		}
	}

	byWorkflow := session.AggregateBy(categoryLines, func(l entity.UsageLine) string { return l.Workflow() })
	if len(byWorkflow) > config.Top {
		byWorkflow = byWorkflow[:config.Top]
	}

	wfTable := uc.console.CreateTable()
	wfTable.AddColumn("Workflow")
	wfTable.AddColumn(fmt.Sprintf("Total %s", unit))
	for _, bucket := range byWorkflow {
		wfTable.AddRow(
			pterm.FgYellow.Sprint(bucket.Key),
			fmt.Sprintf("%.4f", bucket.Total),
		)
	}
	uc.console.Print(wfTable.Render())
}

// displayTrend renders the per-day trend bars for the filtered view.
func (uc *DashboardUseCase) displayTrend(filtered []entity.ValuedLine, config *types.Config) {
	daily := session.DailyTotals(filtered)
	if len(daily) == 0 {
		uc.console.LogWarning("No lines match the active filter")
		return
	}
	uc.console.DisplayTrendBars(daily, valueUnit(config.ValueMode))
}

// exportReports writes the filtered view to every requested report type.
func (uc *DashboardUseCase) exportReports(filtered []entity.ValuedLine, config *types.Config) error {
	if config.ReportName == "" || len(config.ReportType) == 0 {
		return nil
	}

	mode := entity.ValueMode(config.ValueMode)
	for _, reportType := range config.ReportType {
		switch reportType {
		case "csv":
			path, err := uc.exportRepo.ExportToCSV(filtered, mode, config.ReportName, config.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", path)
			}
		case "json":
			path, err := uc.exportRepo.ExportToJSON(filtered, mode, config.ReportName, config.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportToPDF(filtered, mode, config.ReportName, config.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", path)
			}
		default:
			uc.console.LogWarning("Unknown report type %q (expected csv, json or pdf)", reportType)
		}
	}

	return nil
}

// valueUnit names the displayed unit for a value mode.
func valueUnit(mode string) string {
	if mode == string(entity.ModeCost) {
		return "cost ($)"
	}
	return "minutes"
}

// ParseDateFlag parses a --start-date/--end-date flag value.
func ParseDateFlag(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", raw, err)
	}
	return t, nil
}
