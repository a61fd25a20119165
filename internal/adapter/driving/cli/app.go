package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/actionlens/gh-usage-dashboard-go/internal/application/usecase"
	"github.com/actionlens/gh-usage-dashboard-go/internal/shared/types"
	"github.com/actionlens/gh-usage-dashboard-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	version          string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "gh-usage",
		Short:   "GitHub Usage Dashboard CLI",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "GitHub Usage Dashboard version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to the usage report CSV export (required)")
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("value-mode", "m", "", "Value mode: minutes or cost (default: minutes)")
	rootCmd.PersistentFlags().StringP("sku", "s", "", "Only include lines with this exact SKU")
	rootCmd.PersistentFlags().StringP("workflow", "w", "", "Only include lines with this exact workflow name or path")
	rootCmd.PersistentFlags().StringSliceP("product", "p", nil, "Product categories for the workflow breakdown, e.g. actions,copilot (comma-separated)")
	rootCmd.PersistentFlags().String("start-date", "", "Inclusive filter start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("end-date", "", "Inclusive filter end date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().IntP("top", "t", 0, "Number of rows in the SKU/workflow breakdown tables (default: 10)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.MarkPersistentFlagRequired("file")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	file, _ := app.rootCmd.Flags().GetString("file")
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	valueMode, _ := app.rootCmd.Flags().GetString("value-mode")
	skuFlag, _ := app.rootCmd.Flags().GetString("sku")
	workflow, _ := app.rootCmd.Flags().GetString("workflow")
	products, _ := app.rootCmd.Flags().GetStringSlice("product")
	startDate, _ := app.rootCmd.Flags().GetString("start-date")
	endDate, _ := app.rootCmd.Flags().GetString("end-date")
	top, _ := app.rootCmd.Flags().GetInt("top")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	verbose, _ := app.rootCmd.Flags().GetBool("verbose")

	args := &types.CLIArgs{
		ConfigFile: configFile,
		File:       file,
		ValueMode:  valueMode,
		SKU:        skuFlag,
		Workflow:   workflow,
		Products:   products,
		StartDate:  startDate,
		EndDate:    endDate,
		Top:        top,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		Verbose:    verbose,
	}

	return args, nil
}

// runCommand is the main entry point for the CLI command.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	return app.dashboardUseCase.RunDashboard(ctx, cliArgs)
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}
