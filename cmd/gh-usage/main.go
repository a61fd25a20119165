package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/actionlens/gh-usage-dashboard-go/internal/adapter/driven/config"
	"github.com/actionlens/gh-usage-dashboard-go/internal/adapter/driven/export"
	"github.com/actionlens/gh-usage-dashboard-go/internal/adapter/driven/ingest"
	"github.com/actionlens/gh-usage-dashboard-go/internal/adapter/driving/cli"
	"github.com/actionlens/gh-usage-dashboard-go/internal/application/session"
	"github.com/actionlens/gh-usage-dashboard-go/internal/application/usecase"
	"github.com/actionlens/gh-usage-dashboard-go/pkg/console"
	"github.com/actionlens/gh-usage-dashboard-go/pkg/version"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	app := cli.NewCLIApp(version.Version)

	builder := ingest.NewBuilder(logger)
	sess := session.New(builder, logger)
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	dashboardUseCase := usecase.NewDashboardUseCase(
		sess,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetDashboardUseCase(dashboardUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. The --verbose flag has to be inspected
// before cobra parses anything, since the logger is injected into the
// adapters at wiring time.
func newLogger() *zap.Logger {
	verbose := false
	for _, arg := range os.Args[1:] {
		if arg == "--verbose" || arg == "-v" {
			verbose = true
			break
		}
	}

	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
		logger, err = cfg.Build()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
