package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/actionlens/gh-usage-dashboard-go/pkg/version"
)

// displayWelcomeBanner prints the welcome banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
         ██████╗ ██╗  ██╗      ██╗   ██╗███████╗ █████╗  ██████╗ ███████╗
        ██╔════╝ ██║  ██║      ██║   ██║██╔════╝██╔══██╗██╔════╝ ██╔════╝
        ██║  ███╗███████║█████╗██║   ██║███████╗███████║██║  ███╗█████╗
        ██║   ██║██╔══██║╚════╝██║   ██║╚════██║██╔══██║██║   ██║██╔══╝
        ╚██████╔╝██║  ██║      ╚██████╔╝███████║██║  ██║╚██████╔╝███████╗
         ╚═════╝ ╚═╝  ╚═╝       ╚═════╝ ╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚══════╝
        `
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("GitHub Usage Dashboard CLI (v%s)", formattedVersion)))
}
