package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/jothom/inquiry/internal/logger"
	"github.com/jothom/inquiry/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "▀ █▄ █ █▀█ █ █ █ █▀█ █▄█"
	logoText2 = "█ █ ▀█ ▀▀█ █▄█ █ █▀▄  █ "
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	dataDir string
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "inquiry",
	Short: "Collect construction project inquiries in the terminal",
	RunE:  runNew,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewSiteDark()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

inquiry walks a prospective client through a seven step project inquiry:
contact details, project type, location, budget, timeline, a description
and optional photos or plans. Completed inquiries are stored in an embedded
NATS JetStream under the data directory.

Running inquiry without a subcommand starts the wizard.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory (default from config: .inquiry)")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setupCmd)
}
