package main

import (
	"github.com/jothom/inquiry/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var newFlags struct {
	dir string
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Fill in a project inquiry",
	Long: `Start the interactive inquiry wizard.

The wizard validates each step before moving on. On the last step files can
be attached and the whole inquiry reviewed before it is submitted. After a
successful submission the form is cleared for the next inquiry.`,
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newFlags.dir, "dir", "d", "", "Directory the file picker opens in (default: last used)")
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	return wizard.Run(ctx, wizard.Options{
		Pipeline:       newPipeline(cfg, b),
		BannerDuration: cfg.BannerDuration,
		DataDir:        cfg.DataDir,
		StartDir:       newFlags.dir,
	})
}
