package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/store"
	"github.com/jothom/inquiry/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var showFlags struct {
	json  bool
	width int
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored inquiry",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showFlags.json, "json", false, "Print the stored record as JSON")
	showCmd.Flags().IntVarP(&showFlags.width, "width", "w", 80, "Wrap width for the rendered inquiry")
}

func runShow(cmd *cobra.Command, args []string) error {
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

	inq, err := b.Get(ctx, args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no inquiry with id %s", args[0])
	}
	if err != nil {
		return fmt.Errorf("loading inquiry: %w", err)
	}

	if showFlags.json {
		data, err := json.MarshalIndent(inq.Record, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding inquiry: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	files, err := b.Attachments(ctx, inq.ID)
	if err != nil {
		return fmt.Errorf("listing attachments: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), wizard.RenderMarkdown(inquiryMarkdown(inq, files), showFlags.width))
	return nil
}

// inquiryMarkdown renders a stored inquiry with its id, submission time and
// attachment sizes.
func inquiryMarkdown(inq store.Inquiry, files []store.AttachmentInfo) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = fmt.Sprintf("%s (%s, %s)", f.Name, f.MediaType, inquiry.HumanSize(int64(f.Size)))
	}

	var b strings.Builder
	b.WriteString(inquiry.Markdown(inq.Record, names))
	fmt.Fprintf(&b, "\n---\n\nInquiry `%s`, submitted %s\n", inq.ID, inq.SubmittedAt.Local().Format(time.RFC1123))
	return b.String()
}
