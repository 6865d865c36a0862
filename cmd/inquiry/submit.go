package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var submitFlags struct {
	file   string
	attach []string
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an inquiry from a YAML file",
	Long: `Submit an inquiry without the wizard.

The file uses the same field names as the stored record, for example:

  full_name: Thandi Mokoena
  email: thandi@example.com
  phone_number: 082 555 0199
  preferred_contact_method: WhatsApp
  project_type: Kitchen/Bath Remodel
  street_or_area: 12 Main Road
  city_town: Cape Town
  property_ownership_status: Own
  budget_range: R300,000 – R1,000,000
  timeline: 1–3 months
  project_description: Open-plan kitchen with an island.

Every step is validated exactly as in the wizard. Use --file - to read stdin.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitFlags.file, "file", "f", "", "YAML file holding the inquiry (- for stdin)")
	submitCmd.Flags().StringArrayVarP(&submitFlags.attach, "attach", "a", nil, "File to attach (repeatable)")
	_ = submitCmd.MarkFlagRequired("file")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if submitFlags.file != "-" {
		f, err := os.Open(submitFlags.file)
		if err != nil {
			return fmt.Errorf("opening inquiry file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	rec, err := readRecord(in)
	if err != nil {
		return err
	}
	s, err := prepareSession(rec, submitFlags.attach)
	if err != nil {
		return err
	}

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

	res, err := newPipeline(cfg, b).Submit(ctx, s)
	if err != nil {
		return fmt.Errorf("submitting inquiry: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Inquiry %s submitted. We'll respond within 24 hours.\n", res.InquiryID)
	if res.AttachmentErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: attachments were not stored: %v\n", res.AttachmentErr)
	}
	return nil
}

// readRecord decodes a YAML inquiry and normalizes it.
func readRecord(r io.Reader) (inquiry.Record, error) {
	rec := inquiry.NewRecord()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil && err != io.EOF {
		return inquiry.Record{}, fmt.Errorf("parsing inquiry file: %w", err)
	}
	rec.Normalize()
	return rec, nil
}

// prepareSession walks a session through every step with rec, the same way
// the wizard would, and stages the attachments.
func prepareSession(rec inquiry.Record, attach []string) (*inquiry.Session, error) {
	s := inquiry.NewSession()
	s.Record = rec
	for s.Steps.Current() != inquiry.LastStep {
		if err := s.Steps.Advance(&s.Record); err != nil {
			return nil, fmt.Errorf("inquiry incomplete: %w", err)
		}
	}

	for _, path := range attach {
		if !inquiry.Accepts(path) {
			return nil, fmt.Errorf("cannot attach %s: only images and PDF files are accepted", path)
		}
		a, err := inquiry.LoadAttachment(path)
		if err != nil {
			return nil, err
		}
		s.Attachments.AddFiles(a)
	}
	return s, nil
}
