package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-ats/internal/bootstrap"
	"resume-ats/internal/reports"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type scoreOptions struct {
	jdPath    string
	jdHTML    bool
	output    string
	history   string
	failUnder int
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score <resume>",
		Short: "Score a resume file (pdf, docx, html, txt or md)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.history == "" {
				opts.history = root.v.GetString("history")
			}
			return runScore(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.jdPath, "jd", "", "job description file")
	cmd.Flags().BoolVar(&opts.jdHTML, "jd-html", false, "treat the job description file as html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "output format: text or json")
	cmd.Flags().StringVar(&opts.history, "history", "", "sqlite file to record the report in")
	cmd.Flags().IntVar(&opts.failUnder, "fail-under", 0, "exit with an error when the score is below this value")
	return cmd
}

func runScore(cmd *cobra.Command, root *rootOptions, opts *scoreOptions, path string) error {
	if opts.output != outputText && opts.output != outputJSON {
		return fmt.Errorf("unknown output %q", opts.output)
	}
	ctx := cmd.Context()

	analyzer, err := bootstrap.BuildAnalyzer(root.v.GetString("thresholds"))
	if err != nil {
		return err
	}
	resume, err := readDocument(ctx, path)
	if err != nil {
		return err
	}
	jd, format, err := readJobDescription(ctx, opts.jdPath, opts.jdHTML)
	if err != nil {
		return err
	}

	svc := &reports.Service{Repo: reports.NewMemoryRepo(), Analyzer: analyzer}
	if opts.history != "" {
		repo, sqlDB, err := openHistory(ctx, opts.history)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		svc.Repo = repo
	}

	rep, err := svc.ScoreText(ctx, localUser, reports.ScoreInput{
		ResumeText:           resume,
		JobDescription:       jd,
		JobDescriptionFormat: format,
	})
	if err != nil {
		return err
	}

	switch opts.output {
	case outputJSON:
		enc := json.NewEncoder(root.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports.ToResponse(rep)); err != nil {
			return err
		}
	default:
		NewRenderer(root.out).Report(root.out, filepath.Base(path), rep)
	}

	if opts.failUnder > 0 && rep.Score < opts.failUnder {
		return fmt.Errorf("score %d is below %d", rep.Score, opts.failUnder)
	}
	return nil
}
