package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"resume-ats/internal/ats"
	"resume-ats/internal/bootstrap"
	"resume-ats/internal/reports"
)

type batchOptions struct {
	jdPath      string
	jdHTML      bool
	output      string
	concurrency int
}

// BatchResult is the outcome of scoring one file in a batch.
type BatchResult struct {
	File  string `json:"file"`
	Score int    `json:"score"`
	Band  string `json:"band,omitempty"`
	Error string `json:"error,omitempty"`
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch <resume>...",
		Short: "Score several resume files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.jdPath, "jd", "", "job description file")
	cmd.Flags().BoolVar(&opts.jdHTML, "jd-html", false, "treat the job description file as html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "output format: text or json")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 4, "number of files scored in parallel")
	return cmd
}

func runBatch(cmd *cobra.Command, root *rootOptions, opts *batchOptions, paths []string) error {
	if opts.output != outputText && opts.output != outputJSON {
		return fmt.Errorf("unknown output %q", opts.output)
	}
	if opts.concurrency < 1 {
		opts.concurrency = 1
	}

	analyzer, err := bootstrap.BuildAnalyzer(root.v.GetString("thresholds"))
	if err != nil {
		return err
	}
	jd, format, err := readJobDescription(cmd.Context(), opts.jdPath, opts.jdHTML)
	if err != nil {
		return err
	}
	jdText, err := reports.JobDescriptionText(jd, format)
	if err != nil {
		return err
	}

	results := make([]BatchResult, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.concurrency)

	// One Analyzer is shared by every goroutine.
	for i, path := range paths {
		g.Go(func() error {
			results[i] = BatchResult{File: path}
			text, err := readDocument(ctx, path)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			res := analyzer.Analyze(text, jdText)
			results[i].Score = res.Score
			results[i].Band = ats.Band(res.Score)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.output == outputJSON {
		enc := json.NewEncoder(root.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		r := NewRenderer(root.out)
		for _, res := range results {
			r.BatchLine(root.out, filepath.Base(res.File), res)
		}
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be scored", failed, len(results))
	}
	return nil
}
