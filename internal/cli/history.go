package cli

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/spf13/cobra"
)

type historyItem struct {
	ReportID  string    `json:"reportId"`
	Score     int       `json:"score"`
	Band      string    `json:"band"`
	CreatedAt time.Time `json:"createdAt"`
}

type historyOptions struct {
	history string
	limit   int
	output  string
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	opts := &historyOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List reports recorded with score --history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.history == "" {
				opts.history = root.v.GetString("history")
			}
			if opts.history == "" {
				return errors.New("--history is required")
			}
			ctx := cmd.Context()

			repo, sqlDB, err := openHistory(ctx, opts.history)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			reps, err := repo.ListByUser(ctx, localUser, opts.limit, 0)
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				items := make([]historyItem, 0, len(reps))
				for _, rep := range reps {
					items = append(items, historyItem{ReportID: rep.ID, Score: rep.Score, Band: rep.Band, CreatedAt: rep.CreatedAt})
				}
				enc := json.NewEncoder(root.out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			NewRenderer(root.out).History(root.out, reps)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.history, "history", "", "sqlite history file")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "number of reports to show")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "output format: text or json")
	return cmd
}
