// Package cli implements the atscheck command line: scoring local resume
// files, batches of files and a sqlite-backed report history.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-ats/internal/shared/telemetry"
)

const (
	app = "atscheck"

	// localUser owns every report written by the CLI.
	localUser = "local"
)

// Actual version can be specified in build command.
var version = "dev"

type rootOptions struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRootCmd(os.Stdout, os.Stderr).Execute()
}

// NewRootCmd builds the command tree writing results to out and diagnostics to errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{v: viper.New(), out: out, errOut: errOut}
	var cfgFile string

	root := &cobra.Command{
		Use:           app,
		Short:         "atscheck scores resumes against common applicant tracking system heuristics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.init(cfgFile)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "a yaml config file")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	root.PersistentFlags().String("log-level", "warn", "log level")
	root.PersistentFlags().String("thresholds", "", "yaml file overriding the scoring thresholds")

	for _, name := range []string{"json", "log-level", "thresholds"} {
		_ = opts.v.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}

	root.AddCommand(
		newScoreCmd(opts),
		newBatchCmd(opts),
		newHistoryCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

func (o *rootOptions) init(cfgFile string) error {
	o.v.SetEnvPrefix(strings.ToUpper(app))
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	if cfgFile != "" {
		o.v.SetConfigFile(cfgFile)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	logger, err := telemetry.New(o.v.GetBool("json"), o.v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	telemetry.SetLogger(logger)
	return nil
}
