package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/JosephHardy91/itemSets/internal/config"
	"github.com/JosephHardy91/itemSets/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configPath string
	*config.Config
	logger *zap.Logger
}

// exitError carries the exit code the command should end with.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exit(code int, err error) error {
	return &exitError{code, err}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func main() {
	if err := cliParser().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "itemsets",
		Short:         "itemsets is a tool to find frequent itemsets",
		Long:          `A tool to find the groups of items frequently bought together in sets of transactions, compare mining algorithms and generate synthetic transactions`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rc := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(rc.verbose), "verbose", "v", false, "log progress to STDERR")
	rootCmd.PersistentFlags().StringVar(&(rc.configPath), "config", "", "path to a YAML file with settings (overridden by ITEMSETS_ environment variables and flags)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.load(cmd)
	}
	rootCmd.AddCommand(
		versionCmd(),
		mineCmd(rc),
		compareCmd(rc),
		statsCmd(rc),
		generateCmd(rc),
		setCmd(rc),
	)
	return rootCmd
}

func (rc *rootCmdConfig) load(cmd *cobra.Command) error {
	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return exit(1, err)
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rc.verbose
	}
	rc.Config = cfg
	rc.logger = logging.NewTo(cmd.ErrOrStderr(), cfg.Verbose)
	return nil
}
