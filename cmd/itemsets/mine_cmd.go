package main

import (
	"context"
	"fmt"
	"io"
	"os"

	itemsets "github.com/JosephHardy91/itemSets"
	"github.com/JosephHardy91/itemSets/fptree"
	"github.com/JosephHardy91/itemSets/internal/config"
	"github.com/JosephHardy91/itemSets/report"
	"github.com/JosephHardy91/itemSets/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type mineCmdConfig struct {
	*rootCmdConfig
	input         string
	output        string
	sortBySupport bool
	dumpTree      bool
	flags         mineFlags
}

// mineFlags holds the flags overriding the mine section of the config.
type mineFlags struct {
	algorithm   string
	minSupport  float64
	minSize     int
	maxSize     int
	workers     int
	bins        int
	format      string
	bySize      bool
	lift        bool
	metricsFile string
}

func (mf *mineFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&(mf.algorithm), "algorithm", "a", "fp", "mining algorithm, fp or apriori")
	fs.Float64VarP(&(mf.minSupport), "min-support", "s", 0.1, "minimum fraction of transactions a frequent itemset must be in, within (0, 1]")
	fs.IntVar(&(mf.minSize), "min-size", 1, "minimum number of items of the itemsets to report")
	fs.IntVarP(&(mf.maxSize), "max-size", "k", 0, "maximum number of items of the itemsets to mine (0 for no limit)")
	fs.IntVarP(&(mf.workers), "workers", "w", 1, "number of goroutines mining in parallel")
	fs.IntVar(&(mf.bins), "bins", 0, "number of quantity buckets to split every item into (0 to ignore quantities)")
	fs.StringVarP(&(mf.format), "format", "f", "text", "output format, text or json")
	fs.BoolVar(&(mf.bySize), "by-size", true, "group itemsets by size on text output")
	fs.BoolVar(&(mf.lift), "lift", false, "add lift lines under itemsets of two or more items on text output")
	fs.StringVar(&(mf.metricsFile), "metrics-file", "", "path to write Prometheus metrics of the run to, in text format")
}

// apply overrides the settings in m with the flags set on the command line.
func (mf *mineFlags) apply(fs *pflag.FlagSet, m *config.MineConfig) {
	if fs.Changed("algorithm") {
		m.Algorithm = mf.algorithm
	}
	if fs.Changed("min-support") {
		m.MinSupport = mf.minSupport
	}
	if fs.Changed("min-size") {
		m.MinSize = mf.minSize
	}
	if fs.Changed("max-size") {
		m.MaxSize = mf.maxSize
	}
	if fs.Changed("workers") {
		m.Workers = mf.workers
	}
	if fs.Changed("bins") {
		m.Bins = mf.bins
	}
	if fs.Changed("format") {
		m.Format = mf.format
	}
	if fs.Changed("by-size") {
		m.BySize = mf.bySize
	}
	if fs.Changed("lift") {
		m.Lift = mf.lift
	}
	if fs.Changed("metrics-file") {
		m.MetricsFile = mf.metricsFile
	}
}

func mineCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &mineCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Find the frequent itemsets of a set of transactions",
		Long:  `Find the groups of items that show up together on at least a given fraction of a set of transactions`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.Validate(cmd.Flags())
			if err != nil {
				return exit(1, err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			d, closeInput, err := config.InputDataset(ctx, config.input, cmd.InOrStdin())
			if err != nil {
				return exit(2, err)
			}
			defer closeInput()

			var reg *prometheus.Registry
			opts := config.Options()
			if config.Mine.MetricsFile != "" {
				reg = prometheus.NewRegistry()
				opts.Metrics = itemsets.NewMetrics(reg)
			}
			config.Logf("Mining frequent itemsets with %s...", opts.Algorithm)
			result, err := itemsets.Mine(ctx, d, opts)
			if err != nil {
				return exit(3, err)
			}
			config.Logf("Found %d frequent itemsets in %d transactions", result.Table.Len(), len(result.Transactions))

			out, closeOutput, err := config.Output(cmd.OutOrStdout())
			if err != nil {
				return exit(4, err)
			}
			defer closeOutput()
			if config.dumpTree {
				tree := fptree.Build(result.Transactions, result.MinCount)
				if _, err = fmt.Fprint(out, tree); err != nil {
					return exit(5, err)
				}
			}
			if err = config.Report(out, result); err != nil {
				return exit(5, err)
			}
			if reg != nil {
				config.Logf("Writing metrics to %s...", config.Mine.MetricsFile)
				if err = itemsets.WriteTextfile(config.Mine.MetricsFile, reg); err != nil {
					return exit(6, err)
				}
			}
			config.Logf("Done")
			return nil
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", inputFlagUsage)
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to write the frequent itemsets to (defaults to STDOUT)")
	cmd.Flags().BoolVar(&(config.sortBySupport), "sort-by-support", true, "list the most supported itemsets first on text output")
	cmd.Flags().BoolVar(&(config.dumpTree), "dump-tree", false, "print the FP-tree of the frequent items before the itemsets")
	config.flags.register(cmd.Flags())
	return cmd
}

func (mcc *mineCmdConfig) Validate(fs *pflag.FlagSet) error {
	mcc.flags.apply(fs, &mcc.Mine)
	return mcc.Config.Validate()
}

// Options returns the mining options for the loaded settings.
func (mcc *mineCmdConfig) Options() itemsets.Options {
	return itemsets.Options{
		Algorithm:  itemsets.Algorithm(mcc.Mine.Algorithm),
		MinSupport: mcc.Mine.MinSupport,
		MinSize:    mcc.Mine.MinSize,
		MaxSize:    mcc.Mine.MaxSize,
		Workers:    mcc.Mine.Workers,
		Bins:       mcc.Mine.Bins,
		Logger:     mcc.logger,
	}
}

func (mcc *mineCmdConfig) Output(stdout io.Writer) (io.Writer, closeFunc, error) {
	if mcc.output == "" {
		return stdout, noClose, nil
	}
	mcc.Logf("Creating %s to write frequent itemsets...", mcc.output)
	f, err := os.Create(mcc.output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func (mcc *mineCmdConfig) Report(w io.Writer, result *itemsets.Result) error {
	if mcc.Mine.Format == "json" {
		return report.WriteJSON(w, result.Table)
	}
	var engine *stats.Engine
	if mcc.Mine.Lift {
		var err error
		engine, err = stats.New(result.Transactions, result.Table)
		if err != nil {
			return fmt.Errorf("preparing lift: %w", err)
		}
	}
	return report.WriteText(w, result.Table, engine, report.Options{
		BySize:        mcc.Mine.BySize,
		SortBySupport: mcc.sortBySupport,
		Lift:          mcc.Mine.Lift,
	})
}
