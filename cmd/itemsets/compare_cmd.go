package main

import (
	"context"
	"fmt"

	itemsets "github.com/JosephHardy91/itemSets"
	"github.com/spf13/cobra"
)

// differencesExitCode is the exit code of compare when the algorithms
// disagree.
const differencesExitCode = 10

type compareCmdConfig struct {
	*rootCmdConfig
	input     string
	tolerance float64
	flags     mineFlags
}

func compareCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &compareCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Check fp-growth and apriori find the same frequent itemsets",
		Long:  `Mine a set of transactions with both fp-growth and apriori, and print every itemset on which they disagree`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.flags.apply(cmd.Flags(), &config.Mine)
			if err := config.Validate(); err != nil {
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

			opts := itemsets.Options{
				MinSupport: config.Mine.MinSupport,
				MinSize:    config.Mine.MinSize,
				MaxSize:    config.Mine.MaxSize,
				Workers:    config.Mine.Workers,
				Bins:       config.Mine.Bins,
				Logger:     config.logger,
			}
			results := make(map[itemsets.Algorithm]*itemsets.Result, 2)
			for _, algorithm := range []itemsets.Algorithm{itemsets.FPGrowth, itemsets.Apriori} {
				opts.Algorithm = algorithm
				config.Logf("Mining frequent itemsets with %s...", algorithm)
				results[algorithm], err = itemsets.Mine(ctx, d, opts)
				if err != nil {
					return exit(3, err)
				}
				config.Logf("%s found %d frequent itemsets in %v", algorithm, results[algorithm].Table.Len(), results[algorithm].Duration)
			}

			fp, ap := results[itemsets.FPGrowth], results[itemsets.Apriori]
			diffs := itemsets.Compare(fp.Table, ap.Table, config.tolerance)
			out := cmd.OutOrStdout()
			if len(diffs) == 0 {
				fmt.Fprintf(out, "fp and apriori agree on %d frequent itemsets\n", fp.Table.Len())
				return nil
			}
			for _, diff := range diffs {
				fmt.Fprintln(out, diff)
			}
			return exit(differencesExitCode, fmt.Errorf("fp and apriori disagree on %d itemsets", len(diffs)))
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", inputFlagUsage)
	cmd.Flags().Float64Var(&(config.tolerance), "tolerance", 1e-9, "maximum difference between supports considered equal")
	config.flags.register(cmd.Flags())
	return cmd
}
