package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/JosephHardy91/itemSets/preprocess"
	"github.com/JosephHardy91/itemSets/stats"
	"github.com/spf13/cobra"
)

type statsCmdConfig struct {
	*rootCmdConfig
	input string
	items string
	base  string
	bins  int
}

func statsCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &statsCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Compute the support, confidence and lift of an itemset",
		Long:  `Compute how often an itemset shows up in a set of transactions and, given a base item, how much the rest of the itemset depends on it`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Validate()
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
			baskets, err := d.Baskets(ctx)
			if err != nil {
				return exit(3, err)
			}
			transactions := preprocess.Strip(baskets)
			if config.bins > 0 {
				transactions, err = preprocess.BinAll(baskets, config.bins)
				if err != nil {
					return exit(3, err)
				}
			}
			engine, err := stats.New(transactions, nil)
			if err != nil {
				return exit(4, err)
			}
			out := cmd.OutOrStdout()
			support, err := engine.Support(s)
			if err != nil {
				return exit(4, err)
			}
			fmt.Fprintf(out, "Itemset: %v\nSupport: %.4f\n", s, support)
			if config.base == "" {
				return nil
			}
			base := itemset.Item(config.base)
			confidence, err := engine.Confidence(base, s)
			if err != nil {
				return exit(4, err)
			}
			fmt.Fprintf(out, "Confidence on %s: %.4f\n", base, confidence)
			lift, err := engine.Lift(s, base)
			if err != nil {
				return exit(4, err)
			}
			fmt.Fprintf(out, "Lift on %s: %.4f\n", base, lift)
			return nil
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", inputFlagUsage)
	cmd.Flags().StringVar(&(config.items), "items", "", "comma separated items of the itemset (required)")
	cmd.Flags().StringVar(&(config.base), "base", "", "item of the itemset to compute confidence and lift on")
	cmd.Flags().IntVar(&(config.bins), "bins", 0, "number of quantity buckets to split every item into (0 to ignore quantities)")
	return cmd
}

// Validate checks the flags and returns the itemset they name.
func (scc *statsCmdConfig) Validate() (itemset.Itemset, error) {
	items := parseItems(scc.items)
	if len(items) == 0 {
		return itemset.Itemset{}, fmt.Errorf("required items flag was not set")
	}
	if scc.bins < 0 {
		return itemset.Itemset{}, fmt.Errorf("bins must not be negative, got %d", scc.bins)
	}
	s := itemset.New(items)
	if scc.base != "" && !s.Contains(itemset.Item(scc.base)) {
		return itemset.Itemset{}, fmt.Errorf("base item %q is not on itemset %v", scc.base, s)
	}
	return s, nil
}

func parseItems(s string) []itemset.Item {
	var items []itemset.Item
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			items = append(items, itemset.Item(field))
		}
	}
	return items
}
