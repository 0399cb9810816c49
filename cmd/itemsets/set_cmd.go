package main

import (
	"context"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput  string
	setOutput string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Copy sets of transactions",
		Long:  `Copy a set of transactions from one source to another, e.g. from a CSV file to a SQLite3 database or a Redis server`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			input, closeInput, err := config.InputDataset(ctx, config.setInput, cmd.InOrStdin())
			if err != nil {
				return exit(2, err)
			}
			defer closeInput()

			output, closeOutput, err := config.OutputWriter(ctx, config.setOutput, cmd.OutOrStdout())
			if err != nil {
				return exit(3, err)
			}
			defer closeOutput()

			config.Logf("Dumping input set into output set...")
			n, err := dataset.Copy(ctx, output, input)
			if err != nil {
				return exit(8, err)
			}
			config.Logf("Copied %d transactions", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&(config.setInput), "input", "i", "", inputFlagUsage)
	cmd.Flags().StringVarP(&(config.setOutput), "output", "o", "", outputFlagUsage)
	return cmd
}
