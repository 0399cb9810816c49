package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/JosephHardy91/itemSets/dataset"
	"github.com/JosephHardy91/itemSets/generate"
	"github.com/JosephHardy91/itemSets/generate/yaml"
	"github.com/spf13/cobra"
)

type generateCmdConfig struct {
	*rootCmdConfig
	output        string
	items         string
	conditionals  int
	catalogOutput string
	seed          int64
	transactions  int
	minLen        int
	maxLen        int
	maxQuantity   int
	catalog       string
}

func generateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &generateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic set of transactions",
		Long: `Generate a set of transactions either from a YAML catalog with the probability of buying every item
and of buying items along with others, or with items drawn uniformly from a list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.apply(cmd)
			err := config.Validate()
			if err != nil {
				return exit(1, err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			g := config.Generate
			r := rand.New(rand.NewSource(g.Seed))

			catalog, err := config.Catalog(r)
			if err != nil {
				return exit(2, err)
			}
			var baskets []dataset.Basket
			if catalog != nil {
				config.Logf("Drawing %d baskets from catalog of %d items...", g.Transactions, len(catalog.Items))
				baskets, err = generate.Conditional(r, catalog, g.Transactions)
			} else {
				config.Logf("Drawing %d baskets uniformly...", g.Transactions)
				baskets, err = generate.Uniform(r, parseItems(config.items), g.MinLen, g.MaxLen, g.Transactions, g.MaxQuantity)
			}
			if err != nil {
				return exit(3, err)
			}

			output, closeOutput, err := config.OutputWriter(ctx, config.output, cmd.OutOrStdout())
			if err != nil {
				return exit(4, err)
			}
			defer closeOutput()
			if _, err = output.Write(ctx, baskets); err != nil {
				return exit(5, err)
			}
			config.Logf("Flushing output set...")
			if err = output.Flush(ctx); err != nil {
				return exit(5, err)
			}
			config.Logf("Done")
			return nil
		},
	}
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", outputFlagUsage)
	cmd.Flags().StringVar(&(config.catalog), "catalog", "", "path to a YAML catalog with the probabilities to draw items with")
	cmd.Flags().StringVar(&(config.items), "items", "", "comma separated items to draw from when no catalog is given")
	cmd.Flags().IntVar(&(config.conditionals), "conditionals", 0, "build a random catalog for the items giving every item up to this many conditional items")
	cmd.Flags().StringVar(&(config.catalogOutput), "catalog-output", "", "path to write the random catalog built for the items to, as YAML")
	cmd.Flags().Int64Var(&(config.seed), "seed", 1, "seed of the random source")
	cmd.Flags().IntVarP(&(config.transactions), "transactions", "n", 1000, "number of transactions to generate")
	cmd.Flags().IntVar(&(config.minLen), "min-len", 1, "minimum number of items of a uniformly drawn transaction")
	cmd.Flags().IntVar(&(config.maxLen), "max-len", 5, "maximum number of items of a uniformly drawn transaction")
	cmd.Flags().IntVar(&(config.maxQuantity), "max-quantity", generate.DefaultMaxQuantity, "maximum quantity of an item in a uniformly drawn transaction")
	return cmd
}

func (gcc *generateCmdConfig) apply(cmd *cobra.Command) {
	fs := cmd.Flags()
	g := &gcc.Generate
	if fs.Changed("seed") {
		g.Seed = gcc.seed
	}
	if fs.Changed("transactions") {
		g.Transactions = gcc.transactions
	}
	if fs.Changed("min-len") {
		g.MinLen = gcc.minLen
	}
	if fs.Changed("max-len") {
		g.MaxLen = gcc.maxLen
	}
	if fs.Changed("max-quantity") {
		g.MaxQuantity = gcc.maxQuantity
	}
	if fs.Changed("catalog") {
		g.Catalog = gcc.catalog
	}
}

func (gcc *generateCmdConfig) Validate() error {
	if err := gcc.Config.Validate(); err != nil {
		return err
	}
	hasItems := len(parseItems(gcc.items)) > 0
	if gcc.Generate.Catalog == "" && !hasItems {
		return fmt.Errorf("either a catalog or items must be given")
	}
	if gcc.Generate.Catalog != "" && hasItems {
		return fmt.Errorf("a catalog and items cannot be given at once")
	}
	if gcc.conditionals < 0 {
		return fmt.Errorf("conditionals must not be negative, got %d", gcc.conditionals)
	}
	if gcc.catalogOutput != "" && gcc.conditionals == 0 {
		return fmt.Errorf("catalog-output requires conditionals")
	}
	return nil
}

/*
Catalog returns the catalog to draw baskets from: the one read from the
catalog file, a random one for the items when conditionals were
requested, or nil to draw baskets uniformly.
*/
func (gcc *generateCmdConfig) Catalog(r *rand.Rand) (*generate.Catalog, error) {
	if gcc.Generate.Catalog != "" {
		gcc.Logf("Reading catalog from %s...", gcc.Generate.Catalog)
		return yaml.ReadCatalogFromFile(gcc.Generate.Catalog)
	}
	if gcc.conditionals == 0 {
		return nil, nil
	}
	gcc.Logf("Building random catalog...")
	c := generate.RandomCatalog(r, parseItems(gcc.items), gcc.conditionals, 0.05, 0.5)
	c.MaxQuantity = gcc.Generate.MaxQuantity
	if gcc.catalogOutput == "" {
		return c, nil
	}
	gcc.Logf("Writing random catalog to %s...", gcc.catalogOutput)
	f, err := os.Create(gcc.catalogOutput)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err = yaml.WriteCatalog(f, c); err != nil {
		return nil, err
	}
	return c, nil
}
