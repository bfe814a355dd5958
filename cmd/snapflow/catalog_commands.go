package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"snapflow/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect a catalog file without starting a session",
	}

	catalogCmd.AddCommand(newCatalogStatsCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))

	return catalogCmd
}

func newCatalogStatsCommand(ctx *commandContext) *cobra.Command {
	var catalogFlag string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show article and variation counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, path, err := loadCatalog(ctx, catalogFlag)
			if err != nil {
				return err
			}
			stats := cat.Stats()
			rows := [][]string{
				{"Articles", strconv.Itoa(stats.Articles)},
				{"Variations", strconv.Itoa(stats.Variations)},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog %s\n", path)
			fmt.Fprintln(out, renderTable([]string{"Metric", "Count"}, rows, 2))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog file with article data (.xlsx or .csv)")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var catalogFlag string

	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "List the variations of one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := loadCatalog(ctx, catalogFlag)
			if err != nil {
				return err
			}
			vars, ok := cat.Lookup(args[0])
			if !ok {
				return fmt.Errorf("article %q not found", args[0])
			}

			rows := make([][]string, 0, len(vars))
			for i, v := range vars {
				rows = append(rows, []string{
					strconv.Itoa(i + 1), v.ArticleNo, v.Category, v.Description,
					v.Collection, v.Color, v.ColorName, v.Position.Label(),
				})
			}
			headers := []string{"#", "Article", "Category", "Description", "Collection", "Color", "Color name", "Position"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 1))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog file with article data (.xlsx or .csv)")
	return cmd
}

func loadCatalog(ctx *commandContext, flagValue string) (*catalog.Catalog, string, error) {
	path, err := ctx.resolveCatalogPath(flagValue)
	if err != nil {
		return nil, "", err
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cat, path, nil
}
