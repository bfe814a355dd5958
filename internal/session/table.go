package session

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"snapflow/internal/catalog"
)

// variationTable renders the operator-facing listing of a lookup result.
func variationTable(vars []catalog.Variation) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(fmt.Sprintf("Article %s has %d variations", vars[0].ArticleNo, len(vars)))
	tw.AppendHeader(table.Row{"#", "Article", "Category", "Description", "Collection", "Color", "Position"})
	for i, v := range vars {
		colorLabel := v.Color
		if v.ColorName != "" {
			colorLabel = v.Color + " - " + v.ColorName
		}
		tw.AppendRow(table.Row{i + 1, v.ArticleNo, v.Category, v.Description, v.Collection, colorLabel, v.Position.Label()})
	}
	return tw.Render()
}
