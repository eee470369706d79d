package main

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sells-group/catalog-resolver/internal/model"
	"github.com/sells-group/catalog-resolver/internal/resolve"
)

// renderSummary formats a batch summary as an outcome table.
func renderSummary(s resolve.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("run %s (%s)", s.RunID, s.Duration.Round(time.Millisecond))
	tw.AppendHeader(table.Row{"Status", "Records"})

	for _, status := range model.AllStatuses() {
		tw.AppendRow(table.Row{string(status), humanize.Comma(int64(s.Count(status)))})
	}
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"processed", humanize.Comma(int64(s.Processed))})
	tw.AppendRow(table.Row{"untouched", humanize.Comma(int64(s.Total - s.Processed))})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
