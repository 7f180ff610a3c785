package main

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"tunedex/internal/catalog"
)

var trackHeaders = []string{"#", "Title", "Artist", "Album", "Length", "Explicit"}

func renderTrackTable(tracks []catalog.Track) string {
	tw := table.NewWriter()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, len(trackHeaders))
	for i, h := range trackHeaders {
		header[i] = h
	}
	tw.AppendHeader(header)

	for i, t := range tracks {
		explicit := ""
		if t.IsExplicit {
			explicit = "yes"
		}
		tw.AppendRow(table.Row{i + 1, t.Title, t.Artist, t.AlbumName, t.Duration, explicit})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
