package render

import (
	"bytes"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/httpclient"
	"github.com/cnharrison/zirest/internal/util"
)

const maxURLWidth = 80

func newTable(buf *bytes.Buffer) *tablewriter.Table {
	return tablewriter.NewTable(buf,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Left: tw.On, Right: tw.On, Top: tw.On, Bottom: tw.On},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.On, BetweenRows: tw.Off},
			},
		}),
	)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// HeadersTable lists response headers alphabetically.
func (r *Renderer) HeadersTable(headers map[string]string) string {
	var buf bytes.Buffer
	table := newTable(&buf)
	table.Header([]string{"Header", "Value"})

	for _, name := range httpclient.SortedHeaderKeys(headers) {
		table.Append([]string{r.Paint(name, r.palette.Key), headers[name]})
	}
	table.Render()
	return buf.String()
}

// HistoryTable lists history items newest first with a relative age.
func (r *Renderer) HistoryTable(items []history.Item, now time.Time) string {
	var buf bytes.Buffer
	table := newTable(&buf)
	table.Header([]string{"#", "Method", "URL", "When"})

	for i, item := range items {
		table.Append([]string{
			strconv.Itoa(i + 1),
			r.Paint(item.Method, r.methodColor(item.Method)),
			truncate(item.URL, maxURLWidth),
			util.RelativeTime(item.Time(), now),
		})
	}
	table.Render()
	return buf.String()
}

func (r *Renderer) methodColor(method string) string {
	switch method {
	case "GET":
		return r.palette.Comment
	case "POST":
		return r.palette.String
	case "PUT", "PATCH":
		return r.palette.Boolean
	case "DELETE":
		return r.palette.Error
	}
	return r.palette.Punctuation
}
