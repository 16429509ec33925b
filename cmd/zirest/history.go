package main

import (
	"fmt"
	"time"

	"github.com/cnharrison/zirest/internal/filter"
	"github.com/cnharrison/zirest/internal/har"
	"github.com/cnharrison/zirest/internal/history"
)

// HistoryCmd groups the history subcommands
type HistoryCmd struct {
	List   HistoryListCmd   `cmd:"" default:"withargs" help:"List remembered requests, newest first."`
	Rm     HistoryRmCmd     `cmd:"" help:"Forget one request."`
	Clear  HistoryClearCmd  `cmd:"" help:"Forget every request."`
	Import HistoryImportCmd `cmd:"" help:"Add the requests of a HAR file to history."`
	Export HistoryExportCmd `cmd:"" help:"Write history as a HAR file."`
}

// HistoryFilter holds the flags shared by list and export
type HistoryFilter struct {
	Method      string `help:"Only show requests with this method." short:"m"`
	OldestFirst bool   `help:"List oldest requests first."`
}

func (f HistoryFilter) state(query string) *filter.FilterState {
	state := filter.NewFilterState()
	state.SetTextFilter(query)
	if f.Method != "" {
		state.SetMethodFilter(f.Method)
	}
	state.OldestFirst = f.OldestFirst
	return state
}

func filtered(items []history.Item, state *filter.FilterState) []history.Item {
	indices := state.FilterItems(items)
	out := make([]history.Item, 0, len(indices))
	for _, i := range indices {
		out = append(out, items[i])
	}
	return out
}

type HistoryListCmd struct {
	Query string `arg:"" optional:"" help:"Case-insensitive text to search method and URL for."`
	HistoryFilter `embed:""`
}

func (c *HistoryListCmd) Run(rc *runContext) error {
	h, err := rc.openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	items := filtered(h.Items(), c.state(c.Query))
	if len(items) == 0 {
		fmt.Fprintln(rc.stdout, history.EmptyLabel(c.Query))
		return nil
	}
	fmt.Fprint(rc.stdout, rc.renderer(false).HistoryTable(items, time.Now()))
	return nil
}

type HistoryRmCmd struct {
	Method string `arg:"" help:"Method of the request to forget."`
	URL    string `arg:"" help:"Exact URL of the request to forget."`
}

func (c *HistoryRmCmd) Run(rc *runContext) error {
	h, err := rc.openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	before := len(h.Items())
	items, err := h.Remove(c.Method, c.URL)
	if err != nil {
		return err
	}
	fmt.Fprintf(rc.stdout, "Removed %d request(s)\n", before-len(items))
	return nil
}

type HistoryClearCmd struct{}

func (c *HistoryClearCmd) Run(rc *runContext) error {
	h, err := rc.openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(rc.stdout, "History cleared")
	return nil
}

type HistoryImportCmd struct {
	File string `arg:"" help:"HAR file to import." type:"existingfile"`
}

func (c *HistoryImportCmd) Run(rc *runContext) error {
	imported, err := har.ReadHistoryItems(c.File, time.Now())
	if err != nil {
		return err
	}

	h, err := rc.openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	items, err := h.Import(imported)
	if err != nil {
		return err
	}
	fmt.Fprintf(rc.stdout, "Imported %d request(s), %d in history\n", len(imported), len(items))
	return nil
}

type HistoryExportCmd struct {
	File  string `arg:"" optional:"" help:"Output HAR file. Named after the filters when omitted." type:"path"`
	Query string `help:"Only export requests matching this text." short:"s"`
	HistoryFilter `embed:""`
}

func (c *HistoryExportCmd) Run(rc *runContext) error {
	h, err := rc.openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	state := c.state(c.Query)
	items := filtered(h.Items(), state)

	path := c.File
	if path == "" {
		path = state.GenerateFilteredFilename("history", time.Now())
	}
	if err := har.WriteFile(path, har.NewFile(version, har.FromHistory(items))); err != nil {
		return err
	}
	fmt.Fprintf(rc.stdout, "Exported %d request(s) to %s\n", len(items), path)
	return nil
}
