package main

import (
	"log"

	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/ui"
)

// TUICmd opens the interactive client
type TUICmd struct {
	NoHistory bool `help:"Do not read or record request history."`
}

func (c *TUICmd) Run(rc *runContext) error {
	closeLog, err := setupTUILogging(rc.cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	var h *history.History
	if !c.NoHistory {
		h, err = rc.openHistory()
		if err != nil {
			return err
		}
		defer h.Close()
	}

	app := ui.NewApplication(ui.Options{
		Config:  rc.cfg,
		History: h,
		Client:  rc.client(),
		Version: version,
	})
	if err := app.Run(); err != nil {
		log.Printf("tui: %v", err)
		return err
	}
	return nil
}
