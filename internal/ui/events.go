package ui

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/request"
)

// setupEventHandling configures all event handlers
func (app *Application) setupEventHandling() {
	app.urlInput.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			app.sendRequest()
		}
	})

	app.bodyEditor.SetChangedFunc(app.scheduleBodyPreview)
	app.bodyEditor.SetMovedFunc(app.scheduleBodyPreview)
	app.bodyEditor.SetInputCapture(app.handleBodyEditorKey)
	app.queryEditor.SetInputCapture(insertSpacesOnTab(app.queryEditor))
	app.headersEditor.SetInputCapture(insertSpacesOnTab(app.headersEditor))

	app.responseTree.SetSelectedFunc(app.toggleTreeNode)

	app.app.SetInputCapture(app.handleInput)
}

// handleBodyEditorKey turns Tab into JSON key auto-quoting in JSON mode and
// into two spaces otherwise. Shift+Tab and Tab over a selection fall through.
func (app *Application) handleBodyEditorKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyTab || event.Modifiers()&tcell.ModShift != 0 {
		return event
	}
	if app.bodyEditor.HasSelection() {
		return event
	}

	_, cursor, _ := app.bodyEditor.GetSelection()
	if app.mode == request.ModeJSON {
		text := app.bodyEditor.GetText()
		if next, pos, ok := request.AutoQuoteKey(text, cursor); ok {
			app.bodyEditor.SetText(next, false)
			app.bodyEditor.Select(pos, pos)
			app.scheduleBodyPreview()
			return nil
		}
	}

	app.bodyEditor.Replace(cursor, cursor, "  ")
	app.bodyEditor.Select(cursor+2, cursor+2)
	return nil
}

// scheduleBodyPreview re-highlights the body preview once typing pauses.
func (app *Application) scheduleBodyPreview() {
	if app.previewTimer != nil {
		app.previewTimer.Stop()
	}
	app.previewTimer = time.AfterFunc(previewDebounceMs*time.Millisecond, func() {
		app.app.QueueUpdateDraw(app.updateBodyPreview)
	})
}

// startAnimationLoop drives the loading spinner, focus arrows and status
// message expiry
func (app *Application) startAnimationLoop(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(animationIntervalMs * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.app.QueueUpdateDraw(func() {
					app.animationFrame++
					app.updateFocusStyles()
					app.updateBottomBar()
					if app.sending {
						app.updateLoadingStatus()
					}
				})
			}
		}
	}()
}

// startHistoryWatcher reloads history when another process rewrites it
func (app *Application) startHistoryWatcher(ctx context.Context) {
	if app.history == nil || !app.cfg.History.Watch {
		return
	}
	path := app.history.Store().Path()

	go func() {
		err := history.Watch(ctx, path, func() {
			app.app.QueueUpdateDraw(func() {
				app.history.Reload()
				if app.refreshHistoryList != nil {
					app.refreshHistoryList()
				}
			})
		})
		if err != nil {
			log.Printf("history watch %s: %v", path, err)
		}
	}()
}
