package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// handleInput handles the global function keys. While a modal is open only
// Ctrl+C is intercepted; everything else goes to the modal.
func (app *Application) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if app.modalOpen {
		return event
	}

	switch event.Key() {
	case tcell.KeyF1:
		app.showHelpModal()
		return nil
	case tcell.KeyF2:
		app.showHistoryModal()
		return nil
	case tcell.KeyF3:
		app.toggleMode()
		return nil
	case tcell.KeyF4:
		app.switchRequestTab(1)
		return nil
	case tcell.KeyF5, tcell.KeyCtrlS:
		app.sendRequest()
		return nil
	case tcell.KeyF6:
		app.switchResponseTab(1)
		return nil
	case tcell.KeyF7:
		app.cycleFocus(1)
		return nil
	case tcell.KeyF8:
		app.showCopyModal()
		return nil
	case tcell.KeyF9:
		app.editBodyInEditor()
		return nil
	case tcell.KeyF10:
		app.saveExchangeHAR()
		return nil
	case tcell.KeyF12:
		app.pasteURL()
		return nil
	case tcell.KeyEscape:
		if app.sending {
			app.cancelRequest()
			return nil
		}
	}

	// Scrolling keys for the response views, only when they have focus
	if app.focusIndex == focusResponse && app.currentResponseTab == 0 {
		switch event.Key() {
		case tcell.KeyCtrlD:
			row, _ := app.responseBody.GetScrollOffset()
			app.responseBody.ScrollTo(row+10, 0)
			return nil
		case tcell.KeyCtrlU:
			row, _ := app.responseBody.GetScrollOffset()
			app.responseBody.ScrollTo(max(row-10, 0), 0)
			return nil
		}
	}

	return event
}

const (
	focusURL = iota
	focusMethod
	focusRequest
	focusResponse
	focusCount
)

// cycleFocus moves between the URL entry, the method menu, the active
// request editor and the active response view.
func (app *Application) cycleFocus(step int) {
	app.focusIndex = (app.focusIndex + step + focusCount) % focusCount
	app.app.SetFocus(app.focusTarget())
	app.updateFocusStyles()
}

func (app *Application) focusTarget() tview.Primitive {
	switch app.focusIndex {
	case focusMethod:
		return app.methodDrop
	case focusRequest:
		return app.requestEditor()
	case focusResponse:
		return app.responseView()
	}
	return app.urlInput
}

// requestEditor returns the editor of the visible request tab
func (app *Application) requestEditor() *tview.TextArea {
	switch requestTabNames[app.currentRequestTab] {
	case pageQuery:
		return app.queryEditor
	case pageHeaders:
		return app.headersEditor
	}
	return app.bodyEditor
}

// responseView returns the primitive of the visible response tab
func (app *Application) responseView() tview.Primitive {
	switch responseTabNames[app.currentResponseTab] {
	case pageTree:
		return app.responseTree
	case pageHeaders:
		return app.responseHeads
	}
	return app.responseBody
}

func (app *Application) switchRequestTab(step int) {
	app.currentRequestTab = nextIndex(app.currentRequestTab, step, len(requestTabNames))
	app.requestTabs.SwitchToPage(requestTabNames[app.currentRequestTab])
	if app.focusIndex == focusRequest {
		app.app.SetFocus(app.requestEditor())
	}
	app.updateTabBars()
	app.updateFocusStyles()
}

func (app *Application) switchResponseTab(step int) {
	app.currentResponseTab = nextIndex(app.currentResponseTab, step, len(responseTabNames))
	app.responseTabs.SwitchToPage(responseTabNames[app.currentResponseTab])
	if app.focusIndex == focusResponse {
		app.app.SetFocus(app.responseView())
	}
	app.updateTabBars()
	app.updateFocusStyles()
}

func (app *Application) toggleMode() {
	app.mode = app.mode.Toggle()
	app.updateBodyPreview()
	app.updateTabBars()
	app.showStatusMessage("Body mode: " + modeLabel(app.mode))
}
