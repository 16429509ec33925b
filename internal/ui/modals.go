package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/filter"
	"github.com/cnharrison/zirest/internal/har"
	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/util"
)

// showModal centers content over the main layout. height 0 lets the modal
// take a proportional share of the screen.
func (app *Application) showModal(content tview.Primitive, height int) {
	proportion := 0
	if height == 0 {
		proportion = 2
	}

	container := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(content, 0, modalWidthRatio, true).
			AddItem(nil, 0, 1, false),
			height, proportion, true).
		AddItem(nil, 0, 1, false)

	app.modalOpen = true
	app.pages.AddPage(pageModal, container, true, true)
	app.app.SetFocus(content)
}

// closeModal removes the modal and gives focus back to the main layout
func (app *Application) closeModal() {
	app.pages.RemovePage(pageModal)
	app.modalOpen = false
	app.refreshHistoryList = nil
	app.app.SetFocus(app.focusTarget())
	app.updateFocusStyles()
}

// showHelpModal displays the help modal
func (app *Application) showHelpModal() {
	helpText := `[yellow]zirest - Command Help[white]

[yellow]Request:[white]
  [cyan]Enter[white]        Send (in the URL field)
  [cyan]F5 / Ctrl+S[white]  Send the request
  [cyan]Esc[white]          Cancel the request in flight
  [cyan]F3[white]           Toggle body mode (JSON / Raw)
  [cyan]Tab[white]          In JSON mode, quote the key before the cursor
  [cyan]F9[white]           Edit the body in $EDITOR
  [cyan]F12[white]          Paste a URL from the clipboard

[yellow]Navigation:[white]
  [cyan]F4[white]           Next request tab (Body, Query, Headers)
  [cyan]F6[white]           Next response tab (Body, Tree, Headers)
  [cyan]F7[white]           Cycle focus: URL, method, request, response
  [cyan]Ctrl+D/U[white]     Page down/up in the response body
  [cyan]Enter[white]        Expand or collapse a tree node

[yellow]Query and headers:[white]
  One per line, [cyan]key=value[white] or [cyan]Name: Value[white]. Lines starting with # are ignored.

[yellow]Actions:[white]
  [cyan]F2[white]           Request history
  [cyan]F8[white]           Copy modal - copy parts of the last exchange
  [cyan]F10[white]          Save the last exchange as a HAR file
  [cyan]Ctrl+C[white]       Quit application`

	helpView := tview.NewTextView()
	helpView.SetDynamicColors(true)
	helpView.SetText(helpText)
	helpView.SetBorder(true)
	helpView.SetTitle(" 🆘 Help ")
	helpView.SetTitleAlign(tview.AlignCenter)
	helpView.SetBorderColor(tcell.ColorYellow)

	helpView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyF1 {
			app.closeModal()
			return nil
		}
		return event
	})

	app.showModal(helpView, 0)
}

// showHistoryModal lists remembered requests with search, method filter and
// ordering. Selecting an entry loads it into the input bar.
func (app *Application) showHistoryModal() {
	if app.history == nil {
		app.showStatusMessage("History is disabled")
		return
	}

	search := tview.NewInputField().
		SetLabel("Search: ").
		SetText(app.historyFilter.FilterText).
		SetFieldBackgroundColor(tcell.ColorDefault)
	list := tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true)
	hint := tview.NewTextView().SetDynamicColors(true)

	var shown []history.Item
	refresh := func() {
		items := app.history.Items()
		shown = shown[:0]
		for _, idx := range app.historyFilter.FilterItems(items) {
			shown = append(shown, items[idx])
		}

		current := list.GetCurrentItem()
		list.Clear()
		if len(shown) == 0 {
			list.AddItem("[gray]"+history.EmptyLabel(app.historyFilter.FilterText)+"[-]", "", 0, nil)
		}
		now := time.Now()
		for _, item := range shown {
			list.AddItem(fmt.Sprintf("[cyan]%-6s[-] %s  [gray]%s[-]",
				item.Method, tview.Escape(item.URL), util.RelativeTime(item.Time(), now)), "", 0, nil)
		}
		if current < list.GetItemCount() {
			list.SetCurrentItem(current)
		}

		order := "newest first"
		if app.historyFilter.OldestFirst {
			order = "oldest first"
		}
		hint.SetText(fmt.Sprintf(" [gray]%d of %d | method: [yellow]%s[gray] | %s | "+
			"Enter load  d delete  m method  o order  x export  / search  Esc close[-]",
			len(shown), len(items), filterLabel(app.historyFilter.ActiveMethodFilter), order))
	}

	selected := func() (history.Item, bool) {
		i := list.GetCurrentItem()
		if i < 0 || i >= len(shown) {
			return history.Item{}, false
		}
		return shown[i], true
	}

	search.SetChangedFunc(func(text string) {
		app.historyFilter.SetTextFilter(text)
		refresh()
	})
	search.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEscape:
			app.closeModal()
		default:
			app.app.SetFocus(list)
		}
	})

	list.SetSelectedFunc(func(int, string, string, rune) {
		if item, ok := selected(); ok {
			app.closeModal()
			app.loadHistoryItem(item.Method, item.URL)
		}
	})
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			app.closeModal()
			return nil
		}
		switch event.Rune() {
		case 'q':
			app.closeModal()
			return nil
		case '/':
			app.app.SetFocus(search)
			return nil
		case 'd':
			if item, ok := selected(); ok {
				if _, err := app.history.Remove(item.Method, item.URL); err != nil {
					app.showStatusMessage(apperrors.UserFriendlyError(err))
				}
				refresh()
			}
			return nil
		case 'm':
			app.historyFilter.CycleMethodFilter()
			refresh()
			return nil
		case 'o':
			app.historyFilter.ToggleOldestFirst()
			refresh()
			return nil
		case 'x':
			app.exportHistory(shown)
			return nil
		}
		return event
	})

	content := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(search, 1, 0, false).
		AddItem(list, 0, 1, true).
		AddItem(hint, 1, 0, false)
	content.SetBorder(true).
		SetTitle(" 🕘 History ").
		SetTitleAlign(tview.AlignCenter).
		SetBorderColor(tcell.ColorTeal)

	refresh()
	app.refreshHistoryList = refresh
	app.showModal(content, 0)
	app.app.SetFocus(list)
}

// exportHistory writes items as request-only HAR entries named after the
// active history filters
func (app *Application) exportHistory(items []history.Item) {
	if len(items) == 0 {
		app.showStatusMessage("Nothing to export")
		return
	}
	filename := app.historyFilter.GenerateFilteredFilename("history", time.Now())
	if err := har.WriteFile(filename, har.NewFile(app.version, har.FromHistory(items))); err != nil {
		app.showStatusMessage(apperrors.UserFriendlyError(err))
		return
	}
	app.showStatusMessage(fmt.Sprintf("Exported %d requests to %s", len(items), filename))
}

// showCopyModal displays the copy options modal
func (app *Application) showCopyModal() {
	if app.last == nil {
		app.showStatusMessage(apperrors.UserFriendlyError(apperrors.ErrNoResponse))
		return
	}

	var copyText strings.Builder
	copyText.WriteString("Select content to copy to clipboard:\n\n")
	for _, choice := range copyChoices {
		copyText.WriteString(fmt.Sprintf("[yellow]%c[white] - %s\n", choice.key, choice.label))
	}
	copyText.WriteString("[yellow]q[white] - Cancel")

	copyView := tview.NewTextView()
	copyView.SetDynamicColors(true)
	copyView.SetText(copyText.String())
	copyView.SetTextAlign(tview.AlignCenter)
	copyView.SetBorder(true)
	copyView.SetTitle(" 📋 Copy to Clipboard ")
	copyView.SetTitleAlign(tview.AlignCenter)
	copyView.SetBorderColor(tcell.ColorTeal)

	copyView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.closeModal()
			return nil
		}
		for _, choice := range copyChoices {
			if event.Rune() == choice.key {
				app.closeModal()
				app.copyToClipboard(choice)
				return nil
			}
		}
		return event
	})

	app.showModal(copyView, len(copyChoices)+6)
}

// filterLabel describes the method filter in the history hint
func filterLabel(method string) string {
	if method == filter.MethodAll {
		return "all methods"
	}
	return method
}
