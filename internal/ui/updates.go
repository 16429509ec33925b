package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/format"
	"github.com/cnharrison/zirest/internal/httpclient"
	"github.com/cnharrison/zirest/internal/jsontree"
	"github.com/cnharrison/zirest/internal/request"
)

// showEmptyResponse resets the response views to the empty state
func (app *Application) showEmptyResponse() {
	app.statusLine.SetText("")
	app.responseBody.SetText(fmt.Sprintf("[yellow]%s[-]\n[gray]%s[-]", emptyResponseTitle, emptyResponseHint))
	app.responseTree.SetRoot(tview.NewTreeNode(emptyResponseTitle).SetSelectable(false))
	app.responseHeads.Clear()
}

// showLoading replaces the response views with a loading indicator for req
func (app *Application) showLoading(req httpclient.Request) {
	app.responseBody.SetText(tview.Escape(loadingText(req.Method, req.URL)))
	app.responseBody.ScrollToBeginning()
	app.responseTree.SetRoot(tview.NewTreeNode("Loading...").SetSelectable(false))
	app.responseHeads.Clear()
	app.updateLoadingStatus()
}

// updateLoadingStatus advances the spinner in the status line
func (app *Application) updateLoadingStatus() {
	app.statusLine.SetText(fmt.Sprintf("[yellow]%s[-] Sending %s %s",
		spinnerFrame(app.animationFrame), app.pending.Method, tview.Escape(app.pending.URL)))
}

// showResponse records the exchange and renders resp in every response tab
func (app *Application) showResponse(req httpclient.Request, resp *httpclient.Response, started time.Time) {
	app.last = &exchange{req: req, resp: resp, started: started}

	app.statusLine.SetText(format.StatusLine(strconv.Itoa(resp.Status), resp.StatusText, resp.DurationMs(), resp.SizeBytes, true))

	body := resp.Text()
	if strings.TrimSpace(body) == "" {
		app.responseBody.SetText("[gray]No body content[-]")
	} else {
		contentType := app.formatter.DetectContentType(body, headerValue(resp.Headers, "Content-Type"))
		app.responseBody.SetText(app.formatter.FormatContent(body, contentType))
	}
	app.responseBody.ScrollToBeginning()

	if value, err := jsontree.Parse(resp.Body); err == nil {
		root := buildTree(value, app.formatter.Palette())
		app.responseTree.SetRoot(root).SetCurrentNode(root)
	} else {
		app.responseTree.SetRoot(tview.NewTreeNode("Response body is not JSON").SetSelectable(false))
	}

	app.fillHeadersTable(resp.Headers)
}

// showSendError records a failed exchange and shows err in the response views
func (app *Application) showSendError(req httpclient.Request, err error, started time.Time) {
	if errors.Is(err, context.Canceled) {
		app.statusLine.SetText("[gray]● Cancelled[-]")
		app.responseBody.SetText("[gray]Request cancelled[-]")
		app.responseTree.SetRoot(tview.NewTreeNode("Request cancelled").SetSelectable(false))
		app.responseHeads.Clear()
		return
	}
	app.last = &exchange{req: req, err: err, started: started}
	app.showResponseError(err)
}

// showResponseError shows err in place of a response
func (app *Application) showResponseError(err error) {
	message := apperrors.UserFriendlyError(err)
	app.statusLine.SetText(format.StatusLine("ERR", "Error", 0, 0, false))
	app.responseBody.SetText(app.formatter.FormatError(message))
	app.responseTree.SetRoot(tview.NewTreeNode(message).SetSelectable(false))
	app.responseHeads.Clear()
}

func (app *Application) fillHeadersTable(headers map[string]string) {
	app.responseHeads.Clear()
	app.responseHeads.SetCell(0, 0, tview.NewTableCell("Header").SetTextColor(tcell.ColorYellow).SetSelectable(false))
	app.responseHeads.SetCell(0, 1, tview.NewTableCell("Value").SetTextColor(tcell.ColorYellow).SetSelectable(false))
	for i, name := range httpclient.SortedHeaderKeys(headers) {
		app.responseHeads.SetCell(i+1, 0, tview.NewTableCell(tview.Escape(name)).SetTextColor(tcell.ColorTeal))
		app.responseHeads.SetCell(i+1, 1, tview.NewTableCell(tview.Escape(headers[name])).SetExpansion(1))
	}
	app.responseHeads.ScrollToBeginning()
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// updateBodyPreview re-renders the highlighted preview and the validity line
func (app *Application) updateBodyPreview() {
	text := app.bodyEditor.GetText()

	if app.mode != request.ModeJSON {
		app.bodyPreview.SetText(tview.Escape(text))
		app.validityLine.SetText("[gray] Raw body, sent as typed[-]")
		return
	}

	ranges := app.formatter.Highlight(text)
	app.bodyPreview.SetText(format.Colorize(text, ranges, app.formatter.Palette()))
	_, cursor, _ := app.bodyEditor.GetSelection()
	switch {
	case strings.TrimSpace(text) == "":
		app.validityLine.SetText("[gray] Empty body[-]")
	case jsontree.Valid([]byte(text)):
		app.validityLine.SetText("[green] ✓ Valid JSON[-]" + bodyStats(ranges, cursor))
	default:
		app.validityLine.SetText("[red] ✗ Invalid JSON[-]" + bodyStats(ranges, cursor))
	}
}

// updateTabBars updates the request and response tab indicators
func (app *Application) updateTabBars() {
	app.requestTabBar.SetText(tabBarText(requestTabNames, app.currentRequestTab) +
		fmt.Sprintf("   [gray]Mode:[-] [yellow]%s[-]", modeLabel(app.mode)))
	app.responseTabBar.SetText(tabBarText(responseTabNames, app.currentResponseTab))
}

func tabBarText(names []string, current int) string {
	var tabText strings.Builder
	for i, name := range names {
		if i == current {
			tabText.WriteString(fmt.Sprintf("[black:white] %s [-:-]", name))
		} else {
			tabText.WriteString(fmt.Sprintf(" [blue]%s[-] ", name))
		}
		if i < len(names)-1 {
			tabText.WriteString(" │ ")
		}
	}
	return tabText.String()
}

// updateBottomBar updates the status/bottom bar
func (app *Application) updateBottomBar() {
	var statusText strings.Builder

	if time.Now().Before(app.confirmationEnd) && app.confirmationMessage != "" {
		pulse := []string{"●", "◐", "◑", "◒", "◓", "○"}
		pulseFrame := (app.animationFrame / pulseCycleFrames) % len(pulse)

		statusText.WriteString(fmt.Sprintf(" [yellow]%s [white]%s", pulse[pulseFrame], tview.Escape(app.confirmationMessage)))
	} else {
		app.confirmationMessage = ""
		statusText.WriteString("[cyan]F1[-] Help  [cyan]F2[-] History  [cyan]F3[-] Mode  [cyan]F4[-]/[cyan]F6[-] Tabs  " +
			"[cyan]F5[-] Send  [cyan]F7[-] Focus  [cyan]F8[-] Copy  [cyan]F9[-] $EDITOR  [cyan]F10[-] Save HAR")
		if app.sending {
			statusText.WriteString("  [yellow]Esc[-] Cancel")
		}
		if app.history != nil {
			statusText.WriteString(fmt.Sprintf(" | [gray]%d in history[-]", len(app.history.Items())))
		}
	}

	app.bottomBar.SetText(" " + statusText.String() + " ")
}

// updateFocusStyles updates the focus styling with blinking arrows
func (app *Application) updateFocusStyles() {
	arrow := app.getBlinkingArrows()

	titled := func(box *tview.Box, title string, focused bool) {
		if focused {
			box.SetBorderColor(tcell.ColorTeal)
			box.SetTitle(fmt.Sprintf(" [cyan]%s[white] %s ", arrow, title))
			return
		}
		box.SetBorderColor(tcell.ColorDarkGray)
		box.SetTitle(" " + title + " ")
	}

	titled(app.inputBar.Box, "Request", app.focusIndex == focusURL || app.focusIndex == focusMethod)

	bodyTitle := fmt.Sprintf("Editor (%s)", modeLabel(app.mode))
	titled(app.bodyEditor.Box, bodyTitle, app.focusIndex == focusRequest && app.currentRequestTab == 0)
	titled(app.queryEditor.Box, pageQuery, app.focusIndex == focusRequest && app.currentRequestTab == 1)
	titled(app.headersEditor.Box, pageHeaders, app.focusIndex == focusRequest && app.currentRequestTab == 2)

	titled(app.responseBody.Box, pageBody, app.focusIndex == focusResponse && app.currentResponseTab == 0)
	titled(app.responseTree.Box, pageTree, app.focusIndex == focusResponse && app.currentResponseTab == 1)
	titled(app.responseHeads.Box, pageHeaders, app.focusIndex == focusResponse && app.currentResponseTab == 2)
}
