package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cnharrison/zirest/internal/httpclient"
	"github.com/cnharrison/zirest/internal/request"
)

// setupUI creates and configures all UI components
func (app *Application) setupUI() {
	// Configure tview for transparent background
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorDefault
	tview.Styles.ContrastBackgroundColor = tcell.ColorDefault

	app.createComponents()
	app.styleComponents()
	app.createLayout()
}

// createComponents initializes all UI components
func (app *Application) createComponents() {
	draft := request.NewDraft(app.cfg.Request.DefaultMethod, app.cfg.Request.DefaultURL)

	// Input bar: method menu and URL entry
	app.methodDrop = tview.NewDropDown().
		SetOptions(httpclient.Methods, nil).
		SetCurrentOption(methodIndex(draft.Method))
	app.methodDrop.SetFieldWidth(7)

	app.urlInput = tview.NewInputField().
		SetText(draft.URL).
		SetFieldWidth(0).
		SetPlaceholder("https://example.com/api")

	// Request editors
	app.bodyEditor = tview.NewTextArea().
		SetPlaceholder("Request body").
		SetWrap(true)
	app.bodyPreview = tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetWordWrap(false)
	app.validityLine = tview.NewTextView().SetDynamicColors(true)

	app.queryEditor = tview.NewTextArea().SetPlaceholder("One parameter per line:\nkey=value")
	app.headersEditor = tview.NewTextArea().SetPlaceholder("One header per line:\nAuthorization: Bearer token")

	app.requestTabs = tview.NewPages()
	app.requestTabBar = tview.NewTextView().SetDynamicColors(true)

	// Response views
	app.statusLine = tview.NewTextView().SetDynamicColors(true)
	app.responseBody = tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetWordWrap(false)
	app.responseBody.SetScrollable(true)

	app.responseTree = tview.NewTreeView().SetGraphics(true)
	app.responseTree.SetGraphicsColor(tcell.ColorDarkGray)

	app.responseHeads = tview.NewTable().SetBorders(false).SetSelectable(true, false).SetFixed(1, 0)

	app.responseTabs = tview.NewPages()
	app.responseTabs.AddPage(pageBody, app.responseBody, true, true)
	app.responseTabs.AddPage(pageTree, app.responseTree, true, false)
	app.responseTabs.AddPage(pageHeaders, app.responseHeads, true, false)
	app.responseTabBar = tview.NewTextView().SetDynamicColors(true)

	// Status/bottom bar
	app.bottomBar = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignLeft)
}

// styleComponents applies styling to all components
func (app *Application) styleComponents() {
	app.methodDrop.SetLabel("").
		SetFieldBackgroundColor(tcell.ColorDarkBlue).
		SetFieldTextColor(tcell.ColorYellow)
	app.urlInput.SetFieldBackgroundColor(tcell.ColorDefault).
		SetPlaceholderTextColor(tcell.ColorDarkGray)

	app.bodyEditor.SetBorder(true).SetTitle(" Editor ").SetTitleAlign(tview.AlignLeft)
	app.bodyPreview.SetBorder(true).SetTitle(" Preview ").SetTitleAlign(tview.AlignLeft).SetBorderColor(tcell.ColorDarkGray)
	app.queryEditor.SetBorder(true).SetTitle(" Query ").SetTitleAlign(tview.AlignLeft)
	app.headersEditor.SetBorder(true).SetTitle(" Headers ").SetTitleAlign(tview.AlignLeft)

	app.responseBody.SetBorder(true).SetTitle(" Body ").SetTitleAlign(tview.AlignLeft)
	app.responseTree.SetBorder(true).SetTitle(" Tree ").SetTitleAlign(tview.AlignLeft)
	app.responseHeads.SetBorder(true).SetTitle(" Headers ").SetTitleAlign(tview.AlignLeft)
	app.responseHeads.SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorYellow))
}

// methodIndex returns the menu position of method, or 0 for GET.
func methodIndex(method string) int {
	for i, m := range httpclient.Methods {
		if m == method {
			return i
		}
	}
	return 0
}
