package ui

import (
	"github.com/rivo/tview"
)

// createLayout builds the main application layout
func (app *Application) createLayout() {
	app.inputBar = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(app.methodDrop, 9, 0, false).
		AddItem(app.urlInput, 0, 1, true)
	app.inputBar.SetBorder(true).SetTitle(" Request ").SetTitleAlign(tview.AlignLeft)

	bodyPage := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(app.bodyEditor, 0, editorWidthRatio, true).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(app.bodyPreview, 0, 1, false).
			AddItem(app.validityLine, 1, 0, false), 0, previewWidthRatio, false)

	app.requestTabs.AddPage(pageBody, bodyPage, true, true)
	app.requestTabs.AddPage(pageQuery, app.queryEditor, true, false)
	app.requestTabs.AddPage(pageHeaders, app.headersEditor, true, false)

	app.requestPane = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(app.requestTabBar, 1, 0, false).
		AddItem(app.requestTabs, 0, 1, true)

	app.responsePane = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(app.statusLine, 1, 0, false).
		AddItem(app.responseTabBar, 1, 0, false).
		AddItem(app.responseTabs, 0, 1, false)

	app.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(app.inputBar, inputBarHeight, 0, true).
		AddItem(app.requestPane, 0, requestPaneRatio, false).
		AddItem(app.responsePane, 0, responsePaneRatio, false).
		AddItem(app.bottomBar, 1, 0, false)

	app.pages = tview.NewPages().AddPage(pageMain, app.layout, true, true)
}
