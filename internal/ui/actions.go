package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/export"
	"github.com/cnharrison/zirest/internal/har"
	"github.com/cnharrison/zirest/internal/request"
	"github.com/cnharrison/zirest/pkg/clipboard"
)

// currentDraft reads the request as the widgets show it
func (app *Application) currentDraft() *request.Draft {
	_, method := app.methodDrop.GetCurrentOption()
	return &request.Draft{
		Method:  method,
		URL:     app.urlInput.GetText(),
		Mode:    app.mode,
		Body:    app.bodyEditor.GetText(),
		Query:   request.ParsePairs(app.queryEditor.GetText()),
		Headers: request.ParsePairs(app.headersEditor.GetText()),
	}
}

// sendRequest records the request in history and sends it in the
// background. A newer send supersedes one still in flight.
func (app *Application) sendRequest() {
	draft := app.currentDraft()
	req, err := draft.Build()
	if err != nil {
		app.showResponseError(err)
		return
	}

	if app.history != nil {
		if _, err := app.history.Add(req.Method, strings.TrimSpace(draft.URL)); err != nil {
			log.Printf("history add: %v", err)
			app.showStatusMessage(apperrors.UserFriendlyError(err))
		}
	}

	if app.inFlight != nil {
		app.inFlight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	app.inFlight = cancel
	app.sendSeq++
	seq := app.sendSeq
	app.sending = true
	app.pending = req
	app.showLoading(req)

	started := time.Now()
	go func() {
		resp, err := app.client.Do(ctx, req)
		app.app.QueueUpdateDraw(func() {
			if seq != app.sendSeq {
				return
			}
			app.sending = false
			app.inFlight = nil
			cancel()
			if err != nil {
				app.showSendError(req, err, started)
				return
			}
			app.showResponse(req, resp, started)
		})
	}()
}

// cancelRequest aborts the request in flight
func (app *Application) cancelRequest() {
	if app.inFlight == nil {
		return
	}
	app.inFlight()
	app.showStatusMessage("Request cancelled")
}

// loadHistoryItem puts a remembered method and URL back in the input bar
func (app *Application) loadHistoryItem(method, rawURL string) {
	if m, err := request.NormalizeMethod(method); err == nil {
		app.methodDrop.SetCurrentOption(methodIndex(m))
	}
	app.urlInput.SetText(rawURL)
	app.focusIndex = focusURL
	app.app.SetFocus(app.urlInput)
	app.updateFocusStyles()
}

// lastEntry returns the last exchange as a HAR entry
func (app *Application) lastEntry() (har.Entry, error) {
	if app.last == nil {
		return har.Entry{}, apperrors.ErrNoResponse
	}
	return har.NewEntry(app.last.req, app.last.resp, app.last.started), nil
}

// saveExchangeHAR writes the last exchange to a HAR file in the working directory
func (app *Application) saveExchangeHAR() {
	entry, err := app.lastEntry()
	if err != nil {
		app.showStatusMessage(apperrors.UserFriendlyError(err))
		return
	}

	filename := har.GenerateDescriptiveFilename(entry.Request.Method, entry.Request.URL, ".har")
	if err := har.WriteFile(filename, har.NewFile(app.version, []har.Entry{entry})); err != nil {
		app.showStatusMessage(apperrors.UserFriendlyError(err))
		return
	}
	app.showStatusMessage(fmt.Sprintf("Saved exchange to %s", filename))
}

// copyContent is one choice of the copy modal
type copyContent struct {
	key         rune
	label       string
	description string
	content     func(entry har.Entry) string
}

var copyChoices = []copyContent{
	{'1', "Request URL", "Request URL copied", func(e har.Entry) string { return e.Request.URL }},
	{'2', "Response Body", "Response body copied", func(e har.Entry) string { return e.BodyText() }},
	{'3', "cURL Command", "cURL command copied", export.GenerateCurlCommand},
	{'4', "Markdown Summary", "Markdown summary copied", export.GenerateMarkdownSummary},
	{'5', "Request Body", "Request body copied", func(e har.Entry) string {
		if e.Request.PostData == nil {
			return ""
		}
		return e.Request.PostData.Text
	}},
	{'6', "Response Headers (JSON)", "Response headers copied", func(e har.Entry) string {
		data, _ := json.MarshalIndent(e.Response.Headers, "", "  ")
		return string(data)
	}},
}

// copyToClipboard copies one part of the last exchange
func (app *Application) copyToClipboard(choice copyContent) {
	entry, err := app.lastEntry()
	if err != nil {
		app.showStatusMessage(apperrors.UserFriendlyError(err))
		return
	}

	content := choice.content(entry)
	if content == "" {
		app.showStatusMessage(choice.label + " is empty - nothing to copy")
		return
	}
	if err := clipboard.CopyToClipboard(content); err != nil {
		app.showStatusMessage(fmt.Sprintf("Clipboard error: %v", err))
		return
	}
	app.showStatusMessage(choice.description + " to clipboard!")
}

// pasteURL replaces the URL field with the first line on the clipboard
func (app *Application) pasteURL() {
	content, err := clipboard.ReadFromClipboard()
	if err != nil {
		app.showStatusMessage(fmt.Sprintf("Clipboard error: %v", err))
		return
	}
	app.setURLFromClipboard(content)
}

func (app *Application) setURLFromClipboard(content string) {
	url := firstLine(content)
	if url == "" {
		app.showStatusMessage("Clipboard is empty - nothing to paste")
		return
	}
	app.urlInput.SetText(url)
	app.showStatusMessage("Pasted URL from clipboard")
}

// editBodyInEditor suspends the UI, opens the request body in $EDITOR and
// loads the saved text back into the body editor
func (app *Application) editBodyInEditor() {
	contentType := ""
	for _, h := range request.ParsePairs(app.headersEditor.GetText()) {
		if strings.EqualFold(h.Key, "Content-Type") {
			contentType = h.Value
		}
	}
	if app.mode == request.ModeJSON {
		contentType = request.ContentTypeJSON
	}
	extension := extensionForContentType(contentType)

	var edited string
	var err error
	app.app.Suspend(func() {
		edited, err = export.OpenInEditor(app.bodyEditor.GetText(), extension)
	})
	if err != nil {
		app.showStatusMessage(fmt.Sprintf("Editor error: %v", err))
		return
	}

	app.bodyEditor.SetText(strings.TrimRight(edited, "\n"), true)
	app.updateBodyPreview()
	app.showStatusMessage("Body updated from editor")
}
