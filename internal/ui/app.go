package ui

import (
	"context"
	"time"

	"github.com/rivo/tview"

	"github.com/cnharrison/zirest/internal/config"
	"github.com/cnharrison/zirest/internal/filter"
	"github.com/cnharrison/zirest/internal/format"
	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/httpclient"
	"github.com/cnharrison/zirest/internal/request"
)

const (
	// Animation and timing constants
	animationIntervalMs      = 150
	statusMessageDurationSec = 4
	animationCycleFrames     = 6
	pulseCycleFrames         = 3
	previewDebounceMs        = 150

	// Layout constants
	inputBarHeight    = 3
	requestPaneRatio  = 2
	responsePaneRatio = 3
	previewWidthRatio = 1
	editorWidthRatio  = 1
	modalWidthRatio   = 2
)

const (
	pageBody    = "Body"
	pageQuery   = "Query"
	pageHeaders = "Headers"
	pageTree    = "Tree"

	pageMain  = "main"
	pageModal = "modal"
)

var (
	requestTabNames  = []string{pageBody, pageQuery, pageHeaders}
	responseTabNames = []string{pageBody, pageTree, pageHeaders}
)

// Options are the collaborators the interactive client needs.
type Options struct {
	Config  *config.Config
	History *history.History
	Client  *httpclient.Client
	Version string
}

// exchange is the most recent send: what went out, what came back and when.
type exchange struct {
	req     httpclient.Request
	resp    *httpclient.Response
	err     error
	started time.Time
}

// Application is the interactive REST client
type Application struct {
	cfg       *config.Config
	history   *history.History
	client    *httpclient.Client
	version   string
	app       *tview.Application
	formatter *format.ContentFormatter

	// Request state
	mode     request.Mode
	inFlight context.CancelFunc
	sendSeq  int
	sending  bool
	pending  httpclient.Request
	last     *exchange

	// UI state
	focusIndex         int
	currentRequestTab  int
	currentResponseTab int
	animationFrame     int
	modalOpen          bool
	previewTimer       *time.Timer
	historyFilter      *filter.FilterState
	refreshHistoryList func()

	// Confirmation/status messages
	confirmationMessage string
	confirmationEnd     time.Time

	// UI components
	inputBar       *tview.Flex
	methodDrop     *tview.DropDown
	urlInput       *tview.InputField
	requestTabBar  *tview.TextView
	requestTabs    *tview.Pages
	bodyEditor     *tview.TextArea
	bodyPreview    *tview.TextView
	validityLine   *tview.TextView
	queryEditor    *tview.TextArea
	headersEditor  *tview.TextArea
	statusLine     *tview.TextView
	responseTabBar *tview.TextView
	responseTabs   *tview.Pages
	responseBody   *tview.TextView
	responseTree   *tview.TreeView
	responseHeads  *tview.Table
	bottomBar      *tview.TextView
	requestPane    *tview.Flex
	responsePane   *tview.Flex
	layout         *tview.Flex
	pages          *tview.Pages
}

// NewApplication creates the client with its initial draft from the config
func NewApplication(opts Options) *Application {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	return &Application{
		cfg:           cfg,
		history:       opts.History,
		client:        opts.Client,
		version:       opts.Version,
		app:           tview.NewApplication(),
		formatter:     format.NewContentFormatter(format.PaletteFromConfig(cfg.Highlight.Colors), cfg.Highlight.StructuralKeys),
		mode:          request.ParseMode(cfg.Request.DefaultMode),
		historyFilter: filter.NewFilterState(),
	}
}

// Run starts the TUI application and blocks until it exits
func (app *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.setupUI()
	app.setupEventHandling()
	app.startAnimationLoop(ctx)
	app.startHistoryWatcher(ctx)

	app.showEmptyResponse()
	app.updateBodyPreview()
	app.updateTabBars()
	app.updateFocusStyles()
	app.updateBottomBar()

	err := app.app.SetRoot(app.pages, true).SetFocus(app.urlInput).Run()
	if app.inFlight != nil {
		app.inFlight()
	}
	return err
}

// showStatusMessage shows a temporary status message
func (app *Application) showStatusMessage(msg string) {
	app.confirmationMessage = msg
	app.confirmationEnd = time.Now().Add(statusMessageDurationSec * time.Second)
	app.updateBottomBar()
}
