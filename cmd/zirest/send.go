package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/format"
	"github.com/cnharrison/zirest/internal/highlight"
	"github.com/cnharrison/zirest/internal/jsontree"
	"github.com/cnharrison/zirest/internal/render"
	"github.com/cnharrison/zirest/internal/request"
)

// SendCmd sends one request
type SendCmd struct {
	Method string   `arg:"" help:"HTTP method (GET, POST, PUT, PATCH, DELETE)."`
	URL    string   `arg:"" help:"Request URL. https:// is assumed when no scheme is given."`
	Items  []string `arg:"" optional:"" help:"Request items: Header:Value, name==query, field=string, field:=json."`

	Data       string   `help:"Request body. @FILE reads a file, @- reads stdin." short:"d"`
	Header     []string `help:"Extra header as 'Name: Value'." short:"H"`
	Query      []string `help:"Extra query parameter as key=value." short:"q"`
	Raw        bool     `help:"Send the body as typed, without a JSON content type."`
	Filter     string   `help:"Print only this gjson path of a JSON response." short:"f"`
	Headers    bool     `help:"Print the response headers."`
	Tree       bool     `help:"Print the JSON response as a tree."`
	Depth      int      `help:"Expand the tree this many levels; 0 expands everything." default:"0"`
	NoColor    bool     `help:"Disable colours."`
	Structural bool     `help:"Classify object keys with the JSON syntax tree."`
	NoHistory  bool     `help:"Do not record the request in history."`
}

func (c *SendCmd) Run(rc *runContext) error {
	draft, err := c.draft(os.Stdin)
	if err != nil {
		return err
	}
	req, err := draft.Build()
	if err != nil {
		return err
	}

	if !c.NoHistory {
		h, err := rc.openHistory()
		if err != nil {
			return err
		}
		if _, err := h.Add(req.Method, strings.TrimSpace(draft.URL)); err != nil {
			log.Printf("history: %v", err)
		}
		h.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := rc.renderer(c.NoColor)
	resp, err := rc.client().Do(ctx, req)
	if err != nil {
		fmt.Fprintln(rc.stderr, r.ErrorLine(err))
		return err
	}

	fmt.Fprintln(rc.stderr, r.StatusLine(resp))
	if c.Headers {
		fmt.Fprint(rc.stdout, r.HeadersTable(resp.Headers))
	}

	body := resp.Text()
	if c.Filter != "" {
		result := gjson.Get(body, c.Filter)
		if !result.Exists() {
			return apperrors.NewInputError(fmt.Sprintf("filter %q matched nothing", c.Filter), nil)
		}
		body = result.Raw
	}

	out, err := renderBody(r, body, c.Tree, c.Depth, c.Structural || rc.cfg.Highlight.StructuralKeys)
	if err != nil {
		return err
	}
	fmt.Fprint(rc.stdout, out)
	return nil
}

// draft turns the arguments and flags into a request draft
func (c *SendCmd) draft(stdin io.Reader) (*request.Draft, error) {
	items, err := request.ParseItems(c.Items)
	if err != nil {
		return nil, err
	}

	draft := request.NewDraft(c.Method, c.URL)
	if _, err := request.NormalizeMethod(c.Method); err != nil {
		return nil, err
	}
	if c.Raw {
		draft.Mode = request.ModeRaw
	}

	draft.Body = items.Body
	if c.Data != "" {
		if items.Body != "" {
			return nil, apperrors.NewInputError("use either --data or body items, not both", nil)
		}
		if draft.Body, err = readData(c.Data, stdin); err != nil {
			return nil, err
		}
	}

	draft.Headers = append(items.Headers, request.ParsePairs(strings.Join(c.Header, "\n"))...)
	draft.Query = append(items.Query, request.ParsePairs(strings.Join(c.Query, "\n"))...)
	return draft, nil
}

// readData resolves the --data value: literal text, @- for stdin or @FILE
func readData(value string, stdin io.Reader) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}

	var data []byte
	var err error
	if value == "@-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(value[1:])
	}
	if err != nil {
		return "", apperrors.NewInputError(fmt.Sprintf("cannot read body from %s", value[1:]), err)
	}
	return string(data), nil
}

// renderBody prints JSON pretty and highlighted, or as a tree, and anything
// else as it is
func renderBody(r *render.Renderer, body string, tree bool, depth int, structural bool) (string, error) {
	if tree {
		value, err := jsontree.Parse([]byte(body))
		if err != nil {
			return "", err
		}
		return r.Tree(jsontree.Project(value), depth), nil
	}

	text, ok := format.PrettyJSON(body)
	if !ok {
		return withNewline(body), nil
	}
	return highlightText(r, text, structural), nil
}

func highlightText(r *render.Renderer, text string, structural bool) string {
	var ranges []highlight.Range
	if structural {
		ranges = highlight.HighlightStructural(text)
	} else {
		ranges = highlight.Highlight(text)
	}
	return withNewline(r.Highlight(text, ranges))
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
