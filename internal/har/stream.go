package har

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/util"
)

// StreamEntries decodes log.entries one at a time and hands each to fn,
// so large browser exports never sit in memory whole. Returning an error
// from fn stops the scan and returns that error.
func StreamEntries(r io.Reader, fn func(entry Entry, index int) error) error {
	decoder := json.NewDecoder(r)

	if err := expectDelim(decoder, '{'); err != nil {
		return err
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return apperrors.NewParsingError("reading HAR", err)
		}

		if key, ok := token.(string); ok && key == "log" {
			if err := streamLog(decoder, fn); err != nil {
				return err
			}
			continue
		}
		if err := skipValue(decoder); err != nil {
			return err
		}
	}
	return nil
}

func streamLog(decoder *json.Decoder, fn func(Entry, int) error) error {
	if err := expectDelim(decoder, '{'); err != nil {
		return err
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return apperrors.NewParsingError("reading HAR log", err)
		}

		if key, ok := token.(string); ok && key == "entries" {
			if err := streamEntries(decoder, fn); err != nil {
				return err
			}
			continue
		}
		if err := skipValue(decoder); err != nil {
			return err
		}
	}

	_, err := decoder.Token()
	return err
}

func streamEntries(decoder *json.Decoder, fn func(Entry, int) error) error {
	if err := expectDelim(decoder, '['); err != nil {
		return err
	}

	index := 0
	for decoder.More() {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			return apperrors.NewParsingError(fmt.Sprintf("decoding HAR entry %d", index), err)
		}
		if err := fn(entry, index); err != nil {
			return err
		}
		index++
	}

	_, err := decoder.Token()
	return err
}

func expectDelim(decoder *json.Decoder, want json.Delim) error {
	token, err := decoder.Token()
	if err != nil {
		return apperrors.NewParsingError("reading HAR", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != want {
		return apperrors.NewParsingError(fmt.Sprintf("expected %q in HAR, got %v", want, token), nil)
	}
	return nil
}

func skipValue(decoder *json.Decoder) error {
	var dummy json.RawMessage
	if err := decoder.Decode(&dummy); err != nil {
		return apperrors.NewParsingError("reading HAR", err)
	}
	return nil
}

// ReadHistoryItems extracts method, URL and start time from every entry of
// the archive at path. Entries without a URL are skipped; an unreadable
// start time is replaced by now.
func ReadHistoryItems(path string, now time.Time) ([]history.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewInputError("opening "+path, err)
	}
	defer f.Close()

	var items []history.Item
	err = StreamEntries(f, func(entry Entry, _ int) error {
		rawURL := strings.TrimSpace(entry.Request.URL)
		if rawURL == "" {
			return nil
		}
		at, err := util.ParseTimestamp(entry.StartedDateTime)
		if err != nil {
			at = now
		}
		items = append(items, history.NewItem(entry.Request.Method, rawURL, at))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
