// Package feed retrieves the raw task table from wherever the user points the
// dashboard: a published CSV URL, a Google Sheets editor link rewritten to its
// CSV export, or the Sheets API for private sheets.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"taskboard/internal/backend/googlesheets"
	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/task"
)

// Source fetches the feed as rows keyed by column label.
type Source interface {
	Rows(ctx context.Context) ([]task.Row, error)

	// String describes the source for logs and messages.
	String() string
}

// Open picks the Source for rawURL. An empty URL yields a nil Source and no
// error; callers then show the sample tasks.
func Open(ctx context.Context, cfg *config.Config, rawURL string, log logger.Logger) (Source, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, nil
	}

	sheet, isSheet := ParseSheetsURL(rawURL)
	if cfg.UseAPI {
		if !isSheet {
			return nil, fmt.Errorf("--api needs a Google Sheets URL, got %s", rawURL)
		}
		if !cfg.HasToken() {
			return nil, fmt.Errorf("not logged in (run: taskboard login)")
		}
		log.Debug("using sheets api", "spreadsheet", sheet.ID, "gid", sheet.GID)
		c, err := googlesheets.New(ctx, cfg, sheet.ID, sheet.GID)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	if isSheet && sheet.Editable {
		export := sheet.ExportURL()
		log.Debug("rewrote sheets link", "from", rawURL, "to", export)
		rawURL = export
	}
	return NewHTTPSource(rawURL, WithTimeout(cfg.Timeout), WithLogger(log)), nil
}

// Sheet identifies a Google Sheets document parsed from a browser URL.
type Sheet struct {
	ID  string
	GID string // tab id, empty for the first tab

	// Editable is true for editor/viewer links that must be rewritten to the
	// CSV export. Published (/d/e/...) and export links are fetched as is.
	Editable bool
}

// ParseSheetsURL recognises docs.google.com/spreadsheets/d/<id>/... links.
func ParseSheetsURL(rawURL string) (Sheet, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != "docs.google.com" {
		return Sheet{}, false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "spreadsheets" || parts[1] != "d" {
		return Sheet{}, false
	}

	s := Sheet{ID: parts[2], GID: u.Query().Get("gid")}
	if s.ID == "e" {
		// Published to the web: the id is opaque and unusable by the API.
		return Sheet{}, false
	}
	if s.GID == "" {
		s.GID = fragmentValue(u.Fragment, "gid")
	}
	action := ""
	if len(parts) > 3 {
		action = parts[3]
	}
	switch action {
	case "", "edit", "view", "htmlview":
		s.Editable = true
	}
	return s, true
}

// ExportURL returns the CSV export URL for the sheet.
func (s Sheet) ExportURL() string {
	q := url.Values{"format": {"csv"}}
	if s.GID != "" {
		q.Set("gid", s.GID)
	}
	return "https://docs.google.com/spreadsheets/d/" + url.PathEscape(s.ID) + "/export?" + q.Encode()
}

func fragmentValue(fragment, key string) string {
	q, err := url.ParseQuery(fragment)
	if err != nil {
		return ""
	}
	return q.Get(key)
}

// Unavailable returns a Source whose every load fails with err. It stands in
// for a feed that could not be opened, so the board still falls back to the
// sample tasks and reports the failure like any other load error.
func Unavailable(name string, err error) Source {
	var fe *task.FetchError
	if !errors.As(err, &fe) {
		fe = &task.FetchError{Source: name, Err: err}
	}
	return unavailable{name: name, err: fe}
}

type unavailable struct {
	name string
	err  error
}

func (u unavailable) Rows(ctx context.Context) ([]task.Row, error) {
	return nil, u.err
}

func (u unavailable) String() string {
	return u.name
}
