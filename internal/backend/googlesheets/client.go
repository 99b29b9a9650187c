// Package googlesheets reads the task table of a (possibly private) Google
// Sheets document through the Sheets API.
package googlesheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"taskboard/internal/config"
	"taskboard/internal/task"
)

const (
	// Scope is the OAuth scope requested by login. Read-only: the dashboard
	// never writes back to the sheet.
	Scope = sheets.SpreadsheetsReadonlyScope

	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second
)

// Client implements feed.Source using the Sheets API.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	gid           string
	readRange     string
}

// New creates a Sheets client for one spreadsheet tab.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config, spreadsheetID, gid string) (*Client, error) {
	// Load OAuth client config
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	// Load token
	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source refreshes on demand
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	return NewWithHTTPClient(ctx, httpClient, spreadsheetID, gid, cfg.SheetRange)
}

// NewWithHTTPClient creates a client with a custom HTTP client. Extra options
// (an endpoint, for tests) are passed to the Sheets service.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, spreadsheetID, gid, readRange string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	if readRange == "" {
		readRange = config.DefaultSheetRange
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		gid:           gid,
		readRange:     readRange,
	}, nil
}

func (c *Client) String() string {
	return "sheets:" + c.spreadsheetID
}

// Rows reads the configured range. The first row is the header.
func (c *Client) Rows(ctx context.Context) ([]task.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	rng, err := c.resolveRange(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, c.wrapError(err)
	}

	records := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = fmt.Sprint(v)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &task.SourceFormatError{Err: errors.New("sheet range is empty")}
	}
	return task.RowsFromRecords(records), nil
}

// resolveRange prefixes the range with the title of the tab selected by gid.
// A range that already names a tab is used as is.
func (c *Client) resolveRange(ctx context.Context) (string, error) {
	if c.gid == "" || strings.Contains(c.readRange, "!") {
		return c.readRange, nil
	}
	gid, err := strconv.ParseInt(c.gid, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid sheet gid %q", c.gid)
	}

	doc, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return "", c.wrapError(err)
	}
	for _, s := range doc.Sheets {
		if s.Properties != nil && s.Properties.SheetId == gid {
			title := strings.ReplaceAll(s.Properties.Title, "'", "''")
			return "'" + title + "'!" + c.readRange, nil
		}
	}
	return "", &task.FetchError{Source: c.String(), Err: fmt.Errorf("no tab with gid %s", c.gid)}
}

// wrapError turns API errors into a *task.FetchError with a user-friendly cause.
func (c *Client) wrapError(err error) error {
	fe := &task.FetchError{Source: c.String(), Err: err}

	if errors.Is(err, context.DeadlineExceeded) {
		fe.Err = errors.New("request timed out")
		return fe
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		fe.Status = apiErr.Code
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			fe.Err = errors.New("token expired, revoked or lacks access (run: taskboard login)")
		case http.StatusNotFound:
			fe.Err = errors.New("spreadsheet not found")
		}
	}
	return fe
}
