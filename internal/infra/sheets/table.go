// Package sheets backs the tabular store interface with the Google
// Sheets values API, authenticated as a service account.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2/google"

	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"
	scope          = "https://www.googleapis.com/auth/spreadsheets"
)

// Client is an authenticated Sheets API client for one spreadsheet.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
}

// NewClient builds a client from service-account credentials JSON.
func NewClient(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*Client, error) {
	cfg, err := google.JWTConfigFromJSON(credentialsJSON, scope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}
	return &Client{
		httpClient:    cfg.Client(ctx),
		baseURL:       defaultBaseURL,
		spreadsheetID: spreadsheetID,
	}, nil
}

// valueRange is the Sheets API payload for reads and writes.
type valueRange struct {
	Values [][]interface{} `json:"values"`
}

// Table is one sheet within the spreadsheet, addressed by data-row
// index: row 0 is the first row below the header.
type Table struct {
	client *Client
	sheet  string
	header []string
}

func NewTable(client *Client, sheet string, header []string) *Table {
	return &Table{client: client, sheet: sheet, header: header}
}

// Ensure writes the header row when the sheet is still empty.
func (t *Table) Ensure(ctx context.Context) error {
	var vr valueRange
	endpoint := fmt.Sprintf("%s/%s/values/%s", t.client.baseURL, t.client.spreadsheetID, url.PathEscape(t.sheet+"!1:1"))
	if err := t.client.do(ctx, http.MethodGet, endpoint, nil, &vr); err != nil {
		return err
	}
	if len(vr.Values) > 0 {
		return nil
	}

	header := make([]interface{}, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	endpoint = fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW",
		t.client.baseURL, t.client.spreadsheetID, url.PathEscape(t.sheet+"!A1"))
	return t.client.do(ctx, http.MethodPut, endpoint, &valueRange{Values: [][]interface{}{header}}, nil)
}

func (t *Table) Rows(ctx context.Context) ([][]string, error) {
	var vr valueRange
	endpoint := fmt.Sprintf("%s/%s/values/%s", t.client.baseURL, t.client.spreadsheetID, url.PathEscape(t.sheet))
	if err := t.client.do(ctx, http.MethodGet, endpoint, nil, &vr); err != nil {
		return nil, err
	}
	if len(vr.Values) <= 1 {
		return nil, nil
	}

	rows := make([][]string, 0, len(vr.Values)-1)
	for _, raw := range vr.Values[1:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = cellString(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (t *Table) AppendRow(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW",
		t.client.baseURL, t.client.spreadsheetID, url.PathEscape(t.sheet))
	return t.client.do(ctx, http.MethodPost, endpoint, &valueRange{Values: [][]interface{}{values}}, nil)
}

func (t *Table) UpdateCell(ctx context.Context, row, col int, value string) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW",
		t.client.baseURL, t.client.spreadsheetID, url.PathEscape(t.cellRange(row, col)))
	return t.client.do(ctx, http.MethodPut, endpoint, &valueRange{Values: [][]interface{}{{value}}}, nil)
}

func (t *Table) ReadCell(ctx context.Context, row, col int) (string, error) {
	var vr valueRange
	endpoint := fmt.Sprintf("%s/%s/values/%s", t.client.baseURL, t.client.spreadsheetID, url.PathEscape(t.cellRange(row, col)))
	if err := t.client.do(ctx, http.MethodGet, endpoint, nil, &vr); err != nil {
		return "", err
	}
	if len(vr.Values) == 0 || len(vr.Values[0]) == 0 {
		return "", nil
	}
	return cellString(vr.Values[0][0]), nil
}

// cellRange maps a 0-based data cell to A1 notation; the header row
// occupies sheet row 1.
func (t *Table) cellRange(row, col int) string {
	letters := ""
	for c := col; ; c = c/26 - 1 {
		letters = string(rune('A'+c%26)) + letters
		if c < 26 {
			break
		}
	}
	return fmt.Sprintf("%s!%s%d", t.sheet, letters, row+2)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets API request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheets API error %d: %s", resp.StatusCode, string(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding sheets response: %w", err)
		}
	}
	return nil
}

// cellString renders an API cell value; unformatted numbers come back
// as JSON numbers.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

var _ domain.Table = (*Table)(nil)
