// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/lunch-pick/daykey"
	"github.com/danielhkuo/lunch-pick/models"
	"github.com/danielhkuo/lunch-pick/store"
)

// Field names in the remote tables
const (
	FieldName       = "Name"
	FieldCuisine    = "Essen"
	FieldLink       = "Link"
	FieldPrice      = "Preis"
	FieldDistance   = "Time to Travel (1-way)"
	FieldCandidate  = "Lokal ID"
	FieldVotingDay  = "Datum"
	FieldSubmission = "Submission"
)

type Config struct {
	URL             string
	APIKey          string
	BaseID          string
	CandidatesTable string
	LedgerTable     string
	// WriteSubmissionID adds the Submission field to appended records. The
	// ledger table must have that column.
	WriteSubmissionID bool
	HTTPClient        *http.Client
	// Location is the zone ledger timestamps are bucketed into days with.
	// Defaults to time.Local, matching the server clock.
	Location *time.Location
}

// Client reads candidates and the vote ledger from Airtable and appends votes.
type Client struct {
	cfg  Config
	http *http.Client
}

var (
	_ store.CandidateSource = (*Client)(nil)
	_ store.Ledger          = (*Client)(nil)
)

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Client{cfg: cfg, http: hc}
}

type record struct {
	ID     string          `json:"id,omitempty"`
	Fields json.RawMessage `json:"fields"`
}

type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset"`
}

type candidateFields struct {
	Name     flexString `json:"Name"`
	Cuisine  flexString `json:"Essen"`
	Link     flexString `json:"Link"`
	Price    flexString `json:"Preis"`
	Distance flexString `json:"Time to Travel (1-way)"`
}

type ledgerFields struct {
	Candidate  flexString `json:"Lokal ID"`
	VotingDay  flexString `json:"Datum"`
	Submission flexString `json:"Submission"`
}

// FetchCandidates returns every record of the candidate table.
func (c *Client) FetchCandidates(ctx context.Context) ([]models.Candidate, error) {
	candidates := []models.Candidate{}
	err := c.list(ctx, c.cfg.CandidatesTable, func(r record) error {
		var f candidateFields
		if err := json.Unmarshal(r.Fields, &f); err != nil {
			return fmt.Errorf("decode candidate %s: %w", r.ID, err)
		}
		cuisine := string(f.Cuisine)
		if cuisine == "" {
			cuisine = models.UnknownCuisine
		}
		candidates = append(candidates, models.Candidate{
			ID:       r.ID,
			Name:     string(f.Name),
			Cuisine:  cuisine,
			Link:     string(f.Link),
			Price:    string(f.Price),
			Distance: string(f.Distance),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrFetch, c.cfg.CandidatesTable, err)
	}
	return candidates, nil
}

// FetchLedger returns every vote record. Records without a readable day are
// skipped.
func (c *Client) FetchLedger(ctx context.Context) ([]models.VoteEvent, error) {
	events := []models.VoteEvent{}
	err := c.list(ctx, c.cfg.LedgerTable, func(r record) error {
		var f ledgerFields
		if err := json.Unmarshal(r.Fields, &f); err != nil {
			return fmt.Errorf("decode vote %s: %w", r.ID, err)
		}
		day, err := daykey.NormalizeIn(string(f.VotingDay), c.cfg.Location)
		if err != nil {
			slog.Debug("skipping vote without day", "record_id", r.ID, "raw", string(f.VotingDay))
			return nil
		}
		events = append(events, models.VoteEvent{
			ID:           r.ID,
			CandidateID:  string(f.Candidate),
			VotingDay:    day,
			SubmissionID: string(f.Submission),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrFetch, c.cfg.LedgerTable, err)
	}
	return events, nil
}

// AppendLedger creates one record per event in a single request.
func (c *Client) AppendLedger(ctx context.Context, batch []models.VoteEvent) error {
	if len(batch) > store.MaxBatchSize {
		return fmt.Errorf("%w: %d events", store.ErrBatchTooLarge, len(batch))
	}
	if len(batch) == 0 {
		return nil
	}

	records := make([]map[string]map[string]string, 0, len(batch))
	for _, e := range batch {
		fields := map[string]string{
			FieldCandidate: e.CandidateID,
			FieldVotingDay: string(e.VotingDay),
		}
		if c.cfg.WriteSubmissionID && e.SubmissionID != "" {
			fields[FieldSubmission] = e.SubmissionID
		}
		records = append(records, map[string]map[string]string{"fields": fields})
	}

	body, err := json.Marshal(map[string]interface{}{"records": records})
	if err != nil {
		return fmt.Errorf("failed to encode vote batch: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.tableURL(c.cfg.LedgerTable, ""), bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post vote batch: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("failed to post vote batch: %w", err)
	}
	return nil
}

// list walks every page of table, following the offset cursor.
func (c *Client) list(ctx context.Context, table string, fn func(record) error) error {
	offset := ""
	for {
		req, err := c.newRequest(ctx, http.MethodGet, c.tableURL(table, offset), nil)
		if err != nil {
			return err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}

		var page listResponse
		err = checkStatus(resp)
		if err == nil {
			err = json.NewDecoder(resp.Body).Decode(&page)
		}
		resp.Body.Close()
		if err != nil {
			return err
		}

		for _, r := range page.Records {
			if err := fn(r); err != nil {
				return err
			}
		}

		if page.Offset == "" {
			return nil
		}
		offset = page.Offset
	}
}

func (c *Client) tableURL(table, offset string) string {
	u := c.cfg.URL + "/" + url.PathEscape(c.cfg.BaseID) + "/" + url.PathEscape(table)
	if offset != "" {
		u += "?" + url.Values{"offset": {offset}}.Encode()
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("airtable returned %d: %s", e.StatusCode, e.Body)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
}

// flexString accepts a JSON string, number, or array (first element) as text.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = flexString(num.String())
		return nil
	}

	var list []flexString
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			*s = list[0]
		}
		return nil
	}

	if string(data) == "null" {
		return nil
	}
	return fmt.Errorf("unsupported field value %s", data)
}
