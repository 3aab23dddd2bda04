// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/lunch-pick/models"
	"github.com/danielhkuo/lunch-pick/store"
)

type fakeAirtable struct {
	mu       sync.Mutex
	pages    map[string][]string // table -> raw JSON pages
	posted   [][]map[string]string
	status   int
	lastAuth string
}

func (f *fakeAirtable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastAuth = r.Header.Get("Authorization")
	if f.status != 0 {
		w.WriteHeader(f.status)
		w.Write([]byte(`{"error":{"type":"INVALID_PERMISSIONS"}}`))
		return
	}

	table := r.PathValue("table")
	switch r.Method {
	case http.MethodGet:
		pages := f.pages[table]
		page := 0
		if offset := r.URL.Query().Get("offset"); offset != "" {
			fmt.Sscanf(offset, "page%d", &page)
		}
		if page >= len(pages) {
			w.Write([]byte(`{"records":[]}`))
			return
		}
		w.Write([]byte(pages[page]))
	case http.MethodPost:
		var body struct {
			Records []struct {
				Fields map[string]string `json:"fields"`
			} `json:"records"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		var batch []map[string]string
		for _, rec := range body.Records {
			batch = append(batch, rec.Fields)
		}
		f.posted = append(f.posted, batch)
		w.Write([]byte(`{"records":[]}`))
	}
}

func newTestClient(t *testing.T, fake *fakeAirtable) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/v0/appTest/{table}", fake)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return New(Config{
		URL:             srv.URL + "/v0/",
		APIKey:          "pat-secret",
		BaseID:          "appTest",
		CandidatesTable: "Lokale",
		LedgerTable:     "Stimmen-Log",
		HTTPClient:      srv.Client(),
		Location:        time.UTC,
	})
}

func TestFetchCandidates_MapsFieldsAcrossPages(t *testing.T) {
	fake := &fakeAirtable{pages: map[string][]string{
		"Lokale": {
			`{"records":[{"id":"rec1","fields":{"Name":"Pizzeria Roma","Essen":"Italienisch","Preis":12,"Link":"https://roma.example"}}],"offset":"page1"}`,
			`{"records":[{"id":"rec2","fields":{"Name":"Imbiss","Time to Travel (1-way)":"7 min"}}]}`,
		},
	}}
	client := newTestClient(t, fake)

	got, err := client.FetchCandidates(context.Background())
	if err != nil {
		t.Fatalf("FetchCandidates() error = %v", err)
	}

	want := []models.Candidate{
		{ID: "rec1", Name: "Pizzeria Roma", Cuisine: "Italienisch", Link: "https://roma.example", Price: "12"},
		{ID: "rec2", Name: "Imbiss", Cuisine: models.UnknownCuisine, Distance: "7 min"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if fake.lastAuth != "Bearer pat-secret" {
		t.Errorf("Authorization = %q", fake.lastAuth)
	}
}

func TestFetchLedger_NormalizesDays(t *testing.T) {
	fake := &fakeAirtable{pages: map[string][]string{
		"Stimmen-Log": {
			`{"records":[
				{"id":"v1","fields":{"Lokal ID":"rec1","Datum":"2024-05-01"}},
				{"id":"v2","fields":{"Lokal ID":["rec2"],"Datum":"2024-05-01T10:15:00.000Z"}},
				{"id":"v3","fields":{"Lokal ID":"rec1"}},
				{"id":"v4","fields":{"Lokal ID":"rec1","Datum":"2024-04-30","Submission":"sub-9"}}
			]}`,
		},
	}}
	client := newTestClient(t, fake)

	got, err := client.FetchLedger(context.Background())
	if err != nil {
		t.Fatalf("FetchLedger() error = %v", err)
	}

	want := []models.VoteEvent{
		{ID: "v1", CandidateID: "rec1", VotingDay: "2024-05-01"},
		{ID: "v2", CandidateID: "rec2", VotingDay: "2024-05-01"},
		{ID: "v4", CandidateID: "rec1", VotingDay: "2024-04-30", SubmissionID: "sub-9"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFetchLedger_BucketsTimestampsInServerZone(t *testing.T) {
	fake := &fakeAirtable{pages: map[string][]string{
		"Stimmen-Log": {
			`{"records":[
				{"id":"v1","fields":{"Lokal ID":"rec1","Datum":"2024-05-01T22:30:00.000Z"}},
				{"id":"v2","fields":{"Lokal ID":"rec1","Datum":"2024-05-01"}}
			]}`,
		},
	}}
	client := newTestClient(t, fake)
	client.cfg.Location = time.FixedZone("CEST", 2*60*60)

	got, err := client.FetchLedger(context.Background())
	if err != nil {
		t.Fatalf("FetchLedger() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	// 22:30Z is 00:30 the next day in CEST
	if got[0].VotingDay != "2024-05-02" {
		t.Errorf("timestamp day = %q, want 2024-05-02", got[0].VotingDay)
	}
	if got[1].VotingDay != "2024-05-01" {
		t.Errorf("bare date day = %q, want 2024-05-01", got[1].VotingDay)
	}
}

func TestFetch_ErrorsWrapErrFetch(t *testing.T) {
	fake := &fakeAirtable{status: http.StatusForbidden}
	client := newTestClient(t, fake)

	_, err := client.FetchCandidates(context.Background())
	if !errors.Is(err, store.ErrFetch) {
		t.Errorf("FetchCandidates() error = %v, want ErrFetch", err)
	}

	_, err = client.FetchLedger(context.Background())
	if !errors.Is(err, store.ErrFetch) {
		t.Errorf("FetchLedger() error = %v, want ErrFetch", err)
	}
}

func TestAppendLedger(t *testing.T) {
	fake := &fakeAirtable{}
	client := newTestClient(t, fake)

	batch := []models.VoteEvent{
		{CandidateID: "rec1", VotingDay: "2024-05-01", SubmissionID: "sub-1"},
		{CandidateID: "rec2", VotingDay: "2024-05-01", SubmissionID: "sub-1"},
	}
	if err := client.AppendLedger(context.Background(), batch); err != nil {
		t.Fatalf("AppendLedger() error = %v", err)
	}

	if len(fake.posted) != 1 || len(fake.posted[0]) != 2 {
		t.Fatalf("posted = %+v", fake.posted)
	}
	first := fake.posted[0][0]
	if first[FieldCandidate] != "rec1" || first[FieldVotingDay] != "2024-05-01" {
		t.Errorf("unexpected fields %+v", first)
	}
	if _, ok := first[FieldSubmission]; ok {
		t.Error("submission field written without WriteSubmissionID")
	}
}

func TestAppendLedger_WritesSubmissionWhenEnabled(t *testing.T) {
	fake := &fakeAirtable{}
	client := newTestClient(t, fake)
	client.cfg.WriteSubmissionID = true

	err := client.AppendLedger(context.Background(), []models.VoteEvent{
		{CandidateID: "rec1", VotingDay: "2024-05-01", SubmissionID: "sub-1"},
	})
	if err != nil {
		t.Fatalf("AppendLedger() error = %v", err)
	}
	if fake.posted[0][0][FieldSubmission] != "sub-1" {
		t.Errorf("submission field = %q", fake.posted[0][0][FieldSubmission])
	}
}

func TestAppendLedger_RejectsOversizedBatch(t *testing.T) {
	fake := &fakeAirtable{}
	client := newTestClient(t, fake)

	err := client.AppendLedger(context.Background(), make([]models.VoteEvent, store.MaxBatchSize+1))
	if !errors.Is(err, store.ErrBatchTooLarge) {
		t.Errorf("AppendLedger() error = %v, want ErrBatchTooLarge", err)
	}
	if len(fake.posted) != 0 {
		t.Error("oversized batch reached the API")
	}
}

func TestAppendLedger_StatusError(t *testing.T) {
	fake := &fakeAirtable{status: http.StatusUnprocessableEntity}
	client := newTestClient(t, fake)

	err := client.AppendLedger(context.Background(), []models.VoteEvent{{CandidateID: "rec1", VotingDay: "2024-05-01"}})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("AppendLedger() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", statusErr.StatusCode)
	}
}
