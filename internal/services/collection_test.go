package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/greentwin/aas-cockpit/internal/backend"
	"github.com/greentwin/aas-cockpit/internal/models"
)

func newTestCollection(t *testing.T, handler http.HandlerFunc) *Collection {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := backend.New(srv.URL, 5*time.Second, zerolog.Nop())
	return NewCollection(client, zerolog.Nop())
}

func serveRecords(records []models.AssetRecord) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(records)
	}
}

func TestRecordsLoadsLazilyOnce(t *testing.T) {
	var calls atomic.Int32
	c := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		serveRecords([]models.AssetRecord{{AssetID: "A"}})(w, r)
	})

	for i := 0; i < 3; i++ {
		records, err := c.Records(context.Background())
		if err != nil {
			t.Fatalf("records: %v", err)
		}
		if len(records) != 1 || records[0].AssetID() != "A" {
			t.Fatalf("unexpected records: %+v", records)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("backend called %d times, want 1", got)
	}
}

func TestRefreshSwapsSnapshotWholesale(t *testing.T) {
	var second atomic.Bool
	c := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		if second.Load() {
			serveRecords([]models.AssetRecord{{AssetID: "B"}, {AssetID: "C"}})(w, r)
			return
		}
		serveRecords([]models.AssetRecord{{AssetID: "A"}})(w, r)
	})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	second.Store(true)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	ids, err := c.AssetIDs(context.Background())
	if err != nil {
		t.Fatalf("asset ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != "B" || ids[1] != "C" {
		t.Fatalf("unexpected ids after refresh: %v", ids)
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	var fail atomic.Bool
	c := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "backend down", http.StatusBadGateway)
			return
		}
		serveRecords([]models.AssetRecord{{AssetID: "A"}})(w, r)
	})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	fail.Store(true)
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if c.LastError() == nil {
		t.Fatal("expected last error to be set")
	}
	records, err := c.Records(context.Background())
	if err != nil {
		t.Fatalf("records after failed refresh: %v", err)
	}
	if len(records) != 1 || records[0].AssetID() != "A" {
		t.Fatalf("previous snapshot lost: %+v", records)
	}
}

func TestFirstLoadFailureStaysAnError(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	c := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "backend down", http.StatusBadGateway)
			return
		}
		serveRecords([]models.AssetRecord{{AssetID: "A"}})(w, r)
	})

	if _, err := c.Records(context.Background()); err == nil {
		t.Fatal("expected first load error")
	}
	// Still an error on the next read, without a successful refresh.
	if _, err := c.Records(context.Background()); err == nil {
		t.Fatal("expected error to persist until a refresh succeeds")
	}
	fail.Store(false)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	records, err := c.Records(context.Background())
	if err != nil || len(records) != 1 {
		t.Fatalf("records after recovery: %v, %v", records, err)
	}
}

func TestFilterIsCaseInsensitiveOverAssetID(t *testing.T) {
	c := newTestCollection(t, serveRecords([]models.AssetRecord{
		{AssetID: "https://example.com/ids/Pump-1"},
		{AssetID: "https://example.com/ids/Motor-7"},
		{AssetID: "https://example.com/ids/pump-2"},
	}))

	matched, err := c.Filter(context.Background(), "PUMP")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("matched %d records, want 2: %+v", len(matched), matched)
	}

	all, err := c.Filter(context.Background(), "  ")
	if err != nil {
		t.Fatalf("filter empty: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("empty query matched %d records, want 3", len(all))
	}
}

func TestContains(t *testing.T) {
	c := newTestCollection(t, serveRecords([]models.AssetRecord{{AssetID: "A"}}))

	found, err := c.Contains(context.Background(), "A")
	if err != nil || !found {
		t.Fatalf("contains A = %v, %v", found, err)
	}
	found, err = c.Contains(context.Background(), "Z")
	if err != nil || found {
		t.Fatalf("contains Z = %v, %v", found, err)
	}
}
