package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/auctionsite/pkg/app"
	"github.com/ghuser/auctionsite/pkg/auth"
	"github.com/ghuser/auctionsite/pkg/clock"
	"github.com/ghuser/auctionsite/pkg/config"
	"github.com/ghuser/auctionsite/pkg/logger"
	appsvcs "github.com/ghuser/auctionsite/services/auction/application/services"
	"github.com/ghuser/auctionsite/services/auction/infrastructure/persistence/memory"
)

var (
	apiStart  = time.Date(2018, 1, 1, 10, 0, 0, 0, time.UTC)
	apiExpiry = time.Date(2019, 1, 1, 10, 0, 0, 0, time.UTC)
)

func identityHeader(sub, name string) string {
	doc := fmt.Sprintf(`{"sub":%q,"name":%q,"u_typ":"0"}`, sub, name)
	return base64.StdEncoding.EncodeToString([]byte(doc))
}

// newTestServer wires the full route tree over an in-memory event log with
// the clock frozen inside the auction window.
func newTestServer(t *testing.T) (*chi.Mux, *clock.Fake) {
	t.Helper()

	clk := clock.NewFake(apiStart.Add(time.Minute))
	proc := appsvcs.NewProcessor(memory.NewEventLog(), clk)
	svcs := &appsvcs.Services{Processor: proc}

	a := &app.Application{
		Logger: logger.New(&config.Config{LogLevel: "error"}),
		Clock:  clk,
	}

	r := chi.NewRouter()
	AuctionRoutes(r, a, svcs)
	return r, clk
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.PayloadHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createAuction(t *testing.T, r http.Handler, id int64, typ string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auctions", identityHeader("a1", "Test"), map[string]any{
		"id":       id,
		"startsAt": apiStart,
		"endsAt":   apiExpiry,
		"title":    "First auction",
		"currency": "VAC",
		"type":     typ,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create auction: status %d, body %s", w.Code, w.Body)
	}
}

func decodeDomainError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var s string
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("domain error body is not a JSON string: %s", w.Body)
	}
	return s
}

func TestPostAuction(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(t, r, http.MethodPost, "/auctions", "", map[string]any{"id": 1})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("creates with defaulted English type", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(t, r, http.MethodPost, "/auctions", identityHeader("a1", "Test"), map[string]any{
			"id":       1,
			"startsAt": apiStart,
			"endsAt":   apiExpiry,
			"title":    "First auction",
			"currency": "VAC",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
		}

		var resp struct {
			Type    string `json:"$type"`
			Auction struct {
				ID   int64  `json:"id"`
				User string `json:"user"`
				Type string `json:"type"`
			} `json:"auction"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Type != "AuctionAdded" {
			t.Fatalf("$type = %q", resp.Type)
		}
		if resp.Auction.ID != 1 || resp.Auction.User != "BuyerOrSeller|a1|Test" {
			t.Fatalf("unexpected auction: %+v", resp.Auction)
		}
		if resp.Auction.Type != "English|0|0|0" {
			t.Fatalf("omitted type must default to English, got %q", resp.Auction.Type)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		r, _ := newTestServer(t)
		createAuction(t, r, 1, "")
		w := doJSON(t, r, http.MethodPost, "/auctions", identityHeader("a1", "Test"), map[string]any{
			"id":       1,
			"startsAt": apiStart,
			"endsAt":   apiExpiry,
			"title":    "Second auction",
			"currency": "VAC",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeDomainError(t, w); got != "AuctionAlreadyExists 1" {
			t.Fatalf("unexpected body: %q", got)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(t, r, http.MethodPost, "/auctions", identityHeader("a1", "Test"), map[string]any{
			"id":       1,
			"startsAt": apiStart,
			"endsAt":   apiExpiry,
			"currency": "VAC",
		})
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for missing title, got %d", w.Code)
		}
	})

	t.Run("malformed type string", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(t, r, http.MethodPost, "/auctions", identityHeader("a1", "Test"), map[string]any{
			"id":       1,
			"startsAt": apiStart,
			"endsAt":   apiExpiry,
			"title":    "First auction",
			"currency": "VAC",
			"type":     "Dutch",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed type, got %d", w.Code)
		}
	})
}

func TestPostBid(t *testing.T) {
	buyer := identityHeader("a2", "Buyer")

	t.Run("requires authentication", func(t *testing.T) {
		r, _ := newTestServer(t)
		createAuction(t, r, 1, "")
		w := doJSON(t, r, http.MethodPost, "/auctions/1/bids", "", map[string]any{"amount": 11})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("accepted", func(t *testing.T) {
		r, clk := newTestServer(t)
		createAuction(t, r, 1, "")
		w := doJSON(t, r, http.MethodPost, "/auctions/1/bids", buyer, map[string]any{"amount": 11})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
		}

		var resp struct {
			Type string    `json:"$type"`
			At   time.Time `json:"at"`
			Bid  struct {
				Auction int64  `json:"auction"`
				User    string `json:"user"`
				Amount  int64  `json:"amount"`
			} `json:"bid"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Type != "BidAccepted" {
			t.Fatalf("$type = %q", resp.Type)
		}
		if !resp.At.Equal(clk.Now()) {
			t.Fatalf("at = %v, want %v", resp.At, clk.Now())
		}
		if resp.Bid.Auction != 1 || resp.Bid.Amount != 11 || resp.Bid.User != "BuyerOrSeller|a2|Buyer" {
			t.Fatalf("unexpected bid: %+v", resp.Bid)
		}
	})

	t.Run("too low for English", func(t *testing.T) {
		r, _ := newTestServer(t)
		createAuction(t, r, 1, "")
		if w := doJSON(t, r, http.MethodPost, "/auctions/1/bids", buyer, map[string]any{"amount": 11}); w.Code != http.StatusOK {
			t.Fatalf("seed bid: %d", w.Code)
		}
		w := doJSON(t, r, http.MethodPost, "/auctions/1/bids", buyer, map[string]any{"amount": 11})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeDomainError(t, w); got != "MustPlaceBidOverHighestBid 11" {
			t.Fatalf("unexpected body: %q", got)
		}
	})

	t.Run("unknown auction", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(t, r, http.MethodPost, "/auctions/99/bids", buyer, map[string]any{"amount": 11})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeDomainError(t, w); got != "UnknownAuction 99" {
			t.Fatalf("unexpected body: %q", got)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(t, r, http.MethodPost, "/auctions/abc/bids", buyer, map[string]any{"amount": 11})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeDomainError(t, w); got != "UnknownAuction abc" {
			t.Fatalf("body must echo the path segment, got %q", got)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		r, _ := newTestServer(t)
		createAuction(t, r, 1, "")
		w := doJSON(t, r, http.MethodPost, "/auctions/1/bids", buyer, map[string]any{"amount": 0})
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})
}

func TestGetAuction(t *testing.T) {
	buyer := identityHeader("a2", "Buyer")

	t.Run("not found", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(t, r, http.MethodGet, "/auctions/99", "", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(t, r, http.MethodGet, "/auctions/abc", "", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("running auction hides winner", func(t *testing.T) {
		r, _ := newTestServer(t)
		createAuction(t, r, 1, "Vickrey")
		for _, amount := range []int64{10, 20} {
			if w := doJSON(t, r, http.MethodPost, "/auctions/1/bids", buyer, map[string]any{"amount": amount}); w.Code != http.StatusOK {
				t.Fatalf("bid %d: status %d", amount, w.Code)
			}
		}

		w := doJSON(t, r, http.MethodGet, "/auctions/1", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var view map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
			t.Fatalf("decode view: %v", err)
		}
		bids, ok := view["bids"].([]any)
		if !ok || len(bids) != 2 {
			t.Fatalf("expected 2 bids, got %v", view["bids"])
		}
		if view["winner"] != nil || view["winnerPrice"] != nil {
			t.Fatalf("winner must be null while running: %v / %v", view["winner"], view["winnerPrice"])
		}
	})

	t.Run("ended auction discloses winner", func(t *testing.T) {
		r, clk := newTestServer(t)
		createAuction(t, r, 1, "Vickrey")
		for _, amount := range []int64{10, 20} {
			if w := doJSON(t, r, http.MethodPost, "/auctions/1/bids", buyer, map[string]any{"amount": amount}); w.Code != http.StatusOK {
				t.Fatalf("bid %d: status %d", amount, w.Code)
			}
		}
		clk.Set(apiExpiry.Add(time.Second))

		w := doJSON(t, r, http.MethodGet, "/auctions/1", "", nil)
		var view map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
			t.Fatalf("decode view: %v", err)
		}
		if view["winner"] != "BuyerOrSeller|a2|Buyer" {
			t.Fatalf("winner = %v", view["winner"])
		}
		if view["winnerPrice"] != float64(10) {
			t.Fatalf("winnerPrice = %v, want 10", view["winnerPrice"])
		}
	})

	t.Run("empty auction renders empty bid list", func(t *testing.T) {
		r, _ := newTestServer(t)
		createAuction(t, r, 1, "")
		w := doJSON(t, r, http.MethodGet, "/auctions/1", "", nil)

		var view map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
			t.Fatalf("decode view: %v", err)
		}
		if bids, ok := view["bids"].([]any); !ok || len(bids) != 0 {
			t.Fatalf("bids must be an empty array, got %v", view["bids"])
		}
	})
}

func TestListAuctions(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/auctions", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var empty []any
	if err := json.Unmarshal(w.Body.Bytes(), &empty); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(empty))
	}

	for _, id := range []int64{2, 1} {
		createAuction(t, r, id, "")
	}
	w = doJSON(t, r, http.MethodGet, "/auctions", "", nil)

	var views []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(views) != 2 || views[0].ID != 1 || views[1].ID != 2 {
		t.Fatalf("unexpected order: %+v", views)
	}
}
