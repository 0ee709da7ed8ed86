package discount

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"discount-service/discount/application"
	"discount-service/discount/domain"
	"discount-service/discount/infra"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nop = zerolog.Nop()

type failingQuoter struct{}

func (failingQuoter) Quote(context.Context, domain.QuoteRequest) (domain.Quote, error) {
	return domain.Quote{}, errors.New("boom")
}

func newTestHandler(stats domain.StatsStore) http.Handler {
	svc := application.NewQuoteService(application.WithStats(stats))
	return Handler(HandlerOptions{Quotes: svc, Logger: &nop})
}

func decodeQuote(t *testing.T, w *httptest.ResponseRecorder) domain.Quote {
	t.Helper()
	var q domain.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	return q
}

func TestHandler_GetDiscount(t *testing.T) {
	stats := infra.NewMemoryStatsStore()
	h := newTestHandler(stats)

	r := httptest.NewRequest(http.MethodGet, "http://example/discount?price=100&rate=0.1&currency=BRL", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	q := decodeQuote(t, w)
	assert.NotEmpty(t, q.ID)
	assert.InDelta(t, 90.0, q.Final, 0.01)
	assert.InDelta(t, 10.0, q.Discount, 0.01)
	assert.Equal(t, "BRL", q.Currency)

	assert.Equal(t, int64(1), stats.Total().Count)
}

func TestHandler_GetDiscountZeroRate(t *testing.T) {
	h := newTestHandler(nil)

	r := httptest.NewRequest(http.MethodGet, "http://example/discount?price=100&rate=0", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 100.0, decodeQuote(t, w).Final, 0.01)
}

func TestHandler_PostDiscount(t *testing.T) {
	h := newTestHandler(nil)

	body := strings.NewReader(`{"price": 250, "rate": 0.2, "currency": "EUR"}`)
	r := httptest.NewRequest(http.MethodPost, "http://example/discount", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	q := decodeQuote(t, w)
	assert.InDelta(t, 200.0, q.Final, 0.01)
	assert.Equal(t, "EUR", q.Currency)
}

func TestHandler_BadRequests(t *testing.T) {
	h := newTestHandler(nil)

	cases := []struct {
		name   string
		method string
		target string
		body   string
		want   string
	}{
		{"missing price", http.MethodGet, "/discount?rate=0.1", "", "price is required"},
		{"missing rate", http.MethodGet, "/discount?price=10", "", "rate is required"},
		{"not a number", http.MethodGet, "/discount?price=abc&rate=0.1", "", "price must be a number"},
		{"rate above one", http.MethodGet, "/discount?price=10&rate=1.5", "", "invalid argument"},
		{"negative price", http.MethodGet, "/discount?price=-10&rate=0.5", "", "invalid argument"},
		{"bad json", http.MethodPost, "/discount", `{"price":`, "invalid JSON body"},
		{"unknown field", http.MethodPost, "/discount", `{"price":1,"rate":0,"coupon":"X"}`, "invalid JSON body"},
		{"trailing json", http.MethodPost, "/discount", `{"price":100,"rate":0.1} {"junk":`, "trailing data"},
		{"two objects", http.MethodPost, "/discount", `{"price":100,"rate":0.1}{"price":1,"rate":0}`, "trailing data"},
		{"json missing rate", http.MethodPost, "/discount", `{"price":1}`, "rate is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(tc.method, "http://example"+tc.target, strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var e errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
			assert.Contains(t, e.Error, tc.want)
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(nil)

	r := httptest.NewRequest(http.MethodDelete, "http://example/discount", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.NotEmpty(t, w.Header().Get("Allow"))
}

func TestHandler_InternalError(t *testing.T) {
	h := Handler(HandlerOptions{Quotes: failingQuoter{}, Logger: &nop})

	r := httptest.NewRequest(http.MethodGet, "http://example/discount?price=1&rate=0", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestHandler_Healthz(t *testing.T) {
	h := Handler(HandlerOptions{})

	r := httptest.NewRequest(http.MethodGet, "http://example/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok\n", w.Body.String())
}
