package discount

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"discount-service/discount/application"
	"discount-service/discount/domain"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Quoter é o que o handler precisa da camada application.
type Quoter interface {
	Quote(ctx context.Context, req domain.QuoteRequest) (domain.Quote, error)
}

type HandlerOptions struct {
	Quotes Quoter
	// Logger nil desliga o log de acesso.
	Logger *zerolog.Logger
}

type quoteBody struct {
	Price    *float64 `json:"price"`
	Rate     *float64 `json:"rate"`
	Currency string   `json:"currency"`
}

type errorBody struct {
	Error string `json:"error"`
}

const maxBodyBytes = 1 << 16

// Handler monta as rotas:
//
//	GET  /discount?price=100&rate=0.1[&currency=BRL]
//	POST /discount  {"price":100,"rate":0.1,"currency":"BRL"}
//	GET  /healthz
func Handler(opts HandlerOptions) http.Handler {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	if opts.Quotes == nil {
		opts.Quotes = application.NewQuoteService(application.WithLogger(logger))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("GET /discount", func(w http.ResponseWriter, r *http.Request) {
		req, err := parseQuery(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		serveQuote(w, r, opts.Quotes, req)
	})
	mux.HandleFunc("POST /discount", func(w http.ResponseWriter, r *http.Request) {
		req, err := parseBody(w, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		serveQuote(w, r, opts.Quotes, req)
	})

	h := http.Handler(mux)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})(h)
	h = hlog.NewHandler(logger)(h)
	return h
}

func serveQuote(w http.ResponseWriter, r *http.Request, q Quoter, req domain.QuoteRequest) {
	quote, err := q.Quote(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, quote)
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("quote failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: http.StatusText(http.StatusInternalServerError)})
	}
}

func parseQuery(r *http.Request) (domain.QuoteRequest, error) {
	q := r.URL.Query()

	price, err := requiredFloat(q.Get("price"), "price")
	if err != nil {
		return domain.QuoteRequest{}, err
	}
	rate, err := requiredFloat(q.Get("rate"), "rate")
	if err != nil {
		return domain.QuoteRequest{}, err
	}

	return domain.QuoteRequest{
		Price:    price,
		Rate:     rate,
		Currency: strings.TrimSpace(q.Get("currency")),
	}, nil
}

func requiredFloat(raw, name string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return v, nil
}

func parseBody(w http.ResponseWriter, r *http.Request) (domain.QuoteRequest, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var body quoteBody
	if err := dec.Decode(&body); err != nil {
		return domain.QuoteRequest{}, errors.New("invalid JSON body")
	}
	// um único objeto por requisição
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.QuoteRequest{}, errors.New("invalid JSON body: trailing data")
	}
	if body.Price == nil {
		return domain.QuoteRequest{}, errors.New("price is required")
	}
	if body.Rate == nil {
		return domain.QuoteRequest{}, errors.New("rate is required")
	}

	return domain.QuoteRequest{
		Price:    *body.Price,
		Rate:     *body.Rate,
		Currency: strings.TrimSpace(body.Currency),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
