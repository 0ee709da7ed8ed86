package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"discount-service/discount/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const DefaultPrecision int32 = 2

// QuoteService concentra a regra de aplicação da cotação:
// valida, calcula, arredonda e registra estatística.
//
// Ele não sabe nada sobre HTTP (status/headers), apenas retorna a cotação ou erro.
type QuoteService struct {
	calc      domain.Calculator
	stats     domain.StatsStore
	log       zerolog.Logger
	precision int32
	now       func() time.Time
	newID     func() string
}

type QuoteOption func(*QuoteService)

func WithCalculator(c domain.Calculator) QuoteOption {
	return func(s *QuoteService) {
		if c != nil {
			s.calc = c
		}
	}
}

func WithStats(st domain.StatsStore) QuoteOption {
	return func(s *QuoteService) { s.stats = st }
}

func WithLogger(l zerolog.Logger) QuoteOption {
	return func(s *QuoteService) { s.log = l }
}

// WithPrecision define as casas decimais do arredondamento. Valores negativos são ignorados.
func WithPrecision(places int32) QuoteOption {
	return func(s *QuoteService) {
		if places >= 0 {
			s.precision = places
		}
	}
}

func WithClock(now func() time.Time) QuoteOption {
	return func(s *QuoteService) {
		if now != nil {
			s.now = now
		}
	}
}

func withIDFunc(fn func() string) QuoteOption {
	return func(s *QuoteService) { s.newID = fn }
}

func NewQuoteService(opts ...QuoteOption) *QuoteService {
	s := &QuoteService{
		calc:      DiscountService{},
		log:       zerolog.Nop(),
		precision: DefaultPrecision,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *QuoteService) Precision() int32 { return s.precision }

// Quote valida a requisição e devolve a cotação arredondada.
//
// Erros de validação casam com domain.ErrInvalidArgument (errors.Is).
// Falha ao registrar estatística é só logada.
func (s *QuoteService) Quote(ctx context.Context, req domain.QuoteRequest) (domain.Quote, error) {
	if err := domain.ValidatePrice(req.Price); err != nil {
		return domain.Quote{}, fmt.Errorf("quote: %w", err)
	}
	if err := domain.ValidateRate(req.Rate); err != nil {
		return domain.Quote{}, fmt.Errorf("quote: %w", err)
	}

	result := s.calc.CalculateDiscount(req.Price, req.Rate)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return domain.Quote{}, fmt.Errorf("quote: calculator returned non-finite result %v", result)
	}

	price := decimal.NewFromFloat(req.Price).Round(s.precision)
	final := decimal.NewFromFloat(result).Round(s.precision)
	// desconto derivado dos valores já arredondados: price = final + discount sempre fecha
	discount := price.Sub(final)

	q := domain.Quote{
		ID:       s.newID(),
		Price:    price.InexactFloat64(),
		Rate:     req.Rate,
		Discount: discount.InexactFloat64(),
		Final:    final.InexactFloat64(),
		Currency: req.Currency,
		At:       s.now().UTC(),
	}

	if s.stats != nil {
		err := s.stats.Record(ctx, domain.QuoteEvent{
			QuoteID:  q.ID,
			Price:    q.Price,
			Discount: q.Discount,
			Currency: q.Currency,
			At:       q.At,
		})
		if err != nil {
			s.log.Warn().Err(err).Str("quote_id", q.ID).Msg("stats record failed")
		}
	}

	s.log.Debug().
		Str("quote_id", q.ID).
		Float64("price", q.Price).
		Float64("rate", q.Rate).
		Float64("final", q.Final).
		Msg("quote issued")

	return q, nil
}
