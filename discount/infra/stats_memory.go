package infra

import (
	"context"
	"sync"

	"discount-service/discount/domain"
)

type Totals struct {
	Count       int64
	PriceSum    float64
	DiscountSum float64
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu         sync.Mutex
	total      Totals
	byCurrency map[string]Totals
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{byCurrency: make(map[string]Totals)}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.QuoteEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total = s.total.add(ev)
	s.byCurrency[ev.Currency] = s.byCurrency[ev.Currency].add(ev)
	return nil
}

func (t Totals) add(ev domain.QuoteEvent) Totals {
	t.Count++
	t.PriceSum += ev.Price
	t.DiscountSum += ev.Discount
	return t
}

func (s *MemoryStatsStore) Total() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// ByCurrency agrupa por moeda; cotações sem moeda ficam na chave "".
func (s *MemoryStatsStore) ByCurrency() map[string]Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Totals, len(s.byCurrency))
	for k, v := range s.byCurrency {
		out[k] = v
	}
	return out
}
