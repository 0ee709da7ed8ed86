package infra

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// QuoteBudgets limita quantas cotações cada cliente pode pedir,
// com um token bucket (x/time/rate) por cliente.
//
// Um bucket que já recarregou por completo é equivalente a um novo,
// então ele pode ser descartado sem mudar nenhuma decisão futura.
type QuoteBudgets struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*rate.Limiter
}

func NewQuoteBudgets(perSecond float64, burst int) *QuoteBudgets {
	return &QuoteBudgets{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Allow consome uma cotação do orçamento do cliente.
func (b *QuoteBudgets) Allow(client string) bool {
	b.mu.Lock()
	lim, ok := b.buckets[client]
	if !ok {
		lim = rate.NewLimiter(b.limit, b.burst)
		b.buckets[client] = lim
	}
	b.mu.Unlock()

	return lim.Allow()
}

// Run descarta buckets cheios a cada intervalo até o ctx encerrar.
func (b *QuoteBudgets) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				b.prune(now)
			}
		}
	}()
}

func (b *QuoteBudgets) prune(now time.Time) int {
	full := float64(b.burst)

	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for client, lim := range b.buckets {
		if lim.TokensAt(now) >= full {
			delete(b.buckets, client)
			removed++
		}
	}
	return removed
}
