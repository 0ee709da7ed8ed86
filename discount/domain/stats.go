package domain

import (
	"context"
	"time"
)

// QuoteEvent representa uma cotação emitida.
//
// Ele é propositalmente "agnóstico de HTTP": pode vir de um handler web,
// de um job em lote, etc.
//
// Observação: Currency é texto livre vindo do cliente; cuidado com
// cardinalidade ao usar como chave em Redis.
type QuoteEvent struct {
	QuoteID  string
	Price    float64
	Discount float64
	Currency string

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas de cotações.
//
// Implementações podem armazenar em Redis, memória, etc.
// A camada application trata erro como best-effort (não derruba a cotação).
type StatsStore interface {
	Record(ctx context.Context, ev QuoteEvent) error
}
