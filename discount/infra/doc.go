// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain e para o adapter HTTP.
//
// Exemplos:
//   - MemoryStatsStore / RedisStatsStore: estatísticas de cotações
//   - QuoteBudgets: orçamento de cotações por cliente (golang.org/x/time/rate),
//     buckets já recarregados são descartados periodicamente
package infra
