// Package discount fornece adapters HTTP (net/http) para o cálculo de desconto.
//
// Visão geral (camadas):
//
//   - domain: regra de cálculo, validação e contratos (sem net/http)
//   - application: casos de uso (DiscountService, QuoteService) sem net/http
//   - infra: implementações concretas (estatísticas em memória/Redis, token bucket por cliente)
//   - discount (este pacote): handler HTTP, throttle por cliente e tradução de erros para status
//
// Fluxo no servidor:
//
//  1. Throttle extrai a chave do cliente (header/XFF/IP) e aplica o token bucket
//  2. O handler lê price/rate (query string ou JSON)
//  3. Chama a camada application para obter a cotação
//  4. Responde 200 com a cotação ou 400 para argumento inválido
//
// Variáveis de ambiente do binário (cmd/discountd) controlam o comportamento,
// como DISCOUNT_PRECISION, THROTTLE_RPS, STATS_ENABLED e REDIS_URL.
package discount
