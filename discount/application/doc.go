// Package application contém os casos de uso do desconto.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: DiscountService.CalculateDiscount(100, 0.1) retorna 90;
// QuoteService.Quote valida, arredonda e registra estatísticas.
package application
