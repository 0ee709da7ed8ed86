package application

import "discount-service/discount/domain"

// DiscountService aplica uma taxa de desconto a um preço.
//
// Não guarda estado: o valor zero já está pronto para uso e pode ser
// compartilhado entre goroutines.
type DiscountService struct{}

var _ domain.Calculator = DiscountService{}

// CalculateDiscount devolve price - price*rate, sem validar as entradas.
// Quem precisa de validação usa QuoteService.
func (DiscountService) CalculateDiscount(price, rate float64) float64 {
	return domain.Discounted(price, rate)
}
