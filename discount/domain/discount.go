package domain

import "time"

// Calculator representa algo que aplica uma taxa de desconto a um preço.
type Calculator interface {
	CalculateDiscount(price, rate float64) float64
}

// Discounted aplica a taxa ao preço: price - price*rate.
//
// Não valida nada. Para rate=0 devolve o próprio preço, para rate=1 devolve 0.
func Discounted(price, rate float64) float64 {
	return price - price*rate
}

type QuoteRequest struct {
	Price float64
	// Rate é uma fração em [0, 1] (0.1 = 10%).
	Rate     float64
	Currency string
}

// Quote é o resultado de um pedido de desconto já validado e arredondado.
type Quote struct {
	ID       string    `json:"id"`
	Price    float64   `json:"price"`
	Rate     float64   `json:"rate"`
	Discount float64   `json:"discount"`
	Final    float64   `json:"final"`
	Currency string    `json:"currency,omitempty"`
	At       time.Time `json:"at"`
}
