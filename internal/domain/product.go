package domain

import "github.com/shopspring/decimal"

// Product представляет товар каталога. Ядро его только листает постранично.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}
