package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// brazilTZ — фиксированное смещение UTC-3 без правил перехода на летнее время.
var brazilTZ = time.FixedZone("BRT", -3*60*60)

// Order представляет оплаченный заказ клиента.
// Заказ создаётся ровно один раз при успешной оплате и после этого не меняется;
// единственное исключение — конвертация OrderDate в отображаемый часовой пояс
// при возврате вызывающей стороне.
type Order struct {
	ID         int64
	CustomerID int64
	Value      decimal.Decimal
	// OrderDate хранится всегда в UTC; наружу отдаётся в BRT.
	OrderDate time.Time
}

// Validate проверяет базовые инварианты заказа.
func (o *Order) Validate() []error {
	var errs []error

	if o.CustomerID <= 0 {
		errs = append(errs, ErrCustomerIDInvalid)
	}
	if o.Value.Sign() <= 0 {
		errs = append(errs, ErrPaymentValueInvalid)
	}
	if o.OrderDate.IsZero() {
		errs = append(errs, ErrOrderDateRequired)
	}

	return errs
}

// InBrazilTime возвращает копию заказа с OrderDate, переведённым в UTC-3.
// Сам момент времени не меняется, только представление.
func (o Order) InBrazilTime() Order {
	o.OrderDate = o.OrderDate.In(brazilTZ)
	return o
}
