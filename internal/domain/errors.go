package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Ошибка пустого способа оплаты.
	ErrPaymentMethodRequired = errors.New("payment method cannot be empty")
	// Ошибка неположительной суммы оплаты.
	ErrPaymentValueInvalid = errors.New("payment value must be greater than zero")
	// Ошибка неположительного идентификатора клиента.
	ErrCustomerIDInvalid = errors.New("customer id must be greater than zero")
	// Ошибка неположительной суммы покупки в проверке права на покупку.
	ErrPurchaseValueInvalid = errors.New("purchase value must be greater than zero")
	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка отсутствующей даты заказа.
	ErrOrderDateRequired = errors.New("order date is required")
	// ErrCustomerNotFound возвращается, если клиент не найден в хранилище.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrProductNotFound возвращается, если товар не найден в хранилище.
	ErrProductNotFound = errors.New("product not found")
	// ErrRandomNumberNotFound возвращается, если запись значения не найдена.
	ErrRandomNumberNotFound = errors.New("random number not found")
	// ErrPaymentFailed — обработчик оплаты сообщил о неуспехе (или истёк таймаут вызова).
	ErrPaymentFailed = errors.New("payment processing failed")
	// ErrAllocationExhausted — поиск уникального значения превысил лимит попыток.
	ErrAllocationExhausted = errors.New("could not allocate a unique number after maximum attempts")
	// Ошибка значения вне пространства аллокатора.
	ErrRandomNumberOutOfRange = errors.New("random number must be in [0, 100)")
)

// UnsupportedPaymentMethodError сигнализирует о неизвестном ключе способа
// оплаты и несёт список поддерживаемых ключей.
type UnsupportedPaymentMethodError struct {
	Method    string
	Available []string
}

func (e *UnsupportedPaymentMethodError) Error() string {
	return fmt.Sprintf("payment method %q is not supported, available methods: %s",
		e.Method, strings.Join(e.Available, ", "))
}

// IsInvalidArgument проверяет, относится ли ошибка к ошибкам валидации входа.
// Такие ошибки возникают до любых побочных эффектов.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrPaymentMethodRequired) ||
		errors.Is(err, ErrPaymentValueInvalid) ||
		errors.Is(err, ErrCustomerIDInvalid) ||
		errors.Is(err, ErrPurchaseValueInvalid)
}

// IsNotFound проверяет, относится ли ошибка к отсутствию сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

// IsUnsupportedMethod проверяет, является ли ошибка неизвестным способом оплаты.
func IsUnsupportedMethod(err error) bool {
	var target *UnsupportedPaymentMethodError
	return errors.As(err, &target)
}
