package domain

// Customer представляет зарегистрированного покупателя.
// Клиенты создаются вне ядра (регистрация/seed), ядро их только читает.
type Customer struct {
	ID   int64
	Name string
}

// Validate проверяет базовые инварианты клиента.
func (c *Customer) Validate() []error {
	var errs []error

	if c.ID < 0 {
		errs = append(errs, ErrCustomerIDInvalid)
	}
	if c.Name == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}

	return errs
}
