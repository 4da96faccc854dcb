package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrder_Validate(t *testing.T) {
	valid := Order{
		CustomerID: 1,
		Value:      decimal.NewFromFloat(100.50),
		OrderDate:  time.Now().UTC(),
	}

	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	tests := []struct {
		name    string
		mutate  func(*Order)
		wantErr error
	}{
		{"zero customer", func(o *Order) { o.CustomerID = 0 }, ErrCustomerIDInvalid},
		{"negative customer", func(o *Order) { o.CustomerID = -3 }, ErrCustomerIDInvalid},
		{"zero value", func(o *Order) { o.Value = decimal.Zero }, ErrPaymentValueInvalid},
		{"negative value", func(o *Order) { o.Value = decimal.NewFromInt(-1) }, ErrPaymentValueInvalid},
		{"zero date", func(o *Order) { o.OrderDate = time.Time{} }, ErrOrderDateRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := valid
			tt.mutate(&order)

			errs := order.Validate()
			found := false
			for _, err := range errs {
				if errors.Is(err, tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %v in %v", tt.wantErr, errs)
			}
		})
	}
}

func TestOrder_InBrazilTime(t *testing.T) {
	utc := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	order := Order{ID: 1, CustomerID: 1, Value: decimal.NewFromInt(10), OrderDate: utc}

	converted := order.InBrazilTime()

	// Момент времени не меняется, меняется только представление.
	if !converted.OrderDate.Equal(utc) {
		t.Fatalf("instant changed: %v != %v", converted.OrderDate, utc)
	}
	if converted.OrderDate.Hour() != 9 {
		t.Errorf("expected wall clock 09:00 at UTC-3, got %d", converted.OrderDate.Hour())
	}
	_, offset := converted.OrderDate.Zone()
	if offset != -3*60*60 {
		t.Errorf("expected fixed -3h offset, got %d", offset)
	}

	// Исходный заказ остаётся в UTC.
	if order.OrderDate.Location() != time.UTC {
		t.Error("original order date must stay in UTC")
	}
}
