package payment

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

func TestRegistry_ResolveCaseInsensitive(t *testing.T) {
	t.Parallel()

	registry := NewDefaultRegistry(nil)

	for _, method := range []string{"pix", "PIX", "Pix", " creditcard ", "PayPal"} {
		p, err := registry.Resolve(method)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", method, err)
		}
		if p == nil {
			t.Fatalf("Resolve(%q) returned nil processor", method)
		}
	}
}

func TestRegistry_ResolveUnknownMethod(t *testing.T) {
	t.Parallel()

	registry := NewDefaultRegistry(nil)

	_, err := registry.Resolve("bitcoin")
	if err == nil {
		t.Fatal("expected error for unknown method")
	}

	var unsupported *domain.UnsupportedPaymentMethodError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedPaymentMethodError, got %T", err)
	}
	if unsupported.Method != "bitcoin" {
		t.Fatalf("unexpected method in error: %q", unsupported.Method)
	}
	if !reflect.DeepEqual(unsupported.Available, []string{"creditcard", "paypal", "pix"}) {
		t.Fatalf("unexpected available methods: %v", unsupported.Available)
	}
	if !strings.Contains(err.Error(), "creditcard") {
		t.Fatalf("error should list available methods: %v", err)
	}
}

func TestRegistry_LastProcessorWins(t *testing.T) {
	t.Parallel()

	first := NewMockProcessor("pix")
	second := NewMockProcessor("PIX")

	registry := NewRegistry(first, second)

	p, err := registry.Resolve("pix")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p != second {
		t.Fatal("expected the later registration to win")
	}
	if len(registry.Methods()) != 1 {
		t.Fatalf("expected a single method, got %v", registry.Methods())
	}
}

func TestRegistry_MethodsReturnsCopy(t *testing.T) {
	t.Parallel()

	registry := NewDefaultRegistry(nil)

	methods := registry.Methods()
	methods[0] = "mutated"

	if registry.Methods()[0] == "mutated" {
		t.Fatal("Methods should return a copy")
	}
}

func TestSimulatedProcessor_Approves(t *testing.T) {
	t.Parallel()

	registry := NewDefaultRegistry(nil)
	p, err := registry.Resolve("pix")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	ok, err := p.Process(context.Background(), decimal.NewFromInt(150))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !ok {
		t.Fatal("expected payment to be approved")
	}
}

func TestSimulatedProcessor_ContextCanceled(t *testing.T) {
	t.Parallel()

	p := NewCreditCard(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ok, err := p.Process(ctx, decimal.NewFromInt(10))
	if ok {
		t.Fatal("canceled payment should not be approved")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestMockProcessor(t *testing.T) {
	t.Parallel()

	mock := NewMockProcessor("pix")

	ok, err := mock.Process(context.Background(), decimal.NewFromInt(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected approval by default")
	}

	mock.Approved = false
	mock.Err = errors.New("gateway down")

	if _, err := mock.Process(context.Background(), decimal.NewFromInt(1)); err == nil {
		t.Fatal("expected error")
	}

	if mock.ProcessCalls != 2 {
		t.Fatalf("unexpected call counter: %d", mock.ProcessCalls)
	}
	if !mock.LastAmount.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("unexpected last amount: %s", mock.LastAmount)
	}
}
