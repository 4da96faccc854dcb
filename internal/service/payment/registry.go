package payment

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

// Registry хранит процессоры платежей по имени метода.
// Поиск регистронезависимый; после создания реестр не изменяется,
// поэтому безопасен для конкурентного чтения.
type Registry struct {
	processors map[string]domain.PaymentProcessor
	methods    []string
}

// NewRegistry создаёт реестр из переданных процессоров.
// Последний процессор с одинаковым именем метода выигрывает.
func NewRegistry(processors ...domain.PaymentProcessor) *Registry {
	byMethod := make(map[string]domain.PaymentProcessor, len(processors))
	for _, p := range processors {
		byMethod[strings.ToLower(p.Method())] = p
	}

	methods := make([]string, 0, len(byMethod))
	for method := range byMethod {
		methods = append(methods, method)
	}
	sort.Strings(methods)

	return &Registry{processors: byMethod, methods: methods}
}

// NewDefaultRegistry создаёт реестр со встроенными процессорами:
// pix, creditcard и paypal.
func NewDefaultRegistry(logger *log.Entry) *Registry {
	return NewRegistry(
		NewPix(logger),
		NewCreditCard(logger),
		NewPaypal(logger),
	)
}

// Resolve возвращает процессор для метода оплаты без учёта регистра.
// Для неизвестного метода возвращается UnsupportedPaymentMethodError
// со списком доступных методов.
func (r *Registry) Resolve(method string) (domain.PaymentProcessor, error) {
	p, ok := r.processors[strings.ToLower(strings.TrimSpace(method))]
	if !ok {
		return nil, &domain.UnsupportedPaymentMethodError{
			Method:    method,
			Available: r.Methods(),
		}
	}
	return p, nil
}

// Methods возвращает отсортированный список доступных методов оплаты.
func (r *Registry) Methods() []string {
	out := make([]string, len(r.methods))
	copy(out, r.methods)
	return out
}
