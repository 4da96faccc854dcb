package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PurchaseMetrics содержит метрики процесса оформления покупки.
type PurchaseMetrics struct {
	// Счётчики операций
	ordersPlaced prometheus.Counter
	ordersFailed prometheus.Counter

	// Исходы платежей по методам оплаты
	paymentsProcessed *prometheus.CounterVec
	paymentsFailed    *prometheus.CounterVec

	// Результаты проверки права на покупку
	eligibilityAllowed prometheus.Counter
	eligibilityDenied  prometheus.Counter

	// Генератор уникальных чисел
	allocationAttempts prometheus.Histogram
	allocationFailed   prometheus.Counter

	// Гистограммы времени выполнения
	orderDuration prometheus.Histogram
	stepDuration  *prometheus.HistogramVec

	// Gauge для заказов в обработке
	ordersInFlight prometheus.Gauge
}

// NewPurchaseMetrics создаёт новый экземпляр метрик покупки.
func NewPurchaseMetrics() *PurchaseMetrics {
	return newPurchaseMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newPurchaseMetricsWithRegisterer(registerer prometheus.Registerer) *PurchaseMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PurchaseMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "provapub_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "provapub_orders_failed_total",
			Help: "Total number of order placements that failed",
		}),
		paymentsProcessed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "provapub_payments_processed_total",
			Help: "Total number of payments processed per payment method",
		}, []string{"method"}),
		paymentsFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "provapub_payments_failed_total",
			Help: "Total number of failed payments per payment method",
		}, []string{"method"}),
		eligibilityAllowed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "provapub_eligibility_allowed_total",
			Help: "Total number of purchase eligibility checks that passed",
		}),
		eligibilityDenied: registerCounter(registerer, prometheus.CounterOpts{
			Name: "provapub_eligibility_denied_total",
			Help: "Total number of purchase eligibility checks that failed",
		}),
		allocationAttempts: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "provapub_random_allocation_attempts",
			Help:    "Number of attempts needed to allocate a unique random number",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		allocationFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "provapub_random_allocation_failed_total",
			Help: "Total number of random number allocations that exhausted all attempts",
		}),
		orderDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "provapub_order_duration_seconds",
			Help:    "Duration of order placement in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		stepDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "provapub_order_step_duration_seconds",
			Help:    "Duration of individual order placement steps in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"step"}),
		ordersInFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "provapub_orders_in_flight",
			Help: "Number of orders currently being processed",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderPlaced увеличивает счётчик успешно оформленных заказов.
func (m *PurchaseMetrics) RecordOrderPlaced() {
	m.ordersPlaced.Inc()
}

// RecordOrderFailed увеличивает счётчик неудачных оформлений.
func (m *PurchaseMetrics) RecordOrderFailed() {
	m.ordersFailed.Inc()
}

// RecordPaymentProcessed увеличивает счётчик обработанных платежей по методу.
func (m *PurchaseMetrics) RecordPaymentProcessed(method string) {
	m.paymentsProcessed.WithLabelValues(method).Inc()
}

// RecordPaymentFailed увеличивает счётчик неудачных платежей по методу.
func (m *PurchaseMetrics) RecordPaymentFailed(method string) {
	m.paymentsFailed.WithLabelValues(method).Inc()
}

// RecordEligibilityAllowed увеличивает счётчик пройденных проверок.
func (m *PurchaseMetrics) RecordEligibilityAllowed() {
	m.eligibilityAllowed.Inc()
}

// RecordEligibilityDenied увеличивает счётчик отклонённых проверок.
func (m *PurchaseMetrics) RecordEligibilityDenied() {
	m.eligibilityDenied.Inc()
}

// RecordAllocationAttempts записывает количество попыток генерации числа.
func (m *PurchaseMetrics) RecordAllocationAttempts(attempts int) {
	m.allocationAttempts.Observe(float64(attempts))
}

// RecordAllocationFailed увеличивает счётчик исчерпанных генераций.
func (m *PurchaseMetrics) RecordAllocationFailed() {
	m.allocationFailed.Inc()
}

// RecordOrderDuration записывает время оформления заказа.
func (m *PurchaseMetrics) RecordOrderDuration(duration time.Duration) {
	m.orderDuration.Observe(duration.Seconds())
}

// RecordStepDuration записывает время выполнения шага оформления.
func (m *PurchaseMetrics) RecordStepDuration(step string, duration time.Duration) {
	m.stepDuration.WithLabelValues(step).Observe(duration.Seconds())
}

// RecordOrderInFlightStarted увеличивает количество заказов в обработке.
func (m *PurchaseMetrics) RecordOrderInFlightStarted() {
	m.ordersInFlight.Inc()
}

// RecordOrderInFlightFinished уменьшает количество заказов в обработке.
func (m *PurchaseMetrics) RecordOrderInFlightFinished() {
	m.ordersInFlight.Dec()
}
