package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
)

func TestProducer_PublishOrderEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndSucceed()

	event := NewOrderEvent(
		EventTypeOrderPlaced,
		42,
		7,
		"pix",
		"150.00",
		map[string]interface{}{
			"receipt": "rcpt-1",
		},
	)

	if err := producer.PublishOrderEvent(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	event := NewOrderEvent(EventTypeOrderPaymentFailed, 0, 7, "paypal", "99.90", nil)

	if err := producer.PublishEvent(TopicOrderEvents, "7", event); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishNumberEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndSucceed()

	if err := producer.PublishNumberEvent(NewNumberEvent(3, 57)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOrderEvent(t *testing.T) {
	metadata := map[string]interface{}{
		"receipt": "rcpt-9",
	}

	event := NewOrderEvent(EventTypeOrderPlaced, 5, 12, "creditcard", "10.50", metadata)

	if event.EventType != EventTypeOrderPlaced {
		t.Errorf("expected event type %s, got %s", EventTypeOrderPlaced, event.EventType)
	}

	if event.OrderID != 5 {
		t.Errorf("expected order id 5, got %d", event.OrderID)
	}

	if event.CustomerID != 12 {
		t.Errorf("expected customer id 12, got %d", event.CustomerID)
	}

	if event.Method != "creditcard" {
		t.Errorf("expected method creditcard, got %s", event.Method)
	}

	if event.Value != "10.50" {
		t.Errorf("expected value 10.50, got %s", event.Value)
	}

	if event.Metadata["receipt"] != "rcpt-9" {
		t.Error("metadata not set correctly")
	}

	if event.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}

	if time.Since(event.Timestamp) > time.Second {
		t.Error("timestamp should be close to current time")
	}
}

func TestNewNumberEvent(t *testing.T) {
	event := NewNumberEvent(8, 42)

	if event.EventType != EventTypeNumberAllocated {
		t.Errorf("expected event type %s, got %s", EventTypeNumberAllocated, event.EventType)
	}

	if event.NumberID != 8 {
		t.Errorf("expected number id 8, got %d", event.NumberID)
	}

	if event.Number != 42 {
		t.Errorf("expected number 42, got %d", event.Number)
	}

	if event.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}
}
