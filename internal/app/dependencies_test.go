package app

import (
	"context"
	"testing"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/health"
)

func TestNewDependencies_Memory(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps.Close()

	if deps.UOW == nil {
		t.Fatal("unit of work should be initialized")
	}
	if deps.Store != nil {
		t.Fatal("memory storage should not open a postgres store")
	}
	if deps.Producer != nil {
		t.Fatal("kafka producer should be nil without brokers")
	}
	if deps.Orders == nil || deps.Eligibility == nil || deps.Allocator == nil || deps.Catalog == nil {
		t.Fatal("all domain services should be initialized")
	}
}

func TestNewDependencies_UnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "sqlite"

	if _, err := NewDependencies(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}

func TestRegisterHealthCheckers_MemoryHasNoStoreCheck(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps.Close()

	// Без postgres регистрация не должна падать и не добавляет проверок.
	handler := health.NewHandler("test")
	deps.RegisterHealthCheckers(handler)
}
