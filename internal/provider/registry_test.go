package provider

import (
	"errors"
	"slices"
	"testing"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/logger"
)

func newRubyProvider() *Keyed {
	return NewKeyed("gems", "gems:id", map[string]*domain.Item{
		"ruby": domain.NewItem("EMERALD", 1),
	})
}

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry(logger.New(logger.LevelOff, nil))

	if _, ok := reg.Enabled("gems"); ok {
		t.Fatal("empty registry should have no providers")
	}
	if err := reg.Register(newRubyProvider()); err != nil {
		t.Fatalf("register: %v", err)
	}

	p, ok := reg.Enabled("GEMS")
	if !ok || p.Name() != "gems" {
		t.Fatalf("expected gems provider, got %v %v", p, ok)
	}

	if err := reg.Disable("gems"); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if _, ok := reg.Enabled("gems"); ok {
		t.Fatal("disabled provider should not be returned")
	}
	if len(reg.Names()) != 0 {
		t.Fatalf("expected no enabled names, got %v", reg.Names())
	}

	if err := reg.Enable("gems"); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !slices.Equal(reg.Names(), []string{"gems"}) {
		t.Fatalf("expected [gems], got %v", reg.Names())
	}

	if err := reg.Disable("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegisterRejects(t *testing.T) {
	reg := NewRegistry(logger.New(logger.LevelOff, nil))

	tests := []struct {
		name     string
		provider domain.Provider
	}{
		{"empty name", &Funcs{ProviderName: " "}},
		{"reserved material", &Funcs{ProviderName: "material"}},
		{"reserved tag", &Funcs{ProviderName: "TAG"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := reg.Register(tt.provider); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if err := reg.Register(&Funcs{ProviderName: "dup"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(&Funcs{ProviderName: "DUP"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestKeyedProvider(t *testing.T) {
	p := newRubyProvider()

	if err := p.Validate("ruby"); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := p.Validate("sapphire"); err == nil {
		t.Fatal("expected unknown id to fail validation")
	}

	ruby, err := p.Resolve("ruby", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !p.Matches("ruby", ruby) {
		t.Fatal("resolved item should match its own id")
	}

	plain := domain.NewItem("EMERALD", 1)
	if p.Matches("ruby", plain) {
		t.Fatal("plain emerald should not match the ruby id")
	}

	wrongType := ruby.Clone()
	wrongType.Type = "DIAMOND"
	if p.Matches("ruby", wrongType) {
		t.Fatal("wrong material should not match")
	}

	ruby.Meta.Data["gems:id"] = "tampered"
	again, _ := p.Resolve("ruby", nil)
	if id, _ := again.Value("gems:id"); id != "ruby" {
		t.Fatalf("resolve should return an independent copy, got id %q", id)
	}
}

func TestFuncsDefaults(t *testing.T) {
	f := &Funcs{ProviderName: "bare"}
	if err := f.Validate("x"); err != nil {
		t.Fatalf("expected nil validate, got %v", err)
	}
	if f.Matches("x", domain.NewItem("DIRT", 1)) {
		t.Fatal("nil MatchFunc should reject")
	}
	if _, err := f.Resolve("x", nil); !errors.Is(err, domain.ErrUnresolvedResult) {
		t.Fatalf("expected ErrUnresolvedResult, got %v", err)
	}
}
