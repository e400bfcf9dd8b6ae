// Package generators ships the built-in effect generators and a factory
// registry hosts install them from. Each generator is self-contained: it
// receives everything it needs through the effect contexts and owns no
// goroutines.
package generators

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/minipuft/starrynight/effect"
)

// Factory builds a fresh generator instance
type Factory func() effect.Generator

// Registrar is the slice of the coordinator the installer needs.
// effect.Coordinator and engine.Engine both satisfy it
type Registrar interface {
	Register(gen effect.Generator, priority effect.Priority) error
}

type factoryEntry struct {
	factory  Factory
	priority effect.Priority
}

var (
	mu        sync.RWMutex
	factories = make(map[string]factoryEntry)
)

// register adds a built-in factory. Called from file init funcs, so the
// map is complete before any caller can reach it
func register(name string, priority effect.Priority, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factoryEntry{factory: f, priority: priority}
}

// Names returns the registered generator names, sorted
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named generator and reports its default priority
func New(name string) (effect.Generator, effect.Priority, bool) {
	mu.RLock()
	e, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, 0, false
	}
	return e.factory(), e.priority, true
}

// InstallAll registers every built-in generator in name order. Builtins
// needing a tier above the device ceiling are skipped, not errors: a
// low-end host runs the rest of the set. Any other registration failure
// aborts the install
func InstallAll(log *slog.Logger, r Registrar) error {
	for _, name := range Names() {
		gen, priority, _ := New(name)
		if err := r.Register(gen, priority); err != nil {
			if errors.Is(err, effect.ErrTierUnsupported) {
				log.Info("builtin skipped, device ceiling too low",
					"generator", name, "min_tier", gen.MinTier().String())
				continue
			}
			return fmt.Errorf("generators: install %q: %w", name, err)
		}
	}
	return nil
}
