package providers

import (
	"fmt"
	"sort"

	"pushresume/internal/config"
)

// Registry - неизменяемый набор провайдеров, собранный один раз при
// старте процесса и передаваемый зависимым компонентам по ссылке.
type Registry struct {
	providers map[string]Provider
}

// Build конструирует закрытый набор провайдеров из конфигурации.
// Неизвестное имя провайдера - ошибка старта, а не рантайма.
func Build(cfg *config.Config) (*Registry, error) {
	registry := &Registry{providers: make(map[string]Provider)}

	for name, providerCfg := range cfg.Providers {
		var provider Provider

		switch name {
		case "headhunter":
			provider = NewHeadHunter(name, providerCfg)
		case "superjob":
			provider = NewSuperJob(name, providerCfg)
		default:
			return nil, fmt.Errorf("unknown provider %q in config", name)
		}

		registry.providers[name] = provider
	}

	return registry, nil
}

// NewRegistry собирает Registry из готовых провайдеров (для тестов).
func NewRegistry(list ...Provider) *Registry {
	registry := &Registry{providers: make(map[string]Provider, len(list))}
	for _, p := range list {
		registry.providers[p.Name()] = p
	}
	return registry
}

// Get возвращает провайдера по имени.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names - отсортированный список имен провайдеров.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
