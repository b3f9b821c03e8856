package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Package providers contains pluggable news source configs (YAML/JSON) and fetchers.

type Provider struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Type           string         `json:"type" yaml:"type"`
	SourceURL      string         `json:"source_url" yaml:"source_url"`
	ResponseFormat string         `json:"response_format" yaml:"response_format"`
	RequestDelayMs int            `json:"request_delay_ms" yaml:"request_delay_ms"`
	Config         map[string]any `json:"config" yaml:"config"`
}

type registryFile struct {
	Providers []Provider `json:"providers" yaml:"providers"`
}

// Registry holds the validated provider entries in file order.
type Registry struct {
	providers []Provider
	idx       map[string]Provider
}

const (
	defaultRequestDelayMs = 500

	DefaultProviderID        = "cryptocompare"
	DefaultCryptoCompareNews = "https://min-api.cryptocompare.com/data/v2/news/"
)

// DefaultProvider is the built-in CryptoCompare news listing.
func DefaultProvider() Provider {
	return sanitizeProvider(Provider{
		ID:             DefaultProviderID,
		Name:           "CryptoCompare News",
		Type:           ProviderTypeCryptoCompare,
		SourceURL:      DefaultCryptoCompareNews,
		ResponseFormat: "json",
		Config:         map[string]any{ConfigLangKey: "EN"},
	})
}

// DefaultRegistry returns a registry holding only DefaultProvider.
func DefaultRegistry() *Registry {
	p := DefaultProvider()
	return &Registry{
		providers: []Provider{p},
		idx:       map[string]Provider{p.ID: p},
	}
}

// LoadRegistry loads the provider registry from file. A missing file yields
// DefaultRegistry so the reader works without any configuration.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultRegistry(), nil
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open providers file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read providers file: %w", err)
	}

	return parseRegistryFile(raw, filepath.Ext(path))
}

func parseRegistryFile(raw []byte, ext string) (*Registry, error) {
	file, err := parseRegistry(raw, ext)
	if err != nil {
		return nil, err
	}
	if len(file.Providers) == 0 {
		return nil, errors.New("providers file contains no providers entries")
	}

	reg := &Registry{
		providers: make([]Provider, 0, len(file.Providers)),
		idx:       make(map[string]Provider, len(file.Providers)),
	}
	for i := range file.Providers {
		p := sanitizeProvider(file.Providers[i])
		if err := validateProvider(p); err != nil {
			return nil, fmt.Errorf("provider[%d]: %w", i, err)
		}
		if _, exists := reg.idx[p.ID]; exists {
			return nil, fmt.Errorf("duplicate provider id %q", p.ID)
		}
		reg.providers = append(reg.providers, p)
		reg.idx[p.ID] = p
	}
	return reg, nil
}

// All returns a copy of the providers in file order.
func (r *Registry) All() []Provider {
	if r == nil || len(r.providers) == 0 {
		return nil
	}
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// ByID returns the provider entry for the given id.
func (r *Registry) ByID(id string) (Provider, bool) {
	id = strings.TrimSpace(id)
	if r == nil || id == "" {
		return Provider{}, false
	}
	p, ok := r.idx[id]
	return p, ok
}

func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if reg, err := unmarshalRegistry(d.name, data, d.fn); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("providers file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalRegistry(name string, data []byte, fn unmarshalFn) (registryFile, error) {
	var reg registryFile
	if err := fn(data, &reg); err != nil {
		return registryFile{}, fmt.Errorf("decode %s providers: %w", name, err)
	}
	return reg, nil
}

func sanitizeProvider(p Provider) Provider {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
	p.SourceURL = strings.TrimSpace(p.SourceURL)
	p.ResponseFormat = strings.ToLower(strings.TrimSpace(p.ResponseFormat))

	if p.Config == nil {
		p.Config = map[string]any{}
	}
	if p.RequestDelayMs <= 0 {
		p.RequestDelayMs = defaultRequestDelayMs
	}
	if p.ResponseFormat == "" {
		p.ResponseFormat = "json"
	}

	return p
}

func validateProvider(p Provider) error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required for provider %q", p.ID)
	}
	if p.Type == "" {
		return fmt.Errorf("type is required for provider %q", p.ID)
	}
	if p.SourceURL == "" {
		return fmt.Errorf("source_url is required for provider %q", p.ID)
	}
	if p.ResponseFormat != "json" {
		return fmt.Errorf("unsupported response_format %q for provider %q", p.ResponseFormat, p.ID)
	}
	return nil
}

// RequestDelay returns the per-request throttle duration for the provider.
func (p Provider) RequestDelay() time.Duration {
	if p.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(p.RequestDelayMs) * time.Millisecond
}
