package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache holds one parsed copy per configuration type.
type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	store = &cache{values: make(map[reflect.Type]any)}

	dotenvOnce sync.Once
)

// LoadEnv reads the given .env files into the process environment.
// Variables that are already set win over file values, and earlier files
// win over later ones. Without arguments it reads ./.env if present.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		dotenvOnce.Do(func() { _ = godotenv.Load() })
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrEnvFile, err)
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Load parses the environment into v. The first successful parse of a type
// is cached, later calls for the same type copy the cached value.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	_ = LoadEnv()

	key := reflect.TypeFor[T]()

	store.mu.Lock()
	defer store.mu.Unlock()

	if cached, ok := store.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	store.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load %T: %v", *v, err))
	}
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	store.mu.Lock()
	store.values = make(map[reflect.Type]any)
	store.mu.Unlock()
}
