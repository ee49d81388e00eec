// Package config loads typed configuration from the environment.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct tags. Each configuration type is
// parsed once and cached for the lifetime of the process:
//
//	type Config struct {
//		Addr      string `env:"HTTP_ADDR" envDefault:":8080"`
//		ServiceID string `env:"EMAILJS_SERVICE_ID" envDefault:"service_0awikrb"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Load reads ./.env once before the first parse. Call LoadEnv with explicit
// paths to read other files, and Reset in tests that change the environment.
package config
