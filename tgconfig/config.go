// Package tgconfig loads the environment-variable configuration used by the
// bot facade's "from env" constructor and by the example binaries under
// cmd/. It follows the same shape as a typical deployment config loader:
// read a .env file if present, fall back to the real environment, validate,
// and expose the result through a read-lock-guarded singleton plus a
// side-effect-free Parse for callers (and tests) that want their own copy.
package tgconfig

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Env var names recognized by Parse / Load.
const (
	EnvToken  = "TGBOTKIT_TOKEN"
	EnvProxy  = "TGBOTKIT_PROXY"
	EnvAPIURL = "TGBOTKIT_API_URL"
)

const defaultAPIURL = "https://api.telegram.org"

// Config is the validated result of reading the environment.
type Config struct {
	Token    string   // bot authentication token; required
	ProxyURL *url.URL // optional HTTP proxy; nil if unset
	APIURL   string   // base API URL; defaults to defaultAPIURL
}

var (
	mu       sync.RWMutex
	loaded   bool
	instance Config
)

// Load reads envPath (if non-empty) via godotenv, then parses the process
// environment into the package-level singleton. Calling Load more than once
// reloads the singleton; it is not an error to call it again, unlike the
// teacher's one-shot config loader, since a long-running dispatcher process
// may want to pick up a rotated token between restarts of the bot facade.
func Load(envPath string) error {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("tgconfig: load .env: %w", err)
		}
	}

	cfg, err := Parse()
	if err != nil {
		return err
	}

	mu.Lock()
	instance = cfg
	loaded = true
	mu.Unlock()
	return nil
}

// Parse reads the current process environment into a Config without
// touching the package singleton. Proxy URLs that fail to parse are a hard
// error, matching the "constructor panics on malformed proxy" contract from
// the external-interfaces section of the spec — Parse returns an error
// instead of panicking so callers decide whether to panic.
func Parse() (Config, error) {
	cfg := Config{
		Token:  strings.TrimSpace(os.Getenv(EnvToken)),
		APIURL: defaultAPIURL,
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}

	if v := strings.TrimSpace(os.Getenv(EnvProxy)); v != "" {
		u, err := url.Parse(v)
		if err != nil {
			return Config{}, fmt.Errorf("tgconfig: invalid %s: %w", EnvProxy, err)
		}
		cfg.ProxyURL = u
	}

	return cfg, nil
}

// MustParse is Parse, but panics on a malformed proxy URL — for callers that
// want the "constructor panics" behavior the spec describes for the
// from-env factory.
func MustParse() Config {
	cfg, err := Parse()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Current returns the last value passed to Load. Calling it before Load
// returns the zero Config (empty token, default API URL).
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// IsLoaded reports whether Load has been called at least once.
func IsLoaded() bool {
	mu.RLock()
	defer mu.RUnlock()
	return loaded
}
