package tgbotkit

import (
	"errors"
	"net/http"

	"tgbotkit/tgconfig"
	"tgbotkit/transport"
)

// Bot is the thin, cheap-to-copy facade: a token, an HTTP client, and a base
// URL, bound together through an Executor. It owns no mutable state of its
// own (the adaptor stack's mutable state lives in the adaptors themselves —
// the cache cell, the throttle worker), matching spec.md §3's "Bot handle"
// invariant.
//
// Every adaptor in package adaptors returns a Bot with the same method set,
// only the Executor field changed — see DESIGN.md for why that's the
// idiomatic Go analogue of the spec's "adaptor implements the same facade"
// requirement.
type Bot struct {
	exec Executor
}

// New builds a Bot that talks to the given base URL (default
// "https://api.telegram.org") using token for authentication. httpClient may
// be nil to use http.DefaultClient's timeouts overridden with this module's
// defaults (see transport.DefaultTimeouts).
func New(token, baseURL string, httpClient *http.Client) Bot {
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	return Bot{exec: transport.NewClient(token, baseURL, httpClient)}
}

// FromEnv builds a Bot from TGBOTKIT_TOKEN / TGBOTKIT_API_URL / TGBOTKIT_PROXY,
// per spec.md §6. It panics if TGBOTKIT_PROXY is set but fails to parse, and
// returns an error if TGBOTKIT_TOKEN is unset.
func FromEnv() (Bot, error) {
	cfg := tgconfig.MustParse()
	if cfg.Token == "" {
		return Bot{}, &Error{Kind: KindInvalidURL, Err: errEmptyToken}
	}

	var httpClient *http.Client
	if cfg.ProxyURL != nil {
		httpClient = &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(cfg.ProxyURL)}}
	}
	return New(cfg.Token, cfg.APIURL, httpClient), nil
}

var errEmptyToken = errors.New("TGBOTKIT_TOKEN is not set")

// WithExecutor returns a copy of b using exec instead of its current
// Executor. Package adaptors uses this to layer cache/throttle/trace/
// default-parse-mode decorators around an existing Bot's Executor.
func (b Bot) WithExecutor(exec Executor) Bot { return Bot{exec: exec} }

// Executor exposes the bound Executor so adaptors can wrap it.
func (b Bot) Executor() Executor { return b.exec }
