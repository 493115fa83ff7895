package i18n

// Package i18n models the "string or language-keyed object" JSON shape used
// by catalog names, descriptions, and section titles, as an explicit tagged
// union with a deterministic resolution order.

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
)

// DefaultFallbackChain is the platform language preference order.
var DefaultFallbackChain = []string{"pt-BR", "en", "es"}

// Text is either plain text or a mapping of language tag to text. Exactly one
// of the two representations is populated.
type Text struct {
	plain     string
	localized map[string]string
	isPlain   bool
}

// Plain constructs a plain-text value.
func Plain(s string) Text {
	return Text{plain: s, isPlain: true}
}

// Localized constructs a language-keyed value.
func Localized(m map[string]string) Text {
	return Text{localized: m}
}

// IsZero reports whether the value carries no text at all.
func (t Text) IsZero() bool {
	return !t.isPlain && len(t.localized) == 0
}

// Resolve returns the text for the preferred language, walking the fallback
// chain and finally any available translation. Plain text resolves to itself
// regardless of language.
func (t Text) Resolve(preferred string, fallbacks ...string) string {
	if t.isPlain {
		return t.plain
	}
	if len(t.localized) == 0 {
		return ""
	}

	chain := fallbacks
	if len(chain) == 0 {
		chain = DefaultFallbackChain
	}
	candidates := append([]string{preferred}, chain...)
	for _, lang := range candidates {
		if lang == "" {
			continue
		}
		if s, ok := t.localized[lang]; ok && s != "" {
			return s
		}
	}

	// Last resort: first available translation. Walk the default chain once
	// more so the pick is deterministic, then give up determinism for maps
	// with only exotic tags.
	for _, lang := range DefaultFallbackChain {
		if s, ok := t.localized[lang]; ok && s != "" {
			return s
		}
	}
	for _, s := range t.localized {
		if s != "" {
			return s
		}
	}
	return ""
}

// UnmarshalJSON accepts a JSON string, a language-keyed object, or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Text{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Plain(s)
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("localized text must be a string or an object of strings: %w", err)
	}
	*t = Localized(m)
	return nil
}

// MarshalJSON renders the value back in its original shape.
func (t Text) MarshalJSON() ([]byte, error) {
	if t.isPlain {
		return json.Marshal(t.plain)
	}
	if t.localized == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.localized)
}

// matcher ranks requested languages against the supported set; order matters,
// the first entry doubles as the final fallback.
var matcher = language.NewMatcher([]language.Tag{
	language.MustParse("pt-BR"),
	language.English,
	language.Spanish,
})

// MatchLanguage picks the best supported language tag for an Accept-Language
// header value. An empty or unparseable header yields the platform default.
func MatchLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultFallbackChain[0]
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultFallbackChain[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return DefaultFallbackChain[idx]
}

// IsSupported reports whether lang is one of the platform languages.
func IsSupported(lang string) bool {
	for _, l := range DefaultFallbackChain {
		if l == lang {
			return true
		}
	}
	return false
}
