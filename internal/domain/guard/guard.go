package guard

// Package guard holds the route-level access decision: given a required role
// set and the current session, decide whether to render, send the visitor to
// login, or bounce to a fallback page. The HTTP layer only executes the
// decision; all policy lives here so it stays testable in isolation.

import (
	"net/url"
	"strings"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
)

// Outcome enumerates the possible guard decisions.
type Outcome int

const (
	// Allow renders the guarded subtree.
	Allow Outcome = iota
	// RedirectToLogin sends the visitor to the login page with the current
	// path preserved as a returnTo target.
	RedirectToLogin
	// RedirectToFallback bounces an authenticated visitor who lacks every
	// required role.
	RedirectToFallback
)

// DefaultLoginPath and DefaultFallbackPath are used when a Requirement leaves
// the corresponding field empty.
const (
	DefaultLoginPath    = "/login"
	DefaultFallbackPath = "/"
)

// Requirement is the role metadata attached to a protected route. It is
// evaluated per navigation and never persisted.
type Requirement struct {
	Roles        []domainauth.Role
	LoginPath    string // defaults to DefaultLoginPath
	FallbackPath string // defaults to DefaultFallbackPath
}

// Decision is the result of evaluating a Requirement against a session.
// Target is only meaningful for the redirect outcomes.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Evaluate applies the guard rule. Authentication takes precedence over role
// membership: an unauthenticated visitor always goes to login, never to the
// fallback. Role matching is "any of": one required role suffices.
func (req Requirement) Evaluate(session *domainauth.Session, currentPath string) Decision {
	if session == nil {
		return Decision{Outcome: RedirectToLogin, Target: req.loginTarget(currentPath)}
	}
	if !session.HasAnyRole(req.Roles...) {
		return Decision{Outcome: RedirectToFallback, Target: req.fallbackTarget()}
	}
	return Decision{Outcome: Allow}
}

// loginTarget appends returnTo to the login path, joining with & when the
// configured path already carries a query string.
func (req Requirement) loginTarget(currentPath string) string {
	login := req.LoginPath
	if login == "" {
		login = DefaultLoginPath
	}
	if currentPath == "" {
		return login
	}
	sep := "?"
	if strings.Contains(login, "?") {
		sep = "&"
	}
	return login + sep + "returnTo=" + url.QueryEscape(currentPath)
}

func (req Requirement) fallbackTarget() string {
	if req.FallbackPath != "" {
		return req.FallbackPath
	}
	return DefaultFallbackPath
}
