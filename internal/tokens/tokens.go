// Package tokens validates, classifies and holds the GitHub credential
// used by the API clients. Tokens live in memory only and are never
// persisted by this package.
package tokens

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"golang.org/x/oauth2"
)

// Kind classifies a credential by its shape.
type Kind string

const (
	KindClassic     Kind = "classic"      // ghp_ personal access token
	KindFineGrained Kind = "fine_grained" // github_pat_ fine-grained token
	KindApp         Kind = "app"          // ghs_ installation token
	KindLegacyHex   Kind = "legacy_hex"   // pre-2021 40-char hex token
	KindOAuth       Kind = "oauth"        // generic OAuth-style fallback
)

const (
	// minTokenLen and maxTokenLen gate SetToken before any shape match.
	minTokenLen = 40
	maxTokenLen = 255

	// presenceMinLen is the looser bar used by HasValidToken. A token
	// injected through the environment never passes Classify, so
	// presence is judged by length alone.
	presenceMinLen = 20
)

var shapes = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{KindClassic, regexp.MustCompile(`^ghp_[A-Za-z0-9]{36}$`)},
	{KindFineGrained, regexp.MustCompile(`^github_pat_[A-Za-z0-9_]{82}$`)},
	{KindApp, regexp.MustCompile(`^ghs_[A-Za-z0-9]{36}$`)},
	{KindLegacyHex, regexp.MustCompile(`^[a-f0-9]{40}$`)},
	{KindOAuth, regexp.MustCompile(`^[A-Za-z0-9_-]{20,255}$`)},
}

// InvalidCredentialError reports a credential rejected by Classify.
type InvalidCredentialError struct {
	Reason string
}

func (e *InvalidCredentialError) Error() string {
	return "invalid credential: " + e.Reason
}

// Classify matches raw against the accepted credential shapes. The
// length gate runs first, so the OAuth fallback shape effectively
// accepts 40-255 characters even though its pattern starts at 20.
func Classify(raw string) (Kind, error) {
	if raw == "" {
		return "", &InvalidCredentialError{Reason: "token is empty"}
	}
	if len(raw) < minTokenLen {
		return "", &InvalidCredentialError{Reason: fmt.Sprintf("token shorter than %d characters", minTokenLen)}
	}
	if len(raw) > maxTokenLen {
		return "", &InvalidCredentialError{Reason: fmt.Sprintf("token longer than %d characters", maxTokenLen)}
	}
	for _, s := range shapes {
		if s.re.MatchString(raw) {
			return s.kind, nil
		}
	}
	return "", &InvalidCredentialError{Reason: "unrecognized token format"}
}

// Store holds the current credential. All methods are safe for
// concurrent use.
type Store struct {
	mu    sync.RWMutex
	token string
	kind  Kind
}

// NewStore returns an empty token store.
func NewStore() *Store {
	return &Store{}
}

// SetToken classifies raw and replaces the held credential on success.
// When classification fails the previously held token is unchanged.
func (s *Store) SetToken(raw string) error {
	kind, err := Classify(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = raw
	s.kind = kind
	return nil
}

// SetFromEnv installs raw without shape validation. This is the path
// for tokens injected through the environment at process start. Such a
// token is reported present by HasValidToken without having passed
// Classify; its Kind is empty.
func (s *Store) SetFromEnv(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = raw
	s.kind = ""
}

// Token returns the held credential and whether one is set.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Kind returns the classification of the held credential. It is empty
// when no token is set or the token arrived through SetFromEnv.
func (s *Store) Kind() Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kind
}

// HasValidToken reports whether a plausibly usable credential is held.
// The check is deliberately looser than SetToken: presence plus a
// minimum length, so environment-injected tokens count as valid here.
func (s *Store) HasValidToken() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.token) >= presenceMinLen
}

// ClearToken wipes the held credential.
func (s *Store) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.kind = ""
}

// Source returns an oauth2.TokenSource backed by the store so the
// authenticated HTTP client always sees the current credential.
func (s *Store) Source() oauth2.TokenSource {
	return tokenSource{s}
}

type tokenSource struct {
	s *Store
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	tok, ok := ts.s.Token()
	if !ok {
		return nil, errors.New("tokens: no credential set")
	}
	return &oauth2.Token{AccessToken: tok}, nil
}
