package orbitalguard

import (
	"fmt"
	"sync"
)

// Session wraps a catalog behind a handle-oriented surface meant for
// embedding hosts: objects are registered under tokens, propagation and
// screening write into caller-provided buffers, and the last failure is
// retained per session rather than per call.
type Session struct {
	mu      sync.Mutex
	nextTok Token
	objects map[Token]Elements
	order   []Token // registration order, drives pair ordering in Screen
	cfg     ScreenConfig
	lastErr error
}

// Token identifies an object registered in a Session. The zero Token is
// never valid.
type Token uint64

// NewSession creates an empty session screening under cfg.
func NewSession(cfg ScreenConfig) *Session {
	return &Session{
		nextTok: 1,
		objects: make(map[Token]Elements),
		cfg:     cfg,
	}
}

// Create registers el and returns its token. Invalid elements fail with a
// zero token.
func (s *Session) Create(el Elements) (Token, error) {
	if err := el.Validate(); err != nil {
		return 0, s.fail(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tok := s.nextTok
	s.nextTok++
	s.objects[tok] = el
	s.order = append(s.order, tok)
	return tok, nil
}

// CreateFromTLE parses a two-line element set and registers it.
func (s *Session) CreateFromTLE(name, line1, line2 string) (Token, error) {
	el, err := ParseTLE(name, line1, line2)
	if err != nil {
		return 0, s.fail(err)
	}
	return s.Create(el)
}

// Destroy removes the object under tok. Destroying an unknown or already
// destroyed token is a no-op.
func (s *Session) Destroy(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, tok)
}

// Propagate computes the state of tok at offsetMin minutes past its epoch
// and writes position (km) and velocity (km/s) into rOut and vOut, which
// must each hold at least three elements.
func (s *Session) Propagate(tok Token, offsetMin float64, rOut, vOut []float64) error {
	if len(rOut) < 3 || len(vOut) < 3 {
		return s.fail(fmt.Errorf("%w: output buffers need 3 elements", ErrInsufficientBuffer))
	}
	s.mu.Lock()
	el, ok := s.objects[tok]
	s.mu.Unlock()
	if !ok {
		return s.fail(fmt.Errorf("%w: unknown token %d", ErrInvalidInput, tok))
	}
	state, err := Propagate(el, offsetMin)
	if err != nil {
		return s.fail(err)
	}
	copy(rOut, state.R)
	copy(vOut, state.V)
	return nil
}

// Screen propagates every registered object over [0, durationMin] at
// stepMin spacing, screens all pairs within maxKm, and copies the
// encounters into out. An object whose propagation fails is skipped, its
// failure recorded on the session, and screening continues over the rest.
// It returns the number written; when out is too small for the full
// result set nothing is written and ErrInsufficientBuffer is returned.
func (s *Session) Screen(durationMin, stepMin, maxKm float64, out []Encounter) (int, error) {
	s.mu.Lock()
	els := make([]Elements, 0, len(s.objects))
	for _, tok := range s.order {
		if el, ok := s.objects[tok]; ok {
			els = append(els, el)
		}
	}
	cfg := s.cfg
	s.mu.Unlock()

	tracks := make([]Track, 0, len(els))
	for _, el := range els {
		samples, err := GenerateTrack(el, durationMin, stepMin)
		if err != nil {
			s.fail(err)
			continue
		}
		tracks = append(tracks, Track{Name: el.Name, Samples: samples})
	}
	encs, _ := cfg.ScreenAll(tracks, maxKm)
	SortByRisk(encs)
	if len(encs) > len(out) {
		return 0, s.fail(fmt.Errorf("%w: %d encounters, buffer holds %d", ErrInsufficientBuffer, len(encs), len(out)))
	}
	copy(out, encs)
	return len(encs), nil
}

// LastError returns the most recent failure recorded on this session, or
// nil. Errors are scoped to the session, never shared across sessions.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return err
}
