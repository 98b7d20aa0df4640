// Package verify models the face and fingerprint gates a voter must pass
// before submission. The gates only block navigation; no biometric data
// ever leaves the device. Backends implement the capture interfaces, so a
// real matching service can replace the current stubs without touching the
// submission workflow.
package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/udusdev/biovote/internal/logger"
)

// Verdict is the outcome of a capture or authentication attempt.
type Verdict int

const (
	// Match means the voter passed the gate.
	Match Verdict = iota
	// NoMatch means the backend ran and rejected the voter.
	NoMatch
	// Unavailable means the required hardware or enrollment is absent.
	Unavailable
)

func (v Verdict) String() string {
	switch v {
	case Match:
		return "match"
	case NoMatch:
		return "no-match"
	case Unavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

var (
	// ErrUnavailable reports that a gate's hardware or enrollment is
	// absent. The gate must block with this error, never silently advance.
	ErrUnavailable = errors.New("verification hardware unavailable or not enrolled")
	// ErrNoMatch reports a failed capture or authentication attempt.
	ErrNoMatch = errors.New("identity not recognized")
)

// FaceVerifier captures a face frame and reports a verdict.
type FaceVerifier interface {
	Available() bool
	Capture(ctx context.Context) (Verdict, error)
}

// FingerprintAuthenticator runs the device-local authentication prompt.
type FingerprintAuthenticator interface {
	Available() bool
	Authenticate(ctx context.Context) (Verdict, error)
}

// Sequence runs the face gate and then the fingerprint gate. Any outcome
// other than two matches halts the sequence with an error and leaves the
// caller's state untouched so the voter may retry.
type Sequence struct {
	face        FaceVerifier
	fingerprint FingerprintAuthenticator
	log         *log.Logger
}

// NewSequence builds the two-stage gate sequence.
func NewSequence(face FaceVerifier, fingerprint FingerprintAuthenticator) *Sequence {
	return &Sequence{
		face:        face,
		fingerprint: fingerprint,
		log:         logger.Gate("sequence"),
	}
}

// Run executes both gates in order and returns nil only when both match.
func (s *Sequence) Run(ctx context.Context) error {
	if !s.face.Available() {
		s.log.Warn("Face gate blocked", "reason", "camera unavailable")
		return fmt.Errorf("face verification: %w", ErrUnavailable)
	}
	verdict, err := s.face.Capture(ctx)
	if err != nil {
		return fmt.Errorf("face verification: %w", err)
	}
	if err := verdictErr(verdict); err != nil {
		s.log.Warn("Face gate halted", "verdict", verdict)
		return fmt.Errorf("face verification: %w", err)
	}
	s.log.Info("Face gate passed")

	if !s.fingerprint.Available() {
		s.log.Warn("Fingerprint gate blocked", "reason", "no hardware or enrollment")
		return fmt.Errorf("fingerprint verification: %w", ErrUnavailable)
	}
	verdict, err = s.fingerprint.Authenticate(ctx)
	if err != nil {
		return fmt.Errorf("fingerprint verification: %w", err)
	}
	if err := verdictErr(verdict); err != nil {
		s.log.Warn("Fingerprint gate halted", "verdict", verdict)
		return fmt.Errorf("fingerprint verification: %w", err)
	}
	s.log.Info("Fingerprint gate passed")

	return nil
}

func verdictErr(v Verdict) error {
	switch v {
	case Match:
		return nil
	case Unavailable:
		return ErrUnavailable
	default:
		return ErrNoMatch
	}
}

// StubFace reproduces the current client behavior: triggering a capture on
// an available camera always yields a match. A matching backend slots in by
// replacing this implementation.
type StubFace struct {
	CameraAvailable bool
}

func (f StubFace) Available() bool {
	return f.CameraAvailable
}

func (f StubFace) Capture(ctx context.Context) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return NoMatch, err
	}
	return Match, nil
}
