package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeFingerprint struct {
	available bool
	verdict   Verdict
	calls     int
}

func (f *fakeFingerprint) Available() bool { return f.available }

func (f *fakeFingerprint) Authenticate(ctx context.Context) (Verdict, error) {
	f.calls++
	return f.verdict, nil
}

func TestSequenceBothGatesMatch(t *testing.T) {
	fp := &fakeFingerprint{available: true, verdict: Match}
	seq := NewSequence(StubFace{CameraAvailable: true}, fp)

	err := seq.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, fp.calls)
}

func TestSequenceBlocksWithoutCamera(t *testing.T) {
	fp := &fakeFingerprint{available: true, verdict: Match}
	seq := NewSequence(StubFace{CameraAvailable: false}, fp)

	err := seq.Run(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, fp.calls, "fingerprint gate never reached")
}

func TestSequenceBlocksWithoutEnrollment(t *testing.T) {
	fp := &fakeFingerprint{available: false}
	seq := NewSequence(StubFace{CameraAvailable: true}, fp)

	err := seq.Run(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, fp.calls)
}

func TestSequenceHaltsOnNoMatch(t *testing.T) {
	fp := &fakeFingerprint{available: true, verdict: NoMatch}
	seq := NewSequence(StubFace{CameraAvailable: true}, fp)

	err := seq.Run(context.Background())

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestSequenceUnavailableVerdictBlocks(t *testing.T) {
	fp := &fakeFingerprint{available: true, verdict: Unavailable}
	seq := NewSequence(StubFace{CameraAvailable: true}, fp)

	err := seq.Run(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "match", Match.String())
	assert.Equal(t, "no-match", NoMatch.String())
	assert.Equal(t, "unavailable", Unavailable.String())
}
