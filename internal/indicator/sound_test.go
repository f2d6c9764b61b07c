package indicator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCueSamplesPresent(t *testing.T) {
	require.NotEmpty(t, cueSamples(cueNext))
	require.NotEmpty(t, cueSamples(cuePrevious))
	require.NotEmpty(t, cueSamples(cueBump))
	require.Nil(t, cueSamples(cueKind(0)))
}

func TestNextAndPreviousCuesMirror(t *testing.T) {
	require.Len(t, cueSamples(cuePrevious), len(cueSamples(cueNext)))
	require.NotEqual(t, cueSamples(cueNext), cueSamples(cuePrevious))
}

func TestSynthesizeToneDuration(t *testing.T) {
	got := synthesizeTone(toneSpec{frequencyHz: 440, duration: 100 * time.Millisecond, volume: 0.2})
	require.Len(t, got, samplesForDuration(100*time.Millisecond))
	require.Zero(t, got[0])
}

func TestSynthesizeToneInvalidSpecReturnsEmpty(t *testing.T) {
	require.Empty(t, synthesizeTone(toneSpec{frequencyHz: 0, duration: 100 * time.Millisecond, volume: 0.2}))
	require.Empty(t, synthesizeTone(toneSpec{frequencyHz: 440, duration: 0, volume: 0.2}))
	require.Empty(t, synthesizeTone(toneSpec{frequencyHz: 440, duration: 100 * time.Millisecond, volume: 0}))
}

func TestSynthesizeToneStaysWithinVolume(t *testing.T) {
	// 0.25 * 32767 rounds to at most 8192.
	const peak = 8192

	got := synthesizeTone(toneSpec{frequencyHz: 1000, duration: 50 * time.Millisecond, volume: 0.25})
	require.NotEmpty(t, got)
	for _, s := range got {
		require.LessOrEqual(t, int(s), peak)
		require.GreaterOrEqual(t, int(s), -peak)
	}
}

func TestSamplesForDuration(t *testing.T) {
	require.Equal(t, 0, samplesForDuration(0))
	require.Equal(t, 400, samplesForDuration(25*time.Millisecond))
}

func TestEmitCueRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emitCue(ctx, cueNext)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestDefaultSinkFailsWhenPulseUnavailable(t *testing.T) {
	t.Setenv("PULSE_SERVER", "unix:/tmp/definitely-missing-pulse-server")
	_, err := DefaultSink(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "connect pulse server")
}
