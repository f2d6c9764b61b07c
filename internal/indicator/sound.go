package indicator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jfreymuth/pulse"
)

type cueKind int

const (
	cueNext cueKind = iota + 1
	cuePrevious
	cueBump
)

func (k cueKind) String() string {
	switch k {
	case cueNext:
		return "next"
	case cuePrevious:
		return "previous"
	case cueBump:
		return "bump"
	default:
		return "unknown"
	}
}

const cueSampleRate = 16000

type toneSpec struct {
	frequencyHz float64
	duration    time.Duration
	volume      float64
}

// Rising pair for next, falling pair for previous, one low thud at the bounds.
var (
	nextCuePCM = synthesizeCue([]toneSpec{
		{frequencyHz: 660, duration: 35 * time.Millisecond, volume: 0.15},
		{frequencyHz: 880, duration: 45 * time.Millisecond, volume: 0.15},
	})
	previousCuePCM = synthesizeCue([]toneSpec{
		{frequencyHz: 880, duration: 35 * time.Millisecond, volume: 0.15},
		{frequencyHz: 660, duration: 45 * time.Millisecond, volume: 0.15},
	})
	bumpCuePCM = synthesizeCue([]toneSpec{
		{frequencyHz: 220, duration: 90 * time.Millisecond, volume: 0.2},
	})
)

// emitCue plays one synthesized cue through the PulseAudio/PipeWire server.
func emitCue(ctx context.Context, kind cueKind) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	samples := cueSamples(kind)
	if len(samples) == 0 {
		return fmt.Errorf("no samples for cue %s", kind)
	}

	done := make(chan error, 1)
	go func() { done <- playSynthCue(kind, samples) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func playSynthCue(kind cueKind, samples []int16) error {
	client, err := newPulseClient()
	if err != nil {
		return err
	}
	defer client.Close()

	stream, err := client.NewPlayback(
		samplesReader(samples),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(cueSampleRate),
		pulse.PlaybackLatency(0.02),
		pulse.PlaybackMediaName("swaytouch "+kind.String()+" cue"),
	)
	if err != nil {
		return fmt.Errorf("create pulse playback stream: %w", err)
	}
	defer stream.Close()

	stream.Start()
	stream.Drain()
	if err := stream.Error(); err != nil {
		return fmt.Errorf("play cue stream: %w", err)
	}
	return nil
}

// samplesReader feeds samples to a playback stream and ends it afterwards.
func samplesReader(samples []int16) pulse.Int16Reader {
	cursor := 0
	return pulse.Int16Reader(func(buf []int16) (int, error) {
		if cursor >= len(samples) {
			return 0, pulse.EndOfData
		}

		n := copy(buf, samples[cursor:])
		cursor += n
		if cursor >= len(samples) {
			return n, pulse.EndOfData
		}
		return n, nil
	})
}

func cueSamples(kind cueKind) []int16 {
	switch kind {
	case cueNext:
		return nextCuePCM
	case cuePrevious:
		return previousCuePCM
	case cueBump:
		return bumpCuePCM
	default:
		return nil
	}
}

func synthesizeCue(parts []toneSpec) []int16 {
	if len(parts) == 0 {
		return nil
	}
	gapSamples := samplesForDuration(15 * time.Millisecond)
	total := 0
	for i, part := range parts {
		total += samplesForDuration(part.duration)
		if i < len(parts)-1 {
			total += gapSamples
		}
	}

	pcm := make([]int16, 0, total)
	for i, part := range parts {
		pcm = append(pcm, synthesizeTone(part)...)
		if i < len(parts)-1 && gapSamples > 0 {
			pcm = append(pcm, make([]int16, gapSamples)...)
		}
	}
	return pcm
}

// synthesizeTone renders a sine tone with a short linear attack and release
// so the cue does not click.
func synthesizeTone(spec toneSpec) []int16 {
	n := samplesForDuration(spec.duration)
	if n <= 0 || spec.frequencyHz <= 0 || spec.volume <= 0 {
		return nil
	}

	ramp := min(n/10, cueSampleRate/200)
	ramp = max(ramp, 1)

	pcm := make([]int16, n)
	for i := 0; i < n; i++ {
		envelope := min(1.0, float64(i)/float64(ramp), float64(n-i-1)/float64(ramp))
		t := float64(i) / cueSampleRate
		sample := math.Sin(2 * math.Pi * spec.frequencyHz * t)
		pcm[i] = int16(math.Round(sample * spec.volume * envelope * 32767))
	}
	return pcm
}

func samplesForDuration(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Seconds() * cueSampleRate))
}
