package indicator

import (
	"context"
	"fmt"

	"github.com/jfreymuth/pulse"
)

// Sink describes the Pulse output that sound cues play through.
type Sink struct {
	ID          string
	Description string
}

func newPulseClient() (*pulse.Client, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("swaytouch"),
		pulse.ClientApplicationIconName("input-touchpad"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	return client, nil
}

// DefaultSink asks the Pulse server which sink a new playback stream lands on.
func DefaultSink(_ context.Context) (Sink, error) {
	client, err := newPulseClient()
	if err != nil {
		return Sink{}, err
	}
	defer client.Close()

	sink, err := client.DefaultSink()
	if err != nil {
		return Sink{}, fmt.Errorf("read default sink: %w", err)
	}
	return Sink{ID: sink.ID(), Description: sink.Name()}, nil
}
