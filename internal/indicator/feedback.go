// Package indicator signals workspace navigation with audio cues and desktop
// notifications.
package indicator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rbright/swaytouch/internal/config"
	"github.com/rbright/swaytouch/internal/navigation"
)

// notifyTimeout bounds a single busctl roundtrip.
const notifyTimeout = 400 * time.Millisecond

// Feedback implements the dispatcher feedback hooks.
type Feedback struct {
	cfg      config.FeedbackConfig
	logger   *slog.Logger
	messages messages
	play     func(context.Context, cueKind) error

	mu             sync.Mutex
	notificationID uint32
	lastNotify     chan struct{}
	soundMu        sync.Mutex
	pending        sync.WaitGroup
}

// New creates navigation feedback from config.
func New(cfg config.FeedbackConfig, logger *slog.Logger) *Feedback {
	return &Feedback{
		cfg:      cfg,
		logger:   logger,
		messages: messagesFromEnv(),
		play:     emitCue,
	}
}

// Switched signals a successful workspace change.
func (f *Feedback) Switched(ctx context.Context, from, to int) {
	kind := cueNext
	if to < from {
		kind = cuePrevious
	}
	f.playCue(kind)
	if !f.cfg.Notify {
		return
	}
	text := f.messages.workspace(to)
	f.queueNotify(ctx, func(ctx context.Context) error {
		return f.notify(ctx, text)
	})
}

// Bounded signals a navigation swipe that ran into the first or last workspace.
func (f *Feedback) Bounded(ctx context.Context, current int, reason navigation.Reason) {
	f.playCue(cueBump)
	if !f.cfg.Notify {
		return
	}
	text := f.messages.last
	if reason == navigation.ReasonFloor {
		text = f.messages.first
	}
	f.queueNotify(ctx, func(ctx context.Context) error {
		return f.notify(ctx, text)
	})
}

// Close waits for queued cues and notifications, then dismisses the last
// notification.
func (f *Feedback) Close(ctx context.Context) {
	f.pending.Wait()
	if !f.cfg.Notify {
		return
	}
	f.run(ctx, f.dismiss)
}

// notify sends a notification that replaces the previous one.
func (f *Feedback) notify(ctx context.Context, text string) error {
	f.mu.Lock()
	replaceID := f.notificationID
	f.mu.Unlock()

	id, err := desktopNotify(ctx, f.cfg.AppName, replaceID, text, f.cfg.NotifyTimeoutMS)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.notificationID = id
	f.mu.Unlock()
	return nil
}

func (f *Feedback) dismiss(ctx context.Context) error {
	f.mu.Lock()
	id := f.notificationID
	f.notificationID = 0
	f.mu.Unlock()

	if id == 0 {
		return nil
	}
	return desktopDismiss(ctx, id)
}

func (f *Feedback) run(ctx context.Context, fn func(context.Context) error) {
	runCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := fn(runCtx); err != nil {
		f.log("desktop notification failed", err)
	}
}

// queueNotify runs fn off the dispatch goroutine. Notifications run one after
// another in call order so each one replaces its predecessor.
func (f *Feedback) queueNotify(ctx context.Context, fn func(context.Context) error) {
	done := make(chan struct{})
	f.mu.Lock()
	prev := f.lastNotify
	f.lastNotify = done
	f.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	f.pending.Add(1)
	go func() {
		defer f.pending.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		f.run(ctx, fn)
	}()
}

// playCue serializes cue playback off the dispatch goroutine.
func (f *Feedback) playCue(kind cueKind) {
	if !f.cfg.Sound {
		return
	}
	f.pending.Add(1)
	go func() {
		defer f.pending.Done()
		f.soundMu.Lock()
		defer f.soundMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := f.play(ctx, kind); err != nil {
			f.log("audio cue failed", err)
		}
	}()
}

func (f *Feedback) log(message string, err error) {
	if f.logger == nil || err == nil {
		return
	}
	f.logger.Debug(message, "error", err.Error())
}
