package indicator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rbright/swaytouch/internal/config"
	"github.com/rbright/swaytouch/internal/navigation"
	"github.com/stretchr/testify/require"
)

func TestFeedbackNotifiesAndReplacesNotification(t *testing.T) {
	t.Setenv("LANG", "en_US.UTF-8")
	argsFile := filepath.Join(t.TempDir(), "busctl-args.log")
	t.Setenv("BUSCTL_ARGS_FILE", argsFile)
	installBusctlStub(t, `
printf '%s\n' "$*" >> "${BUSCTL_ARGS_FILE}"
if [[ "$6" == "Notify" ]]; then
  echo "u 42"
fi
`)

	cfg := config.Default().Feedback
	cfg.Notify = true
	cfg.NotifyTimeoutMS = 700

	fb := New(cfg, nil)
	fb.Switched(context.Background(), 3, 4)
	fb.Bounded(context.Background(), 10, navigation.ReasonCeiling)
	fb.Close(context.Background())

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	prefix := "--user call org.freedesktop.Notifications /org/freedesktop/Notifications org.freedesktop.Notifications "
	require.Equal(t, prefix+"Notify susssasa{sv}i swaytouch 0 input-touchpad Workspace 4  0 0 700", lines[0])
	require.Equal(t, prefix+"Notify susssasa{sv}i swaytouch 42 input-touchpad Already on the last workspace  0 0 700", lines[1])
	require.Equal(t, prefix+"CloseNotification u 42", lines[2])
}

func TestFeedbackNotifyDisabledSkipsBusctl(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "busctl-args.log")
	t.Setenv("BUSCTL_ARGS_FILE", argsFile)
	installBusctlStub(t, `
printf '%s\n' "$*" >> "${BUSCTL_ARGS_FILE}"
`)

	fb := New(config.Default().Feedback, nil)
	fb.Switched(context.Background(), 1, 2)
	fb.Bounded(context.Background(), 1, navigation.ReasonFloor)
	fb.Close(context.Background())

	_, err := os.Stat(argsFile)
	require.True(t, os.IsNotExist(err))
}

func TestFeedbackNotifyFailureIsNotFatal(t *testing.T) {
	installBusctlStub(t, `
echo "Failed to connect to bus" >&2
exit 1
`)

	cfg := config.Default().Feedback
	cfg.Notify = true

	fb := New(cfg, nil)
	fb.Switched(context.Background(), 1, 2)
	fb.Close(context.Background())
}

func TestFeedbackSlowNotifyDoesNotBlockCaller(t *testing.T) {
	installBusctlStub(t, `
exec sleep 2
`)

	cfg := config.Default().Feedback
	cfg.Notify = true

	fb := New(cfg, nil)
	start := time.Now()
	fb.Switched(context.Background(), 1, 2)
	fb.Bounded(context.Background(), 2, navigation.ReasonCeiling)
	require.Less(t, time.Since(start), notifyTimeout/2)

	fb.Close(context.Background())
}

func TestFeedbackPlaysDirectionalCues(t *testing.T) {
	cfg := config.Default().Feedback
	cfg.Sound = true

	var mu sync.Mutex
	var played []cueKind
	fb := New(cfg, nil)
	fb.play = func(_ context.Context, kind cueKind) error {
		mu.Lock()
		defer mu.Unlock()
		played = append(played, kind)
		return errors.New("no pulse server")
	}

	fb.Switched(context.Background(), 4, 5)
	fb.pending.Wait()
	fb.Switched(context.Background(), 5, 4)
	fb.pending.Wait()
	fb.Bounded(context.Background(), 1, navigation.ReasonFloor)
	fb.Close(context.Background())

	require.Equal(t, []cueKind{cueNext, cuePrevious, cueBump}, played)
}

func TestDesktopNotifyRejectsUnexpectedReply(t *testing.T) {
	installBusctlStub(t, `
echo "s hello"
`)

	_, err := desktopNotify(context.Background(), "swaytouch", 0, "Workspace 1", 500)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid response")
}

func installBusctlStub(t *testing.T, body string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "busctl")
	script := "#!/usr/bin/env bash\nset -euo pipefail\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}
