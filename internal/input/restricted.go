package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sys/unix"
)

// ErrInvalidAccessMode is returned when flags carry no valid read/write intent.
var ErrInvalidAccessMode = errors.New("invalid device access mode")

// OpenRestricted opens a device node with the caller's access mode and flags.
// The descriptor is always close-on-exec.
func OpenRestricted(path string, flags int) (int, error) {
	switch flags & unix.O_ACCMODE {
	case unix.O_RDONLY, unix.O_WRONLY, unix.O_RDWR:
	default:
		return -1, fmt.Errorf("%w: %#x", ErrInvalidAccessMode, flags)
	}

	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return fd, nil
}

// CloseRestricted releases a descriptor obtained from OpenRestricted.
func CloseRestricted(fd int) error {
	if err := unix.Close(fd); err != nil {
		return fmt.Errorf("close fd %d: %w", fd, err)
	}
	return nil
}

// WithDevice opens path, runs fn, and always releases the descriptor.
func WithDevice(path string, flags int, fn func(fd int) error) (err error) {
	fd, err := OpenRestricted(path, flags)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := CloseRestricted(fd); err == nil {
			err = closeErr
		}
	}()
	return fn(fd)
}

// DeviceAccess is the readability result for one event node.
type DeviceAccess struct {
	Path string
	Err  error
}

// ProbeEventDevices checks read access to every evdev node under dir.
func ProbeEventDevices(dir string) ([]DeviceAccess, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "event*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	results := make([]DeviceAccess, 0, len(paths))
	for _, path := range paths {
		err := WithDevice(path, unix.O_RDONLY|unix.O_NONBLOCK, func(int) error { return nil })
		results = append(results, DeviceAccess{Path: path, Err: err})
	}
	return results, nil
}
