// Package pidfile enforces single-instance startup for the server through
// a process ID file.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile guards a filesystem path holding the owning process ID.
type PIDFile struct {
	path string
}

// New creates a PIDFile manager for the given path. Nothing is written
// until Acquire.
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Acquire claims the PID file. A live PID in an existing file means another
// instance owns it and Acquire fails; a stale or unreadable file is replaced.
func (p *PIDFile) Acquire() error {
	if pid, running := p.owner(); running {
		return fmt.Errorf("another instance is already running (pid %d)", pid)
	}

	data := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(data), 0644); err != nil {
		return fmt.Errorf("writing pid file: %w", err)
	}
	return nil
}

// Release removes the PID file. Releasing an already-removed file is not an
// error.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing pid file: %w", err)
	}
	return nil
}

// owner reads the PID recorded in the file and reports whether that process
// is still alive. Stale files are removed on the way through.
func (p *PIDFile) owner() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || !processAlive(pid) {
		_ = os.Remove(p.path)
		return 0, false
	}
	return pid, true
}

// processAlive checks for a live process via signal 0, which probes without
// delivering anything. EPERM means the process exists under another user.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
