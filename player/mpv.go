package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/seekscript/seekscript/constant"
	"github.com/seekscript/seekscript/log"
	"github.com/seekscript/seekscript/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements Player over mpv's JSON-IPC protocol. It either spawns its
// own mpv process or attaches to one already listening on a socket.
type MPV struct {
	socketPath string
	attached   bool
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the playback session ends
	closeOnce  sync.Once
	mu         sync.Mutex // Protects socket writes
}

// Option configures an MPV instance.
type Option func(*MPV)

// WithSocket attaches to an mpv instance started with
// --input-ipc-server=path instead of spawning a new one.
func WithSocket(path string) Option {
	return func(m *MPV) {
		if path != "" {
			m.socketPath = path
			m.attached = true
		}
	}
}

// NewMPV creates a new MPV player instance (does not start playback).
func NewMPV(options ...Option) *MPV {
	m := &MPV{exited: make(chan struct{})}
	for _, option := range options {
		option(m)
	}
	return m
}

// Attached reports whether the player controls an mpv it did not start.
func (m *MPV) Attached() bool {
	return m.attached
}

// Open starts playback of the given target. An attached or already running
// mpv loads it through IPC; otherwise a new process is spawned.
// An empty target with an attached player only checks the connection.
func (m *MPV) Open(target string, title string) error {
	if m.attached || m.processAlive() {
		return m.load(target)
	}

	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	safeTitle := sanitizeTitle(title)
	if safeTitle == "" {
		safeTitle = filepath.Base(safeTarget)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", randomBytes))
	}

	// Only the socket, title and target are passed so the user's mpv.conf applies.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--title=%s", safeTitle),
		"--force-window=yes",
		"--keep-open=yes",
		"--",
		safeTarget,
	}

	m.cmd = exec.Command(constant.Player, args...)

	// Detach from the parent process group so terminal signals reach only us.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	m.closeOnce = sync.Once{}
	go func() {
		_ = m.cmd.Wait()
		m.finish()
	}()

	if err := m.waitForSocket(); err != nil {
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.Infof("mpv started on %s", m.socketPath)
	return nil
}

func (m *MPV) load(target string) error {
	if target == "" {
		if !m.IsRunning() {
			return fmt.Errorf("no mpv listening on %s", m.socketPath)
		}
		return nil
	}

	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	_, err = m.sendCommand([]interface{}{"loadfile", safeTarget, "replace"})
	return err
}

func (m *MPV) processAlive() bool {
	if m.cmd == nil {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

func (m *MPV) finish() {
	m.closeOnce.Do(func() { close(m.exited) })
}

// Wait returns a channel that is closed when the mpv process exits or, for an
// attached player, when it is closed.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Play resumes playback.
func (m *MPV) Play() error {
	return m.Set("pause", false)
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	return m.Set("pause", true)
}

// TogglePause cycles the pause property.
func (m *MPV) TogglePause() error {
	_, err := m.sendCommand([]interface{}{"cycle", "pause"})
	return err
}

// SetCurrentTime moves playback to the given absolute position in seconds.
func (m *MPV) SetCurrentTime(seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute+exact"})
	return err
}

// CurrentTime returns the current playback position in seconds.
func (m *MPV) CurrentTime() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Duration returns the length of the current media. Streams without a known
// length and players that do not answer report none.
func (m *MPV) Duration() mo.Option[float64] {
	d, err := m.getFloatProperty("duration")
	if err != nil || d <= 0 {
		return mo.None[float64]()
	}
	return mo.Some(d)
}

// Paused returns whether playback is currently paused.
func (m *MPV) Paused() (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "pause"})
	if err != nil {
		return false, err
	}
	paused, ok := data.(bool)
	if !ok {
		return false, nil
	}
	return paused, nil
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts down a spawned mpv process and cleans up its socket. An
// attached mpv is left running.
func (m *MPV) Close() error {
	if m.attached {
		m.finish()
		return nil
	}

	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Set a property
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty target")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in target")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("target must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
