// internal/link/manager.go
package link

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Smengerl/Camera-Follower-Bot/internal/protocol"
)

// Link is the capability the host loop programs against. Two variants
// exist: Manager over a real serial port and NullLink for runs without
// hardware. The variant is selected once at startup.
type Link interface {
	Connect() bool
	ReconnectIfNeeded()
	IsConnected() bool
	Write(data []byte) bool
	SendPosition(x, y float64) bool
	ReadDiagnostics() bool
	DiagnosticLines(max int) []string
	DiagnosticsSeq() uint64
	DiagnosticsSince(mark uint64) []string
	Close()
}

// Config is the minimal runtime config the link manager needs.
type Config struct {
	Device       string
	Baud         int
	Timeout      time.Duration // relax handshake bound on Close
	MinBackoff   time.Duration
	MaxBackoff   time.Duration
	Settle       time.Duration // device reset grace after open
	DiagCapacity int
}

// Opener performs ONE transport open attempt per call.
type Opener func() (Port, error)

// relaxPollInterval spaces the handshake polls so they do not busy-spin.
const relaxPollInterval = 20 * time.Millisecond

// Manager owns the transport handle and keeps the link alive with
// exponential-backoff reconnects. All calls are sequential; the manager is
// driven from a single loop and never blocks it beyond the settle delay.
type Manager struct {
	cfg  Config
	log  *slog.Logger
	open Opener

	port     Port
	attempts uint
	nextTry  time.Time
	lastErr  error

	diag    *DiagBuffer
	partial string

	now   func() time.Time
	sleep func(time.Duration)
}

var _ Link = (*Manager)(nil)

// NewManager creates a disconnected manager. A nil opener defaults to
// opening the configured serial device.
func NewManager(cfg Config, logger *slog.Logger, open Opener) *Manager {
	if open == nil {
		open = func() (Port, error) {
			return OpenSerial(cfg.Device, cfg.Baud)
		}
	}
	return &Manager{
		cfg:   cfg,
		log:   logger,
		open:  open,
		diag:  NewDiagBuffer(cfg.DiagCapacity),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Connect tries to open the transport once. On success the backoff state is
// reset and the call returns true after the settle delay. On failure the
// next attempt is scheduled and the call returns false immediately.
func (m *Manager) Connect() bool {
	p, err := m.open()
	if err != nil {
		m.scheduleRetry(err)
		return false
	}

	m.port = p
	// Give the device time to come out of its open-triggered reset.
	m.sleep(m.cfg.Settle)

	m.attempts = 0
	m.nextTry = time.Time{}
	m.lastErr = nil
	m.log.Info("link connected", "device", m.cfg.Device, "baud", m.cfg.Baud)
	return true
}

// ReconnectIfNeeded attempts a reconnect when disconnected and the backoff
// window has passed. Designed to be called once per host loop iteration.
func (m *Manager) ReconnectIfNeeded() {
	if m.port != nil {
		return
	}
	if !m.now().Before(m.nextTry) {
		m.Connect()
	}
}

func (m *Manager) IsConnected() bool {
	return m.port != nil
}

// Write sends raw bytes. Returns false without side effects when empty or
// disconnected. A transport fault closes the handle and schedules a
// backoff reconnect; the data is dropped, never retried.
func (m *Manager) Write(data []byte) bool {
	if len(data) == 0 || m.port == nil {
		return false
	}
	if _, err := m.port.Write(data); err != nil {
		m.port.Close()
		m.scheduleRetry(err)
		return false
	}
	return true
}

// SendPosition frames and sends one positional error sample. Values not
// representable as integers produce no write at all.
func (m *Manager) SendPosition(x, y float64) bool {
	line, ok := protocol.EncodePosition(x, y)
	if !ok {
		return false
	}
	return m.Write(line)
}

// ReadDiagnostics drains all currently available inbound bytes and appends
// complete non-blank lines to the diagnostic buffer. A trailing fragment is
// carried over to the next call so lines split across reads are never lost
// or duplicated. Returns true iff at least one byte was read.
func (m *Manager) ReadDiagnostics() bool {
	if m.port == nil {
		return false
	}

	var raw []byte
	chunk := make([]byte, 256)
	for {
		n, err := m.port.ReadAvailable(chunk)
		if n > 0 {
			raw = append(raw, chunk[:n]...)
		}
		if err != nil {
			m.port.Close()
			m.scheduleRetry(err)
			return false
		}
		if n == 0 {
			break
		}
	}
	if len(raw) == 0 {
		return false
	}

	text := m.partial + strings.ToValidUTF8(string(raw), "�")
	lines := strings.Split(text, "\n")
	m.partial = lines[len(lines)-1]
	for _, ln := range lines[:len(lines)-1] {
		ln = strings.ReplaceAll(ln, "\r", "")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		m.diag.Append(ln)
	}
	return true
}

// DiagnosticLines returns buffered diagnostic lines oldest-first, the whole
// buffer when max <= 0.
func (m *Manager) DiagnosticLines(max int) []string {
	return m.diag.Lines(max)
}

func (m *Manager) DiagnosticsSeq() uint64 {
	return m.diag.Seq()
}

func (m *Manager) DiagnosticsSince(mark uint64) []string {
	return m.diag.Since(mark)
}

// SendRelaxCommand writes the RELAX line once, then polls the diagnostic
// stream until the device acknowledges or the timeout elapses. Only lines
// appended after the call began count as an acknowledgment.
func (m *Manager) SendRelaxCommand(timeout time.Duration) bool {
	mark := m.diag.Seq()
	if !m.Write([]byte(protocol.RelaxCommand + "\n")) {
		return false
	}

	deadline := m.now().Add(timeout)
	for {
		m.ReadDiagnostics()
		for _, ln := range m.diag.Since(mark) {
			if strings.TrimSpace(ln) == protocol.RelaxAck {
				return true
			}
		}
		if !m.now().Before(deadline) {
			return false
		}
		m.sleep(relaxPollInterval)
	}
}

// Close performs the best-effort relax handshake, then closes the transport
// regardless of the handshake outcome. Idempotent.
func (m *Manager) Close() {
	if m.port == nil {
		return
	}
	if !m.SendRelaxCommand(m.cfg.Timeout) {
		m.log.Warn("relax handshake not acknowledged, closing anyway",
			"timeout", m.cfg.Timeout)
	}
	if m.port != nil {
		m.port.Close()
		m.port = nil
	}
}

func (m *Manager) scheduleRetry(err error) {
	m.port = nil
	m.lastErr = err
	m.attempts++
	backoff := m.backoffFor(m.attempts)
	m.nextTry = m.now().Add(backoff)
	m.log.Warn("link unavailable",
		"attempt", m.attempts, "retry_in", backoff, "error", err)
}

// backoffFor doubles the base delay per consecutive failure, clamped at the
// configured ceiling.
func (m *Manager) backoffFor(attempt uint) time.Duration {
	d := m.cfg.MinBackoff
	for i := uint(1); i < attempt; i++ {
		d *= 2
		if d >= m.cfg.MaxBackoff {
			return m.cfg.MaxBackoff
		}
	}
	if d > m.cfg.MaxBackoff {
		return m.cfg.MaxBackoff
	}
	return d
}
