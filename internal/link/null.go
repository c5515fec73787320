// internal/link/null.go
package link

import "log/slog"

// NullLink is the stand-in used when running without serial hardware. It
// accepts every call, sends nothing anywhere, and reports itself
// disconnected so callers exercise their drop paths.
type NullLink struct {
	log *slog.Logger
}

var _ Link = (*NullLink)(nil)

func NewNullLink(logger *slog.Logger) *NullLink {
	return &NullLink{log: logger}
}

func (n *NullLink) Connect() bool { return true }

func (n *NullLink) ReconnectIfNeeded() {}

func (n *NullLink) IsConnected() bool { return false }

func (n *NullLink) Write([]byte) bool { return false }

func (n *NullLink) ReadDiagnostics() bool { return false }

func (n *NullLink) SendPosition(x, y float64) bool {
	n.log.Info("no-serial position", "x", int(x), "y", int(y))
	return true
}

func (n *NullLink) DiagnosticLines(int) []string { return nil }

func (n *NullLink) DiagnosticsSeq() uint64 { return 0 }

func (n *NullLink) DiagnosticsSince(uint64) []string { return nil }

func (n *NullLink) Close() {}
