package proto

import "strings"

// The handshake is textual: the client sends a mode-selection line right
// after connect and the server eventually answers with a confirmation line.
// The server may emit any number of banner/preamble lines first, so frame
// classification has to skip what it does not recognize rather than treat
// the first frame as the answer.
const (
	// ModeCommand selects JSON output for the session.
	ModeCommand = ".mode json\n"

	// ModeConfirmation appears in the frame acknowledging the mode switch.
	ModeConfirmation = "Output mode set to JSON"

	// ErrorPrefix starts server error lines.
	ErrorPrefix = "Error:"

	// UnknownCommandMarker appears when the server does not recognize a
	// dot command, mode selection included.
	UnknownCommandMarker = "Unknown command"
)

// HandshakeResult classifies one frame received while handshaking.
type HandshakeResult int

const (
	// HandshakeSkip is banner or preamble text. Keep waiting.
	HandshakeSkip HandshakeResult = iota
	// HandshakeDone confirms the output mode. The session is usable.
	HandshakeDone
	// HandshakeFailed rejects the mode selection. The session is unusable.
	HandshakeFailed
)

// ClassifyHandshakeFrame decides what one handshake-phase frame means.
func ClassifyHandshakeFrame(frame string) HandshakeResult {
	switch {
	case strings.Contains(frame, ModeConfirmation):
		return HandshakeDone
	case strings.HasPrefix(frame, ErrorPrefix), strings.Contains(frame, UnknownCommandMarker):
		return HandshakeFailed
	default:
		return HandshakeSkip
	}
}
