package arcdb

import (
	"errors"
	"fmt"
)

var (
	ErrNotReady         = errors.New("arcdb: connection not ready")
	ErrConnectionClosed = errors.New("arcdb: connection is closed")
	ErrNoAddress        = errors.New("arcdb: no valid address supplied")
)

// HandshakeError reports that the server rejected the output-mode
// selection. The connection is unusable.
type HandshakeError struct {
	Detail string
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("arcdb [handshake]: %s", e.Detail)
}

// DecodeError reports a response line that looked structured but was not
// well-formed JSON. It is delivered only to the waiter whose turn it was.
type DecodeError struct {
	Text string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("arcdb [decode]: %s: %q", e.Err, e.Text)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ServerError is a status="error" envelope surfaced through Query or Exec.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("arcdb [server]: %s", e.Message)
}

// InvalidColumnIndex reports cell access outside the declared column list.
type InvalidColumnIndex struct {
	op  string
	idx int
}

func (e *InvalidColumnIndex) Error() string {
	return fmt.Sprintf("arcdb [%s]: invalid column index %d", e.op, e.idx)
}

// UnknownColumnName reports named cell access with no exact column match.
type UnknownColumnName struct {
	op   string
	name string
}

func (e *UnknownColumnName) Error() string {
	return fmt.Sprintf("arcdb [%s]: unknown column %q", e.op, e.name)
}

// CursorOutOfRange reports cell access while the cursor is before the
// first row, past the last row, or the rows are closed.
type CursorOutOfRange struct {
	op string
}

func (e *CursorOutOfRange) Error() string {
	return fmt.Sprintf("arcdb [%s]: cursor is not positioned on a row", e.op)
}

// TypeMismatch reports a value that cannot be coerced to the requested
// destination type. Values are never silently truncated or converted.
type TypeMismatch struct {
	op   string
	from any
	to   string
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("arcdb [%s]: cannot convert %T (%v) to %s", e.op, e.from, e.from, e.to)
}

// UnexpectedScanDestination reports a Scan call whose destination count
// does not match the column count.
type UnexpectedScanDestination struct {
	op       string
	got      int
	expected int
}

func (e *UnexpectedScanDestination) Error() string {
	return fmt.Sprintf("arcdb [%s]: expected %d destination arguments in Scan, not %d", e.op, e.expected, e.got)
}
