package driver

import "context"

type (
	// Conn is one client connection to an ArcDB server. A Conn owns exactly
	// one underlying stream; callers that need concurrency must serialize
	// access or accept pipelined submission order as response order.
	Conn interface {
		// ServerBanner returns the greeting lines the server sent before
		// confirming the output mode.
		ServerBanner() []string
		Query(ctx context.Context, query string) (Rows, error)
		QueryRow(ctx context.Context, query string) Row
		Exec(ctx context.Context, query string) (Result, error)
		Ping(context.Context) error
		// Err returns the terminal session error, if the connection has
		// failed. A healthy or cleanly closed connection reports nil.
		Err() error
		Close() error
	}

	Row interface {
		Err() error
		Scan(dest ...any) error
	}

	// Rows is a forward-only, single-pass cursor over one response. The
	// cursor starts before the first row; re-reading requires re-running
	// the query.
	Rows interface {
		Next() bool
		Columns() []string
		Scan(dest ...any) error

		// Value returns the unwrapped value at the column index in the
		// current row; ValueByName resolves the column by exact,
		// case-sensitive name (first match wins on duplicates).
		Value(idx int) (any, error)
		ValueByName(name string) (any, error)

		Int64(idx int) (int64, error)
		Float64(idx int) (float64, error)
		Text(idx int) (string, error)
		Bool(idx int) (bool, error)

		// WasNull reports whether the most recently read cell held the
		// null marker before unwrapping.
		WasNull() bool

		AffectedRows() int64
		Message() string
		Close() error
		Err() error
	}

	Result interface {
		RowsAffected() int64
		Message() string
	}
)
