package arcdb

import (
	"context"
	"database/sql/driver"
	"strconv"
	"strings"
	"time"
)

// stmt is a minimal statement: the wire has no prepared-statement
// encoding, so placeholders are substituted client-side and the finished
// text travels as one ordinary command.
type stmt struct {
	std      *stdDriver
	query    string
	numInput int
}

func (stmt *stmt) NumInput() int {
	return stmt.numInput
}

func (stmt *stmt) Exec(args []driver.Value) (driver.Result, error) {
	return stmt.std.ExecContext(context.Background(), stmt.query, convertOldArgs(args))
}

func (stmt *stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	return stmt.std.ExecContext(ctx, stmt.query, args)
}

func (stmt *stmt) Query(args []driver.Value) (driver.Rows, error) {
	return stmt.std.QueryContext(context.Background(), stmt.query, convertOldArgs(args))
}

func (stmt *stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	return stmt.std.QueryContext(ctx, stmt.query, args)
}

func (stmt *stmt) Close() error {
	return nil
}

func convertOldArgs(args []driver.Value) []driver.NamedValue {
	dargs := make([]driver.NamedValue, len(args))
	for i, v := range args {
		dargs[i] = driver.NamedValue{
			Ordinal: i + 1,
			Value:   v,
		}
	}
	return dargs
}

// countPlaceholders reports the number of ? placeholders outside
// single-quoted literals. A doubled '' inside a literal is an escaped
// quote, not a terminator.
func countPlaceholders(query string) int {
	var n int
	var inQuote bool
	for i := 0; i < len(query); i++ {
		switch query[i] {
		case '\'':
			if inQuote && i+1 < len(query) && query[i+1] == '\'' {
				i++
				continue
			}
			inQuote = !inQuote
		case '?':
			if !inQuote {
				n++
			}
		}
	}
	return n
}

// bindArgs splices quoted argument values over the query's ? placeholders.
// A ? inside a single-quoted literal is data and passes through untouched.
func bindArgs(query string, args []driver.NamedValue) string {
	if len(args) == 0 {
		return query
	}
	var b strings.Builder
	var inQuote bool
	next := 0
	for i := 0; i < len(query); i++ {
		switch c := query[i]; c {
		case '\'':
			if inQuote && i+1 < len(query) && query[i+1] == '\'' {
				b.WriteString("''")
				i++
				continue
			}
			inQuote = !inQuote
			b.WriteByte(c)
		case '?':
			if !inQuote && next < len(args) {
				b.WriteString(quote(args[next].Value))
				next++
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func quote(v driver.Value) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return "'" + v.UTC().Format("2006-01-02 15:04:05") + "'"
	case []byte:
		return "'" + strings.ReplaceAll(string(v), "'", "''") + "'"
	default:
		return "NULL"
	}
}
