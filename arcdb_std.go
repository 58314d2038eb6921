package arcdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"io"
	"sync/atomic"

	"github.com/arcdb/arcdb-go/lib/proto"
)

func init() {
	sql.Register("arcdb", &stdDriver{})
}

type stdDriver struct {
	conn   *connect
	connID int64
}

var _ driver.Driver = (*stdDriver)(nil)

func (d *stdDriver) Open(dsn string) (_ driver.Conn, err error) {
	var (
		opt    Options
		conn   *connect
		connID = int(atomic.AddInt64(&d.connID, 1))
	)
	if err = opt.fromDSN(dsn); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opt.DialTimeout)
	defer cancel()

	for num := range opt.Addr {
		if conn, err = dial(ctx, opt.Addr[num], connID, &opt); err == nil {
			return &stdDriver{conn: conn}, nil
		}
	}
	return nil, err
}

func (std *stdDriver) ResetSession(ctx context.Context) error {
	if std.conn.isClosed() || std.conn.sessionErr() != nil {
		return driver.ErrBadConn
	}
	return nil
}

func (std *stdDriver) Ping(ctx context.Context) error {
	env, err := std.conn.query(ctx, "SELECT 1;")
	if err != nil {
		return err
	}
	if env.Status == proto.StatusError {
		return &ServerError{Message: env.Message}
	}
	return nil
}

// Begin is a protocol no-op; transaction statements travel as ordinary
// commands.
func (std *stdDriver) Begin() (driver.Tx, error) { return std, nil }

func (std *stdDriver) Commit() error { return nil }

func (std *stdDriver) Rollback() error {
	return std.conn.close()
}

func (std *stdDriver) CheckNamedValue(nv *driver.NamedValue) error {
	v, err := driver.DefaultParameterConverter.ConvertValue(nv.Value)
	if err != nil {
		return err
	}
	nv.Value = v
	return nil
}

func (std *stdDriver) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	env, err := std.conn.query(ctx, bindArgs(query, args))
	if err != nil {
		return nil, err
	}
	if env.Status == proto.StatusError {
		return nil, &ServerError{Message: env.Message}
	}
	return driver.RowsAffected(env.AffectedRows), nil
}

func (std *stdDriver) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	env, err := std.conn.query(ctx, bindArgs(query, args))
	if err != nil {
		return nil, err
	}
	if env.Status == proto.StatusError {
		return nil, &ServerError{Message: env.Message}
	}
	return &stdRows{env: env, pos: -1}, nil
}

func (std *stdDriver) Prepare(query string) (driver.Stmt, error) {
	return std.PrepareContext(context.Background(), query)
}

func (std *stdDriver) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	return &stmt{std: std, query: query, numInput: countPlaceholders(query)}, nil
}

func (std *stdDriver) Close() error { return std.conn.close() }

// stdRows adapts one envelope to database/sql's row iterator.
type stdRows struct {
	env *proto.Envelope
	pos int
}

func (r *stdRows) Columns() []string {
	if r.env == nil {
		return nil
	}
	columns := make([]string, len(r.env.Columns))
	copy(columns, r.env.Columns)
	return columns
}

func (r *stdRows) Next(dest []driver.Value) error {
	if r.env == nil || r.pos+1 >= len(r.env.Rows) {
		return io.EOF
	}
	r.pos++
	row := r.env.Rows[r.pos]
	for i := range dest {
		if i >= len(row.Values) {
			dest[i] = nil
			continue
		}
		dest[i] = toDriverValue(row.Values[i])
	}
	return nil
}

func (r *stdRows) Close() error {
	r.env = nil
	return nil
}

// toDriverValue unwraps one raw cell into the restricted driver.Value set.
// Integral numbers become int64, everything else fractional float64.
func toDriverValue(raw any) driver.Value {
	if proto.IsNull(raw) {
		return nil
	}
	v := proto.Unwrap(raw)
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case string, bool, float64, int64:
		return v
	default:
		// nested structures pass through as their JSON text
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(b)
	}
}
