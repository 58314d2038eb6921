package arcdb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arcdb/arcdb-go/lib/driver"
	"github.com/arcdb/arcdb-go/lib/proto"
)

type Conn = driver.Conn

// Open dials the first reachable address, performs the output-mode
// handshake, and returns a ready connection. Addresses are tried in order;
// the returned error is the last dial failure.
func Open(opt *Options) (driver.Conn, error) {
	if opt == nil {
		opt = &Options{}
	}
	o := opt.setDefaults()

	if len(o.Addr) == 0 {
		return nil, ErrNoAddress
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.DialTimeout)
	defer cancel()

	var (
		conn *connect
		err  error
	)
	for num, addr := range o.Addr {
		if conn, err = dial(ctx, addr, num+1, o); err == nil {
			break
		}
	}
	if conn == nil {
		return nil, err
	}
	return &arcdb{opt: o, conn: conn}, nil
}

type arcdb struct {
	opt  *Options
	conn *connect
}

func (ch *arcdb) ServerBanner() []string {
	return ch.conn.serverBanner()
}

func (ch *arcdb) Query(ctx context.Context, query string) (_ driver.Rows, err error) {
	ctx, span := ch.createQuerySpan(ctx, "query", query)
	if span != nil {
		defer func() { endSpan(span, &err) }()
	}

	ch.conn.logger.Debug("executing query", slog.String("sql", query))
	env, err := ch.conn.query(ctx, query)
	if err != nil {
		return nil, err
	}
	if env.Status == proto.StatusError {
		err = &ServerError{Message: env.Message}
		return nil, err
	}
	return newRows(env), nil
}

func (ch *arcdb) QueryRow(ctx context.Context, query string) driver.Row {
	rows, err := ch.Query(ctx, query)
	if err != nil {
		return &row{err: err}
	}
	return &row{rows: rows}
}

func (ch *arcdb) Exec(ctx context.Context, query string) (_ driver.Result, err error) {
	ctx, span := ch.createQuerySpan(ctx, "exec", query)
	if span != nil {
		defer func() { endSpan(span, &err) }()
	}

	ch.conn.logger.Debug("executing statement", slog.String("sql", query))
	env, err := ch.conn.query(ctx, query)
	if err != nil {
		return nil, err
	}
	if env.Status == proto.StatusError {
		err = &ServerError{Message: env.Message}
		return nil, err
	}
	return &execResult{affected: env.AffectedRows, message: env.Message}, nil
}

func (ch *arcdb) Ping(ctx context.Context) error {
	env, err := ch.conn.query(ctx, "SELECT 1;")
	if err != nil {
		return err
	}
	if env.Status == proto.StatusError {
		return &ServerError{Message: env.Message}
	}
	return nil
}

func (ch *arcdb) Err() error {
	return ch.conn.sessionErr()
}

func (ch *arcdb) Close() error {
	return ch.conn.close()
}

type execResult struct {
	affected int64
	message  string
}

func (r *execResult) RowsAffected() int64 { return r.affected }
func (r *execResult) Message() string     { return r.message }

type row struct {
	err  error
	rows driver.Rows
}

func (r *row) Err() error { return r.err }

func (r *row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	defer r.rows.Close()
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return err
		}
		return fmt.Errorf("arcdb: no rows in result set")
	}
	return r.rows.Scan(dest...)
}
