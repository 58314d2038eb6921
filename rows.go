package arcdb

import (
	"github.com/arcdb/arcdb-go/lib/proto"
)

// rows is the forward-only cursor over one successful envelope. The
// position starts before the first row and only ever moves forward; it
// parks on the after-last sentinel once the rows are exhausted.
type rows struct {
	env     *proto.Envelope
	pos     int
	wasNull bool
	closed  bool
}

func newRows(env *proto.Envelope) *rows {
	return &rows{env: env, pos: -1}
}

func (r *rows) Columns() []string {
	if r.env == nil {
		return nil
	}
	columns := make([]string, len(r.env.Columns))
	copy(columns, r.env.Columns)
	return columns
}

func (r *rows) Next() bool {
	if r.closed || r.env == nil {
		return false
	}
	if r.pos >= len(r.env.Rows) {
		return false
	}
	r.pos++
	return r.pos < len(r.env.Rows)
}

func (r *rows) current(op string) (proto.Row, error) {
	if r.closed || r.env == nil || r.pos < 0 || r.pos >= len(r.env.Rows) {
		return proto.Row{}, &CursorOutOfRange{op: op}
	}
	return r.env.Rows[r.pos], nil
}

// raw returns the not-yet-unwrapped cell and records the null flag.
func (r *rows) raw(op string, idx int) (any, error) {
	row, err := r.current(op)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(r.env.Columns) || idx >= len(row.Values) {
		return nil, &InvalidColumnIndex{op: op, idx: idx}
	}
	v := row.Values[idx]
	r.wasNull = proto.IsNull(v)
	return v, nil
}

func (r *rows) Value(idx int) (any, error) {
	v, err := r.raw("Value", idx)
	if err != nil {
		return nil, err
	}
	if r.wasNull {
		return nil, nil
	}
	return proto.Unwrap(v), nil
}

// ValueByName resolves the column by exact, case-sensitive match; with
// duplicate column names the first match wins.
func (r *rows) ValueByName(name string) (any, error) {
	if r.env != nil {
		for i, col := range r.env.Columns {
			if col == name {
				return r.Value(i)
			}
		}
	}
	return nil, &UnknownColumnName{op: "ValueByName", name: name}
}

func (r *rows) Int64(idx int) (int64, error) {
	v, err := r.raw("Int64", idx)
	if err != nil {
		return 0, err
	}
	if r.wasNull {
		return 0, nil
	}
	return toInt64("Int64", proto.Unwrap(v))
}

func (r *rows) Float64(idx int) (float64, error) {
	v, err := r.raw("Float64", idx)
	if err != nil {
		return 0, err
	}
	if r.wasNull {
		return 0, nil
	}
	return toFloat64("Float64", proto.Unwrap(v))
}

func (r *rows) Text(idx int) (string, error) {
	v, err := r.raw("Text", idx)
	if err != nil {
		return "", err
	}
	if r.wasNull {
		return "", nil
	}
	return toText("Text", proto.Unwrap(v))
}

func (r *rows) Bool(idx int) (bool, error) {
	v, err := r.raw("Bool", idx)
	if err != nil {
		return false, err
	}
	if r.wasNull {
		return false, nil
	}
	return toBool("Bool", proto.Unwrap(v))
}

func (r *rows) WasNull() bool {
	return r.wasNull
}

func (r *rows) Scan(dest ...any) error {
	row, err := r.current("Scan")
	if err != nil {
		return err
	}
	if len(dest) != len(r.env.Columns) {
		return &UnexpectedScanDestination{op: "Scan", got: len(dest), expected: len(r.env.Columns)}
	}
	for i, d := range dest {
		var raw any
		if i < len(row.Values) {
			raw = row.Values[i]
		}
		if err := scanValue(d, raw); err != nil {
			return err
		}
	}
	return nil
}

func (r *rows) AffectedRows() int64 {
	if r.env == nil {
		return 0
	}
	return r.env.AffectedRows
}

func (r *rows) Message() string {
	if r.env == nil {
		return ""
	}
	return r.env.Message
}

func (r *rows) Err() error {
	return nil
}

func (r *rows) Close() error {
	r.closed = true
	r.env = nil
	return nil
}
