package arcdb

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultPort is the port an ArcDB server listens on when none is given.
const DefaultPort = "7171"

type Options struct {
	Addr     []string // host:port pairs, tried in order
	Database string

	// DialTimeout bounds both the TCP dial and the handshake. Default 5s.
	DialTimeout time.Duration

	// DialContext, when set, replaces the default TCP dialer.
	DialContext func(ctx context.Context, addr string) (net.Conn, error)

	// Logger is the base logger; it is enriched per connection. Defaults
	// to a text handler on stdout at warn level.
	Logger *slog.Logger

	// EnableTracing turns on OpenTelemetry spans around Query and Exec.
	EnableTracing bool

	scheme string
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return defaultLogger()
}

func (o *Options) setDefaults() *Options {
	if o.DialTimeout == 0 {
		o.DialTimeout = 5 * time.Second
	}
	for i, addr := range o.Addr {
		if !strings.Contains(addr, ":") {
			o.Addr[i] = net.JoinHostPort(addr, DefaultPort)
		}
	}
	return o
}

// ParseDSN parses a connection URL of the form
// arcdb://host[:port][/database].
func ParseDSN(dsn string) (*Options, error) {
	opt := &Options{}
	if err := opt.fromDSN(dsn); err != nil {
		return nil, err
	}
	return opt, nil
}

func (o *Options) fromDSN(in string) error {
	dsn, err := url.Parse(in)
	if err != nil {
		return errors.Wrap(err, "parse dsn address failed")
	}
	if dsn.Scheme == "" || dsn.Host == "" {
		return errors.New("parse dsn address failed")
	}
	if dsn.Scheme != "arcdb" {
		return errors.Errorf("unsupported scheme %q", dsn.Scheme)
	}

	o.scheme = dsn.Scheme
	for _, host := range strings.Split(dsn.Host, ",") {
		o.Addr = append(o.Addr, host)
	}
	if db := strings.TrimPrefix(dsn.Path, "/"); db != "" {
		o.Database = db
	}

	params := dsn.Query()
	if v := params.Get("dial_timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "dial_timeout invalid")
		}
		o.DialTimeout = d
	}

	o.setDefaults()
	return nil
}
