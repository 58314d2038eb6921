package arcdb

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arcdb/arcdb-go/lib/proto"
)

type connState int

const (
	stateHandshaking connState = iota
	stateReady
	stateFailed
	stateClosed
)

func dial(ctx context.Context, addr string, num int, opt *Options) (*connect, error) {
	var (
		err  error
		conn net.Conn
	)

	switch {
	case opt.DialContext != nil:
		conn, err = opt.DialContext(ctx, addr)
	default:
		conn, err = net.DialTimeout("tcp", addr, opt.DialTimeout)
	}
	if err != nil {
		return nil, err
	}

	baseLogger := opt.logger()
	logger := prepareConnLogger(baseLogger, num, conn.RemoteAddr().String())

	c := &connect{
		opt:         opt,
		conn:        conn,
		logger:      logger,
		state:       stateHandshaking,
		connectedAt: time.Now(),
		readDone:    make(chan struct{}),
	}

	go c.readLoop()

	if err := c.handshake(ctx); err != nil {
		c.close()
		return nil, err
	}
	return c, nil
}

// connect owns one duplex stream, the framing buffer, and the FIFO waiter
// queue pairing each outstanding command with its eventual response line.
// The wire carries no request identifiers, so queue order is the only
// correlation mechanism; everything that touches the queue or the buffer
// runs under mu.
type connect struct {
	opt         *Options
	conn        net.Conn
	logger      *slog.Logger
	connectedAt time.Time

	mu      sync.Mutex
	state   connState
	framer  proto.Framer
	waiters []*waiter
	banner  []string
	fatal   error

	readDone chan struct{}
}

// waiter is one outstanding request. The result channel is buffered so the
// read loop hands a response off without ever blocking on a slow caller.
// The token never goes on the wire; it exists to make debug logs traceable.
type waiter struct {
	token     uuid.UUID
	result    chan waiterResult
	handshake bool
	abandoned bool // caller gave up; the matching response is consumed and dropped
}

type waiterResult struct {
	envelope *proto.Envelope
	err      error
}

func newWaiter(handshake bool) *waiter {
	return &waiter{
		token:     uuid.New(),
		result:    make(chan waiterResult, 1),
		handshake: handshake,
	}
}

func (c *connect) serverBanner() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	banner := make([]string, len(c.banner))
	copy(banner, c.banner)
	return banner
}

func (c *connect) sessionErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fatal
}

func (c *connect) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateClosed
}

// readLoop delivers raw bytes into the framer until the stream errors. It
// is the only reader of c.conn.
func (c *connect) readLoop() {
	defer close(c.readDone)

	buf := make([]byte, 4096)
	for {
		n, err := c.conn.Read(buf)
		if n > 0 {
			c.dispatch(buf[:n])
		}
		if err != nil {
			c.fail(err)
			return
		}
	}
}

// dispatch feeds one delivery into the framer and classifies every
// complete frame it produced. Buffer mutation and queue pops share a
// single critical section.
func (c *connect) dispatch(p []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.framer.Submit(p)
	for _, frame := range c.framer.TakeFrames() {
		switch c.state {
		case stateHandshaking:
			c.handleHandshakeFrameLocked(frame)
		case stateReady:
			c.handleFrameLocked(frame)
		default:
			// failed or closed; late frames carry no meaning
		}
	}
}

// handleFrameLocked resolves the oldest pending waiter with one frame.
func (c *connect) handleFrameLocked(frame string) {
	if len(c.waiters) == 0 {
		c.logger.Warn("orphaned server line dropped", slog.String("line", frame))
		return
	}
	w := c.waiters[0]
	c.waiters = c.waiters[1:]

	var res waiterResult
	if proto.IsStructured(frame) {
		env, err := proto.DecodeEnvelope(frame)
		if err != nil {
			res.err = &DecodeError{Text: frame, Err: err}
		} else {
			res.envelope = env
		}
	} else {
		res.envelope = proto.InfoEnvelope(frame)
	}

	if w.abandoned {
		c.logger.Debug("response for abandoned request dropped",
			slog.String("token", w.token.String()))
		return
	}
	w.result <- res
}

// query sends one command and waits for the frame that answers it.
// Enqueue and write happen under the connection lock as one atomic step;
// interleaving them across callers would desynchronize the correlation
// queue.
func (c *connect) query(ctx context.Context, command string) (*proto.Envelope, error) {
	line := sanitizeCommand(command)

	c.mu.Lock()
	switch c.state {
	case stateReady:
	case stateClosed:
		c.mu.Unlock()
		return nil, ErrConnectionClosed
	case stateFailed:
		err := c.fatal
		c.mu.Unlock()
		return nil, fmt.Errorf("arcdb: connection lost: %w", err)
	default:
		c.mu.Unlock()
		return nil, ErrNotReady
	}

	w := newWaiter(false)
	c.waiters = append(c.waiters, w)
	if _, err := c.conn.Write([]byte(line)); err != nil {
		// the server never saw the command; take the waiter back out
		c.removeWaiterLocked(w)
		c.mu.Unlock()
		return nil, fmt.Errorf("arcdb: write command: %w", err)
	}
	c.mu.Unlock()

	c.logger.Debug("command sent",
		slog.String("token", w.token.String()),
		slog.String("sql", strings.TrimSpace(line)))

	select {
	case res := <-w.result:
		return res.envelope, res.err
	case <-ctx.Done():
		c.abandon(w)
		return nil, ctx.Err()
	}
}

// abandon marks a timed-out waiter so its eventual response is still
// consumed in order, then discarded, keeping later correlations aligned.
func (c *connect) abandon(w *waiter) {
	c.mu.Lock()
	for _, queued := range c.waiters {
		if queued == w {
			w.abandoned = true
			c.mu.Unlock()
			return
		}
	}
	c.mu.Unlock()

	// already resolved; drop the buffered result
	select {
	case <-w.result:
	default:
	}
}

func (c *connect) removeWaiterLocked(w *waiter) {
	for i := len(c.waiters) - 1; i >= 0; i-- {
		if c.waiters[i] == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}

// fail is invoked from the read loop when the stream errors. Before Ready
// the handshake waiter carries the failure. After Ready every queued
// waiter is rejected with the transport error: no single request caused
// the loss, but a waiter that can never resolve leaves its caller blocked
// forever.
func (c *connect) fail(err error) {
	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return
	}
	prev := c.state
	c.state = stateFailed
	c.fatal = err
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	if prev == stateReady {
		c.logger.Error("connection lost",
			slog.Any("error", err),
			slog.Int("pending", len(waiters)))
	}

	for _, w := range waiters {
		if w.abandoned {
			continue
		}
		if w.handshake {
			w.result <- waiterResult{err: fmt.Errorf("arcdb [handshake]: %w", err)}
			continue
		}
		w.result <- waiterResult{err: fmt.Errorf("arcdb: connection lost: %w", err)}
	}
}

// close releases the stream and discards the waiter queue. Waiters still
// pending at close time are never resolved; issuing close with requests in
// flight is the caller's race to avoid. Idempotent.
func (c *connect) close() error {
	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return nil
	}
	c.state = stateClosed
	c.waiters = nil
	c.mu.Unlock()

	err := c.conn.Close()
	if c.readDone != nil {
		<-c.readDone
	}
	c.logger.Debug("connection closed",
		slog.Duration("uptime", time.Since(c.connectedAt)),
		slog.Any("error", err))
	return err
}

// sanitizeCommand collapses embedded newlines to single spaces and appends
// the terminator; the wire protocol is strictly one logical command per
// line.
func sanitizeCommand(command string) string {
	command = strings.TrimSpace(command)
	command = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(command)
	return command + "\n"
}
