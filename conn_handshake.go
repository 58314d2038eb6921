package arcdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcdb/arcdb-go/lib/proto"
)

// handshake drives the Handshaking -> Ready transition. It enqueues one
// synthetic waiter, writes the mode-selection command, and then waits for
// the read loop to classify frames until the confirmation (or a rejection)
// arrives. The waiter sits in the same queue as query waiters but is
// resolved by frame matching rather than JSON decoding.
func (c *connect) handshake(ctx context.Context) error {
	w := newWaiter(true)

	c.mu.Lock()
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	if _, err := c.conn.Write([]byte(proto.ModeCommand)); err != nil {
		return fmt.Errorf("arcdb [handshake]: write mode selection: %w", err)
	}

	timeout := time.After(c.opt.DialTimeout)
	select {
	case res := <-w.result:
		if res.err != nil {
			return res.err
		}
		c.logger.Debug("handshake complete", slog.String("token", w.token.String()))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout:
		return fmt.Errorf("arcdb [handshake]: no confirmation within %s", c.opt.DialTimeout)
	}
}

// handleHandshakeFrameLocked classifies one frame while handshaking. The
// server may send any number of banner lines before the confirmation; they
// are retained for ServerBanner and resolve nothing.
func (c *connect) handleHandshakeFrameLocked(frame string) {
	switch proto.ClassifyHandshakeFrame(frame) {
	case proto.HandshakeDone:
		w := c.popWaiterLocked()
		c.state = stateReady
		c.logger.Debug("output mode negotiated", slog.String("frame", frame))
		if w != nil {
			w.result <- waiterResult{envelope: proto.InfoEnvelope(frame)}
		}
	case proto.HandshakeFailed:
		w := c.popWaiterLocked()
		c.state = stateFailed
		c.fatal = &HandshakeError{Detail: frame}
		if w != nil {
			w.result <- waiterResult{err: &HandshakeError{Detail: frame}}
		}
	default:
		c.banner = append(c.banner, frame)
	}
}

func (c *connect) popWaiterLocked() *waiter {
	if len(c.waiters) == 0 {
		return nil
	}
	w := c.waiters[0]
	c.waiters = c.waiters[1:]
	return w
}
