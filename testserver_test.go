package arcdb

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
)

// testServer speaks the server side of the wire protocol over a real TCP
// socket. Script methods run from test goroutines and avoid t.Fatal; a
// misbehaving script shows up as a failed client-side assertion instead.
type testServer struct {
	t  *testing.T
	ln net.Listener

	mu       sync.Mutex
	conn     net.Conn
	reader   *bufio.Reader
	accepted chan struct{}

	// readMu serializes readLine callers; bufio.Reader is not safe for
	// concurrent use.
	readMu sync.Mutex
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &testServer{t: t, ln: ln, accepted: make(chan struct{})}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		srv.mu.Lock()
		srv.conn = conn
		srv.reader = bufio.NewReader(conn)
		srv.mu.Unlock()
		close(srv.accepted)
	}()
	t.Cleanup(srv.stop)
	return srv
}

func (s *testServer) addr() string {
	return s.ln.Addr().String()
}

func (s *testServer) waitConn() bool {
	select {
	case <-s.accepted:
		return true
	case <-time.After(5 * time.Second):
		return false
	}
}

// readLine blocks until one complete command line arrives.
func (s *testServer) readLine() string {
	if !s.waitConn() {
		return ""
	}
	s.readMu.Lock()
	defer s.readMu.Unlock()
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (s *testServer) write(text string) {
	if !s.waitConn() {
		return
	}
	s.conn.Write([]byte(text))
}

func (s *testServer) closeConn() {
	if !s.waitConn() {
		return
	}
	s.conn.Close()
}

func (s *testServer) stop() {
	s.ln.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
	}
}

// acceptHandshake consumes the mode-selection line and confirms it, with
// the usual banner in front.
func (s *testServer) acceptHandshake() {
	s.write("ArcDB Server v0.1.0\nReady for queries.\n")
	s.readLine()
	s.write("Output mode set to JSON\n")
}

func testOptions(addr string) *Options {
	return (&Options{
		Addr:        []string{addr},
		DialTimeout: 5 * time.Second,
	}).setDefaults()
}
