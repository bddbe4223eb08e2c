// Package intake receives print jobs from the network and the file system
// and hands them to the spooler.
package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/mzyy94/spoolsniff/internal/spool"
)

// DefaultRawPort is the conventional raw printing (JetDirect) port.
const DefaultRawPort = 9100

// DefaultIdleTimeout closes a raw connection that stops sending data.
const DefaultIdleTimeout = 30 * time.Second

// Submitter accepts jobs for processing. *spool.Spooler satisfies it.
type Submitter interface {
	Submit(ctx context.Context, job *spool.Job) (*spool.Result, error)
	MaxJobSize() int
}

// RawPortListener accepts raw print data over TCP. Each connection carries
// exactly one job, terminated by the client closing its side.
type RawPortListener struct {
	Addr        string        // e.g. ":9100"
	IdleTimeout time.Duration // 0 = DefaultIdleTimeout

	submit   Submitter
	listener net.Listener
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	stopped  bool
	wg       sync.WaitGroup
	done     chan struct{}
}

// NewRawPortListener creates a listener on addr that submits to s.
func NewRawPortListener(addr string, s Submitter) *RawPortListener {
	return &RawPortListener{Addr: addr, submit: s}
}

// Start binds the port and begins accepting connections in the background.
// Connections are served until ctx is cancelled or Stop is called.
func (l *RawPortListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.Addr)
	if err != nil {
		return fmt.Errorf("listen TCP %s: %w", l.Addr, err)
	}
	if l.IdleTimeout <= 0 {
		l.IdleTimeout = DefaultIdleTimeout
	}
	l.listener = ln
	l.conns = make(map[net.Conn]struct{})
	l.done = make(chan struct{})
	slog.Info("raw port listener started", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	go l.acceptLoop(ctx)
	return nil
}

// Address returns the bound address, useful when Addr used port 0.
func (l *RawPortListener) Address() net.Addr {
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// Stop closes the listener and open connections and waits for in-flight
// jobs to finish.
func (l *RawPortListener) Stop() {
	if l.listener != nil {
		l.listener.Close()
	}
	l.mu.Lock()
	l.stopped = true
	for conn := range l.conns {
		conn.Close()
	}
	l.mu.Unlock()
	if l.done != nil {
		<-l.done
	}
}

func (l *RawPortListener) acceptLoop(ctx context.Context) {
	defer close(l.done)
	defer l.wg.Wait()
	for {
		conn, err := l.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			slog.Debug("raw port accept error", "err", err)
			continue
		}
		if !l.track(conn) {
			conn.Close()
			return
		}
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			defer l.untrack(conn)
			l.handle(ctx, conn)
		}()
	}
}

func (l *RawPortListener) track(conn net.Conn) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return false
	}
	l.conns[conn] = struct{}{}
	return true
}

func (l *RawPortListener) untrack(conn net.Conn) {
	l.mu.Lock()
	delete(l.conns, conn)
	l.mu.Unlock()
	conn.Close()
}

func (l *RawPortListener) handle(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	slog.Debug("raw port connection", "remote", remote)

	data, err := readJob(conn, l.IdleTimeout, l.submit.MaxJobSize())
	if err != nil {
		slog.Warn("raw port read failed", "remote", remote, "bytes", len(data), "err", err)
		return
	}
	if len(data) == 0 {
		slog.Debug("raw port connection closed without data", "remote", remote)
		return
	}

	job := spool.NewJob(remote, spool.SourceRawPort, data)
	if _, err := l.submit.Submit(ctx, job); err != nil {
		return
	}
}

// readJob reads until EOF. Each successful read extends the deadline by
// idle, and more than limit bytes fails with spool.ErrJobTooLarge.
func readJob(conn net.Conn, idle time.Duration, limit int) ([]byte, error) {
	var data []byte
	buf := make([]byte, 32*1024)
	for {
		conn.SetReadDeadline(time.Now().Add(idle))
		n, err := conn.Read(buf)
		data = append(data, buf[:n]...)
		if len(data) > limit {
			return data, fmt.Errorf("%w: more than %d bytes", spool.ErrJobTooLarge, limit)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return data, nil
			}
			return data, err
		}
	}
}
