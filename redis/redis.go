package redis

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// ErrNil indicates a nil Redis response (missing key).
var ErrNil = errors.New("redis: nil")

// Options configures Redis connections.
type Options struct {
	Network      string
	Address      string
	Username     string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Client executes Redis commands with per-call connections.
type Client struct {
	options Options
}

// New creates a Redis client with defaults.
func New(options Options) *Client {
	cfg := options
	if cfg.Network == "" {
		cfg.Network = "tcp"
	}
	if cfg.Address == "" {
		cfg.Address = "127.0.0.1:6379"
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 2 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 2 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 2 * time.Second
	}
	return &Client{options: cfg}
}

// Get returns the value at key, or ErrNil when the key is missing.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := c.do(ctx, "GET", key)
	if err != nil {
		return nil, err
	}
	value, ok := resp.([]byte)
	if !ok {
		return nil, errors.New("redis: invalid GET response")
	}
	return value, nil
}

// Set stores value at key. A positive ttl becomes a PX expiry.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := []string{"SET", key, string(value)}
	if ttl > 0 {
		ms := ttl.Milliseconds()
		if ms <= 0 {
			ms = 1
		}
		args = append(args, "PX", strconv.FormatInt(ms, 10))
	}
	_, err := c.do(ctx, args...)
	return err
}

// Del removes key.
func (c *Client) Del(ctx context.Context, key string) error {
	_, err := c.do(ctx, "DEL", key)
	return err
}

func (c *Client) do(ctx context.Context, args ...string) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.close()

	resp, err := conn.do(ctx, args...)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrNil
	}
	return resp, nil
}

func (c *Client) dial(ctx context.Context) (*conn, error) {
	dialer := &net.Dialer{Timeout: c.options.DialTimeout}
	netConn, err := dialer.DialContext(ctx, c.options.Network, c.options.Address)
	if err != nil {
		return nil, err
	}

	client := &conn{
		conn:         netConn,
		rw:           bufio.NewReadWriter(bufio.NewReader(netConn), bufio.NewWriter(netConn)),
		readTimeout:  c.options.ReadTimeout,
		writeTimeout: c.options.WriteTimeout,
	}

	if c.options.Password != "" {
		args := []string{"AUTH"}
		if c.options.Username != "" {
			args = append(args, c.options.Username, c.options.Password)
		} else {
			args = append(args, c.options.Password)
		}
		if _, err := client.do(ctx, args...); err != nil {
			client.close()
			return nil, err
		}
	}
	if c.options.DB > 0 {
		if _, err := client.do(ctx, "SELECT", strconv.Itoa(c.options.DB)); err != nil {
			client.close()
			return nil, err
		}
	}

	return client, nil
}

type conn struct {
	conn         net.Conn
	rw           *bufio.ReadWriter
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func (c *conn) do(ctx context.Context, args ...string) (any, error) {
	if err := c.writeCommand(ctx, args); err != nil {
		return nil, err
	}
	return c.readResponse(ctx)
}

func (c *conn) close() {
	_ = c.conn.Close()
}

func (c *conn) writeCommand(ctx context.Context, args []string) error {
	if err := c.applyDeadline(ctx, c.writeTimeout, true); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(c.rw, "*%d\r\n", len(args)); err != nil {
		return err
	}
	for _, arg := range args {
		if _, err := fmt.Fprintf(c.rw, "$%d\r\n%s\r\n", len(arg), arg); err != nil {
			return err
		}
	}
	return c.rw.Flush()
}

func (c *conn) readResponse(ctx context.Context) (any, error) {
	if err := c.applyDeadline(ctx, c.readTimeout, false); err != nil {
		return nil, err
	}

	line, err := c.rw.ReadString('\n')
	if err != nil {
		return nil, err
	}
	line = strings.TrimSuffix(line, "\r\n")
	if line == "" {
		return nil, errors.New("redis: empty response")
	}

	switch line[0] {
	case '+':
		return line[1:], nil
	case '-':
		return nil, errors.New(line[1:])
	case ':':
		value, err := strconv.ParseInt(line[1:], 10, 64)
		if err != nil {
			return nil, err
		}
		return value, nil
	case '$':
		length, err := strconv.Atoi(line[1:])
		if err != nil {
			return nil, err
		}
		if length == -1 {
			return nil, nil
		}
		buf := make([]byte, length+2)
		if _, err := io.ReadFull(c.rw, buf); err != nil {
			return nil, err
		}
		return buf[:length], nil
	case '*':
		count, err := strconv.Atoi(line[1:])
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, count)
		for i := 0; i < count; i++ {
			item, err := c.readResponse(ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	default:
		return nil, errors.New("redis: unknown response")
	}
}

func (c *conn) applyDeadline(ctx context.Context, timeout time.Duration, write bool) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	deadline := deadlineFor(ctx, timeout)
	if deadline.IsZero() {
		return nil
	}
	if write {
		return c.conn.SetWriteDeadline(deadline)
	}
	return c.conn.SetReadDeadline(deadline)
}

func deadlineFor(ctx context.Context, timeout time.Duration) time.Time {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if ctx == nil {
		return deadline
	}
	ctxDeadline, ok := ctx.Deadline()
	if !ok {
		return deadline
	}
	if deadline.IsZero() || ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}
