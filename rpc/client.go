package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
)

const (
	DatabaseAPI  = "database"
	BroadcastAPI = "network_broadcast"
)

type Options struct {
	Timeout            time.Duration
	CallsPerSecond     int
	BreakerMaxFailures uint32
}

type request struct {
	ID     uint64        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("node error %d: %s", e.Code, e.Message)
}

type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Client speaks the node's json-rpc over one websocket. The connection is
// dialed lazily and redialed after it breaks; responses are matched by id so
// calls may run concurrently.
type Client struct {
	endpoint string
	timeout  time.Duration
	log      logrus.FieldLogger
	limiter  ratelimit.Limiter
	cb       *gobreaker.CircuitBreaker
	dialer   *websocket.Dialer

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[uint64]chan *response
	seq     uint64

	writeMu sync.Mutex
}

func NewClient(endpoint string, opts Options, log logrus.FieldLogger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	limiter := ratelimit.NewUnlimited()
	if opts.CallsPerSecond > 0 {
		limiter = ratelimit.New(opts.CallsPerSecond)
	}
	return &Client{
		endpoint: endpoint,
		timeout:  opts.Timeout,
		log:      log,
		limiter:  limiter,
		cb:       newCircuitBreaker(endpoint, opts.BreakerMaxFailures, log),
		dialer:   &websocket.Dialer{HandshakeTimeout: opts.Timeout},
		pending:  make(map[uint64]chan *response),
	}
}

func newCircuitBreaker(endpoint string, maxFailures uint32, log logrus.FieldLogger) *gobreaker.CircuitBreaker {
	if maxFailures == 0 {
		maxFailures = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: endpoint,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.Warnf("node %s seems down, stop allowing requests", name)
			}
			if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
				log.Infof("checking node %s status", name)
			}
			if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
				log.Infof("node %s seems ok, restart allowing requests", name)
			}
		},
	})
}

// Call invokes method of api and decodes the result into result, which may be nil.
// Every failure wraps prototype.ErrTransport. Only connection failures count
// towards opening the breaker; errors reported by the node do not.
func (c *Client) Call(ctx context.Context, api, method string, params []interface{}, result interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	c.limiter.Take()

	var resp *response
	_, err := c.cb.Execute(func() (interface{}, error) {
		var err error
		resp, err = c.roundTrip(ctx, api, method, params)
		return nil, err
	})
	if err != nil {
		return errors.Wrapf(prototype.ErrTransport, "%s.%s: %v", api, method, err)
	}
	if resp.Error != nil {
		return errors.Wrapf(prototype.ErrTransport, "%s.%s: %v", api, method, resp.Error)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, result); err != nil {
		return errors.Wrapf(prototype.ErrTransport, "%s.%s: decode result: %v", api, method, err)
	}
	return nil
}

func (c *Client) connect(ctx context.Context) (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn, nil
	}
	conn, _, err := c.dialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.log.WithField("endpoint", c.endpoint).Debug("connected")
	c.conn = conn
	go c.readLoop(conn)
	return conn, nil
}

func (c *Client) roundTrip(ctx context.Context, api, method string, params []interface{}) (*response, error) {
	conn, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	ch := make(chan *response, 1)
	c.mu.Lock()
	c.seq++
	id := c.seq
	c.pending[id] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	req := request{ID: id, Method: "call", Params: []interface{}{api, method, params}}
	c.writeMu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(c.timeout))
	err = conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		c.drop(conn, err)
		return nil, err
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, errors.New("connection closed")
		}
		return resp, nil
	case <-timer.C:
		return nil, errors.Errorf("no response in %v", c.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var resp response
		if err := conn.ReadJSON(&resp); err != nil {
			c.drop(conn, err)
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		if ok {
			// buffered, never blocks
			ch <- &resp
			delete(c.pending, resp.ID)
		}
		c.mu.Unlock()
	}
}

// drop forgets a broken connection and fails every call waiting on it
func (c *Client) drop(conn *websocket.Conn, cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}
	c.log.WithField("endpoint", c.endpoint).Debugf("connection dropped: %v", cause)
	_ = conn.Close()
	c.conn = nil
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		c.drop(conn, errors.New("closed by client"))
	}
}
