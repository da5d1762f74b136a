package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gxchain/gxwallet/mylog"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nodeHandler func(params []json.RawMessage) (interface{}, *rpcError)

// fakeNode answers "call" requests over a websocket the way a node does
type fakeNode struct {
	server   *httptest.Server
	handlers map[string]nodeHandler
	calls    int32
	lastAPI  atomic.Value
}

func newFakeNode(t *testing.T, handlers map[string]nodeHandler) *fakeNode {
	n := &fakeNode{handlers: handlers}
	upgrader := websocket.Upgrader{}
	n.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var req struct {
				ID     uint64            `json:"id"`
				Params []json.RawMessage `json:"params"`
			}
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			atomic.AddInt32(&n.calls, 1)
			var api, method string
			var params []json.RawMessage
			_ = json.Unmarshal(req.Params[0], &api)
			_ = json.Unmarshal(req.Params[1], &method)
			_ = json.Unmarshal(req.Params[2], &params)
			n.lastAPI.Store(api)

			resp := map[string]interface{}{"id": req.ID, "jsonrpc": "2.0"}
			h, ok := n.handlers[method]
			if !ok {
				resp["error"] = &rpcError{Code: 1, Message: "no method " + method}
			} else if result, rerr := h(params); rerr != nil {
				resp["error"] = rerr
			} else {
				resp["result"] = result
			}
			if err := conn.WriteJSON(resp); err != nil {
				return
			}
		}
	}))
	return n
}

func (n *fakeNode) url() string {
	return "ws" + strings.TrimPrefix(n.server.URL, "http")
}

func (n *fakeNode) Close() {
	n.server.Close()
}

func newTestClient(endpoint string) *Client {
	return NewClient(endpoint, Options{Timeout: 2 * time.Second, BreakerMaxFailures: 2}, mylog.Discard())
}

func TestClientCall(t *testing.T) {
	node := newFakeNode(t, map[string]nodeHandler{
		"get_chain_id": func([]json.RawMessage) (interface{}, *rpcError) {
			return "4f7d", nil
		},
	})
	defer node.Close()
	c := newTestClient(node.url())
	defer c.Close()

	var id string
	require.NoError(t, c.Call(context.Background(), DatabaseAPI, "get_chain_id", nil, &id))
	assert.Equal(t, "4f7d", id)
	assert.Equal(t, DatabaseAPI, node.lastAPI.Load())

	// the connection is reused
	require.NoError(t, c.Call(context.Background(), DatabaseAPI, "get_chain_id", nil, &id))
	assert.EqualValues(t, 2, atomic.LoadInt32(&node.calls))
}

func TestClientNodeError(t *testing.T) {
	node := newFakeNode(t, map[string]nodeHandler{})
	defer node.Close()
	c := newTestClient(node.url())
	defer c.Close()

	for i := 0; i < 5; i++ {
		err := c.Call(context.Background(), DatabaseAPI, "nope", nil, nil)
		assert.True(t, errors.Is(err, prototype.ErrTransport))
		assert.Contains(t, err.Error(), "no method nope")
	}
}

func TestClientDialFailureOpensBreaker(t *testing.T) {
	c := newTestClient("ws://127.0.0.1:1")
	for i := 0; i < 3; i++ {
		err := c.Call(context.Background(), DatabaseAPI, "get_chain_id", nil, nil)
		assert.True(t, errors.Is(err, prototype.ErrTransport))
	}
	err := c.Call(context.Background(), DatabaseAPI, "get_chain_id", nil, nil)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

func TestClientTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	node := newFakeNode(t, map[string]nodeHandler{
		"slow": func([]json.RawMessage) (interface{}, *rpcError) {
			<-block
			return nil, nil
		},
	})
	defer node.Close()
	c := NewClient(node.url(), Options{Timeout: 100 * time.Millisecond}, mylog.Discard())
	defer c.Close()

	err := c.Call(context.Background(), DatabaseAPI, "slow", nil, nil)
	assert.True(t, errors.Is(err, prototype.ErrTransport))
}

func TestClientContextCancelled(t *testing.T) {
	c := newTestClient("ws://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Call(ctx, DatabaseAPI, "get_chain_id", nil, nil)
	assert.True(t, errors.Is(err, prototype.ErrTransport))
}
