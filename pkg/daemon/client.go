package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"
)

// Client is the renderer side of the socket.
type Client struct {
	conn     net.Conn
	clientID string
	sendMu   sync.Mutex
}

// Dial connects to a session's socket, retrying while the server starts up.
func Dial(ctx context.Context, sessionID, clientID string) (*Client, error) {
	sockPath := SocketPath(sessionID)
	var d net.Dialer
	var lastErr error
	for i := 0; i < 10; i++ {
		conn, err := d.DialContext(ctx, "unix", sockPath)
		if err == nil {
			return &Client{conn: conn, clientID: clientID}, nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("connect %s: %w", sockPath, lastErr)
}

func (c *Client) ID() string { return c.clientID }

func (c *Client) send(msg Message) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	msg.ClientID = c.clientID
	return writeMessage(c.conn, msg)
}

func (c *Client) Subscribe(size ResizePayload) error {
	return c.send(Message{Type: MsgSubscribe, Payload: size})
}

func (c *Client) Unsubscribe() error {
	return c.send(Message{Type: MsgUnsubscribe})
}

func (c *Client) Resize(size ResizePayload) error {
	return c.send(Message{Type: MsgResize, Payload: size})
}

func (c *Client) Input(input *InputPayload) error {
	return c.send(Message{Type: MsgInput, Payload: input})
}

func (c *Client) Viewport(offset int) error {
	return c.send(Message{Type: MsgViewportUpdate, Payload: ViewportUpdatePayload{ViewportOffset: offset}})
}

func (c *Client) Ping() error {
	return c.send(Message{Type: MsgPing})
}

// Receive reads frames until the connection closes.
func (c *Client) Receive(onRender func(*RenderPayload)) error {
	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		if msg.Type != MsgRender {
			continue
		}
		var payload RenderPayload
		if decodePayload(msg.Payload, &payload) {
			onRender(&payload)
		}
	}
	return scanner.Err()
}

func (c *Client) Close() error {
	return c.conn.Close()
}
