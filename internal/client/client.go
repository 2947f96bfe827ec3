// Package client provides a TCP client for the chat server.
package client

import (
	"fmt"
	"net"
	"sync"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/pkg/protocol"
)

// Client represents a chat session with a server. Inbound messages are
// surfaced on the Messages channel; the channel closes when the connection
// is lost or Disconnect is called.
type Client struct {
	address  string
	conn     net.Conn
	messages chan protocol.Message
	mu       sync.RWMutex
	done     chan struct{}
	wg       sync.WaitGroup
}

// New creates a new Client instance.
func New(address string) *Client {
	return &Client{
		address:  address,
		messages: make(chan protocol.Message, 10),
		done:     make(chan struct{}),
	}
}

// Connect establishes a connection to the server and starts receiving.
func (c *Client) Connect() error {
	conn, err := net.Dial("tcp", c.address)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.wg.Add(1)
	go c.receiveMessages(conn)

	return nil
}

// Disconnect closes the connection to the server.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	close(c.done)
	c.wg.Wait()
}

// IsConnected returns whether the client is connected.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

// Send frames text and writes it to the server. Text longer than
// protocol.MaxBodySize is rejected with protocol.ErrBodyTooLarge without
// touching the connection.
func (c *Client) Send(text string) error {
	msg, err := protocol.New([]byte(text))
	if err != nil {
		return err
	}

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected to server")
	}

	if _, err := conn.Write(msg.Encode()); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Messages returns the channel for receiving messages. The channel closes
// when the server goes away or Disconnect is called.
func (c *Client) Messages() <-chan protocol.Message {
	return c.messages
}

func (c *Client) receiveMessages(conn net.Conn) {
	defer c.wg.Done()
	defer close(c.messages)

	for {
		msg, err := protocol.ReadMessage(conn)
		if err != nil {
			return
		}

		select {
		case c.messages <- msg:
		case <-c.done:
			return
		}
	}
}
