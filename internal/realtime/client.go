package realtime

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
	sendQueueSize  = 16
)

// Client é uma conexão WebSocket autenticada de um usuário.
type Client struct {
	ID     string
	UserID uint

	registry Registry
	conn     *websocket.Conn
	send     chan []byte
}

func NewClient(registry Registry, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		ID:       uuid.NewString(),
		UserID:   userID,
		registry: registry,
		conn:     conn,
		send:     make(chan []byte, sendQueueSize),
	}
}

// Run registra a conexão e inicia as bombas de leitura/escrita.
func (c *Client) Run() {
	c.registry.Register(c)
	go c.writePump()
	go c.readPump()
}

// readPump consome o lado de leitura só para detectar desconexão e
// manter o deadline de pong. O canal é push-only para o cliente.
func (c *Client) readPump() {
	defer func() {
		c.registry.Deregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: conn %s read error: %v", c.ID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub fechou o canal (deregister)
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
