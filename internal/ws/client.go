package ws

import (
	"context"
	"encoding/json"
	"time"

	"jobpath/internal/usecase"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	askTimeout = 15 * time.Second
)

type chatMessage struct {
	Question string `json:"question"`
}

type chatReply struct {
	Type   string `json:"type"`
	Answer string `json:"answer"`
	Source string `json:"source"`
	Error  string `json:"error,omitempty"`
}

// Client is one connected chat widget. Questions arrive as JSON frames and
// are answered on the same connection; broadcasts from the hub are
// interleaved on the send channel.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	chatbot usecase.ChatbotUsecase
}

func NewClient(hub *Hub, conn *websocket.Conn, chatbot usecase.ChatbotUsecase) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 64),
		chatbot: chatbot,
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg chatMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(chatReply{Type: "error", Error: "malformed message"})
			continue
		}
		c.answer(msg.Question)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) answer(question string) {
	if c.chatbot == nil {
		c.reply(chatReply{Type: "error", Error: "chat unavailable"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	ans, err := c.chatbot.Ask(ctx, question)
	if err != nil {
		c.reply(chatReply{Type: "error", Error: "could not answer that"})
		return
	}
	c.reply(chatReply{Type: "answer", Answer: ans.Answer, Source: ans.Source})
}

func (c *Client) reply(r chatReply) {
	b, err := json.Marshal(r)
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}
