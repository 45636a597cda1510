package ws

import (
	"log"
	"net/http"

	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub     *Hub
	chatbot usecase.ChatbotUsecase
	logger  *log.Logger
}

func NewHandler(hub *Hub, chatbot usecase.ChatbotUsecase, logger *log.Logger) *Handler {
	return &Handler{hub: hub, chatbot: chatbot, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) HandleChatWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("ws | upgrade error err=%v", err)
			}
			return
		}

		client := NewClient(h.hub, conn, h.chatbot)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
