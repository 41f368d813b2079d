package websocket

import "github.com/gofiber/contrib/websocket"

type Handler interface {
	Handle(c *websocket.Conn)
}

type HandlerTransport struct {
	AlertStreamHandler Handler
}
