package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches c to sessionID and blocks until the connection ends.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID, userID string, onText func([]byte)) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: sessionID,
		UserID:    userID,
		Send:      make(chan []byte, 256),
		OnText:    onText,
	}
	if !client.Hub.Register(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
