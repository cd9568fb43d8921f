// Package hub fans JSON state snapshots out to websocket clients.
package hub

// Message is one pre-encoded JSON text frame.
type Message struct {
	Data []byte
}

// NewJSONMessage wraps already encoded JSON.
func NewJSONMessage(data []byte) Message {
	return Message{Data: data}
}
