// Package realtime speaks the event protocol of a realtime voice assistant
// and routes the assistant's function calls to demo actions.
//
// The protocol is owned by the third-party API: the client configures the
// session with "session.update", receives finished function calls as
// "response.function_call_arguments.done", and reports results with a
// "conversation.item.create" carrying a "function_call_output" item.
// Events travel over a WebRTC data channel (Peer) or a websocket (WSTransport).
package realtime

import "github.com/teslashibe/go-handcar/pkg/actions"

// Event types used by the demo.
const (
	TypeSessionUpdate          = "session.update"
	TypeSessionCreated         = "session.created"
	TypeSessionUpdated         = "session.updated"
	TypeFunctionCallArgsDone   = "response.function_call_arguments.done"
	TypeConversationItemCreate = "conversation.item.create"
	TypeResponseCreate         = "response.create"
	TypeResponseDone           = "response.done"
	TypeError                  = "error"

	ItemFunctionCallOutput = "function_call_output"
)

// Event is the envelope shared by every event.
type Event struct {
	Type    string `json:"type"`
	EventID string `json:"event_id,omitempty"`
}

// SessionUpdate configures modalities, voice and tools.
type SessionUpdate struct {
	Type    string        `json:"type"`
	Session SessionParams `json:"session"`
}

// SessionParams is the session object of a SessionUpdate.
type SessionParams struct {
	Modalities   []string       `json:"modalities"`
	Instructions string         `json:"instructions,omitempty"`
	Voice        string         `json:"voice,omitempty"`
	Tools        []actions.Tool `json:"tools"`
	ToolChoice   string         `json:"tool_choice,omitempty"`
}

// FunctionCallArgumentsDone announces a completed function call.
// Arguments is itself a JSON document encoded as a string.
type FunctionCallArgumentsDone struct {
	Type       string `json:"type"`
	ResponseID string `json:"response_id,omitempty"`
	ItemID     string `json:"item_id,omitempty"`
	CallID     string `json:"call_id"`
	Name       string `json:"name"`
	Arguments  string `json:"arguments"`
}

// ConversationItemCreate adds an item to the conversation.
type ConversationItemCreate struct {
	Type string             `json:"type"`
	Item FunctionCallOutput `json:"item"`
}

// FunctionCallOutput reports the result of a function call.
// Output is the JSON-encoded action result.
type FunctionCallOutput struct {
	Type   string `json:"type"`
	CallID string `json:"call_id"`
	Output string `json:"output"`
}

// ResponseCreate asks the assistant to continue after a function result.
type ResponseCreate struct {
	Type string `json:"type"`
}

// ErrorEvent is sent by the API when a client event was rejected.
type ErrorEvent struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewSessionUpdate builds the session configuration event.
func NewSessionUpdate(instructions, voice string, tools []actions.Tool) SessionUpdate {
	return SessionUpdate{
		Type: TypeSessionUpdate,
		Session: SessionParams{
			Modalities:   []string{"text", "audio"},
			Instructions: instructions,
			Voice:        voice,
			Tools:        tools,
			ToolChoice:   "auto",
		},
	}
}

// NewFunctionCallOutput builds the event reporting output for callID.
func NewFunctionCallOutput(callID, output string) ConversationItemCreate {
	return ConversationItemCreate{
		Type: TypeConversationItemCreate,
		Item: FunctionCallOutput{
			Type:   ItemFunctionCallOutput,
			CallID: callID,
			Output: output,
		},
	}
}
