package proto

import (
	"encoding/json"
	"fmt"
)

const (
	// DefaultURL is the public hack.chat websocket endpoint.
	DefaultURL = "wss://hack.chat/chat-ws"

	CmdJoin         = "join"
	CmdChat         = "chat"
	CmdOnlineSet    = "onlineSet"
	CmdOnlineAdd    = "onlineAdd"
	CmdOnlineRemove = "onlineRemove"
	CmdWarn         = "warn"
	CmdInfo         = "info"

	// RateLimitText is the warning the server sends when joins arrive too fast.
	RateLimitText = "You are joining channels too fast. Wait a moment and try again."
)

// Header is the part every frame shares. It is decoded first to pick the concrete frame type.
type Header struct {
	Cmd string `json:"cmd"`
}

// JoinFrame asks the server to put this connection into a channel.
type JoinFrame struct {
	Cmd     string `json:"cmd"`
	Channel string `json:"channel"`
	Nick    string `json:"nick"`
}

// NewJoin builds an outbound join frame.
func NewJoin(channel, nick string) JoinFrame {
	return JoinFrame{Cmd: CmdJoin, Channel: channel, Nick: nick}
}

// ChatOut is an outbound chat message.
type ChatOut struct {
	Cmd  string `json:"cmd"`
	Text string `json:"text"`
}

// NewChat builds an outbound chat frame.
func NewChat(text string) ChatOut {
	return ChatOut{Cmd: CmdChat, Text: text}
}

// OnlineUser is one roster entry in an onlineSet frame.
type OnlineUser struct {
	Nick   string `json:"nick"`
	UserID int64  `json:"userid"`
	IsMe   bool   `json:"isme"`
}

// OnlineSet is the roster snapshot sent right after a successful join.
type OnlineSet struct {
	Users []OnlineUser `json:"users"`
}

// ChatIn is a chat message relayed by the server.
type ChatIn struct {
	UserID int64  `json:"userid"`
	Nick   string `json:"nick,omitempty"`
	Text   string `json:"text"`
}

// OnlineAdd announces a member joining the channel.
type OnlineAdd struct {
	Nick   string `json:"nick"`
	UserID int64  `json:"userid"`
}

// OnlineRemove announces a member leaving the channel.
type OnlineRemove struct {
	UserID int64 `json:"userid"`
}

// Notice carries the text of warn and info frames.
type Notice struct {
	Text string `json:"text"`
}

// Frame is a decoded inbound frame. Body holds one of the typed frames above,
// or nil when Cmd is not one this client understands.
type Frame struct {
	Cmd  string
	Body any
}

// Decode parses one raw inbound frame.
func Decode(raw []byte) (Frame, error) {
	var hdr Header
	if err := json.Unmarshal(raw, &hdr); err != nil {
		return Frame{}, fmt.Errorf("decode frame header: %w", err)
	}

	var body any
	switch hdr.Cmd {
	case CmdOnlineSet:
		body = &OnlineSet{}
	case CmdChat:
		body = &ChatIn{}
	case CmdOnlineAdd:
		body = &OnlineAdd{}
	case CmdOnlineRemove:
		body = &OnlineRemove{}
	case CmdWarn, CmdInfo:
		body = &Notice{}
	default:
		return Frame{Cmd: hdr.Cmd}, nil
	}

	if err := json.Unmarshal(raw, body); err != nil {
		return Frame{}, fmt.Errorf("decode %s frame: %w", hdr.Cmd, err)
	}
	return Frame{Cmd: hdr.Cmd, Body: body}, nil
}
