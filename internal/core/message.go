package core

// ChatMessage is a chat line received in the channel.
type ChatMessage struct {
	Channel string
	Author  Member
	Text    string
}

func (m ChatMessage) String() string {
	return m.Text
}
