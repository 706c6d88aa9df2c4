package core

import "fmt"

// Member is a user present in the channel. Identity is ID; Nick is display only.
type Member struct {
	Nick string
	ID   int64
}

func (m Member) String() string {
	return m.Nick
}

// GoString keeps debug output short in logs and test failures.
func (m Member) GoString() string {
	return fmt.Sprintf("<Member %q id=%d>", m.Nick, m.ID)
}
