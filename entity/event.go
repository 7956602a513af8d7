package entity

import (
	"time"
)

// ChatContext is a read-only view of the chat a message arrived in.
// Optional fields are pointers; nil means the platform did not provide
// the value. Megagroup and Broadcast come straight from the platform
// model, which sets at most one of them for any given chat.
type ChatContext struct {
	ID        int64
	Title     *string
	User      bool
	Megagroup bool
	Broadcast bool
}

// SenderContext is a read-only view of the message author. For channel
// posts the sender may be the channel itself, in which case only ID and
// Username can be set.
type SenderContext struct {
	ID        int64
	Username  *string
	FirstName *string
	LastName  *string
	Phone     *string
	Self      bool
	Photo     *PhotoRef
}

// PhotoRef points at a sender's current profile photo. AccessHash is
// the owning peer's access hash, required to address the file.
type PhotoRef struct {
	PhotoID    int64
	AccessHash int64
}

// InboundEvent is one new-message event with its contexts already
// resolved. It lives only for the duration of a single handler call.
type InboundEvent struct {
	MessageID int64
	Text      string
	Date      time.Time
	Outgoing  bool
	Chat      *ChatContext
	Sender    *SenderContext
}

// DisplayName returns the best human-readable name for the sender,
// used only for console logging.
func (s *SenderContext) DisplayName() string {
	if s == nil {
		return "unknown"
	}
	if s.Username != nil && *s.Username != "" {
		return *s.Username
	}
	if s.FirstName != nil && *s.FirstName != "" {
		return *s.FirstName
	}
	return "unknown"
}

// DisplayTitle returns the chat title for console logging, falling back
// to "private" for direct chats.
func (c *ChatContext) DisplayTitle() string {
	if c == nil || c.Title == nil || *c.Title == "" {
		return "private"
	}
	return *c.Title
}
