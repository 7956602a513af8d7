package userbot

import (
	"github.com/gotd/td/tg"

	"TgBridge/entity"
)

// resolveChat maps the message peer onto a ChatContext using the
// entities delivered with the update. Returns nil when the peer cannot
// be resolved, which drops the event.
func resolveChat(e tg.Entities, peer tg.PeerClass) *entity.ChatContext {
	switch p := peer.(type) {
	case *tg.PeerUser:
		u, ok := e.Users[p.UserID]
		if !ok {
			return nil
		}
		return &entity.ChatContext{
			ID:   u.ID,
			User: true,
		}
	case *tg.PeerChat:
		c, ok := e.Chats[p.ChatID]
		if !ok {
			return nil
		}
		// basic groups carry no megagroup flag, so is_group stays false
		title := c.Title
		return &entity.ChatContext{
			ID:    c.ID,
			Title: &title,
		}
	case *tg.PeerChannel:
		ch, ok := e.Channels[p.ChannelID]
		if !ok {
			return nil
		}
		title := ch.Title
		return &entity.ChatContext{
			ID:        ch.ID,
			Title:     &title,
			Megagroup: ch.Megagroup,
			Broadcast: ch.Broadcast,
		}
	}
	return nil
}

// resolveSender maps the message author onto a SenderContext. Direct
// chats may omit from_id, in which case the author is the peer user
// for inbound messages. Channel posts are authored by the channel
// itself. Returns nil when nothing resolves, which drops the event.
func resolveSender(e tg.Entities, m *tg.Message) *entity.SenderContext {
	if from, ok := m.GetFromID(); ok {
		switch p := from.(type) {
		case *tg.PeerUser:
			if u, ok := e.Users[p.UserID]; ok {
				return senderFromUser(u)
			}
		case *tg.PeerChannel:
			if ch, ok := e.Channels[p.ChannelID]; ok {
				return senderFromChannel(ch)
			}
		}
		return nil
	}

	// no from_id: private chat, the author is one of the two sides
	if p, ok := m.PeerID.(*tg.PeerUser); ok {
		if m.Out {
			for _, u := range e.Users {
				if u.Self {
					return senderFromUser(u)
				}
			}
		}
		if u, ok := e.Users[p.UserID]; ok {
			return senderFromUser(u)
		}
	}
	return nil
}

func senderFromUser(u *tg.User) *entity.SenderContext {
	sender := &entity.SenderContext{
		ID:   u.ID,
		Self: u.Self,
	}

	if v, ok := u.GetUsername(); ok {
		sender.Username = &v
	}
	if v, ok := u.GetFirstName(); ok {
		sender.FirstName = &v
	}
	if v, ok := u.GetLastName(); ok {
		sender.LastName = &v
	}
	if v, ok := u.GetPhone(); ok {
		sender.Phone = &v
	}

	if photo, ok := u.GetPhoto(); ok {
		if p, ok := photo.(*tg.UserProfilePhoto); ok {
			hash, _ := u.GetAccessHash()
			sender.Photo = &entity.PhotoRef{
				PhotoID:    p.PhotoID,
				AccessHash: hash,
			}
		}
	}

	return sender
}

func senderFromChannel(ch *tg.Channel) *entity.SenderContext {
	sender := &entity.SenderContext{ID: ch.ID}
	if v, ok := ch.GetUsername(); ok {
		sender.Username = &v
	}
	return sender
}
