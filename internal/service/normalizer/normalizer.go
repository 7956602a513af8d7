package normalizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"TgBridge/entity"
	"TgBridge/internal/lib/sl"
)

// PhotoFetcher materializes a sender's profile photo to a local file and
// returns its path. Implementations must be safe for concurrent use.
type PhotoFetcher interface {
	Fetch(ctx context.Context, sender *entity.SenderContext) (string, error)
}

type Options struct {
	CapturePhotos bool
}

// Normalizer turns inbound events into flat webhook records. Every
// optional field degrades to nil on its own; only a missing chat or
// sender context fails the whole record.
type Normalizer struct {
	log    *slog.Logger
	photos PhotoFetcher
	opts   Options
}

func New(log *slog.Logger, photos PhotoFetcher, opts Options) *Normalizer {
	return &Normalizer{
		log:    log.With(sl.Module("normalizer")),
		photos: photos,
		opts:   opts,
	}
}

// Normalize builds the webhook record for one event. The returned error
// is non-nil only when the chat or sender context could not be resolved
// at all (deleted account, restricted chat); the caller drops the event.
func (n *Normalizer) Normalize(ctx context.Context, ev entity.InboundEvent) (*entity.Record, error) {
	if ev.Chat == nil {
		return nil, fmt.Errorf("chat context unresolved for message %d", ev.MessageID)
	}
	if ev.Sender == nil {
		return nil, fmt.Errorf("sender context unresolved for message %d", ev.MessageID)
	}

	rec := &entity.Record{
		MessageID: ev.MessageID,
		Text:      textOrNil(ev.Text),
		Date:      ev.Date.UTC().Format(time.RFC3339),
		Outgoing:  ev.Outgoing,
		Chat:      n.chatRecord(ev.Chat),
		Sender:    n.senderRecord(ctx, ev.Sender),
	}
	return rec, nil
}

func (n *Normalizer) chatRecord(chat *entity.ChatContext) entity.ChatRecord {
	id := chat.ID
	return entity.ChatRecord{
		ID:        &id,
		Title:     chat.Title,
		IsUser:    chat.User,
		IsGroup:   chat.Megagroup,
		IsChannel: chat.Broadcast,
	}
}

func (n *Normalizer) senderRecord(ctx context.Context, sender *entity.SenderContext) entity.SenderRecord {
	id := sender.ID
	rec := entity.SenderRecord{
		ID:        &id,
		Username:  sender.Username,
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
		Phone:     sender.Phone,
		IsSelf:    sender.Self,
	}

	if n.opts.CapturePhotos && n.photos != nil && sender.Photo != nil {
		path, err := n.photos.Fetch(ctx, sender)
		if err != nil {
			// never fatal for the record
			n.log.With(
				slog.Int64("sender_id", sender.ID),
				sl.Err(err),
			).Debug("profile photo fetch failed")
		} else if path != "" {
			rec.Photo = &path
		}
	}

	return rec
}

// textOrNil keeps the raw text nullable: the webhook receives null for
// an empty body, the placeholder exists only in console logs.
func textOrNil(text string) *string {
	if text == "" {
		return nil
	}
	return &text
}
