package userbot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"

	"TgBridge/entity"
	"TgBridge/internal/lib/sl"
)

// photoFetcher downloads sender profile photos to a deterministic path
// keyed by sender id. Failures are reported to the caller, which nils
// the photo field and moves on.
type photoFetcher struct {
	api *tg.Client
	dir string
	log *slog.Logger
}

func newPhotoFetcher(api *tg.Client, dir string, log *slog.Logger) *photoFetcher {
	return &photoFetcher{
		api: api,
		dir: dir,
		log: log.With(sl.Module("photos")),
	}
}

func (p *photoFetcher) Fetch(ctx context.Context, sender *entity.SenderContext) (string, error) {
	if sender == nil || sender.Photo == nil {
		return "", nil
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("photo dir: %w", err)
	}

	path := filepath.Join(p.dir, fmt.Sprintf("%d.jpg", sender.ID))
	loc := &tg.InputPeerPhotoFileLocation{
		Peer: &tg.InputPeerUser{
			UserID:     sender.ID,
			AccessHash: sender.Photo.AccessHash,
		},
		PhotoID: sender.Photo.PhotoID,
		Big:     true,
	}

	if _, err := downloader.NewDownloader().Download(p.api, loc).ToPath(ctx, path); err != nil {
		return "", fmt.Errorf("download photo %d: %w", sender.ID, err)
	}

	p.log.With(slog.Int64("sender_id", sender.ID)).Debug("profile photo saved")
	return path, nil
}
