package userbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"

	"TgBridge/internal/config"
)

// newSessionStorage selects the session provider: SESSION_STRING is a
// portable Telethon-format string session decoded into memory,
// SESSION_NAME a local file at <name>.session.
func newSessionStorage(conf *config.Config) (telegram.SessionStorage, error) {
	if conf.Telegram.SessionString != "" {
		data, err := session.TelethonSession(conf.Telegram.SessionString)
		if err != nil {
			return nil, fmt.Errorf("decode session string: %w", err)
		}

		storage := &session.StorageMemory{}
		loader := session.Loader{Storage: storage}
		if err := loader.Save(context.Background(), data); err != nil {
			return nil, fmt.Errorf("seed session storage: %w", err)
		}
		return storage, nil
	}

	return &session.FileStorage{Path: conf.SessionPath()}, nil
}
