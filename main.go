package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"TgBridge/internal/config"
	"TgBridge/internal/http-server/api"
	"TgBridge/internal/lib/logger"
	"TgBridge/internal/lib/sl"
	"TgBridge/internal/service/forwarder"
	"TgBridge/internal/service/normalizer"
	"TgBridge/userbot"
)

func main() {

	configPath := flag.String("conf", "", "path to optional config file, environment is used otherwise")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting tgbridge", slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	bot, err := userbot.NewUserBot(conf, lg)
	if err != nil {
		lg.Error("failed to initialize userbot", sl.Err(err))
		os.Exit(1)
	}

	fwd := forwarder.New(conf, lg)
	bot.SetForwarder(fwd)
	if fwd.Enabled() {
		lg.With(
			sl.Secret("url", conf.Webhook.Url),
		).Info("webhook forwarding enabled")
	} else {
		lg.Info("webhook forwarding disabled")
	}

	norm := normalizer.New(lg, bot.PhotoFetcher(), normalizer.Options{
		CapturePhotos: conf.Photos.Enabled,
	})
	bot.SetNormalizer(norm)
	if conf.Photos.Enabled {
		lg.With(
			slog.String("dir", conf.Photos.Dir),
		).Info("profile photo capture enabled")
	}

	// Telegram connection runs on its own goroutine; a login rejection
	// is fatal for the whole process.
	go func() {
		if err := bot.Start(context.Background()); err != nil {
			lg.Error("userbot stopped", sl.Err(err))
			os.Exit(1)
		}
	}()

	// *** blocking start with http server ***
	err = api.New(conf, lg, bot)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
