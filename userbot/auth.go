package userbot

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"

	"TgBridge/internal/lib/sl"
)

// login runs the interactive terminal flow when the persisted session
// is not authorized, then logs who we are. Login happens once; every
// later start reuses the session.
func (b *Bot) login(ctx context.Context) error {
	flow := auth.NewFlow(terminalAuth{in: bufio.NewReader(os.Stdin)}, auth.SendCodeOptions{})
	if err := b.client.Auth().IfNecessary(ctx, flow); err != nil {
		return err
	}

	self, err := b.client.Self(ctx)
	if err != nil {
		return fmt.Errorf("fetch self: %w", err)
	}

	username, _ := self.GetUsername()
	b.log.Info("logged in",
		slog.String("first_name", self.FirstName),
		slog.String("username", username),
		sl.Secret("phone", self.Phone),
	)
	return nil
}

// terminalAuth prompts on the terminal for the one-time login. It only
// runs when no valid session exists.
type terminalAuth struct {
	in *bufio.Reader
}

func (a terminalAuth) Phone(_ context.Context) (string, error) {
	fmt.Print("Enter phone number (e.g. +15551234567): ")
	return a.readLine()
}

func (a terminalAuth) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	fmt.Print("Enter the code you received: ")
	return a.readLine()
}

func (a terminalAuth) Password(_ context.Context) (string, error) {
	fmt.Print("Enter 2FA password: ")
	return a.readLine()
}

func (a terminalAuth) AcceptTermsOfService(_ context.Context, _ tg.HelpTermsOfService) error {
	return nil
}

func (a terminalAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, fmt.Errorf("sign up through the bridge is not supported")
}

func (a terminalAuth) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
