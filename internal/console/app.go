package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Skotchmaster/inventory/pkg/client"
)

var (
	ErrLoginRequired = errors.New("login required")
	ErrForbidden     = errors.New("forbidden")
)

// Page is anything the console can navigate to.
type Page interface {
	Load(ctx context.Context) error
	Render(w io.Writer)
}

// App is the root of the console front end. Auth is built once at startup
// and shared by every page.
type App struct {
	API  *client.Client
	Auth *client.AuthContext
	In   *bufio.Reader
	Out  io.Writer
	Log  *slog.Logger
}

func NewApp(api *client.Client, auth *client.AuthContext, in io.Reader, out io.Writer, log *slog.Logger) *App {
	return &App{
		API:  api,
		Auth: auth,
		In:   bufio.NewReader(in),
		Out:  out,
		Log:  log,
	}
}

// Require checks the cached user only. The server is the authority.
func (a *App) Require(role string) error {
	u := a.Auth.User()
	if u == nil {
		return ErrLoginRequired
	}
	if role != "" && u.Role != role {
		return ErrForbidden
	}
	return nil
}

func (a *App) Navigate(ctx context.Context, p Page) error {
	if err := p.Load(ctx); err != nil {
		return err
	}
	p.Render(a.Out)
	return nil
}

// Confirm asks a yes/no question. Anything but y/yes/s/sim is a no.
func (a *App) Confirm(question string) (bool, error) {
	fmt.Fprintf(a.Out, "%s [s/N] ", question)
	line, err := a.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "s", "sim", "y", "yes":
		return true, nil
	}
	return false, nil
}

// Prompt reads one line. An empty answer keeps current.
func (a *App) Prompt(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(a.Out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(a.Out, "%s: ", label)
	}
	line, err := a.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return current, nil
	}
	return line, nil
}

func (a *App) readLine() (string, error) {
	line, err := a.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
