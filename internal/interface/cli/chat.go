package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/yanqian/weather-buddy/internal/domain/directory"
	"github.com/yanqian/weather-buddy/internal/domain/weather"
)

const (
	prompt   = "You: "
	farewell = "Buddy: Take care and have a lovely day! 🌞"
	apology  = "Sorry, something went wrong on my side. Could you try asking again?"
)

var greeting = []string{
	"👋 Hello, dear! I’m your Weather Buddy.",
	"You can ask me things like:",
	"  → 'Will it rain in Toronto?'",
	"  → 'Weather San Diego this evening'",
	"  → 'Find Indian restaurants in Fremont'",
	"Type 'exit' anytime to quit.",
	"",
}

// Chat is an interactive loop that sends each line to the weather or the
// directory agent.
type Chat struct {
	weatherSvc   weather.Service
	directorySvc directory.Service
	logger       *slog.Logger
}

// NewChat builds the loop. A nil directory service sends everything to the
// weather agent.
func NewChat(weatherSvc weather.Service, directorySvc directory.Service, logger *slog.Logger) *Chat {
	return &Chat{
		weatherSvc:   weatherSvc,
		directorySvc: directorySvc,
		logger:       logger.With("component", "cli.chat"),
	}
}

// Run reads utterances from in until exit, quit, EOF or cancellation.
func (c *Chat) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	for _, line := range greeting {
		fmt.Fprintln(out, line)
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			fmt.Fprintln(out, farewell)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		switch strings.ToLower(text) {
		case "exit", "quit":
			fmt.Fprintln(out, farewell)
			return nil
		}
		fmt.Fprintf(out, "Buddy: %s\n\n", c.reply(ctx, text))
	}
}

func (c *Chat) reply(ctx context.Context, text string) string {
	if c.directorySvc != nil && directory.LooksLikeDirectory(text) {
		result, err := c.directorySvc.Handle(ctx, text)
		if err != nil {
			c.logger.Warn("directory reply failed", "error", err)
			return apology
		}
		return result.Text()
	}
	resp, err := c.weatherSvc.Handle(ctx, weather.Request{Text: text})
	if err != nil {
		c.logger.Warn("weather reply failed", "error", err)
		return apology
	}
	return resp.Reply
}
