// Package dispatch orchestrates a single command: resolve embedded media,
// encode, publish, and report the outcome.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/grobertson/kryten-cli/pkg/media"
	cytube "github.com/grobertson/kryten-cli/pkg/schemas/cytube/v1"
	"github.com/grobertson/kryten-cli/pkg/schemas/common"
)

// Publisher is the bus seam the dispatcher publishes through. Satisfied by
// *pubsub.Session.
type Publisher interface {
	Publish(ctx context.Context, key string, env common.Envelope) error
}

// Dispatcher turns commands into published bus messages. It holds no
// per-command state: every Execute call is independent, nothing is queued,
// batched, or retried.
type Dispatcher struct {
	pub    Publisher
	logger *slog.Logger
}

func New(pub Publisher, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{pub: pub, logger: logger}
}

// Execute publishes one command to the target channel and returns a
// human-readable confirmation. Publishing is atomic: either the broker
// accepted the message or an error comes back, with no partial effects.
func (d *Dispatcher) Execute(ctx context.Context, cmd cytube.Command, target cytube.ChannelRef) (string, error) {
	cmd = resolveMedia(cmd)

	msg, err := cytube.Encode(cmd, target)
	if err != nil {
		return "", fmt.Errorf("encode command: %w", err)
	}

	if err := d.pub.Publish(ctx, msg.Subject, msg.Envelope); err != nil {
		return "", fmt.Errorf("dispatch %s: %w", msg.Subject, err)
	}

	d.logger.Debug("command dispatched",
		slog.String("subject", msg.Subject),
		slog.String("channel", target.Channel),
	)
	return summarize(cmd, target), nil
}

// resolveMedia fills in the media reference for playlist-add variants that
// still carry a raw URL. Locate is total, so resolution cannot fail.
func resolveMedia(cmd cytube.Command) cytube.Command {
	switch c := cmd.(type) {
	case cytube.PlaylistAdd:
		if c.Media.IsZero() {
			c.Media = media.Locate(c.URL)
		}
		return c
	case cytube.PlaylistAddNext:
		if c.Media.IsZero() {
			c.Media = media.Locate(c.URL)
		}
		return c
	}
	return cmd
}

// summarize echoes back what was sent, in the wording users have relied on
// since the original tool.
func summarize(cmd cytube.Command, target cytube.ChannelRef) string {
	switch c := cmd.(type) {
	case cytube.Say:
		return fmt.Sprintf("Sent chat message to %s", target.Channel)
	case cytube.PrivateMessage:
		return fmt.Sprintf("Sent PM to %s in %s", c.Username, target.Channel)
	case cytube.PlaylistAdd:
		return fmt.Sprintf("Added %s to end of playlist in %s", c.Media, target.Channel)
	case cytube.PlaylistAddNext:
		return fmt.Sprintf("Added %s to play next in %s", c.Media, target.Channel)
	case cytube.PlaylistDelete:
		return fmt.Sprintf("Deleted media %d from %s", c.UID, target.Channel)
	case cytube.PlaylistMove:
		return fmt.Sprintf("Moved media %d after %d in %s", c.UID, c.After, target.Channel)
	case cytube.PlaylistJump:
		return fmt.Sprintf("Jumped to media %d in %s", c.UID, target.Channel)
	case cytube.PlaylistClear:
		return fmt.Sprintf("Cleared playlist in %s", target.Channel)
	case cytube.PlaylistShuffle:
		return fmt.Sprintf("Shuffled playlist in %s", target.Channel)
	case cytube.PlaylistSetTemp:
		return fmt.Sprintf("Set temp=%t for media %d in %s", c.Temp, c.UID, target.Channel)
	case cytube.Pause:
		return fmt.Sprintf("Paused playback in %s", target.Channel)
	case cytube.Play:
		return fmt.Sprintf("Resumed playback in %s", target.Channel)
	case cytube.Seek:
		return fmt.Sprintf("Seeked to %gs in %s", c.Time, target.Channel)
	case cytube.Kick:
		return fmt.Sprintf("Kicked %s from %s", c.Username, target.Channel)
	case cytube.Ban:
		return fmt.Sprintf("Banned %s from %s", c.Username, target.Channel)
	case cytube.VoteSkip:
		return fmt.Sprintf("Voted to skip in %s", target.Channel)
	default:
		return fmt.Sprintf("Dispatched command to %s", target.Channel)
	}
}
