package main

import (
	"fmt"
	"io"
	"strconv"

	cytube "github.com/grobertson/kryten-cli/pkg/schemas/cytube/v1"
)

// parseCommand turns positional CLI args into a validated command value.
// Every numeric field is parsed here so the rest of the pipeline only sees
// typed commands.
func parseCommand(args []string) (cytube.Command, error) {
	name, rest := args[0], args[1:]

	switch name {
	case "say":
		if err := exactly(name, rest, 1); err != nil {
			return nil, err
		}
		return cytube.Say{Message: rest[0]}, nil

	case "pm":
		if err := exactly(name, rest, 2); err != nil {
			return nil, err
		}
		return cytube.PrivateMessage{Username: rest[0], Message: rest[1]}, nil

	case "playlist":
		if len(rest) == 0 {
			return nil, fmt.Errorf("playlist: subcommand required (add, addnext, del, move, jump, clear, shuffle, settemp)")
		}
		return parsePlaylist(rest[0], rest[1:])

	case "pause":
		if err := exactly(name, rest, 0); err != nil {
			return nil, err
		}
		return cytube.Pause{}, nil

	case "play":
		if err := exactly(name, rest, 0); err != nil {
			return nil, err
		}
		return cytube.Play{}, nil

	case "seek":
		if err := exactly(name, rest, 1); err != nil {
			return nil, err
		}
		seconds, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return nil, fmt.Errorf("seek: invalid time %q", rest[0])
		}
		return cytube.Seek{Time: seconds}, nil

	case "kick":
		username, reason, err := moderationArgs(name, rest)
		if err != nil {
			return nil, err
		}
		return cytube.Kick{Username: username, Reason: reason}, nil

	case "ban":
		username, reason, err := moderationArgs(name, rest)
		if err != nil {
			return nil, err
		}
		return cytube.Ban{Username: username, Reason: reason}, nil

	case "voteskip":
		if err := exactly(name, rest, 0); err != nil {
			return nil, err
		}
		return cytube.VoteSkip{}, nil

	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
}

func parsePlaylist(sub string, rest []string) (cytube.Command, error) {
	name := "playlist " + sub

	switch sub {
	case "add":
		if err := exactly(name, rest, 1); err != nil {
			return nil, err
		}
		return cytube.PlaylistAdd{URL: rest[0]}, nil

	case "addnext":
		if err := exactly(name, rest, 1); err != nil {
			return nil, err
		}
		return cytube.PlaylistAddNext{URL: rest[0]}, nil

	case "del":
		if err := exactly(name, rest, 1); err != nil {
			return nil, err
		}
		uid, err := parseUID(name, rest[0])
		if err != nil {
			return nil, err
		}
		return cytube.PlaylistDelete{UID: uid}, nil

	case "move":
		if err := exactly(name, rest, 2); err != nil {
			return nil, err
		}
		uid, err := parseUID(name, rest[0])
		if err != nil {
			return nil, err
		}
		after, err := parseUID(name, rest[1])
		if err != nil {
			return nil, err
		}
		return cytube.PlaylistMove{UID: uid, After: after}, nil

	case "jump":
		if err := exactly(name, rest, 1); err != nil {
			return nil, err
		}
		uid, err := parseUID(name, rest[0])
		if err != nil {
			return nil, err
		}
		return cytube.PlaylistJump{UID: uid}, nil

	case "clear":
		if err := exactly(name, rest, 0); err != nil {
			return nil, err
		}
		return cytube.PlaylistClear{}, nil

	case "shuffle":
		if err := exactly(name, rest, 0); err != nil {
			return nil, err
		}
		return cytube.PlaylistShuffle{}, nil

	case "settemp":
		if err := exactly(name, rest, 2); err != nil {
			return nil, err
		}
		uid, err := parseUID(name, rest[0])
		if err != nil {
			return nil, err
		}
		switch rest[1] {
		case "true":
			return cytube.PlaylistSetTemp{UID: uid, Temp: true}, nil
		case "false":
			return cytube.PlaylistSetTemp{UID: uid, Temp: false}, nil
		default:
			return nil, fmt.Errorf("%s: temp must be \"true\" or \"false\", got %q", name, rest[1])
		}

	default:
		return nil, fmt.Errorf("unknown playlist subcommand %q", sub)
	}
}

// moderationArgs parses `<username> [reason]`.
func moderationArgs(name string, rest []string) (string, *string, error) {
	switch len(rest) {
	case 1:
		return rest[0], nil, nil
	case 2:
		return rest[0], &rest[1], nil
	default:
		return "", nil, fmt.Errorf("%s: expected <username> [reason]", name)
	}
}

func parseUID(name, raw string) (int64, error) {
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid uid %q", name, raw)
	}
	return uid, nil
}

func exactly(name string, args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `kryten - send commands to a CyTube channel via the message bus

Usage:
  kryten [flags] <command> [args]

Commands:
  say <message>                   send a chat message
  pm <username> <message>         send a private message
  playlist add <url>              add media to end of playlist
  playlist addnext <url>          add media to play next
  playlist del <uid>              delete media from playlist
  playlist move <uid> <after>     move media after another entry
  playlist jump <uid>             jump to media
  playlist clear                  clear the playlist
  playlist shuffle                shuffle the playlist
  playlist settemp <uid> <true|false>  set media temporary status
  pause                           pause playback
  play                            resume playback
  seek <seconds>                  seek to timestamp (fractional ok)
  kick <username> [reason]        kick a user
  ban <username> [reason]         ban a user
  voteskip                        vote to skip the current media

Flags:
      --config string    path to configuration file (default "config.json")
      --channel string   override channel from config
  -v, --verbose          enable debug logging
`)
}
