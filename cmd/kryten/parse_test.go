package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cytube "github.com/grobertson/kryten-cli/pkg/schemas/cytube/v1"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	reason := "stop spamming"
	tests := []struct {
		name string
		args []string
		want cytube.Command
	}{
		{"say", []string{"say", "Hello world"}, cytube.Say{Message: "Hello world"}},
		{"pm", []string{"pm", "alice", "hi"}, cytube.PrivateMessage{Username: "alice", Message: "hi"}},
		{"playlist add", []string{"playlist", "add", "https://youtu.be/dQw4w9WgXcQ"},
			cytube.PlaylistAdd{URL: "https://youtu.be/dQw4w9WgXcQ"}},
		{"playlist addnext", []string{"playlist", "addnext", "dQw4w9WgXcQ"},
			cytube.PlaylistAddNext{URL: "dQw4w9WgXcQ"}},
		{"playlist del", []string{"playlist", "del", "5"}, cytube.PlaylistDelete{UID: 5}},
		{"playlist move", []string{"playlist", "move", "3", "7"}, cytube.PlaylistMove{UID: 3, After: 7}},
		{"playlist jump", []string{"playlist", "jump", "5"}, cytube.PlaylistJump{UID: 5}},
		{"playlist clear", []string{"playlist", "clear"}, cytube.PlaylistClear{}},
		{"playlist shuffle", []string{"playlist", "shuffle"}, cytube.PlaylistShuffle{}},
		{"playlist settemp true", []string{"playlist", "settemp", "5", "true"},
			cytube.PlaylistSetTemp{UID: 5, Temp: true}},
		{"playlist settemp false", []string{"playlist", "settemp", "5", "false"},
			cytube.PlaylistSetTemp{UID: 5, Temp: false}},
		{"pause", []string{"pause"}, cytube.Pause{}},
		{"play", []string{"play"}, cytube.Play{}},
		{"seek fractional", []string{"seek", "120.5"}, cytube.Seek{Time: 120.5}},
		{"kick without reason", []string{"kick", "bob"}, cytube.Kick{Username: "bob"}},
		{"kick with reason", []string{"kick", "bob", "stop spamming"},
			cytube.Kick{Username: "bob", Reason: &reason}},
		{"ban", []string{"ban", "mallory", "stop spamming"},
			cytube.Ban{Username: "mallory", Reason: &reason}},
		{"voteskip", []string{"voteskip"}, cytube.VoteSkip{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseCommand(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"dance"}},
		{"say without message", []string{"say"}},
		{"say with extra args", []string{"say", "a", "b"}},
		{"pm missing message", []string{"pm", "alice"}},
		{"playlist without subcommand", []string{"playlist"}},
		{"playlist unknown subcommand", []string{"playlist", "reverse"}},
		{"playlist del non-numeric uid", []string{"playlist", "del", "five"}},
		{"playlist move missing after", []string{"playlist", "move", "3"}},
		{"playlist settemp bad flag", []string{"playlist", "settemp", "5", "yes"}},
		{"seek non-numeric", []string{"seek", "soon"}},
		{"kick without username", []string{"kick"}},
		{"pause with args", []string{"pause", "now"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseCommand(tt.args)
			assert.Error(t, err)
		})
	}
}
