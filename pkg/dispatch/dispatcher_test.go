package dispatch_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grobertson/kryten-cli/pkg/dispatch"
	"github.com/grobertson/kryten-cli/pkg/media"
	cytube "github.com/grobertson/kryten-cli/pkg/schemas/cytube/v1"
	"github.com/grobertson/kryten-cli/pkg/schemas/common"
)

type fakePublisher struct {
	err    error
	calls  int
	key    string
	bodies [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, key string, env common.Envelope) error {
	f.calls++
	f.key = key
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}
	f.bodies = append(f.bodies, body)
	return f.err
}

var target = cytube.ChannelRef{Channel: "lounge", Domain: "cytu.be"}

func TestExecuteResolvesPlaylistAdd(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	d := dispatch.New(pub, nil)

	summary, err := d.Execute(context.Background(),
		cytube.PlaylistAdd{URL: "https://youtube.com/watch?v=dQw4w9WgXcQ"}, target)
	require.NoError(t, err)

	assert.Equal(t, cytube.TypeAdd, pub.key)
	assert.Equal(t, "Added yt:dQw4w9WgXcQ to end of playlist in lounge", summary)

	require.Len(t, pub.bodies, 1)
	cmd, decodedTarget, err := cytube.Decode(pub.bodies[0])
	require.NoError(t, err)
	assert.Equal(t, cytube.PlaylistAdd{Media: media.Ref{Provider: media.YouTube, ID: "dQw4w9WgXcQ"}}, cmd)
	assert.Equal(t, target, decodedTarget)
}

func TestExecuteAddNextKeepsResolvedMedia(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	d := dispatch.New(pub, nil)

	ref := media.Ref{Provider: media.Vimeo, ID: "123456789"}
	summary, err := d.Execute(context.Background(), cytube.PlaylistAddNext{Media: ref}, target)
	require.NoError(t, err)
	assert.Equal(t, "Added vm:123456789 to play next in lounge", summary)
}

func TestExecuteSummaries(t *testing.T) {
	t.Parallel()

	reason := "spamming"
	tests := []struct {
		cmd  cytube.Command
		want string
	}{
		{cytube.Say{Message: "hi"}, "Sent chat message to lounge"},
		{cytube.PrivateMessage{Username: "alice", Message: "hi"}, "Sent PM to alice in lounge"},
		{cytube.PlaylistDelete{UID: 5}, "Deleted media 5 from lounge"},
		{cytube.PlaylistMove{UID: 3, After: 7}, "Moved media 3 after 7 in lounge"},
		{cytube.PlaylistJump{UID: 5}, "Jumped to media 5 in lounge"},
		{cytube.PlaylistClear{}, "Cleared playlist in lounge"},
		{cytube.PlaylistShuffle{}, "Shuffled playlist in lounge"},
		{cytube.PlaylistSetTemp{UID: 5, Temp: true}, "Set temp=true for media 5 in lounge"},
		{cytube.Pause{}, "Paused playback in lounge"},
		{cytube.Play{}, "Resumed playback in lounge"},
		{cytube.Seek{Time: 120.5}, "Seeked to 120.5s in lounge"},
		{cytube.Kick{Username: "bob", Reason: &reason}, "Kicked bob from lounge"},
		{cytube.Ban{Username: "mallory"}, "Banned mallory from lounge"},
		{cytube.VoteSkip{}, "Voted to skip in lounge"},
	}

	for _, tt := range tests {
		pub := &fakePublisher{}
		d := dispatch.New(pub, nil)
		summary, err := d.Execute(context.Background(), tt.cmd, target)
		require.NoError(t, err)
		assert.Equal(t, tt.want, summary)
		assert.Equal(t, 1, pub.calls)
	}
}

func TestExecutePublishFailure(t *testing.T) {
	t.Parallel()

	pubErr := errors.New("broker said no")
	pub := &fakePublisher{err: pubErr}
	d := dispatch.New(pub, nil)

	summary, err := d.Execute(context.Background(), cytube.Say{Message: "hi"}, target)
	require.ErrorIs(t, err, pubErr)
	assert.Empty(t, summary)
}

func TestExecuteEncodeFailureSkipsPublish(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	d := dispatch.New(pub, nil)

	_, err := d.Execute(context.Background(), cytube.Say{Message: "hi"}, cytube.ChannelRef{})
	require.ErrorIs(t, err, cytube.ErrEmptyChannel)
	assert.Zero(t, pub.calls, "nothing may be published when encoding fails")
}
