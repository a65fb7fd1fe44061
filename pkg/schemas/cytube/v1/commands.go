// Package cytube defines the outbound command contracts published to the
// CyTube bridge: a closed set of command variants, the channel they target,
// and the codec that maps them onto bus messages.
package cytube

import "github.com/grobertson/kryten-cli/pkg/media"

// DefaultDomain is assumed when a channel reference carries no domain.
const DefaultDomain = "cytu.be"

// ChannelRef identifies the CyTube room a command targets. Channel must be
// non-empty; an empty Domain means DefaultDomain.
type ChannelRef struct {
	Channel string `json:"channel"`
	Domain  string `json:"domain"`
}

// Command is the closed set of outbound commands. Every variant is a struct
// in this package; the codec switches over them exhaustively, so adding a
// variant without teaching the codec fails at encode time, loudly.
type Command interface{ command() }

type Say struct {
	Message string `json:"message"`
}

type PrivateMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// PlaylistAdd appends media to the end of the playlist. URL is the raw user
// input; the dispatcher resolves it into Media before encoding. Only the
// resolved reference goes on the wire.
type PlaylistAdd struct {
	URL   string    `json:"-"`
	Media media.Ref `json:"media"`
}

// PlaylistAddNext queues media to play after the current item.
type PlaylistAddNext struct {
	URL   string    `json:"-"`
	Media media.Ref `json:"media"`
}

type PlaylistDelete struct {
	UID int64 `json:"uid"`
}

type PlaylistMove struct {
	UID   int64 `json:"uid"`
	After int64 `json:"after"`
}

type PlaylistJump struct {
	UID int64 `json:"uid"`
}

type PlaylistClear struct{}

type PlaylistShuffle struct{}

type PlaylistSetTemp struct {
	UID  int64 `json:"uid"`
	Temp bool  `json:"temp"`
}

type Pause struct{}

type Play struct{}

type Seek struct {
	// Time is the target position in seconds. Fractional seconds are
	// preserved on the wire.
	Time float64 `json:"time"`
}

type Kick struct {
	Username string  `json:"username"`
	Reason   *string `json:"reason,omitempty"`
}

type Ban struct {
	Username string  `json:"username"`
	Reason   *string `json:"reason,omitempty"`
}

type VoteSkip struct{}

func (Say) command()             {}
func (PrivateMessage) command()  {}
func (PlaylistAdd) command()     {}
func (PlaylistAddNext) command() {}
func (PlaylistDelete) command()  {}
func (PlaylistMove) command()    {}
func (PlaylistJump) command()    {}
func (PlaylistClear) command()   {}
func (PlaylistShuffle) command() {}
func (PlaylistSetTemp) command() {}
func (Pause) command()           {}
func (Play) command()            {}
func (Seek) command()            {}
func (Kick) command()            {}
func (Ban) command()             {}
func (VoteSkip) command()        {}
