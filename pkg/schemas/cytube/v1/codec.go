package cytube

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grobertson/kryten-cli/pkg/media"
	"github.com/grobertson/kryten-cli/pkg/schemas/common"
)

// Producer is stamped into every envelope's metadata.
const Producer = "kryten-cli"

var (
	ErrEmptyChannel    = errors.New("channel is required")
	ErrUnresolvedMedia = errors.New("media reference not resolved")
)

// Message is a command encoded for the bus: routing key plus envelope.
type Message struct {
	Subject  string
	Envelope common.Envelope
}

// Positions for playlist add on the wire.
const (
	PositionEnd  = "end"
	PositionNext = "next"
)

// Wire shapes. Each carries the target channel alongside the command's own
// fields; variants within a category share a shape and are told apart by
// the envelope type.
type sayData struct {
	Channel ChannelRef `json:"channel"`
	Message string     `json:"message"`
}

type pmData struct {
	Channel  ChannelRef `json:"channel"`
	Username string     `json:"username"`
	Message  string     `json:"message"`
}

type addData struct {
	Channel  ChannelRef `json:"channel"`
	Media    media.Ref  `json:"media"`
	Position string     `json:"position"`
}

type uidData struct {
	Channel ChannelRef `json:"channel"`
	UID     int64      `json:"uid"`
}

type moveData struct {
	Channel ChannelRef `json:"channel"`
	UID     int64      `json:"uid"`
	After   int64      `json:"after"`
}

type setTempData struct {
	Channel ChannelRef `json:"channel"`
	UID     int64      `json:"uid"`
	Temp    bool       `json:"temp"`
}

type seekData struct {
	Channel ChannelRef `json:"channel"`
	Time    float64    `json:"time"`
}

type moderationData struct {
	Channel  ChannelRef `json:"channel"`
	Username string     `json:"username"`
	Reason   *string    `json:"reason,omitempty"`
}

type channelData struct {
	Channel ChannelRef `json:"channel"`
}

// Encode maps a command onto its bus message: routing key from the variant,
// payload = envelope carrying the command's fields plus the target channel.
// Pure apart from envelope metadata (fresh ID and timestamp).
func Encode(cmd Command, target ChannelRef) (Message, error) {
	if target.Channel == "" {
		return Message{}, ErrEmptyChannel
	}
	if target.Domain == "" {
		target.Domain = DefaultDomain
	}

	em, data, err := wireData(cmd, target)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: em.RoutingKey,
		Envelope: common.Envelope{
			Meta: common.NewMeta(em.EventType, Producer),
			Data: data,
		},
	}, nil
}

func wireData(cmd Command, target ChannelRef) (common.EventMeta, any, error) {
	switch c := cmd.(type) {
	case Say:
		return meta(TypeChatSay), sayData{Channel: target, Message: c.Message}, nil
	case PrivateMessage:
		return meta(TypeChatPM), pmData{Channel: target, Username: c.Username, Message: c.Message}, nil
	case PlaylistAdd:
		if c.Media.IsZero() {
			return common.EventMeta{}, nil, ErrUnresolvedMedia
		}
		return meta(TypeAdd), addData{Channel: target, Media: c.Media, Position: PositionEnd}, nil
	case PlaylistAddNext:
		if c.Media.IsZero() {
			return common.EventMeta{}, nil, ErrUnresolvedMedia
		}
		return meta(TypeAdd), addData{Channel: target, Media: c.Media, Position: PositionNext}, nil
	case PlaylistDelete:
		return meta(TypeDelete), uidData{Channel: target, UID: c.UID}, nil
	case PlaylistMove:
		return meta(TypeMove), moveData{Channel: target, UID: c.UID, After: c.After}, nil
	case PlaylistJump:
		return meta(TypeJump), uidData{Channel: target, UID: c.UID}, nil
	case PlaylistClear:
		return meta(TypeClear), channelData{Channel: target}, nil
	case PlaylistShuffle:
		return meta(TypeShuffle), channelData{Channel: target}, nil
	case PlaylistSetTemp:
		return meta(TypeSetTemp), setTempData{Channel: target, UID: c.UID, Temp: c.Temp}, nil
	case Pause:
		return meta(TypePause), channelData{Channel: target}, nil
	case Play:
		return meta(TypePlay), channelData{Channel: target}, nil
	case Seek:
		return meta(TypeSeek), seekData{Channel: target, Time: c.Time}, nil
	case Kick:
		return meta(TypeKick), moderationData{Channel: target, Username: c.Username, Reason: c.Reason}, nil
	case Ban:
		return meta(TypeBan), moderationData{Channel: target, Username: c.Username, Reason: c.Reason}, nil
	case VoteSkip:
		return meta(TypeVoteSkip), channelData{Channel: target}, nil
	default:
		return common.EventMeta{}, nil, fmt.Errorf("unknown command type %T", cmd)
	}
}

// Decode is the inverse of Encode over a marshaled envelope body. Lossless
// for every variant.
func Decode(body []byte) (Command, ChannelRef, error) {
	var env common.GenericEnvelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, ChannelRef{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	unmarshal := func(v any) error {
		if err := json.Unmarshal(env.Data, v); err != nil {
			return fmt.Errorf("unmarshal %s data: %w", env.Meta.Type, err)
		}
		return nil
	}

	switch env.Meta.Type {
	case TypeChatSay:
		var d sayData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return Say{Message: d.Message}, d.Channel, nil
	case TypeChatPM:
		var d pmData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return PrivateMessage{Username: d.Username, Message: d.Message}, d.Channel, nil
	case TypeAdd:
		var d addData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		switch d.Position {
		case PositionEnd:
			return PlaylistAdd{Media: d.Media}, d.Channel, nil
		case PositionNext:
			return PlaylistAddNext{Media: d.Media}, d.Channel, nil
		default:
			return nil, ChannelRef{}, fmt.Errorf("unknown playlist position %q", d.Position)
		}
	case TypeDelete:
		var d uidData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return PlaylistDelete{UID: d.UID}, d.Channel, nil
	case TypeMove:
		var d moveData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return PlaylistMove{UID: d.UID, After: d.After}, d.Channel, nil
	case TypeJump:
		var d uidData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return PlaylistJump{UID: d.UID}, d.Channel, nil
	case TypeClear:
		var d channelData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return PlaylistClear{}, d.Channel, nil
	case TypeShuffle:
		var d channelData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return PlaylistShuffle{}, d.Channel, nil
	case TypeSetTemp:
		var d setTempData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return PlaylistSetTemp{UID: d.UID, Temp: d.Temp}, d.Channel, nil
	case TypePause:
		var d channelData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return Pause{}, d.Channel, nil
	case TypePlay:
		var d channelData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return Play{}, d.Channel, nil
	case TypeSeek:
		var d seekData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return Seek{Time: d.Time}, d.Channel, nil
	case TypeKick:
		var d moderationData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return Kick{Username: d.Username, Reason: d.Reason}, d.Channel, nil
	case TypeBan:
		var d moderationData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return Ban{Username: d.Username, Reason: d.Reason}, d.Channel, nil
	case TypeVoteSkip:
		var d channelData
		if err := unmarshal(&d); err != nil {
			return nil, ChannelRef{}, err
		}
		return VoteSkip{}, d.Channel, nil
	default:
		return nil, ChannelRef{}, fmt.Errorf("unknown message type %q", env.Meta.Type)
	}
}
