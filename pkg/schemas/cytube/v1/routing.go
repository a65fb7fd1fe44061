package cytube

import "github.com/grobertson/kryten-cli/pkg/schemas/common"

// Exchange is the topic exchange all outbound commands are published to.
const Exchange = "cytube.commands"

// Message types double as routing keys, one namespace per command category.
const (
	TypeChatSay  = "cytube.chat.say.v1"
	TypeChatPM   = "cytube.chat.pm.v1"
	TypeAdd      = "cytube.playlist.add.v1"
	TypeDelete   = "cytube.playlist.delete.v1"
	TypeMove     = "cytube.playlist.move.v1"
	TypeJump     = "cytube.playlist.jump.v1"
	TypeClear    = "cytube.playlist.clear.v1"
	TypeShuffle  = "cytube.playlist.shuffle.v1"
	TypeSetTemp  = "cytube.playlist.settemp.v1"
	TypePause    = "cytube.playback.pause.v1"
	TypePlay     = "cytube.playback.play.v1"
	TypeSeek     = "cytube.playback.seek.v1"
	TypeKick     = "cytube.moderation.kick.v1"
	TypeBan      = "cytube.moderation.ban.v1"
	TypeVoteSkip = "cytube.moderation.voteskip.v1"
)

func meta(msgType string) common.EventMeta {
	return common.EventMeta{EventType: msgType, Exchange: Exchange, RoutingKey: msgType}
}
