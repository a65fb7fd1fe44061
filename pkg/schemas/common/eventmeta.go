package common

type EventMeta struct {
	EventType  string // e.g. "cytube.playlist.add.v1"
	Exchange   string // e.g. "cytube.commands"
	RoutingKey string // e.g. "cytube.playlist.add.v1"
}
