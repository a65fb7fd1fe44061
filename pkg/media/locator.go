// Package media classifies free-form media URLs and IDs into typed
// (provider, identifier) references understood by CyTube.
package media

import (
	"regexp"
	"strings"
)

// Provider is the CyTube media provider code carried on the wire.
type Provider string

const (
	YouTube     Provider = "yt"
	Vimeo       Provider = "vm"
	Dailymotion Provider = "dm"
	Manifest    Provider = "cm" // custom media JSON manifest
	Custom      Provider = "cu" // direct video files, custom embeds
)

// Ref is a normalized reference to a playable media item.
type Ref struct {
	Provider Provider `json:"provider"`
	ID       string   `json:"id"`
}

func (r Ref) IsZero() bool { return r.Provider == "" && r.ID == "" }

// String renders the reference as "provider:id", the form shown to users.
func (r Ref) String() string { return string(r.Provider) + ":" + r.ID }

var (
	youtubeURL     = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	youtubeID      = regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`)
	vimeoURL       = regexp.MustCompile(`vimeo\.com/(\d+)`)
	dailymotionURL = regexp.MustCompile(`dailymotion\.com/video/([a-zA-Z0-9]+)`)
)

// Locate parses a raw URL or bare ID into a Ref. It is total: input that
// matches no known provider comes back unchanged as a Custom reference.
//
// Match order is a compatibility contract. In particular a bare 11-character
// token is always classified as YouTube, even when it is an opaque ID for
// something else; consumers depend on this precedence.
func Locate(raw string) Ref {
	if m := youtubeURL.FindStringSubmatch(raw); m != nil {
		return Ref{Provider: YouTube, ID: m[1]}
	}
	if m := youtubeID.FindStringSubmatch(raw); m != nil {
		return Ref{Provider: YouTube, ID: m[1]}
	}
	if m := vimeoURL.FindStringSubmatch(raw); m != nil {
		return Ref{Provider: Vimeo, ID: m[1]}
	}
	if m := dailymotionURL.FindStringSubmatch(raw); m != nil {
		return Ref{Provider: Dailymotion, ID: m[1]}
	}
	lower := strings.ToLower(raw)
	if strings.HasSuffix(lower, ".json") || strings.Contains(lower, ".json?") {
		return Ref{Provider: Manifest, ID: raw}
	}
	return Ref{Provider: Custom, ID: raw}
}
