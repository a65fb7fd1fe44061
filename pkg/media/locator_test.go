package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grobertson/kryten-cli/pkg/media"
)

func TestLocate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want media.Ref
	}{
		{
			name: "youtube watch URL",
			raw:  "https://youtube.com/watch?v=dQw4w9WgXcQ",
			want: media.Ref{Provider: media.YouTube, ID: "dQw4w9WgXcQ"},
		},
		{
			name: "youtube watch URL with extra query params",
			raw:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want: media.Ref{Provider: media.YouTube, ID: "dQw4w9WgXcQ"},
		},
		{
			name: "youtu.be short URL",
			raw:  "https://youtu.be/dQw4w9WgXcQ",
			want: media.Ref{Provider: media.YouTube, ID: "dQw4w9WgXcQ"},
		},
		{
			name: "bare 11-char ID",
			raw:  "dQw4w9WgXcQ",
			want: media.Ref{Provider: media.YouTube, ID: "dQw4w9WgXcQ"},
		},
		{
			name: "bare ID with hyphen and underscore",
			raw:  "a-b_c1D2e3F",
			want: media.Ref{Provider: media.YouTube, ID: "a-b_c1D2e3F"},
		},
		{
			name: "vimeo URL",
			raw:  "https://vimeo.com/123456789",
			want: media.Ref{Provider: media.Vimeo, ID: "123456789"},
		},
		{
			name: "vimeo URL with trailing path noise",
			raw:  "https://vimeo.com/123456789?autoplay=1",
			want: media.Ref{Provider: media.Vimeo, ID: "123456789"},
		},
		{
			name: "dailymotion URL",
			raw:  "https://www.dailymotion.com/video/x7tgad0",
			want: media.Ref{Provider: media.Dailymotion, ID: "x7tgad0"},
		},
		{
			name: "json manifest",
			raw:  "https://example.com/media/show.json",
			want: media.Ref{Provider: media.Manifest, ID: "https://example.com/media/show.json"},
		},
		{
			name: "json manifest with query string",
			raw:  "https://example.com/media/show.JSON?sig=abc",
			want: media.Ref{Provider: media.Manifest, ID: "https://example.com/media/show.JSON?sig=abc"},
		},
		{
			name: "custom URL fallback",
			raw:  "https://example.com/video.mp4",
			want: media.Ref{Provider: media.Custom, ID: "https://example.com/video.mp4"},
		},
		{
			name: "empty string is custom",
			raw:  "",
			want: media.Ref{Provider: media.Custom, ID: ""},
		},
		{
			name: "ten chars is not a youtube ID",
			raw:  "abcdefghij",
			want: media.Ref{Provider: media.Custom, ID: "abcdefghij"},
		},
		{
			name: "twelve chars is not a youtube ID",
			raw:  "abcdefghijkl",
			want: media.Ref{Provider: media.Custom, ID: "abcdefghijkl"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, media.Locate(tt.raw))
		})
	}
}

func TestRefString(t *testing.T) {
	t.Parallel()

	ref := media.Ref{Provider: media.YouTube, ID: "dQw4w9WgXcQ"}
	assert.Equal(t, "yt:dQw4w9WgXcQ", ref.String())
	assert.False(t, ref.IsZero())
	assert.True(t, media.Ref{}.IsZero())
}
