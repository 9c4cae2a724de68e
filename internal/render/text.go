package render

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"'\)\]]+`)

var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

const maxInlineImages = 3

// Linkify extracts every HTTP(S) URL from a text body.
func Linkify(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// IsImageURL reports whether a URL's path looks like an image file.
func IsImageURL(u string) bool {
	path := u
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.ToLower(path)
	for _, ext := range imageExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// fillText populates a text block: all links, up to three inline
// image URLs, and the first non-image URL as the preview candidate.
func fillText(b *Block, text string) {
	b.Text = text
	b.Links = Linkify(text)
	for _, u := range b.Links {
		if IsImageURL(u) {
			if len(b.InlineImages) < maxInlineImages {
				b.InlineImages = append(b.InlineImages, u)
			}
			continue
		}
		if b.PreviewURL == "" {
			b.PreviewURL = u
		}
	}
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline compresses a waveform envelope into width bar runes.
// Values are expected in [0,1]; out-of-range values are clamped.
func Sparkline(waveform []float64, width int) string {
	if len(waveform) == 0 || width <= 0 {
		return ""
	}
	if width > len(waveform) {
		width = len(waveform)
	}
	out := make([]rune, width)
	for i := 0; i < width; i++ {
		lo := i * len(waveform) / width
		hi := (i + 1) * len(waveform) / width
		if hi <= lo {
			hi = lo + 1
		}
		var sum float64
		for _, v := range waveform[lo:hi] {
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			sum += v
		}
		avg := sum / float64(hi-lo)
		idx := int(avg * float64(len(sparkRunes)-1))
		out[i] = sparkRunes[idx]
	}
	return string(out)
}
