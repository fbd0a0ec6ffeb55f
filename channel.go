package texmat

import (
	"fmt"
	"strings"
)

// Channel is a semantic texture role in a material.
type Channel int

const (
	// Unknown is a file that matched no channel keyword.
	Unknown Channel = iota
	// Albedo is the base color channel.
	Albedo
	// Roughness is the roughness channel; glossiness files map here inverted.
	Roughness
	// Reflection is the reflectivity/specular channel.
	Reflection
	// Metalness is the metalness channel.
	Metalness
	// Bump is the bump channel (normal, height or plain bump).
	Bump
	// Opacity is the opacity/alpha/mask channel.
	Opacity
	// Emissive is the self-illumination channel.
	Emissive
)

// Channels lists every assignable channel in canonical apply order.
var Channels = []Channel{Albedo, Roughness, Reflection, Metalness, Bump, Opacity, Emissive}

var channelNames = [...]string{
	Unknown:    "unknown",
	Albedo:     "albedo",
	Roughness:  "roughness",
	Reflection: "reflection",
	Metalness:  "metalness",
	Bump:       "bump",
	Opacity:    "opacity",
	Emissive:   "emissive",
}

// String returns the lower-case channel name.
func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return fmt.Sprintf("channel(%d)", int(c))
	}

	return channelNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Channel) UnmarshalText(b []byte) error {
	ch, ok := ParseChannel(string(b))
	if !ok {
		return fmt.Errorf("unknown channel %q", string(b))
	}

	*c = ch
	return nil
}

// ParseChannel parses a channel name case-insensitively.
func ParseChannel(s string) (Channel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range channelNames {
		if n == s {
			return Channel(i), true
		}
	}

	return Unknown, false
}

// BumpDetail tells which kind of relief data a bump file holds.
type BumpDetail int

const (
	// DetailNone is used by every non-bump classification.
	DetailNone BumpDetail = iota
	// DetailNormal is a tangent-space normal map.
	DetailNormal
	// DetailHeight is a height, displacement or parallax map.
	DetailHeight
	// DetailBump is a plain bump map.
	DetailBump
)

var detailNames = [...]string{
	DetailNone:   "",
	DetailNormal: "normal",
	DetailHeight: "height",
	DetailBump:   "bump",
}

// String returns the lower-case detail name, empty for DetailNone.
func (d BumpDetail) String() string {
	if d < 0 || int(d) >= len(detailNames) {
		return fmt.Sprintf("detail(%d)", int(d))
	}

	return detailNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d BumpDetail) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *BumpDetail) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range detailNames {
		if n == s {
			*d = BumpDetail(i)
			return nil
		}
	}

	return fmt.Errorf("unknown bump detail %q", string(b))
}

// rank orders bump details by preference, higher wins.
func (d BumpDetail) rank() int {
	switch d {
	case DetailNormal:
		return 3
	case DetailHeight:
		return 2
	case DetailBump:
		return 1
	default:
		return 0
	}
}
