package panel

import (
	"fmt"
	"strings"
)

// Directions is a set of directional inputs. A single edge may carry more
// than one input when several of them lead to the same panel.
type Directions uint16

// Single inputs and their compositions. Composed inputs move by the sum of
// the individual offsets of the current panel.
const (
	Up    Directions = 0x0001
	Left  Directions = 0x0002
	Right Directions = 0x0004
	Down  Directions = 0x0008

	UpLeft    Directions = 0x0010
	UpRight   Directions = 0x0020
	DownLeft  Directions = 0x0040
	DownRight Directions = 0x0080

	UpDown        Directions = 0x0100
	LeftRight     Directions = 0x0200
	UpLeftRight   Directions = 0x0400
	UpLeftDown    Directions = 0x0800
	UpRightDown   Directions = 0x1000
	LeftRightDown Directions = 0x2000

	AllAtOnce Directions = 0x4000
)

// Groups of inputs.
const (
	AnyStraight           = Up | Left | Right | Down
	AnyDiagonal           = UpLeft | UpRight | DownLeft | DownRight
	AnyRealTimeImpossible = UpDown | LeftRight | UpLeftRight | UpLeftDown | UpRightDown | LeftRightDown | AllAtOnce

	allDirections = AnyStraight | AnyDiagonal | AnyRealTimeImpossible
)

type named struct {
	dir  Directions
	name string
}

// names is ordered by display tier: straight, diagonal, opposing pairs,
// triples, all four.
var names = []named{
	{Up, "U"}, {Left, "L"}, {Right, "R"}, {Down, "D"},
	{UpLeft, "UL"}, {UpRight, "UR"}, {DownLeft, "DL"}, {DownRight, "DR"},
	{UpDown, "UD"}, {LeftRight, "LR"},
	{UpLeftRight, "ULR"}, {UpLeftDown, "ULD"}, {UpRightDown, "URD"}, {LeftRightDown, "LRD"},
	{AllAtOnce, "ALL"},
}

var tiers = [][]named{names[0:4], names[4:8], names[8:10], names[10:14], names[14:]}

// Contains reports whether every input of other is in d.
func (d Directions) Contains(other Directions) bool { return d&other == other }

// Intersects reports whether d and other share an input.
func (d Directions) Intersects(other Directions) bool { return d&other != 0 }

func (d Directions) HasStraight() bool           { return d.Intersects(AnyStraight) }
func (d Directions) HasDiagonal() bool           { return d.Intersects(AnyDiagonal) }
func (d Directions) HasRealTimeImpossible() bool { return d.Intersects(AnyRealTimeImpossible) }

// String returns the inputs of the easiest tier present in d, joined by "|".
// A move that can be played straight is shown only with its straight
// inputs, since nobody would play it any other way.
func (d Directions) String() string {
	for _, tier := range tiers {
		var parts []string
		for _, n := range tier {
			if d.Contains(n.dir) {
				parts = append(parts, n.name)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "|")
		}
	}
	return ""
}

// Names returns the names of every input in d.
func (d Directions) Names() []string {
	var out []string
	for _, n := range names {
		if d.Contains(n.dir) {
			out = append(out, n.name)
		}
	}
	return out
}

// ParseDirections parses names joined by "|", as produced by
// [Directions.Names] or [Directions.String]. The empty string is the empty set.
func ParseDirections(s string) (Directions, error) {
	var d Directions
	if s == "" {
		return d, nil
	}
	for _, part := range strings.Split(s, "|") {
		found := false
		for _, n := range names {
			if strings.EqualFold(part, n.name) {
				d |= n.dir
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown direction %q", part)
		}
	}
	return d, nil
}

// MarshalText encodes every input, unlike String.
func (d Directions) MarshalText() ([]byte, error) {
	if d&^allDirections != 0 {
		return nil, fmt.Errorf("invalid direction bits %#04x", uint16(d))
	}
	return []byte(strings.Join(d.Names(), "|")), nil
}

func (d *Directions) UnmarshalText(text []byte) error {
	parsed, err := ParseDirections(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
