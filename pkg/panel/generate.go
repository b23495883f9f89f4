package panel

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphbash/pkg/errors"
)

// Layout of the movement behaviour table in RAM. Each panel has a record of
// four signed offsets (left, right, up, down) followed by twelve bytes that
// are not about movement.
const (
	BehaviourTableAddress = 0x0BD5DA
	BehaviourRecordSize   = 0x10
)

// DefaultMaxDepth is the breadth-first depth explored when none is given.
const DefaultMaxDepth = 50

// GenerateOptions configures [Generate].
type GenerateOptions struct {
	// Start is the panel the exploration begins at.
	Start int32
	// MaxDepth bounds the number of moves from Start. Panels discovered at
	// the last level are added to the graph but not expanded.
	MaxDepth int
	// MaxNodes aborts generation once the graph holds more panels.
	// Zero means no limit.
	MaxNodes int
	// Logger receives one debug line per expanded panel. Nil disables logging.
	Logger *log.Logger
}

// Offsets are the four movement offsets of one panel.
type Offsets struct {
	Left, Right, Up, Down int32
}

// moves lists the composed inputs in the order edges are added.
func (o Offsets) moves() []struct {
	dirs   Directions
	offset int32
} {
	l, r, u, d := o.Left, o.Right, o.Up, o.Down
	return []struct {
		dirs   Directions
		offset int32
	}{
		{Up, u}, {Left, l}, {Right, r}, {Down, d},
		{UpLeft, u + l}, {UpRight, u + r}, {DownLeft, d + l}, {DownRight, d + r},
		{UpDown, u + d}, {LeftRight, l + r},
		{UpLeftRight, u + l + r}, {UpLeftDown, u + l + d}, {UpRightDown, u + r + d}, {LeftRightDown, l + r + d},
		{AllAtOnce, u + l + r + d},
	}
}

// ReadOffsets reads the movement record of a panel from a RAM dump.
func ReadOffsets(dump io.ReadSeeker, panel int32) (Offsets, error) {
	at := int64(BehaviourTableAddress) + int64(panel)*BehaviourRecordSize
	if at < 0 {
		return Offsets{}, errors.New(errors.ErrCodeInvalidDump, "panel %d lies before the start of the dump", panel)
	}
	if _, err := dump.Seek(at, io.SeekStart); err != nil {
		return Offsets{}, errors.Wrap(errors.ErrCodeInvalidDump, err, "seek to panel %d", panel)
	}
	var raw [4]int8
	if err := binary.Read(dump, binary.LittleEndian, &raw); err != nil {
		return Offsets{}, errors.Wrap(errors.ErrCodeInvalidDump, err, "read panel %d at %#x", panel, at)
	}
	return Offsets{
		Left:  int32(raw[0]),
		Right: int32(raw[1]),
		Up:    int32(raw[2]),
		Down:  int32(raw[3]),
	}, nil
}

// Generate explores the panel graph breadth-first from opts.Start.
//
// For every expanded panel the fifteen composed inputs are added as edges.
// When two inputs reach the same panel, their flags are merged on one edge.
func Generate(ctx context.Context, dump io.ReadSeeker, opts GenerateOptions) (*Graph, error) {
	if opts.MaxDepth < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max depth must not be negative, got %d", opts.MaxDepth)
	}

	type queued struct {
		panel int32
		depth int // moves still allowed after this panel
	}

	g := NewGraph()
	g.AddNode(opts.Start)
	queue := []queued{{panel: opts.Start, depth: opts.MaxDepth}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := queue[0]
		queue = queue[1:]

		offsets, err := ReadOffsets(dump, cur.panel)
		if err != nil {
			return nil, err
		}

		for _, m := range offsets.moves() {
			to := cur.panel + m.offset
			if g.AddNode(to) && cur.depth > 0 {
				queue = append(queue, queued{panel: to, depth: cur.depth - 1})
			}
			g.AddMove(cur.panel, to, m.dirs)
		}

		if opts.MaxNodes > 0 && g.NodeCount() > opts.MaxNodes {
			return nil, errors.New(errors.ErrCodeInvalidInput, "graph exceeds %d panels", opts.MaxNodes)
		}
		if opts.Logger != nil {
			opts.Logger.Debug("expanded panel",
				"level", opts.MaxDepth-cur.depth,
				"panel", cur.panel,
				"edges", formatEdges(g, cur.panel))
		}
	}
	return g, nil
}

func formatEdges(g *Graph, panel int32) []string {
	edges := g.Edges(panel)
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = fmt.Sprintf("%s:%d", e.Label, e.To)
	}
	return out
}
