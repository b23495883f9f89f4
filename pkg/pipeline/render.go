package pipeline

import (
	"context"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/panel"
	"github.com/matzehuels/graphbash/pkg/render/nodelink"
)

// Render draws a route result in the given format. names labels panels
// and may be nil.
func Render(ctx context.Context, g *panel.Graph, res *Result, format string, names map[int32]string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if res.Route == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "result %s carries no route to render", res.ID)
	}
	dot, err := nodelink.ToDOT(g, res.Route, nodelink.Options{Names: names})
	if err != nil {
		return nil, err
	}
	if format == FormatDOT {
		return []byte(dot), nil
	}
	return nodelink.RenderSVG(ctx, dot)
}
