package pipeline

import (
	"context"
	"time"

	"github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/layout"
	"github.com/lhartmann/forcefield/pkg/observability"
	"github.com/lhartmann/forcefield/pkg/render"
)

// renderFormats produces every requested format from one layout.
func (r *Runner) renderFormats(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		observability.Pipeline().OnRenderStart(ctx, format)
		start := time.Now()
		data, err := r.renderFormat(ctx, l, format, opts)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		out[format] = data
	}
	return out, nil
}

func (r *Runner) renderFormat(ctx context.Context, l *layout.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case errors.FormatSVG:
		return render.RenderSVG(l, opts.svgOptions()...), nil
	case errors.FormatDOT:
		return []byte(render.ToDOT(l)), nil
	case errors.FormatJSON:
		return render.RenderJSON(l)
	case errors.FormatPNG:
		return render.RenderDOTPNG(ctx, render.ToDOT(l))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

// svgOptions translates pipeline options to SVG sink options.
func (o *Options) svgOptions() []render.SVGOption {
	svgOpts := []render.SVGOption{render.WithEdgeWidth(o.EdgeWidth)}
	if o.Theme == ThemeDark {
		svgOpts = append(svgOpts, render.WithTheme(render.Dark))
	}
	if o.Labels {
		svgOpts = append(svgOpts, render.WithLabels())
	}
	return svgOpts
}
