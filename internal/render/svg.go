package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orbitsim/internal/sim"
)

// TrajectorySVG draws every body's path in its style color, with a dot at
// its last position. Both axes share one scale so orbits stay round.
func TrajectorySVG(traj *sim.Trajectory, width, height int) string {
	if traj == nil || traj.Len() == 0 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, frame := range traj.Frames {
		for _, p := range frame {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		span = 1
	}
	span *= 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	px := math.Min(float64(width), float64(height)) / span

	project := func(x, y float64) (float64, float64) {
		return float64(width)/2 + (x-cx)*px, float64(height)/2 - (y-cy)*px
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, name := range traj.Names {
		st := StyleFor(name)
		series := traj.Series(i)

		if len(series) > 1 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" d="`, st.Color))
			for k, p := range series {
				x, y := project(p.X, p.Y)
				if k == 0 {
					sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		last := series[len(series)-1]
		x, y := project(last.X, last.Y)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%d" fill="%s"><title>%s</title></circle>
`, x, y, st.Radius+2, st.Color, escape(name)))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
