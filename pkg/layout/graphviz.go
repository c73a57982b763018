package layout

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/schemaview/pkg/geom"
)

// pointsPerInch converts between diagram pixels and Graphviz inches.
const pointsPerInch = 72.0

// positionedDOT is the "dot" output format: the input graph annotated with
// pos attributes.
const positionedDOT = graphviz.Format("dot")

// Graphviz lays out the connected boxes with Graphviz dot. Isolated boxes
// use the same grid as [Native].
type Graphviz struct {
	Options Options
	Logger  *log.Logger
}

// Name returns "graphviz".
func (e *Graphviz) Name() string { return EngineGraphviz }

// Layout positions all boxes.
func (e *Graphviz) Layout(ctx context.Context, boxes []Box, links []Link) (map[string]geom.Point, error) {
	return arrange(ctx, e.Options, boxes, links, e.dot)
}

func (e *Graphviz) dot(ctx context.Context, boxes []Box, links []Link) (map[string]geom.Point, error) {
	logger := e.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	start := time.Now()

	src := ToDOT(boxes, links, e.Options)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, positionedDOT, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	centers, err := ParsePositions(buf.Bytes())
	if err != nil {
		return nil, err
	}

	pos := make(map[string]geom.Point, len(boxes))
	for i, b := range boxes {
		c, ok := centers[dotID(i)]
		if !ok {
			return nil, fmt.Errorf("graphviz output has no position for %q", b.ID)
		}
		// dot's y axis points up
		pos[b.ID] = geom.Point{X: c.X - b.Width/2, Y: -c.Y - b.Height/2}
	}
	normalize(boxes, pos)

	logger.Debug("graphviz layout", "nodes", len(boxes), "edges", len(links), "duration", time.Since(start))
	return pos, nil
}

// ToDOT renders boxes and links as a left-to-right DOT graph with fixed-size
// boxes. Nodes are named n0..nK in input order so that table names never
// need quoting.
func ToDOT(boxes []Box, links []Link, opts Options) string {
	index := make(map[string]int, len(boxes))
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(opts.NodeSep))
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(opts.RankSep))
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	for i, b := range boxes {
		index[b.ID] = i
		fmt.Fprintf(&buf, "  %s [width=%s, height=%s];\n", dotID(i), inches(b.Width), inches(b.Height))
	}

	buf.WriteString("\n")
	for _, l := range links {
		from, okF := index[l.From]
		to, okT := index[l.To]
		if !okF || !okT {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", dotID(from), dotID(to))
	}

	buf.WriteString("}\n")
	return buf.String()
}

var posRe = regexp.MustCompile(`(?m)^\s*(n\d+)\s+\[[^;]*?\bpos="([-0-9.e+]+),([-0-9.e+]+)"`)

// ParsePositions extracts node centers from positioned DOT output.
func ParsePositions(out []byte) (map[string]geom.Point, error) {
	matches := posRe.FindAllSubmatch(out, -1)
	if matches == nil {
		return nil, fmt.Errorf("graphviz output contains no node positions")
	}
	centers := make(map[string]geom.Point, len(matches))
	for _, m := range matches {
		x, errX := strconv.ParseFloat(string(m[2]), 64)
		y, errY := strconv.ParseFloat(string(m[3]), 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("bad position for %s", m[1])
		}
		centers[string(m[1])] = geom.Point{X: x, Y: y}
	}
	return centers, nil
}

func dotID(i int) string { return "n" + strconv.Itoa(i) }

func inches(px float64) string {
	return strconv.FormatFloat(px/pointsPerInch, 'f', 4, 64)
}
