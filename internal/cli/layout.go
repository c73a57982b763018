package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaview/pkg/graph"
	"github.com/matzehuels/schemaview/pkg/pipeline"
	"github.com/matzehuels/schemaview/pkg/schema"
)

// layoutFlags holds the flags of the layout command.
type layoutFlags struct {
	output  string
	engine  string
	width   float64
	height  float64
	hover   string
	noFit   bool
	noCache bool
	refresh bool
}

// layoutCommand creates the layout command for computing diagram frames.
func (c *CLI) layoutCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [snapshot.json|snapshot.toml]",
		Short: "Lay out a schema snapshot and write the diagram frame",
		Long: `Lay out a schema snapshot and write the diagram frame.

The layout command reads a snapshot of tables, columns and foreign keys,
places the tables with the layered layout engine, routes every relationship
and fits the camera to a viewport. The output is a frame.json file with
positioned tables, SVG path data per relationship and the camera moves.

Use --hover table.column or --hover <edge id> to frame a highlighted state.

Auto layouts are cached; --refresh recomputes and overwrites the entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: <input>.frame.json)")
	cmd.Flags().StringVarP(&f.engine, "engine", "e", "", "layout engine: native, graphviz (default from config)")
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "viewport width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "viewport height")
	cmd.Flags().StringVar(&f.hover, "hover", "", "hover a field (table.column) or an edge id")
	cmd.Flags().BoolVar(&f.noFit, "no-fit", false, "skip camera fitting")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute the layout even when cached")

	return cmd
}

// runLayout loads the snapshot, computes the frame, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, f layoutFlags) error {
	prog := newProgress(c.Logger)
	snap, err := schema.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Loaded %d tables", len(snap.Tables)))

	opts, err := c.viewOptions(f.engine)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := c.newSpinner(ctx, fmt.Sprintf("Computing %s layout...", opts.Engine))
	spinner.Start()

	res, err := runner.Execute(ctx, snap, pipeline.Options{
		View:    opts,
		Width:   f.width,
		Height:  f.height,
		NoFit:   f.noFit,
		Hover:   f.hover,
		NoCache: f.noCache,
		Refresh: f.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := f.output
	if outputPath == "" {
		outputPath = defaultFramePath(input)
	}

	if err := graph.WriteFrameFile(res.Frame, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	c.ui.success("Layout complete")
	c.ui.file(outputPath)
	c.ui.stats(layoutStats{
		tables:  res.Stats.Nodes,
		edges:   res.Stats.Edges,
		cached:  res.CacheHit,
		elapsed: res.Stats.LayoutTime + res.Stats.RouteTime,
	})
	if res.Stats.Dropped > 0 {
		c.ui.warning("%d foreign keys reference tables outside the snapshot", res.Stats.Dropped)
	}
	if res.Frame.Hover != nil {
		c.ui.detail("hover highlights %s and %s", plural(len(res.Frame.Hover.Edges), "edge"), plural(len(res.Frame.Hover.Fields), "field"))
	}
	c.ui.newline()
	c.ui.nextStep("Explore", appName+" inspect "+input)

	return nil
}

// defaultFramePath derives the output path from the snapshot path.
func defaultFramePath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".frame.json"
}
