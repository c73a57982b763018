package config

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schemaview/pkg/errors"
	"github.com/matzehuels/schemaview/pkg/layout"
)

// minWeightRatio is how many bends one intersection must outweigh at least.
const minWeightRatio = 10

// Validate rejects settings the engine cannot work with. All failures are
// INVALID_CONFIG errors naming the offending key.
func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		key string
		msg string
	}{
		{c.Size.MinWidth > 0, "size.min_width", "must be positive"},
		{c.Size.CharWidth > 0, "size.char_width", "must be positive"},
		{c.Size.Header > 0, "size.header", "must be positive"},
		{c.Size.RowHeight > 0, "size.row_height", "must be positive"},
		{c.Size.HPadding >= 0, "size.h_padding", "must not be negative"},
		{c.Size.VPadding >= 0, "size.v_padding", "must not be negative"},
		{c.Size.PKBonus >= 0, "size.pk_bonus", "must not be negative"},

		{c.Layout.NodeSep > 0, "layout.node_sep", "must be positive"},
		{c.Layout.RankSep > 0, "layout.rank_sep", "must be positive"},
		{c.Layout.GridColumns > 0, "layout.grid_columns", "must be positive"},
		{c.Layout.GridGap >= 0, "layout.grid_gap", "must not be negative"},
		{c.Layout.IsolatedGap >= 0, "layout.isolated_gap", "must not be negative"},
		{c.Layout.OrderIterations >= 0, "layout.order_iterations", "must not be negative"},
		{c.Layout.CoordinateRounds >= 0, "layout.coordinate_rounds", "must not be negative"},

		{c.Route.Stub > 0, "route.stub", "must be positive"},
		{c.Route.ObstaclePadding >= 0, "route.obstacle_padding", "must not be negative"},
		{c.Route.CorridorMargin >= 0, "route.corridor_margin", "must not be negative"},
		{c.Route.DetourMargin > 0, "route.detour_margin", "must be positive"},
		{c.Route.LaneSpacing > 0, "route.lane_spacing", "must be positive"},
		{c.Route.Jitter >= 0 && c.Route.Jitter < c.Route.LaneSpacing/2, "route.jitter", "must be below half the lane spacing"},
		{c.Route.BendWeight > 0, "route.bend_weight", "must be positive"},
		{c.Route.IntersectionWeight >= minWeightRatio*c.Route.BendWeight, "route.intersection_weight",
			"must outweigh at least 10 bends"},
		{c.Route.MemoSize >= 0, "route.memo_size", "must not be negative"},

		{c.Render.CornerRadius >= 0, "render.corner_radius", "must not be negative"},

		{c.Viewport.MinZoom > 0, "viewport.min_zoom", "must be positive"},
		{c.Viewport.MaxZoom >= c.Viewport.MinZoom, "viewport.max_zoom", "must not be below min_zoom"},
		{c.Viewport.ComfortZoom >= c.Viewport.MinZoom && c.Viewport.ComfortZoom <= c.Viewport.MaxZoom,
			"viewport.comfort_zoom", "must lie between min_zoom and max_zoom"},
		{c.Viewport.Padding >= 0, "viewport.padding", "must not be negative"},
		{c.Viewport.Duration >= 0, "viewport.duration", "must not be negative"},
		{c.Viewport.FocusThreshold >= 0, "viewport.focus_threshold", "must not be negative"},

		{c.Server.Addr != "", "server.addr", "must be set"},
		{c.Server.MaxBodyBytes > 0, "server.max_body_bytes", "must be positive"},
		{c.Server.MaxSessions > 0, "server.max_sessions", "must be positive"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return errors.New(errors.ErrCodeInvalidConfig, "%s %s", ch.key, ch.msg)
		}
	}

	switch strings.ToLower(c.Layout.Engine) {
	case layout.EngineNative, layout.EngineGraphviz:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown layout engine %q", c.Layout.Engine).
			WithHint("use %q or %q", layout.EngineNative, layout.EngineGraphviz)
	}

	switch c.Cache.Backend {
	case BackendNone, BackendFile:
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.addr must be set for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend).
			WithHint("use %q, %q or %q", BackendNone, BackendFile, BackendRedis)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown log format %q", c.Log.Format)
	}
	return nil
}
