package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/schemaview/pkg/buildinfo"
	"github.com/matzehuels/schemaview/pkg/errors"
	"github.com/matzehuels/schemaview/pkg/graph"
	"github.com/matzehuels/schemaview/pkg/pipeline"
	"github.com/matzehuels/schemaview/pkg/schema"
	"github.com/matzehuels/schemaview/pkg/view"
	"github.com/matzehuels/schemaview/pkg/viewport"
)

type snapshotRequest struct {
	Snapshot json.RawMessage `json:"snapshot"`
	Engine   string          `json:"engine,omitempty"`
}

type layoutRequest struct {
	snapshotRequest
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Hover   string  `json:"hover,omitempty"`
	NoFit   bool    `json:"no_fit,omitempty"`
	Refresh bool    `json:"refresh,omitempty"`
}

type statsBody struct {
	Nodes      int     `json:"nodes"`
	Edges      int     `json:"edges"`
	Dropped    int     `json:"dropped"`
	Duplicates int     `json:"duplicates"`
	LayoutMS   float64 `json:"layout_ms"`
	RouteMS    float64 `json:"route_ms"`
}

type layoutResponse struct {
	Frame        graph.Frame `json:"frame"`
	Stats        statsBody   `json:"stats"`
	CacheHit     bool        `json:"cache_hit"`
	SnapshotHash string      `json:"snapshot_hash"`
}

type sessionResponse struct {
	ID    string      `json:"id"`
	Frame graph.Frame `json:"frame"`
}

type dragRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type hoverRequest struct {
	Table  string `json:"table,omitempty"`
	Column string `json:"column,omitempty"`
	Edge   string `json:"edge,omitempty"`
}

type fitRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (req snapshotRequest) parse() (*schema.Snapshot, error) {
	if len(req.Snapshot) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "snapshot is required")
	}
	return schema.Parse(req.Snapshot, schema.FormatJSON)
}

func (s *Server) viewOptions(engine string) view.Options {
	opts := s.cfg.View
	if engine != "" {
		opts.Engine = engine
	}
	return opts
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
		"build":    buildinfo.Get(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, err := req.parse()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), snap, pipeline.Options{
		View:    s.viewOptions(req.Engine),
		Width:   req.Width,
		Height:  req.Height,
		NoFit:   req.NoFit,
		Hover:   req.Hover,
		Refresh: req.Refresh,
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, layoutResponse{
		Frame: res.Frame,
		Stats: statsBody{
			Nodes:      res.Stats.Nodes,
			Edges:      res.Stats.Edges,
			Dropped:    res.Stats.Dropped,
			Duplicates: res.Stats.Duplicates,
			LayoutMS:   float64(res.Stats.LayoutTime.Microseconds()) / 1000,
			RouteMS:    float64(res.Stats.RouteTime.Microseconds()) / 1000,
		},
		CacheHit:     res.CacheHit,
		SnapshotHash: res.SnapshotHash,
	})
}

// layout positions every node of v, preferring the runner's cached layout.
func (s *Server) layout(ctx context.Context, v *view.View, snap *schema.Snapshot, opts view.Options) error {
	hash, err := pipeline.SnapshotHash(snap)
	if err != nil {
		return err
	}
	_, err = s.runner.LayoutWithCacheInfo(ctx, v, hash, pipeline.Options{View: opts, Logger: s.logger})
	return err
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, err := req.parse()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.viewOptions(req.Engine)
	v, err := s.runner.Load(r.Context(), snap, pipeline.Options{View: opts, Logger: s.logger})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.layout(r.Context(), v, snap, opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	frame := v.Frame()
	sess := s.sessions.Create(v, opts)
	s.logger.Debug("session created", "id", sess.ID, "tables", len(frame.Nodes))
	s.writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, Frame: frame})
}

// withSession resolves the {id} parameter and runs fn on the session's view.
// fn returns the status and body of a successful response.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(sess *Session, v *view.View) (int, any, error)) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var (
		status int
		body   any
	)
	err = sess.Do(func(v *view.View) error {
		var err error
		status, body, err = fn(sess, v)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if body == nil {
		w.WriteHeader(status)
		return
	}
	s.writeJSON(w, status, body)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *Session, v *view.View) (int, any, error) {
		return http.StatusOK, sessionResponse{ID: sess.ID, Frame: v.Frame()}, nil
	})
}

// handleReload replaces the session's snapshot. The new diagram is built and
// laid out on its own and swapped in only when that succeeds, so a failed
// reload leaves the session as it was. Hover state survives when the hovered
// field or edge still exists.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Engine != "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "the engine of a session cannot change"))
		return
	}
	snap, err := req.parse()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next, err := s.runner.Load(r.Context(), snap, pipeline.Options{View: sess.Options, Logger: s.logger})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.layout(r.Context(), next, snap, sess.Options); err != nil {
		s.writeError(w, r, err)
		return
	}

	var frame graph.Frame
	sess.Replace(func(prev *view.View) *view.View {
		next.RestoreHover(prev.Highlight().State())
		frame = next.Frame()
		return next
	})
	s.writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Frame: frame})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.Delete(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAutoLayout(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *Session, v *view.View) (int, any, error) {
		if err := v.AutoLayout(r.Context()); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, sessionResponse{ID: sess.ID, Frame: v.Frame()}, nil
	})
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	node, err := url.PathUnescape(chi.URLParam(r, "node"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "node"))
		return
	}
	s.withSession(w, r, func(sess *Session, v *view.View) (int, any, error) {
		if err := v.Drag(node, req.DX, req.DY); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, sessionResponse{ID: sess.ID, Frame: v.Frame()}, nil
	})
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	var req hoverRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	field := req.Table != "" || req.Column != ""
	if field == (req.Edge != "") || (field && (req.Table == "" || req.Column == "")) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "hover needs either table and column or edge"))
		return
	}
	s.withSession(w, r, func(sess *Session, v *view.View) (int, any, error) {
		var err error
		if field {
			err = v.HoverField(req.Table, req.Column)
		} else {
			err = v.HoverEdge(req.Edge)
		}
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, sessionResponse{ID: sess.ID, Frame: v.Frame()}, nil
	})
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *Session, v *view.View) (int, any, error) {
		v.ClearHover()
		return http.StatusOK, sessionResponse{ID: sess.ID, Frame: v.Frame()}, nil
	})
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "viewport size %gx%g must be positive", req.Width, req.Height))
		return
	}
	s.withSession(w, r, func(_ *Session, v *view.View) (int, any, error) {
		return http.StatusOK, v.Fit(viewport.Size{Width: req.Width, Height: req.Height}), nil
	})
}
