package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/matzehuels/graphbash/pkg/buildinfo"
	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/graph"
	"github.com/matzehuels/graphbash/pkg/pipeline"
)

// maxBodyBytes bounds route request bodies.
const maxBodyBytes = 1 << 20

// RouteRequest is the body of POST /v1/routes.
type RouteRequest struct {
	// Origin defaults to the configured root panel.
	Origin *int32 `json:"origin,omitempty"`
	// Goals are target names or panel indices. Empty means every
	// non-optional target.
	Goals  []Goal `json:"goals"`
	Verify bool   `json:"verify,omitempty"`
}

// Goal is a route goal given either as a JSON string naming a target or
// as a JSON number.
type Goal string

func (g *Goal) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*g = Goal(name)
		return nil
	}
	var n int32
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("goal must be a target name or a panel index: %s", data)
	}
	*g = Goal(strconv.Itoa(int(n)))
	return nil
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"nodes":   s.graph.Graph.NodeCount(),
		"edges":   s.graph.Graph.EdgeCount(),
		"version": buildinfo.Get(),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", s.etag)
	if r.Header.Get("If-None-Match") == s.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	data, err := graph.MarshalGraph(s.graph.Graph, s.graph.Source)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Targets)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" {
		if err := pipeline.ValidateFormat(format); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid render format"))
			return
		}
	}

	var req RouteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	names := make([]string, len(req.Goals))
	for i, g := range req.Goals {
		names[i] = string(g)
	}
	goals, err := s.cfg.Goals(names)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	origin := s.cfg.Graph.Root
	if req.Origin != nil {
		origin = *req.Origin
	}

	ctx := r.Context()
	if timeout := s.cfg.Server.RouteTimeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	labels := make(map[int32]string, len(s.cfg.Targets))
	for _, t := range s.cfg.Targets {
		labels[t.Node] = t.Name
	}
	res, err := s.runner.Route(ctx, s.graph.Graph, pipeline.RouteOptions{
		Origin:   origin,
		Goals:    goals,
		Policy:   s.cfg.Cost,
		Names:    labels,
		Verify:   req.Verify,
		MaxGoals: s.cfg.Server.MaxGoals,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch format {
	case pipeline.FormatSVG, pipeline.FormatDOT:
		data, err := pipeline.Render(ctx, s.graph.Graph, res, format, labels)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		contentType := "image/svg+xml"
		if format == pipeline.FormatDOT {
			contentType = "text/vnd.graphviz"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTarget, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNoRoute:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
