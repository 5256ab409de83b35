package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/gymcontrol/internal/models"
)

func (h *handlers) recentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -30)

	type sessionDetail struct {
		Session   models.Session           `json:"session"`
		Exercises []models.SessionExercise `json:"exercises"`
	}
	var recent []sessionDetail
	for _, s := range sessions {
		if s.PerformedAt.Before(cutoff) {
			// ListSessions is newest-first, so everything after is older too.
			break
		}
		items, err := h.ds.ListSessionExercises(ctx, s.ID)
		if err != nil {
			h.log.Warn("recent_sessions: exercise query failed", "session_id", s.ID, "error", err)
		}
		recent = append(recent, sessionDetail{Session: s, Exercises: items})
	}

	data, err := json.Marshal(recent)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
