package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	kindProject = "project"
	kindItem    = "item"
)

// Record is one opaque planner document.
type Record struct {
	ClientID string `json:"client_id"`
	Payload  string `json:"payload"`
}

// PushRequest replaces the user's full document set.
type PushRequest struct {
	Projects  []Record `json:"projects"`
	Items     []Record `json:"items"`
	Encrypted bool     `json:"encrypted"`
}

// PushResponse carries the new state version.
type PushResponse struct {
	Version int64 `json:"version"`
}

// PullResponse is the user's full document set.
type PullResponse struct {
	Projects  []Record `json:"projects"`
	Items     []Record `json:"items"`
	Encrypted bool     `json:"encrypted"`
	Version   int64    `json:"version"`
}

// handleSyncPull returns every stored document for the user.
func (s *Server) handleSyncPull(c echo.Context) error {
	userID := c.Get("user_id").(string)

	resp := PullResponse{Projects: []Record{}, Items: []Record{}}
	_ = s.db.QueryRow(`
		SELECT version, encrypted FROM planner_versions WHERE user_id = $1`,
		userID,
	).Scan(&resp.Version, &resp.Encrypted)

	rows, err := s.db.Query(`
		SELECT kind, client_id, payload FROM planner_docs
		WHERE user_id = $1
		ORDER BY updated_at ASC`,
		userID,
	)
	if err != nil {
		c.Logger().Error("pull query error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var rec Record
		if err := rows.Scan(&kind, &rec.ClientID, &rec.Payload); err != nil {
			continue
		}
		switch kind {
		case kindProject:
			resp.Projects = append(resp.Projects, rec)
		case kindItem:
			resp.Items = append(resp.Items, rec)
		}
	}

	c.Logger().Infof("Sync pull for user %s: %d projects, %d items at version %d",
		userID, len(resp.Projects), len(resp.Items), resp.Version)

	return c.JSON(http.StatusOK, resp)
}

// handleSyncPush replaces the user's document set wholesale: documents
// absent from the request are removed. The state version is bumped once
// per push.
func (s *Server) handleSyncPush(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var req PushRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	tx, err := s.db.Begin()
	if err != nil {
		c.Logger().Error("push tx error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM planner_docs WHERE user_id = $1`, userID); err != nil {
		c.Logger().Error("push clear error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	insert := func(kind string, records []Record) error {
		for _, rec := range records {
			if _, err := tx.Exec(`
				INSERT INTO planner_docs (user_id, kind, client_id, payload, updated_at)
				VALUES ($1, $2, $3, $4, NOW())`,
				userID, kind, rec.ClientID, rec.Payload,
			); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(kindProject, req.Projects); err != nil {
		c.Logger().Error("push insert error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if err := insert(kindItem, req.Items); err != nil {
		c.Logger().Error("push insert error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	var version int64
	if err := tx.QueryRow(`
		INSERT INTO planner_versions (user_id, version, encrypted, updated_at)
		VALUES ($1, 1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			version = planner_versions.version + 1,
			encrypted = $2,
			updated_at = NOW()
		RETURNING version`,
		userID, req.Encrypted,
	).Scan(&version); err != nil {
		c.Logger().Error("push version error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Error("push commit error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.Logger().Infof("Sync push for user %s: %d projects, %d items, version %d",
		userID, len(req.Projects), len(req.Items), version)

	return c.JSON(http.StatusOK, PushResponse{Version: version})
}
