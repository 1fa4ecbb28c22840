package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/snapkit/snapcard/pkg/errors"
	"github.com/snapkit/snapcard/pkg/history"
	"github.com/snapkit/snapcard/pkg/snap"
)

// renderRequest is the POST /api/render body. Thumbnail asks for a small
// PNG preview alongside the artifact, which history views show in lists.
type renderRequest struct {
	Text      string        `json:"text"`
	Options   *snap.Options `json:"options,omitempty"`
	Thumbnail bool          `json:"thumbnail,omitempty"`
}

// renderResponse carries the artifact as a data URI so browser clients can
// use it directly as an image source or download link.
type renderResponse struct {
	DataURI      string `json:"data_uri"`
	MIME         string `json:"mime"`
	Bytes        int    `json:"bytes"`
	Cached       bool   `json:"cached"`
	ThumbDataURI string `json:"thumb_data_uri,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateSnapText(req.Text); err != nil {
		writeError(w, err)
		return
	}

	opts := snap.DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}

	s.renderMu.Lock()
	img, cached, err := s.runner.Execute(r.Context(), req.Text, opts)
	s.renderMu.Unlock()
	if err != nil {
		s.logger.Error("render failed", "err", err)
		writeError(w, err)
		return
	}

	resp := renderResponse{
		DataURI: img.DataURI(),
		MIME:    img.MIME,
		Bytes:   len(img.Data),
		Cached:  cached,
	}
	if req.Thumbnail {
		thumb, err := snap.EncodeThumbnail(img, snap.ThumbnailEdge)
		if err != nil {
			s.logger.Error("thumbnail failed", "err", err)
			writeError(w, err)
			return
		}
		resp.ThumbDataURI = thumb.DataURI()
	}
	writeJSON(w, http.StatusOK, resp)
}

// addSnapRequest is the POST /api/history body. Clients that already
// assigned an ID and capture time (the editor does) send them along;
// absent fields are filled server-side. Timestamps are unix milliseconds.
type addSnapRequest struct {
	ID        string   `json:"id,omitempty"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp,omitempty"`
	Title     string   `json:"title,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

func (s *Server) handleHistoryAdd(w http.ResponseWriter, r *http.Request) {
	var req addSnapRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := history.New(req.Text, req.Title, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.ID != "" {
		entry.ID = req.ID
	}
	if req.Timestamp != 0 {
		entry.Timestamp = time.UnixMilli(req.Timestamp).UTC()
	}
	if err := entry.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Add(r.Context(), entry); err != nil {
		s.logger.Error("history add failed", "err", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("history list failed", "err", err)
		writeError(w, err)
		return
	}
	if snaps == nil {
		snaps = []history.Snap{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"snaps": snaps, "count": len(snaps)})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
