package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/go-chi/chi/v5"
)

type TagStore interface {
	ListTags(ctx context.Context) ([]store.Tag, error)
	CreateTag(ctx context.Context, label string) (store.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	Attach(ctx context.Context, tagID string, kind store.RefKind, targetID string) (store.TaggedItem, error)
	Detach(ctx context.Context, tagID string, kind store.RefKind, targetID string) error
	TagsFor(ctx context.Context, kind store.RefKind, targetID string) ([]store.TaggedItem, error)
	Like(ctx context.Context, userID string, kind store.RefKind, targetID string) (store.LikedItem, error)
	Unlike(ctx context.Context, userID string, kind store.RefKind, targetID string) error
	LikedBy(ctx context.Context, userID string) ([]store.LikedItem, error)
}

type TagsHandler struct {
	Tags TagStore
}

func (h *TagsHandler) Register(r *chi.Mux) {
	r.Get("/tags", h.listTags)
	r.Post("/tags", h.createTag)
	r.Delete("/tags/{id}", h.deleteTag)
	r.Post("/tags/{id}/items", h.attach)
	r.Delete("/tags/{id}/items", h.detach)
	r.Get("/tagged/{kind}/{targetID}", h.tagsFor)
	r.Post("/likes", h.like)
	r.Delete("/likes", h.unlike)
	r.Get("/likes", h.likedBy)
}

func (h *TagsHandler) listTags(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ts, err := h.Tags.ListTags(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]tagJSON, 0, len(ts))
	for _, t := range ts {
		out = append(out, tagJSON{ID: t.ID, Label: t.Label})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TagsHandler) createTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	t, err := h.Tags.CreateTag(ctx, req.Label)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tagJSON{ID: t.ID, Label: t.Label})
}

func (h *TagsHandler) deleteTag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Tags.DeleteTag(ctx, chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type refReq struct {
	Kind     string `json:"kind"`
	TargetID string `json:"target_id"`
}

func (h *TagsHandler) attach(w http.ResponseWriter, r *http.Request) {
	var req refReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	kind, err := store.ParseRefKind(req.Kind)
	if err != nil {
		writeErr(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it, err := h.Tags.Attach(ctx, chi.URLParam(r, "id"), kind, req.TargetID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, taggedItemJSON{
		ID: it.ID, TagID: it.TagID, Label: it.Label,
		Kind: string(it.Kind), TargetID: it.TargetID,
	})
}

func (h *TagsHandler) detach(w http.ResponseWriter, r *http.Request) {
	var req refReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	kind, err := store.ParseRefKind(req.Kind)
	if err != nil {
		writeErr(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Tags.Detach(ctx, chi.URLParam(r, "id"), kind, req.TargetID); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TagsHandler) tagsFor(w http.ResponseWriter, r *http.Request) {
	kind, err := store.ParseRefKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeErr(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	its, err := h.Tags.TagsFor(ctx, kind, chi.URLParam(r, "targetID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]taggedItemJSON, 0, len(its))
	for _, it := range its {
		out = append(out, taggedItemJSON{
			ID: it.ID, TagID: it.TagID, Label: it.Label,
			Kind: string(it.Kind), TargetID: it.TargetID,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type likeReq struct {
	UserID   string `json:"user_id"`
	Kind     string `json:"kind"`
	TargetID string `json:"target_id"`
}

func (h *TagsHandler) like(w http.ResponseWriter, r *http.Request) {
	var req likeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	kind, err := store.ParseRefKind(req.Kind)
	if err != nil {
		writeErr(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it, err := h.Tags.Like(ctx, req.UserID, kind, req.TargetID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, likedItemJSON{
		ID: it.ID, UserID: it.UserID, Kind: string(it.Kind), TargetID: it.TargetID,
	})
}

func (h *TagsHandler) unlike(w http.ResponseWriter, r *http.Request) {
	var req likeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	kind, err := store.ParseRefKind(req.Kind)
	if err != nil {
		writeErr(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Tags.Unlike(ctx, req.UserID, kind, req.TargetID); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TagsHandler) likedBy(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing user_id"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	its, err := h.Tags.LikedBy(ctx, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]likedItemJSON, 0, len(its))
	for _, it := range its {
		out = append(out, likedItemJSON{
			ID: it.ID, UserID: it.UserID, Kind: string(it.Kind), TargetID: it.TargetID,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
