package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amonks/mindcache/internal/logging"
	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/markup"
)

type apiError struct {
	Error string `json:"error"`
}

type tagEntry struct {
	Tag    string `json:"tag"`
	Color  int    `json:"color"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

func (h *Handler) handleAPIItems(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromValues(r.URL.Query())
	if err != nil {
		h.writeError(w, "list items", err)
		return
	}
	items := h.nb.Filtered(filter)
	if items == nil {
		items = []item.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleAPIItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.nb.Item(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "get item", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// handleAPIRender returns the rendering of one item for the target named by
// the "target" query parameter.
func (h *Handler) handleAPIRender(w http.ResponseWriter, r *http.Request) {
	it, err := h.nb.Item(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "render item", err)
		return
	}
	target := trimmedQueryValue(r, "target")
	if target == "" {
		target = item.DefaultTarget
	}
	writeJSON(w, http.StatusOK, h.nb.Render(it, target))
}

func (h *Handler) handleAPITags(w http.ResponseWriter, r *http.Request) {
	colors := h.nb.Colors()
	tags := h.nb.AllTags()
	entries := make([]tagEntry, 0, len(tags))
	for _, tag := range tags {
		index := colors.Index(tag)
		_, custom := colors[tag]
		entries = append(entries, tagEntry{
			Tag:    tag,
			Color:  index,
			Name:   markup.Palette[index].Name,
			Custom: custom,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleAPISuggest completes the #tag fragment before "cursor" in "input".
// A missing cursor means the end of the input.
func (h *Handler) handleAPISuggest(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	cursor := len(input)
	if raw := internalstrings.TrimSpace(r.URL.Query().Get("cursor")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > len(input) {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "cursor must be a byte offset within input"})
			return
		}
		cursor = parsed
	}
	suggestions := item.TagSuggestions(input, cursor, h.nb.AllTags())
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logging.StoreFailure(h.logger, op, err)
	}
	writeJSON(w, status, apiError{Error: err.Error()})
}

func errorStatus(err error) int {
	var storeErr *item.StoreError
	switch {
	case errors.As(err, &storeErr):
		return http.StatusBadGateway
	case errors.Is(err, item.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, item.ErrAmbiguousItemIDPrefix):
		return http.StatusConflict
	case errors.Is(err, item.ErrEmptyText),
		errors.Is(err, item.ErrNotTodo),
		errors.Is(err, item.ErrStatusDerived),
		errors.Is(err, item.ErrSubtaskNotFound),
		errors.Is(err, item.ErrInvalidColor),
		errors.Is(err, item.ErrInvalidFilter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
