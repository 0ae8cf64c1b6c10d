package web

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/amonks/mindcache/internal/listflags"
	"github.com/amonks/mindcache/internal/logging"
	internalstrings "github.com/amonks/mindcache/internal/strings"
	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/markup"
)

// Target prefixes for the two panes of the page.
const (
	leftTarget  = "left-"
	rightTarget = "right-"
)

// filterKeys are the query parameters that survive a form submission.
var filterKeys = []string{"type", "tag", "status", "sort"}

// Options configures the web handler.
type Options struct {
	// Logger receives request and store failure logs. Defaults to a
	// discarding logger.
	Logger log.FieldLogger
}

// Handler serves the notebook web view and its JSON API.
type Handler struct {
	nb        *item.Notebook
	logger    log.FieldLogger
	router    chi.Router
	templates *templateWrapper

	mu    sync.Mutex
	flash *flash
}

// flash carries a failed submission to the next page load.
type flash struct {
	err   string
	input string
	// editID names the item whose edit failed. Its form reopens with input.
	editID string
}

// NewHandler creates a web handler for nb.
func NewHandler(nb *item.Notebook, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	handler := &Handler{
		nb:        nb,
		logger:    logger,
		templates: newTemplateWrapper(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/", handler.handlePage)
	r.Post("/items", handler.handleAdd)
	r.Route("/items/{id}", func(r chi.Router) {
		r.Post("/edit", handler.handleEdit)
		r.Post("/toggle", handler.handleToggle)
		r.Post("/subtasks/{index}/toggle", handler.handleToggleSubtask)
		r.Post("/delete", handler.handleDelete)
	})
	r.Post("/tags/{tag}/color", handler.handleTagColor)

	r.Route("/api", func(r chi.Router) {
		r.Get("/items", handler.handleAPIItems)
		r.Get("/items/{id}", handler.handleAPIItem)
		r.Get("/items/{id}/render", handler.handleAPIRender)
		r.Get("/tags", handler.handleAPITags)
		r.Get("/tags/suggest", handler.handleAPISuggest)
	})
	handler.router = r
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Watch refreshes the notebook on every event from w until ctx is done or
// the watcher stops. Refresh failures are logged and the previous items kept.
func (h *Handler) Watch(ctx context.Context, w item.Watcher) error {
	events, err := w.Watch(ctx, h.nb.Owner())
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := h.nb.Refresh(ctx); err != nil {
				logging.StoreFailure(h.logger, "refresh", err)
			}
		}
	}
}

func requestLogger(logger log.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.WithFields(log.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start).Round(time.Microsecond),
			}).Debug("request")
		})
	}
}

type templateWrapper struct {
	tmpl *template.Template
}

func newTemplateWrapper() *templateWrapper {
	return &templateWrapper{tmpl: newTemplates()}
}

func (tw *templateWrapper) Render(w http.ResponseWriter, data *pageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tw.tmpl.ExecuteTemplate(w, "page", data)
}

type selectOption struct {
	Value string
	Label string
}

type itemView struct {
	Item      item.Item
	Rendering item.Rendering
	Editing   bool
	EditText  string
}

type pageData struct {
	Owner   string
	Error   string
	Input   string
	Return  string
	All     []itemView
	Shown   []itemView
	Tags    []string
	Filter  item.Filter
	Palette []markup.Color

	TypeOptions   []selectOption
	StatusOptions []selectOption
	SortOptions   []selectOption

	query  url.Values
	picker string
}

// PickerHref links to the page with the picker for key open, or closed when
// it is already open.
func (p *pageData) PickerHref(key string) string {
	values := cloneValues(p.query)
	if p.picker != key {
		values.Set("picker", key)
	}
	return pageURL(values)
}

// EditHref links to the page with the edit form for id open.
func (p *pageData) EditHref(id string) string {
	values := cloneValues(p.query)
	values.Set("edit", id)
	return pageURL(values)
}

// CancelHref links to the page without an open form or picker.
func (p *pageData) CancelHref() string {
	return pageURL(p.query)
}

// PickerOpen reports whether the picker for key is open.
func (p *pageData) PickerOpen(key string) bool {
	return p.picker != "" && p.picker == key
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	query := filterValues(r.URL.Query())
	data := &pageData{
		Owner:         h.nb.Owner(),
		Return:        query.Encode(),
		Tags:          h.nb.AllTags(),
		Palette:       markup.Palette,
		TypeOptions:   typeOptions(),
		StatusOptions: statusOptions(),
		SortOptions:   sortOptions(),
		query:         query,
		picker:        trimmedQueryValue(r, "picker"),
	}

	editID := trimmedQueryValue(r, "edit")
	editText, hasEditText := "", false
	if f := h.takeFlash(); f != nil {
		data.Error = f.err
		if f.editID != "" {
			editID, editText, hasEditText = f.editID, f.input, true
		} else {
			data.Input = f.input
		}
	}

	filter, err := filterFromValues(query)
	if err != nil && data.Error == "" {
		data.Error = err.Error()
	}
	data.Filter = filter

	for _, it := range h.nb.Items() {
		view := itemView{Item: it, Rendering: h.nb.Render(it, leftTarget+it.ID)}
		if it.ID == editID {
			view.Editing = true
			view.EditText = item.EditableText(it)
			if hasEditText {
				view.EditText = editText
			}
		}
		data.All = append(data.All, view)
	}
	for _, it := range h.nb.Filtered(filter) {
		data.Shown = append(data.Shown, itemView{Item: it, Rendering: h.nb.Render(it, rightTarget+it.ID)})
	}

	if err := h.templates.Render(w, data); err != nil {
		h.logger.WithError(err).Warn("render page")
	}
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("text")
	if _, err := h.nb.Add(r.Context(), text); err != nil {
		h.fail(w, r, "insert item", err, &flash{input: text})
		return
	}
	h.redirect(w, r)
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	it, err := h.nb.Item(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "update item", err, nil)
		return
	}
	text := r.FormValue("text")
	if _, err := h.nb.Edit(r.Context(), it.ID, text); err != nil {
		h.fail(w, r, "update item", err, &flash{input: text, editID: it.ID})
		return
	}
	h.redirect(w, r)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	if _, err := h.nb.Toggle(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "toggle item", err, nil)
		return
	}
	h.redirect(w, r)
}

func (h *Handler) handleToggleSubtask(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.fail(w, r, "toggle subtask", item.ErrSubtaskNotFound, nil)
		return
	}
	if _, err := h.nb.ToggleSubtask(r.Context(), chi.URLParam(r, "id"), index); err != nil {
		h.fail(w, r, "toggle subtask", err, nil)
		return
	}
	h.redirect(w, r)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.nb.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete item", err, nil)
		return
	}
	h.redirect(w, r)
}

// handleTagColor assigns a palette color to a tag. The color "reset"
// restores the default.
func (h *Handler) handleTagColor(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	value := trimmedFormValue(r, "color")
	if value == "reset" {
		if err := h.nb.ResetTagColor(r.Context(), tag); err != nil {
			h.fail(w, r, "set tag colors", err, nil)
			return
		}
		h.redirect(w, r)
		return
	}
	color, err := strconv.Atoi(value)
	if err != nil {
		color = -1
	}
	if err := h.nb.SetTagColor(r.Context(), tag, color); err != nil {
		h.fail(w, r, "set tag colors", err, nil)
		return
	}
	h.redirect(w, r)
}

// fail keeps err and f for the next page load and redirects back. Store
// failures are logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error, f *flash) {
	if item.IsStoreError(err) {
		logging.StoreFailure(h.logger, op, err)
	}
	if f == nil {
		f = &flash{}
	}
	f.err = err.Error()
	h.mu.Lock()
	h.flash = f
	h.mu.Unlock()
	h.redirect(w, r)
}

func (h *Handler) takeFlash() *flash {
	h.mu.Lock()
	defer h.mu.Unlock()
	f := h.flash
	h.flash = nil
	return f
}

// redirect sends the browser back to the page, keeping the filters named
// by the form's "return" field.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request) {
	values, err := url.ParseQuery(r.FormValue("return"))
	if err != nil {
		values = url.Values{}
	}
	http.Redirect(w, r, pageURL(filterValues(values)), http.StatusSeeOther)
}

func filterFromValues(values url.Values) (item.Filter, error) {
	return listflags.Filter{
		Type:   values.Get("type"),
		Tag:    values.Get("tag"),
		Status: values.Get("status"),
		Sort:   values.Get("sort"),
	}.Parse()
}

// filterValues keeps only the non-empty filter parameters.
func filterValues(values url.Values) url.Values {
	out := url.Values{}
	for _, key := range filterKeys {
		if value := internalstrings.TrimSpace(values.Get(key)); value != "" {
			out.Set(key, value)
		}
	}
	return out
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values)+1)
	for key, value := range values {
		out[key] = append([]string(nil), value...)
	}
	return out
}

func pageURL(values url.Values) string {
	if len(values) == 0 {
		return "/"
	}
	return "/?" + values.Encode()
}

func typeOptions() []selectOption {
	return []selectOption{
		{Value: string(item.TypeFilterAll), Label: "All"},
		{Value: string(item.TypeFilterNotes), Label: "Notes"},
		{Value: string(item.TypeFilterTodos), Label: "Todos"},
	}
}

func statusOptions() []selectOption {
	return []selectOption{
		{Value: string(item.StatusFilterAll), Label: "Any status"},
		{Value: string(item.StatusFilterIncomplete), Label: "Incomplete"},
		{Value: string(item.StatusFilterCompleted), Label: "Completed"},
	}
}

func sortOptions() []selectOption {
	return []selectOption{
		{Value: string(item.SortRecent), Label: "Most recent"},
		{Value: string(item.SortDue), Label: "Due date"},
	}
}

func trimmedQueryValue(r *http.Request, key string) string {
	return internalstrings.TrimSpace(r.URL.Query().Get(key))
}

func trimmedFormValue(r *http.Request, key string) string {
	return internalstrings.TrimSpace(r.FormValue(key))
}
