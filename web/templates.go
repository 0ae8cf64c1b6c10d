package web

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/amonks/mindcache/internal/ui"
	"github.com/amonks/mindcache/markup"
)

// nodeList is the dot value of the "nodes" template.
type nodeList struct {
	Nodes []markup.Node
	Page  *pageData
}

// nodeView is the dot value of the "node" and "picker" templates.
type nodeView struct {
	Node markup.Node
	Page *pageData
}

// itemContext is the dot value of the "item" template. Only editable items get
// edit and delete controls.
type itemContext struct {
	View     itemView
	Page     *pageData
	Editable bool
}

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"nodes": func(nodes []markup.Node, page *pageData) nodeList { return nodeList{Nodes: nodes, Page: page} },
		"node":  func(node markup.Node, page *pageData) nodeView { return nodeView{Node: node, Page: page} },
		"itemContext": func(view itemView, page *pageData, editable bool) itemContext {
			return itemContext{View: view, Page: page, Editable: editable}
		},
		"formatTime": ui.FormatTimestamp,
		"paletteCSS": paletteCSS,
	}
	return template.Must(template.New("mindcache").Funcs(funcs).Parse(pageTemplate))
}

// paletteCSS returns one rule per palette entry, ".tag-N" for badges and
// ".swatch-N" for picker buttons.
func paletteCSS() template.CSS {
	var b strings.Builder
	for i, c := range markup.Palette {
		fmt.Fprintf(&b, ".tag-%d, .swatch-%d { color: %s; background: %s; border-color: %s; }\n",
			i, i, c.Foreground, c.Background, c.Border)
	}
	return template.CSS(b.String())
}

const pageTemplate = `{{define "node"}}{{with .Node}}
{{- if eq .Kind "tag"}}<a class="tag tag-{{.Color}}" href="{{$.Page.PickerHref .Key}}" data-key="{{.Key}}">#{{.Tag}}</a>
{{- if $.Page.PickerOpen .Key}}{{template "picker" $}}{{end}}
{{- else if eq .Kind "date"}}<span class="date{{if .Overdue}} overdue{{end}}" title="{{.Date}}">{{.Text}}</span>
{{- else if eq .Kind "link"}}{{if .Strong}}<strong>{{end}}<a href="{{.Href}}" target="_blank" rel="noopener">{{.Text}}</a>{{if .Strong}}</strong>{{end}}
{{- else if eq .Kind "bold"}}<strong>{{.Text}}</strong>
{{- else if eq .Kind "italic"}}{{if .Strong}}<strong>{{end}}<em>{{.Text}}</em>{{if .Strong}}</strong>{{end}}
{{- else if eq .Kind "underline"}}{{if .Strong}}<strong>{{end}}<u>{{.Text}}</u>{{if .Strong}}</strong>{{end}}
{{- else}}{{.Text}}{{end}}
{{- end}}{{end}}

{{define "nodes"}}{{$page := .Page}}{{range .Nodes}}{{template "node" (node . $page)}}{{end}}{{end}}

{{define "picker"}}<span class="picker">
  {{- range $i, $c := $.Page.Palette}}
  <form method="post" action="/tags/{{$.Node.Tag}}/color">
    <input type="hidden" name="return" value="{{$.Page.Return}}">
    <button class="swatch swatch-{{$i}}" name="color" value="{{$i}}" title="{{$c.Name}}">{{$i}}</button>
  </form>
  {{- end}}
  <form method="post" action="/tags/{{$.Node.Tag}}/color">
    <input type="hidden" name="return" value="{{$.Page.Return}}">
    <button class="swatch" name="color" value="reset">reset</button>
  </form>
  <a class="muted" href="{{$.Page.CancelHref}}">close</a>
</span>{{end}}

{{define "item"}}{{$page := .Page}}{{with .View}}
<li class="item {{.Item.Type}}{{if eq .Item.Status "completed"}} completed{{end}}{{if .Rendering.Overdue}} overdue-item{{end}}" id="{{.Rendering.Target}}">
  <div class="item-row">
    {{- if .Item.IsTodo}}
    <form method="post" action="/items/{{.Item.ID}}/toggle" class="inline">
      <input type="hidden" name="return" value="{{$page.Return}}">
      <button class="check" {{if .Item.HasSubtasks}}disabled title="status follows the subtasks"{{end}}>{{if eq .Item.Status "completed"}}&#x2611;{{else}}&#x2610;{{end}}</button>
    </form>
    {{- end}}
    <div class="item-body">
      {{- range .Rendering.Lines}}
        {{- if eq .Kind "spacer"}}<div class="spacer"></div>
        {{- else if eq .Kind "bullet"}}<div class="line bullet">&bull; {{template "nodes" (nodes .Nodes $page)}}</div>
        {{- else}}<div class="line {{.Kind}}">{{template "nodes" (nodes .Nodes $page)}}</div>
        {{- end}}
      {{- end}}
      {{- if .Rendering.Subtasks}}
      <ol class="subtasks">
        {{- range .Rendering.Subtasks}}
        <li class="{{if .Completed}}completed{{end}}">
          <form method="post" action="/items/{{$.View.Item.ID}}/subtasks/{{.Index}}/toggle" class="inline">
            <input type="hidden" name="return" value="{{$page.Return}}">
            <button class="check">{{if .Completed}}&#x2611;{{else}}&#x2610;{{end}}</button>
          </form>
          {{template "nodes" (nodes .Nodes $page)}}
        </li>
        {{- end}}
      </ol>
      {{- end}}
      {{- if .Rendering.Notes}}
      <ul class="notes">
        {{- range .Rendering.Notes}}
        <li>{{template "nodes" (nodes .Nodes $page)}} <span class="item-meta">{{formatTime .Timestamp}}</span></li>
        {{- end}}
      </ul>
      {{- end}}
      <div class="item-meta">{{formatTime .Item.Timestamp}}{{if .Item.DueDate}} &middot; due {{.Item.DueDate}}{{end}}</div>
    </div>
  </div>
  {{- if $.Editable}}
  <div class="item-actions">
    {{- if .Editing}}
    <form method="post" action="/items/{{.Item.ID}}/edit" class="edit">
      <input type="hidden" name="return" value="{{$page.Return}}">
      <textarea name="text" aria-label="Edit item">{{.EditText}}</textarea>
      <div class="actions">
        <button>Save</button>
        <a class="muted" href="{{$page.CancelHref}}">Cancel</a>
      </div>
    </form>
    {{- else}}
    <a class="button-link" href="{{$page.EditHref .Item.ID}}">Edit</a>
    <form method="post" action="/items/{{.Item.ID}}/delete" class="inline">
      <input type="hidden" name="return" value="{{$page.Return}}">
      <button class="danger">Delete</button>
    </form>
    {{- end}}
  </div>
  {{- end}}
</li>{{end}}{{end}}

{{define "page"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>mindcache</title>
  <style>
    :root {
      color-scheme: light;
    }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: radial-gradient(circle at top left, #f4efe3 0%, #fcfaf6 55%, #f6f2e8 100%);
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
      background: rgba(255, 255, 255, 0.72);
    }
    header h1 {
      margin: 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    main {
      display: flex;
      gap: 24px;
      padding: 24px;
    }
    .pane {
      flex: 1;
      min-width: 0;
      background: #fffdf9;
      border: 1px solid #e0d6c6;
      border-radius: 12px;
      padding: 16px;
    }
    .item-list {
      list-style: none;
      padding: 0;
      margin: 0;
      display: flex;
      flex-direction: column;
      gap: 8px;
    }
    .item {
      padding: 10px 12px;
      border-radius: 10px;
      border: 1px solid #eee5d8;
    }
    .item.completed .item-body > .line {
      text-decoration: line-through;
      color: #8a8077;
    }
    .item-row {
      display: flex;
      gap: 8px;
    }
    .item-body {
      flex: 1;
    }
    .item-meta, .muted {
      color: #72685f;
      font-size: 12px;
    }
    .spacer {
      height: 0.6em;
    }
    .tag {
      display: inline-block;
      padding: 0 6px;
      border: 1px solid;
      border-radius: 999px;
      text-decoration: none;
      font-size: 13px;
    }
    .date {
      color: #5b5148;
      font-style: italic;
    }
    .date.overdue {
      color: #b91c1c;
      font-weight: 600;
    }
    .picker {
      display: inline-flex;
      flex-wrap: wrap;
      gap: 4px;
      margin-left: 6px;
      vertical-align: middle;
    }
    .swatch {
      border: 1px solid;
      min-width: 24px;
    }
    {{paletteCSS}}
    .subtasks, .notes {
      margin: 6px 0;
      padding-left: 20px;
    }
    .subtasks li.completed {
      text-decoration: line-through;
      color: #8a8077;
    }
    form.inline {
      display: inline;
    }
    .filters {
      display: flex;
      flex-wrap: wrap;
      gap: 8px;
      margin-bottom: 12px;
    }
    select,
    textarea {
      padding: 6px 8px;
      border-radius: 8px;
      border: 1px solid #cbbfae;
      font-family: inherit;
      font-size: 14px;
      background: #fffdf9;
      box-sizing: border-box;
    }
    textarea {
      width: 100%;
      min-height: 90px;
      resize: vertical;
    }
    .actions, .item-actions {
      display: flex;
      flex-wrap: wrap;
      align-items: center;
      gap: 10px;
      margin-top: 8px;
    }
    button {
      padding: 4px 10px;
      border-radius: 8px;
      border: 1px solid #bfb3a2;
      background: #efe6d7;
      font-family: inherit;
      cursor: pointer;
    }
    button.check {
      background: none;
      border: none;
      font-size: 18px;
      padding: 0;
    }
    button.danger {
      background: #f4d7d2;
      border-color: #d7a7a1;
    }
    .error {
      padding: 10px 12px;
      border-radius: 8px;
      background: #f7d9d6;
      border: 1px solid #d9a7a2;
      margin: 16px 24px 0;
      color: #5b1d17;
    }
    @media (max-width: 900px) {
      main {
        flex-direction: column;
      }
    }
  </style>
</head>
<body>
  <header>
    <h1>mindcache <span class="muted">{{.Owner}}</span></h1>
  </header>
  {{- if .Error}}
  <div class="error" role="alert">{{.Error}}</div>
  {{- end}}
  <main>
    <section class="pane" id="all">
      <form method="post" action="/items" class="composer">
        <input type="hidden" name="return" value="{{.Return}}">
        <textarea name="text" placeholder="[] a todo, a note, #tags and @10/14" aria-label="New item">{{.Input}}</textarea>
        <div class="actions">
          <button>Add</button>
          <span class="muted">{{len .All}} items</span>
        </div>
      </form>
      <ul class="item-list">
        {{- range .All}}
        {{template "item" (itemContext . $ true)}}
        {{- else}}
        <li class="muted">Nothing here yet.</li>
        {{- end}}
      </ul>
    </section>
    <section class="pane" id="filtered">
      <form method="get" action="/" class="filters">
        <select name="type" aria-label="Type">
          {{- range .TypeOptions}}
          <option value="{{.Value}}" {{if eq .Value (printf "%s" $.Filter.Type)}}selected{{end}}>{{.Label}}</option>
          {{- end}}
        </select>
        <select name="tag" aria-label="Tag">
          <option value="">Any tag</option>
          {{- range .Tags}}
          <option value="{{.}}" {{if eq . $.Filter.Tag}}selected{{end}}>#{{.}}</option>
          {{- end}}
        </select>
        <select name="status" aria-label="Status">
          {{- range .StatusOptions}}
          <option value="{{.Value}}" {{if eq .Value (printf "%s" $.Filter.Status)}}selected{{end}}>{{.Label}}</option>
          {{- end}}
        </select>
        <select name="sort" aria-label="Sort">
          {{- range .SortOptions}}
          <option value="{{.Value}}" {{if eq .Value (printf "%s" $.Filter.Sort)}}selected{{end}}>{{.Label}}</option>
          {{- end}}
        </select>
        <button>Apply</button>
      </form>
      <ul class="item-list">
        {{- range .Shown}}
        {{template "item" (itemContext . $ false)}}
        {{- else}}
        <li class="muted">No items match.</li>
        {{- end}}
      </ul>
    </section>
  </main>
</body>
</html>
{{end}}`
