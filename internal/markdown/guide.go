package markdown

// Guide documents the notebook markup.
const Guide = `# Notebook markup

## Notes and todos

Anything you add is a note. Start the first line with ` + "`[]`" + ` to make a
todo, or ` + "`[x]`" + ` for one that is already done.

Below a todo's first line:

- ` + "`[] pack bags`" + ` adds a subtask; ` + "`[x]`" + ` marks it done
- ` + "`- called the hotel`" + ` adds a sub-note stamped with the time you wrote it

A todo with subtasks is complete when every subtask is.

## Inline markup

- ` + "`#tag`" + ` tags an entry; tags get a color you can change with ` + "`mc tags color`" + `
- ` + "`@10/14`" + `, ` + "`@10/14/26`" + ` or ` + "`@10/14/2026`" + ` sets a due date; past dates show as overdue
- ` + "`**bold**`" + ` or ` + "`__bold__`" + `
- ` + "`*italic*`" + ` and ` + "`_underline_`" + `
- links such as ` + "`https://example.com`" + ` or ` + "`example.com`" + ` are clickable

## Layout

If any line starts with ` + "`- `" + `, every line is shown as a bullet. Otherwise
each line is its own paragraph and blank lines are kept.
`

// RenderGuide renders Guide for a terminal of the given width.
func RenderGuide(width int) string {
	return string(SafeRender(width, 0, []byte(Guide)))
}
