package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/internal/termview"
	"github.com/amonks/mindcache/internal/ui"
	"github.com/amonks/mindcache/markup"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags and their colors",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var tagsColorCmd = &cobra.Command{
	Use:   "color <tag> <color>",
	Short: "Set the color of a tag",
	Long: `Set the color of a tag everywhere it appears.

The color is a palette index or name; "reset" restores the default color.
Palette: ` + paletteHelp(),
	Args: cobra.ExactArgs(2),
	RunE: runTagsColor,
}

var tagsJSON bool

type tagRow struct {
	Tag    string `json:"tag"`
	Color  int    `json:"color"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
	Count  int    `json:"count"`
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.AddCommand(tagsColorCmd)
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "Output as JSON")
}

func runTags(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	counts := map[string]int{}
	for _, it := range a.nb.Items() {
		for _, tag := range it.Tags {
			counts[tag]++
		}
	}

	colors := a.nb.Colors()
	tags := a.nb.AllTags()
	rows := make([]tagRow, 0, len(tags))
	for _, tag := range tags {
		index := colors.Index(tag)
		_, custom := colors[tag]
		rows = append(rows, tagRow{Tag: tag, Color: index, Name: markup.Palette[index].Name, Custom: custom, Count: counts[tag]})
	}

	if tagsJSON {
		return encodeJSON(cmd.OutOrStdout(), rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tags found.")
		return nil
	}

	view := a.view(cmd)
	builder := ui.NewTableBuilder([]string{"TAG", "COLOR", "ITEMS"}, len(rows))
	for _, row := range rows {
		color := strconv.Itoa(row.Color) + " " + row.Name
		if row.Custom {
			color += " *"
		}
		builder.AddRow([]string{view.Tag(row.Tag, row.Color), color, strconv.Itoa(row.Count)})
	}
	fmt.Fprint(cmd.OutOrStdout(), builder.String())
	return nil
}

func runTagsColor(cmd *cobra.Command, args []string) error {
	tag := strings.TrimPrefix(args[0], "#")
	value := strings.ToLower(strings.TrimSpace(args[1]))

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if value == "reset" {
		if err := a.nb.ResetTagColor(cmd.Context(), tag); err != nil {
			return a.check(err)
		}
		index := a.nb.Colors().Index(tag)
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s to %s\n", a.view(cmd).Tag(tag, index), markup.Palette[index].Name)
		return nil
	}

	index, err := parseColor(value)
	if err != nil {
		return err
	}
	if err := a.nb.SetTagColor(cmd.Context(), tag, index); err != nil {
		return a.check(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", a.view(cmd).Tag(tag, index), markup.Palette[index].Name)
	return nil
}

func parseColor(value string) (int, error) {
	if index, ok := markup.ColorByName(value); ok {
		return index, nil
	}
	index, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (want 0-%d or a color name)", markup.ErrInvalidColor, value, len(markup.Palette)-1)
	}
	if err := markup.ValidateColorIndex(index); err != nil {
		return 0, err
	}
	return index, nil
}

func paletteHelp() string {
	names := make([]string, len(markup.Palette))
	for i, c := range markup.Palette {
		names[i] = strconv.Itoa(i) + " " + c.Name
	}
	return strings.Join(names, ", ")
}

// tagList renders tags in their colors, separated by spaces.
func tagList(view *termview.View, colors markup.TagColors, tags []string) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = view.Tag(tag, colors.Index(tag))
	}
	return strings.Join(parts, " ")
}
