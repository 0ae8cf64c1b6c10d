// Package listflags holds the filter flags shared by commands that print
// items.
package listflags

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/mindcache/item"
)

// Filter holds raw filter flag values.
type Filter struct {
	Type   string
	Tag    string
	Status string
	Sort   string
}

// AddFilterFlags adds --type, --tag, --status and --sort to cmd.
func AddFilterFlags(cmd *cobra.Command, target *Filter) {
	cmd.Flags().StringVar(&target.Type, "type", "all", "Item type (all, notes, todos)")
	cmd.Flags().StringVar(&target.Tag, "tag", "", "Only items with this tag")
	cmd.Flags().StringVar(&target.Status, "status", "all", "Todo status (all, completed, incomplete)")
	cmd.Flags().StringVar(&target.Sort, "sort", "recent", "Sort order (recent, due)")
}

// Parse validates the flag values. Every invalid flag is reported.
func (f Filter) Parse() (item.Filter, error) {
	var out item.Filter
	var errs []error
	var err error
	if out.Type, err = item.ParseTypeFilter(f.Type); err != nil {
		errs = append(errs, err)
	}
	if out.Status, err = item.ParseStatusFilter(f.Status); err != nil {
		errs = append(errs, err)
	}
	if out.Sort, err = item.ParseSortOrder(f.Sort); err != nil {
		errs = append(errs, err)
	}
	out.Tag = strings.TrimPrefix(strings.TrimSpace(f.Tag), "#")
	return out, errors.Join(errs...)
}
