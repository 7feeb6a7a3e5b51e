// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// CatalogOptions selects the catalog source for a command tree.
type CatalogOptions struct {
	Source string
}

// AddCatalogArgs registers --catalog as a persistent flag.
func AddCatalogArgs(cmd *cobra.Command, o *CatalogOptions) {
	cmd.PersistentFlags().StringVar(&o.Source, "catalog", "",
		`Catalog file or http(s) URL. Defaults to the configured catalog, then the built-in one.`)
}

// StyleOptions selects the glamour style used for lesson content.
type StyleOptions struct {
	Style string
	Width int
}

func AddStyleArgs(cmd *cobra.Command, o *StyleOptions) {
	cmd.Flags().StringVar(&o.Style, "style", "",
		`Content style: auto, dark, light, notty. Defaults to the configured style.`)
}

func AddWidthArgs(cmd *cobra.Command, o *StyleOptions) {
	cmd.Flags().IntVarP(&o.Width, "width", "w", 80,
		"Wrap width for rendered content.")
}
