package commands

import (
	"context"
	"io"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tableflip.dev/syllabus/pkg/app"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/commands/options"
	"tableflip.dev/syllabus/pkg/logging"
	"tableflip.dev/syllabus/pkg/store"
)

var (
	oo  = &base.OutputOptions{}
	co  = &options.CatalogOptions{}
	cfg store.Config

	logCloser io.Closer
)

// interactive commands own the terminal, so their logs go to file or nowhere.
var interactive = map[string]bool{"ui": true}

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "syllabus",
		Short: base.Wrap80("Browse course catalogs of subjects, modules and topics from the terminal."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := store.LoadConfig()
			if err != nil {
				return err
			}
			cfg = c
			setup := logging.Setup
			if interactive[cmd.Name()] {
				setup = logging.Quiet
			}
			logCloser, err = setup(cfg.LogLevel(), cfg.LogFile())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddCatalogArgs(cmd, co)
	base.AddOutputArg(cmd, oo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addSubjects(topLevel)
	addModules(topLevel)
	addTopics(topLevel)
	addShow(topLevel)
	addBookmark(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func catalogSource() string {
	if co.Source != "" {
		return co.Source
	}
	if cfg != nil {
		return cfg.CatalogSource()
	}
	return ""
}

func contentStyle(flag string) string {
	if flag != "" {
		return flag
	}
	if cfg != nil {
		return cfg.ContentStyle()
	}
	return ""
}

func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.Load(ctx, catalogSource())
}

// loadService wires the catalog and, when withBookmarks is set, the bookmark
// store into an app.Service.
func loadService(ctx context.Context, withBookmarks bool) (*app.Service, error) {
	c, err := loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	svc := &app.Service{Catalog: c}
	if !withBookmarks {
		return svc, nil
	}
	p, err := store.Load(cfg)
	if err != nil {
		log.WithError(err).Warn("bookmarks unavailable")
		return svc, nil
	}
	svc.Bookmarks = p
	return svc, nil
}
