package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scato3/devlog"
	"github.com/scato3/devlog/metadata"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleDraft = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
)

// cli holds state shared by every command.
type cli struct {
	out    io.Writer
	logger *log.Logger
}

func newCLI(out, errOut io.Writer) *cli {
	return &cli{
		out: out,
		logger: log.NewWithOptions(errOut, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "devlog",
		Short:        "devlog serves and manages the hyunsu.dev blog",
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.postsCommand())
	root.AddCommand(c.metaCommand())
	root.AddCommand(c.versionCommand())
	return root
}

// app builds an App from the environment so every command sees the same
// defaults as the server.
func (c *cli) app(opts ...devlog.Option) *devlog.App {
	return devlog.New(devlog.ConfigFromEnv(), append([]devlog.Option{devlog.WithLogger(c.logger)}, opts...)...)
}

func (c *cli) openStore() (*devlog.Store, devlog.SiteConfig, error) {
	cfg := c.app().Config
	store, err := devlog.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open %s: %w", cfg.DatabasePath, err)
	}
	return store, cfg, nil
}

func (c *cli) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := c.app()
			if addr != "" {
				app.Config.Addr = addr
			}
			defer app.Close()
			return app.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ADDR)")
	return cmd
}

func (c *cli) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Load markdown posts from a directory into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			im := &devlog.Importer{Store: store, StaticDir: cfg.StaticDir, Log: c.logger}
			res, err := im.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s %d published, %d drafts, %d covers\n",
				styleOK.Render("✓"), res.Posts, res.Drafts, res.Covers)
			return nil
		},
	}
}

func (c *cli) postsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect and remove stored posts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every post, drafts included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			posts, err := store.ListAllPosts(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range posts {
				state := ""
				if !p.Published {
					state = " " + styleDraft.Render("draft")
				}
				fmt.Fprintf(c.out, "%s  %s %s%s\n",
					styleDim.Render(p.Date), styleTitle.Render(p.Slug), p.Title, state)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <slug>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			deleted, err := store.DeletePost(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("post %q not found", args[0])
			}
			c.logger.Info("deleted", "slug", args[0])
			return nil
		},
	})
	return cmd
}

func (c *cli) metaCommand() *cobra.Command {
	var in metadata.Input
	var label1, label2 string
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Print the page metadata for the given input as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Label1, err = parseLabel(label1); err != nil {
				return err
			}
			if in.Label2, err = parseLabel(label2); err != nil {
				return err
			}
			site := metadata.Default
			site.Origin = c.app().Config.URL
			enc := json.NewEncoder(c.out)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(site.Build(in))
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "page title")
	cmd.Flags().StringVar(&in.Description, "description", "", "page description")
	cmd.Flags().StringVar(&in.Path, "path", "", "page path, e.g. /blog/hello")
	cmd.Flags().StringVar(&in.Image, "image", "", "preview image path or URL")
	cmd.Flags().StringVar(&label1, "label1", "", "first twitter label as name=data")
	cmd.Flags().StringVar(&label2, "label2", "", "second twitter label as name=data")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

// parseLabel reads "name=data". Numeric data is kept as a number so the
// JSON output shows what a caller passing a number would get.
func parseLabel(s string) (*metadata.Label, error) {
	if s == "" {
		return nil, nil
	}
	name, data, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return nil, fmt.Errorf("label %q: want name=data", s)
	}
	l := &metadata.Label{Name: name}
	switch {
	case data == "":
	case isInt(data):
		n, _ := strconv.ParseInt(data, 10, 64)
		l.Data = n
	default:
		if f, err := strconv.ParseFloat(data, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			l.Data = f
		} else {
			l.Data = data
		}
	}
	return l, nil
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the devlog version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.out, "devlog %s\n", version)
		},
	}
}
