package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/pageturn/internal/cliconfig"
	"github.com/bft-labs/pageturn/internal/pagefile"
	"github.com/bft-labs/pageturn/internal/session"
	"github.com/bft-labs/pageturn/pkg/log"
	"github.com/bft-labs/pageturn/pkg/pagination"
	"github.com/bft-labs/pageturn/plugins/pagewatcher"
)

const helpDescription = `
Page through an ordered collection from the terminal.

Pages come from a TOML page file or from --page flags. The cursor either
holds at the first and last page or, with --infinite, wraps around.
Configure via file ($HOME/.pageturn/config.toml), PAGETURN_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  pageturn nav --page intro --page setup --page usage next next next
  pageturn nav --pages-file book.toml --infinite last next status
  pageturn repl --pages-file book.toml --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries the configuration shared by the subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	log     *log.ZerologAdapter
}

func main() {
	a := &app{
		cfg: cliconfig.DefaultConfig(),
		log: cliconfig.Logger(zerolog.InfoLevel),
	}

	root := &cobra.Command{
		Use:           "pageturn",
		Short:         "Page through an ordered collection with clamping or wraparound",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.pageturn/config.toml)")
	pf.StringVar(&a.cfg.PagesFile, "pages-file", "", "TOML page file")
	pf.StringArrayVar(&a.cfg.Pages, "page", nil, "page title (repeatable, used when no pages file is set)")
	pf.BoolVar(&a.cfg.InfinitePages, "infinite", a.cfg.InfinitePages, "wrap around past the first and last page")
	pf.IntVar(&a.cfg.Start, "start", a.cfg.Start, "page to open on (1-based)")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")

	nav := &cobra.Command{
		Use:   "nav [commands...]",
		Short: "Run navigation commands and print each resulting page",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession(cmd, cmd.OutOrStdout(), "")
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"current"}
			}
			return runCommands(s, args)
		},
	}

	repl := &cobra.Command{
		Use:   "repl",
		Short: "Navigate pages interactively (type help for commands)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}
	repl.Flags().BoolVar(&a.cfg.Watch, "watch", a.cfg.Watch, "reload the pages file when it changes")
	repl.Flags().DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "delay before reloading a changed pages file")

	root.AddCommand(nav, repl)

	if err := root.Execute(); err != nil {
		a.log.Error("pageturn", log.Err(err))
		os.Exit(1)
	}
}

// runCommands executes nav arguments. Each argument is one command; a bare
// integer following goto, jump or peek is joined to it, so `goto 3` may be
// written as two arguments.
func runCommands(s *session.Session, args []string) error {
	for i := 0; i < len(args); i++ {
		line := args[i]
		if i+1 < len(args) && isInt(args[i+1]) && session.TakesIndex(line) {
			line += " " + args[i+1]
			i++
		}
		if err := s.Exec(line); err != nil {
			if errors.Is(err, session.ErrQuit) {
				return nil
			}
			return err
		}
	}
	return nil
}

func isInt(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// loadConfig layers file, env and flags, then validates.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, filepath.Dir(cfgFile), changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.log = cliconfig.Logger(a.cfg.Level())
	a.log.Debug("configuration", log.Any("config", a.cfg))
	return nil
}

// builder returns the page collection named by the configuration.
func (a *app) builder() (*pagination.Builder[pagefile.Page], error) {
	if a.cfg.PagesFile != "" {
		b, err := pagefile.Load(a.cfg.PagesFile)
		if err != nil {
			return nil, fmt.Errorf("load pages: %w", err)
		}
		if a.cfg.InfinitePages {
			b.SetOptions(pagination.Options{InfinitePages: true})
		}
		return b, nil
	}

	b := pagination.NewBuilder[pagefile.Page]().
		SetOptions(pagination.Options{InfinitePages: a.cfg.InfinitePages})
	for _, title := range a.cfg.Pages {
		b.AddPage(pagefile.Page{Title: title})
	}
	return b, nil
}

func (a *app) cursorOptions() []pagination.Option {
	return []pagination.Option{
		pagination.WithLogger(a.log),
		pagination.WithHumanStartIndex(a.cfg.Start),
	}
}

func (a *app) newSession(cmd *cobra.Command, out io.Writer, prompt string) (*session.Session, error) {
	if err := a.loadConfig(cmd); err != nil {
		return nil, err
	}
	b, err := a.builder()
	if err != nil {
		return nil, err
	}
	cur, err := b.Build(a.cursorOptions()...)
	if err != nil {
		return nil, err
	}
	return session.New(cur, out,
		session.WithLogger(a.log),
		session.WithPrompt(prompt),
	), nil
}

func (a *app) runREPL(cmd *cobra.Command) error {
	s, err := a.newSession(cmd, cmd.OutOrStdout(), "> ")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.Watch {
		w := pagewatcher.New(pagewatcher.Config{
			Path:          a.cfg.PagesFile,
			DebounceDelay: a.cfg.Debounce,
		}, func(b *pagination.Builder[pagefile.Page]) error {
			if a.cfg.InfinitePages {
				b.SetOptions(pagination.Options{InfinitePages: true})
			}
			return s.Reload(b, pagination.WithLogger(a.log))
		}, a.log)

		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("start page watcher: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := w.Shutdown(shutdownCtx); err != nil {
				a.log.Warn("page watcher shutdown", log.Err(err))
			}
		}()
	}

	if err := s.Run(ctx, cmd.InOrStdin()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
