package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmpage/internal/bridge"
	"github.com/nikbrunner/bmpage/internal/config"
	"github.com/nikbrunner/bmpage/internal/page"
	"github.com/nikbrunner/bmpage/internal/storage"
	"github.com/nikbrunner/bmpage/internal/tui"
)

// env is what every subcommand needs once flags are parsed.
type env struct {
	cfg    *config.Config
	logger *logrus.Logger
	logOut io.Closer
}

func main() {
	var (
		configDir string
		e         env
	)

	rootCmd := &cobra.Command{
		Use:   "bmpage",
		Short: "Bookmarks page for the terminal",
		Long: `bmpage shows your bookmarks as a page: a drawer with actions on the left,
the current folder on the right. Drag entries with the mouse (or x/p on the
keyboard) to reorder them or move them into folders.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configDir == "" {
				dir, err := config.DefaultDir()
				if err != nil {
					return fmt.Errorf("config dir: %w", err)
				}
				configDir = dir
			}
			cfg, err := config.Load(config.New(configDir))
			if err != nil {
				return err
			}
			e.cfg = cfg
			return e.setupLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logOut != nil {
				e.logOut.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(&e)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding config.yaml (default ~/.config/bmpage)")

	rootCmd.AddCommand(
		newImportCmd(&e),
		newExportCmd(&e),
		newFindCmd(&e),
		newListCmd(&e),
		newCheckCmd(&e),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger sends logs to the configured file. The terminal belongs to the
// TUI, so nothing is logged to stderr.
func (e *env) setupLogger() error {
	logger := logrus.New()
	level, err := logrus.ParseLevel(e.cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	if err := os.MkdirAll(filepath.Dir(e.cfg.Log.File), 0755); err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(e.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	logger.SetOutput(f)

	e.logger = logger
	e.logOut = f
	return nil
}

// openStorage opens the configured backend. The returned func releases it.
func (e *env) openStorage() (storage.Storage, func(), error) {
	s, err := storage.Open(e.cfg.Storage.Backend, e.cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	release := func() {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				e.logger.WithError(err).Warn("close storage")
			}
		}
	}
	return s, release, nil
}

// runTUI runs the full interactive page.
func runTUI(e *env) error {
	store, release, err := e.openStorage()
	if err != nil {
		return err
	}
	defer release()

	local, err := bridge.NewLocal(bridge.LocalParams{
		Storage: store,
		Logger:  e.logger.WithField("component", "bridge"),
	})
	if err != nil {
		return err
	}
	notifications, unsubscribe := local.Subscribe()
	defer unsubscribe()

	ctrl := page.NewController(page.ControllerParams{
		Bridge:         local,
		PreviewWidth:   e.cfg.Page.DragPreviewWidth,
		NewFolderTitle: e.cfg.Page.NewFolderTitle,
		Logger:         e.logger.WithField("component", "page"),
	})

	app := tui.NewApp(tui.AppParams{
		Controller:    ctrl,
		Notifications: notifications,
		Logger:        e.logger.WithField("component", "tui"),
	})

	e.logger.WithFields(logrus.Fields{
		"backend": e.cfg.Storage.Backend,
		"path":    e.cfg.Storage.Path,
	}).Info("page started")

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
