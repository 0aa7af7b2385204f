package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b/plouto/pkg/config"
	"github.com/b/plouto/pkg/i18n"
	"github.com/b/plouto/pkg/logging"
	"github.com/b/plouto/pkg/menu"
	"github.com/b/plouto/pkg/paths"
	"github.com/b/plouto/pkg/perf"
	"github.com/b/plouto/pkg/shell"
)

// app is what every subcommand shares once the root has loaded it.
type app struct {
	cfgFile  string
	cfg      *config.Config
	logger   *zap.Logger
	closeLog func()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "plouto",
		Short: "Plouto5 logistics portal shell",
		Long: `plouto is a role-aware navigation shell for the Plouto5 logistics portal.

Without a subcommand it runs the portal in this terminal. "plouto serve"
shares one session over a unix socket and "plouto attach" connects to it.`,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
		RunE:          a.runLocal,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", paths.ConfigPath(), "config file")
	pf.String("layout", "", "force a layout (sidebar|topbar)")
	pf.String("icons", "", "icon style (nerd|emoji|ascii)")
	pf.String("theme", "", "color theme")
	pf.String("lang", "", "interface language (en|zh)")
	pf.String("registry", "", "menu registry YAML file")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-file", "", "log file path")
	pf.String("session", "", "shared session name")

	_ = root.RegisterFlagCompletionFunc("layout", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"sidebar", "topbar"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("lang", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"en", "zh"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newAttachCmd(a))
	root.AddCommand(newMenuCmd(a))
	root.AddCommand(newConfigCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	// Skip config loading for help and completion commands
	if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
		return nil
	}
	cfg, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog
	perf.SetLogger(logger)
	logger.Debug("config loaded", zap.String("path", a.cfgFile))
	return nil
}

// registry loads registry.path, else registry.yaml next to the config,
// else the built-in registry.
func (a *app) registry() (menu.Forest, error) {
	path := a.cfg.Registry.Path
	if path == "" {
		if _, err := os.Stat(paths.RegistryPath()); err != nil {
			return menu.Default(), nil
		}
		path = paths.RegistryPath()
	}
	a.logger.Debug("loading registry", zap.String("path", path))
	return menu.Load(path)
}

func (a *app) coordinator() (*shell.Coordinator, error) {
	registry, err := a.registry()
	if err != nil {
		return nil, err
	}
	tr, err := i18n.New()
	if err != nil {
		return nil, err
	}
	return shell.New(shell.Options{
		Config:     a.cfg,
		Registry:   registry,
		Translator: tr,
		Logger:     a.logger,
	}), nil
}

// recoverAndLog keeps one bad frame or input from taking the session down.
func (a *app) recoverAndLog(context, clientID string) {
	if r := recover(); r != nil {
		a.logger.Error("panic recovered",
			zap.String("context", context),
			zap.String("client_id", clientID),
			zap.Any("panic", r),
			zap.Stack("stack"))
	}
}
