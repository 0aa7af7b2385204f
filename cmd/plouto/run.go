package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b/plouto/pkg/config"
	"github.com/b/plouto/pkg/shell"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the portal in this terminal",
		Args:  cobra.NoArgs,
		RunE:  a.runLocal,
	}
}

func (a *app) runLocal(cmd *cobra.Command, _ []string) error {
	c, err := a.coordinator()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tea.NewProgram(shell.NewModel(c),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))
	c.OnChange = shell.Redraw(p)

	flags := cmd.Root().PersistentFlags()
	go func() {
		err := config.Watch(ctx, a.cfgFile, flags, a.logger, func(cfg *config.Config) {
			c.ApplyConfig(cfg)
			c.OnChange()
		})
		if err != nil {
			a.logger.Warn("config watch disabled", zap.Error(err))
		}
	}()

	_, err = p.Run()
	return err
}
