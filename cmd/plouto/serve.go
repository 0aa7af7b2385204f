package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/b/plouto/pkg/config"
	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/shell"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Share one portal session with attached renderers",
		Long: `Serve owns the portal session and renders it for every renderer that
attaches to its socket. All renderers see the same session; each gets
frames sized to its own terminal.`,
		Args: cobra.NoArgs,
		RunE: a.serve,
	}
}

func (a *app) serve(cmd *cobra.Command, _ []string) error {
	c, err := a.coordinator()
	if err != nil {
		return err
	}

	server := daemon.NewServer(a.cfg.Daemon.Session, a.logger)
	server.OnRenderNeeded = func(clientID string, width, height int) *daemon.RenderPayload {
		defer a.recoverAndLog("render", clientID)
		return c.Render(width, height)
	}
	server.OnInput = func(clientID string, input *daemon.InputPayload) {
		defer a.recoverAndLog("input", clientID)
		c.HandleInput(clientID, input)
		// Re-render all clients with fresh state
		server.BroadcastRender()
	}
	server.OnSubscribe = func(clientID string, info daemon.ClientInfo) {
		// Frames are shared, so render for the least capable terminal.
		profile := server.MinColorProfile()
		lipgloss.SetColorProfile(colorProfile(profile))
		a.logger.Debug("color profile", zap.String("client_id", clientID), zap.String("profile", profile))
	}
	c.OnChange = server.BroadcastRender

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(ctx)
	})
	flags := cmd.Root().PersistentFlags()
	g.Go(func() error {
		err := config.Watch(ctx, a.cfgFile, flags, a.logger, func(cfg *config.Config) {
			c.ApplyConfig(cfg)
			server.BroadcastRender()
		})
		if err != nil {
			a.logger.Warn("config watch disabled", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		return animate(ctx, c, server)
	})

	a.logger.Info("serving", zap.String("socket", server.SocketPath()), zap.Int("pid", os.Getpid()))
	return g.Wait()
}

// animate advances spinners while the session has work in flight.
func animate(ctx context.Context, c *shell.Coordinator, server *daemon.Server) error {
	ticker := time.NewTicker(c.TickInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if c.Tick() {
				server.BroadcastRender()
			}
		}
	}
}

func colorProfile(name string) termenv.Profile {
	switch name {
	case "Ascii":
		return termenv.Ascii
	case "ANSI":
		return termenv.ANSI
	case "TrueColor":
		return termenv.TrueColor
	default:
		return termenv.ANSI256
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.Ascii:
		return "Ascii"
	case termenv.ANSI:
		return "ANSI"
	case termenv.TrueColor:
		return "TrueColor"
	default:
		return "ANSI256"
	}
}
