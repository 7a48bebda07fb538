package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/matheus3301/papirus/internal/bus"
	"github.com/matheus3301/papirus/internal/config"
	"github.com/matheus3301/papirus/internal/highlight"
	"github.com/matheus3301/papirus/internal/logging"
	"github.com/matheus3301/papirus/internal/status"
	"github.com/matheus3301/papirus/internal/transport"
	"github.com/matheus3301/papirus/internal/tui/keys"
	"github.com/matheus3301/papirus/internal/tui/ui"
	"github.com/matheus3301/papirus/internal/tui/views"
)

// Params holds the resolved command line passed to the fx module.
type Params struct {
	ConfigPath string
	LogPath    string
	LogLevel   string
	TickRate   float64 // overrides the config when > 0
	FrameRate  float64 // overrides the config when > 0
	QueueLimit int     // 0 = unbounded
}

// Module returns the fx module for the application, composing all providers
// and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("papirus",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideKeys,
			provideTransport,
			provideHighlighter,
			provideRoot,
			provideScreen,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

// WithLogger routes fx's own events into the application log so nothing is
// written over the terminal UI.
func WithLogger() fx.Option {
	return fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: logger.Named("fx")}
	})
}

func provideConfig(p Params) (*config.Config, error) {
	path := p.ConfigPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if p.TickRate > 0 {
		cfg.Timing.TickRate = p.TickRate
	}
	if p.FrameRate > 0 {
		cfg.Timing.FrameRate = p.FrameRate
	}
	return cfg, nil
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(p.LogPath, p.LogLevel)
}

func provideBus(p Params) *bus.Bus {
	return bus.New(p.QueueLimit)
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideKeys(cfg *config.Config) (*keys.Registry, error) {
	return keys.FromConfig(cfg.Keybindings)
}

func provideTransport(cfg *config.Config, logger *zap.Logger) transport.Transport {
	return transport.NewHTTPClient(cfg.HTTP.Timeout.Duration, cfg.HTTP.UserAgent, logger)
}

func provideHighlighter(cfg *config.Config) *highlight.Highlighter {
	return highlight.New(cfg.Highlight.Style, cfg.Highlight.Enabled)
}

func provideRoot(cfg *config.Config, registry *keys.Registry, tr transport.Transport, h *highlight.Highlighter, logger *zap.Logger) *views.Home {
	return views.NewHome(views.Deps{
		Theme:       ui.NewTheme(cfg.Theme),
		Keys:        registry,
		Transport:   tr,
		Highlighter: h,
		Logger:      logger,
	})
}

func provideScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}

func provideApp(screen tcell.Screen, root *views.Home, b *bus.Bus, machine *status.Machine, cfg *config.Config, logger *zap.Logger) *App {
	return NewApp(screen, root, b, machine, cfg, logger)
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *App, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				code := 0
				if err := app.Run(context.Background()); err != nil {
					logger.Error("application loop failed", zap.Error(err))
					code = 1
				}
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Warn("shutdown", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			app.Stop()
			select {
			case <-app.Done():
			case <-ctx.Done():
				return ctx.Err()
			}
			_ = logger.Sync()
			return nil
		},
	})
}
