// Package app composes the console with uber fx: logger, bus, store,
// clients, reconciler, sockets, player, and the TUI shell.
package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/matheus3301/zapdesk/internal/api"
	"github.com/matheus3301/zapdesk/internal/bus"
	"github.com/matheus3301/zapdesk/internal/config"
	"github.com/matheus3301/zapdesk/internal/convo"
	"github.com/matheus3301/zapdesk/internal/lock"
	"github.com/matheus3301/zapdesk/internal/logging"
	"github.com/matheus3301/zapdesk/internal/paths"
	"github.com/matheus3301/zapdesk/internal/player"
	"github.com/matheus3301/zapdesk/internal/render"
	"github.com/matheus3301/zapdesk/internal/shopify"
	"github.com/matheus3301/zapdesk/internal/status"
	"github.com/matheus3301/zapdesk/internal/store"
	"github.com/matheus3301/zapdesk/internal/tui"
	"github.com/matheus3301/zapdesk/internal/ws"
)

// Module returns the fx module for the console.
func Module(cfg *config.Config) fx.Option {
	return fx.Module("zapdesk",
		fx.Supply(cfg),
		fx.Provide(
			provideLogger,
			provideBus,
			provideMachine,
			provideLock,
			provideCache,
			provideAPIClient,
			provideShopify,
			provideCarts,
			provideReconciler,
			provideLoader,
			provideEventHandler,
			provideAdminSocket,
			provideSink,
			providePlayer,
			providePreviews,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}
	return logging.New(paths.LogPath(), cfg.Agent, false)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring instance lock", zap.String("path", paths.LockPath()))
	l, err := lock.Acquire(paths.LockPath())
	if err != nil {
		return nil, err
	}
	logger.Info("instance lock acquired")
	return l, nil
}

// provideCache opens the SQLite cache, degrading to a no-op cache when
// disabled or when the store cannot be opened.
func provideCache(cfg *config.Config, logger *zap.Logger) store.Cache {
	if !cfg.MediaCache {
		logger.Info("media cache disabled")
		return store.Noop{}
	}
	s, err := store.NewStore(paths.CacheDBPath(), logger)
	if err != nil {
		logger.Warn("cache store unavailable, running degraded", zap.Error(err))
		return store.Noop{}
	}
	logger.Info("cache store ready", zap.String("path", paths.CacheDBPath()))
	return s
}

func provideAPIClient(cfg *config.Config, logger *zap.Logger) *api.Client {
	return api.New(cfg.BackendURL, logger)
}

func provideShopify(cfg *config.Config, logger *zap.Logger) *shopify.Client {
	return shopify.New(cfg.BackendURL, logger)
}

func provideCarts(cache store.Cache) *shopify.Carts {
	return shopify.NewCarts(cache)
}

func provideReconciler(b *bus.Bus, logger *zap.Logger) *convo.Reconciler {
	return convo.NewReconciler(b, logger)
}

func provideLoader(c *api.Client, rec *convo.Reconciler, logger *zap.Logger) *convo.Loader {
	return convo.NewLoader(c, rec, logger)
}

func provideEventHandler(b *bus.Bus, logger *zap.Logger) *api.EventHandler {
	return api.NewEventHandler(b, logger)
}

// adminSocket names the broadcast channel client in the fx graph.
type adminSocket struct {
	*ws.Client
}

func provideAdminSocket(cfg *config.Config, h *api.EventHandler, b *bus.Bus, logger *zap.Logger) adminSocket {
	return adminSocket{ws.New(cfg.WSURL+"/ws/admin", "admin", h.Handle, b, logger)}
}

func provideSink(cfg *config.Config, logger *zap.Logger) player.Sink {
	sink, err := player.NewMPV(cfg.MPVPath, logger)
	if err != nil {
		logger.Warn("mpv unavailable, audio playback disabled", zap.Error(err))
		return noopSink{}
	}
	return sink
}

func providePlayer(sink player.Sink, cache store.Cache, logger *zap.Logger) *player.Controller {
	return player.New(sink, cache, logger)
}

func providePreviews(logger *zap.Logger) *render.Previews {
	return render.NewPreviews(logger)
}

func provideApp(
	cfg *config.Config,
	c *api.Client,
	sc *shopify.Client,
	carts *shopify.Carts,
	rec *convo.Reconciler,
	loader *convo.Loader,
	ctrl *player.Controller,
	previews *render.Previews,
	b *bus.Bus,
	m *status.Machine,
	logger *zap.Logger,
) *tui.App {
	return tui.NewApp(tui.Deps{
		Agent:    cfg.Agent,
		Backend:  cfg.BackendURL,
		WSURL:    cfg.WSURL,
		API:      c,
		Shopify:  sc,
		Carts:    carts,
		Rec:      rec,
		Loader:   loader,
		Player:   ctrl,
		Previews: previews,
		Bus:      b,
		Machine:  m,
		Logger:   logger,
	})
}

func registerLifecycle(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	app *tui.App,
	admin adminSocket,
	loader *convo.Loader,
	ctrl *player.Controller,
	cache store.Cache,
	machine *status.Machine,
	lk *lock.Lock,
	b *bus.Bus,
	logger *zap.Logger,
) {
	var untrack func()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			untrack = status.Track(machine, b)
			admin.Start(context.Background())

			// The TUI owns the foreground; fx shuts down when it exits.
			go func() {
				if err := app.Run(); err != nil {
					logger.Error("tui exited", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			app.Stop()
			loader.Stop()
			admin.Stop()
			if untrack != nil {
				untrack()
			}
			if err := ctrl.Close(); err != nil {
				logger.Warn("player shutdown", zap.Error(err))
			}
			if err := cache.Close(); err != nil {
				logger.Warn("cache close", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("lock release", zap.Error(err))
			}
			logger.Info("console stopped")
			return nil
		},
	})
}

// noopSink keeps the player wired when mpv is missing.
type noopSink struct{}

func (noopSink) Load(string) error { return nil }

func (noopSink) SetPaused(bool) error { return nil }

func (noopSink) Stop() error { return nil }

func (noopSink) SeekTo(float64) error { return nil }

func (noopSink) SetRate(float64) error { return nil }

func (noopSink) Poll() (float64, float64, error) { return 0, 0, nil }

func (noopSink) Close() error { return nil }
