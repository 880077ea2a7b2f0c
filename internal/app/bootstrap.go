package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hiretop/internal/config"
	"hiretop/internal/delivery/http/middleware"
	"hiretop/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// App is the HTTP API plus the websocket listener. Fiber runs on fasthttp,
// which cannot hand a connection to gorilla/websocket, so /ws lives on its
// own net/http server.
type App struct {
	Fiber *fiber.App
	WS    *http.Server

	container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: c.Config.App.BodyLimit,
	})

	registerGlobalMiddleware(f, c)
	routes.NewRegistry(c.Health, c.Handlers, c.AuthMiddleware).Register(f)

	mux := http.NewServeMux()
	mux.Handle("/ws", c.WSHandler)

	return &App{
		Fiber:     f,
		WS:        &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		container: c,
	}
}

// Bootstrap opens every dependency and builds the App. The returned cleanup
// closes what NewContainer opened.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.Metrics(c.Metrics))
	app.Use(middleware.NewAccessLogMiddleware(c.Logger.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

// Run serves HTTP and websocket traffic until ctx is cancelled or a listener
// fails, then shuts both down.
func (a *App) Run(ctx context.Context) error {
	cfg := a.container.Config
	logger := a.container.Logger

	httpAddr, err := ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %w", err)
	}
	wsAddr, err := ListenAddr(cfg.App.WSPort)
	if err != nil {
		return fmt.Errorf("invalid WS port: %w", err)
	}
	a.WS.Addr = wsAddr

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.container.Hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("http listening", zap.String("addr", httpAddr))
		return a.Fiber.Listen(httpAddr, fiber.ListenConfig{DisableStartupMessage: true})
	})

	g.Go(func() error {
		logger.Info("websocket listening", zap.String("addr", wsAddr))
		if err := a.WS.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		return errors.Join(
			a.Fiber.ShutdownWithContext(shutdownCtx),
			a.WS.Shutdown(shutdownCtx),
		)
	})

	return g.Wait()
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
