package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prasetyowira/tyrelabel/api"
	"github.com/prasetyowira/tyrelabel/config"
	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/domain/label"
	"github.com/prasetyowira/tyrelabel/infrastructure/cache"
	"github.com/prasetyowira/tyrelabel/infrastructure/db"
	appLogger "github.com/prasetyowira/tyrelabel/infrastructure/logger"
	"github.com/prasetyowira/tyrelabel/infrastructure/qrcode"
	"github.com/prasetyowira/tyrelabel/infrastructure/svg"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve labels over HTTP",
		Long: `Start the label HTTP service. Settings are read from the environment
(PORT, DATABASE_URL, AUTH_USER, AUTH_PASS, CACHE_SIZE, LOG_LEVEL, APP_ENV) and
from a .env file in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return &UsageError{Err: err}
			}

			if err := appLogger.Initialize(appLogger.Options{
				Level:      cfg.LogLevel,
				Production: cfg.IsProduction(),
			}); err != nil {
				return &UsageError{Err: err}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
			if err != nil {
				return err
			}
			return runServer(ctx, cfg, listener)
		},
	}
}

// runServer serves the label API on listener until ctx is done, then shuts
// the server down gracefully
func runServer(ctx context.Context, cfg config.Config, listener net.Listener) error {
	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataPort:        cfg.Port,
			constant.DataDBPath:      cfg.DatabaseURL,
			constant.DataEnvironment: cfg.Environment,
		},
	})

	repository, err := db.NewLabelRepository(cfg.DatabaseURL)
	if err != nil {
		appLogger.Error(constant.MsgFailedToInitDB, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppDBInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataDBPath: cfg.DatabaseURL,
			},
		})
		_ = listener.Close()
		return err
	}
	defer repository.Close()

	renderer, err := svg.NewRenderer()
	if err != nil {
		appLogger.Error(constant.MsgFailedToInitRenderer, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppRendererInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
		_ = listener.Close()
		return err
	}

	service := label.NewService(qrcode.NewGenerator(), renderer)
	catalog := label.NewCatalog(repository, cache.NewNamespaceLRU[label.Fields](cfg.CacheSize))

	handler := api.NewHandler(service, catalog)
	router := api.NewRouter(handler, cfg.AuthUser, cfg.AuthPass)
	router.SetupRoutes()

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: listener.Addr().String(),
			},
		})

		err := server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			appLogger.Error(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppServerStart,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
			})
		}
		return err
	case <-ctx.Done():
	}

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
		return err
	}

	if err := <-serveErr; err != nil {
		return err
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	return nil
}
