package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"citysense-be/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the background simulator",
	Long: `Start the HTTP API on PORT (default 8080). When REDIS_ADDRESS is set the
daily issue limit is enforced through Redis. The simulator ticks every
SIMULATOR_INTERVAL; set it to 0 to disable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}
		if cfg.Production() {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var redisClient *redis.Client
		if cfg.RateLimitEnabled() {
			client, err := config.ConnectRedis(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()
			redisClient = client
			log.Info("redis connected", zap.String("addr", cfg.Redis.Address))
		} else {
			log.Warn("REDIS_ADDRESS not set, issue rate limiting disabled")
		}

		app, err := newApplication(cfg, log, redisClient, nil)
		if err != nil {
			return err
		}

		if cfg.Simulator.Interval > 0 {
			go app.simulator.Run(ctx, cfg.Simulator.Interval)
		}

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           app.router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server listening", zap.String("addr", srv.Addr), zap.String("version", buildVersion))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "", "port to listen on (overrides PORT)")
}
