package main

import (
	"context"
	"errors"
	"flowstudio"
	"flowstudio/internal/api/handler/endpoints"
	"flowstudio/internal/api/metrics"
	"flowstudio/internal/api/service"
	"flowstudio/internal/api/websocket"
	"flowstudio/internal/editor/plugin"
	"flowstudio/internal/editor/socket"
	"flowstudio/internal/realtime"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and websocket API",
	RunE: func(cmd *cobra.Command, args []string) error {
		envfile, _ := cmd.Flags().GetString("env")
		return serve(cmd.Context(), envfile)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context, envfile string) error {
	flowstudio.InitConfig(envfile)
	gin.SetMode(gin.ReleaseMode)

	if flowstudio.GetConfig().Mode == "dev" {
		if err := migrate(); err != nil {
			flowstudio.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(flowstudio.GetConfig().ApiPort))
	if err != nil {
		return err
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine, err := plugin.NewTemplateEngine()
	if err != nil {
		return err
	}
	descriptors := plugin.NewDefaultRegistry(socket.NewFlowSockets(), engine)
	// Templates may have changed since the last deploy.
	if err = service.NewNodeKindService(descriptors, flowstudio.GetConfig().CatalogTTL).Invalidate(ctx); err != nil {
		flowstudio.Logger.Warn().Err(err).Msg("Failed to invalidate node kind cache")
	}

	hub := websocket.NewHub(flowstudio.Logger)
	go hub.Run(ctx)
	flowstudio.Logger.Info().Msg("WebSocket hub started")

	publisher, closePublisher, err := initPublisher(hub)
	if err != nil {
		return err
	}
	defer closePublisher()

	initAPI(router, descriptors, hub, publisher)

	flowstudio.Logger.Debug().Msgf("Starting flowstudio API on port %s", flowstudio.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		flowstudio.Logger.Error().Err(err).Msg("API stopped")
		return err
	}
	return nil
}

// initPublisher routes classification events through NATS when configured, so
// every replica's hub hears about them. Without NATS events go straight to the
// local hub.
func initPublisher(hub *websocket.Hub) (service.EventPublisher, func(), error) {
	cfg := flowstudio.GetConfig().NatsConfig
	if cfg.URL == "" {
		return websocket.NewHubPublisher(hub), func() {}, nil
	}

	nc, err := realtime.Connect(cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	bridge := realtime.NewNATSBridge(nc, cfg.SubjectPrefix, hub, flowstudio.Logger)
	if err = bridge.Subscribe(); err != nil {
		nc.Close()
		return nil, nil, err
	}
	return realtime.NewNATSPublisher(nc, cfg.SubjectPrefix), bridge.Close, nil
}

func initAPI(router *graceful.Graceful, descriptors *plugin.Registry, hub *websocket.Hub, publisher service.EventPublisher) {
	router.GET("/metrics", metrics.Handler())

	endpoints.NodeKindHandler(router, descriptors)
	endpoints.FlowNodeHandler(router, descriptors)
	endpoints.FlowContainerHandler(router, publisher)
	endpoints.WebSocketHandler(router, hub)
}
