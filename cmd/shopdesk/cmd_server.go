package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/shopdesk/app/repositories/memstore"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/config"
	"github.com/shashiranjanraj/shopdesk/internal/kernel"
	"github.com/shashiranjanraj/shopdesk/internal/server"
	"github.com/shashiranjanraj/shopdesk/pkg/auth"
	"github.com/shashiranjanraj/shopdesk/pkg/schedule"
	"github.com/shashiranjanraj/shopdesk/pkg/storage"
)

var noGRPCFlag bool

// shopdesk serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the gRPC health service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		k, err := kernel.Boot(ctx, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if err := scheduleExports(ctx, k); err != nil {
			_ = k.Shutdown(context.Background())
			return err
		}

		cfg := server.Config{HTTPPort: config.AppPort(), GRPCPort: config.GRPCPort()}
		if noGRPCFlag {
			cfg.GRPCPort = ""
		}
		fmt.Fprintf(cmd.OutOrStdout(), "shopdesk running on :%s\n", cfg.HTTPPort)
		return server.Run(ctx, k, cfg)
	},
}

// shopdesk route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := kernel.New(kernel.Options{
			Store:  memstore.New(),
			Tokens: auth.NewJWT("route-list", time.Minute, "shopdesk"),
			Hasher: auth.NewPasswordHasher(bcrypt.MinCost),
		})
		if err != nil {
			return err
		}
		defer k.Shutdown(context.Background())

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

// scheduleExports starts the periodic order export when EXPORT_EVERY is
// set. The scheduler stops with ctx.
func scheduleExports(ctx context.Context, k *kernel.Kernel) error {
	every := config.ExportEvery()
	if every <= 0 {
		return nil
	}

	disks, err := storage.NewManager(ctx)
	if err != nil {
		return err
	}
	exporter := services.NewOrderExporter(k.Orders, disks.Default())

	jobs := schedule.New()
	if err := jobs.Every(every, "orders:export", func(ctx context.Context) error {
		_, err := exporter.Export(ctx, services.OrderFilter{})
		return err
	}); err != nil {
		return err
	}
	go jobs.Run(ctx)
	return nil
}

func init() {
	serveCmd.Flags().BoolVar(&noGRPCFlag, "no-grpc", false, "Do not start the gRPC health service")
}
