package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/internal/kernel"
	"github.com/shashiranjanraj/shopdesk/pkg/storage"
)

var (
	exportDiskFlag     string
	exportCustomerFlag string
	exportStatusFlag   string
)

// shopdesk orders:export
var ordersExportCmd = &cobra.Command{
	Use:   "orders:export",
	Short: "Write a JSON snapshot of orders to a storage disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKernel(cmd, func(ctx context.Context, k *kernel.Kernel) error {
			disks, err := storage.NewManager(ctx)
			if err != nil {
				return err
			}
			disk := disks.Default()
			if exportDiskFlag != "" {
				if disk, err = disks.Disk(exportDiskFlag); err != nil {
					return err
				}
			}

			exp, err := services.NewOrderExporter(k.Orders, disk).Export(ctx, services.OrderFilter{
				Customer: exportCustomerFlag,
				Status:   exportStatusFlag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d orders to %s\n", exp.Orders, exp.Path)
			if exp.URL != "" {
				fmt.Fprintln(cmd.OutOrStdout(), exp.URL)
			}
			return nil
		})
	},
}

func init() {
	ordersExportCmd.Flags().StringVar(&exportDiskFlag, "disk", "", "Storage disk name (default: STORAGE_DISK)")
	ordersExportCmd.Flags().StringVar(&exportCustomerFlag, "customer", "", "Only orders of this customer id")
	ordersExportCmd.Flags().StringVar(&exportStatusFlag, "status", "", "Only orders with this status")
}
