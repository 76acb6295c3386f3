package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/pkg/storage"
)

// Export describes a file written by OrderExporter.
type Export struct {
	Path   string `json:"path"`
	URL    string `json:"url"`
	Orders int    `json:"orders"`
}

// OrderExporter writes order snapshots to a storage disk as JSON.
type OrderExporter struct {
	orders *OrderService
	disk   storage.Disk
	now    func() time.Time
}

func NewOrderExporter(orders *OrderService, disk storage.Disk) *OrderExporter {
	return &OrderExporter{orders: orders, disk: disk, now: time.Now}
}

// Export writes the orders matching f to exports/orders-<timestamp>.json.
func (e *OrderExporter) Export(ctx context.Context, f OrderFilter) (Export, error) {
	orders, err := e.orders.ReadAll(ctx, f)
	if err != nil {
		return Export{}, err
	}

	doc := struct {
		GeneratedAt time.Time      `json:"generatedAt"`
		Filter      OrderFilter    `json:"filter"`
		Orders      []models.Order `json:"orders"`
	}{e.now().UTC(), f, orders}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Export{}, errors.Wrap(err, "export: marshal")
	}

	path := fmt.Sprintf("exports/orders-%s.json", e.now().UTC().Format("20060102T150405.000000000"))
	if err := e.disk.Put(ctx, path, data); err != nil {
		return Export{}, errors.Wrap(err, "export: write")
	}
	return Export{Path: path, URL: e.disk.URL(path), Orders: len(orders)}, nil
}
