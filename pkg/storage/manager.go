package storage

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/config"
)

// Manager holds named disks and a default disk name.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// NewManager builds a Manager from configuration. The local disk is always
// registered; the s3 disk is registered when S3_BUCKET is set.
func NewManager(ctx context.Context) (*Manager, error) {
	local, err := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return nil, err
	}
	m := &Manager{disks: map[string]Disk{"local": local}, defaultDisk: config.StorageDefault()}

	if bucket := config.StorageS3Bucket(); bucket != "" {
		s3disk, err := NewS3Disk(ctx, S3Options{
			Bucket:   bucket,
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
		if err != nil {
			return nil, err
		}
		m.disks["s3"] = s3disk
	}

	if _, ok := m.disks[m.defaultDisk]; !ok {
		return nil, errors.Errorf("storage: default disk %q is not configured", m.defaultDisk)
	}
	return m, nil
}

// NewManagerWith builds a Manager from explicit disks.
func NewManagerWith(defaultDisk string, disks map[string]Disk) *Manager {
	m := &Manager{disks: make(map[string]Disk, len(disks)), defaultDisk: defaultDisk}
	for name, d := range disks {
		m.disks[name] = d
	}
	return m
}

// Disk returns a named disk.
func (m *Manager) Disk(name string) (Disk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.disks[name]
	if !ok {
		return nil, errors.Errorf("storage: disk %q not registered", name)
	}
	return d, nil
}

// Default returns the default disk.
func (m *Manager) Default() Disk {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disks[m.defaultDisk]
}

// Register adds or replaces a disk.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disks[name] = d
}
