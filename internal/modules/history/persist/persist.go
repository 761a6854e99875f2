package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"soilpico/internal/modules/history/codec"
	"soilpico/internal/modules/history/types"
)

// Gateway owns the single durable history file. Each save is a complete
// snapshot overwrite, never an append log, so the file can never hold more
// readings than the in-memory store that produced it.
type Gateway struct {
	path   string
	logger *slog.Logger
}

func NewGateway(path string, logger *slog.Logger) *Gateway {
	return &Gateway{path: path, logger: logger}
}

// Load reads the durable file and decodes it. A missing file is the
// expected first-boot state and yields an empty history; an unreadable or
// unparseable file is logged and also yields an empty history. Load never
// fails the caller: durability problems degrade to "start fresh".
func (g *Gateway) Load() []types.Reading {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.logger.Debug("history file absent, starting fresh", "path", g.path)
			return nil
		}
		g.logger.Warn("history file unreadable, starting fresh", "path", g.path, "error", err)
		return nil
	}
	readings, err := codec.Decode(data)
	if err != nil {
		g.logger.Warn("history file corrupt, starting fresh", "path", g.path, "error", err)
		return nil
	}
	g.logger.Info("history loaded", "path", g.path, "readings", len(readings))
	return readings
}

// Save overwrites the durable file with the given snapshot. An empty
// snapshot is a successful no-op: skipping the write avoids needless flash
// wear. The parent directory is created on demand.
func (g *Gateway) Save(readings []types.Reading) error {
	if len(readings) == 0 {
		return nil
	}
	data, err := codec.Encode(readings)
	if err != nil {
		return err
	}
	dir := filepath.Dir(g.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(g.path, data, 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// Erase removes the durable file. A missing file is success.
func (g *Gateway) Erase() error {
	err := os.Remove(g.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erase history file: %w", err)
	}
	return nil
}

// Path returns the durable file location, for logging and health output.
func (g *Gateway) Path() string {
	return g.path
}
