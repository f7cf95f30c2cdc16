package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the msgpack payload persisted between runs so completions are
// warm before the engine connects. It only ever carries the dynamic layers;
// defaults are compiled in.
type Snapshot struct {
	Samples []string `msgpack:"samples"`
	Banks   []string `msgpack:"banks"`
	Sounds  []string `msgpack:"sounds"`
	SavedAt int64    `msgpack:"saved_at"`
}

// DefaultCachePath returns the standard cache file location.
func DefaultCachePath(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app, "vocab.mp"), nil
}

// LoadSnapshot reads a cached snapshot. A missing file is not an error; it
// returns (nil, nil).
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveSnapshot writes the snapshot atomically (write temp, rename).
func SaveSnapshot(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if err := msgpack.NewEncoder(f).Encode(snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// SnapshotDynamic captures the registry's current dynamic layers.
func (r *Registry) SnapshotDynamic() *Snapshot {
	return &Snapshot{
		Samples: r.DynamicSamples(),
		Banks:   r.DynamicBanks(),
		Sounds:  r.DynamicSounds(),
		SavedAt: time.Now().Unix(),
	}
}

// ApplySnapshot seeds the dynamic layers from a cached snapshot. Empty
// fields are left untouched so a stale cache never clears live data.
func (r *Registry) ApplySnapshot(snap *Snapshot) {
	if snap == nil {
		return
	}
	if len(snap.Samples) > 0 {
		r.ReplaceSamples(snap.Samples)
	}
	if len(snap.Banks) > 0 {
		r.ReplaceBanks(snap.Banks)
	}
	if len(snap.Sounds) > 0 {
		r.ReplaceSounds(snap.Sounds)
	}
}
