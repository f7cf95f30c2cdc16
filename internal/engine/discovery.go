package engine

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"syscall"
	"time"
)

// State is what the discovery signal reports about the current engine
// process. A nil *State means no engine is advertised.
type State struct {
	Port int `json:"port"`
	Pid  int `json:"pid"`
}

// Equal compares two advertisements.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Port == other.Port && s.Pid == other.Pid
}

// Running reports whether the advertised process is alive. Signal 0 probes
// liveness without delivering anything.
func (s *State) Running() bool {
	if s == nil || s.Pid <= 0 || s.Port <= 0 {
		return false
	}
	proc, err := os.FindProcess(s.Pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// Discovery is the external signal telling us where the engine lives.
type Discovery interface {
	// Read returns the current advertisement, nil when absent.
	Read() (*State, error)
	// Watch invokes onChange whenever the advertisement may have changed.
	// The returned func stops watching; it is safe to call twice.
	Watch(onChange func()) (stop func())
}

// FileDiscovery reads a JSON state file written by the engine on boot and
// watches it by polling modification time.
type FileDiscovery struct {
	Path     string
	Interval time.Duration
}

func (d *FileDiscovery) interval() time.Duration {
	if d.Interval <= 0 {
		return time.Second
	}
	return d.Interval
}

// Read parses the state file. A missing or empty file means no engine.
func (d *FileDiscovery) Read() (*State, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Watch polls the file's mtime and size, firing onChange when either moves
// or the file appears or disappears.
func (d *FileDiscovery) Watch(onChange func()) (stop func()) {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(d.interval())
		defer ticker.Stop()
		last, lastOK := d.stamp()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				cur, curOK := d.stamp()
				if curOK != lastOK || cur != last {
					last, lastOK = cur, curOK
					onChange()
				}
			}
		}
	}()
	return func() {
		once.Do(func() { close(done) })
	}
}

type fileStamp struct {
	mtime int64
	size  int64
}

func (d *FileDiscovery) stamp() (fileStamp, bool) {
	info, err := os.Stat(d.Path)
	if err != nil {
		return fileStamp{}, false
	}
	return fileStamp{mtime: info.ModTime().UnixNano(), size: info.Size()}, true
}
