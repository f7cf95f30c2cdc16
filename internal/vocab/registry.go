// Package vocab holds the layered vocabulary the diagnostic engine and
// request handlers classify against: built-in default samples and banks,
// the dynamic sets pushed by the audio engine, and the fixed tables
// (notes, scales, voicing modes, function glossary, typo corrections).
package vocab

import (
	"sort"
	"sync"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// Key normalizes a vocabulary word for case-insensitive lookups.
func Key(s string) string {
	return fold.String(s)
}

// Registry is the process-wide vocabulary state. Dynamic layers are replaced
// wholesale by the engine sync client; defaults are never dropped, so the
// effective set is always defaults ∪ dynamic.
type Registry struct {
	mu         sync.RWMutex
	defSamples map[string]string // folded key -> display name
	defBanks   map[string]string
	dynSamples map[string]string
	dynBanks   map[string]string
	dynSounds  map[string]string

	notes    map[string]struct{}
	scales   map[string]struct{}
	voicings map[string]struct{}

	onUpdate []func()
}

// New returns a registry seeded with the built-in defaults.
func New() *Registry {
	r := &Registry{
		defSamples: toSet(defaultSamples),
		defBanks:   toSet(defaultBanks),
		dynSamples: map[string]string{},
		dynBanks:   map[string]string{},
		dynSounds:  map[string]string{},
		notes:      foldedSet(noteNames()),
		scales:     foldedSet(scaleNames),
		voicings:   foldedSet(voicingModes),
	}
	return r
}

// OnUpdate registers a hook fired after every dynamic-layer replacement.
// Hooks run on the caller's goroutine, outside the registry lock.
func (r *Registry) OnUpdate(fn func()) {
	r.mu.Lock()
	r.onUpdate = append(r.onUpdate, fn)
	r.mu.Unlock()
}

// ReplaceSamples swaps the dynamic sample layer.
func (r *Registry) ReplaceSamples(list []string) {
	r.mu.Lock()
	r.dynSamples = toSet(list)
	r.mu.Unlock()
	r.fireUpdate()
}

// ReplaceBanks swaps the dynamic bank layer.
func (r *Registry) ReplaceBanks(list []string) {
	r.mu.Lock()
	r.dynBanks = toSet(list)
	r.mu.Unlock()
	r.fireUpdate()
}

// ReplaceSounds swaps the dynamic sound layer. Sounds behave like samples
// for classification purposes.
func (r *Registry) ReplaceSounds(list []string) {
	r.mu.Lock()
	r.dynSounds = toSet(list)
	r.mu.Unlock()
	r.fireUpdate()
}

// HasSample reports whether name is a known sample or sound in any layer.
func (r *Registry) HasSample(name string) bool {
	k := Key(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.defSamples[k]; ok {
		return true
	}
	if _, ok := r.dynSamples[k]; ok {
		return true
	}
	_, ok := r.dynSounds[k]
	return ok
}

// HasBank reports whether name is a known bank in any layer.
func (r *Registry) HasBank(name string) bool {
	k := Key(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.defBanks[k]; ok {
		return true
	}
	_, ok := r.dynBanks[k]
	return ok
}

// IsScale reports whether name is a known scale.
func (r *Registry) IsScale(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.scales[Key(name)]
	return ok
}

// IsVoicingMode reports whether name is a known voicing mode.
func (r *Registry) IsVoicingMode(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.voicings[Key(name)]
	return ok
}

// Samples returns the effective sample vocabulary (defaults ∪ dynamic ∪
// sounds), sorted for deterministic iteration.
func (r *Registry) Samples() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mergeSorted(r.defSamples, r.dynSamples, r.dynSounds)
}

// Banks returns the effective bank vocabulary, sorted.
func (r *Registry) Banks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mergeSorted(r.defBanks, r.dynBanks)
}

// Scales returns the known scale names, sorted.
func (r *Registry) Scales() []string {
	out := make([]string, len(scaleNames))
	copy(out, scaleNames)
	sort.Strings(out)
	return out
}

// VoicingModes returns the known voicing mode names, sorted.
func (r *Registry) VoicingModes() []string {
	out := make([]string, len(voicingModes))
	copy(out, voicingModes)
	sort.Strings(out)
	return out
}

// DynamicSamples returns only the engine-reported sample layer, sorted.
func (r *Registry) DynamicSamples() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mergeSorted(r.dynSamples)
}

// DynamicBanks returns only the engine-reported bank layer, sorted.
func (r *Registry) DynamicBanks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mergeSorted(r.dynBanks)
}

// DynamicSounds returns only the engine-reported sound layer, sorted.
func (r *Registry) DynamicSounds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mergeSorted(r.dynSounds)
}

// Counts returns the effective sample and bank counts. Used by the monitor.
func (r *Registry) Counts() (samples, banks int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(mergeSorted(r.defSamples, r.dynSamples, r.dynSounds)),
		len(mergeSorted(r.defBanks, r.dynBanks))
}

func (r *Registry) fireUpdate() {
	r.mu.RLock()
	hooks := make([]func(), len(r.onUpdate))
	copy(hooks, r.onUpdate)
	r.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

func toSet(list []string) map[string]string {
	out := make(map[string]string, len(list))
	for _, s := range list {
		if s == "" {
			continue
		}
		out[Key(s)] = s
	}
	return out
}

func foldedSet(list []string) map[string]struct{} {
	out := make(map[string]struct{}, len(list))
	for _, s := range list {
		out[Key(s)] = struct{}{}
	}
	return out
}

func mergeSorted(layers ...map[string]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, layer := range layers {
		for k, display := range layer {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, display)
		}
	}
	sort.Strings(out)
	return out
}
