package vocab

import "sort"

// Function describes one entry of the pattern API glossary: its call shape
// for signature help and a short markdown body for hover and completion.
type Function struct {
	Name   string
	Params []string
	Doc    string
}

// Signature renders the call shape, e.g. "gain(amount)".
func (f Function) Signature() string {
	sig := f.Name + "("
	for i, p := range f.Params {
		if i > 0 {
			sig += ", "
		}
		sig += p
	}
	return sig + ")"
}

// Calls whose string argument is not a sample list and therefore must not be
// sample-validated.
var nonSampleArgCalls = map[string]struct{}{
	"bank": {}, "scale": {}, "mode": {}, "voicing": {},
	"chord": {}, "struct": {}, "mask": {},
}

// TakesNonSampleString reports whether a call's string argument is excluded
// from sample-style validation.
func TakesNonSampleString(name string) bool {
	_, ok := nonSampleArgCalls[name]
	return ok
}

// Host-language method names that are never flagged as unknown functions.
var hostBuiltins = map[string]struct{}{
	"then": {}, "catch": {}, "map": {}, "filter": {}, "forEach": {},
	"reduce": {}, "log": {}, "error": {}, "warn": {},
}

// IsHostBuiltin reports whether name is a universally-known host method.
func IsHostBuiltin(name string) bool {
	_, ok := hostBuiltins[name]
	return ok
}

var functionGlossary = map[string]Function{}

func init() {
	for _, f := range functionList {
		functionGlossary[f.Name] = f
	}
}

// Function looks up a glossary entry by exact name.
func (r *Registry) Function(name string) (Function, bool) {
	f, ok := functionGlossary[name]
	return f, ok
}

// FunctionNames returns every glossary name, sorted.
func (r *Registry) FunctionNames() []string {
	out := make([]string, 0, len(functionGlossary))
	for name := range functionGlossary {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Functions returns every glossary entry, sorted by name.
func (r *Registry) Functions() []Function {
	names := r.FunctionNames()
	out := make([]Function, 0, len(names))
	for _, name := range names {
		out = append(out, functionGlossary[name])
	}
	return out
}

var functionList = []Function{
	{Name: "s", Params: []string{"pattern"}, Doc: "Select samples to play, e.g. `s(\"bd sd\")`."},
	{Name: "sound", Params: []string{"pattern"}, Doc: "Alias of `s`: select samples to play."},
	{Name: "n", Params: []string{"pattern"}, Doc: "Select the sample index or note number within the current sound."},
	{Name: "note", Params: []string{"pattern"}, Doc: "Play notes by name (`c e g`) or number."},
	{Name: "bank", Params: []string{"name"}, Doc: "Select a drum machine bank, e.g. `bank(\"RolandTR808\")`. Prefixes sample names with the bank."},
	{Name: "gain", Params: []string{"amount"}, Doc: "Scale loudness; 1 is unchanged, 0 is silent."},
	{Name: "velocity", Params: []string{"amount"}, Doc: "Per-event velocity multiplier."},
	{Name: "pan", Params: []string{"position"}, Doc: "Stereo position from 0 (left) to 1 (right)."},
	{Name: "speed", Params: []string{"factor"}, Doc: "Playback rate of the sample; negative plays backwards."},
	{Name: "slow", Params: []string{"factor"}, Doc: "Slow the pattern down by a factor."},
	{Name: "fast", Params: []string{"factor"}, Doc: "Speed the pattern up by a factor."},
	{Name: "rev", Params: nil, Doc: "Reverse the pattern within each cycle."},
	{Name: "jux", Params: []string{"fn"}, Doc: "Apply a function to the pattern in the right channel only."},
	{Name: "stack", Params: []string{"...patterns"}, Doc: "Play all given patterns at the same time."},
	{Name: "seq", Params: []string{"...patterns"}, Doc: "Play the given patterns one per cycle subdivision."},
	{Name: "cat", Params: []string{"...patterns"}, Doc: "Play the given patterns one per cycle."},
	{Name: "stut", Params: []string{"count", "feedback", "time"}, Doc: "Echo each event with decaying repeats."},
	{Name: "chop", Params: []string{"pieces"}, Doc: "Cut samples into equal pieces and play them in sequence."},
	{Name: "striate", Params: []string{"pieces"}, Doc: "Interlace progressive slices of the sample across the cycle."},
	{Name: "slice", Params: []string{"pieces", "pattern"}, Doc: "Slice the sample and index the slices with a pattern."},
	{Name: "splice", Params: []string{"pieces", "pattern"}, Doc: "Like slice, but stretches each piece to fit its event."},
	{Name: "crush", Params: []string{"bits"}, Doc: "Bit-crush effect; lower is harsher."},
	{Name: "coarse", Params: []string{"factor"}, Doc: "Fake sample-rate reduction."},
	{Name: "shape", Params: []string{"amount"}, Doc: "Waveshaping distortion from 0 to 1."},
	{Name: "room", Params: []string{"amount"}, Doc: "Reverb send level."},
	{Name: "size", Params: []string{"amount"}, Doc: "Reverb room size."},
	{Name: "orbit", Params: []string{"number"}, Doc: "Route the pattern to a separate effect bus."},
	{Name: "cutoff", Params: []string{"frequency"}, Doc: "Low-pass filter cutoff in Hz."},
	{Name: "lpf", Params: []string{"frequency"}, Doc: "Low-pass filter cutoff in Hz (alias of cutoff)."},
	{Name: "hpf", Params: []string{"frequency"}, Doc: "High-pass filter cutoff in Hz."},
	{Name: "resonance", Params: []string{"amount"}, Doc: "Filter resonance."},
	{Name: "vowel", Params: []string{"vowel"}, Doc: "Formant filter: a, e, i, o or u."},
	{Name: "delay", Params: []string{"level"}, Doc: "Delay send level."},
	{Name: "delaytime", Params: []string{"seconds"}, Doc: "Delay time."},
	{Name: "delayfeedback", Params: []string{"amount"}, Doc: "Delay feedback from 0 to 1."},
	{Name: "scale", Params: []string{"name"}, Doc: "Interpret numbers as degrees of a scale, e.g. `scale(\"c:minor\")`."},
	{Name: "transpose", Params: []string{"semitones"}, Doc: "Shift notes by semitones."},
	{Name: "legato", Params: []string{"factor"}, Doc: "Event length relative to its step."},
	{Name: "clip", Params: []string{"factor"}, Doc: "Multiply event duration (alias of legato)."},
	{Name: "euclid", Params: []string{"pulses", "steps"}, Doc: "Distribute pulses evenly over steps (euclidean rhythm)."},
	{Name: "euclidRot", Params: []string{"pulses", "steps", "rotation"}, Doc: "Euclidean rhythm with rotation."},
	{Name: "every", Params: []string{"n", "fn"}, Doc: "Apply a function every nth cycle."},
	{Name: "whenmod", Params: []string{"a", "b", "fn"}, Doc: "Apply fn when the cycle number modulo a is at least b."},
	{Name: "sometimes", Params: []string{"fn"}, Doc: "Apply a function to roughly half the events."},
	{Name: "often", Params: []string{"fn"}, Doc: "Apply a function to most events."},
	{Name: "rarely", Params: []string{"fn"}, Doc: "Apply a function to few events."},
	{Name: "degrade", Params: nil, Doc: "Randomly drop half the events."},
	{Name: "degradeBy", Params: []string{"probability"}, Doc: "Randomly drop events with the given probability."},
	{Name: "mask", Params: []string{"pattern"}, Doc: "Silence events where the boolean pattern is false, e.g. `mask(\"t f t t\")`."},
	{Name: "struct", Params: []string{"pattern"}, Doc: "Impose a boolean rhythm structure, e.g. `struct(\"x ~ x x\")`."},
	{Name: "chord", Params: []string{"pattern"}, Doc: "Play named chords, e.g. `chord(\"Am7 Dm7\")`."},
	{Name: "voicing", Params: nil, Doc: "Turn chord symbols into concrete voicings."},
	{Name: "mode", Params: []string{"name"}, Doc: "Voicing mode, e.g. `mode(\"root:g2\")`."},
	{Name: "arp", Params: []string{"pattern"}, Doc: "Arpeggiate chords with an index pattern."},
	{Name: "add", Params: []string{"amount"}, Doc: "Add to the pattern's numeric values."},
	{Name: "sub", Params: []string{"amount"}, Doc: "Subtract from the pattern's numeric values."},
	{Name: "mul", Params: []string{"amount"}, Doc: "Multiply the pattern's numeric values."},
	{Name: "div", Params: []string{"amount"}, Doc: "Divide the pattern's numeric values."},
	{Name: "range", Params: []string{"min", "max"}, Doc: "Rescale a 0..1 signal to the given range."},
	{Name: "off", Params: []string{"time", "fn"}, Doc: "Overlay a transformed copy shifted in time."},
	{Name: "ply", Params: []string{"factor"}, Doc: "Repeat each event the given number of times."},
	{Name: "palindrome", Params: nil, Doc: "Alternate between the pattern and its reverse."},
	{Name: "iter", Params: []string{"n"}, Doc: "Shift the start of the pattern each cycle."},
	{Name: "chunk", Params: []string{"n", "fn"}, Doc: "Apply fn to a different chunk of the cycle each time."},
	{Name: "shuffle", Params: []string{"n"}, Doc: "Play n-subdivisions in random order without repeats."},
	{Name: "scramble", Params: []string{"n"}, Doc: "Play n-subdivisions in random order with repeats."},
	{Name: "segment", Params: []string{"n"}, Doc: "Sample a continuous signal n times per cycle."},
	{Name: "hush", Params: nil, Doc: "Silence everything."},
}

// Operator describes one mini-notation operator for hover documentation.
type Operator struct {
	Symbol string
	Doc    string
}

// Operators returns the mini-notation operator glossary.
func (r *Registry) Operators() []Operator {
	return operatorGlossary
}

var operatorGlossary = []Operator{
	{Symbol: "~", Doc: "Rest: an empty step."},
	{Symbol: "*", Doc: "Repeat a step faster, e.g. `bd*2`."},
	{Symbol: "/", Doc: "Slow a step down, e.g. `bd/2`."},
	{Symbol: "!", Doc: "Replicate a step, e.g. `bd!3`."},
	{Symbol: "@", Doc: "Elongate a step's duration, e.g. `bd@3`."},
	{Symbol: ":", Doc: "Sample index, e.g. `bd:3`."},
	{Symbol: "?", Doc: "Randomly drop the step half the time."},
	{Symbol: ",", Doc: "Play groups in parallel."},
	{Symbol: "|", Doc: "Pick one of the alternatives at random each cycle."},
	{Symbol: "[ ]", Doc: "Group steps into one step."},
	{Symbol: "< >", Doc: "Alternate: one element per cycle."},
	{Symbol: "{ }", Doc: "Polymeter: groups keep their own step count."},
	{Symbol: "( )", Doc: "Euclidean rhythm, e.g. `bd(3,8)`."},
}
