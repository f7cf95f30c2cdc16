// Package engine keeps the vocabulary registry synchronized with the
// external audio engine over newline-delimited JSON on a local TCP socket.
package engine

// request is an outbound message. The engine only understands the three
// get* types; it answers with matching inbound messages.
type request struct {
	Type string `json:"type"`
}

const (
	reqGetSamples = "getSamples"
	reqGetBanks   = "getBanks"
	reqGetSounds  = "getSounds"
)

// message is an inbound frame. One JSON object per line, no length prefix.
// Unknown types and malformed lines are ignored.
type message struct {
	Type    string   `json:"type"`
	Samples []string `json:"samples,omitempty"`
	Banks   []string `json:"banks,omitempty"`
	Sounds  []string `json:"sounds,omitempty"`
}

const (
	msgSamples = "samples"
	msgBanks   = "banks"
	msgSounds  = "sounds"
)
