package vocab

// Curated corrections for words people reach for that the notation spells
// differently. Checked before any fuzzy matching; keys are folded.
var typoCorrections = map[string]string{
	"kick":    "bd",
	"snare":   "sd",
	"hihat":   "hh",
	"hat":     "hh",
	"hats":    "hh",
	"openhat": "oh",
	"clap":    "cp",
	"claps":   "cp",
	"crash":   "cr",
	"ride":    "rd",
	"cowbell": "cb",
	"rimshot": "rim",
	"tom":     "lt",
	"shaker":  "sh",
	"rest":    "~",
	"silence": "~",
}

// Correction returns the curated replacement for a word, if any.
func Correction(word string) (string, bool) {
	fix, ok := typoCorrections[Key(word)]
	return fix, ok
}
