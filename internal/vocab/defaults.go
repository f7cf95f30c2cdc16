package vocab

import "fmt"

// Built-in sample names shipped with the stock sample library. The engine
// extends this set at runtime; it never shrinks it.
var defaultSamples = []string{
	"bd", "sd", "hh", "oh", "cp", "cr", "rd", "rim", "cb",
	"lt", "mt", "ht", "sh", "perc", "misc", "fx",
	"arpy", "bass", "bass1", "bass2", "bass3", "bleep", "blip",
	"bottle", "casio", "clak", "click", "clubkick", "coins", "crow",
	"drum", "east", "feel", "gretsch", "gtr", "hand", "house",
	"insect", "jazz", "jvbass", "juno", "kick", "koy", "metal",
	"mouth", "moog", "noise", "numbers", "odx", "off", "pad",
	"piano", "pluck", "psr", "ravemono", "realclaps", "sax",
	"sitar", "space", "speech", "stab", "tabla", "tech", "techno",
	"tink", "tok", "trump", "ul", "wind", "wobble", "world", "xmas",
}

// Drum machine bank names understood by bank().
var defaultBanks = []string{
	"AkaiLinn", "AkaiMPC60", "AkaiXR10", "AlesisHR16", "AlesisSR16",
	"BossDR110", "BossDR220", "BossDR55", "CasioRZ1", "CasioSK1",
	"CasioVL1", "DoepferMS404", "EmuDrumulator", "EmuSP12",
	"KorgDDM110", "KorgKPR77", "KorgM1", "KorgMinipops",
	"LinnDrum", "Linn9000", "LinnLM1", "LinnLM2",
	"MoogConcertMateMG1", "OberheimDMX", "RhodesPolaris", "RhythmAce",
	"RolandCompurhythm1000", "RolandCompurhythm78", "RolandCompurhythm8000",
	"RolandD110", "RolandD70", "RolandDDR30", "RolandJD990",
	"RolandMC202", "RolandMC303", "RolandR8", "RolandS50",
	"RolandSH09", "RolandSystem100", "RolandTR505", "RolandTR606",
	"RolandTR626", "RolandTR707", "RolandTR727", "RolandTR808",
	"RolandTR909", "SakataDPM48", "SequentialCircuitsDrumtraks",
	"SequentialCircuitsTom", "SimmonsSDS400", "SimmonsSDS5",
	"ViscoSpaceDrum", "XdrumLM8953", "YamahaRM50", "YamahaRX21",
	"YamahaRX5", "YamahaRY30", "YamahaTG33",
}

// Scale names accepted by scale().
var scaleNames = []string{
	"major", "minor", "ionian", "dorian", "phrygian", "lydian",
	"mixolydian", "aeolian", "locrian",
	"majorPentatonic", "minorPentatonic", "bebopMajor", "bebopMinor",
	"harmonicMajor", "harmonicMinor", "melodicMinor", "melodicMajor",
	"blues", "bluesMajor", "bluesMinor",
	"chromatic", "wholetone", "augmented", "diminished",
	"egyptian", "hirajoshi", "iwato", "kumoi", "pelog", "prometheus",
	"ritusen", "spanish", "todi",
}

// Voicing modes accepted by mode() and voicing().
var voicingModes = []string{
	"above", "below", "duck", "root",
	"lefthand", "triads",
}

// Structural single-character atoms that are always valid inside notation.
var structuralAtoms = map[string]struct{}{
	"x": {}, "t": {}, "f": {}, "r": {}, "-": {}, "_": {},
}

// IsStructuralAtom reports whether text is one of the fixed structural
// literals (boolean/rest shorthand) that skip vocabulary checks.
func IsStructuralAtom(text string) bool {
	_, ok := structuralAtoms[text]
	return ok
}

// noteNames generates every spelled note name: letters a-g, optional sharp
// or flat suffix, optional octave digit.
func noteNames() []string {
	var out []string
	for letter := 'a'; letter <= 'g'; letter++ {
		for _, accidental := range []string{"", "s", "b"} {
			base := fmt.Sprintf("%c%s", letter, accidental)
			out = append(out, base)
			for oct := 0; oct <= 9; oct++ {
				out = append(out, fmt.Sprintf("%s%d", base, oct))
			}
		}
	}
	return out
}
