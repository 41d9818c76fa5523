package textgen

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"strings"
)

const (
	// DefaultLength is the target character count used when none is given.
	DefaultLength = 256
	// minLength is the floor below which targets are clamped up.
	minLength = 16
	// lengthMargin is how far past the target the synthesizer overshoots
	// before truncating.
	lengthMargin = 24
)

var baseWords = []string{
	"ember", "silk", "cobalt", "whisper", "lantern", "hollow", "glimmer", "marble",
	"quartz", "ripple", "velvet", "arbor", "lumen", "willow", "bramble", "cinder",
	"drift", "harbor", "meadow", "sable", "thistle", "vesper", "orchard", "pebble",
	"fable", "tundra", "saffron", "cedar", "raven", "glade", "tide", "moss",
	"fern", "slate", "echo", "briar",
}

var syllables = []string{
	"ka", "lo", "mi", "ven", "tra", "sol", "ne", "ri",
	"tha", "zu", "pel", "mor", "ashi", "quen", "dal", "fi",
	"ro", "lun", "ce", "bram", "vor", "tis", "ena", "gil",
}

var prefixes = []string{"un", "re", "over", "under", "proto", "semi", "neo", "out"}

var suffixes = []string{"ish", "ling", "ward", "most", "like", "ery", "ness", "let"}

var interiorMarks = []string{",", ",", ";", ":"}

var endMarks = []string{".", ".", ".", "!", "?"}

// LocalSynthesizer produces plausible-looking pseudo-text of approximately a
// requested character length. It has no external dependencies and no failure
// modes: it is the pipeline's guaranteed-success path.
//
// Randomness comes from crypto/rand so output is not reproducible or
// predictable from prior output. A deterministic source exists only for test
// fixtures, never as the default path.
type LocalSynthesizer struct {
	defaultLength int
	source        io.Reader
}

// NewLocalSynthesizer creates a synthesizer backed by crypto/rand.
func NewLocalSynthesizer() *LocalSynthesizer {
	return &LocalSynthesizer{defaultLength: DefaultLength, source: rand.Reader}
}

// newSeededSynthesizer creates a synthesizer reading randomness from source.
// Test fixtures only.
func newSeededSynthesizer(source io.Reader) *LocalSynthesizer {
	return &LocalSynthesizer{defaultLength: DefaultLength, source: source}
}

// Generate returns pseudo-text of exactly the target character count.
// Targets of 0 or below select the default length; targets under the floor
// are clamped up to it. The result is never empty and never exceeds the
// target.
func (s *LocalSynthesizer) Generate(targetChars int) string {
	target := targetChars
	if target <= 0 {
		target = s.defaultLength
	}
	if target < minLength {
		target = minLength
	}

	var b strings.Builder
	for b.Len() <= target+lengthMargin {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(s.sentence())
	}

	runes := []rune(b.String())
	if len(runes) > target {
		runes = runes[:target]
	}
	return string(runes)
}

// sentence synthesizes one sentence of 5-16 word slots, capitalized and
// closed with a random terminator.
func (s *LocalSynthesizer) sentence() string {
	count := 5 + s.intn(12)
	words := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var word string
		switch roll := s.intn(100); {
		case roll < 55:
			word = s.pick(baseWords)
		case roll < 85:
			word = s.mutate(s.pick(baseWords))
		default:
			word = s.pseudoword()
		}
		// Light interior punctuation, never on the edge slots.
		if i > 0 && i < count-1 && s.chance(8) {
			word += s.pick(interiorMarks)
		}
		words = append(words, word)
	}

	sentence := strings.Join(words, " ")
	sentence = strings.ToUpper(sentence[:1]) + sentence[1:]
	sentence = strings.TrimRight(sentence, " ,;:-")
	return sentence + s.pick(endMarks)
}

// mutate applies independent low-probability transformations to a base word.
// A word may pass through unchanged when no check fires.
func (s *LocalSynthesizer) mutate(word string) string {
	if s.chance(30) {
		i := s.intn(len(word))
		word = word[:i+1] + word[i:]
	}
	if s.chance(25) {
		word = word + "-" + s.pick(baseWords)
	}
	if s.chance(35) {
		word += s.pick(suffixes)
	}
	if s.chance(30) {
		word = s.pick(prefixes) + word
	}
	if s.chance(20) {
		if s.chance(50) {
			word = strings.ToUpper(word[:1]) + word[1:]
		} else {
			word = strings.ToUpper(word)
		}
	}
	return word
}

// pseudoword builds a word from 2-4 syllable fragments.
func (s *LocalSynthesizer) pseudoword() string {
	count := 2 + s.intn(3)
	var b strings.Builder
	for i := 0; i < count; i++ {
		b.WriteString(s.pick(syllables))
	}
	word := b.String()
	if s.chance(15) {
		word += s.pick(suffixes)
	}
	return word
}

// intn returns a uniform-ish value in [0, n). The synthesizer must never
// fail, so a short read from the source degrades to 0 instead of erroring.
func (s *LocalSynthesizer) intn(n int) int {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := io.ReadFull(s.source, buf[:]); err != nil {
		return 0
	}
	return int(binary.LittleEndian.Uint64(buf[:]) % uint64(n))
}

func (s *LocalSynthesizer) chance(percent int) bool {
	return s.intn(100) < percent
}

func (s *LocalSynthesizer) pick(list []string) string {
	return list[s.intn(len(list))]
}
