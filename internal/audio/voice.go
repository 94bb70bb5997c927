package audio

import (
	"hash/fnv"
	"math/rand/v2"
	"sync"

	"codeberg.org/snonux/wortkarte/internal/config"
)

// VoiceSelector picks the voice used for all clips of one word.
type VoiceSelector interface {
	Select(word string) string
}

// RandomVoice picks uniformly from a fixed set of voices.
type RandomVoice struct {
	mu     sync.Mutex
	voices []string
	rng    *rand.Rand
}

// NewRandomVoice creates a selector seeded with seed.
func NewRandomVoice(voices []string, seed uint64) *RandomVoice {
	return &RandomVoice{
		voices: voices,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (r *RandomVoice) Select(string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.voices[r.rng.IntN(len(r.voices))]
}

// FixedVoice always returns the same voice.
type FixedVoice string

func (f FixedVoice) Select(string) string {
	return string(f)
}

// HashVoice derives the voice from the word, so a word keeps its voice
// across regenerations.
type HashVoice []string

func (h HashVoice) Select(word string) string {
	sum := fnv.New32a()
	_, _ = sum.Write([]byte(word))
	return h[int(sum.Sum32()%uint32(len(h)))]
}

// NewVoiceSelector returns a FixedVoice when a voice is configured and a
// randomly seeded RandomVoice over the configured voices otherwise.
func NewVoiceSelector(cfg config.OpenAIConfig) VoiceSelector {
	if cfg.Voice != "" {
		return FixedVoice(cfg.Voice)
	}
	return NewRandomVoice(cfg.Voices, rand.Uint64())
}
