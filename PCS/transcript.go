package pcs

import (
	"encoding/binary"

	"github.com/tuneinsight/lattigo/v4/utils"
)

const (
	transcriptTagPrefix       byte = 0x02
	transcriptAbsorbPrefix    byte = 0x03
	transcriptChallengePrefix byte = 0x04
)

// Transcript is the Fiat–Shamir channel shared by prover and verifier. Both
// sides absorb the same public messages in the same order and therefore
// derive identical challenges; the prover never controls a challenge after
// the message it binds. State chains through SHAKE-256 and challenge bytes
// are expanded from a PRNG keyed on the ratcheted state, so one transcript
// can issue any number of independently keyed challenges.
//
// A Transcript is not safe for concurrent use; the protocol driver owns it
// and calls it sequentially.
type Transcript struct {
	state    [digestSize]byte
	absorbed bool
}

// NewTranscript starts a transcript bound to a protocol tag.
func NewTranscript(tag string) *Transcript {
	t := &Transcript{}
	t.state = shake32(append([]byte{transcriptTagPrefix}, tag...))
	return t
}

// Absorb mixes a labeled public message into the state. Label and data are
// length-prefixed so distinct (label, data) splits can never collide.
func (t *Transcript) Absorb(label string, data []byte) {
	buf := make([]byte, 0, 1+digestSize+8+len(label)+len(data))
	buf = append(buf, transcriptAbsorbPrefix)
	buf = append(buf, t.state[:]...)
	buf = appendLenPrefixed(buf, []byte(label))
	buf = appendLenPrefixed(buf, data)
	t.state = shake32(buf)
	t.absorbed = true
}

// Challenge returns n pseudorandom bytes bound to everything absorbed so
// far. It panics if nothing has been absorbed: a challenge drawn before any
// message binds nothing and breaks the protocol silently.
func (t *Transcript) Challenge(label string, n int) []byte {
	prng := t.challengePRNG(label)
	out := make([]byte, n)
	_, _ = prng.Read(out)
	return out
}

// ChallengeIndices returns count distinct indices uniform over [0, bound),
// drawn by rejection sampling so no residue bias favors low indices. It
// panics if count exceeds bound or bound is not positive.
func (t *Transcript) ChallengeIndices(label string, count, bound int) []int {
	if bound <= 0 {
		panic("pcs: challenge index bound must be positive")
	}
	if count > bound {
		panic("pcs: more distinct indices requested than the bound admits")
	}
	prng := t.challengePRNG(label)
	limit := (uint64(1) << 32) / uint64(bound) * uint64(bound)
	seen := make(map[int]struct{}, count)
	out := make([]int, 0, count)
	var buf [4]byte
	for len(out) < count {
		_, _ = prng.Read(buf[:])
		x := uint64(binary.BigEndian.Uint32(buf[:]))
		if x >= limit {
			continue
		}
		idx := int(x % uint64(bound))
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}

// challengePRNG ratchets the state over the challenge label and keys a
// deterministic expander on the new state. Ratcheting first means two
// challenges with different labels, or the same label at different points,
// never share an expander key.
func (t *Transcript) challengePRNG(label string) *utils.KeyedPRNG {
	if !t.absorbed {
		panic("pcs: transcript challenged before any message was absorbed")
	}
	buf := make([]byte, 0, 1+digestSize+4+len(label))
	buf = append(buf, transcriptChallengePrefix)
	buf = append(buf, t.state[:]...)
	buf = appendLenPrefixed(buf, []byte(label))
	t.state = shake32(buf)
	prng, err := utils.NewKeyedPRNG(t.state[:])
	if err != nil {
		panic("pcs: keyed PRNG: " + err.Error())
	}
	return prng
}

func appendLenPrefixed(buf, data []byte) []byte {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(data)))
	buf = append(buf, l[:]...)
	return append(buf, data...)
}
