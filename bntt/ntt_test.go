package bntt

import (
	"math/rand"
	"testing"

	"binius-PCS/binaryfield"
)

func randRow(rng *rand.Rand, n int) []binaryfield.Elem {
	out := make([]binaryfield.Elem, n)
	for i := range out {
		out[i] = binaryfield.Elem(rng.Intn(1 << 16))
	}
	return out
}

func TestNewEncoderPanicsOutOfRange(t *testing.T) {
	for _, logN := range []int{-1, 17} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("NewEncoder(%d) did not panic", logN)
				}
			}()
			NewEncoder(logN)
		}()
	}
}

// Cross-checked against an independent implementation of the additive
// transform.
func TestNTTKnownAnswer(t *testing.T) {
	e := NewEncoder(3)
	in := []binaryfield.Elem{1, 2, 3, 4}
	want := []binaryfield.Elem{1, 3, 9, 15}
	got, err := e.NTT(in)
	if err != nil {
		t.Fatalf("NTT: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NTT output %d: got %d, want %d", i, got[i], want[i])
		}
	}
	back, err := e.InvNTT(got)
	if err != nil {
		t.Fatalf("InvNTT: %v", err)
	}
	for i := range in {
		if back[i] != in[i] {
			t.Fatalf("InvNTT output %d: got %d, want %d", i, back[i], in[i])
		}
	}
}

func TestExtendKnownAnswer(t *testing.T) {
	e := NewEncoder(3)
	row := []binaryfield.Elem{1, 3, 9, 15}
	want := []binaryfield.Elem{1, 3, 9, 15, 14, 15, 14, 11}
	got, err := e.Extend(row, 2)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Extend length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Extend output %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(20))
	e := NewEncoder(10)
	for _, n := range []int{1, 2, 8, 64, 1024} {
		for trial := 0; trial < 10; trial++ {
			row := randRow(rng, n)
			evals, err := e.NTT(row)
			if err != nil {
				t.Fatalf("NTT(n=%d): %v", n, err)
			}
			back, err := e.InvNTT(evals)
			if err != nil {
				t.Fatalf("InvNTT(n=%d): %v", n, err)
			}
			for i := range row {
				if back[i] != row[i] {
					t.Fatalf("round trip n=%d index %d: got %d, want %d", n, i, back[i], row[i])
				}
			}
		}
	}
}

// Extend must be linear over GF(2^16): the extension of a sum is the sum of
// the extensions, and scalar multiples commute with encoding. The whole
// spot-check protocol rests on this.
func TestExtendLinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	e := NewEncoder(8)
	for trial := 0; trial < 20; trial++ {
		a := randRow(rng, 32)
		b := randRow(rng, 32)
		s := binaryfield.Elem(rng.Intn(1 << 16))

		sum := make([]binaryfield.Elem, len(a))
		for i := range sum {
			sum[i] = a[i].Add(b[i].Mul(s))
		}
		ea, err := e.Extend(a, 4)
		if err != nil {
			t.Fatalf("Extend(a): %v", err)
		}
		eb, err := e.Extend(b, 4)
		if err != nil {
			t.Fatalf("Extend(b): %v", err)
		}
		esum, err := e.Extend(sum, 4)
		if err != nil {
			t.Fatalf("Extend(a + s*b): %v", err)
		}
		for i := range esum {
			if esum[i] != ea[i].Add(eb[i].Mul(s)) {
				t.Fatalf("linearity fails at %d", i)
			}
		}
	}
}

func TestExtendSystematic(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	e := NewEncoder(9)
	for _, n := range []int{1, 4, 16, 64} {
		for _, rate := range []int{1, 2, 4} {
			row := randRow(rng, n)
			ext, err := e.Extend(row, rate)
			if err != nil {
				t.Fatalf("Extend(n=%d, rate=%d): %v", n, rate, err)
			}
			if len(ext) != n*rate {
				t.Fatalf("Extend(n=%d, rate=%d) length %d", n, rate, len(ext))
			}
			for i := range row {
				if ext[i] != row[i] {
					t.Fatalf("code not systematic at %d (n=%d, rate=%d)", i, n, rate)
				}
			}
		}
	}
}

// Distinct messages must produce codewords agreeing on fewer than n
// positions: the code has minimum distance N - n + 1 (MDS), checked on
// sampled pairs.
func TestExtendDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	e := NewEncoder(8)
	const n, rate = 16, 4
	for trial := 0; trial < 50; trial++ {
		a := randRow(rng, n)
		b := randRow(rng, n)
		same := true
		for i := range a {
			if a[i] != b[i] {
				same = false
				break
			}
		}
		if same {
			continue
		}
		ea, _ := e.Extend(a, rate)
		eb, _ := e.Extend(b, rate)
		agree := 0
		for i := range ea {
			if ea[i] == eb[i] {
				agree++
			}
		}
		if agree >= n {
			t.Fatalf("distinct rows agree on %d of %d positions, want < %d", agree, n*rate, n)
		}
	}
}

func TestLengthValidation(t *testing.T) {
	e := NewEncoder(4)
	if _, err := e.NTT(make([]binaryfield.Elem, 3)); err == nil {
		t.Fatalf("NTT accepted non-power-of-two length")
	}
	if _, err := e.NTT(make([]binaryfield.Elem, 32)); err == nil {
		t.Fatalf("NTT accepted length beyond the domain")
	}
	if _, err := e.NTT(nil); err == nil {
		t.Fatalf("NTT accepted empty input")
	}
	if _, err := e.Extend(make([]binaryfield.Elem, 8), 3); err == nil {
		t.Fatalf("Extend accepted non-power-of-two rate")
	}
	if _, err := e.Extend(make([]binaryfield.Elem, 8), 4); err == nil {
		t.Fatalf("Extend accepted extension beyond the domain")
	}
	if _, err := e.Extend(make([]binaryfield.Elem, 8), 1); err != nil {
		t.Fatalf("Extend rejected rate 1: %v", err)
	}
}
