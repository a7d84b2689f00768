package binaryfield

import (
	"math/rand"
	"testing"
)

func randElems(rng *rand.Rand, n int) []Elem {
	out := make([]Elem, n)
	for i := range out {
		out[i] = Elem(rng.Intn(1 << 16))
	}
	return out
}

func TestPackUnpackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	for i := 0; i < 200; i++ {
		elems := randElems(rng, Lanes)
		p, err := Pack(elems)
		if err != nil {
			t.Fatalf("Pack: %v", err)
		}
		got := p.Unpack()
		for j := range elems {
			if got[j] != elems[j] {
				t.Fatalf("lane %d: got %d, want %d", j, got[j], elems[j])
			}
			if p.Lane(j) != elems[j] {
				t.Fatalf("Lane(%d) = %d, want %d", j, p.Lane(j), elems[j])
			}
		}
	}
}

func TestPackLengthMismatch(t *testing.T) {
	if _, err := Pack(make([]Elem, Lanes-1)); err != ErrLengthMismatch {
		t.Fatalf("Pack short slice: err = %v, want ErrLengthMismatch", err)
	}
	if _, err := Pack(make([]Elem, Lanes+1)); err != ErrLengthMismatch {
		t.Fatalf("Pack long slice: err = %v, want ErrLengthMismatch", err)
	}
	if _, err := PackRow(make([]Elem, 2*Lanes+1)); err != ErrLengthMismatch {
		t.Fatalf("PackRow ragged row: err = %v, want ErrLengthMismatch", err)
	}
}

func TestPackRowRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	row := randElems(rng, 8*Lanes)
	packed, err := PackRow(row)
	if err != nil {
		t.Fatalf("PackRow: %v", err)
	}
	got := UnpackRow(packed)
	if len(got) != len(row) {
		t.Fatalf("UnpackRow length %d, want %d", len(got), len(row))
	}
	for i := range row {
		if got[i] != row[i] {
			t.Fatalf("element %d: got %d, want %d", i, got[i], row[i])
		}
	}
}

// Every packed operation must agree lane-by-lane with the scalar field.
func TestPackedMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for i := 0; i < 500; i++ {
		as := randElems(rng, Lanes)
		bs := randElems(rng, Lanes)
		s := Elem(rng.Intn(1 << 16))
		pa, _ := Pack(as)
		pb, _ := Pack(bs)

		sum := pa.Add(pb).Unpack()
		prod := pa.Mul(pb).Unpack()
		scaled := pa.BroadcastMul(s).Unpack()
		for j := 0; j < Lanes; j++ {
			if sum[j] != as[j].Add(bs[j]) {
				t.Fatalf("Add lane %d: got %d, want %d", j, sum[j], as[j].Add(bs[j]))
			}
			if prod[j] != as[j].Mul(bs[j]) {
				t.Fatalf("Mul lane %d: got %d, want %d", j, prod[j], as[j].Mul(bs[j]))
			}
			if scaled[j] != as[j].Mul(s) {
				t.Fatalf("BroadcastMul lane %d: got %d, want %d", j, scaled[j], as[j].Mul(s))
			}
		}
	}
}
