package binaryfield

import (
	"math/rand"
	"testing"
)

// Products cross-checked against an independent implementation of the
// tower-field multiplication.
func TestMulKnownAnswers(t *testing.T) {
	cases := []struct {
		a, b, want Elem
	}{
		{0, 0, 0},
		{0, 1, 0},
		{1, 1, 1},
		{1, 37, 37},
		{3, 5, 15},
		{7, 11, 4},
		{8, 2, 12},
		{2, 3, 1},
		{32147, 48725, 43100},
	}
	for _, c := range cases {
		if got := c.a.Mul(c.b); got != c.want {
			t.Fatalf("Mul(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got := c.b.Mul(c.a); got != c.want {
			t.Fatalf("Mul(%d, %d) = %d, want %d", c.b, c.a, got, c.want)
		}
	}
}

func TestFieldAxioms(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		a := Elem(rng.Intn(1 << 16))
		b := Elem(rng.Intn(1 << 16))
		c := Elem(rng.Intn(1 << 16))

		if a.Add(b) != b.Add(a) {
			t.Fatalf("addition not commutative for %d, %d", a, b)
		}
		if a.Add(a) != Zero() {
			t.Fatalf("addition not self-inverse for %d", a)
		}
		if a.Mul(b) != b.Mul(a) {
			t.Fatalf("multiplication not commutative for %d, %d", a, b)
		}
		if a.Mul(b.Mul(c)) != a.Mul(b).Mul(c) {
			t.Fatalf("multiplication not associative for %d, %d, %d", a, b, c)
		}
		if a.Mul(b.Add(c)) != a.Mul(b).Add(a.Mul(c)) {
			t.Fatalf("distributivity fails for %d, %d, %d", a, b, c)
		}
		if a.Mul(One()) != a {
			t.Fatalf("1 is not the multiplicative identity for %d", a)
		}
		if a.Mul(Zero()) != Zero() {
			t.Fatalf("0 does not annihilate %d", a)
		}
	}
}

func TestInv(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		a := Elem(rng.Intn(1<<16-1) + 1)
		if got := a.Mul(a.Inv()); got != One() {
			t.Fatalf("a * a^-1 = %d for a = %d, want 1", got, a)
		}
	}
	// Exhaustive over the GF(256) sub-field.
	for v := 1; v < 256; v++ {
		a := Elem(v)
		if got := a.Mul(a.Inv()); got != One() {
			t.Fatalf("a * a^-1 = %d for a = %d, want 1", got, a)
		}
	}
}

func TestInvZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Inv(0) did not panic")
		}
	}()
	Zero().Inv()
}

func TestDiv(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		a := Elem(rng.Intn(1 << 16))
		b := Elem(rng.Intn(1<<16-1) + 1)
		if got := a.Div(b).Mul(b); got != a {
			t.Fatalf("(a/b)*b = %d for a = %d, b = %d, want a", got, a, b)
		}
	}
}

func TestPow(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		a := Elem(rng.Intn(1 << 16))
		want := One()
		for e := uint(0); e <= 8; e++ {
			if got := a.Pow(e); got != want {
				t.Fatalf("Pow(%d, %d) = %d, want %d", a, e, got, want)
			}
			want = want.Mul(a)
		}
	}
	// Fermat: a^(2^16 - 1) = 1 for nonzero a.
	for i := 0; i < 50; i++ {
		a := Elem(rng.Intn(1<<16-1) + 1)
		if got := a.Pow(1<<16 - 1); got != One() {
			t.Fatalf("a^(2^16-1) = %d for a = %d, want 1", got, a)
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	for _, v := range []Elem{0, 1, 255, 256, 0xABCD, 0xFFFF} {
		if got := ElemFromBytes(v.Bytes()); got != v {
			t.Fatalf("bytes round trip: got %d, want %d", got, v)
		}
	}
	b := Elem(0x1234).Bytes()
	if b[0] != 0x12 || b[1] != 0x34 {
		t.Fatalf("Bytes(0x1234) = %x, want big-endian 1234", b)
	}
}
