package pcs

import (
	"bytes"

	"golang.org/x/crypto/sha3"
)

const (
	leafPrefix byte = 0x00
	nodePrefix byte = 0x01

	// digestSize is the Merkle hash width in bytes (SHAKE-256 truncated).
	digestSize = 32
)

// MerkleTree is a full binary Merkle tree over the serialized codeword
// columns. Leaves are domain-separated from internal nodes by a one-byte
// prefix so a leaf can never be reinterpreted as a node.
type MerkleTree struct {
	layers [][][digestSize]byte
}

// BuildMerkleTree builds a balanced tree from leaves, padding to the next
// power of two with empty leaves. Leaf hashing fans out on the worker pool;
// each slot is written exactly once so no synchronization beyond the join is
// needed.
func BuildMerkleTree(leaves [][]byte) *MerkleTree {
	n := len(leaves)
	size := 1
	for size < n {
		size <<= 1
	}
	layer := make([][digestSize]byte, size)
	parallelFor(n, func(i int) {
		leaf := leaves[i]
		buf := make([]byte, 1+len(leaf))
		buf[0] = leafPrefix
		copy(buf[1:], leaf)
		layer[i] = shake32(buf)
	})
	for i := n; i < size; i++ {
		layer[i] = shake32([]byte{leafPrefix})
	}
	layers := [][][digestSize]byte{layer}

	for sz := size; sz > 1; sz >>= 1 {
		prev := layers[len(layers)-1]
		next := make([][digestSize]byte, sz/2)
		for i := 0; i < sz; i += 2 {
			var buf [1 + 2*digestSize]byte
			buf[0] = nodePrefix
			copy(buf[1:], prev[i][:])
			copy(buf[1+digestSize:], prev[i+1][:])
			next[i/2] = shake32(buf[:])
		}
		layers = append(layers, next)
	}

	return &MerkleTree{layers: layers}
}

// Root returns the root hash.
func (mt *MerkleTree) Root() [digestSize]byte {
	return mt.layers[len(mt.layers)-1][0]
}

// Path returns the sibling path for leaf idx.
func (mt *MerkleTree) Path(idx int) [][]byte {
	path := make([][]byte, len(mt.layers)-1)
	for lvl := 0; lvl < len(mt.layers)-1; lvl++ {
		sib := idx ^ 1
		h := mt.layers[lvl][sib]
		path[lvl] = h[:]
		idx >>= 1
	}
	return path
}

// VerifyPath checks leaf→root via path.
func VerifyPath(leaf []byte, path [][]byte, root [digestSize]byte, idx int) bool {
	buf := make([]byte, 1+len(leaf))
	buf[0] = leafPrefix
	copy(buf[1:], leaf)
	h := shake32(buf)
	for _, sib := range path {
		if len(sib) != digestSize {
			return false
		}
		var tmp [1 + 2*digestSize]byte
		tmp[0] = nodePrefix
		if idx&1 == 0 {
			copy(tmp[1:], h[:])
			copy(tmp[1+digestSize:], sib)
		} else {
			copy(tmp[1:], sib)
			copy(tmp[1+digestSize:], h[:])
		}
		h = shake32(tmp[:])
		idx >>= 1
	}
	return bytes.Equal(h[:], root[:])
}

func shake32(data []byte) [digestSize]byte {
	var out [digestSize]byte
	h := sha3.NewShake256()
	_, _ = h.Write(data)
	_, _ = h.Read(out[:])
	return out
}
