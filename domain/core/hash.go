package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// InputHash fingerprints the exact numeric inputs of a comparison so that a
// stored result can be matched against a re-run. Identical inputs must hash
// identically, so values are formatted with full float64 round-trip precision.
type InputHash Hash

// ComputeInputHash fingerprints both samples' (value, uncertainty) pairs.
func ComputeInputHash(xValues, xUncerts, yValues, yUncerts []float64) InputHash {
	var data strings.Builder
	writeSeries := func(tag string, series []float64) {
		data.WriteString(tag)
		for _, v := range series {
			fmt.Fprintf(&data, "%x;", v)
		}
	}
	writeSeries("xv:", xValues)
	writeSeries("xu:", xUncerts)
	writeSeries("yv:", yValues)
	writeSeries("yu:", yUncerts)
	return InputHash(NewHash([]byte(data.String())))
}

func (h InputHash) String() string { return Hash(h).String() }
