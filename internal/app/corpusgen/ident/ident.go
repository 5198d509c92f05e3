// Package ident assigns short deterministic identifiers to generated records.
package ident

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// Entity-kind prefixes.
const (
	PrefixVocab     = "v"
	PrefixSentence  = "s"
	PrefixSentence2 = "s2"
	PrefixQuestion  = "q"
)

// hashWidth is the number of hex digits kept from the digest.
const hashWidth = 6

// New returns "<prefix>-<hash>" where hash is the first hashWidth hex digits of
// md5("<prefix>-<word>-<ordinal>"). Identical inputs give identical IDs.
func New(prefix, word string, ordinal int) string {
	sum := md5.Sum([]byte(prefix + "-" + word + "-" + strconv.Itoa(ordinal)))
	return prefix + "-" + hex.EncodeToString(sum[:])[:hashWidth]
}

// Vocab returns the identifier of the vocabulary item for word.
// It always uses ordinal 0 so every record referencing word resolves to the same item.
func Vocab(word string) string {
	return New(PrefixVocab, word, 0)
}
