package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple key/value iterators into a single iterator.
// Keys are not deduplicated; later sequences are expected to override earlier ones
// when the consumer stores them into a map.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
