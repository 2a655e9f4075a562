package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1, "b": 2}
	b := map[string]int{"b": 3, "c": 4}

	all := map[string]int{}
	count := 0
	for key, value := range IterSeq2Concat(maps.All(a), maps.All(b)) {
		all[key] = value
		count++
	}

	assert.Equal(4, count)
	assert.Equal(map[string]int{"a": 1, "b": 3, "c": 4}, all)

	// Early stop
	count = 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(3, count)

	assert.Empty(maps.Collect(IterSeq2Concat[string, int]()))
}
