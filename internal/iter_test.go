package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterAddressedConcat(t *testing.T) {
	assert := assert.New(t)

	code := IterAddressed(100, []string{"a", "b"})
	data := IterAddressed(102, []string{"c"})

	var addrs []int
	var items []string
	for addr, item := range IterSeq2Concat(code, data) {
		addrs = append(addrs, addr)
		items = append(items, item)
	}

	assert.Equal([]int{100, 101, 102}, addrs)
	assert.Equal([]string{"a", "b", "c"}, items)

	// Early stop.
	count := 0
	for range IterSeq2Concat(code, data) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}
