// internal/link/buffer_test.go
package link

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagBufferEvictsOldestFirst(t *testing.T) {
	b := NewDiagBuffer(3)
	for i := 1; i <= 5; i++ {
		b.Append(fmt.Sprintf("line %d", i))
	}

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, b.Lines(0))
	assert.Equal(t, uint64(5), b.Seq())
}

func TestDiagBufferLinesMax(t *testing.T) {
	b := NewDiagBuffer(10)
	b.Append("a")
	b.Append("b")
	b.Append("c")

	assert.Equal(t, []string{"b", "c"}, b.Lines(2))
	assert.Equal(t, []string{"a", "b", "c"}, b.Lines(0))
	assert.Equal(t, []string{"a", "b", "c"}, b.Lines(99))
}

func TestDiagBufferSince(t *testing.T) {
	b := NewDiagBuffer(3)
	b.Append("a")
	mark := b.Seq()
	b.Append("b")
	b.Append("c")

	assert.Equal(t, []string{"b", "c"}, b.Since(mark))
	assert.Nil(t, b.Since(b.Seq()))

	// Mark older than the retention window still returns what survives.
	b.Append("d")
	b.Append("e")
	assert.Equal(t, []string{"c", "d", "e"}, b.Since(0))
}
