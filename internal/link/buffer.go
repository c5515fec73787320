// internal/link/buffer.go
package link

// DiagBuffer is a bounded ring of diagnostic lines. Oldest entries are
// evicted first. A monotone sequence number counts every line ever
// appended so callers can ask for lines added after a mark even when
// eviction has happened in between.
type DiagBuffer struct {
	capacity int
	lines    []string
	seq      uint64
}

func NewDiagBuffer(capacity int) *DiagBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &DiagBuffer{capacity: capacity}
}

func (b *DiagBuffer) Append(line string) {
	b.lines = append(b.lines, line)
	b.seq++
	if len(b.lines) > b.capacity {
		b.lines = b.lines[len(b.lines)-b.capacity:]
	}
}

func (b *DiagBuffer) Len() int {
	return len(b.lines)
}

// Seq returns the total number of lines ever appended.
func (b *DiagBuffer) Seq() uint64 {
	return b.seq
}

// Lines returns buffered lines oldest-first. max <= 0 returns everything;
// otherwise only the most recent max lines.
func (b *DiagBuffer) Lines(max int) []string {
	n := len(b.lines)
	if max > 0 && max < n {
		n = max
	}
	out := make([]string, n)
	copy(out, b.lines[len(b.lines)-n:])
	return out
}

// Since returns lines appended after the given sequence mark, oldest-first.
// Lines already evicted are gone; callers must tolerate the gap.
func (b *DiagBuffer) Since(mark uint64) []string {
	if mark >= b.seq {
		return nil
	}
	missing := b.seq - uint64(len(b.lines))
	start := 0
	if mark > missing {
		start = int(mark - missing)
	}
	out := make([]string, len(b.lines)-start)
	copy(out, b.lines[start:])
	return out
}
