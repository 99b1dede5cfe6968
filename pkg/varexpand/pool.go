package varexpand

import (
	"bytes"
	"sync"
)

// maxPooledScratch keeps a single huge value from pinning memory in the pool.
const maxPooledScratch = 64 << 10

var scratchPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// acquireScratch returns an empty buffer for building a modifier result.
// Every acquire must be paired with releaseScratch.
func acquireScratch() *bytes.Buffer {
	buf := scratchPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// releaseScratch copies the buffer contents out and returns the buffer to
// the pool. The buffer must not be used afterwards.
func releaseScratch(buf *bytes.Buffer) string {
	s := buf.String()
	if buf.Cap() <= maxPooledScratch {
		scratchPool.Put(buf)
	}
	return s
}
