package ioext

import (
	"bytes"
	"sync"
)

const (
	initialBufferSize = 64 * 1024
	// Buffers grown past this by a big archive are left to the GC.
	maxPooledBufferSize = 8 * 1024 * 1024
)

var downloadBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	buf := downloadBuffers.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	downloadBuffers.Put(buf)
}
