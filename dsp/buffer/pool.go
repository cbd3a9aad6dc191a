package buffer

import "sync"

// Pool provides sync.Pool-based reuse of mono scratch Buffers so that
// per-frame work in analysis and synthesis loops does not allocate.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{format: Format{Channels: 1, Order: nativeOrder}}
			},
		},
	}
}

// Get returns a mono Buffer with the requested length. The buffer is zeroed.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Resize(length)
	b.Zero()
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil || b.format.Channels != 1 {
		return
	}
	p.pool.Put(b)
}

// ComplexPool is the Complex counterpart of Pool.
type ComplexPool struct {
	pool sync.Pool
}

// NewComplexPool returns a ComplexPool ready for use.
func NewComplexPool() *ComplexPool {
	return &ComplexPool{
		pool: sync.Pool{
			New: func() any { return &Complex{} },
		},
	}
}

// Get returns a zeroed Complex of n bins.
func (p *ComplexPool) Get(n int) *Complex {
	c := p.pool.Get().(*Complex)
	c.Resize(n)
	c.Zero()
	return c
}

// Put returns c to the pool. The caller must not use c afterwards.
func (p *ComplexPool) Put(c *Complex) {
	if c == nil {
		return
	}
	p.pool.Put(c)
}
