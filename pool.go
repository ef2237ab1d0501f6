// seehuhn.de/go/scan - a polygon scan converter
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scan

// pool is a chunked arena for the short-lived records of a single
// rasterisation pass.  Records are allocated one at a time and freed
// all at once by reset, which keeps every chunk for reuse.  There is
// no per-record free.
//
// Chunks never grow in place, so pointers returned by alloc stay
// valid until the next reset.
type pool[T any] struct {
	// chunks[0] is a small chunk kept for the whole lifetime of the
	// pool, so that light workloads never touch the free list.
	// Allocation always fills the last chunk.
	chunks [][]T

	// free holds full-size chunks recycled by reset.
	free [][]T

	chunkCap int
}

// init prepares the pool.  firstCap is the capacity of the permanent
// first chunk, chunkCap the capacity of every further chunk.
func (p *pool[T]) init(firstCap, chunkCap int) {
	p.chunks = append(p.chunks[:0], make([]T, 0, firstCap))
	p.chunkCap = chunkCap
}

// alloc returns a pointer to a zeroed record.  The record stays valid
// until the next reset.
func (p *pool[T]) alloc() *T {
	cur := p.chunks[len(p.chunks)-1]
	if len(cur) == cap(cur) {
		cur = p.grab()
		p.chunks = append(p.chunks, cur)
	}
	cur = cur[:len(cur)+1]
	p.chunks[len(p.chunks)-1] = cur

	t := &cur[len(cur)-1]
	var zero T
	*t = zero
	return t
}

// grab returns an empty chunk, preferring the free list.
func (p *pool[T]) grab() []T {
	if n := len(p.free); n > 0 {
		c := p.free[n-1]
		p.free = p.free[:n-1]
		return c[:0]
	}
	return make([]T, 0, p.chunkCap)
}

// reset frees all records at once.  Chunk memory is retained and
// reused by subsequent allocations.
func (p *pool[T]) reset() {
	for _, c := range p.chunks[1:] {
		p.free = append(p.free, c)
	}
	p.chunks = p.chunks[:1]
	p.chunks[0] = p.chunks[0][:0]
}
