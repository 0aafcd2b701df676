package telecodec

import (
	"errors"
	"runtime"
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
)

// rejectAllowance bounds how many oversized samples each requested sample
// may cost before generation gives up. With the struct scheme under the
// default budget rejections are rare; the allowance exists so a
// misconfigured limit cannot spin forever.
const rejectAllowance = 64

// Pool is a pre-generated collection of in-budget payloads, built once
// before a transmission run and read-only afterwards. Records are
// independent, so generation is spread across workers with nothing shared
// but the rejection counter; each worker fills its own partition and the
// partitions are merged at the end.
type Pool struct {
	payloads [][]byte
	sizes    []int
	rejected *xsync.Counter
}

// PoolStats summarizes a generated pool for observability. Rejected counts
// oversized samples that were discarded and regenerated; rejection is not
// an error.
type PoolStats struct {
	Count    int
	Rejected int64
	AvgSize  float64
	MinSize  int
	MaxSize  int
}

// GeneratePool produces n payloads of the given scheme, every one strictly
// under limit. g picks the map grammar variant as in Encode. Oversized
// outputs are discarded and regenerated; any other encode failure is fatal
// and aborts generation. workers <= 0 means one worker per CPU.
func GeneratePool(n int, scheme Scheme, g *Grammar, limit, workers int, seed uint64) (*Pool, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = max(n, 1)
	}

	p := &Pool{rejected: xsync.NewCounter()}

	parts := make([][][]byte, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup

	for w := range workers {
		share := n / workers
		if w < n%workers {
			share++
		}
		wg.Add(1)
		go func(w, share int) {
			defer wg.Done()
			gen := NewGenerator(seed + uint64(w))
			part := make([][]byte, 0, share)
			budget := share * rejectAllowance

			for len(part) < share {
				rec := gen.Record()
				b, err := Encode(&rec, scheme, g, limit)
				if err != nil {
					var tooLarge *PayloadTooLargeError
					if errors.As(err, &tooLarge) {
						p.rejected.Add(1)
						if budget--; budget < 0 {
							errs[w] = ErrPoolExhausted
							return
						}
						continue
					}
					errs[w] = err
					return
				}
				part = append(part, b)
			}
			parts[w] = part
		}(w, share)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	for _, part := range parts {
		for _, b := range part {
			p.payloads = append(p.payloads, b)
			p.sizes = append(p.sizes, len(b))
		}
	}
	return p, nil
}

// Len returns the number of payloads in the pool.
func (p *Pool) Len() int { return len(p.payloads) }

// Payload returns pool entry i. Callers must not mutate the returned slice.
func (p *Pool) Payload(i int) []byte { return p.payloads[i] }

// Rejected returns how many oversized samples were discarded during
// generation.
func (p *Pool) Rejected() int64 { return p.rejected.Value() }

// Stats summarizes the pool.
func (p *Pool) Stats() PoolStats {
	s := PoolStats{Count: len(p.payloads), Rejected: p.rejected.Value()}
	if s.Count == 0 {
		return s
	}
	s.MinSize = p.sizes[0]
	total := 0
	for _, n := range p.sizes {
		total += n
		s.MinSize = min(s.MinSize, n)
		s.MaxSize = max(s.MaxSize, n)
	}
	s.AvgSize = float64(total) / float64(s.Count)
	return s
}
