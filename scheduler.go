package img2ascii

import (
	"log/slog"
	"runtime"
	"sync"
)

// Span is a half-open range [Start, End) of output rows owned by one
// worker.
type Span struct {
	Start, End int
}

// Len returns the number of rows in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// WorkerCount returns the number of rendering workers for a requested
// count: requested when positive, otherwise the number of goroutines that
// can run in parallel, and never more than that. The result is at least 1.
func WorkerCount(requested int) int {
	procs := max(1, runtime.GOMAXPROCS(0))
	if requested > 0 {
		return min(requested, procs)
	}
	return procs
}

// Partition splits rows into workers contiguous spans that cover
// [0, rows) exactly once. Sizes differ by at most one: the first
// rows%workers spans get the extra row. Spans may be empty when there are
// more workers than rows.
func Partition(rows, workers int) []Span {
	rows = max(rows, 0)
	workers = max(workers, 1)

	perWorker := rows / workers
	extra := rows % workers
	spans := make([]Span, workers)
	start := 0
	for i := range spans {
		end := start + perWorker
		if i < extra {
			end++
		}
		spans[i] = Span{Start: start, End: end}
		start = end
	}
	return spans
}

// rowFunc renders one output row; false means the row is past the image
// and the rest of the span should be skipped.
type rowFunc func(outY int) ([]byte, bool)

// renderSpans runs one goroutine per span and waits for all of them. Each
// worker writes only table[span.Start:span.End]. A row whose rendering
// panics is logged and left nil; the worker moves on to its next row.
func renderSpans(log *slog.Logger, spans []Span, table [][]byte, render rowFunc) {
	var wg sync.WaitGroup
	for i, span := range spans {
		if span.Len() == 0 {
			continue
		}
		wg.Add(1)
		go func(worker int, span Span, slots [][]byte) {
			defer wg.Done()
			for outY := span.Start; outY < span.End; outY++ {
				line, ok := renderSafely(log, worker, outY, render)
				if !ok {
					break
				}
				slots[outY-span.Start] = line
			}
		}(i, span, table[span.Start:span.End:span.End])
	}
	wg.Wait()
}

// renderSafely calls render, converting a panic into an empty row.
func renderSafely(log *slog.Logger, worker, outY int, render rowFunc) (line []byte, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("dropping row", "row", outY, "worker", worker, "panic", r)
			line, ok = nil, true
		}
	}()
	return render(outY)
}
