package record

import (
	"bufio"
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	defaultBufferSize   = 1 << 16
	defaultMaxTokenSize = 1 << 24 // 16MB, a single record should never be that large
)

// ProcessFunc turns one record into output bytes. A nil result writes
// nothing. An error stops processing.
type ProcessFunc func(ctx context.Context, record []byte) ([]byte, error)

// ProcessorOption allows configuration of the Processor.
type ProcessorOption func(*Processor)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.numWorkers = n
		}
	}
}

// WithMaxTokenSize sets the maximum size of a single record.
func WithMaxTokenSize(size int) ProcessorOption {
	return func(p *Processor) {
		if size > 0 {
			p.maxTokenSize = size
		}
	}
}

// WithSplitFunc replaces the record splitter.
func WithSplitFunc(f bufio.SplitFunc) ProcessorOption {
	return func(p *Processor) {
		p.splitFunc = f
	}
}

// Processor runs a ProcessFunc over all records of a stream in parallel and
// writes the results in input order.
type Processor struct {
	splitFunc    bufio.SplitFunc
	processFunc  ProcessFunc
	numWorkers   int
	maxTokenSize int
}

// NewProcessor creates a new Processor that splits on MARCXML records.
func NewProcessor(processFunc ProcessFunc, opts ...ProcessorOption) *Processor {
	p := &Processor{
		splitFunc:    SplitRecords,
		processFunc:  processFunc,
		numWorkers:   runtime.NumCPU(),
		maxTokenSize: defaultMaxTokenSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type work struct {
	seq  int
	data []byte
}

// Process reads records from r and writes processed records to w.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Split(p.splitFunc)
	scanner.Buffer(make([]byte, 0, min(defaultBufferSize, p.maxTokenSize)), p.maxTokenSize)
	var (
		queue   = make(chan work, p.numWorkers*2)
		results = make(chan work, p.numWorkers*2)
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(queue)
		for seq := 0; scanner.Scan(); seq++ {
			data := make([]byte, len(scanner.Bytes()))
			copy(data, scanner.Bytes())
			select {
			case queue <- work{seq: seq, data: data}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return scanner.Err()
	})
	workers, wctx := errgroup.WithContext(ctx)
	for i := 0; i < p.numWorkers; i++ {
		workers.Go(func() error {
			for item := range queue {
				result, err := p.processFunc(wctx, item.data)
				if err != nil {
					return err
				}
				select {
				case results <- work{seq: item.seq, data: result}:
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})
	g.Go(func() error {
		var (
			next    int
			pending = make(map[int][]byte)
		)
		for item := range results {
			pending[item.seq] = item.data
			for {
				data, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if data == nil {
					continue
				}
				if _, err := bw.Write(data); err != nil {
					return err
				}
			}
		}
		return bw.Flush()
	})
	return g.Wait()
}
