package carquet

import (
	"runtime"
	"sync"
)

// Batch is one page-aligned slice of rows gathered across a set of
// projected columns. Each entry in Values/DefinitionLevels/RepetitionLevels
// corresponds to the same index in Columns.
type Batch struct {
	Columns          []string
	Values           []interface{}
	DefinitionLevels [][]int32
	RepetitionLevels [][]int32
	NumNulls         []int
}

// BatchReader reads aligned pages across a projected set of columns from a
// single row group, fetching each column's next page concurrently but
// bounded to a fixed worker count — a bounded fork-join page prefetch phase
// is the only point at which this package reads file bytes from more than
// one goroutine at a time. Joining happens once every forked read completes,
// so batches are always returned in row order.
type BatchReader struct {
	columns []*ColumnReader
	paths   []string
	maxPar  int
}

// NewBatchReader opens a ColumnReader for every path and returns a
// BatchReader that reads them in lock-step. maxParallel bounds how many
// column pages are decoded concurrently per Next call; 0 selects
// runtime.GOMAXPROCS(0).
func NewBatchReader(rg *RowGroup, paths []string, maxParallel int) (*BatchReader, error) {
	if maxParallel <= 0 {
		maxParallel = runtime.GOMAXPROCS(0)
	}
	readers := make([]*ColumnReader, len(paths))
	for i, p := range paths {
		r, err := rg.ColumnByPath(p)
		if err != nil {
			return nil, err
		}
		readers[i] = r
	}
	return &BatchReader{columns: readers, paths: paths, maxPar: maxParallel}, nil
}

// HasNext reports whether every projected column still has rows left. The
// columns of one row group always carry the same row count, so they run out
// together barring a corrupt file.
func (b *BatchReader) HasNext() bool {
	for _, c := range b.columns {
		if !c.HasNext() {
			return false
		}
	}
	return len(b.columns) > 0
}

type columnPageResult struct {
	page *DecodedPage
	err  error
}

// Next decodes the next page of every projected column, forking up to
// maxParallel goroutines to do so and joining their results into one Batch.
func (b *BatchReader) Next() (*Batch, error) {
	n := len(b.columns)
	results := make([]columnPageResult, n)

	sem := make(chan struct{}, b.maxPar)
	var wg sync.WaitGroup
	wg.Add(n)
	for i, col := range b.columns {
		i, col := i, col
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			page, err := col.ReadPage()
			results[i] = columnPageResult{page: page, err: err}
		}()
	}
	wg.Wait()

	batch := &Batch{
		Columns:          b.paths,
		Values:           make([]interface{}, n),
		DefinitionLevels: make([][]int32, n),
		RepetitionLevels: make([][]int32, n),
		NumNulls:         make([]int, n),
	}
	for i, r := range results {
		if r.err != nil {
			return nil, newError("Next", IO, r.err).withColumn(b.paths[i])
		}
		batch.Values[i] = r.page.Values
		batch.DefinitionLevels[i] = r.page.DefinitionLevels
		batch.RepetitionLevels[i] = r.page.RepetitionLevels
		batch.NumNulls[i] = r.page.NumNulls
	}
	return batch, nil
}
