package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
)

// ErrNoText is recorded when a document yields no text at all.
var ErrNoText = errors.New("no text extracted")

// TextExtractor turns a binary document into text.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Input is one uploaded document. Err, when set, is a failure that happened
// before the batch (the file could not be read) and is reported in the
// input's position.
type Input struct {
	Filename string
	Data     []byte
	Err      error
}

// ErrorEntry records a file that contributed no records because it failed.
type ErrorEntry struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

func (e ErrorEntry) String() string {
	return fmt.Sprintf("Error processing %s: %s", e.Filename, e.Message)
}

// Result is the outcome of one batch run.
type Result struct {
	Family  extract.Family   `json:"family"`
	Files   int              `json:"files"`
	Records []extract.Record `json:"records"`
	Errors  []ErrorEntry     `json:"errors"`
}

// NoData reports a non-empty batch that produced no records.
func (r Result) NoData() bool {
	return r.Files > 0 && len(r.Records) == 0
}

// ErrorLines formats the error log, one line per entry.
func (r Result) ErrorLines() []string {
	lines := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		lines[i] = e.String()
	}
	return lines
}

// Progress is reported after each file finishes.
type Progress struct {
	Done     int
	Total    int
	Filename string
	Records  int
	Failed   bool
}

// Batch converts a set of documents of one family into records.
type Batch struct {
	Extractor  TextExtractor
	Workers    int
	Log        *slog.Logger
	Stats      *ParseStats
	OnProgress func(Progress)
}

type fileResult struct {
	records []extract.Record
	err     error
}

// Run processes every input independently. A failing file becomes an
// ErrorEntry and never aborts the batch. Records and errors are returned in
// input order regardless of how many workers ran.
func (b *Batch) Run(ctx context.Context, inputs []Input, family extract.Family) Result {
	log := b.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With("run_id", uuid.NewString())
	workers := b.Workers
	if workers <= 0 {
		workers = 1
	}

	results := make([]fileResult, len(inputs))
	var (
		mu   sync.Mutex
		done int
	)

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			start := time.Now()
			recs, err := b.processFile(ctx, in, family)
			results[i] = fileResult{records: recs, err: err}
			if b.Stats != nil {
				b.Stats.Record(time.Since(start).Milliseconds(), len(recs), err != nil)
			}

			flog := log.With("file", in.Filename, "family", string(family))
			if err != nil {
				flog.Warn("file failed", "error", err)
			} else {
				flog.Debug("file parsed", "records", len(recs), "elapsed_ms", time.Since(start).Milliseconds())
			}

			if b.OnProgress != nil {
				mu.Lock()
				done++
				p := Progress{Done: done, Total: len(inputs), Filename: in.Filename, Records: len(recs), Failed: err != nil}
				b.OnProgress(p)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Family: family, Files: len(inputs), Records: []extract.Record{}, Errors: []ErrorEntry{}}
	for i, r := range results {
		if r.err != nil {
			res.Errors = append(res.Errors, ErrorEntry{Filename: inputs[i].Filename, Message: r.err.Error()})
			continue
		}
		res.Records = append(res.Records, r.records...)
	}
	return res
}

// processFile runs text extraction and parsing for one document. Panics in
// the parsing stage are converted into errors for this file only.
func (b *Batch) processFile(ctx context.Context, in Input, family extract.Family) (recs []extract.Record, err error) {
	defer func() {
		if p := recover(); p != nil {
			recs, err = nil, fmt.Errorf("internal error: %v", p)
		}
	}()

	if in.Err != nil {
		return nil, in.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.Extractor == nil {
		return nil, errors.New("no text extractor configured")
	}

	text, err := b.Extractor.ExtractText(ctx, in.Filename, bytes.NewReader(in.Data))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}
	return extract.ParseText(family, in.Filename, text), nil
}
