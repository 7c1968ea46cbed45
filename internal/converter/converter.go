// =============================================================================
// Order Form Builder - Document Generator
// =============================================================================
//
// This module drives document assembly across all vendor groups of one
// submission and aggregates the outcome.
//
// GENERATION PIPELINE:
//   1. Resolve defaults (request date, business justification)
//   2. Group line items by vendor (first-seen order)
//   3. For each vendor (concurrently, bounded):
//      a. Assemble the merged purchase-order document
//      b. Hand it to the sink, when one is configured
//   4. Collect documents in vendor order, plus per-vendor failures
//
// FAILURE POLICY:
//   - A vendor whose render, fill, merge or write fails is recorded as a
//     VendorError; the remaining vendors still complete
//   - A purchase form template that lacks a mapped field aborts the run and is
//     reported as Result.Fatal
//
// CONCURRENCY:
//   Generate holds a mutex for its whole run, so overlapping submissions on
//   one Generator execute one after the other.
//
// =============================================================================

package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/order-form-builder/internal/pdfwriter"
	"github.com/ginjaninja78/order-form-builder/internal/types"
)

// DefaultJustification is used when the request carries none.
const DefaultJustification = "These parts are needed for continued research and development on club projects."

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one generation run.
type Result struct {
	// Documents holds the generated documents in vendor first-seen order.
	Documents []types.GeneratedDocument

	// OutputPaths holds, index-aligned with Documents, where the sink stored
	// each document. Empty when no sink is configured.
	OutputPaths []string

	// VendorErrors holds isolated per-vendor failures.
	VendorErrors []*VendorError

	// Fatal is set when the run was aborted.
	Fatal error

	// Stats contains run statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about a generation run.
type ProcessingStats struct {
	VendorCount      int
	ItemCount        int
	DocumentsCreated int
	ProcessingTime   time.Duration
}

// Success reports whether every vendor produced a document.
func (r *Result) Success() bool {
	return r.Fatal == nil && len(r.VendorErrors) == 0
}

// ErrorMessages lists the fatal error (first) and every vendor error.
func (r *Result) ErrorMessages() []string {
	var msgs []string
	if r.Fatal != nil {
		msgs = append(msgs, r.Fatal.Error())
	}
	for _, ve := range r.VendorErrors {
		msgs = append(msgs, ve.Error())
	}
	return msgs
}

// =============================================================================
// GENERATOR
// =============================================================================

// DocumentAssembler builds one vendor's document. *pdfwriter.Assembler
// implements it.
type DocumentAssembler interface {
	Assemble(ctx context.Context, group types.VendorGroup, meta pdfwriter.OrderMetadata) (types.GeneratedDocument, error)
}

// Sink persists a generated document and returns where it went.
type Sink interface {
	Write(ctx context.Context, filename string, data []byte) (string, error)
}

// Request is one submission.
type Request struct {
	Items []types.OrderLineItem

	// Meta is the order metadata. A zero RequestDate means now, an empty
	// Justification means DefaultJustification.
	Meta pdfwriter.OrderMetadata
}

// Generator runs document assembly for whole submissions.
type Generator struct {
	assembler   DocumentAssembler
	sink        Sink
	logger      *slog.Logger
	now         func() time.Time
	concurrency int
	onDocument  func(types.GeneratedDocument)

	mu sync.Mutex
}

// Option configures a Generator.
type Option func(*Generator)

// WithSink writes every generated document through sink.
func WithSink(sink Sink) Option {
	return func(g *Generator) { g.sink = sink }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithClock replaces time.Now for the default request date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithConcurrency bounds the number of vendors assembled at once.
func WithConcurrency(n int) Option {
	return func(g *Generator) { g.concurrency = n }
}

// WithProgress calls fn after each vendor finishes successfully. fn is called
// from worker goroutines and must be safe for concurrent use.
func WithProgress(fn func(types.GeneratedDocument)) Option {
	return func(g *Generator) { g.onDocument = fn }
}

// New creates a Generator.
func New(assembler DocumentAssembler, opts ...Option) *Generator {
	g := &Generator{
		assembler:   assembler,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.concurrency < 1 {
		g.concurrency = 1
	}
	return g
}

// =============================================================================
// MAIN GENERATION FUNCTION
// =============================================================================

// Generate assembles one document per vendor.
//
// PARAMETERS:
//   - ctx: Cancels vendors that have not finished.
//   - req: The line items and order metadata.
//
// RETURNS:
//   - The run result. Generate never returns a Go error; failures are in
//     Result.Fatal and Result.VendorErrors.
func (g *Generator) Generate(ctx context.Context, req Request) *Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := g.now()
	result := &Result{Stats: ProcessingStats{ItemCount: len(req.Items)}}

	if len(req.Items) == 0 {
		result.Fatal = ErrNoItems
		return result
	}

	meta := req.Meta
	if meta.RequestDate.IsZero() {
		meta.RequestDate = start
	}
	if meta.Justification == "" {
		meta.Justification = DefaultJustification
	}

	groups := GroupByVendor(req.Items)
	result.Stats.VendorCount = len(groups)
	g.logger.Info("generating purchase orders", "vendors", len(groups), "items", len(req.Items))

	docs := make([]*types.GeneratedDocument, len(groups))
	paths := make([]string, len(groups))
	vendorErrs := make([]error, len(groups))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for i, group := range groups {
		eg.Go(func() error {
			doc, err := g.assembler.Assemble(egctx, group, meta)
			if err != nil {
				if errors.Is(err, pdfwriter.ErrTemplateField) {
					return err
				}
				vendorErrs[i] = err
				g.logger.Error("vendor document failed", "vendor", group.Vendor, "error", err)
				return nil
			}

			if g.sink != nil {
				path, err := g.sink.Write(egctx, doc.Filename, doc.PDF)
				if err != nil {
					vendorErrs[i] = fmt.Errorf("failed to write %s: %w", doc.Filename, err)
					g.logger.Error("vendor document not written", "vendor", group.Vendor, "error", err)
					return nil
				}
				paths[i] = path
			}

			docs[i] = &doc
			g.logger.Debug("vendor document ready", "vendor", group.Vendor, "file", doc.Filename)
			if g.onDocument != nil {
				g.onDocument(doc)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		result.Fatal = err
		g.logger.Error("generation aborted", "error", err)
	}

	for i, group := range groups {
		if docs[i] != nil {
			result.Documents = append(result.Documents, *docs[i])
			if g.sink != nil {
				result.OutputPaths = append(result.OutputPaths, paths[i])
			}
			continue
		}
		err := vendorErrs[i]
		if err == nil {
			// Skipped because the run was aborted.
			continue
		}
		if result.Fatal != nil && errors.Is(err, context.Canceled) {
			continue
		}
		result.VendorErrors = append(result.VendorErrors, &VendorError{Vendor: group.Vendor, Err: err})
	}

	result.Stats.DocumentsCreated = len(result.Documents)
	result.Stats.ProcessingTime = g.now().Sub(start)
	return result
}
