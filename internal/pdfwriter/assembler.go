// =============================================================================
// Order Form Builder - Document Assembler
// =============================================================================
//
// This module assembles the composite purchase-order PDF for one vendor:
//
//   ┌─ render order list ──────────────┐
//   │                                  ├──> merge (form pages first) ──> document
//   └─ load template ─> fill form ─────┘
//
// The two branches share nothing and run concurrently; the merge waits for
// both. Document backends are injected as ports so the assembly logic can be
// exercised without producing real PDFs.
//
// ERRORS:
//   - ErrTemplateField passes through as is: it is a fatal
//     configuration problem, not a per-vendor failure
//   - every other failure is wrapped in ErrRender, ErrTemplateLoad, ErrFill
//     or ErrMerge
//
// =============================================================================

package pdfwriter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/order-form-builder/internal/types"
)

// =============================================================================
// PORTS
// =============================================================================

// TemplateResolver supplies the raw bytes of the purchase form template.
type TemplateResolver interface {
	Resolve(ctx context.Context) ([]byte, error)
}

// Renderer renders the itemized order list.
type Renderer interface {
	RenderOrderList(ctx context.Context, list OrderList) ([]byte, error)
}

// FormFiller writes values into the template's form fields.
type FormFiller interface {
	FillForm(ctx context.Context, template []byte, values []FieldValue) ([]byte, error)
}

// Merger concatenates documents page by page.
type Merger interface {
	Merge(ctx context.Context, docs ...[]byte) ([]byte, error)
	PageCount(doc []byte) (int, error)
}

// Backend bundles the three document ports. *PDFCPU implements it.
type Backend interface {
	Renderer
	FormFiller
	Merger
}

// =============================================================================
// TEMPLATE RESOLVERS
// =============================================================================

// FileTemplateResolver reads the template from disk on every call.
type FileTemplateResolver struct {
	Path string
}

// Resolve implements TemplateResolver.
func (r FileTemplateResolver) Resolve(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", r.Path, err)
	}
	return data, nil
}

// StaticTemplate serves template bytes already in memory.
type StaticTemplate []byte

// Resolve implements TemplateResolver.
func (t StaticTemplate) Resolve(context.Context) ([]byte, error) {
	return t, nil
}

// =============================================================================
// ASSEMBLER
// =============================================================================

// Assembler builds one merged purchase-order document per vendor group.
type Assembler struct {
	templates TemplateResolver
	backend   Backend
	logger    *slog.Logger
}

// NewAssembler creates an Assembler. A nil logger discards output.
func NewAssembler(templates TemplateResolver, backend Backend, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Assembler{
		templates: templates,
		backend:   backend,
		logger:    logger.With("component", "pdfwriter"),
	}
}

// Assemble produces the merged document for one vendor group.
//
// PARAMETERS:
//   - ctx: Cancels the remaining steps.
//   - group: The vendor and its items.
//   - meta: The order metadata; Justification must already be resolved.
//
// RETURNS:
//   - The generated document.
//   - ErrTemplateField (fatal) or a per-vendor error on failure.
func (a *Assembler) Assemble(ctx context.Context, group types.VendorGroup, meta OrderMetadata) (types.GeneratedDocument, error) {
	list := OrderList{
		Vendor:      group.Vendor,
		RequestDate: meta.RequestDate,
		Items:       group.Items,
	}
	total, err := list.TotalCents()
	if err != nil {
		return types.GeneratedDocument{}, fmt.Errorf("%w: %w", ErrRender, err)
	}

	var orderListPDF, purchaseFormPDF []byte

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := a.backend.RenderOrderList(gctx, list)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRender, err)
		}
		orderListPDF = out
		return nil
	})

	g.Go(func() error {
		template, err := a.templates.Resolve(gctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTemplateLoad, err)
		}

		values := BuildFormValues(meta, total)
		out, err := a.backend.FillForm(gctx, template, values)
		if err != nil {
			if errors.Is(err, ErrTemplateField) {
				return err
			}
			return fmt.Errorf("%w: %w", ErrFill, err)
		}
		purchaseFormPDF = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return types.GeneratedDocument{}, err
	}

	merged, err := a.backend.Merge(ctx, purchaseFormPDF, orderListPDF)
	if err != nil {
		return types.GeneratedDocument{}, fmt.Errorf("%w: %w", ErrMerge, err)
	}

	if pages, err := a.backend.PageCount(merged); err == nil {
		a.logger.Debug("assembled purchase order",
			"vendor", group.Vendor, "items", len(group.Items), "pages", pages)
	} else {
		a.logger.Warn("failed to count merged pages", "vendor", group.Vendor, "error", err)
	}

	return types.GeneratedDocument{
		Vendor:      group.Vendor,
		PDF:         merged,
		ItemCount:   len(group.Items),
		Filename:    FileName(meta.OrgName, meta.ProjectName, group.Vendor, meta.RequestDate),
		RequestDate: meta.RequestDate,
	}, nil
}
