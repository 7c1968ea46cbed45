// =============================================================================
// Order Form Builder - pdfcpu Backend
// =============================================================================
//
// This module implements the Renderer, FormFiller and Merger ports on top of
// pdfcpu. pdfcpu works on io.ReadSeeker/io.Writer pairs; every call here takes
// and returns whole byte slices, so concurrent vendors never share a buffer.
//
// pdfcpu calls are not cancellable. The context is checked before each call
// so a cancelled run stops between steps. pdfcpu writes the command into the
// configuration it is given, so every call gets its own copy.
//
// =============================================================================

package pdfwriter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/form"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPU is the pdfcpu-backed document backend.
type PDFCPU struct {
	conf *model.Configuration
}

// NewPDFCPU creates a backend with pdfcpu's default configuration in relaxed
// validation mode; scanned government forms rarely pass strict validation.
func NewPDFCPU() *PDFCPU {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPU{conf: conf}
}

// config returns a private copy of the backend configuration.
func (p *PDFCPU) config() *model.Configuration {
	c := *p.conf
	return &c
}

// RenderOrderList implements Renderer.
func (p *PDFCPU) RenderOrderList(ctx context.Context, list OrderList) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	desc, err := BuildOrderListJSON(list)
	if err != nil {
		return nil, fmt.Errorf("failed to build order list layout: %w", err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &out, p.config()); err != nil {
		return nil, fmt.Errorf("failed to create order list pdf: %w", err)
	}
	return out.Bytes(), nil
}

// FillForm implements FormFiller. Every value's field must exist in the
// template as a text or date field, otherwise ErrTemplateField is returned
// before anything is written.
func (p *PDFCPU) FillForm(ctx context.Context, template []byte, values []FieldValue) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields, err := api.FormFields(bytes.NewReader(template), p.config())
	if err != nil {
		return nil, fmt.Errorf("failed to read template form fields: %w", err)
	}

	resolved, err := resolveTemplateFields(fields, values)
	if err != nil {
		return nil, err
	}

	fill, err := buildFormFillJSON(values, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to build form fill document: %w", err)
	}

	var out bytes.Buffer
	if err := api.FillForm(bytes.NewReader(template), bytes.NewReader(fill), &out, p.config()); err != nil {
		return nil, fmt.Errorf("failed to fill form: %w", err)
	}
	return out.Bytes(), nil
}

// Merge implements Merger. Pages are appended in argument order.
func (p *PDFCPU) Merge(ctx context.Context, docs ...[]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, doc := range docs {
		readers[i] = bytes.NewReader(doc)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, p.config()); err != nil {
		return nil, fmt.Errorf("failed to merge pdfs: %w", err)
	}
	return out.Bytes(), nil
}

// PageCount implements Merger.
func (p *PDFCPU) PageCount(doc []byte) (int, error) {
	return api.PageCount(bytes.NewReader(doc), p.config())
}

// resolveTemplateFields checks that every value targets a fillable field and
// records how each one must be addressed.
func resolveTemplateFields(fields []form.Field, values []FieldValue) (map[string]templateField, error) {
	byName := make(map[string]form.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	resolved := make(map[string]templateField, len(values))
	var missing, wrongType []string

	for _, v := range values {
		f, ok := byName[v.FieldName]
		if !ok {
			missing = append(missing, v.FieldName)
			continue
		}

		tf := templateField{ID: f.ID, Name: f.Name, Pages: f.Pages}
		switch f.Typ {
		case form.FTText:
			tf.Kind = kindText
		case form.FTDate:
			tf.Kind = kindDate
		default:
			wrongType = append(wrongType, v.FieldName)
			continue
		}
		resolved[v.FieldName] = tf
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing field(s) %s", ErrTemplateField, quoteList(missing))
	}
	if len(wrongType) > 0 {
		return nil, fmt.Errorf("%w: not a text field: %s", ErrTemplateField, quoteList(wrongType))
	}
	return resolved, nil
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
