package pdfwriter

import "errors"

var (
	// ErrTemplateField means a mapped form field is missing from the purchase
	// form template, or is not a text field. The template and the field table
	// disagree, so no vendor can succeed; callers treat it as fatal.
	ErrTemplateField = errors.New("purchase form template field mismatch")

	ErrTemplateLoad = errors.New("failed to load purchase form template")
	ErrRender       = errors.New("failed to render order list")
	ErrFill         = errors.New("failed to fill purchase form")
	ErrMerge        = errors.New("failed to merge documents")
	ErrNoDocuments  = errors.New("no documents to merge")
)
