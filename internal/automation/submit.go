// =============================================================================
// Order Form Builder - Online Order Submission
// =============================================================================
//
// This module prepares and hands off one order to the online purchase form.
//
// SUBMISSION PIPELINE:
//   1. Group the line items by vendor and flatten them in group order
//   2. Keep the first N items (the form's item limit) for the form
//   3. Export the rest to a remaining-items workbook and store it
//   4. Validate the payload and run the sidecar
//
// =============================================================================

package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ginjaninja78/order-form-builder/internal/converter"
	"github.com/ginjaninja78/order-form-builder/internal/spreadsheet"
	"github.com/ginjaninja78/order-form-builder/internal/types"
)

// Submitter delivers a payload. *SidecarSubmitter implements it.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) (SidecarResult, error)
}

// Outcome summarizes one submission.
type Outcome struct {
	SidecarResult

	VendorCount            int
	ItemsCount             int
	TruncatedItemsCount    int
	RemainingItemsUploaded bool
	RemainingItemsPath     string
}

// Success reports whether the sidecar accepted the submission.
func (o Outcome) Success() bool {
	return o.Status == StatusSuccess
}

// Service prepares submissions and passes them to a Submitter.
type Service struct {
	submitter Submitter
	sink      converter.Sink
	limit     int
	logger    *slog.Logger
}

// NewService creates a Service. sink stores the remaining-items workbook and
// may be nil when limit is never exceeded. limit is the form's item limit.
func NewService(submitter Submitter, sink converter.Sink, limit int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{submitter: submitter, sink: sink, limit: limit, logger: logger}
}

// Prepare builds the payload without submitting it.
//
// PARAMETERS:
//   - payload: The payload with OrderData.Items holding every line item.
//
// RETURNS:
//   - The payload with items reordered by vendor and cut at the limit.
//   - The items past the limit.
//   - The vendor count.
func (s *Service) Prepare(payload Payload) (Payload, []types.OrderLineItem, int) {
	groups := converter.GroupByVendor(payload.OrderData.Items)
	form, remaining := SplitForForm(groups, s.limit)
	payload.OrderData.Items = form
	return payload, remaining, len(groups)
}

// Submit prepares, validates and submits one order.
//
// RETURNS:
//   - The outcome, including the sidecar's verdict.
//   - An error if the payload is invalid, the workbook cannot be stored or
//     the sidecar cannot be started.
func (s *Service) Submit(ctx context.Context, payload Payload) (Outcome, error) {
	total := len(payload.OrderData.Items)
	prepared, remaining, vendors := s.Prepare(payload)

	outcome := Outcome{
		VendorCount:         vendors,
		ItemsCount:          total,
		TruncatedItemsCount: len(remaining),
	}

	if err := prepared.Validate(); err != nil {
		return outcome, err
	}

	if len(remaining) > 0 {
		if s.sink == nil {
			return outcome, fmt.Errorf("%d items exceed the form limit of %d and no output is configured", len(remaining), s.limit)
		}
		export, err := spreadsheet.ExportRemainingItems(remaining, prepared.OrderData.OrgName, prepared.OrderData.Project)
		if err != nil {
			return outcome, fmt.Errorf("failed to export remaining items: %w", err)
		}
		path, err := s.sink.Write(ctx, export.Name, export.Data)
		if err != nil {
			return outcome, fmt.Errorf("failed to store remaining items: %w", err)
		}
		prepared.OrderData.RemainingItemsFile = path
		outcome.RemainingItemsPath = path
		s.logger.Info("remaining items exported", "items", len(remaining), "file", path, "type", export.MimeType)
	}

	result, err := s.submitter.Submit(ctx, prepared)
	if err != nil {
		return outcome, fmt.Errorf("%w: %w", ErrSidecar, err)
	}
	outcome.SidecarResult = result
	outcome.RemainingItemsUploaded = result.Status == StatusSuccess && outcome.RemainingItemsPath != ""
	return outcome, nil
}
