// =============================================================================
// Order Form Builder - Order List Layout
// =============================================================================
//
// This module lays out the itemized order list for one vendor as a pdfcpu
// content description (the JSON consumed by pdfcpu's "create" command). The
// layout is computed here so it can be inspected without rendering a PDF.
//
// PAGE LAYOUT (A4 portrait, points, origin lower left):
//
//   Requested Items                       title, 24pt bold
//   Request Date: 1/2/2026                12pt
//   Vendor: Acme                          12pt
//
//   Order Items                           16pt bold (first page only)
//   Name   URL   $/Unit   Qty   S&H   Total   header row, repeated per page
//   ...                                   one 16pt row per item
//   Total: $123.45                        after the last row
//
// =============================================================================

package pdfwriter

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/ginjaninja78/order-form-builder/internal/money"
	"github.com/ginjaninja78/order-form-builder/internal/types"
)

// OrderList is the input of the order-list renderer.
type OrderList struct {
	Vendor      string
	RequestDate time.Time
	Items       []types.OrderLineItem
}

// TotalCents is the grand total of the list. It fails when a line total or
// the grand total does not fit in int64 cents.
func (l OrderList) TotalCents() (int64, error) {
	return types.TotalCents(l.Items)
}

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

const (
	pageHeight   = 842.0
	marginLeft   = 40.0
	marginTop    = 60.0
	marginBottom = 60.0
	rowHeight    = 16.0

	fontRegular = "Helvetica"
	fontBold    = "Helvetica-Bold"
)

// column is one table column: its header, x position and character budget.
type column struct {
	header   string
	x        float64
	maxChars int
	fontSize int
}

var orderListColumns = []column{
	{"Name", marginLeft, 32, 10},
	{"URL", 200, 58, 6},
	{"$/Unit", 360, 12, 10},
	{"Qty", 420, 6, 10},
	{"S&H", 455, 12, 10},
	{"Total", 510, 12, 10},
}

// =============================================================================
// CONTENT DESCRIPTION
// =============================================================================

type contentDescription struct {
	Paper string                     `json:"paper"`
	Pages map[string]pageDescription `json:"pages"`
}

type pageDescription struct {
	Content pageContent `json:"content"`
}

type pageContent struct {
	Text []textElement `json:"text"`
}

type textElement struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  fontSpec   `json:"font"`
}

type fontSpec struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// page accumulates the text of one page while laying out.
type page struct {
	text []textElement
	y    float64
}

func (p *page) add(value string, x float64, name string, size int) {
	p.text = append(p.text, textElement{Value: value, Pos: [2]float64{x, p.y}, Font: fontSpec{name, size}})
}

// BuildOrderListJSON lays out the order list and returns the pdfcpu content
// description.
//
// PARAMETERS:
//   - list: The vendor, request date and items to print.
//
// RETURNS:
//   - The JSON document for pdfcpu's create API.
//   - An error if the totals overflow or marshaling fails.
func BuildOrderListJSON(list OrderList) ([]byte, error) {
	desc, err := layoutOrderList(list)
	if err != nil {
		return nil, err
	}
	return json.Marshal(desc)
}

func layoutOrderList(list OrderList) (contentDescription, error) {
	total, err := list.TotalCents()
	if err != nil {
		return contentDescription{}, err
	}

	var pages []*page

	newPage := func() *page {
		p := &page{y: pageHeight - marginTop}
		pages = append(pages, p)
		return p
	}

	// Header block.
	cur := newPage()
	cur.add("Requested Items", marginLeft, fontBold, 24)
	cur.y -= 30
	cur.add("Request Date: "+FormatDate(list.RequestDate), marginLeft, fontRegular, 12)
	cur.y -= 18
	cur.add("Vendor: "+list.Vendor, marginLeft, fontRegular, 12)
	cur.y -= 32
	cur.add("Order Items", marginLeft, fontBold, 16)
	cur.y -= 24
	addTableHeader(cur)

	for _, item := range list.Items {
		if cur.y-rowHeight < marginBottom {
			cur = newPage()
			addTableHeader(cur)
		}
		cur.y -= rowHeight
		addItemRow(cur, item)
	}

	// Grand total.
	if cur.y-2*rowHeight < marginBottom {
		cur = newPage()
	}
	cur.y -= 2 * rowHeight
	cur.add("Total: "+money.FormatCents(total), orderListColumns[4].x, fontBold, 12)

	desc := contentDescription{Paper: "A4", Pages: make(map[string]pageDescription, len(pages))}
	for i, p := range pages {
		desc.Pages[strconv.Itoa(i+1)] = pageDescription{Content: pageContent{Text: p.text}}
	}
	return desc, nil
}

func addTableHeader(p *page) {
	for _, col := range orderListColumns {
		p.add(col.header, col.x, fontBold, 10)
	}
}

// addItemRow expects the list total to have been computed, which checks
// every line total.
func addItemRow(p *page, item types.OrderLineItem) {
	lineTotal, _ := item.TotalCents()
	cells := []string{
		item.Name,
		item.URL,
		money.FormatCents(item.PricePerUnitCents),
		strconv.Itoa(item.Quantity),
		money.FormatCents(item.ShippingAndHandlingCents),
		money.FormatCents(lineTotal),
	}
	for i, col := range orderListColumns {
		p.add(truncate(cells[i], col.maxChars), col.x, fontRegular, col.fontSize)
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
