// =============================================================================
// Order Form Builder - Field Schema
// =============================================================================
//
// This module defines the fixed positional schema of pasted order data and
// the typed row record bound to it. Pasted text never carries a header row;
// column N always means Specs[N].
//
// SCHEMA (order-significant):
//
//   | #  | Key                 | Label          | Required | Type   |
//   |----|---------------------|----------------|----------|--------|
//   | 0  | name                | Name           | yes      | string |
//   | 1  | vendor              | Vendor         | yes      | string |
//   | 2  | partNumber          | Part #         | no       | string |
//   | 3  | link                | Link           | yes      | url    |
//   | 4  | pricePerUnit        | Price per Unit | yes      | number |
//   | 5  | quantity            | Quantity       | yes      | number |
//   | 6  | tax                 | Tax            | no       | number |
//   | 7  | shippingAndHandling | S&H            | no       | number |
//   | 8  | total               | TOTAL          | no       | number |
//   | 9  | deliveryType        | Delivery Type  | no       | string |
//   | 10 | notes               | Notes          | no       | string |
//
// =============================================================================

package fields

// =============================================================================
// FIELD TYPES
// =============================================================================

// Type is the data type a column is validated against.
type Type string

const (
	TypeString Type = "string"
	TypeNumber Type = "number"
	TypeURL    Type = "url"
)

// Index identifies a column position in the fixed schema.
type Index int

const (
	Name Index = iota
	Vendor
	PartNumber
	Link
	PricePerUnit
	Quantity
	Tax
	ShippingAndHandling
	Total
	DeliveryType
	Notes
)

// Count is the number of columns in the fixed schema.
const Count = 11

// Spec describes one column of the fixed schema.
type Spec struct {
	// Index is the column position.
	Index Index

	// Key is the stable identifier used in code and reports.
	Key string

	// Label is the human-readable column name used in diagnostics.
	Label string

	// Required marks columns that must be non-empty.
	Required bool

	// Type selects the type rule applied by the validator.
	Type Type
}

// Specs is the fixed schema. It must not be modified.
var Specs = [Count]Spec{
	{Name, "name", "Name", true, TypeString},
	{Vendor, "vendor", "Vendor", true, TypeString},
	{PartNumber, "partNumber", "Part #", false, TypeString},
	{Link, "link", "Link", true, TypeURL},
	{PricePerUnit, "pricePerUnit", "Price per Unit", true, TypeNumber},
	{Quantity, "quantity", "Quantity", true, TypeNumber},
	{Tax, "tax", "Tax", false, TypeNumber},
	{ShippingAndHandling, "shippingAndHandling", "S&H", false, TypeNumber},
	{Total, "total", "TOTAL", false, TypeNumber},
	{DeliveryType, "deliveryType", "Delivery Type", false, TypeString},
	{Notes, "notes", "Notes", false, TypeString},
}

// Labels returns the column labels in schema order.
func Labels() []string {
	labels := make([]string, Count)
	for i, spec := range Specs {
		labels[i] = spec.Label
	}
	return labels
}

// Label returns the label of the column at idx.
func (idx Index) Label() string {
	return Specs[idx].Label
}

// =============================================================================
// PARSED ROW
// =============================================================================

// ParsedRow is one pasted line bound to the fixed schema.
// It always holds exactly Count values; absent trailing columns are empty.
type ParsedRow struct {
	// Number is the 1-based line number among non-blank input lines.
	Number int

	// Values holds the raw (trimmed) field strings by column position.
	Values [Count]string
}

// Get returns the raw value of a column.
func (r ParsedRow) Get(idx Index) string {
	return r.Values[idx]
}

// ByLabel returns the raw value for a column label and whether it exists.
func (r ParsedRow) ByLabel(label string) (string, bool) {
	for _, spec := range Specs {
		if spec.Label == label {
			return r.Values[spec.Index], true
		}
	}
	return "", false
}

// NewRow builds a ParsedRow from label/value pairs, mainly for tests and
// callers that hold keyed data.
func NewRow(number int, values map[Index]string) ParsedRow {
	row := ParsedRow{Number: number}
	for idx, value := range values {
		row.Values[idx] = value
	}
	return row
}
