// =============================================================================
// Order Form Builder - Purchase Form Fields
// =============================================================================
//
// This module maps order metadata onto the named fields of the purchase
// request PDF template. The template is an externally supplied AcroForm; the
// table below is the only place that knows its field names.
//
// FIELD TABLE:
//
//   | Key                   | Template field                          | Formatter |
//   |-----------------------|-----------------------------------------|-----------|
//   | orgName               | Organization Name                       |           |
//   | contactName           | Contact Name First Last                 |           |
//   | contactPhone          | Contact Phone Number                    |           |
//   | contactEmail          | Contact UTD email                       |           |
//   | eventName             | Event Name if applicable                | optional  |
//   | eventDate             | Event Date if applicable                | optional  |
//   | expectedAttendance    | Expected Attendance if applicable       | optional  |
//   | businessJustification | Text10                                  |           |
//   | studentSignatureDate  | Date1_af_date                           | M/D/YYYY  |
//   | totalQuoteCostCents   | Total Quote Cost excluding sales tax    | $X.XX     |
//
// =============================================================================

package pdfwriter

import (
	"encoding/json"
	"time"

	"github.com/ginjaninja78/order-form-builder/internal/money"
)

// =============================================================================
// FIELD TABLE
// =============================================================================

// FieldKey is the logical name of a purchase form value.
type FieldKey string

const (
	KeyOrgName               FieldKey = "orgName"
	KeyContactName           FieldKey = "contactName"
	KeyContactPhone          FieldKey = "contactPhone"
	KeyContactEmail          FieldKey = "contactEmail"
	KeyEventName             FieldKey = "eventName"
	KeyEventDate             FieldKey = "eventDate"
	KeyExpectedAttendance    FieldKey = "expectedAttendance"
	KeyBusinessJustification FieldKey = "businessJustification"
	KeyStudentSignatureDate  FieldKey = "studentSignatureDate"
	KeyTotalQuoteCostCents   FieldKey = "totalQuoteCostCents"
)

// FormField binds a logical key to the template's field name.
type FormField struct {
	Key      FieldKey
	Name     string
	Optional bool
}

// PurchaseFormFields is the fixed lookup table, in fill order.
var PurchaseFormFields = []FormField{
	{KeyOrgName, "Organization Name", false},
	{KeyContactName, "Contact Name First Last", false},
	{KeyContactPhone, "Contact Phone Number", false},
	{KeyContactEmail, "Contact UTD email", false},
	{KeyEventName, "Event Name if applicable", true},
	{KeyEventDate, "Event Date if applicable", true},
	{KeyExpectedAttendance, "Expected Attendance if applicable", true},
	{KeyBusinessJustification, "Text10", false},
	{KeyStudentSignatureDate, "Date1_af_date", false},
	{KeyTotalQuoteCostCents, "Total Quote Cost excluding sales tax", false},
}

// FieldValue is one formatted value ready to be written into the template.
type FieldValue struct {
	Key       FieldKey
	FieldName string
	Value     string
}

// =============================================================================
// METADATA
// =============================================================================

// OrderMetadata is everything about an order that is not a line item.
type OrderMetadata struct {
	OrgName      string
	ProjectName  string
	ContactName  string
	ContactPhone string
	ContactEmail string

	// Justification is written verbatim; defaults are resolved by the caller.
	Justification string

	// Optional event details. Empty values are left blank on the form.
	EventName          string
	EventDate          string
	ExpectedAttendance string

	// RequestDate is printed on the order list, used as the signature date
	// and embedded in the file name.
	RequestDate time.Time
}

// FormatDate renders a date the way the purchase office writes it (M/D/YYYY).
func FormatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// BuildFormValues formats the metadata and quote total for the template.
// Optional keys are only included when they carry a value.
//
// PARAMETERS:
//   - meta: The order metadata.
//   - totalCents: The vendor group's grand total.
//
// RETURNS:
//   - One value per field to write, in table order.
func BuildFormValues(meta OrderMetadata, totalCents int64) []FieldValue {
	raw := map[FieldKey]string{
		KeyOrgName:               meta.OrgName,
		KeyContactName:           meta.ContactName,
		KeyContactPhone:          meta.ContactPhone,
		KeyContactEmail:          meta.ContactEmail,
		KeyEventName:             meta.EventName,
		KeyEventDate:             meta.EventDate,
		KeyExpectedAttendance:    meta.ExpectedAttendance,
		KeyBusinessJustification: meta.Justification,
		KeyStudentSignatureDate:  FormatDate(meta.RequestDate),
		KeyTotalQuoteCostCents:   money.FormatCents(totalCents),
	}

	values := make([]FieldValue, 0, len(PurchaseFormFields))
	for _, field := range PurchaseFormFields {
		value := raw[field.Key]
		if field.Optional && value == "" {
			continue
		}
		values = append(values, FieldValue{Key: field.Key, FieldName: field.Name, Value: value})
	}
	return values
}

// =============================================================================
// FORM FILL DOCUMENT
// =============================================================================

// formFillDocument is the JSON accepted by pdfcpu's form fill.
type formFillDocument struct {
	Forms []formGroup `json:"forms"`
}

type formGroup struct {
	TextFields []formEntry `json:"textfield,omitempty"`
	DateFields []formEntry `json:"datefield,omitempty"`
}

type formEntry struct {
	Pages  []int  `json:"pages,omitempty"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Locked bool   `json:"locked"`
}

// templateFieldKind says how a template field must be addressed when filling.
type templateFieldKind int

const (
	kindText templateFieldKind = iota
	kindDate
)

// templateField is what the filler learned about a template field.
type templateField struct {
	ID    string
	Name  string
	Pages []int
	Kind  templateFieldKind
}

// buildFormFillJSON renders the fill document for already-resolved fields.
func buildFormFillJSON(values []FieldValue, resolved map[string]templateField) ([]byte, error) {
	var group formGroup
	for _, v := range values {
		tf := resolved[v.FieldName]
		entry := formEntry{Pages: tf.Pages, ID: tf.ID, Name: v.FieldName, Value: v.Value}
		if tf.Kind == kindDate {
			group.DateFields = append(group.DateFields, entry)
			continue
		}
		group.TextFields = append(group.TextFields, entry)
	}
	return json.Marshal(formFillDocument{Forms: []formGroup{group}})
}
