// =============================================================================
// Order Form Builder - Form Automation Payload
// =============================================================================
//
// This module builds the JSON document handed to the form-automation sidecar,
// which fills the university's online purchase request form in a browser.
//
// PAYLOAD STRUCTURE:
//   {
//     "orderData":  { items, justification?, contactName, contactEmail,
//                     contactPhone, project?, orgName, requestDate?,
//                     remainingItemsFile? },
//     "formInputs": { netID, advisor {name, email}, eventName,
//                     eventDate (MM/DD/YYYY), costCenter {type, value?} }
//   }
//
// =============================================================================

package automation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/order-form-builder/internal/types"
)

// EventDateLayout is the MM/DD/YYYY layout the online form expects.
const EventDateLayout = "01/02/2006"

// CostCenterType is one of the funding choices offered by the online form.
type CostCenterType string

const (
	CostCenterStudentOrg     CostCenterType = "Student Organization Cost Center"
	CostCenterStudentCouncil CostCenterType = "Jonsson School Student Council funding"
	CostCenterOther          CostCenterType = "Other"
)

// CostCenterTypes lists the accepted cost center types.
var CostCenterTypes = []CostCenterType{CostCenterStudentOrg, CostCenterStudentCouncil, CostCenterOther}

// ParseCostCenterType accepts a type by its full name, ignoring case, or by
// the short aliases "org", "council" and "other".
func ParseCostCenterType(s string) (CostCenterType, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "org":
		return CostCenterStudentOrg, nil
	case "council":
		return CostCenterStudentCouncil, nil
	}
	for _, t := range CostCenterTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown cost center type %q", ErrInvalidPayload, s)
}

// =============================================================================
// PAYLOAD TYPES
// =============================================================================

// Payload is the document passed to the sidecar.
type Payload struct {
	OrderData  OrderData  `json:"orderData"`
	FormInputs FormInputs `json:"formInputs"`
}

// OrderData describes the order itself.
type OrderData struct {
	Items              []types.OrderLineItem `json:"items"`
	Justification      string                `json:"justification,omitempty"`
	ContactName        string                `json:"contactName"`
	ContactEmail       string                `json:"contactEmail"`
	ContactPhone       string                `json:"contactPhone"`
	Project            string                `json:"project,omitempty"`
	OrgName            string                `json:"orgName"`
	RequestDate        string                `json:"requestDate,omitempty"`
	RemainingItemsFile string                `json:"remainingItemsFile,omitempty"`
}

// FormInputs holds the answers the online form asks for beyond the order.
type FormInputs struct {
	NetID      string     `json:"netID"`
	Advisor    Advisor    `json:"advisor"`
	EventName  string     `json:"eventName"`
	EventDate  string     `json:"eventDate"`
	CostCenter CostCenter `json:"costCenter"`
}

// Advisor is the faculty advisor who approves the request.
type Advisor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CostCenter is the funding source. Value is only sent for CostCenterOther.
type CostCenter struct {
	Type  CostCenterType `json:"type"`
	Value string         `json:"value,omitempty"`
}

// Validate checks the cost center type and that "Other" carries a value.
func (c CostCenter) Validate() error {
	switch c.Type {
	case CostCenterStudentOrg, CostCenterStudentCouncil:
		return nil
	case CostCenterOther:
		if strings.TrimSpace(c.Value) == "" {
			return fmt.Errorf("%w: cost center %q needs a value", ErrInvalidPayload, c.Type)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown cost center type %q", ErrInvalidPayload, c.Type)
	}
}

// Validate checks the fields the online form cannot be submitted without.
func (p Payload) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"orgName", p.OrderData.OrgName},
		{"contactName", p.OrderData.ContactName},
		{"contactEmail", p.OrderData.ContactEmail},
		{"netID", p.FormInputs.NetID},
		{"advisor name", p.FormInputs.Advisor.Name},
		{"advisor email", p.FormInputs.Advisor.Email},
		{"eventName", p.FormInputs.EventName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidPayload, r.name)
		}
	}

	if len(p.OrderData.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidPayload)
	}
	if _, err := time.Parse(EventDateLayout, p.FormInputs.EventDate); err != nil {
		return fmt.Errorf("%w: eventDate %q is not MM/DD/YYYY", ErrInvalidPayload, p.FormInputs.EventDate)
	}
	return p.FormInputs.CostCenter.Validate()
}

// FormatEventDate renders t as MM/DD/YYYY.
func FormatEventDate(t time.Time) string {
	return t.Format(EventDateLayout)
}

// eventDateInputs are the layouts NormalizeEventDate accepts.
var eventDateInputs = []string{EventDateLayout, "1/2/2006", time.DateOnly}

// NormalizeEventDate accepts MM/DD/YYYY, M/D/YYYY or YYYY-MM-DD and returns
// the date as MM/DD/YYYY. An empty value stays empty.
func NormalizeEventDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range eventDateInputs {
		if t, err := time.Parse(layout, s); err == nil {
			return FormatEventDate(t), nil
		}
	}
	return "", fmt.Errorf("%w: eventDate %q is not a date", ErrInvalidPayload, s)
}
