// Package inquiry holds the project inquiry wizard: the record being filled in,
// the step table and controller, staged attachments, and the submission pipeline.
package inquiry

import "strings"

// Collection is the name of the backend collection inquiries are inserted into.
const Collection = "project_inquiries"

// Field names a single record field by its wire name.
type Field string

const (
	FieldFullName                Field = "full_name"
	FieldEmail                   Field = "email"
	FieldPhoneNumber             Field = "phone_number"
	FieldPreferredContactMethod  Field = "preferred_contact_method"
	FieldProjectType             Field = "project_type"
	FieldStreetOrArea            Field = "street_or_area"
	FieldCityTown                Field = "city_town"
	FieldPropertyOwnershipStatus Field = "property_ownership_status"
	FieldBudgetRange             Field = "budget_range"
	FieldTimeline                Field = "timeline"
	FieldProjectDescription      Field = "project_description"
)

// AllFields lists every record field in form order.
var AllFields = []Field{
	FieldFullName,
	FieldEmail,
	FieldPhoneNumber,
	FieldPreferredContactMethod,
	FieldProjectType,
	FieldStreetOrArea,
	FieldCityTown,
	FieldPropertyOwnershipStatus,
	FieldBudgetRange,
	FieldTimeline,
	FieldProjectDescription,
}

// Label returns the human readable label for a field.
func (f Field) Label() string {
	switch f {
	case FieldFullName:
		return "Full Name"
	case FieldEmail:
		return "Email"
	case FieldPhoneNumber:
		return "Phone Number"
	case FieldPreferredContactMethod:
		return "Preferred Contact Method"
	case FieldProjectType:
		return "Project Type"
	case FieldStreetOrArea:
		return "Street / Area"
	case FieldCityTown:
		return "City / Town"
	case FieldPropertyOwnershipStatus:
		return "Property Ownership"
	case FieldBudgetRange:
		return "Budget Range"
	case FieldTimeline:
		return "Timeline"
	case FieldProjectDescription:
		return "Project Description"
	default:
		return string(f)
	}
}

// Contact methods.
const (
	ContactCall     = "Call"
	ContactWhatsApp = "WhatsApp"
	ContactEmail    = "Email"
)

// DefaultContactMethod is the contact method of a fresh record.
const DefaultContactMethod = ContactEmail

var (
	contactMethods = []string{ContactCall, ContactWhatsApp, ContactEmail}

	projectTypes = []string{
		"Home Renovation",
		"New Construction",
		"Room Addition",
		"Kitchen/Bath Remodel",
		"Commercial Project",
		"Other",
	}

	ownershipStatuses = []string{"Own", "Not yet", "In process"}

	budgetRanges = []string{
		"Under R100,000",
		"R100,000 – R300,000",
		"R300,000 – R1,000,000",
		"R1,000,000 – R5,000,000",
		"R5,000,000+",
	}

	timelines = []string{
		"Immediately",
		"1–3 months",
		"3–6 months",
		"Just collecting quotes",
	}
)

// Options returns the allowed values for an enumerated field, or nil for
// free text fields. The returned slice is a copy.
func Options(f Field) []string {
	var opts []string
	switch f {
	case FieldPreferredContactMethod:
		opts = contactMethods
	case FieldProjectType:
		opts = projectTypes
	case FieldPropertyOwnershipStatus:
		opts = ownershipStatuses
	case FieldBudgetRange:
		opts = budgetRanges
	case FieldTimeline:
		opts = timelines
	default:
		return nil
	}
	return append([]string(nil), opts...)
}

// Record is the inquiry payload sent to the backend. The JSON names are the
// backend's column names and must not change.
type Record struct {
	FullName                string `json:"full_name" yaml:"full_name"`
	Email                   string `json:"email" yaml:"email"`
	PhoneNumber             string `json:"phone_number" yaml:"phone_number"`
	PreferredContactMethod  string `json:"preferred_contact_method" yaml:"preferred_contact_method"`
	ProjectType             string `json:"project_type" yaml:"project_type"`
	StreetOrArea            string `json:"street_or_area" yaml:"street_or_area"`
	CityTown                string `json:"city_town" yaml:"city_town"`
	PropertyOwnershipStatus string `json:"property_ownership_status" yaml:"property_ownership_status"`
	BudgetRange             string `json:"budget_range" yaml:"budget_range"`
	Timeline                string `json:"timeline" yaml:"timeline"`
	ProjectDescription      string `json:"project_description" yaml:"project_description"`
}

// NewRecord returns a record in its all-default state.
func NewRecord() Record {
	return Record{PreferredContactMethod: DefaultContactMethod}
}

func (r *Record) ptr(f Field) *string {
	switch f {
	case FieldFullName:
		return &r.FullName
	case FieldEmail:
		return &r.Email
	case FieldPhoneNumber:
		return &r.PhoneNumber
	case FieldPreferredContactMethod:
		return &r.PreferredContactMethod
	case FieldProjectType:
		return &r.ProjectType
	case FieldStreetOrArea:
		return &r.StreetOrArea
	case FieldCityTown:
		return &r.CityTown
	case FieldPropertyOwnershipStatus:
		return &r.PropertyOwnershipStatus
	case FieldBudgetRange:
		return &r.BudgetRange
	case FieldTimeline:
		return &r.Timeline
	case FieldProjectDescription:
		return &r.ProjectDescription
	}
	return nil
}

// Get returns the value of a field. Unknown fields read as empty.
func (r *Record) Get(f Field) string {
	if p := r.ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set stores a value for a field. Unknown fields are ignored.
func (r *Record) Set(f Field, value string) {
	if p := r.ptr(f); p != nil {
		*p = value
	}
}

// Filled reports whether a field holds a non-blank value.
func (r *Record) Filled(f Field) bool {
	return strings.TrimSpace(r.Get(f)) != ""
}

// Missing returns the fields that are still blank, in form order.
func (r *Record) Missing() []Field {
	var missing []Field
	for _, f := range AllFields {
		if !r.Filled(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether the record may be submitted: every field except
// the contact method must be filled.
func (r *Record) Complete() bool {
	for _, f := range r.Missing() {
		if f != FieldPreferredContactMethod {
			return false
		}
	}
	return true
}

// Normalize trims surrounding whitespace from every field and restores the
// default contact method when it is blank.
func (r *Record) Normalize() {
	for _, f := range AllFields {
		r.Set(f, strings.TrimSpace(r.Get(f)))
	}
	if r.PreferredContactMethod == "" {
		r.PreferredContactMethod = DefaultContactMethod
	}
}

// Reset returns the record to its all-default state.
func (r *Record) Reset() {
	*r = NewRecord()
}
