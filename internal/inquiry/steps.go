package inquiry

// Step is a wizard step number, starting at 1.
type Step int

const (
	StepContact Step = iota + 1
	StepProjectType
	StepLocation
	StepBudget
	StepTimeline
	StepDescription
	StepUploads
)

// FirstStep and LastStep bound the wizard.
const (
	FirstStep = StepContact
	LastStep  = StepUploads
)

// StepCount is the number of wizard steps.
const StepCount = int(LastStep)

// Kind tells the renderer how a step is drawn.
type Kind int

const (
	KindForm   Kind = iota // several single-line fields, enum fields as selectors
	KindChoice             // one enum field picked from a list
	KindText               // one multi-line free text field
	KindFiles              // attachment staging
)

// StepSpec describes one step: what it shows and what it requires.
type StepSpec struct {
	Step     Step
	Title    string
	Fields   []Field
	Required []Field
	Kind     Kind
}

var stepTable = [StepCount]StepSpec{
	{
		Step:     StepContact,
		Title:    "Personal Details",
		Fields:   []Field{FieldFullName, FieldEmail, FieldPhoneNumber, FieldPreferredContactMethod},
		Required: []Field{FieldFullName, FieldEmail, FieldPhoneNumber},
		Kind:     KindForm,
	},
	{
		Step:     StepProjectType,
		Title:    "Project Type",
		Fields:   []Field{FieldProjectType},
		Required: []Field{FieldProjectType},
		Kind:     KindChoice,
	},
	{
		Step:     StepLocation,
		Title:    "Project Location",
		Fields:   []Field{FieldStreetOrArea, FieldCityTown, FieldPropertyOwnershipStatus},
		Required: []Field{FieldStreetOrArea, FieldCityTown, FieldPropertyOwnershipStatus},
		Kind:     KindForm,
	},
	{
		Step:     StepBudget,
		Title:    "Estimated Budget",
		Fields:   []Field{FieldBudgetRange},
		Required: []Field{FieldBudgetRange},
		Kind:     KindChoice,
	},
	{
		Step:     StepTimeline,
		Title:    "Timeline",
		Fields:   []Field{FieldTimeline},
		Required: []Field{FieldTimeline},
		Kind:     KindChoice,
	},
	{
		Step:     StepDescription,
		Title:    "Project Description",
		Fields:   []Field{FieldProjectDescription},
		Required: []Field{FieldProjectDescription},
		Kind:     KindText,
	},
	{
		Step:  StepUploads,
		Title: "Upload Files",
		Kind:  KindFiles,
	},
}

// Valid reports whether s is within the wizard's range.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Spec returns the table entry for a step. ok is false for out-of-range steps.
func (s Step) Spec() (spec StepSpec, ok bool) {
	if !s.Valid() {
		return StepSpec{}, false
	}
	return stepTable[s-1], true
}

// Title returns the step heading, or "" for out-of-range steps.
func (s Step) Title() string {
	spec, _ := s.Spec()
	return spec.Title
}

// Steps returns the step table in order.
func Steps() []StepSpec {
	out := make([]StepSpec, len(stepTable))
	copy(out, stepTable[:])
	return out
}

// IsValid reports whether the wizard may move past step given the record.
// Only non-blankness of the step's required fields is checked.
func IsValid(step Step, r *Record) bool {
	spec, ok := step.Spec()
	if !ok || r == nil {
		return false
	}
	for _, f := range spec.Required {
		if !r.Filled(f) {
			return false
		}
	}
	return true
}
