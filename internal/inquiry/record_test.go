package inquiry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewRecord_Defaults(t *testing.T) {
	r := NewRecord()
	assert.Equal(t, "Email", r.PreferredContactMethod)
	assert.False(t, r.Complete())

	missing := r.Missing()
	assert.Len(t, missing, len(AllFields)-1)
	assert.NotContains(t, missing, FieldPreferredContactMethod)
}

func TestRecord_GetSet(t *testing.T) {
	var r Record
	for _, f := range AllFields {
		r.Set(f, "value of "+string(f))
	}
	for _, f := range AllFields {
		assert.Equal(t, "value of "+string(f), r.Get(f))
	}

	r.Set("unknown", "ignored")
	assert.Equal(t, "", r.Get("unknown"))
}

func TestRecord_Complete(t *testing.T) {
	r := fullRecord()
	assert.True(t, r.Complete())

	r.PreferredContactMethod = ""
	assert.True(t, r.Complete(), "contact method is not required")

	r.Timeline = "  "
	assert.False(t, r.Complete())
}

func TestRecord_Normalize(t *testing.T) {
	r := fullRecord()
	r.FullName = "  Jane Doe \n"
	r.PreferredContactMethod = " "
	r.Normalize()

	assert.Equal(t, "Jane Doe", r.FullName)
	assert.Equal(t, DefaultContactMethod, r.PreferredContactMethod)
}

func TestRecord_Reset(t *testing.T) {
	r := fullRecord()
	r.Reset()
	assert.Equal(t, NewRecord(), r)
}

func TestRecord_WireNames(t *testing.T) {
	data, err := json.Marshal(fullRecord())
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Len(t, fields, len(AllFields))
	for _, f := range AllFields {
		r := fullRecord()
		assert.Equal(t, r.Get(f), fields[string(f)], "field %s", f)
	}
}

func TestRecord_YAMLInput(t *testing.T) {
	in := []byte(`
full_name: Jane Doe
email: jane@x.com
phone_number: "0831234567"
project_type: New Construction
street_or_area: Main Rd
city_town: Pretoria
property_ownership_status: Own
budget_range: "R300,000 – R1,000,000"
timeline: "1–3 months"
project_description: Two-story extension
`)
	var r Record
	require.NoError(t, yaml.Unmarshal(in, &r))
	r.Normalize()

	assert.Equal(t, fullRecord(), r)
}

func TestOptions(t *testing.T) {
	assert.Equal(t, []string{"Call", "WhatsApp", "Email"}, Options(FieldPreferredContactMethod))
	assert.Len(t, Options(FieldProjectType), 6)
	assert.Len(t, Options(FieldBudgetRange), 5)
	assert.Equal(t, []string{"Immediately", "1–3 months", "3–6 months", "Just collecting quotes"}, Options(FieldTimeline))
	assert.Equal(t, []string{"Own", "Not yet", "In process"}, Options(FieldPropertyOwnershipStatus))
	assert.Nil(t, Options(FieldFullName))

	opts := Options(FieldTimeline)
	opts[0] = "Yesterday"
	assert.Equal(t, "Immediately", Options(FieldTimeline)[0])
}

func TestMarkdown(t *testing.T) {
	md := Markdown(fullRecord(), []string{"plan.pdf", "site_photo.jpg"})

	assert.Contains(t, md, "# Jane Doe")
	assert.Contains(t, md, "## Project Location")
	assert.Contains(t, md, "- **City / Town:** Pretoria")
	assert.Contains(t, md, "Two-story extension")
	assert.Contains(t, md, `- site\_photo.jpg`)

	empty := Markdown(NewRecord(), nil)
	assert.Contains(t, empty, "# Project inquiry")
	assert.Contains(t, empty, "_not provided_")
	assert.Contains(t, empty, "_none_")
}
