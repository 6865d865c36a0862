package testfixtures

import (
	"github.com/jothom/inquiry/internal/inquiry"
)

// Fixed test values for consistent output
const (
	FixedInquiryID = "2f1c7d3e-6a9b-4c1e-9f0a-5b8d2e7c4a10"
	FixedFullName  = "Thandi Mokoena"
)

// CompleteRecord returns a record that passes every step.
func CompleteRecord() inquiry.Record {
	return inquiry.Record{
		FullName:                FixedFullName,
		Email:                   "thandi@example.com",
		PhoneNumber:             "082 555 0199",
		PreferredContactMethod:  inquiry.ContactWhatsApp,
		ProjectType:             "Kitchen/Bath Remodel",
		StreetOrArea:            "12 Main Road",
		CityTown:                "Cape Town",
		PropertyOwnershipStatus: "Own",
		BudgetRange:             "R300,000 – R1,000,000",
		Timeline:                "1–3 months",
		ProjectDescription:      "Open-plan kitchen with an island and oak cabinets.",
	}
}

// ContactOnlyRecord returns a record with only the first step filled in.
func ContactOnlyRecord() inquiry.Record {
	r := inquiry.NewRecord()
	r.FullName = FixedFullName
	r.Email = "thandi@example.com"
	r.PhoneNumber = "082 555 0199"
	return r
}

// Photo returns a small staged image attachment.
func Photo(name string) inquiry.Attachment {
	return inquiry.Attachment{
		Name:      name,
		MediaType: "image/png",
		Data:      []byte("\x89PNG\r\n\x1a\n" + name),
	}
}

// SessionAtLastStep returns a session holding CompleteRecord, walked to the
// upload step.
func SessionAtLastStep() *inquiry.Session {
	s := inquiry.NewSession()
	s.Record = CompleteRecord()
	for s.Steps.Current() != inquiry.LastStep {
		if err := s.Steps.Advance(&s.Record); err != nil {
			panic(err)
		}
	}
	return s
}
