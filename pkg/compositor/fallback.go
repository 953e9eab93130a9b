package compositor

import (
	"fmt"
	"strings"

	"funeral-docs-be/internal/entity"
)

const (
	DirectorChecklistHeading = "# Funeral Director Task Checklist"
	ArrangerChecklistHeading = "# Arranger Task Checklist"
)

// Template builds a document from structured data alone. ok is false for
// types that need the LLM.
func Template(t entity.DocumentType, d entity.ArrangementData) (text string, ok bool) {
	switch t {
	case entity.DocumentTasks:
		return directorChecklist(d), true
	case entity.DocumentArrangerTasks:
		return arrangerChecklist(d), true
	case entity.DocumentContract, entity.DocumentSummary, entity.DocumentObituary, entity.DocumentDeathCert:
		return "", false
	}
	panic(fmt.Sprintf("compositor: unhandled document type %q", string(t)))
}

func directorChecklist(d entity.ArrangementData) string {
	var b strings.Builder
	b.WriteString(DirectorChecklistHeading + "\n\n")
	header(&b, d)

	b.WriteString("## Immediate\n\n")
	b.WriteString("- Confirm transfer of " + or(d.Deceased.FullName, "the deceased") + " into our care\n")
	b.WriteString("- File the death certificate worksheet with the medical certifier\n")
	b.WriteString("- Obtain the burial or cremation permit\n")
	if d.Disposition.Method != "" {
		b.WriteString("- Confirm " + strings.ToLower(d.Disposition.Method) + " arrangements")
		if place := or(d.Disposition.Cemetery, d.Disposition.Crematory); place != "" {
			b.WriteString(" with " + place)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n> [!WARNING] Permits must be in hand before the disposition date.\n\n")

	b.WriteString("## Before the Service\n\n")
	b.WriteString("- Reserve " + or(d.Service.Location, "the service location") + "\n")
	if d.Service.Officiant != "" {
		b.WriteString("- Confirm officiant " + d.Service.Officiant + "\n")
	} else {
		b.WriteString("- Confirm the officiant\n")
	}
	if d.Service.Visitation != "" {
		b.WriteString("- Prepare visitation: " + d.Service.Visitation + "\n")
	}
	if len(d.Service.Pallbearers) > 0 {
		b.WriteString("- Contact pallbearers: " + strings.Join(d.Service.Pallbearers, ", ") + "\n")
	}
	b.WriteString("- Print memorial folders and register book\n\n")

	b.WriteString("## Day of Service\n\n")
	b.WriteString("- Arrange vehicles and procession\n")
	b.WriteString("- Set up flowers, music and readings\n\n")

	b.WriteString("## After the Service\n\n")
	b.WriteString("- Deliver certified death certificates to " + or(d.NextOfKin.Name, "the family") + "\n")
	b.WriteString("- Reconcile the account and collect the balance\n")

	specialRequests(&b, d)
	return b.String()
}

func arrangerChecklist(d entity.ArrangementData) string {
	var b strings.Builder
	b.WriteString(ArrangerChecklistHeading + "\n\n")
	header(&b, d)

	b.WriteString("## Family Follow-up\n\n")
	contact := or(d.NextOfKin.Name, "the next of kin")
	if d.NextOfKin.Phone != "" {
		contact += " (" + d.NextOfKin.Phone + ")"
	}
	b.WriteString("- Call " + contact + " to confirm all details\n")
	b.WriteString("- Collect photos for the memorial display\n\n")

	b.WriteString("## Paperwork\n\n")
	b.WriteString("- Obtain signed statement of goods and services\n")
	b.WriteString("- Verify vital statistics for the death certificate\n")
	if d.Deceased.MilitaryService != "" {
		b.WriteString("- Request military honors (" + d.Deceased.MilitaryService + ")\n")
	}
	b.WriteString("\n## Obituary and Service Details\n\n")
	b.WriteString("- Send the obituary to the family for approval\n")
	b.WriteString("- Submit the obituary to newspapers and the website\n")
	b.WriteString("- Order flowers" + suffix(d.Service.Flowers) + "\n")
	if len(d.Service.Music) > 0 {
		b.WriteString("- Arrange music: " + strings.Join(d.Service.Music, ", ") + "\n")
	}
	if len(d.Service.Readings) > 0 {
		b.WriteString("- Arrange readings: " + strings.Join(d.Service.Readings, ", ") + "\n")
	}

	specialRequests(&b, d)
	return b.String()
}

func header(b *strings.Builder, d entity.ArrangementData) {
	b.WriteString("**Deceased:** " + or(d.Deceased.FullName, "________") + "\n\n")
	when := strings.TrimSpace(d.Service.Date + " " + d.Service.Time)
	b.WriteString("**Service:** " + or(when, "________"))
	if d.Service.Location != "" {
		b.WriteString(" at " + d.Service.Location)
	}
	b.WriteString("\n\n---\n\n")
}

func specialRequests(b *strings.Builder, d entity.ArrangementData) {
	if len(d.SpecialRequests) == 0 {
		return
	}
	b.WriteString("\n## Special Requests\n\n")
	for _, r := range d.SpecialRequests {
		b.WriteString("- " + r + "\n")
	}
}

func or(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func suffix(s string) string {
	if s == "" {
		return ""
	}
	return ": " + s
}
