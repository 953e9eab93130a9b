package compositor

import (
	"encoding/json"
	"fmt"
	"strings"

	"funeral-docs-be/internal/entity"
)

const systemPrompt = `You write documents for a funeral home. Use only the facts provided.
Write in a respectful, professional tone. Format the answer with this markup only:
# ## ### headings, **bold**, *italic*, __underline__, ~~strike~~, "- " bullets,
"1. " numbered items, "> " quotes, "---" rules and "> [!INFO]", "> [!WARNING]" or
"> [!SUCCESS]" callouts. Leave a field blank with a line like "________" when a fact is missing.
Do not wrap the answer in code fences.`

// instructions returns the type specific part of the prompt.
func instructions(t entity.DocumentType) string {
	switch t {
	case entity.DocumentContract:
		return `Write a "Statement of Funeral Goods and Services Selected". Include the purchaser
(next of kin), the deceased, the selected services and merchandise with prices, the total,
the deposit, the balance due and the payment method. End with signature lines for the
purchaser and the funeral director.`
	case entity.DocumentSummary:
		return `Write an arrangement summary for staff. Sections: Deceased, Service Details,
Disposition, Next of Kin, Survivors, Special Requests and Notes. Use bullet lists.`
	case entity.DocumentObituary:
		return `Write an obituary of 250 to 400 words suitable for a newspaper and the funeral
home website. Open with the full name, age, date and place of death. Cover life highlights,
career, hobbies and achievements, then list survivors, then service details and memorial
contributions.`
	case entity.DocumentTasks:
		return `Write a funeral director task checklist titled "# Funeral Director Task Checklist".
Group tasks under headings for Immediate, Before the Service, Day of Service and After the
Service. Use bullet items, each a concrete action. Put permit or deadline reminders in a
WARNING callout.`
	case entity.DocumentArrangerTasks:
		return `Write an arranger task checklist titled "# Arranger Task Checklist" covering family
follow-up, paperwork, obituary placement, flowers, music and readings. Use bullet items.`
	case entity.DocumentDeathCert:
		return `Write a death certificate worksheet listing each field a state death certificate
needs (legal name, sex, date of birth, age, birthplace, date and place of death, marital
status, spouse, father, mother's maiden name, occupation, education, military service,
residence, informant, disposition method and place). Use "Field: value" lines and
"________" for unknown values. Add an INFO callout that the medical certifier completes the
cause of death.`
	}
	panic(fmt.Sprintf("compositor: unhandled document type %q", string(t)))
}

// BuildPrompt assembles the user prompt for one document type.
func BuildPrompt(t entity.DocumentType, job Job) string {
	data, _ := json.MarshalIndent(job.Data, "", "  ")

	var b strings.Builder
	b.WriteString(instructions(t))
	b.WriteString("\n\nArrangement data (JSON):\n")
	b.Write(data)

	if transcript := strings.TrimSpace(job.Transcript); transcript != "" {
		b.WriteString("\n\nConference transcript for additional context:\n")
		b.WriteString(clip(transcript, maxTranscriptChars))
	}
	if style := strings.TrimSpace(job.StyleSpecifications); style != "" {
		b.WriteString("\n\nAdditional style requirements from the funeral director:\n")
		b.WriteString(style)
	}
	return b.String()
}

const maxTranscriptChars = 12000

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "\n[transcript truncated]"
}
