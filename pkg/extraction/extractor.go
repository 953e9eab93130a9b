// Package extraction turns a raw arrangement-conference transcript into
// structured arrangement data with one LLM call.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"funeral-docs-be/internal/entity"
	"funeral-docs-be/pkg/llm"
)

var (
	ErrNoJSON      = errors.New("model response contained no JSON object")
	ErrMissingName = errors.New("extracted data has no deceased name")
)

const systemPrompt = `You are an assistant for a funeral home. You read transcripts of arrangement
conferences between a funeral director and a family and extract the facts discussed.
Answer with a single JSON object and nothing else. Use empty strings or omit fields
that were not discussed. Never invent facts.`

const schemaHint = `{
  "deceased": {"fullName": "", "preferredName": "", "dateOfBirth": "", "dateOfDeath": "",
    "placeOfBirth": "", "placeOfDeath": "", "age": "", "gender": "", "maritalStatus": "",
    "spouseName": "", "fatherName": "", "motherMaidenName": "", "occupation": "",
    "education": "", "militaryService": "", "religion": "", "address": ""},
  "service": {"type": "", "date": "", "time": "", "location": "", "officiant": "",
    "visitation": "", "music": [], "readings": [], "pallbearers": [], "flowers": ""},
  "disposition": {"method": "", "cemetery": "", "plot": "", "crematory": "", "container": ""},
  "nextOfKin": {"name": "", "relationship": "", "phone": "", "email": "", "address": ""},
  "survivors": [{"name": "", "relationship": ""}],
  "obituary": {"highlights": [], "hobbies": [], "achievements": [], "memorials": ""},
  "financial": {"items": [{"description": "", "amount": 0}], "total": 0, "deposit": 0, "paymentMethod": ""},
  "specialRequests": [],
  "notes": ""
}`

// Extractor wraps the LLM used for extraction.
type Extractor struct {
	provider  llm.LLMProvider
	maxTokens int
}

func NewExtractor(provider llm.LLMProvider, maxTokens int) *Extractor {
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &Extractor{provider: provider, maxTokens: maxTokens}
}

// Extract asks the model for the arrangement JSON and decodes it.
func (e *Extractor) Extract(ctx context.Context, transcript string) (entity.ArrangementData, error) {
	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Extract the arrangement details from this transcript using exactly this JSON shape:\n" +
			schemaHint + "\n\nTranscript:\n" + transcript},
	}

	raw, err := e.provider.Chat(ctx, history, llm.WithMaxTokens(e.maxTokens), llm.WithTemperature(0.1))
	if err != nil {
		return entity.ArrangementData{}, fmt.Errorf("llm extraction: %w", err)
	}
	return Decode(raw)
}

// Decode pulls the first JSON object out of a model response, tolerating
// code fences and prose around it.
func Decode(raw string) (entity.ArrangementData, error) {
	var data entity.ArrangementData

	body := stripFence(strings.TrimSpace(raw))
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return data, ErrNoJSON
	}

	if err := json.Unmarshal([]byte(body[start:end+1]), &data); err != nil {
		return data, fmt.Errorf("decode extraction: %w", err)
	}
	if strings.TrimSpace(data.Deceased.FullName) == "" {
		return data, ErrMissingName
	}
	return data, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.Index(s, "\n"); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
