package kyc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiDLParser extracts license fields with Google's Gemini API instead
// of the regex heuristics. Optional; wired in only when GEMINI_API_KEY is
// configured, and the verifier falls back to regex extraction whenever it
// fails.
type GeminiDLParser struct {
	APIKey string
	Model  string
}

func NewGeminiDLParser(apiKey string) *GeminiDLParser {
	return &GeminiDLParser{APIKey: apiKey, Model: "gemini-2.0-flash-lite"}
}

const dlFieldPrompt = `You are an expert data extraction assistant. Your job is to extract specific fields from the following raw OCR text of an Indian driving license and return the data in a clean JSON format.

Here are the rules:
1. The required fields are: "name", "dob", "validFrom", and "validTo".
2. Dates must be kept exactly as printed (day-month-year with - or / separators).
3. If a field cannot be found in the text, its value in the JSON must be null.
4. Your entire response must be ONLY the JSON object. Do not include any explanations, apologies, or any text before or after the JSON.

Here is the raw text:
"""
[INSERT RAW OCR TEXT HERE]
"""`

func (g *GeminiDLParser) ParseDLFields(ctx context.Context, text string) (DLFields, error) {
	var out DLFields

	if strings.TrimSpace(g.APIKey) == "" {
		return out, errors.New("missing Gemini API key")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return out, fmt.Errorf("failed to init Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	model.GenerationConfig = genai.GenerationConfig{ResponseMIMEType: "application/json"}

	prompt := strings.Replace(dlFieldPrompt, "[INSERT RAW OCR TEXT HERE]", text, 1)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return out, fmt.Errorf("gemini generation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return out, errors.New("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		} else {
			sb.WriteString(fmt.Sprint(part))
		}
	}
	jsonStr := strings.TrimSpace(sb.String())
	if jsonStr == "" {
		return out, errors.New("no text in Gemini response")
	}

	jsonStr = stripCodeFences(jsonStr)
	if candidate, ok := extractFirstJSON(jsonStr); ok {
		jsonStr = candidate
	}

	// Tolerate nulls by unmarshaling into a map first.
	var tmp map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &tmp); err != nil {
		return out, fmt.Errorf("failed to parse Gemini JSON: %w", err)
	}
	get := func(k string) string {
		v, ok := tmp[k]
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		b, _ := json.Marshal(v)
		return strings.TrimSpace(string(b))
	}

	out.Name = get("name")
	out.DOB = get("dob")
	out.ValidFrom = get("validFrom")
	out.ValidTo = get("validTo")
	return out, nil
}

// stripCodeFences removes surrounding Markdown code fences like ```json ... ```.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
		if i := strings.IndexByte(s, '\n'); i != -1 {
			first := strings.TrimSpace(s[:i])
			if len(first) > 0 && len(first) < 20 { // likely a language tag like json
				s = s[i+1:]
			}
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// extractFirstJSON attempts to extract the first balanced JSON object or array.
func extractFirstJSON(s string) (string, bool) {
	if obj, ok := extractBalanced(s, '{', '}'); ok {
		return obj, true
	}
	if arr, ok := extractBalanced(s, '[', ']'); ok {
		return arr, true
	}
	return "", false
}

func extractBalanced(s string, open, close rune) (string, bool) {
	start := -1
	depth := 0
	for i, r := range s {
		if r == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if r == close {
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
