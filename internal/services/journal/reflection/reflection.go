// Package reflection defines the weekly reflection shape and its wire parsing.
package reflection

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WeeklyReflection is the structured summary produced for one week of entries.
type WeeklyReflection struct {
	Themes        []string `json:"themes"`
	GrowthMoments []string `json:"growthMoments"`
	Challenge     string   `json:"challenge"`
	Improvement   string   `json:"improvement"`
	Identity      string   `json:"identity"`
}

// Empty returns a reflection with every field present but blank. It is the
// fallback shape when a collaborator response cannot be parsed.
func Empty() WeeklyReflection {
	return WeeklyReflection{
		Themes:        []string{},
		GrowthMoments: []string{},
	}
}

// Unfence strips a surrounding Markdown code fence from a model response.
// Responses frequently arrive as ```json ... ``` even when asked for bare
// JSON, so the fence is removed before parsing.
func Unfence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		// Drop the language tag on the opening fence line.
		head := strings.TrimSpace(trimmed[:newline])
		if head == "" || !strings.ContainsAny(head, "{[") {
			trimmed = trimmed[newline+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// Parse decodes a collaborator response into a WeeklyReflection. The response
// may be fenced. Missing fields decode to their zero values; list fields are
// normalized to non-nil slices so the wire shape always carries every key.
func Parse(raw string) (WeeklyReflection, error) {
	payload := Unfence(raw)
	if payload == "" {
		return Empty(), fmt.Errorf("empty reflection payload")
	}

	var parsed WeeklyReflection
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return Empty(), fmt.Errorf("unmarshal reflection: %w", err)
	}
	if parsed.Themes == nil {
		parsed.Themes = []string{}
	}
	if parsed.GrowthMoments == nil {
		parsed.GrowthMoments = []string{}
	}
	return parsed, nil
}
