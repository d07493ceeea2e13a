package classify

import (
	"context"
	"fmt"
	"strings"
)

const classifyPromptTemplate = `You are a journal entry classifier for an adaptive AI journey.

Given a journal entry, output ONLY ONE of the following labels:
- emotional_checkin: Primarily about current feelings/moods. The tone is reactive to the moment.
- advice_request: Focused on tasks, problems, or work. The user is in "doing" mode or seeking solutions.
- self_reflection: Looking at the bigger picture, analyzing personal growth, or identifying long-term patterns in life and relationships.

Rules:
- Output exactly one label
- No punctuation
- No explanation
- lowercase only

Journal entry:
"""%s"""
`

const suggestTopicsPromptTemplate = `You are an intelligent journaling assistant. Your user interacts in three primary modes:
1. Emotional Check-in (processing feelings)
2. Request Advice (problem-solving/seeking guidance)
3. Self-Reflection (analyzing patterns and growth)

Analyze these entries from the past 3 days:
"""%s"""

Identify the dominant mode. Then, generate 3 "Entry Starters" for the user to write about today.

Rules for Suggested Topics:
- Use 2-4 words maximum.
- Do NOT use questions or periods.
- Return one topic per line.

Example output:
My current headspace
Today's small wins
My evening reflections
`

// Classifier labels journal entries using a text generation collaborator.
type Classifier struct {
	generator TextGenerator
}

// NewClassifier builds a Classifier over the provided generator.
func NewClassifier(generator TextGenerator) *Classifier {
	return &Classifier{generator: generator}
}

// Classify maps entry text to one of the known labels.
func (c *Classifier) Classify(ctx context.Context, text string) (Label, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("entry text is required")
	}

	raw, err := c.generator.GenerateText(ctx, fmt.Sprintf(classifyPromptTemplate, text))
	if err != nil {
		return "", fmt.Errorf("classify entry: %w", err)
	}
	label, ok := ParseLabel(raw)
	if !ok {
		return "", fmt.Errorf("unknown entry label %q", strings.TrimSpace(raw))
	}
	return label, nil
}

// SuggestTopics generates short entry starters from recent entry text. The
// generator returns one topic per line; blank lines are dropped.
func (c *Classifier) SuggestTopics(ctx context.Context, entriesText string) ([]string, error) {
	entriesText = strings.TrimSpace(entriesText)
	if entriesText == "" {
		return nil, fmt.Errorf("entries text is required")
	}

	raw, err := c.generator.GenerateText(ctx, fmt.Sprintf(suggestTopicsPromptTemplate, entriesText))
	if err != nil {
		return nil, fmt.Errorf("suggest topics: %w", err)
	}

	var topics []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			topics = append(topics, line)
		}
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("topics response was empty")
	}
	return topics, nil
}
