// Package classify labels journal entries and selects the collaborator
// route used to respond to them.
package classify

import "strings"

// Label categorizes a journal entry by the mode the writer is in.
type Label string

const (
	LabelEmotionalCheckin Label = "emotional_checkin"
	LabelAdviceRequest    Label = "advice_request"
	LabelSelfReflection   Label = "self_reflection"
)

// ParseLabel normalizes a raw classifier output into a known label. The
// second return reports whether the label is one of the known set.
func ParseLabel(raw string) (Label, bool) {
	switch Label(strings.ToLower(strings.TrimSpace(raw))) {
	case LabelEmotionalCheckin:
		return LabelEmotionalCheckin, true
	case LabelAdviceRequest:
		return LabelAdviceRequest, true
	case LabelSelfReflection:
		return LabelSelfReflection, true
	}
	return "", false
}

// Route names the model and provider a collaborator message is sent with.
type Route struct {
	Model    string
	Provider string
}

var labelRoutes = map[Label]Route{
	LabelEmotionalCheckin: {Model: "anthropic/claude-3.7-sonnet", Provider: "openrouter"},
	LabelAdviceRequest:    {Model: "gpt-4.1", Provider: "openai"},
	LabelSelfReflection:   {Model: "cohere/command-r-plus-08-2024", Provider: "openrouter"},
}

// RouteFor returns the collaborator route for a label. Unknown labels fall
// back to the emotional check-in route, which gives the most general
// supportive response.
func RouteFor(label Label) Route {
	if route, ok := labelRoutes[label]; ok {
		return route
	}
	return labelRoutes[LabelEmotionalCheckin]
}

// WeeklyRoute returns the route used for weekly reflection synthesis.
func WeeklyRoute() Route {
	return Route{Model: "gemini-2.5-flash", Provider: "google"}
}
