package classify

import "testing"

func TestParseLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Label
		ok   bool
	}{
		{name: "exact", raw: "emotional_checkin", want: LabelEmotionalCheckin, ok: true},
		{name: "whitespace", raw: "  advice_request\n", want: LabelAdviceRequest, ok: true},
		{name: "uppercase", raw: "SELF_REFLECTION", want: LabelSelfReflection, ok: true},
		{name: "unknown", raw: "long_rant", ok: false},
		{name: "empty", raw: "", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseLabel(tc.raw)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("label = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRouteForKnownLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label    Label
		model    string
		provider string
	}{
		{LabelEmotionalCheckin, "anthropic/claude-3.7-sonnet", "openrouter"},
		{LabelAdviceRequest, "gpt-4.1", "openai"},
		{LabelSelfReflection, "cohere/command-r-plus-08-2024", "openrouter"},
	}
	for _, tc := range tests {
		route := RouteFor(tc.label)
		if route.Model != tc.model || route.Provider != tc.provider {
			t.Fatalf("route for %s = %+v", tc.label, route)
		}
	}
}

func TestRouteForUnknownLabelFallsBack(t *testing.T) {
	t.Parallel()

	route := RouteFor(Label("long_rant"))
	if route != RouteFor(LabelEmotionalCheckin) {
		t.Fatalf("unexpected fallback route: %+v", route)
	}
}

func TestWeeklyRoute(t *testing.T) {
	t.Parallel()

	route := WeeklyRoute()
	if route.Model != "gemini-2.5-flash" || route.Provider != "google" {
		t.Fatalf("weekly route = %+v", route)
	}
}
