package classify

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

type stubGenerator struct {
	output string
	err    error

	lastPrompt string
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.output, nil
}

func TestClassifierClassify(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{output: "advice_request"}
	classifier := NewClassifier(generator)

	label, err := classifier.Classify(context.Background(), "How do I prioritize my deadlines?")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if label != LabelAdviceRequest {
		t.Fatalf("label = %q", label)
	}
	if !strings.Contains(generator.lastPrompt, "How do I prioritize my deadlines?") {
		t.Fatal("prompt must embed the entry text")
	}
}

func TestClassifierRejectsUnknownLabel(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(&stubGenerator{output: "long_rant"})
	if _, err := classifier.Classify(context.Background(), "entry"); err == nil {
		t.Fatal("expected unknown label error")
	}
}

func TestClassifierPropagatesGeneratorFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("provider down")
	classifier := NewClassifier(&stubGenerator{err: wantErr})
	if _, err := classifier.Classify(context.Background(), "entry"); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
}

func TestClassifierRequiresText(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(&stubGenerator{output: "emotional_checkin"})
	if _, err := classifier.Classify(context.Background(), "   "); err == nil {
		t.Fatal("expected empty text error")
	}
}

func TestSuggestTopicsSplitsLines(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{output: "My current headspace\n\n  Today's small wins  \nMy evening reflections\n"}
	classifier := NewClassifier(generator)

	topics, err := classifier.SuggestTopics(context.Background(), "three days of entries")
	if err != nil {
		t.Fatalf("suggest topics: %v", err)
	}
	want := []string{"My current headspace", "Today's small wins", "My evening reflections"}
	if !reflect.DeepEqual(topics, want) {
		t.Fatalf("topics = %v, want %v", topics, want)
	}
}

func TestSuggestTopicsEmptyResponse(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(&stubGenerator{output: "  \n \n"})
	if _, err := classifier.SuggestTopics(context.Background(), "entries"); err == nil {
		t.Fatal("expected empty topics error")
	}
}

func TestSuggestTopicsPropagatesFailure(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(&stubGenerator{err: fmt.Errorf("unreachable")})
	if _, err := classifier.SuggestTopics(context.Background(), "entries"); err == nil {
		t.Fatal("expected generator failure")
	}
}
