package seed

import (
	"time"

	"github.com/lumidiary/lumidiary/internal/services/journal/classify"
)

type demoEntry struct {
	id        string
	createdAt time.Time
	content   string
	label     string
	model     string
	reply     string
}

func newDemoEntry(id string, year int, month time.Month, day int, label classify.Label, content, reply string) demoEntry {
	return demoEntry{
		id:        id,
		createdAt: time.Date(year, month, day, 9, 0, 0, 0, time.UTC),
		content:   content,
		label:     string(label),
		model:     classify.RouteFor(label).Model,
		reply:     reply,
	}
}

// demoEntries covers every entry type across three January weeks so the
// weekly reflection and suggested topic flows have material to work with.
var demoEntries = []demoEntry{
	newDemoEntry("seed-entry-01", 2026, time.January, 3, classify.LabelEmotionalCheckin,
		"I woke up feeling restless and tense, like the weight of everything I didn't finish yesterday was sitting on my chest. Even small tasks feel impossible right now, and I keep replaying every little mistake in my head.",
		"Feeling that weight makes sense, and it's okay to notice how heavy it feels without rushing past it. Your mind is looping because it cares about getting things right. Try a 5-minute body scan with slow exhales to ground, then choose one tiny task to finish."),
	newDemoEntry("seed-entry-02", 2026, time.January, 6, classify.LabelAdviceRequest,
		"I'm juggling so many deadlines at work and struggling to prioritize. My productivity drops whenever I multitask. I need a system to break tasks into manageable chunks and stick to them consistently.",
		"Option 1: Use time blocks with one task per block and a short buffer between. Option 2: Sort tasks by impact and deadline, then batch similar items back-to-back. Recommended next step: pick your top three tasks for tomorrow, schedule them into two focused blocks, and protect those windows."),
	newDemoEntry("seed-entry-03", 2026, time.January, 7, classify.LabelSelfReflection,
		"After my recent breakup, I've realized I often prioritize others' needs over my own. This pattern has caused unnecessary stress, but it also gives me clarity on setting boundaries and valuing my own emotional health.",
		"You're spotting a recurring pattern of self-sacrifice that drains you. Beneath it is a core value of caring for others, which now wants to be balanced with self-respect. Setting clearer boundaries aligns with both care and self-worth."),
	newDemoEntry("seed-entry-04", 2026, time.January, 8, classify.LabelSelfReflection,
		"Reflecting on the past two weeks, I notice I perform best when I focus on one thing at a time. Multitasking leads to stress and errors. I need to build routines that respect my natural flow rather than force productivity.",
		"You're recognizing a pattern: single-tasking keeps you steady while multitasking scatters your energy. This highlights a core value of intentionality and respect for your own pace. Leaning into focused blocks could help you honor that value day to day."),
	newDemoEntry("seed-entry-05", 2026, time.January, 10, classify.LabelEmotionalCheckin,
		"Today was surprisingly peaceful. I took a long walk and felt the tension in my shoulders ease. Even though work is still waiting, for a moment I felt light and centered.",
		"It's great that you let yourself feel that lightness and noticed your body unwind. Peaceful moments can coexist with pending work. Anchor the feeling with a brief shoulder roll and three slow breaths before you start the next task."),
	newDemoEntry("seed-entry-06", 2026, time.January, 12, classify.LabelEmotionalCheckin,
		"Work was chaotic and overwhelming today. Deadlines collided, emails kept piling up, and I barely had time to breathe. I feel exhausted but also strangely motivated to reorganize my priorities tomorrow.",
		"That exhaustion shows how hard you've been pushing, and it's valid to feel overwhelmed. There's also a spark of motivation you can nurture. Before bed, jot the top two priorities for tomorrow and take five slow breaths to steady yourself."),
	newDemoEntry("seed-entry-07", 2026, time.January, 15, classify.LabelAdviceRequest,
		"Lately I've been procrastinating on a personal project I care about. I feel frustrated and stuck. I want a concrete method to push past mental blocks and make steady progress.",
		"Option 1: Set a 20-minute starter timer and work only on the smallest next action. Option 2: Pair up with someone for an accountability check-in and share a tiny daily deliverable. Recommended next step: define one bite-sized deliverable you can finish in 20 minutes tonight, then book a 30-minute session on your calendar tomorrow."),
	newDemoEntry("seed-entry-08", 2026, time.January, 16, classify.LabelSelfReflection,
		"I had a breakthrough while journaling today. Looking back at my habits and choices, I can see patterns I never noticed before. Understanding them gives me hope that I can change things gradually and sustainably.",
		"You're recognizing patterns that were previously hidden, which reveals a value of curiosity and growth. Seeing those threads gives you a sense of agency over gradual change. Staying with that steady pace can help you turn insight into sustainable habits."),
}
