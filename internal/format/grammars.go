package format

import (
	"regexp"

	"github.com/ziadkadry99/careerbot/internal/feature"
)

var (
	// listSplit separates list items on newlines, hyphens and "N." numbering.
	listSplit = regexp.MustCompile(`\n|-|\d+\.`)
	// resumeSplit is the stricter per-character splitter used for resume
	// feedback, where items are numbered "1)" as often as "1.".
	resumeSplit = regexp.MustCompile(`[\n\d.)-]`)
)

var grammars = map[feature.ID]*Grammar{
	feature.CareerPaths: (&Grammar{
		Signals: []string{"Top 5 Recommended Careers", "Key Skills Needed", "Education Requirements"},
		Sections: []Section{
			{Title: "Top 5 Recommended Careers", Icon: "🏆", Mode: List},
			{Title: "Key Skills Needed", Icon: "🔑", Mode: List},
			{Title: "Education Requirements", Icon: "🎓", Mode: Prose},
			{Title: "Quick Starting Tips", Icon: "💡", Class: "recommendation", Mode: List},
		},
		Split: listSplit,
	}).compile(),

	feature.ResumeReview: (&Grammar{
		Signals: []string{"Strengths", "Areas to Improve", "ATS Score"},
		Sections: []Section{
			{Title: "Strengths", Icon: "💪", Class: "positive", Mode: List, Until: []string{"Areas to Improve"}},
			{Title: "Areas to Improve", Icon: "🔍", Class: "negative", Mode: List, Until: []string{"ATS Score"}},
			{Title: "ATS Score", Icon: "🤖", Mode: Score},
			{
				Title:     "Recommendation",
				Icon:      "💡",
				Class:     "recommendation",
				Mode:      Prose,
				Markers:   []string{"final recommendation", "recommendation"},
				Open:      true,
				OmitEmpty: true,
			},
		},
		Fold:  true,
		Split: resumeSplit,
	}).compile(),

	feature.MarketInsight: (&Grammar{
		Signals: []string{"Current Demand", "Salary Range", "Growth Outlook"},
		Sections: []Section{
			{Title: "Current Demand", Icon: "📊", Mode: Prose},
			{Title: "Salary Range", Icon: "💰", Mode: Prose},
			{Title: "Growth Outlook", Icon: "📈", Mode: Prose},
			{Title: "Key Skills", Icon: "🔑", Mode: List},
			{Title: "Quick Tip", Icon: "💡", Class: "recommendation", Mode: Prose},
		},
		Split: listSplit,
	}).compile(),

	feature.CollegeAdvice: (&Grammar{
		Signals: []string{"Top 3 Career Paths", "Required Skills", "Entry Requirements"},
		Sections: []Section{
			{Title: "Top 3 Career Paths", Icon: "🚀", Mode: List},
			{Title: "Required Skills", Icon: "🧠", Mode: List},
			{Title: "Entry Requirements", Icon: "🎯", Mode: Prose},
			{Title: "Quick Advice", Icon: "💡", Class: "recommendation", Mode: Prose},
		},
		Split: listSplit,
	}).compile(),

	feature.InterviewPrep: (&Grammar{
		Signals: []string{"Key Skills to Highlight", "Common Questions", "Preparation Strategy"},
		Sections: []Section{
			{Title: "Key Skills to Highlight", Icon: "✨", Mode: List},
			{Title: "Common Questions", Icon: "❓", Mode: List},
			{Title: "Preparation Strategy", Icon: "📝", Mode: Prose},
			{Title: "Quick Tip", Icon: "💡", Class: "recommendation", Mode: Prose},
		},
		Split: listSplit,
	}).compile(),
}

// GrammarFor returns the grammar of a feature, or nil for unknown IDs.
func GrammarFor(id feature.ID) *Grammar {
	return grammars[id]
}
