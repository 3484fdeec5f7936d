// Package feature enumerates the five career-advice tools and the static
// facts each one carries: names, endpoints and payload field names.
package feature

import (
	"fmt"
	"strconv"
	"strings"
)

// ID identifies one of the five career-advice tools.
type ID int

const (
	CareerPaths   ID = 1
	ResumeReview  ID = 2
	MarketInsight ID = 3
	CollegeAdvice ID = 4
	InterviewPrep ID = 5
)

// All lists every feature in display order.
var All = []ID{CareerPaths, ResumeReview, MarketInsight, CollegeAdvice, InterviewPrep}

// Info is the static description of a feature.
type Info struct {
	Name        string // display name, e.g. "Career Path Suggestions"
	SavePrefix  string // default title prefix for saved responses
	Endpoint    string // primary structured-advice route
	InputField  string // form field carrying the user's input
	ReplyField  string // JSON field carrying the AI text
	EmptyInput  string // warning shown when the input is blank
	FailMessage string // alert shown when the primary call fails
}

var infos = map[ID]Info{
	CareerPaths: {
		Name:        "Career Path Suggestions",
		SavePrefix:  "Career Path Advice",
		Endpoint:    "/get_ai_advice",
		InputField:  "interest",
		ReplyField:  "advice",
		EmptyInput:  "Please enter your interests first",
		FailMessage: "Error fetching AI advice. Please try again.",
	},
	ResumeReview: {
		Name:        "Resume/CV Feedback",
		SavePrefix:  "Resume Feedback",
		Endpoint:    "/get_resume_feedback",
		InputField:  "resume_text",
		ReplyField:  "feedback",
		EmptyInput:  "Please enter your resume text or upload a file",
		FailMessage: "Error analyzing resume. Please try again.",
	},
	MarketInsight: {
		Name:        "Job Market Insights",
		SavePrefix:  "Job Market Insights",
		Endpoint:    "/get_market_insights",
		InputField:  "topic",
		ReplyField:  "insights",
		EmptyInput:  "Please enter a job market topic first",
		FailMessage: "Error getting market insights. Please try again.",
	},
	CollegeAdvice: {
		Name:        "College/Major Advice",
		SavePrefix:  "College/Major Advice",
		Endpoint:    "/get_college_advice",
		InputField:  "major",
		ReplyField:  "advice",
		EmptyInput:  "Please enter a major first",
		FailMessage: "Error getting college advice. Please try again.",
	},
	InterviewPrep: {
		Name:        "Interview Preparation Tips",
		SavePrefix:  "Interview Tips",
		Endpoint:    "/get_interview_tips",
		InputField:  "role",
		ReplyField:  "tips",
		EmptyInput:  "Please enter a role first",
		FailMessage: "Error getting interview tips. Please try again.",
	},
}

// Parse converts "1".."5" into an ID.
func Parse(s string) (ID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid feature %q: must be 1-5", s)
	}
	id := ID(n)
	if !id.Valid() {
		return 0, fmt.Errorf("invalid feature %q: must be 1-5", s)
	}
	return id, nil
}

// Valid reports whether id is one of the five known features.
func (id ID) Valid() bool {
	_, ok := infos[id]
	return ok
}

// Info returns the static description of id. Unknown IDs yield a zero Info.
func (id ID) Info() Info {
	return infos[id]
}

// String returns the wire form of the ID ("1".."5").
func (id ID) String() string {
	return strconv.Itoa(int(id))
}
