package advisor

import (
	"regexp"
	"strings"
)

type Intent string

const (
	IntentT2SQL       Intent = "t2sql"
	IntentGeneralChat Intent = "general_chat"
	IntentPlanner     Intent = "planner"
)

// courseCodePattern matches a 2-4 letter department prefix followed,
// with or without whitespace, by a 3-5 digit number: "cs251", "CS 251".
var courseCodePattern = regexp.MustCompile(`(?i)\b([a-z]{2,4})\s*([0-9]{3,5})\b`)

// attributeKeywords is the vocabulary of catalog attributes a question
// can ask about. Matched as lowercase substrings.
var attributeKeywords = []string{
	"prereq",
	"prerequisite",
	"credit",
	"offered",
	"term pattern",
	"description",
	"outcome",
	"campus",
	"schedule type",
	"track",
	"elective",
}

var schedulingPhrases = []string{
	"when should i take",
	"help me plan",
	"what semester",
	"schedule",
}

type intentRule struct {
	name    string
	matches func(question string) bool
	intent  Intent
}

// intentRules are evaluated top to bottom; the first match wins.
// Attribute-bearing, course-specific questions outrank generic planning
// phrasing, and a bare course code still reads as a catalog lookup.
var intentRules = []intentRule{
	{
		name: "course code with attribute keyword",
		matches: func(question string) bool {
			return hasCourseCode(question) && hasAttributeKeyword(question)
		},
		intent: IntentT2SQL,
	},
	{
		name:    "scheduling phrasing",
		matches: hasSchedulingPhrase,
		intent:  IntentPlanner,
	},
	{
		name:    "course code",
		matches: hasCourseCode,
		intent:  IntentT2SQL,
	},
}

// Classify routes a free-text question. It is deterministic and
// case-insensitive: the same question always yields the same intent.
func Classify(question string) Intent {
	question = strings.ToLower(question)
	for _, rule := range intentRules {
		if rule.matches(question) {
			return rule.intent
		}
	}
	return IntentGeneralChat
}

func hasCourseCode(question string) bool {
	return courseCodePattern.MatchString(question)
}

func hasAttributeKeyword(question string) bool {
	for _, keyword := range attributeKeywords {
		if strings.Contains(question, keyword) {
			return true
		}
	}
	return false
}

func hasSchedulingPhrase(question string) bool {
	for _, phrase := range schedulingPhrases {
		if strings.Contains(question, phrase) {
			return true
		}
	}
	return false
}
