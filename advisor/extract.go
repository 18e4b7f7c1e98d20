package advisor

import "strings"

type Attribute string

const (
	AttributeDescription   Attribute = "description"
	AttributePrerequisites Attribute = "prerequisites"
	AttributeCredits       Attribute = "credits"
	AttributeOfferings     Attribute = "offerings"
	AttributeScheduleTypes Attribute = "schedule_types"
)

// QueryDescriptor is the structured form of a catalog question: one
// target course and one requested attribute from a closed set. An
// external model, when configured, emits the same shape; this package
// only ever executes descriptors, never model-written SQL.
type QueryDescriptor struct {
	TargetCourse       string    `json:"target_course"`
	RequestedAttribute Attribute `json:"requested_attribute"`
}

// attributePriority decides which attribute wins when a question carries
// several keywords; the first matching entry is taken.
var attributePriority = []struct {
	keyword   string
	attribute Attribute
}{
	{"prereq", AttributePrerequisites},
	{"prerequisite", AttributePrerequisites},
	{"credit", AttributeCredits},
	{"offered", AttributeOfferings},
	{"schedule", AttributeScheduleTypes},
	{"description", AttributeDescription},
}

// Extract parses a question into a QueryDescriptor without any model
// call. It is deterministic and side-effect-free: the guaranteed
// available path when no provider is reachable. Returns ErrUnparsable
// when no course code is present.
func Extract(question string) (QueryDescriptor, error) {
	lowered := strings.ToLower(question)

	match := courseCodePattern.FindStringSubmatch(lowered)
	if match == nil {
		return QueryDescriptor{}, ErrUnparsable
	}
	targetCourse := NormalizeCourseId(match[1] + match[2])

	attribute := AttributeDescription
	for _, candidate := range attributePriority {
		if strings.Contains(lowered, candidate.keyword) {
			attribute = candidate.attribute
			break
		}
	}

	return QueryDescriptor{TargetCourse: targetCourse, RequestedAttribute: attribute}, nil
}
