package advisor

import "github.com/boilerplan/boilerplan/db"

// gradeRank orders letter grades from best (lowest rank) to worst.
var gradeRank = map[db.Grade]int{
	db.GradeAPlus:  0,
	db.GradeA:      1,
	db.GradeAMinus: 2,
	db.GradeBPlus:  3,
	db.GradeB:      4,
	db.GradeBMinus: 5,
	db.GradeCPlus:  6,
	db.GradeC:      7,
	db.GradeCMinus: 8,
	db.GradeDPlus:  9,
	db.GradeD:      10,
	db.GradeDMinus: 11,
	db.GradeF:      12,
}

func ValidGrade(grade string) bool {
	_, okay := gradeRank[db.Grade(grade)]
	return okay
}

// MeetsGradeRequirement reports whether actual is at or above required in
// the letter-grade order. Grades outside the fixed set are never coerced:
// okay is false and the caller decides how to degrade.
func MeetsGradeRequirement(actual, required string) (meets, okay bool) {
	actualRank, actualOkay := gradeRank[db.Grade(actual)]
	requiredRank, requiredOkay := gradeRank[db.Grade(required)]
	if !actualOkay || !requiredOkay {
		return false, false
	}
	return actualRank <= requiredRank, true
}
