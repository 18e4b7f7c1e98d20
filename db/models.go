package db

type Major struct {
	Id      string
	Name    string
	Version string
	Active  bool
}

type Course struct {
	Id      string
	MajorId string
	Title   string
	Credits float64
	Level   *int
}

type PrereqKind string

const (
	PrereqKindAllOf PrereqKind = "allof"
	PrereqKindOneOf PrereqKind = "oneof"
	PrereqKindCoreq PrereqKind = "coreq"
)

type Prereq struct {
	Id        int64
	MajorId   string
	DstCourse string
	Kind      PrereqKind
	Expr      []byte // JSON expression tree, decoded by the advisor package
	MinGrade  string
}

type Requirement struct {
	Id      int64
	MajorId string
	Key     string
	Rule    []byte
}

type Offering struct {
	Id          int64
	CourseId    string
	TermPattern string
}

type Track struct {
	Id      int64
	MajorId string
	Name    string
}

type TrackGroup struct {
	Id         int64
	TrackId    int64
	Key        string
	Need       int
	CourseList []byte // JSON array of course ids
}

type Policy struct {
	MajorId                  string
	MaxCreditsPerTerm        float64
	SummerAllowedDefault     bool
	MinGradeDefault          string
	OverloadRequiresApproval bool
}

type Grade string

const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeDPlus  Grade = "D+"
	GradeD      Grade = "D"
	GradeDMinus Grade = "D-"
	GradeF      Grade = "F"
)
