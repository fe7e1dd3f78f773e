package model

// ExamSection is one offering of a subject that needs an exam slot.
type ExamSection struct {
	SubjectID    string `csv:"subject_id" json:"subjectId" validate:"required"`
	SectionCode  string `csv:"section_code" json:"sectionCode" validate:"required"`
	Title        string `csv:"title" json:"title"`
	Course       string `csv:"course" json:"course"`
	YearLevel    string `csv:"year_level" json:"yearLevel"`
	Instructor   string `csv:"instructor" json:"instructor"`
	Department   string `csv:"department" json:"department"`
	LectureUnits int    `csv:"lec_units" json:"lectureUnits" validate:"gte=0"`
	Students     int    `csv:"students" json:"students" validate:"gte=0"`
	Regular      bool   `csv:"regular" json:"regular"`
	LectureRoom  string `csv:"lecture_room" json:"lectureRoom,omitempty"`
}

// DoubleUnits is the lecture-unit count that needs two consecutive slots.
const DoubleUnits = 6

// IsDoubleUnit reports whether the section occupies two consecutive slots.
func (e *ExamSection) IsDoubleUnit() bool {
	return e.LectureUnits == DoubleUnits
}

// CourseYearKey returns the cohort key used for conflict detection.
// ok is false when either the course or the year level is missing.
func (e *ExamSection) CourseYearKey() (key string, ok bool) {
	if e.Course == "" || e.YearLevel == "" {
		return "", false
	}
	return e.Course + "-" + e.YearLevel, true
}
