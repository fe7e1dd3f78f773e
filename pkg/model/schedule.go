package model

// Tier is the scheduling priority class of a section.
type Tier int

const (
	TierMajor Tier = iota
	TierArch
	TierMath
	TierGenEd
)

var tierNames = map[Tier]string{
	TierGenEd: "gen-ed",
	TierMath:  "math",
	TierArch:  "arch",
	TierMajor: "major",
}

var tierWeights = map[Tier]int{
	TierGenEd: 4,
	TierMath:  3,
	TierArch:  2,
	TierMajor: 1,
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// Weight is the reporting priority of the tier; higher comes first.
func (t Tier) Weight() int {
	return tierWeights[t]
}

// ScheduledExam is one committed (day, slot, room) for a section. Double-unit
// sections produce two of these, Part 1 and Part 2, in the same room.
type ScheduledExam struct {
	ExamSection
	Day          int
	DayLabel     string
	Slot         int
	SlotLabel    string
	Room         string
	Tier         Tier
	Priority     int
	LectureUnits int
	Part         int
	Phase        string
}

type ScheduleCSVRow struct {
	SectionCode string `csv:"section_code"`
	SubjectID   string `csv:"subject_id"`
	Title       string `csv:"title"`
	Course      string `csv:"course"`
	YearLevel   string `csv:"year_level"`
	Department  string `csv:"department"`
	Instructor  string `csv:"instructor"`
	Day         int    `csv:"day"`
	DayLabel    string `csv:"day_label"`
	Slot        int    `csv:"slot"`
	SlotLabel   string `csv:"slot_label"`
	Room        string `csv:"room"`
	Tier        string `csv:"tier"`
	Priority    int    `csv:"priority"`
	LecUnits    int    `csv:"lec_units"`
	Part        int    `csv:"part"`
}

/* ToCSVRow flattens a placement for export. */
func (s *ScheduledExam) ToCSVRow() *ScheduleCSVRow {
	return &ScheduleCSVRow{
		SectionCode: s.SectionCode,
		SubjectID:   s.SubjectID,
		Title:       s.Title,
		Course:      s.Course,
		YearLevel:   s.YearLevel,
		Department:  s.Department,
		Instructor:  s.Instructor,
		Day:         s.Day,
		DayLabel:    s.DayLabel,
		Slot:        s.Slot,
		SlotLabel:   s.SlotLabel,
		Room:        s.Room,
		Tier:        s.Tier.String(),
		Priority:    s.Priority,
		LecUnits:    s.LectureUnits,
		Part:        s.Part,
	}
}
