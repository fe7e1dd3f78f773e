package scheduler

// Buildings lists every known building prefix; departments without a table
// entry may use any of them.
var Buildings = []string{"ARC", "ENG", "SCI", "BUS", "MAIN", "LIB"}

// ArchitectureBuildings are tried in order for architecture subjects.
var ArchitectureBuildings = []string{"ARC", "ENG"}

const (
	StudentAffairsDept      = "OSA"
	EngineeringSciencesDept = "DES"
	MathPrefix              = "MATH"
	ArchSubstring           = "ARCH"
)

type departmentBuildings struct {
	Match     string
	Buildings []string
}

// DepartmentBuildings is matched in order; the first entry whose Match is a
// case-insensitive substring of the department wins.
var DepartmentBuildings = []departmentBuildings{
	{Match: "DES", Buildings: []string{"ENG", "SCI"}},
	{Match: "CEA", Buildings: []string{"ENG", "ARC"}},
	{Match: "CITC", Buildings: []string{"SCI", "MAIN"}},
	{Match: "CBA", Buildings: []string{"BUS", "MAIN"}},
	{Match: "CAS", Buildings: []string{"MAIN", "LIB", "SCI"}},
	{Match: "CTE", Buildings: []string{"MAIN", "LIB"}},
}

// Block is a pinned (day, slot) for a general-education category.
// Capacity is advisory and is not enforced.
type Block struct {
	Day      int
	Slot     int
	Capacity int
}

type GenEdCategory struct {
	Name     string
	Prefixes []string
	Blocks   []Block
}

// GenEdCategories are checked in order against the subject id prefix.
var GenEdCategories = []GenEdCategory{
	{Name: "ethics", Prefixes: []string{"ETHC"}, Blocks: []Block{{0, 0, 40}, {1, 0, 40}}},
	{Name: "english", Prefixes: []string{"ENGL"}, Blocks: []Block{{0, 1, 40}, {1, 1, 40}}},
	{Name: "physical-education", Prefixes: []string{"PATHFIT", "PE"}, Blocks: []Block{{2, 0, 60}, {2, 1, 60}}},
	{Name: "cfed", Prefixes: []string{"CFED"}, Blocks: []Block{{0, 2, 30}, {1, 2, 30}}},
	{Name: "communication", Prefixes: []string{"PCOM", "CWRT"}, Blocks: []Block{{0, 3, 40}}},
	{Name: "language", Prefixes: []string{"LANG", "FIL", "SPAN", "NIHO"}},
	{Name: "literature", Prefixes: []string{"LIT"}},
}
