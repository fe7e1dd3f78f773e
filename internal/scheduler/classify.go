package scheduler

import (
	"strings"

	"github.com/rhyrak/examsched/pkg/model"
)

// Classification is the tier of a section and, for general education, the
// category whose pinned blocks apply.
type Classification struct {
	Tier     model.Tier
	Category string
}

// Classify assigns the scheduling tier. Precedence: general education,
// mathematics, architecture, then major.
func Classify(section *model.ExamSection) Classification {
	if cat, ok := GenEdCategoryOf(section.SubjectID); ok {
		return Classification{Tier: model.TierGenEd, Category: cat.Name}
	}
	if IsMath(section.SubjectID, section.Department) {
		return Classification{Tier: model.TierMath}
	}
	if IsArch(section.SubjectID) {
		return Classification{Tier: model.TierArch}
	}
	return Classification{Tier: model.TierMajor}
}

// GenEdCategoryOf returns the first category with a prefix of subjectID.
func GenEdCategoryOf(subjectID string) (GenEdCategory, bool) {
	subject := strings.ToUpper(subjectID)
	for _, cat := range GenEdCategories {
		for _, prefix := range cat.Prefixes {
			if strings.HasPrefix(subject, prefix) {
				return cat, true
			}
		}
	}
	return GenEdCategory{}, false
}

func IsGenEd(subjectID string) bool {
	_, ok := GenEdCategoryOf(subjectID)
	return ok
}

// IsMath requires both the prefix and the exact department code.
func IsMath(subjectID, department string) bool {
	return strings.HasPrefix(strings.ToUpper(subjectID), MathPrefix) && department == EngineeringSciencesDept
}

func IsArch(subjectID string) bool {
	return strings.Contains(strings.ToUpper(subjectID), ArchSubstring)
}

// IsDoubleUnit depends only on the lecture-unit count.
func IsDoubleUnit(lec int) bool {
	return lec == model.DoubleUnits
}
