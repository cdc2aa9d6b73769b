package model

// PremiumTopicSlug is the one reserved category hidden from non-paid users.
const PremiumTopicSlug = "jobs-referrals"

// StudyMaterialSlugs are the categories that accept document attachments.
var StudyMaterialSlugs = []string{"exams-study", "tech-projects"}

// Topic is an admin-curated category; users cannot create topics.
type Topic struct {
	ID   uint64  `gorm:"primaryKey"`
	Name string  `gorm:"size:200;not null"`
	Slug *string `gorm:"uniqueIndex;size:220"`
}

func (t *Topic) IsPremium() bool {
	return t.Slug != nil && *t.Slug == PremiumTopicSlug
}

func (t *Topic) IsStudyMaterial() bool {
	if t.Slug == nil {
		return false
	}
	for _, s := range StudyMaterialSlugs {
		if *t.Slug == s {
			return true
		}
	}
	return false
}
