// Package types defines the core data model for the recommendation engine:
// skill gaps, search plans, candidates, retry state, and the result union
// exchanged between the coordinator and its caller.
package types

// SkillGapSet is an ordered, de-duplicated list of normalized skill names the
// user still needs to demonstrate. Construction (normalization and
// de-duplication) lives in the skills package; consumers treat the set as
// read-only.
type SkillGapSet []string

// IsEmpty reports whether the set contains no gaps.
func (s SkillGapSet) IsEmpty() bool {
	return len(s) == 0
}

// KnownSkill is one skill the user already has, with a self-reported
// proficiency label ("beginner", "intermediate", "advanced").
type KnownSkill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// UserContext carries personalization attributes forwarded verbatim to the
// planner and reranker. The coordinator never interprets these fields.
type UserContext struct {
	ExperienceLevel string       `json:"experience_level,omitempty"`
	KnownSkills     []KnownSkill `json:"known_skills,omitempty"`
	TargetRole      string       `json:"target_role,omitempty"`
}

// SkillNames returns the bare names of the known skills, capped at limit.
// A limit of zero or below means no cap.
func (u UserContext) SkillNames(limit int) []string {
	names := make([]string, 0, len(u.KnownSkills))
	for _, s := range u.KnownSkills {
		if s.Name == "" {
			continue
		}
		names = append(names, s.Name)
		if limit > 0 && len(names) >= limit {
			break
		}
	}
	return names
}
