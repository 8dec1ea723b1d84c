package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Débutant"
	LevelIntermediate SkillLevel = "Intermédiaire"
	LevelAdvanced     SkillLevel = "Avancé"
	LevelExpert       SkillLevel = "Expert"
)

// SkillLevels is ordered from lowest to highest proficiency.
var SkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// Score maps a level to its ordinal (1..4); unknown levels score 0.
func (l SkillLevel) Score() int {
	for i, v := range SkillLevels {
		if v == l {
			return i + 1
		}
	}
	return 0
}

func (l SkillLevel) Valid() bool { return l.Score() > 0 }

// Skill is embedded in User.
type Skill struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name" validate:"required"`
	Level SkillLevel         `bson:"level" json:"level" validate:"skilllevel"`
}

func (s *Skill) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	if s.Level == "" {
		s.Level = LevelBeginner
	}
}

// NewSkill is the payload for appending a skill.
type NewSkill struct {
	Name  string     `json:"name" binding:"required"`
	Level SkillLevel `json:"level" binding:"omitempty,skilllevel"`
}

// Skill builds the embedded record with a fresh identifier.
func (n NewSkill) Skill() Skill {
	s := Skill{ID: primitive.NewObjectID(), Name: n.Name, Level: n.Level}
	s.Normalize()
	return s
}

// SkillPatch lists the mutable skill fields.
type SkillPatch struct {
	Name  *string     `json:"name"`
	Level *SkillLevel `json:"level" binding:"omitempty,skilllevel"`
}

func (p SkillPatch) Apply(s *Skill) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Level != nil {
		s.Level = *p.Level
	}
	s.Normalize()
}
