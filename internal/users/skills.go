package users

import (
	"context"

	"github.com/MohamedX1935/SkillBoard/internal/apperr"
	"github.com/MohamedX1935/SkillBoard/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserSkills is the skill view of a user. Position is only filled by the
// organisation-wide listing.
type UserSkills struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Position string             `json:"position,omitempty"`
	Skills   []models.Skill     `json:"skills"`
}

// SkillsOf returns one user's skills.
func (s *Service) SkillsOf(ctx context.Context, userID string) (*UserSkills, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserSkills{ID: u.ID, Name: u.Name, Skills: u.Skills}, nil
}

// AllSkills returns the skills of every user.
func (s *Service) AllSkills(ctx context.Context) ([]UserSkills, error) {
	list, err := s.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	out := make([]UserSkills, 0, len(list))
	for _, u := range list {
		out = append(out, UserSkills{ID: u.ID, Name: u.Name, Position: u.Position, Skills: u.Skills})
	}
	return out, nil
}

// AddSkill appends a skill and returns it with its generated identifier.
func (s *Service) AddSkill(ctx context.Context, userID string, in models.NewSkill) (*models.Skill, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	sk := in.Skill()
	u.Skills = append(u.Skills, sk)
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return &sk, nil
}

func (s *Service) locateSkill(ctx context.Context, userID, skillID string) (*models.User, int, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, -1, err
	}
	sid, err := parseID(skillID, msgSkillNotFound)
	if err != nil {
		return nil, -1, err
	}
	i, sk := u.Skill(sid)
	if sk == nil {
		return nil, -1, apperr.NotFound(msgSkillNotFound)
	}
	return u, i, nil
}

// UpdateSkill merges p onto the located skill.
func (s *Service) UpdateSkill(ctx context.Context, userID, skillID string, p models.SkillPatch) (*models.Skill, error) {
	u, i, err := s.locateSkill(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}
	p.Apply(&u.Skills[i])
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	sk := u.Skills[i]
	return &sk, nil
}

// DeleteSkill removes the located skill.
func (s *Service) DeleteSkill(ctx context.Context, userID, skillID string) error {
	u, i, err := s.locateSkill(ctx, userID, skillID)
	if err != nil {
		return err
	}
	u.Skills = append(u.Skills[:i], u.Skills[i+1:]...)
	return s.save(ctx, u)
}
