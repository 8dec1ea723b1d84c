package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserNormalize_Defaults(t *testing.T) {
	u := &User{Name: "  Alice ", Email: " Alice@Example.COM ", PasswordHash: "x"}
	u.Normalize()

	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.NotNil(t, u.Skills)
	assert.NotNil(t, u.Trainings)
	require.NoError(t, u.Validate())
}

func TestUserValidate_RejectsUnknownEnums(t *testing.T) {
	u := &User{Name: "Bob", Email: "bob@x.com", PasswordHash: "x", Role: "Root"}
	require.Error(t, u.Validate())

	u.Role = RoleAdmin
	u.Skills = []Skill{{ID: primitive.NewObjectID(), Name: "Go", Level: "Guru"}}
	require.Error(t, u.Validate())

	u.Skills[0].Level = LevelExpert
	u.Trainings = []Training{{ID: primitive.NewObjectID(), Title: "K8s", Status: "Annulé"}}
	require.Error(t, u.Validate())

	u.Trainings[0].Status = StatusCompleted
	require.NoError(t, u.Validate())
}

func TestUserValidate_RequiredFields(t *testing.T) {
	u := &User{Role: RoleUser}
	err := u.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "email")
}

func TestSkillLevelScore(t *testing.T) {
	assert.Equal(t, 1, LevelBeginner.Score())
	assert.Equal(t, 2, LevelIntermediate.Score())
	assert.Equal(t, 3, LevelAdvanced.Score())
	assert.Equal(t, 4, LevelExpert.Score())
	assert.Equal(t, 0, SkillLevel("Guru").Score())
}

func TestNewSkill_DefaultLevelAndID(t *testing.T) {
	s := NewSkill{Name: " SQL "}.Skill()
	assert.Equal(t, "SQL", s.Name)
	assert.Equal(t, LevelBeginner, s.Level)
	assert.False(t, s.ID.IsZero())
}

func TestSkillPatch_Apply(t *testing.T) {
	s := Skill{ID: primitive.NewObjectID(), Name: "SQL", Level: LevelBeginner}
	lvl := LevelExpert
	SkillPatch{Level: &lvl}.Apply(&s)
	assert.Equal(t, "SQL", s.Name)
	assert.Equal(t, LevelExpert, s.Level)
}

func TestNewTraining_ParsesDate(t *testing.T) {
	tr, err := NewTraining{Title: "Docker", CompletionDate: "2024-03-15"}.Training()
	require.NoError(t, err)
	assert.Equal(t, StatusPlanned, tr.Status)
	require.NotNil(t, tr.CompletionDate)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *tr.CompletionDate)

	_, err = NewTraining{Title: "Docker", CompletionDate: "15/03/2024"}.Training()
	require.Error(t, err)

	_, err = NewTraining{Title: "Docker", CompletionDate: "2024-13-45"}.Training()
	require.EqualError(t, err, "completionDate: date invalide")
}

func TestTrainingPatch_ClearsDate(t *testing.T) {
	d := time.Now().UTC()
	tr := Training{Title: "Docker", Status: StatusCompleted, CompletionDate: &d}
	empty := ""
	status := StatusPlanned
	require.NoError(t, TrainingPatch{CompletionDate: &empty, Status: &status}.Apply(&tr))
	assert.Nil(t, tr.CompletionDate)
	assert.Equal(t, StatusPlanned, tr.Status)
}

func TestUserLookupAndClone(t *testing.T) {
	sid := primitive.NewObjectID()
	d := time.Now().UTC()
	u := &User{
		Skills:    []Skill{{ID: sid, Name: "Go", Level: LevelExpert}},
		Trainings: []Training{{ID: primitive.NewObjectID(), Title: "K8s", CompletionDate: &d}},
	}
	i, s := u.Skill(sid)
	require.NotNil(t, s)
	assert.Equal(t, 0, i)
	_, missing := u.Skill(primitive.NewObjectID())
	assert.Nil(t, missing)

	c := u.Clone()
	c.Skills[0].Name = "Rust"
	*c.Trainings[0].CompletionDate = d.Add(time.Hour)
	assert.Equal(t, "Go", u.Skills[0].Name)
	assert.Equal(t, d, *u.Trainings[0].CompletionDate)
}

func TestIdentityHasRole(t *testing.T) {
	id := Identity{Role: RoleUser}
	assert.False(t, id.HasRole(RoleAdmin))
	assert.True(t, id.HasRole(RoleAdmin, RoleUser))
}
