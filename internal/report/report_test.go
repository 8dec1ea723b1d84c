package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func date(s string) *time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleUsers() []*models.User {
	return []*models.User{
		{
			ID: primitive.NewObjectID(), Name: "Alice", Position: "Dev", Role: models.RoleUser,
			Skills: []models.Skill{
				{ID: primitive.NewObjectID(), Name: "Go", Level: models.LevelBeginner},
				{ID: primitive.NewObjectID(), Name: "SQL", Level: models.LevelExpert},
			},
			Trainings: []models.Training{
				{ID: primitive.NewObjectID(), Title: "K8s", Status: models.StatusCompleted, CompletionDate: date("2024-05-01")},
				{ID: primitive.NewObjectID(), Title: "AWS", Status: models.StatusPlanned},
			},
		},
		{ID: primitive.NewObjectID(), Name: "Bob", Role: models.RoleAdmin, Skills: []models.Skill{}, Trainings: []models.Training{}},
	}
}

func TestCompute_Empty(t *testing.T) {
	m := Compute(nil)
	assert.Equal(t, 0, m.TotalUsers)
	assert.Equal(t, 0.0, m.GlobalSkillAverage)
	assert.Equal(t, 0, m.TrainingCompletionRate)
	assert.Empty(t, m.SkillsByUser)
	assert.NotNil(t, m.SkillsByUser)
	assert.Equal(t, map[models.TrainingStatus]int{
		models.StatusPlanned: 0, models.StatusInProgress: 0, models.StatusCompleted: 0,
	}, m.StatusDistribution)
}

func TestCompute(t *testing.T) {
	users := sampleUsers()
	m := Compute(users)

	assert.Equal(t, 2, m.TotalUsers)
	require.Len(t, m.SkillsByUser, 2)
	assert.Equal(t, users[0].ID, m.SkillsByUser[0].UserID)
	assert.Equal(t, 2.5, m.SkillsByUser[0].AverageSkill)
	assert.Equal(t, 0.0, m.SkillsByUser[1].AverageSkill)
	assert.Equal(t, 1.25, m.GlobalSkillAverage)
	assert.Equal(t, 50, m.TrainingCompletionRate)
	assert.Equal(t, 1, m.StatusDistribution[models.StatusCompleted])
	assert.Equal(t, 1, m.StatusDistribution[models.StatusPlanned])
	assert.Equal(t, 0, m.StatusDistribution[models.StatusInProgress])
}

func TestSkillAverage_Rounds(t *testing.T) {
	skills := []models.Skill{
		{Level: models.LevelBeginner}, {Level: models.LevelBeginner}, {Level: models.LevelIntermediate},
	}
	assert.Equal(t, 1.33, SkillAverage(skills))
}

func TestCompute_CompletionRateRounds(t *testing.T) {
	u := &models.User{Trainings: []models.Training{
		{Status: models.StatusCompleted}, {Status: models.StatusCompleted}, {Status: models.StatusInProgress},
	}}
	assert.Equal(t, 67, Compute([]*models.User{u}).TrainingCompletionRate)
}

func TestLines(t *testing.T) {
	users := sampleUsers()
	assert.Equal(t, []string{
		"Alice",
		"Poste: Dev",
		"Rôle: Utilisateur",
		"Compétences",
		"- Go (Débutant)",
		"- SQL (Expert)",
		"Formations",
		"- K8s | Terminé | 01/05/2024",
		"- AWS | Planifié | Date à venir",
	}, Lines(users[0]))
	assert.Equal(t, []string{
		"Bob",
		"Poste: Non spécifié",
		"Rôle: Admin",
		"Compétences",
		"Aucune compétence enregistrée",
		"Formations",
		"Aucune formation enregistrée",
	}, Lines(users[1]))
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 9, 8, 5, 0, 0, time.UTC)
	assert.Equal(t, "09/03/2024 08:05", FormatTimestamp(now))
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, sampleUsers(), time.Now()))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderPDF_ManyUsersPaginates(t *testing.T) {
	var users []*models.User
	for i := 0; i < 60; i++ {
		users = append(users, sampleUsers()[0])
	}
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, users, time.Now()))
	pages := bytes.Count(buf.Bytes(), []byte("/Type /Page")) - bytes.Count(buf.Bytes(), []byte("/Type /Pages"))
	assert.Greater(t, pages, 1)
}

func TestRenderPDF_NoUsers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, nil, time.Now()))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
