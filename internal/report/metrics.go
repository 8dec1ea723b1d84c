// Package report computes the dashboard aggregates and renders the PDF export.
package report

import (
	"math"

	"github.com/MohamedX1935/SkillBoard/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserSkillAverage is one row of the skills-by-user breakdown.
type UserSkillAverage struct {
	UserID       primitive.ObjectID `json:"userId"`
	Name         string             `json:"name"`
	AverageSkill float64            `json:"averageSkill"`
}

// Metrics is the dashboard summary.
type Metrics struct {
	TotalUsers             int                           `json:"totalUsers"`
	GlobalSkillAverage     float64                       `json:"globalSkillAverage"`
	SkillsByUser           []UserSkillAverage            `json:"skillsByUser"`
	TrainingCompletionRate int                           `json:"trainingCompletionRate"`
	StatusDistribution     map[models.TrainingStatus]int `json:"statusDistribution"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SkillAverage is the mean level score of skills, 0 when there are none.
func SkillAverage(skills []models.Skill) float64 {
	if len(skills) == 0 {
		return 0
	}
	total := 0
	for _, s := range skills {
		total += s.Level.Score()
	}
	return round2(float64(total) / float64(len(skills)))
}

// Compute aggregates users into dashboard metrics.
func Compute(users []*models.User) Metrics {
	m := Metrics{
		TotalUsers:         len(users),
		SkillsByUser:       make([]UserSkillAverage, 0, len(users)),
		StatusDistribution: make(map[models.TrainingStatus]int, len(models.TrainingStatuses)),
	}
	for _, st := range models.TrainingStatuses {
		m.StatusDistribution[st] = 0
	}

	var sum float64
	trainings, completed := 0, 0
	for _, u := range users {
		avg := SkillAverage(u.Skills)
		sum += avg
		m.SkillsByUser = append(m.SkillsByUser, UserSkillAverage{UserID: u.ID, Name: u.Name, AverageSkill: avg})

		for _, t := range u.Trainings {
			trainings++
			m.StatusDistribution[t.Status]++
			if t.Status == models.StatusCompleted {
				completed++
			}
		}
	}
	if len(users) > 0 {
		m.GlobalSkillAverage = round2(sum / float64(len(users)))
	}
	if trainings > 0 {
		m.TrainingCompletionRate = int(math.Round(float64(completed) / float64(trainings) * 100))
	}
	return m
}
