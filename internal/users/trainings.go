package users

import (
	"context"

	"github.com/MohamedX1935/SkillBoard/internal/apperr"
	"github.com/MohamedX1935/SkillBoard/internal/models"
)

// UserTrainings is the training view of a single user.
type UserTrainings struct {
	User      string            `json:"user"`
	Trainings []models.Training `json:"trainings"`
}

func filterStatus(list []models.Training, status models.TrainingStatus) []models.Training {
	if status == "" {
		return list
	}
	out := []models.Training{}
	for _, t := range list {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// TrainingsOf returns one user's trainings, optionally filtered by status.
func (s *Service) TrainingsOf(ctx context.Context, userID string, status models.TrainingStatus) (*UserTrainings, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserTrainings{User: u.Name, Trainings: filterStatus(u.Trainings, status)}, nil
}

// AllTrainings flattens every user's trainings, annotated with the owner,
// optionally filtered by status.
func (s *Service) AllTrainings(ctx context.Context, status models.TrainingStatus) ([]models.TrainingEntry, error) {
	list, err := s.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	out := []models.TrainingEntry{}
	for _, u := range list {
		for _, t := range filterStatus(u.Trainings, status) {
			out = append(out, models.TrainingEntry{Training: t, User: u.Name, UserID: u.ID})
		}
	}
	return out, nil
}

// AddTraining appends a training and returns it with its generated identifier.
func (s *Service) AddTraining(ctx context.Context, userID string, in models.NewTraining) (*models.Training, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	t, err := in.Training()
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	u.Trainings = append(u.Trainings, t)
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) locateTraining(ctx context.Context, userID, trainingID string) (*models.User, int, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, -1, err
	}
	tid, err := parseID(trainingID, msgTrainingNotFound)
	if err != nil {
		return nil, -1, err
	}
	i, t := u.Training(tid)
	if t == nil {
		return nil, -1, apperr.NotFound(msgTrainingNotFound)
	}
	return u, i, nil
}

// UpdateTraining merges p onto the located training. Status may move to
// any value of the enumeration.
func (s *Service) UpdateTraining(ctx context.Context, userID, trainingID string, p models.TrainingPatch) (*models.Training, error) {
	u, i, err := s.locateTraining(ctx, userID, trainingID)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(&u.Trainings[i]); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	t := u.Trainings[i]
	return &t, nil
}

// DeleteTraining removes the located training.
func (s *Service) DeleteTraining(ctx context.Context, userID, trainingID string) error {
	u, i, err := s.locateTraining(ctx, userID, trainingID)
	if err != nil {
		return err
	}
	u.Trainings = append(u.Trainings[:i], u.Trainings[i+1:]...)
	return s.save(ctx, u)
}
