package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainingStatus string

const (
	StatusPlanned    TrainingStatus = "Planifié"
	StatusInProgress TrainingStatus = "En cours"
	StatusCompleted  TrainingStatus = "Terminé"
)

// TrainingStatuses is the fixed set used by filters and the dashboard.
// Any status may be replaced by any other; no workflow order is enforced.
var TrainingStatuses = []TrainingStatus{StatusPlanned, StatusInProgress, StatusCompleted}

func (s TrainingStatus) Valid() bool {
	for _, v := range TrainingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Training is embedded in User.
type Training struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	Title          string             `bson:"title" json:"title" validate:"required"`
	Provider       string             `bson:"provider,omitempty" json:"provider,omitempty"`
	Status         TrainingStatus     `bson:"status" json:"status" validate:"trainingstatus"`
	CompletionDate *time.Time         `bson:"completionDate,omitempty" json:"completionDate,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (t *Training) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Provider = strings.TrimSpace(t.Provider)
	t.Notes = strings.TrimSpace(t.Notes)
	if t.Status == "" {
		t.Status = StatusPlanned
	}
}

// ParseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date (as sent
// by HTML date inputs). An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if d, err := time.Parse(layout, s); err == nil {
			d = d.UTC()
			return &d, nil
		}
	}
	return nil, errors.New("completionDate: date invalide")
}

// NewTraining is the payload for appending a training.
type NewTraining struct {
	Title          string         `json:"title" binding:"required"`
	Provider       string         `json:"provider"`
	Status         TrainingStatus `json:"status" binding:"omitempty,trainingstatus"`
	CompletionDate string         `json:"completionDate"`
	Notes          string         `json:"notes"`
}

// Training builds the embedded record with a fresh identifier.
func (n NewTraining) Training() (Training, error) {
	date, err := ParseDate(n.CompletionDate)
	if err != nil {
		return Training{}, err
	}
	t := Training{
		ID:             primitive.NewObjectID(),
		Title:          n.Title,
		Provider:       n.Provider,
		Status:         n.Status,
		CompletionDate: date,
		Notes:          n.Notes,
	}
	t.Normalize()
	return t, nil
}

// TrainingPatch lists the mutable training fields. An empty completionDate
// clears the date.
type TrainingPatch struct {
	Title          *string         `json:"title"`
	Provider       *string         `json:"provider"`
	Status         *TrainingStatus `json:"status" binding:"omitempty,trainingstatus"`
	CompletionDate *string         `json:"completionDate"`
	Notes          *string         `json:"notes"`
}

func (p TrainingPatch) Apply(t *Training) error {
	if p.CompletionDate != nil {
		date, err := ParseDate(*p.CompletionDate)
		if err != nil {
			return err
		}
		t.CompletionDate = date
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Provider != nil {
		t.Provider = *p.Provider
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	t.Normalize()
	return nil
}

// TrainingEntry is a training annotated with its owner, used by the
// organisation-wide listing.
type TrainingEntry struct {
	Training `bson:",inline"`
	User     string             `json:"user"`
	UserID   primitive.ObjectID `json:"userId"`
}
