package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ArchivedReport is the Mongo record of a report uploaded to the bucket.
type ArchivedReport struct {
	Key         string    `bson:"key" json:"key"`
	GeneratedAt time.Time `bson:"generatedAt" json:"generatedAt"`
	Users       int       `bson:"users" json:"users"`
	Size        int64     `bson:"size" json:"size"`
}

// ArchiveLog persists archived report metadata. A nil collection makes every
// call a no-op.
type ArchiveLog struct {
	col *mongo.Collection
}

func NewArchiveLog(col *mongo.Collection) *ArchiveLog {
	return &ArchiveLog{col: col}
}

// Save upserts the record by key.
func (a *ArchiveLog) Save(ctx context.Context, rec *ArchivedReport) error {
	if a == nil || a.col == nil {
		return nil
	}
	opts := options.Update().SetUpsert(true)
	if _, err := a.col.UpdateOne(ctx, bson.M{"key": rec.Key}, bson.M{"$set": rec}, opts); err != nil {
		return fmt.Errorf("save archived report: %w", err)
	}
	return nil
}

// Load returns the record for key, or nil when it does not exist.
func (a *ArchiveLog) Load(ctx context.Context, key string) (*ArchivedReport, error) {
	if a == nil || a.col == nil {
		return nil, nil
	}
	var rec ArchivedReport
	if err := a.col.FindOne(ctx, bson.M{"key": key}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Recent lists the newest records first.
func (a *ArchiveLog) Recent(ctx context.Context, limit int64) ([]ArchivedReport, error) {
	if a == nil || a.col == nil {
		return nil, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "generatedAt", Value: -1}}).SetLimit(limit)
	cur, err := a.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list archived reports: %w", err)
	}
	var out []ArchivedReport
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
