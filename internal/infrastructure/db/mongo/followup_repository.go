package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// FollowUpRepository implements ports.FollowUpRepository.
type FollowUpRepository struct {
	*collection[domain.FollowUp]
}

func NewFollowUpRepository(db *mongo.Database) *FollowUpRepository {
	c := newCollection[domain.FollowUp](db, collectionFollowUps, "follow-up", "name", "description", "assigned_to.name")
	c.sort = bson.D{{Key: "due_date", Value: 1}}
	return &FollowUpRepository{c}
}

func (r *FollowUpRepository) List(ctx context.Context, f domain.FollowUpFilter) ([]domain.FollowUp, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.AssignedTo != "" {
		filter["assigned_to.id"] = f.AssignedTo
	}
	if f.Overdue {
		now := f.Now
		if now.IsZero() {
			now = time.Now().UTC()
		}
		filter["status"] = domain.FollowUpPending
		filter["due_date"] = bson.M{"$lt": now}
	}
	return r.find(ctx, filter, f.ListQuery)
}

func (r *FollowUpRepository) DueForReminder(ctx context.Context, cutoff time.Time, limit int) ([]domain.FollowUp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status":           domain.FollowUpPending,
		"due_date":         bson.M{"$lt": cutoff},
		"reminder_sent_at": nil, // missing or null
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "due_date", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find due follow-ups: %w", err)
	}
	var due []domain.FollowUp
	if err := cur.All(ctx, &due); err != nil {
		return nil, fmt.Errorf("decode follow-ups: %w", err)
	}
	return due, nil
}

func (r *FollowUpRepository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"reminder_sent_at": at}},
	)
	if err != nil {
		return fmt.Errorf("mark follow-up reminded: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("follow-up")
	}
	return nil
}
