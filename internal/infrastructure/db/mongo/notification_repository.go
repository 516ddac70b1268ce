package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// NotificationRepository implements ports.NotificationRepository. Every
// query is scoped to the recipient.
type NotificationRepository struct {
	c *collection[domain.Notification]
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		c: newCollection[domain.Notification](db, collectionNotifications, "notification", "title", "message"),
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.c.Create(ctx, n)
}

func (r *NotificationRepository) List(ctx context.Context, f domain.NotificationFilter) ([]domain.Notification, int64, error) {
	filter := bson.M{"user_id": f.UserID}
	if f.UnreadOnly {
		filter["read"] = false
	}
	return r.c.find(ctx, filter, f.ListQuery)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.c.col.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.c.col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true, "read_at": at, "updated_at": at}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("notification")
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.c.col.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": at, "updated_at": at}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, userID, id string) error {
	return r.c.deleteOne(ctx, bson.M{"_id": id, "user_id": userID})
}
