package notification

import (
	"context"
	"errors"
	"time"

	"SDRAdmin/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository creates a new repository for notifications.
func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{collection: db.Collection(config.CollectionNotifications)}
}

// Insert stores a new notification.
func (r *NotificationRepository) Insert(ctx context.Context, n *Notification) error {
	_, err := r.collection.InsertOne(ctx, n)
	return err
}

// ListByAdmin returns the newest notifications of an admin first.
func (r *NotificationRepository) ListByAdmin(ctx context.Context, adminID primitive.ObjectID, limit int64) ([]*Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"admin_id": adminID}, opts)
	if err != nil {
		return nil, err
	}
	notifications := []*Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead returns nil, nil when no notification matches id and owner.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, adminID primitive.ObjectID) (*Notification, error) {
	var n Notification
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "admin_id": adminID},
		bson.M{"$set": bson.M{"read": true, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// MarkAllRead sets read on every unread notification of adminID.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, adminID primitive.ObjectID) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"admin_id": adminID, "read": false},
		bson.M{"$set": bson.M{"read": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes and returns an owned notification, nil when not owned.
func (r *NotificationRepository) Delete(ctx context.Context, id, adminID primitive.ObjectID) (*Notification, error) {
	var n Notification
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id, "admin_id": adminID}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// DeleteExpired removes notifications whose expires_at has passed.
func (r *NotificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$ne": nil, "$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
