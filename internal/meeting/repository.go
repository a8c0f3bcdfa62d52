package meeting

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

var ErrDuplicateRoom = errors.New("jitsi room id already in use")

// Query selects an admin's meetings. From and To bound scheduled_date inclusively.
type Query struct {
	AdminID  primitive.ObjectID
	Statuses []Status
	From     *time.Time
	To       *time.Time
	Skip     int64
	Limit    int64
}

func (q Query) filter() bson.M {
	filter := bson.M{"admin_id": q.AdminID}
	switch len(q.Statuses) {
	case 0:
	case 1:
		filter["status"] = q.Statuses[0]
	default:
		filter["status"] = bson.M{"$in": q.Statuses}
	}
	if q.From != nil || q.To != nil {
		bounds := bson.M{}
		if q.From != nil {
			bounds["$gte"] = *q.From
		}
		if q.To != nil {
			bounds["$lte"] = *q.To
		}
		filter["scheduled_date"] = bounds
	}
	return filter
}

type MeetingRepository struct {
	collection *mongo.Collection
}

// NewMeetingRepository creates a new repository for meetings.
func NewMeetingRepository(db *mongo.Database) *MeetingRepository {
	return &MeetingRepository{collection: db.Collection(config.CollectionMeetings)}
}

// Insert stores a new meeting. A taken room id yields ErrDuplicateRoom.
func (r *MeetingRepository) Insert(ctx context.Context, m *Meeting) error {
	_, err := r.collection.InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateRoom
	}
	return err
}

// FindOwned returns nil, nil unless a meeting with id belongs to adminID.
func (r *MeetingRepository) FindOwned(ctx context.Context, id, adminID primitive.ObjectID) (*Meeting, error) {
	var m Meeting
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "admin_id": adminID}).Decode(&m)
	return decoded(&m, err)
}

// UpdateOwned applies changes and returns the updated document, nil when not owned.
func (r *MeetingRepository) UpdateOwned(ctx context.Context, id, adminID primitive.ObjectID, changes Changes, now time.Time) (*Meeting, error) {
	var m Meeting
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "admin_id": adminID},
		bson.M{"$set": changes.document(now)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	return decoded(&m, err)
}

// DeleteOwned removes and returns an owned meeting, nil when not owned.
func (r *MeetingRepository) DeleteOwned(ctx context.Context, id, adminID primitive.ObjectID) (*Meeting, error) {
	var m Meeting
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id, "admin_id": adminID}).Decode(&m)
	return decoded(&m, err)
}

// Find returns matches sorted by scheduled_date ascending.
func (r *MeetingRepository) Find(ctx context.Context, q Query) ([]*Meeting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}})
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	cursor, err := r.collection.Find(ctx, q.filter(), opts)
	if err != nil {
		return nil, err
	}
	meetings := []*Meeting{}
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// Count returns the number of meetings matching q.
func (r *MeetingRepository) Count(ctx context.Context, q Query) (int64, error) {
	return r.collection.CountDocuments(ctx, q.filter())
}

func decoded(m *Meeting, err error) (*Meeting, error) {
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (c Changes) document(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if c.Title != nil {
		set["title"] = *c.Title
	}
	if c.Description != nil {
		set["description"] = *c.Description
	}
	if c.ScheduledDate != nil {
		set["scheduled_date"] = *c.ScheduledDate
	}
	if c.ScheduledTime != nil {
		set["scheduled_time"] = *c.ScheduledTime
	}
	if c.Duration != nil {
		set["duration"] = *c.Duration
	}
	if c.MeetingType != nil {
		set["meeting_type"] = *c.MeetingType
	}
	if c.Status != nil {
		set["status"] = *c.Status
	}
	if c.Notes != nil {
		set["notes"] = *c.Notes
	}
	if c.MeetingLink != nil {
		set["meeting_link"] = *c.MeetingLink
	}
	if c.EmailSent != nil {
		set["email_sent"] = *c.EmailSent
	}
	if c.EmailSentAt != nil {
		set["email_sent_at"] = *c.EmailSentAt
	}
	return set
}
