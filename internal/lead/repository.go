package lead

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

// ErrLeadNotFound is returned by writes that matched no lead.
var ErrLeadNotFound = errors.New("lead not found")

// LeadRepository is the Mongo backed lead status register.
type LeadRepository struct {
	collection *mongo.Collection
}

// NewLeadRepository creates a new repository for leads.
func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{collection: db.Collection(config.CollectionLeads)}
}

// Create inserts a new lead.
func (r *LeadRepository) Create(ctx context.Context, l *Lead) error {
	_, err := r.collection.InsertOne(ctx, l)
	return err
}

// Get returns nil, nil when the lead does not exist.
func (r *LeadRepository) Get(ctx context.Context, id primitive.ObjectID) (*Lead, error) {
	var l Lead
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// List fetches up to limit leads, newest first.
func (r *LeadRepository) List(ctx context.Context, limit int64) ([]*Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	leads := []*Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// SetMeetingState writes the meeting fields of a lead.
func (r *LeadRepository) SetMeetingState(ctx context.Context, id primitive.ObjectID, state MeetingState) error {
	return r.update(ctx, id, bson.M{
		"status":        state.Status,
		"ready_to_meet": state.ReadyToMeet,
		"meeting_date":  state.MeetingDate,
	})
}

// SetStatus moves a lead to status.
func (r *LeadRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status Status) error {
	return r.update(ctx, id, bson.M{"status": status})
}

func (r *LeadRepository) update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrLeadNotFound
	}
	return nil
}
