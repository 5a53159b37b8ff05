package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"holidaze/internal/domain/calendar"
	"holidaze/internal/domain/sessions"
	"holidaze/internal/domain/venues"
)

const sessionsCollection = "calendar_sessions"

// SessionRepository persists selection sessions with an optimistic version
// and a TTL index on updated_at.
type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(ctx context.Context, db *mongo.Database, ttl time.Duration) (*SessionRepository, error) {
	col := db.Collection(sessionsCollection)
	if ttl > 0 {
		idx := mongo.IndexModel{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
		}
		if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
			return nil, err
		}
	}
	return &SessionRepository{col: col}, nil
}

func (r *SessionRepository) ByID(ctx context.Context, id sessions.SessionID) (*sessions.Session, error) {
	var doc sessionDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sessions.ErrSessionNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *SessionRepository) Save(ctx context.Context, s *sessions.Session) error {
	doc := newSessionDocument(s)
	filter := bson.M{"_id": doc.ID, "version": s.Version}
	doc.Version = s.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		// The upsert collides on _id when another writer bumped the version.
		if mongo.IsDuplicateKeyError(err) {
			return sessions.ErrConcurrentClick
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return sessions.ErrConcurrentClick
	}
	s.Version = doc.Version
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id sessions.SessionID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return sessions.ErrSessionNotFound
	}
	return nil
}

type sessionDocument struct {
	ID        string    `bson:"_id"`
	VenueID   string    `bson:"venue_id"`
	CheckIn   string    `bson:"check_in,omitempty"`
	CheckOut  string    `bson:"check_out,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
	Version   int64     `bson:"version"`
}

func newSessionDocument(s *sessions.Session) sessionDocument {
	doc := sessionDocument{
		ID:        string(s.ID),
		VenueID:   string(s.VenueID),
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
		Version:   s.Version,
	}
	if s.Selection.CheckIn != nil {
		doc.CheckIn = s.Selection.CheckIn.String()
	}
	if s.Selection.CheckOut != nil {
		doc.CheckOut = s.Selection.CheckOut.String()
	}
	return doc
}

func (d sessionDocument) toAggregate() (*sessions.Session, error) {
	checkIn, err := calendar.ParseDatePtr(d.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := calendar.ParseDatePtr(d.CheckOut)
	if err != nil {
		return nil, err
	}
	return &sessions.Session{
		ID:        sessions.SessionID(d.ID),
		VenueID:   venues.VenueID(d.VenueID),
		Selection: calendar.Selection{CheckIn: checkIn, CheckOut: checkOut},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Version:   d.Version,
	}, nil
}

var _ sessions.Repository = (*SessionRepository)(nil)
