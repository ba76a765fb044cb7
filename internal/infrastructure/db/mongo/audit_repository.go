package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartcondominium/portal/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository appends authentication events to auth_events.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Kind      string             `bson:"kind"`
	Subject   string             `bson:"subject"`
	UserCode  string             `bson:"user_code,omitempty"`
	RoleKind  string             `bson:"role_kind,omitempty"`
	SessionID string             `bson:"session_id,omitempty"`
	Reason    string             `bson:"reason,omitempty"`
	IP        string             `bson:"ip,omitempty"`
	UserAgent string             `bson:"user_agent,omitempty"`
	At        int64              `bson:"at"`
}

// EnsureIndexes creates the subject/time index used by audit queries.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subject", Value: 1}, {Key: "at", Value: -1}},
		Options: options.Index().SetName("subject_at"),
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	_, err := r.coll.InsertOne(ctx, toMongoAudit(event))
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// FindBySubject returns the latest events of subject, newest first.
func (r *AuditRepository) FindBySubject(ctx context.Context, subject string, limit int64) ([]domain.AuditEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{"subject": subject}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAuditEvent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit events: %w", err)
	}
	out := make([]domain.AuditEvent, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromMongoAudit(d))
	}
	return out, nil
}

func toMongoAudit(e *domain.AuditEvent) mongoAuditEvent {
	return mongoAuditEvent{
		Kind:      string(e.Kind),
		Subject:   e.Subject,
		UserCode:  e.UserCode,
		RoleKind:  string(e.RoleKind),
		SessionID: e.SessionID,
		Reason:    e.Reason,
		IP:        e.IP,
		UserAgent: e.UserAgent,
		At:        e.At.UnixMilli(),
	}
}

func fromMongoAudit(d mongoAuditEvent) domain.AuditEvent {
	return domain.AuditEvent{
		Kind:      domain.AuditKind(d.Kind),
		Subject:   d.Subject,
		UserCode:  d.UserCode,
		RoleKind:  domain.RoleKind(d.RoleKind),
		SessionID: d.SessionID,
		Reason:    d.Reason,
		IP:        d.IP,
		UserAgent: d.UserAgent,
		At:        unixMilliToTime(d.At),
	}
}

func unixMilliToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
