package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffhub/workforce-system/internal/core/domain"
)

const auditCollection = "audit_records"

// MongoAuditRepository is the durable append path for the audit trail. It
// only inserts and reads; audit records are never updated or removed here.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ActorID       string             `bson:"actor_id"`
	Action        string             `bson:"action"`
	ResourceType  string             `bson:"resource_type"`
	ResourceID    string             `bson:"resource_id,omitempty"`
	Before        bson.M             `bson:"before,omitempty"`
	After         bson.M             `bson:"after,omitempty"`
	ChangedFields []string           `bson:"changed_fields,omitempty"`
	ClientAddress string             `bson:"client_address,omitempty"`
	ClientAgent   string             `bson:"client_agent,omitempty"`
	Timestamp     int64              `bson:"timestamp"`
	Details       string             `bson:"details,omitempty"`
}

func (r *MongoAuditRepository) Append(ctx context.Context, record *domain.AuditRecord) error {
	doc := mongoAuditRecord{
		ActorID:       record.ActorID,
		Action:        string(record.Action),
		ResourceType:  record.ResourceType,
		ResourceID:    record.ResourceID,
		ClientAddress: record.ClientAddress,
		ClientAgent:   record.ClientAgent,
		Timestamp:     record.Timestamp.UnixNano(),
		Details:       record.Details,
	}
	if record.Changes != nil {
		doc.Before = bson.M(record.Changes.Before)
		doc.After = bson.M(record.Changes.After)
		doc.ChangedFields = record.Changes.ChangedFields
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) Recent(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer cur.Close(ctx)

	records := make([]domain.AuditRecord, 0, limit)
	for cur.Next(ctx) {
		var doc mongoAuditRecord
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit record: %w", err)
		}
		records = append(records, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return records, nil
}

func (doc mongoAuditRecord) toDomain() domain.AuditRecord {
	record := domain.AuditRecord{
		ID:            doc.ID.Hex(),
		ActorID:       doc.ActorID,
		Action:        domain.AuditAction(doc.Action),
		ResourceType:  doc.ResourceType,
		ResourceID:    doc.ResourceID,
		ClientAddress: doc.ClientAddress,
		ClientAgent:   doc.ClientAgent,
		Timestamp:     nanosToTime(doc.Timestamp),
		Details:       doc.Details,
	}
	if doc.Before != nil || doc.After != nil || len(doc.ChangedFields) > 0 {
		record.Changes = &domain.AuditChanges{
			Before:        map[string]any(doc.Before),
			After:         map[string]any(doc.After),
			ChangedFields: doc.ChangedFields,
		}
	}
	return record
}

func nanosToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(0, ts).UTC()
}
