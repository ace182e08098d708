package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
)

const collectionTopics = "topics"

type TopicRepository struct {
	col *mongo.Collection
}

func NewTopicRepository(db *mongo.Database) *TopicRepository {
	return &TopicRepository{col: db.Collection(collectionTopics)}
}

type mongoTopic struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"created_at"`
}

func (mt *mongoTopic) toDomain() *domain.Topic {
	return &domain.Topic{
		ID:        mt.ID.Hex(),
		Name:      mt.Name,
		CreatedAt: unixToTime(mt.CreatedAt),
	}
}

// GetOrCreate upserts the topic by name in one round trip, so a room can
// never reference a topic that does not exist.
func (r *TopicRepository) GetOrCreate(ctx context.Context, name string) (*domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{
		"name":       name,
		"created_at": time.Now().UTC().Unix(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mt mongoTopic
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&mt); err != nil {
		return nil, fmt.Errorf("get or create topic: %w", err)
	}
	return mt.toDomain(), nil
}

// List returns topics in insertion order. limit <= 0 returns all.
func (r *TopicRepository) List(ctx context.Context, limit int) ([]*domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer cur.Close(ctx)

	var topics []*domain.Topic
	for cur.Next(ctx) {
		var mt mongoTopic
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode topic: %w", err)
		}
		topics = append(topics, mt.toDomain())
	}
	return topics, cur.Err()
}

// EnsureIndexes creates the unique topic name index backing GetOrCreate.
func (r *TopicRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
