package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
)

const collectionMessages = "messages"

// MessageRepository persists messages. It holds the rooms collection handle as
// well: posting a message and adding its author to the room's participant set
// is one repository call, so a message never exists without its author being a
// participant. On a standalone Mongo deployment the two writes run as ordered
// operations; a replica set can wrap them in a transaction without changing
// this interface.
type MessageRepository struct {
	col   *mongo.Collection
	rooms *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		col:   db.Collection(collectionMessages),
		rooms: db.Collection(collectionRooms),
	}
}

type mongoMessage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	RoomID     string             `bson:"room_id"`
	RoomName   string             `bson:"room_name"`
	TopicName  string             `bson:"topic_name"`
	AuthorID   string             `bson:"author_id"`
	AuthorName string             `bson:"author_name"`
	Body       string             `bson:"body"`
	CreatedAt  int64              `bson:"created_at"`
}

func (mm *mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:         mm.ID.Hex(),
		RoomID:     mm.RoomID,
		RoomName:   mm.RoomName,
		TopicName:  mm.TopicName,
		AuthorID:   mm.AuthorID,
		AuthorName: mm.AuthorName,
		Body:       mm.Body,
		CreatedAt:  unixToTime(mm.CreatedAt),
	}
}

func (r *MessageRepository) Post(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	roomOID, err := primitive.ObjectIDFromHex(msg.RoomID)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	doc := mongoMessage{
		RoomID:     msg.RoomID,
		RoomName:   msg.RoomName,
		TopicName:  msg.TopicName,
		AuthorID:   msg.AuthorID,
		AuthorName: msg.AuthorName,
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt.Unix(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	// $addToSet keeps participant membership idempotent.
	upd, err := r.rooms.UpdateByID(ctx, roomOID,
		bson.M{"$addToSet": bson.M{"participant_ids": msg.AuthorID}})
	if err != nil {
		return nil, fmt.Errorf("add participant: %w", err)
	}
	if upd.MatchedCount == 0 {
		// The room vanished between the service check and this write; do not
		// leave an orphan behind.
		_, _ = r.col.DeleteOne(ctx, bson.M{"_id": res.InsertedID})
		return nil, domain.ErrRoomNotFound
	}

	created := *msg
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	var mm mongoMessage
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return mm.toDomain(), nil
}

// ListByRoom returns a room's messages oldest first.
func (r *MessageRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Message, error) {
	return r.list(ctx, bson.M{"room_id": roomID}, 1)
}

func (r *MessageRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Message, error) {
	return r.list(ctx, bson.M{"author_id": authorID}, -1)
}

func (r *MessageRepository) ListAll(ctx context.Context) ([]*domain.Message, error) {
	return r.list(ctx, bson.M{}, -1)
}

// SearchByTopic filters the activity feed on the denormalized topic name only.
func (r *MessageRepository) SearchByTopic(ctx context.Context, query string) ([]*domain.Message, error) {
	filter := bson.M{}
	if query != "" {
		filter = bson.M{"topic_name": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
	}
	return r.list(ctx, filter, -1)
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMessageNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the messages collection.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "topic_name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MessageRepository) list(ctx context.Context, filter bson.M, order int) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: order}, {Key: "_id", Value: order}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var msgs []*domain.Message
	for cur.Next(ctx) {
		var mm mongoMessage
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		msgs = append(msgs, mm.toDomain())
	}
	return msgs, cur.Err()
}
