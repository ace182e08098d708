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

const collectionRooms = "rooms"

// RoomRepository persists rooms. It also owns the messages collection handle
// so that the delete cascade and the denormalized-name propagation happen in
// the same repository call as the room write.
type RoomRepository struct {
	col      *mongo.Collection
	messages *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{
		col:      db.Collection(collectionRooms),
		messages: db.Collection(collectionMessages),
	}
}

type mongoRoom struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	HostID         string             `bson:"host_id"`
	HostName       string             `bson:"host_name"`
	TopicID        string             `bson:"topic_id"`
	TopicName      string             `bson:"topic_name"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	ParticipantIDs []string           `bson:"participant_ids"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func (mr *mongoRoom) toDomain() *domain.Room {
	return &domain.Room{
		ID:             mr.ID.Hex(),
		HostID:         mr.HostID,
		HostName:       mr.HostName,
		TopicID:        mr.TopicID,
		TopicName:      mr.TopicName,
		Name:           mr.Name,
		Description:    mr.Description,
		ParticipantIDs: mr.ParticipantIDs,
		CreatedAt:      unixToTime(mr.CreatedAt),
		UpdatedAt:      unixToTime(mr.UpdatedAt),
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRoom{
		HostID:         room.HostID,
		HostName:       room.HostName,
		TopicID:        room.TopicID,
		TopicName:      room.TopicName,
		Name:           room.Name,
		Description:    room.Description,
		ParticipantIDs: []string{},
		CreatedAt:      room.CreatedAt.Unix(),
		UpdatedAt:      room.UpdatedAt.Unix(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}

	created := *room
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.ParticipantIDs = []string{}
	return &created, nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	var mr mongoRoom
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return mr.toDomain(), nil
}

// Search matches query case-insensitively against topic name, room name, and
// description. An empty query matches every room.
func (r *RoomRepository) Search(ctx context.Context, query string) ([]*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter = bson.M{"$or": []bson.M{
			{"topic_name": re},
			{"name": re},
			{"description": re},
		}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search rooms: %w", err)
	}
	defer cur.Close(ctx)

	return decodeRooms(ctx, cur)
}

func (r *RoomRepository) FindByHost(ctx context.Context, hostID string) ([]*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"host_id": hostID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find rooms by host: %w", err)
	}
	defer cur.Close(ctx)

	return decodeRooms(ctx, cur)
}

// Update overwrites the room's mutable fields and propagates the denormalized
// room and topic names to the room's messages so the activity feed keeps
// filtering correctly.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(room.ID)
	if err != nil {
		return domain.ErrRoomNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        room.Name,
		"topic_id":    room.TopicID,
		"topic_name":  room.TopicName,
		"description": room.Description,
		"updated_at":  room.UpdatedAt.Unix(),
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}

	_, err = r.messages.UpdateMany(ctx,
		bson.M{"room_id": room.ID},
		bson.M{"$set": bson.M{"room_name": room.Name, "topic_name": room.TopicName}},
	)
	if err != nil {
		return fmt.Errorf("propagate room names: %w", err)
	}
	return nil
}

// Delete removes the room and cascades to its messages.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoomNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoomNotFound
	}

	if _, err := r.messages.DeleteMany(ctx, bson.M{"room_id": id}); err != nil {
		return fmt.Errorf("cascade room messages: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the rooms collection.
func (r *RoomRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "host_id", Value: 1}}},
		{Keys: bson.D{{Key: "topic_name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeRooms(ctx context.Context, cur *mongo.Cursor) ([]*domain.Room, error) {
	var rooms []*domain.Room
	for cur.Next(ctx) {
		var mr mongoRoom
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, mr.toDomain())
	}
	return rooms, cur.Err()
}
