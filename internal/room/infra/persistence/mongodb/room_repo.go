package mongodb

import (
	"context"
	"errors"

	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/room/infra/persistence/model"
	"IslandConquest/modules/kit/errx"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultRoomCollectionName = "room_archive"

const OpSave = "repo.room.Save"

type RoomRepository struct {
	coll *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	if db == nil {
		return &RoomRepository{}
	}
	return &RoomRepository{coll: db.Collection(defaultRoomCollectionName)}
}

func (r *RoomRepository) Save(ctx context.Context, s *entity.RoomPersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errx.ErrUnavailable.WithCause(errors.New("mongodb room collection is nil")).WithData("op", OpSave)
	}

	doc := model.SnapshotToDoc(s)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.RoomID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errx.ErrInternal.WithCause(err).WithDataMap(map[string]any{"op": OpSave, "room_id": doc.RoomID})
	}
	return nil
}

// Load 只给运维排查用。
func (r *RoomRepository) Load(ctx context.Context, roomID string) (*model.RoomDoc, error) {
	if r == nil || r.coll == nil {
		return nil, errx.ErrUnavailable.WithCause(errors.New("mongodb room collection is nil"))
	}
	var doc model.RoomDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": roomID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
