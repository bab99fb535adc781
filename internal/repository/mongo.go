package repository

import (
	"context"
	"errors"
	"fmt"
	"pairing-hub/internal/config"
	"pairing-hub/internal/repository/model"
	"pairing-hub/internal/repository/registrytypes"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName = "pairing-hub"

	userCollectionName            = "users"
	pairCollectionName            = "pairs"
	pairPermissionsCollectionName = "pair_permissions"
	pairAccessCollectionName      = "pair_access"
	globalCollectionName          = "global_permissions"
	activeStateCollectionName     = "active_state"
	profileCollectionName         = "profiles"
	reputationCollectionName      = "reputation"
)

var (
	ErrPairExists   = errors.New("pair already exists")
	ErrPairNotFound = errors.New("pair does not exist")
)

type mongoRepository struct {
	Repository
	client   *mongo.Client
	database *mongo.Database

	userCollection            *mongo.Collection
	pairCollection            *mongo.Collection
	pairPermissionsCollection *mongo.Collection
	pairAccessCollection      *mongo.Collection
	globalCollection          *mongo.Collection
	activeStateCollection     *mongo.Collection
	profileCollection         *mongo.Collection
	reputationCollection      *mongo.Collection
}

func NewMongoRepository(ctx context.Context, cfg config.MongoDBConfig) (Repository, *mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetRegistry(createCodecRegistry()))
	if err != nil {
		return nil, nil, err
	}

	database := client.Database(databaseName)
	repo := &mongoRepository{
		client:                    client,
		database:                  database,
		userCollection:            database.Collection(userCollectionName),
		pairCollection:            database.Collection(pairCollectionName),
		pairPermissionsCollection: database.Collection(pairPermissionsCollectionName),
		pairAccessCollection:      database.Collection(pairAccessCollectionName),
		globalCollection:          database.Collection(globalCollectionName),
		activeStateCollection:     database.Collection(activeStateCollectionName),
		profileCollection:         database.Collection(profileCollectionName),
		reputationCollection:      database.Collection(reputationCollectionName),
	}

	if err := repo.createIndexes(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	return repo, client, nil
}

func (m *mongoRepository) createIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.pairCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userUid", Value: 1}}},
		{Keys: bson.D{{Key: "otherUserUid", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = m.pairPermissionsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "otherUserUid", Value: 1}, {Key: "userUid", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = m.userCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "alias", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	return err
}

// findOne decodes a single document into out, reporting false when none matched.
func findOne(ctx context.Context, coll *mongo.Collection, filter any, out any) (bool, error) {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func replace(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *mongoRepository) GetUser(ctx context.Context, uid string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user model.User
	found, err := findOne(ctx, m.userCollection, bson.M{"_id": uid}, &user)
	if !found || err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *mongoRepository) GetUserByUIDOrAlias(ctx context.Context, uidOrAlias string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{bson.M{"_id": uidOrAlias}, bson.M{"alias": uidOrAlias}}}

	var user model.User
	found, err := findOne(ctx, m.userCollection, filter, &user)
	if !found || err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *mongoRepository) UpdateLastLogin(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	_, err := m.userCollection.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{
		"$set":         bson.M{"lastLogin": now},
		"$setOnInsert": bson.M{"createdAt": now, "tier": 0},
	}, options.Update().SetUpsert(true))
	return err
}

func (m *mongoRepository) GetPair(ctx context.Context, userUID string, otherUID string) (*model.ClientPair, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pair model.ClientPair
	found, err := findOne(ctx, m.pairCollection, bson.M{"_id": model.PairId(userUID, otherUID)}, &pair)
	if !found || err != nil {
		return nil, err
	}
	return &pair, nil
}

func (m *mongoRepository) listPairs(ctx context.Context, filter bson.M) ([]*model.ClientPair, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.pairCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var mongoResult []model.ClientPair
	if err := cursor.All(ctx, &mongoResult); err != nil {
		return nil, err
	}

	slice := make([]*model.ClientPair, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}
	return slice, nil
}

func (m *mongoRepository) ListPairs(ctx context.Context, uid string) ([]*model.ClientPair, error) {
	return m.listPairs(ctx, bson.M{"userUid": uid})
}

func (m *mongoRepository) ListPairedBy(ctx context.Context, uid string) ([]*model.ClientPair, error) {
	return m.listPairs(ctx, bson.M{"otherUserUid": uid})
}

func (m *mongoRepository) CreatePair(ctx context.Context, pair *model.ClientPair, perms *model.PairPermissions, access *model.PairAccess) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		if _, err := m.pairCollection.InsertOne(sc, pair); err != nil {
			return nil, err
		}
		if err := replace(sc, m.pairPermissionsCollection, perms.Id, perms); err != nil {
			return nil, err
		}
		return nil, replace(sc, m.pairAccessCollection, access.Id, access)
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrPairExists
	}
	return err
}

func (m *mongoRepository) DeletePair(ctx context.Context, userUID string, otherUID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	id := model.PairId(userUID, otherUID)
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		result, err := m.pairCollection.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if result.DeletedCount == 0 {
			return nil, ErrPairNotFound
		}
		if _, err := m.pairPermissionsCollection.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return nil, err
		}
		_, err = m.pairAccessCollection.DeleteOne(sc, bson.M{"_id": id})
		return nil, err
	})
	return err
}

func (m *mongoRepository) GetPairPermissions(ctx context.Context, userUID string, otherUID string) (*model.PairPermissions, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var perms model.PairPermissions
	found, err := findOne(ctx, m.pairPermissionsCollection, bson.M{"_id": model.PairId(userUID, otherUID)}, &perms)
	if !found || err != nil {
		return nil, err
	}
	return &perms, nil
}

func (m *mongoRepository) SavePairPermissions(ctx context.Context, perms *model.PairPermissions) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return replace(ctx, m.pairPermissionsCollection, perms.Id, perms)
}

func (m *mongoRepository) ListPermissionsToward(ctx context.Context, other string, uids []string) (map[string]*model.PairPermissions, error) {
	result := make(map[string]*model.PairPermissions, len(uids))
	if len(uids) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.pairPermissionsCollection.Find(ctx, bson.M{
		"otherUserUid": other,
		"userUid":      bson.M{"$in": uids},
	})
	if err != nil {
		return nil, err
	}

	var mongoResult []model.PairPermissions
	if err := cursor.All(ctx, &mongoResult); err != nil {
		return nil, err
	}
	for i := range mongoResult {
		result[mongoResult[i].UserUID] = &mongoResult[i]
	}
	return result, nil
}

func (m *mongoRepository) GetPairAccess(ctx context.Context, userUID string, otherUID string) (*model.PairAccess, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var access model.PairAccess
	found, err := findOne(ctx, m.pairAccessCollection, bson.M{"_id": model.PairId(userUID, otherUID)}, &access)
	if !found || err != nil {
		return nil, err
	}
	return &access, nil
}

func (m *mongoRepository) SavePairAccess(ctx context.Context, access *model.PairAccess) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return replace(ctx, m.pairAccessCollection, access.Id, access)
}

func (m *mongoRepository) GetGlobalPermissions(ctx context.Context, uid string) (*model.GlobalPermissions, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var global model.GlobalPermissions
	found, err := findOne(ctx, m.globalCollection, bson.M{"_id": uid}, &global)
	if !found || err != nil {
		return nil, err
	}
	return &global, nil
}

func (m *mongoRepository) SaveGlobalPermissions(ctx context.Context, global *model.GlobalPermissions) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return replace(ctx, m.globalCollection, global.UserUID, global)
}

func (m *mongoRepository) GetActiveState(ctx context.Context, uid string) (*model.ActiveState, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var state model.ActiveState
	found, err := findOne(ctx, m.activeStateCollection, bson.M{"_id": uid}, &state)
	if !found || err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *mongoRepository) SaveActiveState(ctx context.Context, state *model.ActiveState) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return replace(ctx, m.activeStateCollection, state.UserUID, state)
}

func (m *mongoRepository) GetProfile(ctx context.Context, uid string) (*model.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile model.Profile
	found, err := findOne(ctx, m.profileCollection, bson.M{"_id": uid}, &profile)
	if !found || err != nil {
		return nil, err
	}
	return &profile, nil
}

func (m *mongoRepository) SaveProfile(ctx context.Context, profile *model.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return replace(ctx, m.profileCollection, profile.UserUID, profile)
}

func (m *mongoRepository) GetReputation(ctx context.Context, uid string) (*model.Reputation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var reputation model.Reputation
	found, err := findOne(ctx, m.reputationCollection, bson.M{"_id": uid}, &reputation)
	if !found || err != nil {
		return nil, err
	}
	return &reputation, nil
}

func createCodecRegistry() *bsoncodec.Registry {
	registry := bson.NewRegistry()
	registry.RegisterTypeEncoder(registrytypes.PadlockType, bsoncodec.ValueEncoderFunc(registrytypes.PadlockEncodeValue))
	registry.RegisterTypeDecoder(registrytypes.PadlockType, bsoncodec.ValueDecoderFunc(registrytypes.PadlockDecodeValue))
	return registry
}
