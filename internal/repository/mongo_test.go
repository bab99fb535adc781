package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"pairing-hub/internal/config"
	"pairing-hub/internal/lock"
	"pairing-hub/internal/repository/model"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	mongoDb "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Transactions need a replica set, so the container runs a single member one.
const (
	mongoUri = "mongodb://localhost:%s/?directConnection=true"
)

var (
	dbClient *mongoDb.Client
	database *mongoDb.Database
	repo     Repository
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct pool: %s", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0.3",
		Cmd:        []string{"--replSet", "rs0", "--bind_ip_all"},
	}, func(cfg *docker.HostConfig) {
		cfg.AutoRemove = true
		cfg.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		log.Fatalf("could not start resource: %s", err)
	}

	uri := fmt.Sprintf(mongoUri, resource.GetPort("27017/tcp"))

	err = pool.Retry(func() (err error) {
		dbClient, err = mongoDb.Connect(context.Background(), options.Client().ApplyURI(uri).SetRegistry(createCodecRegistry()))
		if err != nil {
			return
		}
		if err = dbClient.Ping(context.Background(), nil); err != nil {
			return
		}
		return initiateReplicaSet(dbClient)
	})
	if err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	// Ping was successful, let's create the mongo repo
	repo, _, err = NewMongoRepository(context.Background(), config.MongoDBConfig{URI: uri})
	if err != nil {
		log.Fatalf("could not create repository: %s", err)
	}
	database = dbClient.Database(databaseName)

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Fatalf("could not purge resource: %s", err)
	}

	if err = dbClient.Disconnect(context.TODO()); err != nil {
		log.Panicf("could not disconnect from mongo: %s", err)
	}

	os.Exit(code)
}

func initiateReplicaSet(client *mongoDb.Client) error {
	admin := client.Database("admin")
	err := admin.RunCommand(context.Background(), bson.D{{Key: "replSetInitiate", Value: bson.M{
		"_id":     "rs0",
		"members": bson.A{bson.M{"_id": 0, "host": "127.0.0.1:27017"}},
	}}}).Err()

	var cmdErr mongoDb.CommandError
	if err != nil && !(errors.As(err, &cmdErr) && cmdErr.Name == "AlreadyInitialized") {
		return err
	}

	var hello bson.M
	if err := admin.RunCommand(context.Background(), bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return err
	}
	if primary, _ := hello["isWritablePrimary"].(bool); !primary {
		return errors.New("replica set has no primary yet")
	}
	return nil
}

func cleanup() {
	if err := database.Drop(context.Background()); err != nil {
		log.Panicf("could not drop database: %s", err)
	}
	// Dropping removes the alias index too.
	if err := repo.(*mongoRepository).createIndexes(context.Background()); err != nil {
		log.Panicf("could not recreate indexes: %s", err)
	}
}

var (
	created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	userA   = "AAAAAAAAAA"
	userB   = "BBBBBBBBBB"
	userC   = "CCCCCCCCCC"
)

func TestMongoRepository_GetUser(t *testing.T) {
	defer cleanup()

	_, err := database.Collection(userCollectionName).InsertOne(context.Background(),
		model.User{UID: userA, Alias: "kitty", CreatedAt: created, LastLogin: created})
	assert.NoError(t, err)

	user, err := repo.GetUser(context.Background(), userA)
	assert.NoError(t, err)
	assert.Equal(t, "kitty", user.AliasOrUID())

	user, err = repo.GetUserByUIDOrAlias(context.Background(), "kitty")
	assert.NoError(t, err)
	assert.Equal(t, userA, user.UID)

	user, err = repo.GetUserByUIDOrAlias(context.Background(), userA)
	assert.NoError(t, err)
	assert.Equal(t, userA, user.UID)

	user, err = repo.GetUser(context.Background(), userB)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestMongoRepository_UpdateLastLogin(t *testing.T) {
	defer cleanup()

	assert.NoError(t, repo.UpdateLastLogin(context.Background(), userA))

	user, err := repo.GetUser(context.Background(), userA)
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.False(t, user.CreatedAt.IsZero())
	first := user.LastLogin

	time.Sleep(5 * time.Millisecond)
	assert.NoError(t, repo.UpdateLastLogin(context.Background(), userA))

	user, err = repo.GetUser(context.Background(), userA)
	assert.NoError(t, err)
	assert.True(t, user.LastLogin.After(first))
}

func TestMongoRepository_CreatePair(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	pair := model.NewClientPair(userA, userB, created)
	err := repo.CreatePair(ctx, pair, model.DefaultPairPermissions(userA, userB), model.DefaultPairAccess(userA, userB))
	assert.NoError(t, err)

	got, err := repo.GetPair(ctx, userA, userB)
	assert.NoError(t, err)
	assert.Equal(t, pair, got)

	perms, err := repo.GetPairPermissions(ctx, userA, userB)
	assert.NoError(t, err)
	assert.Equal(t, "(", perms.StartChar)

	access, err := repo.GetPairAccess(ctx, userA, userB)
	assert.NoError(t, err)
	assert.Equal(t, userB, access.OtherUserUID)

	// The reverse direction does not exist until B adds A.
	got, err = repo.GetPair(ctx, userB, userA)
	assert.NoError(t, err)
	assert.Nil(t, got)

	err = repo.CreatePair(ctx, pair, model.DefaultPairPermissions(userA, userB), model.DefaultPairAccess(userA, userB))
	assert.ErrorIs(t, err, ErrPairExists)
}

func TestMongoRepository_DeletePair(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	assert.NoError(t, repo.CreatePair(ctx, model.NewClientPair(userA, userB, created),
		model.DefaultPairPermissions(userA, userB), model.DefaultPairAccess(userA, userB)))

	assert.NoError(t, repo.DeletePair(ctx, userA, userB))

	pair, err := repo.GetPair(ctx, userA, userB)
	assert.NoError(t, err)
	assert.Nil(t, pair)

	perms, err := repo.GetPairPermissions(ctx, userA, userB)
	assert.NoError(t, err)
	assert.Nil(t, perms)

	access, err := repo.GetPairAccess(ctx, userA, userB)
	assert.NoError(t, err)
	assert.Nil(t, access)

	assert.ErrorIs(t, repo.DeletePair(ctx, userA, userB), ErrPairNotFound)
}

func TestMongoRepository_ListPairs(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	for _, edge := range [][2]string{{userA, userB}, {userB, userA}, {userC, userA}} {
		assert.NoError(t, repo.CreatePair(ctx, model.NewClientPair(edge[0], edge[1], created),
			model.DefaultPairPermissions(edge[0], edge[1]), model.DefaultPairAccess(edge[0], edge[1])))
	}

	pairs, err := repo.ListPairs(ctx, userA)
	assert.NoError(t, err)
	assert.Len(t, pairs, 1)
	assert.Equal(t, userB, pairs[0].OtherUserUID)

	pairedBy, err := repo.ListPairedBy(ctx, userA)
	assert.NoError(t, err)
	assert.Len(t, pairedBy, 2)
	for _, p := range pairedBy {
		assert.Contains(t, []string{userB, userC}, p.UserUID)
	}
}

func TestMongoRepository_ListPermissionsToward(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	paused := model.DefaultPairPermissions(userB, userA)
	paused.IsPaused = true
	assert.NoError(t, repo.SavePairPermissions(ctx, paused))
	assert.NoError(t, repo.SavePairPermissions(ctx, model.DefaultPairPermissions(userC, userA)))
	assert.NoError(t, repo.SavePairPermissions(ctx, model.DefaultPairPermissions(userC, userB)))

	rows, err := repo.ListPermissionsToward(ctx, userA, []string{userB, userC})
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.True(t, rows[userB].IsPaused)
	assert.False(t, rows[userC].IsPaused)

	rows, err = repo.ListPermissionsToward(ctx, userA, nil)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMongoRepository_SavePairPermissions(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	perms := model.DefaultPairPermissions(userA, userB)
	perms.MaxGagTime = 90 * time.Minute
	perms.ForcedSit = userB
	assert.NoError(t, repo.SavePairPermissions(ctx, perms))

	got, err := repo.GetPairPermissions(ctx, userA, userB)
	assert.NoError(t, err)
	assert.Equal(t, perms, got)
}

func TestMongoRepository_ActiveState(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	state, err := repo.GetActiveState(ctx, userA)
	assert.NoError(t, err)
	assert.Nil(t, state)

	state = &model.ActiveState{UserUID: userA}
	state.Gags[1] = model.Slot{Item: "Ball Gag", Padlock: lock.TimerPassword, Password: "pw", Timer: created, Assigner: userB}
	assert.NoError(t, repo.SaveActiveState(ctx, state))

	got, err := repo.GetActiveState(ctx, userA)
	assert.NoError(t, err)
	assert.Equal(t, state, got)

	// Padlocks are stored by name.
	var raw bson.M
	assert.NoError(t, database.Collection(activeStateCollectionName).FindOne(ctx, bson.M{"_id": userA}).Decode(&raw))
	gags := raw["gags"].(bson.A)
	assert.Equal(t, "TimerPasswordPadlock", gags[1].(bson.M)["padlock"])
}

func TestMongoRepository_GlobalAndAccess(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	global := model.DefaultGlobalPermissions(userA)
	global.Safeword = "red"
	assert.NoError(t, repo.SaveGlobalPermissions(ctx, global))

	gotGlobal, err := repo.GetGlobalPermissions(ctx, userA)
	assert.NoError(t, err)
	assert.Equal(t, global, gotGlobal)

	access := model.DefaultPairAccess(userA, userB)
	access.ApplyGagsAllowed = true
	assert.NoError(t, repo.SavePairAccess(ctx, access))

	gotAccess, err := repo.GetPairAccess(ctx, userA, userB)
	assert.NoError(t, err)
	assert.Equal(t, access, gotAccess)
}

func TestMongoRepository_ProfileAndReputation(t *testing.T) {
	defer cleanup()
	ctx := context.Background()

	profile := &model.Profile{UserUID: userA, Description: "hello", UpdatedAt: created}
	assert.NoError(t, repo.SaveProfile(ctx, profile))

	got, err := repo.GetProfile(ctx, userA)
	assert.NoError(t, err)
	assert.Equal(t, profile, got)

	rep, err := repo.GetReputation(ctx, userA)
	assert.NoError(t, err)
	assert.Nil(t, rep)

	_, err = database.Collection(reputationCollectionName).InsertOne(ctx, model.Reputation{UserUID: userA, ProfileEditing: false, ProfileViewing: true})
	assert.NoError(t, err)

	rep, err = repo.GetReputation(ctx, userA)
	assert.NoError(t, err)
	assert.False(t, rep.ProfileEditing)
	assert.True(t, rep.ProfileViewing)
}
