package counterstore_test

import (
	"context"
	"sync"
	"testing"

	"fulfillment/internal/adapters/out/redis/counterstore"
	"fulfillment/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type StoreIntegrationTestSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	rdb       *redis.Client
	store     *counterstore.Store
}

func (suite *StoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	suite.Require().NoError(err)
	suite.container = container

	uri, err := container.ConnectionString(ctx)
	suite.Require().NoError(err)

	opts, err := redis.ParseURL(uri)
	suite.Require().NoError(err)

	rdb, err := counterstore.NewClient(ctx, opts.Addr, "", 0)
	suite.Require().NoError(err)
	suite.rdb = rdb
	suite.store = counterstore.New(rdb, "test:")
}

func (suite *StoreIntegrationTestSuite) TearDownSuite() {
	if suite.rdb != nil {
		suite.Require().NoError(suite.rdb.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.rdb.FlushDB(context.Background()).Err())
}

func (suite *StoreIntegrationTestSuite) TestGet_MissingKey() {
	_, found, err := suite.store.Get(context.Background(), "Sydney_2024-05-14_sameday")

	suite.Require().NoError(err)
	suite.False(found)
}

func (suite *StoreIntegrationTestSuite) TestCreateIfAbsent_KeepsExistingDocument() {
	ctx := context.Background()
	key := "Sydney_2024-05-14_sameday"

	suite.Require().NoError(suite.store.Put(ctx, key, ports.CounterDocument{Batch: 5}))

	doc, err := suite.store.CreateIfAbsent(ctx, key, ports.CounterDocument{Batch: 0})

	suite.Require().NoError(err)
	suite.Equal(5, doc.Batch)
}

func (suite *StoreIntegrationTestSuite) TestCreateIfAbsent_ConcurrentCallersSeeOneDocument() {
	ctx := context.Background()
	key := "Perth_2024-05-14_sameday"
	var wg sync.WaitGroup
	docs := make([]ports.CounterDocument, 10)
	errs := make([]error, 10)

	for i := range docs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			docs[i], errs[i] = suite.store.CreateIfAbsent(ctx, key, ports.CounterDocument{
				Batch:    0,
				Metadata: map[string]string{"location": "Perth"},
			})
		}()
	}
	wg.Wait()

	for i := range docs {
		suite.Require().NoError(errs[i])
		suite.Equal(0, docs[i].Batch)
	}
	keys, err := suite.rdb.Keys(ctx, "test:*").Result()
	suite.Require().NoError(err)
	suite.Equal([]string{"test:" + key}, keys)
}

func (suite *StoreIntegrationTestSuite) TestPut_RoundTripsMetadata() {
	ctx := context.Background()
	key := "Melbourne_2024-05-15_nextday"

	err := suite.store.Put(ctx, key, ports.CounterDocument{
		Batch:    2,
		Metadata: map[string]string{"batch": "2", "delivery_type": "nextday"},
	})
	suite.Require().NoError(err)

	doc, found, err := suite.store.Get(ctx, key)
	suite.Require().NoError(err)
	suite.True(found)
	suite.Equal(2, doc.Batch)
	suite.Equal("nextday", doc.Metadata["delivery_type"])
}

func (suite *StoreIntegrationTestSuite) TestGet_CorruptDocument() {
	ctx := context.Background()
	suite.Require().NoError(suite.rdb.Set(ctx, "test:broken", "not-json", 0).Err())

	_, _, err := suite.store.Get(ctx, "broken")

	suite.Require().Error(err)
	suite.Contains(err.Error(), "decode counter broken")
}

func TestStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StoreIntegrationTestSuite))
}
