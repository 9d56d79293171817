package redisstore_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/redisstore"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SessionStoreIntegrationTestSuite runs the Redis session store against a real Redis.
type SessionStoreIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	now       atomic.Pointer[time.Time]
	store     *redisstore.SessionStore
}

func (suite *SessionStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *SessionStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushDB(context.Background()).Err())

	start := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
	suite.now.Store(&start)
	suite.store = redisstore.NewSessionStore(suite.client, time.Hour, func() time.Time { return *suite.now.Load() })
}

func (suite *SessionStoreIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SessionStoreIntegrationTestSuite) TestSaveAndGet_RoundTripsSession() {
	ctx := context.Background()
	sess := suite.newSession(5 * time.Minute)
	sess.MarkCollectRequested("diner@okbank", suite.clock())
	suite.Require().NoError(suite.store.Save(ctx, sess))

	got, err := suite.store.Get(ctx, sess.PaymentID())

	suite.Require().NoError(err)
	suite.True(got.PaymentID().IsEqual(sess.PaymentID()))
	suite.True(got.OrderID().IsEqual(sess.OrderID()))
	suite.Equal(session.StatusCollectRequested, got.Status())
	suite.Equal(sess.Amount(), got.Amount())
	suite.True(sess.ExpiresAt().Equal(got.ExpiresAt()))
	suite.Equal("diner@okbank", got.UPIID())
	suite.True(got.CollectRequestSent())
	suite.Require().NotNil(got.CollectRequestTime())

	ttl, err := suite.client.TTL(ctx, "payment_session:"+sess.PaymentID().String()).Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Hour)
}

func (suite *SessionStoreIntegrationTestSuite) TestGet_UnknownSession_ReturnsNotFound() {
	_, err := suite.store.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SessionStoreIntegrationTestSuite) TestGet_ExpiredSession_DeletesAndReportsExpired() {
	ctx := context.Background()
	sess := suite.newSession(time.Minute)
	suite.Require().NoError(suite.store.Save(ctx, sess))
	suite.advance(2 * time.Minute)

	_, err := suite.store.Get(ctx, sess.PaymentID())

	var expired *errs.ObjectExpiredError
	suite.Require().ErrorAs(err, &expired)
	exists, err := suite.client.Exists(ctx, "payment_session:"+sess.PaymentID().String()).Result()
	suite.Require().NoError(err)
	suite.Zero(exists)
}

func (suite *SessionStoreIntegrationTestSuite) TestGet_SessionPastGraceDeadline_ReadsAsAbsent() {
	ctx := context.Background()
	sess := suite.newSession(5 * time.Minute)
	sess.MarkPaid()
	sess.ScheduleRemoval(suite.clock(), 10*time.Second)
	suite.Require().NoError(suite.store.Save(ctx, sess))

	suite.advance(11 * time.Second)
	_, err := suite.store.Get(ctx, sess.PaymentID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SessionStoreIntegrationTestSuite) TestUpdate_AppliesMutation() {
	ctx := context.Background()
	sess := suite.newSession(5 * time.Minute)
	suite.Require().NoError(suite.store.Save(ctx, sess))

	updated, err := suite.store.Update(ctx, sess.PaymentID(), func(s *session.Session) error {
		s.MarkPaid()
		s.ScheduleRemoval(suite.clock(), 10*time.Second)
		return nil
	})

	suite.Require().NoError(err)
	suite.Equal(session.StatusPaid, updated.Status())
	got, err := suite.store.Get(ctx, sess.PaymentID())
	suite.Require().NoError(err)
	suite.Equal(session.StatusPaid, got.Status())
	suite.Require().NotNil(got.DeleteAfter())
}

func (suite *SessionStoreIntegrationTestSuite) TestUpdate_FnErrorLeavesSessionUnchanged() {
	ctx := context.Background()
	sess := suite.newSession(5 * time.Minute)
	suite.Require().NoError(suite.store.Save(ctx, sess))
	errRejected := errors.New("rejected")

	_, err := suite.store.Update(ctx, sess.PaymentID(), func(s *session.Session) error {
		s.MarkPaid()
		return errRejected
	})

	suite.Require().ErrorIs(err, errRejected)
	got, err := suite.store.Get(ctx, sess.PaymentID())
	suite.Require().NoError(err)
	suite.Equal(session.StatusCreated, got.Status())
}

func (suite *SessionStoreIntegrationTestSuite) TestUpdate_ConcurrentWritersAllSucceedOrConflict() {
	ctx := context.Background()
	sess := suite.newSession(5 * time.Minute)
	suite.Require().NoError(suite.store.Save(ctx, sess))

	const writers = 10
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.store.Update(ctx, sess.PaymentID(), func(s *session.Session) error {
				s.MarkCollectRequested("diner@okbank", suite.clock())
				return nil
			})
			if err == nil {
				succeeded.Add(1)
				return
			}
			suite.ErrorIs(err, errs.ErrConflict)
		}()
	}
	wg.Wait()

	suite.Positive(succeeded.Load())
	got, err := suite.store.Get(ctx, sess.PaymentID())
	suite.Require().NoError(err)
	suite.True(got.CollectRequestSent())
}

func (suite *SessionStoreIntegrationTestSuite) TestDelete_IsIdempotent() {
	ctx := context.Background()
	sess := suite.newSession(5 * time.Minute)
	suite.Require().NoError(suite.store.Save(ctx, sess))

	suite.Require().NoError(suite.store.Delete(ctx, sess.PaymentID()))
	suite.Require().NoError(suite.store.Delete(ctx, sess.PaymentID()))

	_, err := suite.store.Get(ctx, sess.PaymentID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SessionStoreIntegrationTestSuite) TestPurgeExpired_RemovesExpiredAndGracedSessions() {
	ctx := context.Background()
	live := suite.newSession(time.Hour)
	expired := suite.newSession(time.Minute)
	graced := suite.newSession(time.Hour)
	graced.MarkPaid()
	graced.ScheduleRemoval(suite.clock(), 10*time.Second)
	for _, s := range []*session.Session{live, expired, graced} {
		suite.Require().NoError(suite.store.Save(ctx, s))
	}
	suite.Require().NoError(suite.client.Set(ctx, "unrelated", "value", 0).Err())

	purged, err := suite.store.PurgeExpired(ctx, suite.clock().Add(2*time.Minute))

	suite.Require().NoError(err)
	suite.Equal(2, purged)
	_, err = suite.store.Get(ctx, live.PaymentID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), suite.client.Exists(ctx, "unrelated").Val())
}

func (suite *SessionStoreIntegrationTestSuite) newSession(ttl time.Duration) *session.Session {
	sess, err := session.NewSession(kernel.NewUUID(), kernel.NewUUID(), 310.75, suite.clock(), ttl)
	suite.Require().NoError(err)
	return sess
}

func (suite *SessionStoreIntegrationTestSuite) clock() time.Time {
	return *suite.now.Load()
}

func (suite *SessionStoreIntegrationTestSuite) advance(d time.Duration) {
	next := suite.clock().Add(d)
	suite.now.Store(&next)
}

func TestSessionStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreIntegrationTestSuite))
}
