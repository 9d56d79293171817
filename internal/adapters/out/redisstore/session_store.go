// Package redisstore keeps payment sessions in Redis so that several service
// instances can share them. Each session is one JSON value under
// "payment_session:<paymentId>".
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "payment_session:"

	// DefaultRetention keeps a key alive past the session's own deadline so that a
	// late read still finds the value and can report it as expired instead of missing.
	DefaultRetention = time.Hour

	maxUpdateAttempts = 5
	scanBatchSize     = 100
)

// SessionStore implements ports.SessionStore on top of a go-redis client.
type SessionStore struct {
	client    redis.UniversalClient
	retention time.Duration
	clock     func() time.Time
}

// NewSessionStore wraps client. A non-positive retention falls back to
// DefaultRetention and a nil clock to time.Now.
func NewSessionStore(client redis.UniversalClient, retention time.Duration, clock func() time.Time) *SessionStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if clock == nil {
		clock = time.Now
	}
	return &SessionStore{
		client:    client,
		retention: retention,
		clock:     clock,
	}
}

func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(fromDomain(sess))
	if err != nil {
		return fmt.Errorf("encode payment session: %w", err)
	}

	return s.client.Set(ctx, key(sess.PaymentID()), data, s.keyTTL(sess)).Err()
}

func (s *SessionStore) Get(ctx context.Context, paymentID kernel.UUID) (*session.Session, error) {
	sess, err := s.load(ctx, s.client, paymentID)
	if err != nil {
		return nil, err
	}

	if err := sess.CheckAvailable(s.clock()); err != nil {
		if delErr := s.client.Del(ctx, key(paymentID)).Err(); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, err
	}
	return sess, nil
}

// Update reads, mutates and writes the session inside a WATCH transaction. A write
// racing with another update is retried a bounded number of times before Update
// gives up with a conflict.
func (s *SessionStore) Update(
	ctx context.Context,
	paymentID kernel.UUID,
	fn func(sess *session.Session) error,
) (*session.Session, error) {
	k := key(paymentID)

	for range maxUpdateAttempts {
		var updated *session.Session
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			sess, err := s.load(ctx, tx, paymentID)
			if err != nil {
				return err
			}
			if err := sess.CheckAvailable(s.clock()); err != nil {
				if delErr := tx.Del(ctx, k).Err(); delErr != nil {
					return errors.Join(err, delErr)
				}
				return err
			}

			if err := fn(sess); err != nil {
				return err
			}

			data, err := json.Marshal(fromDomain(sess))
			if err != nil {
				return fmt.Errorf("encode payment session: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, k, data, s.keyTTL(sess))
				return nil
			})
			if err == nil {
				updated = sess
			}
			return err
		}, k)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, errs.NewConflictErrorWithCause("payment session "+paymentID.String(), redis.TxFailedErr)
}

func (s *SessionStore) Delete(ctx context.Context, paymentID kernel.UUID) error {
	return s.client.Del(ctx, key(paymentID)).Err()
}

// PurgeExpired scans every session key and deletes the ones that expired or passed
// their grace deadline. Values that no longer decode are deleted as well.
func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	purged := 0
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()

		data, err := s.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return purged, err
		}

		if !isPurgeable(data, now) {
			continue
		}

		removed, err := s.client.Del(ctx, k).Result()
		if err != nil {
			return purged, err
		}
		purged += int(removed)
	}
	if err := iter.Err(); err != nil {
		return purged, err
	}

	return purged, nil
}

// reader is satisfied by both the client and a WATCH transaction.
type reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *SessionStore) load(ctx context.Context, c reader, paymentID kernel.UUID) (*session.Session, error) {
	data, err := c.Get(ctx, key(paymentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("payment session", paymentID.String())
	}
	if err != nil {
		return nil, err
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode payment session %s: %w", paymentID, err)
	}
	return toDomain(record)
}

// keyTTL keeps the key until the session's last readable instant plus retention.
func (s *SessionStore) keyTTL(sess *session.Session) time.Duration {
	ttl := sess.RetainUntil().Sub(s.clock()) + s.retention
	if ttl < s.retention {
		return s.retention
	}
	return ttl
}

func isPurgeable(data []byte, now time.Time) bool {
	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return true
	}
	sess, err := toDomain(record)
	if err != nil {
		return true
	}
	return sess.IsPurgeable(now)
}

func key(paymentID kernel.UUID) string {
	return keyPrefix + paymentID.String()
}
