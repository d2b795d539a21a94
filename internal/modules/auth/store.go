// Auth store: OTP hashes and rate counters live in Redis with TTLs,
// rider accounts in PostgreSQL.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"pinkauto/internal/types"
)

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, rdb *redis.Client) *Store {
	return &Store{db: db, redis: rdb}
}

func otpKey(phone string) string  { return "auth:otp:" + phone }
func rateKey(phone string) string { return "auth:otp_sends:" + phone }

func (s *Store) SaveOTP(ctx context.Context, phone, hash string, ttl time.Duration) error {
	return s.redis.Set(ctx, otpKey(phone), hash, ttl).Err()
}

// GetOTPHash returns the stored hash, or ErrOTPExpired when none exists.
func (s *Store) GetOTPHash(ctx context.Context, phone string) (string, error) {
	val, err := s.redis.Get(ctx, otpKey(phone)).Result()
	if err == redis.Nil {
		return "", ErrOTPExpired
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *Store) DeleteOTP(ctx context.Context, phone string) error {
	return s.redis.Del(ctx, otpKey(phone)).Err()
}

// IncrSendCount bumps the per-phone send counter and returns the new count.
// The counter expires after the rate window.
func (s *Store) IncrSendCount(ctx context.Context, phone string, window time.Duration) (int64, error) {
	pipe := s.redis.Pipeline()
	incr := pipe.Incr(ctx, rateKey(phone))
	pipe.Expire(ctx, rateKey(phone), window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// UpsertRider returns the rider for a phone, creating the account on first
// login.
func (s *Store) UpsertRider(ctx context.Context, phone string) (Rider, error) {
	row := s.db.QueryRow(ctx, `
        INSERT INTO riders (id, phone, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (phone) DO UPDATE SET phone = EXCLUDED.phone
        RETURNING id, phone, COALESCE(name, ''), created_at`,
		uuid.NewString(), phone,
	)
	var r Rider
	if err := row.Scan(&r.ID, &r.Phone, &r.Name, &r.CreatedAt); err != nil {
		return Rider{}, fmt.Errorf("upsert rider: %w", err)
	}
	return r, nil
}

func (s *Store) GetRider(ctx context.Context, id types.ID) (Rider, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, phone, COALESCE(name, ''), created_at
        FROM riders
        WHERE id = $1`, string(id),
	)
	var r Rider
	err := row.Scan(&r.ID, &r.Phone, &r.Name, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rider{}, ErrInvalidToken
	}
	if err != nil {
		return Rider{}, err
	}
	return r, nil
}
