package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pinkauto/internal/notify"
	"pinkauto/internal/types"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	SaveOTP(ctx context.Context, phone, hash string, ttl time.Duration) error
	GetOTPHash(ctx context.Context, phone string) (string, error)
	DeleteOTP(ctx context.Context, phone string) error
	IncrSendCount(ctx context.Context, phone string, window time.Duration) (int64, error)
	UpsertRider(ctx context.Context, phone string) (Rider, error)
	GetRider(ctx context.Context, id types.ID) (Rider, error)
}

// Notifier queues outbound events; the real implementation publishes to the
// message broker.
type Notifier interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

const rateWindow = time.Hour

type Service struct {
	repo       Repository
	notifier   Notifier
	jwtSecret  []byte
	otpTTL     time.Duration
	maxSends   int64
	sessionTTL time.Duration
}

func NewService(repo Repository, notifier Notifier, jwtSecret string, otpTTL time.Duration, maxSends int, sessionTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		notifier:   notifier,
		jwtSecret:  []byte(jwtSecret),
		otpTTL:     otpTTL,
		maxSends:   int64(maxSends),
		sessionTTL: sessionTTL,
	}
}

// RequestOTP generates a 6-digit code, stores its hash with a TTL, and
// queues the SMS. Only the hash ever leaves this function's scope besides
// the dispatch event itself.
func (s *Service) RequestOTP(ctx context.Context, phone string) error {
	if !validPhone(phone) {
		return ErrInvalidPhone
	}

	sends, err := s.repo.IncrSendCount(ctx, phone, rateWindow)
	if err != nil {
		return fmt.Errorf("rate counter: %w", err)
	}
	if sends > s.maxSends {
		return ErrTooManyRequests
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.repo.SaveOTP(ctx, phone, hashCode(code), s.otpTTL); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	return s.notifier.Publish(ctx, notify.RouteOTPSMS, SMSEvent{
		Phone: phone,
		Code:  code,
		TTL:   s.otpTTL.String(),
	})
}

// VerifyOTP checks the code, creates the rider account on first login, and
// returns a signed session token. A matching code is single-use.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (string, Rider, error) {
	if !validPhone(phone) {
		return "", Rider{}, ErrInvalidPhone
	}

	stored, err := s.repo.GetOTPHash(ctx, phone)
	if err != nil {
		return "", Rider{}, err
	}
	if hashCode(code) != stored {
		return "", Rider{}, ErrOTPMismatch
	}
	_ = s.repo.DeleteOTP(ctx, phone)

	rider, err := s.repo.UpsertRider(ctx, phone)
	if err != nil {
		return "", Rider{}, err
	}

	token, err := s.issueToken(rider)
	if err != nil {
		return "", Rider{}, fmt.Errorf("issue token: %w", err)
	}
	return token, rider, nil
}

// ParseToken validates a session token and returns the rider ID it names.
func (s *Service) ParseToken(tokenString string) (types.ID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return types.ID(claims.Subject), nil
}

func (s *Service) GetRider(ctx context.Context, id types.ID) (Rider, error) {
	return s.repo.GetRider(ctx, id)
}

func (s *Service) issueToken(rider Rider) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   string(rider.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}
	// Indian mobile numbers start with 6-9.
	return phone[0] >= '6'
}
