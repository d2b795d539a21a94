package auth

import (
	"context"
	"testing"
	"time"

	"pinkauto/internal/notify"
	"pinkauto/internal/types"
)

type fakeRepo struct {
	otps    map[string]string
	sends   map[string]int64
	riders  map[string]Rider
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		otps:   map[string]string{},
		sends:  map[string]int64{},
		riders: map[string]Rider{},
	}
}

func (f *fakeRepo) SaveOTP(_ context.Context, phone, hash string, _ time.Duration) error {
	f.otps[phone] = hash
	return nil
}

func (f *fakeRepo) GetOTPHash(_ context.Context, phone string) (string, error) {
	h, ok := f.otps[phone]
	if !ok {
		return "", ErrOTPExpired
	}
	return h, nil
}

func (f *fakeRepo) DeleteOTP(_ context.Context, phone string) error {
	delete(f.otps, phone)
	return nil
}

func (f *fakeRepo) IncrSendCount(_ context.Context, phone string, _ time.Duration) (int64, error) {
	f.sends[phone]++
	return f.sends[phone], nil
}

func (f *fakeRepo) UpsertRider(_ context.Context, phone string) (Rider, error) {
	if r, ok := f.riders[phone]; ok {
		return r, nil
	}
	f.nextID++
	r := Rider{ID: types.ID(string(rune('a' + f.nextID))), Phone: phone, CreatedAt: time.Now()}
	f.riders[phone] = r
	return r, nil
}

func (f *fakeRepo) GetRider(_ context.Context, id types.ID) (Rider, error) {
	for _, r := range f.riders {
		if r.ID == id {
			return r, nil
		}
	}
	return Rider{}, ErrInvalidToken
}

type fakeNotifier struct {
	events []struct {
		key   string
		event any
	}
}

func (f *fakeNotifier) Publish(_ context.Context, key string, event any) error {
	f.events = append(f.events, struct {
		key   string
		event any
	}{key, event})
	return nil
}

func newTestService(repo *fakeRepo, n *fakeNotifier) *Service {
	return NewService(repo, n, "test-secret", 5*time.Minute, 3, 30*24*time.Hour)
}

func TestRequestAndVerifyOTP(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)
	ctx := context.Background()

	if err := svc.RequestOTP(ctx, "9876543210"); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	if len(notifier.events) != 1 || notifier.events[0].key != notify.RouteOTPSMS {
		t.Fatalf("expected one otp.sms event, got %+v", notifier.events)
	}
	sms := notifier.events[0].event.(SMSEvent)
	if len(sms.Code) != 6 {
		t.Fatalf("code %q is not 6 digits", sms.Code)
	}

	token, rider, err := svc.VerifyOTP(ctx, "9876543210", sms.Code)
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if rider.Phone != "9876543210" {
		t.Errorf("rider phone = %s", rider.Phone)
	}

	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != rider.ID {
		t.Errorf("token subject = %s, want %s", id, rider.ID)
	}

	// Codes are single-use.
	if _, _, err := svc.VerifyOTP(ctx, "9876543210", sms.Code); err != ErrOTPExpired {
		t.Errorf("reused code: err = %v, want ErrOTPExpired", err)
	}
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)
	ctx := context.Background()

	if err := svc.RequestOTP(ctx, "9876543210"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.VerifyOTP(ctx, "9876543210", "000000"); err != ErrOTPMismatch {
		t.Errorf("err = %v, want ErrOTPMismatch", err)
	}
}

func TestRequestOTP_RateLimited(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.RequestOTP(ctx, "9876543210"); err != nil {
			t.Fatalf("send %d: %v", i+1, err)
		}
	}
	if err := svc.RequestOTP(ctx, "9876543210"); err != ErrTooManyRequests {
		t.Errorf("err = %v, want ErrTooManyRequests", err)
	}
}

func TestRequestOTP_InvalidPhone(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})
	for _, phone := range []string{"", "12345", "98765432100", "abcdefghij", "1234567890"} {
		if err := svc.RequestOTP(context.Background(), phone); err != ErrInvalidPhone {
			t.Errorf("phone %q: err = %v, want ErrInvalidPhone", phone, err)
		}
	}
}

func TestParseToken_Garbage(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})
	if _, err := svc.ParseToken("not.a.token"); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
