package topup

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/domain/bank"
	"github.com/ptbooth/ptbooth-api/internal/domain/user"
	"github.com/ptbooth/ptbooth-api/internal/pkg/sepay"
)

type mockUsers struct {
	user *user.User
}

func (m *mockUsers) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, user.ErrUserNotFound
	}
	return m.user, nil
}

type mockBanks struct {
	profile *bank.BankInfo
}

func (m *mockBanks) Get(ctx context.Context) (*bank.BankInfo, error) {
	return m.profile, nil
}

type mockLedger struct {
	mu      sync.Mutex
	calls   int
	deltas  []int64
	err     error
	entered chan struct{}
	block   chan struct{}
	balance int64
}

func (m *mockLedger) AddPoints(ctx context.Context, userID uuid.UUID, delta int64, adminID uuid.UUID) (*user.User, error) {
	if m.entered != nil {
		close(m.entered)
		m.entered = nil
	}
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.deltas = append(m.deltas, delta)
	if m.err != nil {
		return nil, m.err
	}
	m.balance += delta
	return &user.User{ID: userID, Points: m.balance}, nil
}

func testProfile() *bank.BankInfo {
	return &bank.BankInfo{
		ID:                uuid.New(),
		BankCode:          "VCB",
		BankName:          "Vietcombank",
		AccountNumber:     "0123456789",
		AccountHolderName: "NGUYEN VAN A",
	}
}

func testUser(paymentCode string) *user.User {
	return &user.User{ID: uuid.New(), Email: "u@example.com", Name: "U", PaymentCode: paymentCode}
}

func ptrInt64(v int64) *int64       { return &v }
func ptrFloat64(v float64) *float64 { return &v }

func TestBuildIntentQR(t *testing.T) {
	u := testUser("ABC123")
	svc := NewService(&mockUsers{user: u}, &mockBanks{profile: testProfile()}, &mockLedger{}, sepay.NewEncoder(""))

	intent, err := svc.BuildIntent(context.Background(), u.ID, &TopUpRequest{
		Mode:   "qr",
		Amount: ptrFloat64(50000),
	})
	if err != nil {
		t.Fatalf("BuildIntent failed: %v", err)
	}

	if intent.Description != "PTBABC123" {
		t.Errorf("expected description PTBABC123, got %q", intent.Description)
	}
	if intent.Points != 50000 {
		t.Errorf("expected 50000 derived points, got %d", intent.Points)
	}
	if !strings.Contains(intent.QRURL, "amount=50000") {
		t.Errorf("QR URL should carry the amount: %s", intent.QRURL)
	}
}

func TestBuildIntentQRFloorsFractionalAmount(t *testing.T) {
	u := testUser("ABC123")
	svc := NewService(&mockUsers{user: u}, &mockBanks{profile: testProfile()}, &mockLedger{}, sepay.NewEncoder(""))

	intent, err := svc.BuildIntent(context.Background(), u.ID, &TopUpRequest{
		Mode:   "qr",
		Amount: ptrFloat64(1500.75),
	})
	if err != nil {
		t.Fatalf("BuildIntent failed: %v", err)
	}
	if intent.Points != 1500 {
		t.Errorf("expected floor(1500.75) = 1500 points, got %d", intent.Points)
	}
	if !strings.Contains(intent.QRURL, "amount=1500.75") {
		t.Errorf("QR URL should carry the amount verbatim: %s", intent.QRURL)
	}
}

func TestBuildIntentQRWithoutBankProfile(t *testing.T) {
	u := testUser("ABC123")
	svc := NewService(&mockUsers{user: u}, &mockBanks{}, &mockLedger{}, sepay.NewEncoder(""))

	_, err := svc.BuildIntent(context.Background(), u.ID, &TopUpRequest{
		Mode:   "qr",
		Amount: ptrFloat64(50000),
	})
	if !errors.Is(err, ErrBankNotConfigured) {
		t.Errorf("expected ErrBankNotConfigured, got %v", err)
	}
}

func TestBuildIntentQRWithoutPaymentCode(t *testing.T) {
	u := testUser("")
	svc := NewService(&mockUsers{user: u}, &mockBanks{profile: testProfile()}, &mockLedger{}, sepay.NewEncoder(""))

	_, err := svc.BuildIntent(context.Background(), u.ID, &TopUpRequest{
		Mode:   "qr",
		Amount: ptrFloat64(50000),
	})
	if !errors.Is(err, sepay.ErrMissingPaymentCode) {
		t.Errorf("expected ErrMissingPaymentCode, got %v", err)
	}
}

func TestBuildIntentQRAmountTooSmall(t *testing.T) {
	u := testUser("ABC123")
	svc := NewService(&mockUsers{user: u}, &mockBanks{profile: testProfile()}, &mockLedger{}, sepay.NewEncoder(""))

	_, err := svc.BuildIntent(context.Background(), u.ID, &TopUpRequest{
		Mode:   "qr",
		Amount: ptrFloat64(0.5),
	})
	if !errors.Is(err, ErrAmountTooSmall) {
		t.Errorf("expected ErrAmountTooSmall, got %v", err)
	}
}

func TestSubmitManualCredits(t *testing.T) {
	u := testUser("ABC123")
	ledger := &mockLedger{}
	svc := NewService(&mockUsers{user: u}, &mockBanks{}, ledger, sepay.NewEncoder(""))

	got, err := svc.Submit(context.Background(), uuid.New(), u.ID, &TopUpRequest{
		Mode:   "manual",
		Points: ptrInt64(250),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if got.Points != 250 {
		t.Errorf("expected balance 250, got %d", got.Points)
	}
	if ledger.calls != 1 || ledger.deltas[0] != 250 {
		t.Errorf("expected one credit of 250, got calls=%d deltas=%v", ledger.calls, ledger.deltas)
	}
}

func TestSubmitInvalidNeverCredits(t *testing.T) {
	u := testUser("ABC123")
	ledger := &mockLedger{}
	svc := NewService(&mockUsers{user: u}, &mockBanks{}, ledger, sepay.NewEncoder(""))
	admin := uuid.New()

	cases := []*TopUpRequest{
		{Mode: "manual"},
		{Mode: "manual", Points: ptrInt64(0)},
		{Mode: "qr"},
		{Mode: "qr", Amount: ptrFloat64(0)},
		{Mode: "qr", Amount: ptrFloat64(50000)}, // no bank profile configured
		{Mode: "bogus"},
	}
	for _, req := range cases {
		if _, err := svc.Submit(context.Background(), admin, u.ID, req); err == nil {
			t.Errorf("request %+v should have been rejected", req)
		}
	}
	if ledger.calls != 0 {
		t.Errorf("no credit call should happen for rejected submissions, got %d", ledger.calls)
	}
}

func TestSubmitFailureAllowsRetry(t *testing.T) {
	u := testUser("ABC123")
	ledger := &mockLedger{err: errors.New("db down")}
	svc := NewService(&mockUsers{user: u}, &mockBanks{}, ledger, sepay.NewEncoder(""))
	admin := uuid.New()

	req := &TopUpRequest{Mode: "manual", Points: ptrInt64(100)}
	if _, err := svc.Submit(context.Background(), admin, u.ID, req); err == nil {
		t.Fatal("expected credit failure")
	}

	ledger.err = nil
	got, err := svc.Submit(context.Background(), admin, u.ID, req)
	if err != nil {
		t.Fatalf("retry after failure should succeed: %v", err)
	}
	if got.Points != 100 {
		t.Errorf("expected balance 100 after retry, got %d", got.Points)
	}
}

func TestSubmitConcurrentCreditsOnce(t *testing.T) {
	u := testUser("ABC123")
	ledger := &mockLedger{entered: make(chan struct{}), block: make(chan struct{})}
	svc := NewService(&mockUsers{user: u}, &mockBanks{}, ledger, sepay.NewEncoder(""))
	admin := uuid.New()
	req := &TopUpRequest{Mode: "manual", Points: ptrInt64(500)}

	entered := ledger.entered

	var first sync.WaitGroup
	first.Add(1)
	go func() {
		defer first.Done()
		if _, err := svc.Submit(context.Background(), admin, u.ID, req); err != nil {
			t.Errorf("first submission should succeed: %v", err)
		}
	}()

	// Wait until the first submission is parked inside the ledger call, then
	// hammer: every concurrent attempt must bounce off the in-flight guard.
	<-entered
	for i := 0; i < 10; i++ {
		if _, err := svc.Submit(context.Background(), admin, u.ID, req); !errors.Is(err, ErrSubmissionInFlight) {
			t.Errorf("concurrent submission %d: expected ErrSubmissionInFlight, got %v", i, err)
		}
	}

	close(ledger.block)
	first.Wait()

	if ledger.calls != 1 {
		t.Errorf("expected exactly one credit call, got %d", ledger.calls)
	}
	if ledger.balance != 500 {
		t.Errorf("expected balance 500, got %d", ledger.balance)
	}
}
