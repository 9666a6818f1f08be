package auth

import (
	"context"
	"strings"
	"testing"

	"anidex.org/internal/apperrors"
)

// fakeUserStore is an in-memory UserStore that counts writes.
type fakeUserStore struct {
	byID            map[string]Identity
	creates         int
	recoveryWrites  int
	lastRecoveryKey string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[string]Identity)}
}

func (f *fakeUserStore) Create(_ context.Context, identity Identity) error {
	f.creates++
	f.byID[identity.ID] = identity
	return nil
}

func (f *fakeUserStore) Find(_ context.Context, id string) (Identity, error) {
	identity, ok := f.byID[id]
	if !ok {
		return Identity{}, apperrors.ErrNotFound
	}
	return identity, nil
}

func (f *fakeUserStore) SetRecoveryKey(_ context.Context, id, key string) error {
	f.recoveryWrites++
	f.lastRecoveryKey = key
	identity := f.byID[id]
	identity.RecoveryKey = key
	f.byID[id] = identity
	return nil
}

func (f *fakeUserStore) FindByRecoveryKey(_ context.Context, key string) (Identity, error) {
	for _, identity := range f.byID {
		if identity.RecoveryKey == key {
			return identity, nil
		}
	}
	return Identity{}, apperrors.ErrNotFound
}

func newTestService(t *testing.T, store UserStore) *Service {
	t.Helper()
	svc, err := NewService(store, "test-secret", "master-key")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestIssueRejectsShortDisplayName(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(t, store)

	_, err := svc.Issue(context.Background(), "abc")
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.creates != 0 {
		t.Fatalf("no identity should be persisted, got %d creates", store.creates)
	}
}

func TestIssueAndResolveRoundTrip(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(t, store)

	token, err := svc.Issue(context.Background(), "misaki")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	identity, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if identity.Role != RoleUser {
		t.Fatalf("expected user role, got %v", identity.Role)
	}
	if identity.DisplayName != "misaki" {
		t.Fatalf("unexpected display name %q", identity.DisplayName)
	}
	stored, ok := store.byID[identity.ID]
	if !ok {
		t.Fatal("identity was not persisted")
	}
	if stored.DisplayName != identity.DisplayName || stored.Role != identity.Role {
		t.Fatalf("resolved identity diverges from stored: %+v vs %+v", identity, stored)
	}
	if identity.MalProfile != "" || identity.AnilistProfile != "" {
		t.Fatalf("absent optional claims must decode to unset, got %+v", identity)
	}
}

func TestIssueAdmin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(t, store)

	_, err := svc.IssueAdmin(context.Background(), "operator", "wrong-key")
	if apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if store.creates != 0 {
		t.Fatalf("wrong master key must not create an identity, got %d creates", store.creates)
	}

	token, err := svc.IssueAdmin(context.Background(), "operator", "master-key")
	if err != nil {
		t.Fatalf("IssueAdmin: %v", err)
	}
	identity, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if identity.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %v", identity.Role)
	}
}

func TestResolveRejectsTamperedToken(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(t, store)

	token, err := svc.Issue(context.Background(), "misaki")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip one character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	if _, err := svc.Resolve(strings.Join(parts, ".")); apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("expected unauthorized for tampered token, got %v", err)
	}

	if _, err := svc.Resolve("not-a-token"); apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("expected unauthorized for malformed token, got %v", err)
	}
}

func TestTokenSigningIsDeterministic(t *testing.T) {
	identity := Identity{ID: "fixed-id", DisplayName: "misaki", Role: RoleUser}
	secret := []byte("test-secret")

	first, err := signToken(identity, secret)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	second, err := signToken(identity, secret)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	if first != second {
		t.Fatal("same key and claims must produce the same signature")
	}

	other, err := signToken(identity, []byte("other-secret"))
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	if first == other {
		t.Fatal("a key change must change the signature")
	}
}

func TestRecoveryKeyIsIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(t, store)

	token, err := svc.Issue(context.Background(), "misaki")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	identity, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	first, err := svc.RecoveryKey(context.Background(), identity.ID)
	if err != nil {
		t.Fatalf("RecoveryKey: %v", err)
	}
	second, err := svc.RecoveryKey(context.Background(), identity.ID)
	if err != nil {
		t.Fatalf("RecoveryKey: %v", err)
	}
	if first != second {
		t.Fatalf("recovery key changed between calls: %q vs %q", first, second)
	}
	if store.recoveryWrites != 1 {
		t.Fatalf("recovery key must be persisted exactly once, got %d writes", store.recoveryWrites)
	}
}

func TestRecover(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(t, store)

	token, err := svc.Issue(context.Background(), "misaki")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	identity, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	key, err := svc.RecoveryKey(context.Background(), identity.ID)
	if err != nil {
		t.Fatalf("RecoveryKey: %v", err)
	}

	recovered, err := svc.Recover(context.Background(), key)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	got, err := svc.Resolve(recovered)
	if err != nil {
		t.Fatalf("Resolve recovered token: %v", err)
	}
	if got.ID != identity.ID || got.Role != identity.Role {
		t.Fatalf("recovered identity diverges: %+v vs %+v", got, identity)
	}

	if _, err := svc.Recover(context.Background(), "no-such-key"); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
