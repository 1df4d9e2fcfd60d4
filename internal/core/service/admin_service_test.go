package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAdminRepo struct {
	byEmail map[string]*domain.Admin
	nextID  int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{byEmail: make(map[string]*domain.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if _, ok := r.byEmail[admin.Email]; ok {
		return nil, domain.ErrAdminExists
	}
	r.nextID++
	created := *admin
	created.ID = "admin_" + strconv.Itoa(r.nextID)
	r.byEmail[admin.Email] = &created
	return &created, nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	admin, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return admin, nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	for _, admin := range r.byEmail {
		if admin.ID == id {
			return admin, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

type stubSessionRepo struct {
	byToken map[string]*domain.AdminSession
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{byToken: make(map[string]*domain.AdminSession)}
}

func (r *stubSessionRepo) Insert(_ context.Context, session *domain.AdminSession) error {
	r.byToken[session.Token] = session
	return nil
}

func (r *stubSessionRepo) Find(_ context.Context, token string) (*domain.AdminSession, error) {
	session, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrSessionInvalid
	}
	return session, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.byToken, token)
	return nil
}

type stubActivityRepo struct {
	entries    []*domain.ActivityEntry
	lastFilter ports.ActivityFilter
}

func (r *stubActivityRepo) Insert(_ context.Context, entry *domain.ActivityEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubActivityRepo) List(_ context.Context, filter ports.ActivityFilter) ([]domain.ActivityEntry, error) {
	r.lastFilter = filter
	out := make([]domain.ActivityEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, nil
}

// stubThrottle counts failures in memory with a threshold of 3.
type stubThrottle struct {
	failures  map[string]int
	statusErr error
	resets    []string
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) Status(_ context.Context, key string) (bool, time.Duration, error) {
	if t.statusErr != nil {
		return false, 0, t.statusErr
	}
	if t.failures[key] >= 3 {
		return true, 15 * time.Minute, nil
	}
	return false, 0, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, key string) (bool, error) {
	t.failures[key]++
	return t.failures[key] >= 3, nil
}

func (t *stubThrottle) Reset(_ context.Context, key string) error {
	t.resets = append(t.resets, key)
	delete(t.failures, key)
	return nil
}

type stubRecorder struct {
	recorded []domain.ActivityEntry
}

func (r *stubRecorder) Record(entry domain.ActivityEntry) {
	r.recorded = append(r.recorded, entry)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type adminFixture struct {
	svc      *AdminService
	admins   *stubAdminRepo
	sessions *stubSessionRepo
	activity *stubActivityRepo
	throttle *stubThrottle
	recorder *stubRecorder
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	f := &adminFixture{
		admins:   newStubAdminRepo(),
		sessions: newStubSessionRepo(),
		activity: &stubActivityRepo{},
		throttle: newStubThrottle(),
		recorder: &stubRecorder{},
	}
	f.svc = NewAdminService(f.admins, f.sessions, f.activity, f.throttle, f.recorder, 30*time.Minute, zerolog.Nop())

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	f.admins.byEmail["root@example.com"] = &domain.Admin{
		ID:           "admin_root",
		Name:         "Root",
		Email:        "root@example.com",
		PasswordHash: string(hash),
		IsSuperAdmin: true,
	}
	return f
}

func signIn(f *adminFixture, email, password string) (*ports.AdminSignInResult, error) {
	return f.svc.SignIn(context.Background(), ports.AdminSignInInput{
		Email:    email,
		Password: password,
		IP:       "10.0.0.1",
	})
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAdminService_SignIn_HappyPath(t *testing.T) {
	f := newAdminFixture(t)

	result, err := signIn(f, "root@example.com", "correct-password")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Token == "" {
		t.Errorf("expected minted token")
	}
	if _, ok := f.sessions.byToken[result.Token]; !ok {
		t.Errorf("expected session persisted")
	}
	if len(f.recorder.recorded) != 1 || f.recorder.recorded[0].Action != "sign_in" {
		t.Errorf("expected sign_in audit entry, got %+v", f.recorder.recorded)
	}
}

func TestAdminService_SignIn_WrongPasswordCountsFailure(t *testing.T) {
	f := newAdminFixture(t)

	if _, err := signIn(f, "root@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if f.throttle.failures["root@example.com|10.0.0.1"] != 1 {
		t.Errorf("expected one recorded failure, got %v", f.throttle.failures)
	}
}

// Unknown emails burn throttle budget exactly like wrong passwords, so the
// error reveals nothing about which admins exist.
func TestAdminService_SignIn_UnknownEmailCountsFailure(t *testing.T) {
	f := newAdminFixture(t)

	if _, err := signIn(f, "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if f.throttle.failures["ghost@example.com|10.0.0.1"] != 1 {
		t.Errorf("expected failure recorded for unknown email")
	}
}

func TestAdminService_SignIn_LockoutBlocksEvenCorrectPassword(t *testing.T) {
	f := newAdminFixture(t)

	for i := 0; i < 3; i++ {
		_, _ = signIn(f, "root@example.com", "wrong")
	}

	_, err := signIn(f, "root@example.com", "correct-password")
	if !errors.Is(err, domain.ErrLockedOut) {
		t.Fatalf("expected ErrLockedOut, got: %v", err)
	}
}

func TestAdminService_SignIn_SuccessResetsThrottle(t *testing.T) {
	f := newAdminFixture(t)

	_, _ = signIn(f, "root@example.com", "wrong")
	if _, err := signIn(f, "root@example.com", "correct-password"); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if len(f.throttle.resets) != 1 {
		t.Errorf("expected throttle reset on success")
	}
}

// The throttle is a brake, not the credential check: if it errors the
// attempt proceeds.
func TestAdminService_SignIn_ThrottleFailureFailsOpen(t *testing.T) {
	f := newAdminFixture(t)
	f.throttle.statusErr = errors.New("redis down")

	if _, err := signIn(f, "root@example.com", "correct-password"); err != nil {
		t.Fatalf("expected fail-open success, got: %v", err)
	}
}

func TestAdminService_ValidateSession_RoundTrip(t *testing.T) {
	f := newAdminFixture(t)

	result, err := signIn(f, "root@example.com", "correct-password")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}

	admin, err := f.svc.ValidateSession(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("expected valid session, got: %v", err)
	}
	if admin.ID != "admin_root" {
		t.Errorf("expected admin_root, got %s", admin.ID)
	}
}

func TestAdminService_ValidateSession_ExpiredIsPurged(t *testing.T) {
	f := newAdminFixture(t)

	f.sessions.byToken["stale"] = &domain.AdminSession{
		Token:     "stale",
		AdminID:   "admin_root",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}

	if _, err := f.svc.ValidateSession(context.Background(), "stale"); !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got: %v", err)
	}
	if _, ok := f.sessions.byToken["stale"]; ok {
		t.Errorf("expected expired session purged")
	}
}

func TestAdminService_ValidateSession_UnknownToken(t *testing.T) {
	f := newAdminFixture(t)

	if _, err := f.svc.ValidateSession(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got: %v", err)
	}
}

func TestAdminService_SignOut_DeletesSession(t *testing.T) {
	f := newAdminFixture(t)

	result, _ := signIn(f, "root@example.com", "correct-password")
	f.svc.SignOut(context.Background(), result.Token)

	if _, ok := f.sessions.byToken[result.Token]; ok {
		t.Errorf("expected session removed")
	}
	// Signing out twice is harmless.
	f.svc.SignOut(context.Background(), result.Token)
}

func TestAdminService_CreateAdmin_RequiresSuperAdmin(t *testing.T) {
	f := newAdminFixture(t)

	_, err := f.svc.CreateAdmin(context.Background(), ports.CreateAdminInput{
		Creator:  &domain.Admin{ID: "admin_2", IsSuperAdmin: false},
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "password123",
	})
	if !errors.Is(err, domain.ErrNotSuperAdmin) {
		t.Fatalf("expected ErrNotSuperAdmin, got: %v", err)
	}
}

func TestAdminService_CreateAdmin_HappyPath(t *testing.T) {
	f := newAdminFixture(t)
	creator := f.admins.byEmail["root@example.com"]

	created, err := f.svc.CreateAdmin(context.Background(), ports.CreateAdminInput{
		Creator:     creator,
		Name:        "Nadia",
		Email:       "Nadia@Example.com",
		Password:    "password123",
		Permissions: []string{"catalog"},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if created.Email != "nadia@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
	if created.IsSuperAdmin {
		t.Errorf("co-admins must not be super admins")
	}
	if created.CreatedBy != creator.ID {
		t.Errorf("expected created_by %s, got %s", creator.ID, created.CreatedBy)
	}
}

// The audit read clamps the page size before the repository sees it.
func TestAdminService_ListActivity_ClampsLimit(t *testing.T) {
	f := newAdminFixture(t)

	cases := []struct {
		limit int
		want  int
	}{
		{0, defaultActivityLimit},
		{-1, defaultActivityLimit},
		{25, 25},
		{maxActivityLimit, maxActivityLimit},
		{500, maxActivityLimit},
	}
	for _, tc := range cases {
		if _, err := f.svc.ListActivity(context.Background(), ports.ActivityFilter{Limit: tc.limit}); err != nil {
			t.Fatalf("limit %d: list failed: %v", tc.limit, err)
		}
		if f.activity.lastFilter.Limit != tc.want {
			t.Errorf("limit %d: expected clamp to %d, got %d", tc.limit, tc.want, f.activity.lastFilter.Limit)
		}
	}
}

func TestAdminService_CreateAdmin_DuplicateEmail(t *testing.T) {
	f := newAdminFixture(t)
	creator := f.admins.byEmail["root@example.com"]

	input := ports.CreateAdminInput{Creator: creator, Name: "Olga", Email: "olga@example.com", Password: "password123"}
	if _, err := f.svc.CreateAdmin(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := f.svc.CreateAdmin(context.Background(), input); !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists, got: %v", err)
	}
}
