package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

const (
	defaultSessionTTL    = 30 * time.Minute
	defaultActivityLimit = 50
	maxActivityLimit     = 200
	actionSignIn         = "sign_in"
	actionSignOut        = "sign_out"
	actionCreateAdmin    = "create_admin"
)

// LoginThrottle abstracts the failed-attempt counter (Redis). Keys are
// caller-chosen; this service uses email|ip so one noisy source cannot lock
// an admin out from everywhere.
type LoginThrottle interface {
	// Status reports whether key is locked and for how much longer.
	Status(ctx context.Context, key string) (locked bool, retryAfter time.Duration, err error)
	// RecordFailure bumps the counter and reports whether the lockout
	// threshold was just crossed.
	RecordFailure(ctx context.Context, key string) (locked bool, err error)
	// Reset clears the counter and any lockout for key.
	Reset(ctx context.Context, key string) error
}

// ActivityRecorder accepts audit entries for asynchronous persistence.
type ActivityRecorder interface {
	Record(entry domain.ActivityEntry)
}

// AdminService implements back-office authentication: throttled login,
// session minting/validation/invalidation, co-admin creation, audit reads.
type AdminService struct {
	admins     ports.AdminRepository
	sessions   ports.AdminSessionRepository
	activity   ports.ActivityRepository
	throttle   LoginThrottle
	recorder   ActivityRecorder
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAdminService(
	admins ports.AdminRepository,
	sessions ports.AdminSessionRepository,
	activity ports.ActivityRepository,
	throttle LoginThrottle,
	recorder ActivityRecorder,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AdminService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AdminService{
		admins:     admins,
		sessions:   sessions,
		activity:   activity,
		throttle:   throttle,
		recorder:   recorder,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// SignIn is the single-round-trip admin login: throttle check, credential
// verification, session minting, and audit in one call. A locked key is
// rejected before the credential check so brute force never reaches bcrypt.
func (s *AdminService) SignIn(ctx context.Context, input ports.AdminSignInInput) (*ports.AdminSignInResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	key := throttleKey(email, input.IP)
	if locked, retryAfter, err := s.throttle.Status(ctx, key); err != nil {
		// Fail open: the throttle is a brake, not the authentication control.
		s.log.Warn().Err(err).Msg("throttle status check failed, allowing attempt")
	} else if locked {
		return nil, fmt.Errorf("%w: retry in %s", domain.ErrLockedOut, retryAfter.Round(time.Second))
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			s.recordFailure(ctx, key, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)) != nil {
		s.recordFailure(ctx, key, email)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("throttle reset failed")
	}

	now := time.Now().UTC()
	session := &domain.AdminSession{
		Token:     uuid.NewString(),
		AdminID:   admin.ID,
		IP:        input.IP,
		UserAgent: input.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("mint session: %w", err)
	}

	s.recorder.Record(domain.ActivityEntry{
		AdminID:  admin.ID,
		Action:   actionSignIn,
		Details:  "ip=" + input.IP,
		LoggedAt: now,
	})
	s.log.Info().Str("admin_id", admin.ID).Msg("admin signed in")

	return &ports.AdminSignInResult{Token: session.Token, Admin: admin}, nil
}

// ValidateSession resolves a session token to its admin. Unknown and expired
// tokens are indistinguishable to the caller; expired sessions are purged so
// storage does not accumulate dead rows.
func (s *AdminService) ValidateSession(ctx context.Context, token string) (*domain.Admin, error) {
	if token == "" {
		return nil, domain.ErrSessionInvalid
	}

	session, err := s.sessions.Find(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionInvalid) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	if session.Expired(time.Now().UTC()) {
		if delErr := s.sessions.Delete(ctx, token); delErr != nil {
			s.log.Warn().Err(delErr).Msg("failed to purge expired session")
		}
		return nil, domain.ErrSessionInvalid
	}

	admin, err := s.admins.FindByID(ctx, session.AdminID)
	if err != nil {
		return nil, domain.ErrSessionInvalid
	}
	return admin, nil
}

// SignOut deletes the session best-effort. Failures are logged and swallowed:
// sign-out must never leave the caller believing it is still authenticated.
func (s *AdminService) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}

	session, err := s.sessions.Find(ctx, token)
	if err == nil {
		s.recorder.Record(domain.ActivityEntry{
			AdminID:  session.AdminID,
			Action:   actionSignOut,
			LoggedAt: time.Now().UTC(),
		})
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("session invalidation failed")
	}
}

// CreateAdmin creates a co-admin. The super-admin check runs before any
// write; the creator identity comes from a validated session, never from the
// request payload.
func (s *AdminService) CreateAdmin(ctx context.Context, input ports.CreateAdminInput) (*domain.Admin, error) {
	if input.Creator == nil || !input.Creator.IsSuperAdmin {
		return nil, domain.ErrNotSuperAdmin
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		Permissions:  input.Permissions,
		CreatedBy:    input.Creator.ID,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.admins.Create(ctx, admin)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(domain.ActivityEntry{
		AdminID:    input.Creator.ID,
		Action:     actionCreateAdmin,
		TargetType: "admin",
		TargetID:   created.ID,
		LoggedAt:   time.Now().UTC(),
	})
	s.log.Info().Str("admin_id", created.ID).Str("created_by", input.Creator.ID).Msg("co-admin created")

	return created, nil
}

// ListActivity reads the audit trail with a capped page size.
func (s *AdminService) ListActivity(ctx context.Context, filter ports.ActivityFilter) ([]domain.ActivityEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultActivityLimit
	}
	if filter.Limit > maxActivityLimit {
		filter.Limit = maxActivityLimit
	}
	return s.activity.List(ctx, filter)
}

func (s *AdminService) recordFailure(ctx context.Context, key, email string) {
	locked, err := s.throttle.RecordFailure(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("throttle record failed")
		return
	}
	if locked {
		s.log.Warn().Str("email", email).Msg("admin login locked out")
	}
}

func throttleKey(email, ip string) string {
	return email + "|" + ip
}
