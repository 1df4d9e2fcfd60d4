package domain

import (
	"errors"
	"time"
)

var ErrAdminNotFound = errors.New("admin not found")
var ErrAdminExists = errors.New("admin already exists")
var ErrSessionInvalid = errors.New("admin session invalid")
var ErrNotSuperAdmin = errors.New("super admin privileges required")
var ErrLockedOut = errors.New("too many failed attempts")

// Admin is a back-office identity. Admins live in their own namespace and
// never authenticate through the end-user auth flow.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	Permissions  []string  `json:"permissions"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminSession is a server-minted opaque token bound to one admin. Sessions
// expire server-side; a session past ExpiresAt must be treated exactly like
// a missing one.
type AdminSession struct {
	Token     string    `json:"token"`
	AdminID   string    `json:"admin_id"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at time now.
func (s *AdminSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ActivityEntry is one row of the admin audit trail.
type ActivityEntry struct {
	ID         string    `json:"id,omitempty"`
	AdminID    string    `json:"admin_id"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	TargetType string    `json:"target_type,omitempty"`
	TargetID   string    `json:"target_id,omitempty"`
	LoggedAt   time.Time `json:"logged_at"`
}
