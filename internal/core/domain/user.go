package domain

import (
	"strings"
	"time"
)

const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// MaxPasswordLength is the longest password in bytes that bcrypt can hash.
const MaxPasswordLength = 72

// Profile is the personal information every account carries.
type Profile struct {
	FirstName string
	LastName  string
	Avatar    string
	Bio       string
	Location  string
	Phone     string
}

// PortfolioEntry is a single showcase item on a freelancer profile.
type PortfolioEntry struct {
	Title       string
	Description string
	URL         string
	Image       string
}

// FreelancerProfile holds the freelancer-only part of an account.
type FreelancerProfile struct {
	Skills        []string
	HourlyRate    float64
	Portfolio     []PortfolioEntry
	Experience    string
	Rating        float64
	CompletedJobs int
}

// ClientProfile holds the client-only part of an account.
type ClientProfile struct {
	CompanyName string
	Industry    string
	PostedJobs  int
}

// User models a registered account. PasswordHash is never serialised.
type User struct {
	ID                string
	Email             string
	PasswordHash      string
	Role              string
	Profile           Profile
	FreelancerProfile *FreelancerProfile
	ClientProfile     *ClientProfile
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UserCounter names a numeric counter on a user's role sub-profile.
type UserCounter string

const (
	CounterPostedJobs    UserCounter = "posted_jobs"
	CounterCompletedJobs UserCounter = "completed_jobs"
)

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidRole reports whether role is one of the registrable roles.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleFreelancer
}
