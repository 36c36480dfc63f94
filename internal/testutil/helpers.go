package testutil

import (
	"database/sql"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/config"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/service"
)

// TestAdminEmail is granted the admin role by the services built here.
const TestAdminEmail = "admin@example.com"

// Services bundles the services wired the way cmd/server wires them, over a
// shared key-value store.
type Services struct {
	KV           repository.KeyValueStore
	Registry     *service.StoreRegistry
	Transactions *service.TransactionService
	Sessions     *service.SessionService
	Alerts       *service.AlertService
	Admin        *service.AdminService
	System       *service.SystemService
}

// ServiceOption customizes NewTestServices.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	kv            repository.KeyValueStore
	retention     config.RetentionPolicy
	updateMissing config.UpdateMissingPolicy
	ttl           time.Duration
}

// WithKV replaces the default KVRepository, e.g. with a FailingKV.
func WithKV(kv repository.KeyValueStore) ServiceOption {
	return func(o *serviceOptions) { o.kv = kv }
}

// WithRetention sets the logout retention policy.
func WithRetention(p config.RetentionPolicy) ServiceOption {
	return func(o *serviceOptions) { o.retention = p }
}

// WithUpdateMissing sets the policy for updates of unknown ids.
func WithUpdateMissing(p config.UpdateMissingPolicy) ServiceOption {
	return func(o *serviceOptions) { o.updateMissing = p }
}

// WithSessionTTL sets the session token TTL.
func WithSessionTTL(ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) { o.ttl = ttl }
}

// NewTestServices wires every service over db with default policies.
//
// Example usage:
//
//	db := testutil.SetupTestDB(t)
//	svcs := testutil.NewTestServices(t, db, testutil.WithRetention(config.EraseOnLogout))
func NewTestServices(t *testing.T, db *sql.DB, opts ...ServiceOption) *Services {
	t.Helper()

	o := serviceOptions{
		kv:            repository.NewKVRepository(db),
		retention:     config.RetainOnLogout,
		updateMissing: config.IgnoreMissingUpdate,
		ttl:           time.Hour,
	}
	for _, opt := range opts {
		opt(&o)
	}

	registry := service.NewStoreRegistry(o.kv, o.updateMissing)
	auth := service.NewMockAuthenticator(service.NewEmailRoles([]string{TestAdminEmail}))

	return &Services{
		KV:           o.kv,
		Registry:     registry,
		Transactions: service.NewTransactionService(registry),
		Sessions:     service.NewSessionService(o.kv, auth, registry, NewTestKeys(t), o.ttl, o.retention, NewTestLogger()),
		Alerts:       service.NewAlertService(),
		Admin:        service.NewAdminService(o.kv),
		System:       service.NewSystemService(db),
	}
}

// NewTestTransactionStore creates a store bound to ownerID over kv.
func NewTestTransactionStore(t *testing.T, kv repository.KeyValueStore, ownerID string, updateMissing config.UpdateMissingPolicy) *service.TransactionStore {
	t.Helper()

	store := service.NewTransactionStore(kv, updateMissing)
	if err := store.Load(t.Context(), ownerID); err != nil {
		t.Fatalf("Failed to load transaction store: %v", err)
	}
	return store
}

// NewTestKeys generates a fresh fernet key set.
func NewTestKeys(t *testing.T) []*fernet.Key {
	t.Helper()

	var k fernet.Key
	if err := k.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return []*fernet.Key{&k}
}

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() *logrus.Logger {
	return logging.Discard()
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeEmail generates a unique email address for testing.
//
// Example usage:
//
//	email := testutil.MakeEmail("alice")
//	// Returns: "alice.x7k2p9@example.com"
func MakeEmail(base string) string {
	if base == "" {
		base = "user"
	}
	return base + "." + strings.ToLower(randomAlphanumeric(6)) + "@example.com"
}

// MakeTransactionName generates a unique transaction name for testing.
//
// Example usage:
//
//	name := testutil.MakeTransactionName("Salary")
//	// Returns: "Salary XYZ789"
func MakeTransactionName(base string) string {
	if base == "" {
		base = "Transaction"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
