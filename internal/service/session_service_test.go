package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/config"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/service"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/testutil"
)

// TestSessionService_Login tests opening sessions through the mocked authenticator.
//
// WHY: Login is presence-checked only, but it must still reject blank
// credentials, derive a stable identity, and classify admins from config.
func TestSessionService_Login(t *testing.T) {
	t.Run("any non-empty credentials succeed", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)
		email := testutil.MakeEmail("alice")

		// Execute
		resp, err := svcs.Sessions.Login(t.Context(), request.LoginRequest{Email: email, Password: "x"})

		// Assert
		if err != nil {
			t.Fatalf("Login() returned unexpected error: %v", err)
		}
		if resp.Token == "" {
			t.Error("Expected a session token")
		}
		if resp.Identity.Email != email {
			t.Errorf("Expected email %s, got %s", email, resp.Identity.Email)
		}
		if resp.Identity.IsAdmin || resp.Identity.Role != model.RoleUser {
			t.Errorf("Expected regular user, got %+v", resp.Identity)
		}
		testutil.AssertKeyCount(t, db, "session_", 1)
	})

	t.Run("missing email or password is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		cases := []request.LoginRequest{
			{Email: "", Password: "x"},
			{Email: "a@example.com", Password: ""},
			{Email: "   ", Password: "x"},
		}
		for _, req := range cases {
			if _, err := svcs.Sessions.Login(t.Context(), req); !errors.Is(err, apperrors.ErrMissingCredentials) {
				t.Errorf("Login(%+v): expected ErrMissingCredentials, got %v", req, err)
			}
		}
		testutil.AssertKeyCount(t, db, "session_", 0)
	})

	t.Run("configured admin email gets admin role", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		resp, err := svcs.Sessions.Login(t.Context(), request.LoginRequest{Email: "Admin@Example.com", Password: "x"})

		if err != nil {
			t.Fatalf("Login() returned unexpected error: %v", err)
		}
		if !resp.Identity.IsAdmin || resp.Identity.Role != model.RoleAdmin {
			t.Errorf("Expected admin identity, got %+v", resp.Identity)
		}
	})

	t.Run("same email maps to the same identity id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		a := testutil.LoginAs(t, svcs.Sessions, "bob@example.com")
		b := testutil.LoginAs(t, svcs.Sessions, " BOB@example.com ")

		if a.Identity.ID != b.Identity.ID {
			t.Errorf("Expected identical ids, got %s and %s", a.Identity.ID, b.Identity.ID)
		}
		if a.Token == b.Token {
			t.Error("Expected distinct session tokens")
		}
	})
}

func TestSessionService_Signup(t *testing.T) {
	t.Run("stores whatsapp number", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		resp, err := svcs.Sessions.Signup(t.Context(), request.SignupRequest{
			Email:           testutil.MakeEmail("carol"),
			Password:        "pw",
			ConfirmPassword: "pw",
			WhatsappNumber:  "+911234567890",
		})

		if err != nil {
			t.Fatalf("Signup() returned unexpected error: %v", err)
		}
		if resp.Identity.WhatsappNumber != "+911234567890" {
			t.Errorf("Expected whatsapp number, got '%s'", resp.Identity.WhatsappNumber)
		}

		sess, err := svcs.Sessions.Current(t.Context(), resp.Token)
		if err != nil {
			t.Fatalf("Current() returned unexpected error: %v", err)
		}
		if sess.Identity.WhatsappNumber != "+911234567890" {
			t.Errorf("Expected persisted whatsapp number, got '%s'", sess.Identity.WhatsappNumber)
		}
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		_, err := svcs.Sessions.Signup(t.Context(), request.SignupRequest{Email: "a@example.com", Password: "pw"})

		if !errors.Is(err, apperrors.ErrMissingSignupFields) {
			t.Errorf("Expected ErrMissingSignupFields, got %v", err)
		}
	})

	t.Run("password mismatch is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		_, err := svcs.Sessions.Signup(t.Context(), request.SignupRequest{
			Email: "a@example.com", Password: "pw", ConfirmPassword: "other",
		})

		if !errors.Is(err, apperrors.ErrPasswordMismatch) {
			t.Errorf("Expected ErrPasswordMismatch, got %v", err)
		}
		testutil.AssertKeyCount(t, db, "session_", 0)
	})
}

func TestSessionService_Current(t *testing.T) {
	t.Run("resolves a valid token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)
		resp := testutil.LoginAs(t, svcs.Sessions, testutil.MakeEmail("dan"))

		sess, err := svcs.Sessions.Current(t.Context(), resp.Token)

		if err != nil {
			t.Fatalf("Current() returned unexpected error: %v", err)
		}
		if sess.Identity.ID != resp.Identity.ID {
			t.Errorf("Expected identity %s, got %s", resp.Identity.ID, sess.Identity.ID)
		}
	})

	t.Run("empty token is unauthenticated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		if _, err := svcs.Sessions.Current(t.Context(), ""); !errors.Is(err, apperrors.ErrUnauthenticated) {
			t.Errorf("Expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("forged token is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		if _, err := svcs.Sessions.Current(t.Context(), "not-a-token"); !errors.Is(err, apperrors.ErrInvalidSession) {
			t.Errorf("Expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("token from another key is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		issuer := testutil.NewTestServices(t, db)
		verifier := testutil.NewTestServices(t, db)
		resp := testutil.LoginAs(t, issuer.Sessions, testutil.MakeEmail("eve"))

		if _, err := verifier.Sessions.Current(t.Context(), resp.Token); !errors.Is(err, apperrors.ErrInvalidSession) {
			t.Errorf("Expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db, testutil.WithSessionTTL(time.Second))
		resp := testutil.LoginAs(t, svcs.Sessions, testutil.MakeEmail("fay"))

		// fernet timestamps have one second resolution
		time.Sleep(2100 * time.Millisecond)

		if _, err := svcs.Sessions.Current(t.Context(), resp.Token); !errors.Is(err, apperrors.ErrInvalidSession) {
			t.Errorf("Expected ErrInvalidSession, got %v", err)
		}
	})
}

// TestSessionService_Logout tests closing sessions under both retention policies.
//
// WHY: Logout decides whether a user's data survives. Under retain the next
// login must see the same collection; under erase it must be gone.
func TestSessionService_Logout(t *testing.T) {
	t.Run("retain keeps the collection for the next login", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)
		email := testutil.MakeEmail("gus")
		resp := testutil.LoginAs(t, svcs.Sessions, email)

		created, err := svcs.Transactions.CreateTransaction(t.Context(), resp.Identity.ID, testutil.NewTransaction().Request())
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		if err := svcs.Sessions.Logout(t.Context(), resp.Token); err != nil {
			t.Fatalf("Logout() returned unexpected error: %v", err)
		}
		if svcs.Registry.Loaded() != 0 {
			t.Errorf("Expected store evicted, %d still loaded", svcs.Registry.Loaded())
		}
		if _, err := svcs.Sessions.Current(t.Context(), resp.Token); !errors.Is(err, apperrors.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound after logout, got %v", err)
		}

		again := testutil.LoginAs(t, svcs.Sessions, email)
		list, err := svcs.Transactions.GetTransactions(t.Context(), again.Identity.ID)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(list) != 1 || list[0].ID != created.ID {
			t.Errorf("Expected retained transaction %s, got %+v", created.ID, list)
		}
	})

	t.Run("retain keeps the store while another session of the owner is open", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)
		email := testutil.MakeEmail("ida")
		first := testutil.LoginAs(t, svcs.Sessions, email)
		second := testutil.LoginAs(t, svcs.Sessions, email)

		if got := svcs.Registry.Sessions(first.Identity.ID); got != 2 {
			t.Fatalf("Expected 2 attached sessions, got %d", got)
		}

		if err := svcs.Sessions.Logout(t.Context(), first.Token); err != nil {
			t.Fatalf("Logout() returned unexpected error: %v", err)
		}
		if svcs.Registry.Loaded() != 1 {
			t.Errorf("Expected store kept for the open session, %d loaded", svcs.Registry.Loaded())
		}

		if err := svcs.Sessions.Logout(t.Context(), second.Token); err != nil {
			t.Fatalf("Logout() returned unexpected error: %v", err)
		}
		if svcs.Registry.Loaded() != 0 {
			t.Errorf("Expected store evicted after the last session, %d loaded", svcs.Registry.Loaded())
		}
	})

	t.Run("erase deletes the persisted collection", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db, testutil.WithRetention(config.EraseOnLogout))
		email := testutil.MakeEmail("hal")
		resp := testutil.LoginAs(t, svcs.Sessions, email)

		if _, err := svcs.Transactions.CreateTransaction(t.Context(), resp.Identity.ID, testutil.NewTransaction().Request()); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		testutil.AssertKeyCount(t, db, service.ScopeKey(resp.Identity.ID), 1)

		if err := svcs.Sessions.Logout(t.Context(), resp.Token); err != nil {
			t.Fatalf("Logout() returned unexpected error: %v", err)
		}

		testutil.AssertKeyCount(t, db, service.ScopeKey(resp.Identity.ID), 0)
		again := testutil.LoginAs(t, svcs.Sessions, email)
		list, _ := svcs.Transactions.GetTransactions(t.Context(), again.Identity.ID)
		if len(list) != 0 {
			t.Errorf("Expected empty collection after erase, got %d", len(list))
		}
	})

	t.Run("invalid token cannot log out", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)

		if err := svcs.Sessions.Logout(t.Context(), "bogus"); !errors.Is(err, apperrors.ErrInvalidSession) {
			t.Errorf("Expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("failed delete keeps the session", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		kv := testutil.NewFailingKV(testutil.NewTestServices(t, db).KV)
		svcs := testutil.NewTestServices(t, db, testutil.WithKV(kv))
		resp := testutil.LoginAs(t, svcs.Sessions, testutil.MakeEmail("ida"))

		kv.FailWrites(true)
		err := svcs.Sessions.Logout(t.Context(), resp.Token)

		if !errors.Is(err, apperrors.ErrFailedToEndSession) {
			t.Errorf("Expected ErrFailedToEndSession, got %v", err)
		}
		kv.FailWrites(false)
		if _, err := svcs.Sessions.Current(t.Context(), resp.Token); err != nil {
			t.Errorf("Expected session still valid, got %v", err)
		}
	})
}

func TestIdentityID(t *testing.T) {
	a := service.IdentityID("User@Example.com")
	b := service.IdentityID("user@example.com")
	c := service.IdentityID("other@example.com")

	if a != b {
		t.Errorf("Expected case-insensitive ids, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different emails to get different ids")
	}
}

func TestLoadSessionKeys(t *testing.T) {
	t.Run("generates a key when empty", func(t *testing.T) {
		keys, err := service.LoadSessionKeys("")
		if err != nil {
			t.Fatalf("LoadSessionKeys() returned unexpected error: %v", err)
		}
		if len(keys) != 1 {
			t.Errorf("Expected 1 key, got %d", len(keys))
		}
	})

	t.Run("decodes an encoded key", func(t *testing.T) {
		generated := testutil.NewTestKeys(t)[0].Encode()

		keys, err := service.LoadSessionKeys(generated)
		if err != nil {
			t.Fatalf("LoadSessionKeys() returned unexpected error: %v", err)
		}
		if keys[0].Encode() != generated {
			t.Error("Expected decoded key to match")
		}
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		if _, err := service.LoadSessionKeys("short"); err == nil {
			t.Error("Expected error for malformed key")
		}
	})
}
