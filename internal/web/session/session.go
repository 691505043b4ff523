// Package session keeps admin logins in the fiber session storage.
//
// A login writes the identity as JSON under a random session id and hands the
// id to the browser in the "session" cookie. The storage is whatever the
// daemon configured: memory by default, mysql or postgres when the database
// engine matches.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"

	"github.com/dulha-dulhan/matrimony/internal/auth"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

const sessionIDBytes = 32

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Data represents the session data structure.
type Data struct {
	Identity auth.Identity `json:"identity"`
}

// Options configure the session cookie.
type Options struct {
	Expiry   time.Duration
	SameSite string
	// Secure marks the cookie https only. Disabled in dev mode.
	Secure bool
}

// Store reads and writes session data.
type Store struct {
	store *session.Store
	opts  Options
}

// New returns a store on top of storage. A nil storage selects in-memory storage.
func New(storage fiber.Storage, opts Options) *Store {
	return &Store{
		store: session.New(session.Config{
			Storage:        storage,
			Expiration:     opts.Expiry,
			KeyLookup:      "cookie:" + CookieName,
			CookieSameSite: opts.SameSite,
			CookieSecure:   opts.Secure,
			CookieHTTPOnly: true,
		}),
		opts: opts,
	}
}

// Write stores d under sessionID until the configured expiry.
func (s *Store) Write(sessionID string, d *Data) error {
	out, err := json.Marshal(d)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return s.store.Storage.Set(sessionID, out, s.opts.Expiry) //nolint:wrapcheck
}

// Read loads the data stored under sessionID.
func (s *Store) Read(sessionID string) (*Data, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	raw, err := s.store.Storage.Get(sessionID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if len(raw) == 0 {
		return nil, ErrSessionNotFound
	}

	d := new(Data)
	if err = json.Unmarshal(raw, d); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return d, nil
}

// Delete removes sessionID from the storage.
func (s *Store) Delete(sessionID string) error {
	if sessionID == "" {
		return nil
	}

	return s.store.Storage.Delete(sessionID) //nolint:wrapcheck
}

// Login creates a session for id and sets the cookie on c.
func (s *Store) Login(c *fiber.Ctx, id *auth.Identity) error {
	sessionID, err := GenerateSessionID()
	if err != nil {
		return err
	}

	if err = s.Write(sessionID, &Data{Identity: *id}); err != nil {
		return err
	}

	c.Cookie(s.cookie(sessionID, int(s.opts.Expiry.Seconds())))

	return nil
}

// Logout removes the session named by the request cookie and clears the cookie.
func (s *Store) Logout(c *fiber.Ctx) {
	if err := s.Delete(c.Cookies(CookieName)); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	c.Cookie(s.cookie("", -1))
}

// Authenticate implements auth.Authenticator.
func (s *Store) Authenticate(c *fiber.Ctx) (*auth.Identity, error) {
	d, err := s.Read(c.Cookies(CookieName))
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Error().Err(err).Msg("failed to read session")
		}

		return nil, auth.ErrUnauthenticated
	}

	if !d.Identity.IsAdmin() {
		return nil, auth.ErrUnauthenticated
	}

	return &d.Identity, nil
}

func (s *Store) cookie(value string, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: s.opts.SameSite,
	}
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err //nolint:wrapcheck
	}

	return hex.EncodeToString(b), nil
}
