package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/internal/errs"
	"github.com/Empire688682/chipsub-mobile/src/internal/gateway/backend"
	"github.com/Empire688682/chipsub-mobile/src/internal/model"
	"github.com/Empire688682/chipsub-mobile/src/internal/model/converter"
	"github.com/Empire688682/chipsub-mobile/src/internal/repository"
	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
	"github.com/Empire688682/chipsub-mobile/src/pkg/storage"
	"github.com/Empire688682/chipsub-mobile/src/pkg/token"
)

// SessionUseCase owns the authenticated session: at most one exists in
// memory at a time, and its token is the only record persisted locally.
type SessionUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Backend  backend.Client
	Sessions *repository.SessionRepository
	Sync     *SyncUseCase
	Catalog  *CatalogUseCase

	mu          sync.Mutex
	session     *entity.Session
	loginCancel context.CancelFunc
}

func NewSessionUseCase(
	logger log.Log,
	validate *validator.Validate,
	client backend.Client,
	sessions *repository.SessionRepository,
	syncUseCase *SyncUseCase,
	catalogUseCase *CatalogUseCase,
) *SessionUseCase {
	return &SessionUseCase{
		Log:      logger,
		Validate: validate,
		Backend:  client,
		Sessions: sessions,
		Sync:     syncUseCase,
		Catalog:  catalogUseCase,
	}
}

// Current returns a copy of the active session, or nil when signed out.
func (c *SessionUseCase) Current() *entity.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	session := *c.session
	return &session
}

func (c *SessionUseCase) IsAuthenticated() bool {
	return c.Current().IsAuthenticated()
}

// Restore reads the persisted session at process start. It fails soft:
// missing, corrupt or expired records leave the app signed out without
// an error and without any network call.
func (c *SessionUseCase) Restore(ctx context.Context) *entity.Session {
	session, err := c.Sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.Log.Warn("session-restore", err.Error(), "Restore", "")
		}
		return nil
	}
	if !session.IsAuthenticated() || token.Expired(session.AuthToken, time.Now()) {
		if err := c.Sessions.Clear(ctx); err != nil {
			c.Log.Warn("session-restore", err.Error(), "clear-expired", "")
		}
		return nil
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	c.afterAuth(ctx, session)
	return c.Current()
}

// Login authenticates and replaces the active session. Concurrent login
// attempts are last-write-wins: a new call cancels the in-flight one, and
// the superseded attempt returns without mutating anything.
func (c *SessionUseCase) Login(ctx context.Context, request *model.LoginRequest) (*entity.Session, error) {
	if err := c.Validate.Struct(request); err != nil {
		return nil, &errs.ValidationError{Field: "credentials", Reason: err.Error()}
	}

	attemptCtx := c.beginAttempt(ctx)
	resp, err := c.Backend.Authenticate(attemptCtx, request)
	if err != nil {
		return nil, c.attemptFailed(attemptCtx, "login", err)
	}
	return c.installSession(ctx, attemptCtx, converter.AuthToSession(resp.FinalUserData, resp.Token))
}

// Register creates an account and signs in with the returned session.
func (c *SessionUseCase) Register(ctx context.Context, request *model.RegisterRequest) (*entity.Session, error) {
	if err := c.Validate.Struct(request); err != nil {
		return nil, &errs.ValidationError{Field: "profile", Reason: err.Error()}
	}

	attemptCtx := c.beginAttempt(ctx)
	resp, err := c.Backend.Register(attemptCtx, request)
	if err != nil {
		return nil, c.attemptFailed(attemptCtx, "register", err)
	}
	return c.installSession(ctx, attemptCtx, converter.AuthToSession(resp.FinalUserData, resp.Token))
}

// RequestPasswordReset is fire-and-forget against the backend; failures
// are reported to the caller once, never retried automatically.
func (c *SessionUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	request := &model.PasswordResetRequest{Email: email}
	if err := c.Validate.Struct(request); err != nil {
		return &errs.ValidationError{Field: "email", Reason: err.Error()}
	}
	if err := c.Backend.RequestPasswordReset(ctx, email); err != nil {
		c.Log.Error("password-reset", err.Error(), "RequestPasswordReset", email)
		return err
	}
	return nil
}

// Logout clears credentials unconditionally and never fails the caller.
// The sync timer stops before credentials are cleared so no refresh fires
// against a half-torn-down session.
func (c *SessionUseCase) Logout(ctx context.Context) {
	c.mu.Lock()
	if c.loginCancel != nil {
		c.loginCancel()
		c.loginCancel = nil
	}
	c.mu.Unlock()

	c.Sync.Stop()
	c.Backend.SetAuthToken("")

	if err := c.Sessions.Clear(ctx); err != nil {
		c.Log.Warn("session-clear", err.Error(), "Logout", "")
	}

	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// beginAttempt supersedes any in-flight login/register attempt.
func (c *SessionUseCase) beginAttempt(ctx context.Context) context.Context {
	attemptCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	if c.loginCancel != nil {
		c.loginCancel()
	}
	c.loginCancel = cancel
	c.mu.Unlock()
	return attemptCtx
}

func (c *SessionUseCase) attemptFailed(attemptCtx context.Context, op string, err error) error {
	if ctxErr := attemptCtx.Err(); ctxErr != nil {
		return ctxErr
	}
	var authErr *errs.AuthenticationFailed
	if errors.As(err, &authErr) {
		c.Log.Warn("session-"+op, authErr.Message, op, "")
		return err
	}
	c.Log.Error("session-"+op, err.Error(), op, "")
	return err
}

// installSession persists and activates the session won by this attempt.
// The token is durably persisted before the sync timer starts.
func (c *SessionUseCase) installSession(ctx, attemptCtx context.Context, session *entity.Session) (*entity.Session, error) {
	c.mu.Lock()
	if attemptCtx.Err() != nil {
		c.mu.Unlock()
		return nil, attemptCtx.Err()
	}
	if err := c.Sessions.Save(ctx, session); err != nil {
		c.mu.Unlock()
		c.Log.Error("session-save", err.Error(), "installSession", session.UserID)
		return nil, err
	}
	c.session = session
	c.loginCancel = nil
	c.mu.Unlock()

	c.afterAuth(ctx, session)
	active := *session
	return &active, nil
}

// afterAuth wires the authenticated collaborators: bearer token on the
// gateway, the interval sync with one cold fetch, and the catalog load.
func (c *SessionUseCase) afterAuth(ctx context.Context, session *entity.Session) {
	c.Backend.SetAuthToken(session.AuthToken)
	c.Sync.Start(session.UserID)
	c.Sync.RefreshNow(ctx)
	if err := c.Catalog.Load(ctx); err != nil {
		c.Log.Warn("catalog-load", err.Error(), "afterAuth", session.UserID)
	}
}
