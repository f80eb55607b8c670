package repository

import (
	"context"
	"encoding/json"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/pkg/crypto"
	"github.com/Empire688682/chipsub-mobile/src/pkg/storage"
)

// SessionKey is the single well-known key the session record lives under.
const SessionKey = "userData"

// SessionRepository persists the one local record the core owns: the
// serialized session, sealed at rest.
type SessionRepository struct {
	Store  storage.Store
	Secret []byte
}

func NewSessionRepository(store storage.Store, secret []byte) *SessionRepository {
	return &SessionRepository{Store: store, Secret: secret}
}

// Load reads the persisted session. Missing records return
// storage.ErrNotFound; corrupt or unreadable records return their error
// and the caller decides how soft to fail.
func (r *SessionRepository) Load(ctx context.Context) (*entity.Session, error) {
	sealed, err := r.Store.Get(ctx, SessionKey)
	if err != nil {
		return nil, err
	}
	plain, err := crypto.Open(r.Secret, sealed)
	if err != nil {
		return nil, err
	}
	var session entity.Session
	if err := json.Unmarshal(plain, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	plain, err := json.Marshal(session)
	if err != nil {
		return err
	}
	sealed, err := crypto.Seal(r.Secret, plain)
	if err != nil {
		return err
	}
	return r.Store.Set(ctx, SessionKey, sealed)
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.Store.Delete(ctx, SessionKey)
}
