package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/internal/model"
	"github.com/Empire688682/chipsub-mobile/src/internal/pricing"
	"github.com/Empire688682/chipsub-mobile/src/internal/repository"
	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
	"github.com/Empire688682/chipsub-mobile/src/pkg/storage"
)

// fakeBackend is a hand-rolled backend.Client double with call counters
// and optional gates to hold a call open.
type fakeBackend struct {
	mu sync.Mutex

	token string

	authCalls     int
	authBlockOnce bool
	authGate      chan struct{}
	authResp      *model.AuthResponse
	authErr       error

	registerResp *model.AuthResponse
	registerErr  error

	resetCalls int
	resetErr   error

	snapshotCalls int
	snapshotGate  chan struct{}
	snapshotData  *model.RealTimeData
	snapshotErr   error

	catalogCalls int
	catalogResp  *model.CatalogResponse
	catalogErr   error

	verifyCalls int
	verifyName  string
	verifyErr   error

	submitCalls int
	submitGate  chan struct{}
	submitResp  *model.SubmitResponse
	submitErr   error
	lastSubmit  *model.SubmitPurchaseRequest
}

func (f *fakeBackend) SetAuthToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeBackend) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeBackend) Authenticate(ctx context.Context, request *model.LoginRequest) (*model.AuthResponse, error) {
	f.mu.Lock()
	f.authCalls++
	call := f.authCalls
	gate := f.authGate
	block := f.authBlockOnce
	resp, err := f.authResp, f.authErr
	f.mu.Unlock()

	if block && call == 1 && gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (f *fakeBackend) Register(ctx context.Context, request *model.RegisterRequest) (*model.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResp, nil
}

func (f *fakeBackend) RequestPasswordReset(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetCalls++
	return f.resetErr
}

func (f *fakeBackend) FetchWalletSnapshot(ctx context.Context, userID string) (*model.RealTimeData, error) {
	f.mu.Lock()
	f.snapshotCalls++
	gate := f.snapshotGate
	data, err := f.snapshotData, f.snapshotErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *fakeBackend) FetchCatalog(ctx context.Context) (*model.CatalogResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalogCalls++
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.catalogResp, nil
}

func (f *fakeBackend) VerifyIdentifier(ctx context.Context, request *model.VerifyIdentifierRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCalls++
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.verifyName, nil
}

func (f *fakeBackend) SubmitPurchase(ctx context.Context, request *model.SubmitPurchaseRequest) (*model.SubmitResponse, error) {
	f.mu.Lock()
	f.submitCalls++
	f.lastSubmit = request
	gate := f.submitGate
	resp, err := f.submitResp, f.submitErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = &model.SubmitResponse{Success: true, Message: "ok"}
	}
	return resp, nil
}

func (f *fakeBackend) counts() (auth, snapshot, catalog, verify, submit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authCalls, f.snapshotCalls, f.catalogCalls, f.verifyCalls, f.submitCalls
}

// memStore is an in-memory storage.Store double.
type memStore struct {
	mu         sync.Mutex
	records    map[string][]byte
	failSet    bool
	failDelete bool
}

func newMemStore() *memStore {
	return &memStore{records: map[string][]byte{}}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.records[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("disk full")
	}
	s.records[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete {
		return errors.New("delete failed")
	}
	delete(s.records, key)
	return nil
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[key]
	return ok
}

type testCore struct {
	backend  *fakeBackend
	store    *memStore
	sessions *repository.SessionRepository
	session  *SessionUseCase
	sync     *SyncUseCase
	catalog  *CatalogUseCase
	purchase *PurchaseUseCase
}

func newTestCore() *testCore {
	fb := &fakeBackend{}
	store := newMemStore()
	sessions := repository.NewSessionRepository(store, []byte("test-secret"))
	logger := log.Log{}

	syncUseCase := NewSyncUseCase(logger, fb, time.Hour)
	catalogUseCase := NewCatalogUseCase(logger, fb, pricing.Policy{Kind: pricing.PolicyPercentage, Value: 3.5})
	sessionUseCase := NewSessionUseCase(logger, validator.New(), fb, sessions, syncUseCase, catalogUseCase)
	purchaseUseCase := NewPurchaseUseCase(logger, validator.New(), fb, catalogUseCase, syncUseCase, sessionUseCase, "1234")

	return &testCore{
		backend:  fb,
		store:    store,
		sessions: sessions,
		session:  sessionUseCase,
		sync:     syncUseCase,
		catalog:  catalogUseCase,
		purchase: purchaseUseCase,
	}
}

// signIn installs an authenticated session directly, bypassing the login
// round trip, and arms the sync schedule for userID.
func (c *testCore) signIn(userID string) {
	c.session.mu.Lock()
	c.session.session = &entity.Session{
		UserID:      userID,
		DisplayName: "Test User",
		AuthToken:   "tok-" + userID,
	}
	c.session.mu.Unlock()
	c.sync.Start(userID)
}

func dataCatalog() *model.CatalogResponse {
	return &model.CatalogResponse{
		Success: true,
		MobileNetwork: map[string][]model.ProductGroup{
			"MTN": {{Product: []model.ProductData{
				{ProductID: "mtn-1gb", ProductName: "1GB Monthly", ProductAmount: "500"},
				{ProductID: "mtn-2gb", ProductName: "2GB Monthly", ProductAmount: "980"},
			}}},
			"GOTV": {{Product: []model.ProductData{
				{ProductID: "gotv-max", ProductName: "GOtv Max", ProductAmount: "4850"},
			}}},
		},
	}
}

func walletData() *model.RealTimeData {
	return &model.RealTimeData{
		WalletBalance:     2500,
		CommissionBalance: 120,
		Transactions: []model.TransactionData{
			{ID: "tx-1", Type: "data", Amount: 520, Status: "success", Description: "1GB Monthly", CreatedAt: time.Now()},
		},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func validLogin() *model.LoginRequest {
	return &model.LoginRequest{Email: "ada@chipsub.ng", Password: "secret123"}
}

func validAuthResponse(userID string) *model.AuthResponse {
	return &model.AuthResponse{
		Success: true,
		Token:   "tok-" + userID,
		FinalUserData: &model.UserData{
			UserID: userID,
			Name:   "Ada Obi",
			Email:  "ada@chipsub.ng",
			Number: "08012345678",
		},
	}
}
