package services

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/auth"
	"github.com/dmitrijs2005/blogauth/internal/server/cache"
	"github.com/dmitrijs2005/blogauth/internal/server/config"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
	resettokensrepo "github.com/dmitrijs2005/blogauth/internal/server/repositories/resettokens"
	sessionsrepo "github.com/dmitrijs2005/blogauth/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/blogauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/blogauth/internal/server/tasks"
)

// --- in-memory fakes ---

type memUsers struct {
	mu       sync.Mutex
	nextID   int64
	byEmail  map[string]*models.User
	getCalls int

	lastLoginIDs []int64
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = m.nextID
	u.IsActive = true
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byEmail[strings.ToLower(u.Email)] = &cp
	return u, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	u, ok := m.byEmail[strings.ToLower(email)]
	if !ok || !u.IsActive {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdateLastLogin(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLoginIDs = append(m.lastLoginIDs, userID)
	return nil
}

func (m *memUsers) UpdatePassword(ctx context.Context, email string, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

type sessionRecord struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

type memSessions struct {
	mu      sync.Mutex
	records []sessionRecord
}

func (m *memSessions) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, sessionRecord{UserID: userID, Token: token, ExpiresAt: expiresAt})
	return nil
}

type resetRow struct {
	UserID    int64
	ExpiresAt time.Time
}

type memResetTokens struct {
	mu     sync.Mutex
	users  *memUsers
	tokens map[string]resetRow
}

func newMemResetTokens(users *memUsers) *memResetTokens {
	return &memResetTokens{users: users, tokens: map[string]resetRow{}}
}

func (m *memResetTokens) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = resetRow{UserID: userID, ExpiresAt: time.Now().Add(validity)}
	return nil
}

func (m *memResetTokens) FindValid(ctx context.Context, email string, token string) (*models.PasswordResetToken, error) {
	u, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.tokens[token]
	if !ok || row.UserID != u.ID || !row.ExpiresAt.After(time.Now()) {
		return nil, common.ErrorNotFound
	}
	return &models.PasswordResetToken{UserID: row.UserID, Token: token, ExpiresAt: row.ExpiresAt}, nil
}

func (m *memResetTokens) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

func (m *memResetTokens) issued() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.tokens))
	for t := range m.tokens {
		out = append(out, t)
	}
	return out
}

type fakeRepoManager struct {
	users    *memUsers
	sessions *memSessions
	resets   *memResetTokens
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.users }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository       { return m.sessions }
func (m *fakeRepoManager) ResetTokens(db dbx.DBTX) resettokensrepo.Repository { return m.resets }

type sentEmail struct {
	Kind, To, IP, UserAgent, Link string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeSender) SendWelcome(ctx context.Context, fullName, to string) error {
	f.record(sentEmail{Kind: "welcome", To: to})
	return nil
}

func (f *fakeSender) SendLoginAlert(ctx context.Context, fullName, to, ip, ua string) error {
	f.record(sentEmail{Kind: "login_alert", To: to, IP: ip, UserAgent: ua})
	return nil
}

func (f *fakeSender) SendResetRequest(ctx context.Context, fullName, to, link string) error {
	f.record(sentEmail{Kind: "reset_request", To: to, Link: link})
	return nil
}

func (f *fakeSender) SendResetConfirmation(ctx context.Context, fullName, to string) error {
	f.record(sentEmail{Kind: "reset_confirmation", To: to})
	return nil
}

func (f *fakeSender) record(e sentEmail) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
}

func (f *fakeSender) byKind(kind string) []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentEmail
	for _, e := range f.sent {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type fakePublisher struct {
	mu    sync.Mutex
	lines []string
}

func (f *fakePublisher) Publish(ctx context.Context, line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, line)
	return nil
}

func (f *fakePublisher) Close() {}

func (f *fakePublisher) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

// --- harness ---

type fixture struct {
	svc        *AuthService
	mock       sqlmock.Sqlmock
	users      *memUsers
	sessions   *memSessions
	resets     *memResetTokens
	sender     *fakeSender
	publisher  *fakePublisher
	dispatcher *tasks.Dispatcher
	issuer     *auth.TokenIssuer
}

// drain waits for all queued background tasks to finish.
func (f *fixture) drain() {
	f.dispatcher.Close()
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	users := newMemUsers()
	sessions := &memSessions{}
	resets := newMemResetTokens(users)
	rm := &fakeRepoManager{users: users, sessions: sessions, resets: resets}

	issuer, err := auth.NewTokenIssuer("test-secret", "blogauth", "blogauth-api", time.Hour)
	require.NoError(t, err)

	dispatcher := tasks.NewDispatcher(logger, 1, 32, time.Second)
	t.Cleanup(dispatcher.Close)

	sender := &fakeSender{}
	publisher := &fakePublisher{}

	cfg := &config.Config{
		ResetTokenValidityDuration: time.Hour,
		ResetLinkBaseURL:           "https://example.com/reset-password",
	}

	cached := cache.NewCachedUsers(users, cache.NewUserCache(time.Minute))
	svc := NewAuthService(db, rm, cached, issuer, dispatcher, sender, publisher, logger, cfg)

	return &fixture{
		svc: svc, mock: mock, users: users, sessions: sessions, resets: resets,
		sender: sender, publisher: publisher, dispatcher: dispatcher, issuer: issuer,
	}
}

func (f *fixture) register(t *testing.T, email, password, fullName string) {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), &RegisterRequest{Email: email, Password: password, FullName: fullName})
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Message)
}

// --- Login ---

func TestLogin_BlankInput(t *testing.T) {
	f := newFixture(t)

	for _, req := range []*LoginRequest{
		{Email: "", Password: "secret1"},
		{Email: "a@x.com", Password: ""},
		{Email: "   ", Password: "secret1"},
	} {
		resp, err := f.svc.Login(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, MsgEmailPasswordRequired, resp.Message)
	}
	assert.Equal(t, 0, f.users.getCalls, "validation failures must not touch storage")
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	unknown, err := f.svc.Login(context.Background(), &LoginRequest{Email: "ghost@x.com", Password: "secret1"})
	require.NoError(t, err)
	wrong, err := f.svc.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "nope"})
	require.NoError(t, err)

	assert.False(t, unknown.Success)
	assert.False(t, wrong.Success)
	assert.Equal(t, unknown.Message, wrong.Message)
	assert.Equal(t, MsgInvalidCredentials, wrong.Message)
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	resp, err := f.svc.Login(context.Background(), &LoginRequest{
		Email:    "A@X.com",
		Password: "secret1",
		Client:   ClientInfo{IP: "203.0.113.9", UserAgent: "test-agent"},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "a@x.com", resp.User.Email)

	claims, err := f.issuer.Parse(resp.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, resp.User.UserID, id, "token must decode to the same user id")
	assert.Equal(t, "a@x.com", claims.Email)

	f.drain()

	require.Len(t, f.sessions.records, 1, "one session per successful login")
	assert.Equal(t, resp.Token, f.sessions.records[0].Token)
	assert.Equal(t, id, f.sessions.records[0].UserID)

	assert.Equal(t, []int64{id}, f.users.lastLoginIDs)

	alerts := f.sender.byKind("login_alert")
	require.Len(t, alerts, 1)
	assert.Equal(t, "203.0.113.9", alerts[0].IP)
	assert.Equal(t, "test-agent", alerts[0].UserAgent)

	lines := f.publisher.all()
	require.Len(t, lines, 2) // register + login
	assert.Contains(t, lines[1], "login a@x.com")
}

func TestLogin_ResponseDoesNotWaitOnSideEffects(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	resp, err := f.svc.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	// Side effects may or may not have run yet; the response itself must
	// already carry everything the caller needs.
	assert.NotEmpty(t, resp.Token)
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Register(context.Background(), &RegisterRequest{
		Email: "  New@X.Com ", Password: "secret1", FullName: "New User",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, MsgRegistrationOK, resp.Message)

	stored, err := f.users.GetByEmail(context.Background(), "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", stored.Email, "email must be stored normalized")
	assert.NotEqual(t, "secret1", stored.PasswordHash, "password must be hashed")
	assert.True(t, auth.CheckPassword("secret1", stored.PasswordHash))

	f.drain()
	require.Len(t, f.sender.byKind("welcome"), 1)
}

func TestRegister_DuplicateCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	resp, err := f.svc.Register(context.Background(), &RegisterRequest{Email: "A@X.COM", Password: "other66", FullName: "Imp"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, MsgDuplicateAccount, resp.Message)
}

func TestRegister_BlankInput(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Register(context.Background(), &RegisterRequest{Email: "a@x.com", Password: "  "})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, MsgEmailPasswordRequired, resp.Message)
}

// --- ForgotPassword ---

func TestForgotPassword_SameResponseForUnknownAndKnown(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	known, err := f.svc.ForgotPassword(context.Background(), "a@x.com")
	require.NoError(t, err)
	unknown, err := f.svc.ForgotPassword(context.Background(), "ghost@x.com")
	require.NoError(t, err)

	assert.True(t, known.Success)
	assert.True(t, unknown.Success)
	assert.Equal(t, known.Message, unknown.Message)
	assert.Equal(t, MsgResetLinkSent, known.Message)

	f.drain()
	require.Len(t, f.resets.issued(), 1, "only the existing account gets a token")
	require.Len(t, f.sender.byKind("reset_request"), 1)
}

func TestForgotPassword_TokenAndLink(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	_, err := f.svc.ForgotPassword(context.Background(), "A@X.com")
	require.NoError(t, err)

	tokens := f.resets.issued()
	require.Len(t, tokens, 1)
	assert.Len(t, tokens[0], 64, "256 bits of randomness, hex-encoded")

	f.drain()
	reqs := f.sender.byKind("reset_request")
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Link, "email=a%40x.com")
	assert.Contains(t, reqs[0].Link, "token="+tokens[0])
}

func TestForgotPassword_ReissueKeepsOlderTokens(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	_, err := f.svc.ForgotPassword(context.Background(), "a@x.com")
	require.NoError(t, err)
	_, err = f.svc.ForgotPassword(context.Background(), "a@x.com")
	require.NoError(t, err)

	assert.Len(t, f.resets.issued(), 2, "reissue must not invalidate prior tokens")
}

func TestForgotPassword_BlankEmail(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ForgotPassword(context.Background(), " ")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, MsgEmailRequired, resp.Message)
}

// --- ResetPassword ---

func TestResetPassword_MismatchSkipsStorage(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Email: "a@x.com", Token: "tok", NewPassword: "newpass1", ConfirmPassword: "different",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, MsgPasswordMismatch, resp.Message)
	assert.Equal(t, 0, f.users.getCalls)
	assert.NoError(t, f.mock.ExpectationsWereMet(), "no transaction may be opened")
}

func TestResetPassword_WeakPassword(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Email: "a@x.com", Token: "tok", NewPassword: "short", ConfirmPassword: "short",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, MsgWeakPassword, resp.Message)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	resp, err := f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Email: "a@x.com", Token: "bogus", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, MsgInvalidResetToken, resp.Message)

	// the old password still works
	login, err := f.svc.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, login.Success)
}

func TestResetPassword_ExpiredTokenRejected(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	user, err := f.users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NoError(t, f.resets.Create(context.Background(), user.ID, "expired-token", -time.Minute))

	ok, err := f.svc.VerifyResetToken(context.Background(), "a@x.com", "expired-token")
	require.NoError(t, err)
	assert.False(t, ok)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	resp, err := f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Email: "a@x.com", Token: "expired-token", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, MsgInvalidResetToken, resp.Message)
}

func TestResetPassword_SuccessAndSingleUse(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	_, err := f.svc.ForgotPassword(context.Background(), "a@x.com")
	require.NoError(t, err)
	tokens := f.resets.issued()
	require.Len(t, tokens, 1)
	token := tokens[0]

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Email: "a@x.com", Token: token, NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, MsgPasswordResetOK, resp.Message)

	// replaying the same token must fail
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	replay, err := f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Email: "a@x.com", Token: token, NewPassword: "another1", ConfirmPassword: "another1",
	})
	require.NoError(t, err)
	assert.False(t, replay.Success)
	assert.Equal(t, MsgInvalidResetToken, replay.Message)

	f.drain()
	require.Len(t, f.sender.byKind("reset_confirmation"), 1)
}

func TestResetPassword_EvictsCachedUser(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	// warm the cache with the pre-reset snapshot
	login, err := f.svc.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.True(t, login.Success)

	_, err = f.svc.ForgotPassword(context.Background(), "a@x.com")
	require.NoError(t, err)
	token := f.resets.issued()[0]

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	resp, err := f.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Email: "a@x.com", Token: token, NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	// the cached pre-reset hash must be gone immediately
	old, err := f.svc.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, old.Success, "old password must not authenticate after reset")

	fresh, err := f.svc.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "newpass1"})
	require.NoError(t, err)
	assert.True(t, fresh.Success)
}

// --- VerifyResetToken ---

func TestVerifyResetToken(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	_, err := f.svc.ForgotPassword(context.Background(), "a@x.com")
	require.NoError(t, err)
	token := f.resets.issued()[0]

	ok, err := f.svc.VerifyResetToken(context.Background(), "A@X.com", token)
	require.NoError(t, err)
	assert.True(t, ok)

	// non-mutating: the token is still there
	ok, err = f.svc.VerifyResetToken(context.Background(), "a@x.com", token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.VerifyResetToken(context.Background(), "a@x.com", "bogus")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.VerifyResetToken(context.Background(), "", token)
	require.NoError(t, err)
	assert.False(t, ok)
}

// --- Profile ---

func TestProfile(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "secret1", "Ann")

	info, err := f.svc.Profile(context.Background(), "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", info.Email)
	assert.Equal(t, "Ann", info.FullName)

	_, err = f.svc.Profile(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

// --- end-to-end scenario ---

func TestAuthLifecycle_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, &RegisterRequest{Email: "a@x.com", Password: "secret1", FullName: "Ann"})
	require.NoError(t, err)
	require.True(t, reg.Success)

	login, err := f.svc.Login(ctx, &LoginRequest{Email: "A@X.com", Password: "secret1"})
	require.NoError(t, err)
	require.True(t, login.Success)
	claims, err := f.issuer.Parse(login.Token)
	require.NoError(t, err)
	loginID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, login.User.UserID, loginID)

	forgot, err := f.svc.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, forgot.Success)
	token := f.resets.issued()[0]

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	reset, err := f.svc.ResetPassword(ctx, &ResetPasswordRequest{
		Email: "a@x.com", Token: token, NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)
	require.True(t, reset.Success)

	oldLogin, err := f.svc.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, oldLogin.Success)
	assert.Equal(t, MsgInvalidCredentials, oldLogin.Message)

	newLogin, err := f.svc.Login(ctx, &LoginRequest{Email: "a@x.com", Password: "newpass1"})
	require.NoError(t, err)
	assert.True(t, newLogin.Success)
}
