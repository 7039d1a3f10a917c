package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/memopad/internal/model"
	"github.com/hitoshi/memopad/internal/repository"
)

// --- モック定義 ---

type mockUserRepo struct {
	createFn         func(ctx context.Context, user *model.User) (int64, error)
	findByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	findByIDFn       func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return 1, nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

type mockSessionRepo struct {
	createFn         func(ctx context.Context, session *model.Session) error
	findByIDFn       func(ctx context.Context, id string) (*repository.SessionWithUser, error)
	deleteByIDFn     func(ctx context.Context, id string) error
	deleteByUserIDFn func(ctx context.Context, userID int64) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*repository.SessionWithUser, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

// --- compile-time interface checks ---
var _ repository.UserRepository = (*mockUserRepo)(nil)
var _ repository.SessionRepository = (*mockSessionRepo)(nil)

func newTestService(userRepo *mockUserRepo, sessionRepo *mockSessionRepo) *Service {
	return NewService(
		NewPasswordHasher(4), userRepo, sessionRepo, nil,
		ServiceConfig{SessionMaxAge: 86400},
	)
}

// --- テスト ---

func TestRegister_HashesPasswordBeforeStoring(t *testing.T) {
	ctx := context.Background()

	var storedUser *model.User
	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) (int64, error) {
			storedUser = user
			return 1, nil
		},
	}
	svc := newTestService(userRepo, &mockSessionRepo{})

	if err := svc.Register(ctx, "alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if storedUser == nil {
		t.Fatal("expected user to be stored")
	}
	if storedUser.Username != "alice" {
		t.Errorf("Username = %q, want %q", storedUser.Username, "alice")
	}
	if storedUser.Email != "a@x.com" {
		t.Errorf("Email = %q, want %q", storedUser.Email, "a@x.com")
	}
	if storedUser.PasswordDigest == "secret1" || storedUser.PasswordDigest == "" {
		t.Error("password must be stored as a non-empty digest, not plaintext")
	}
	if !NewPasswordHasher(4).Verify("secret1", storedUser.PasswordDigest) {
		t.Error("stored digest should verify against the original password")
	}
	if storedUser.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestRegister_DuplicateUser_ReturnsConflictError(t *testing.T) {
	ctx := context.Background()

	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) (int64, error) {
			return 0, repository.ErrDuplicateUser
		},
	}
	svc := newTestService(userRepo, &mockSessionRepo{})

	err := svc.Register(ctx, "alice", "a@x.com", "secret1")
	if err == nil {
		t.Fatal("expected error for duplicate user")
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != model.ErrCodeDuplicateUser {
		t.Errorf("Code = %q, want %q", appErr.Code, model.ErrCodeDuplicateUser)
	}
}

func TestRegister_RepoFailure_WrapsError(t *testing.T) {
	ctx := context.Background()

	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) (int64, error) {
			return 0, errors.New("connection lost")
		},
	}
	svc := newTestService(userRepo, &mockSessionRepo{})

	err := svc.Register(ctx, "alice", "a@x.com", "secret1")
	if err == nil {
		t.Fatal("expected error")
	}

	var appErr *model.AppError
	if errors.As(err, &appErr) {
		t.Error("infrastructure errors must not surface as AppError")
	}
}

func TestLogin_ValidCredentials_CreatesSession(t *testing.T) {
	ctx := context.Background()

	hasher := NewPasswordHasher(4)
	digest, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	userRepo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username == "alice" {
				return &model.User{ID: 42, Username: "alice", PasswordDigest: digest}, nil
			}
			return nil, nil
		},
	}

	var createdSession *model.Session
	sessionRepo := &mockSessionRepo{
		createFn: func(ctx context.Context, session *model.Session) error {
			createdSession = session
			return nil
		},
	}
	svc := newTestService(userRepo, sessionRepo)

	session, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if session == nil {
		t.Fatal("expected session")
	}
	if session.UserID != 42 {
		t.Errorf("UserID = %d, want %d", session.UserID, 42)
	}
	if len(session.ID) != 64 {
		t.Errorf("session ID length = %d, want 64 hex chars", len(session.ID))
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("session should expire in the future")
	}
	if createdSession == nil || createdSession.ID != session.ID {
		t.Error("session should be persisted")
	}
}

// ログイン失敗はユーザー不在とパスワード不一致で区別できないことを検証
func TestLogin_UnknownUser_ReturnsGenericError(t *testing.T) {
	ctx := context.Background()

	sessionCreated := false
	sessionRepo := &mockSessionRepo{
		createFn: func(ctx context.Context, session *model.Session) error {
			sessionCreated = true
			return nil
		},
	}
	svc := newTestService(&mockUserRepo{}, sessionRepo)

	_, err := svc.Login(ctx, "nobody", "secret1")
	if err == nil {
		t.Fatal("expected error for unknown user")
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != model.ErrCodeInvalidCredentials {
		t.Errorf("Code = %q, want %q", appErr.Code, model.ErrCodeInvalidCredentials)
	}
	if sessionCreated {
		t.Error("no session must be created on failed login")
	}
}

func TestLogin_WrongPassword_ReturnsSameGenericError(t *testing.T) {
	ctx := context.Background()

	hasher := NewPasswordHasher(4)
	digest, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	userRepo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 42, Username: "alice", PasswordDigest: digest}, nil
		},
	}
	svc := newTestService(userRepo, &mockSessionRepo{})

	_, wrongPassErr := svc.Login(ctx, "alice", "wrong-password")
	if wrongPassErr == nil {
		t.Fatal("expected error for wrong password")
	}

	_, unknownUserErr := svc.Login(ctx, "nobody", "secret1")
	if unknownUserErr == nil {
		t.Fatal("expected error for unknown user")
	}

	// どちらの失敗も同一メッセージ（アカウント列挙の防止）
	if wrongPassErr.Error() != unknownUserErr.Error() {
		t.Errorf("error messages differ: %q vs %q", wrongPassErr.Error(), unknownUserErr.Error())
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	ctx := context.Background()

	var deletedID string
	sessionRepo := &mockSessionRepo{
		deleteByIDFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	svc := newTestService(&mockUserRepo{}, sessionRepo)

	if err := svc.Logout(ctx, "session-123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deletedID != "session-123" {
		t.Errorf("deleted session ID = %q, want %q", deletedID, "session-123")
	}
}

func TestLogout_EmptySessionID_ReturnsError(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	if err := svc.Logout(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty session ID")
	}
}
