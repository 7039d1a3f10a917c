package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/memopad/internal/model"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresNoteRepoはNoteRepositoryインターフェースを満たすことを検証
func TestPostgresNoteRepo_ImplementsInterface(t *testing.T) {
	var _ NoteRepository = (*PostgresNoteRepo)(nil)
}

// PostgresSessionRepoはSessionRepositoryインターフェースを満たすことを検証
func TestPostgresSessionRepo_ImplementsInterface(t *testing.T) {
	var _ SessionRepository = (*PostgresSessionRepo)(nil)
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresNoteRepoが正しく初期化されることを検証
func TestNewPostgresNoteRepo_Initializes(t *testing.T) {
	repo := NewPostgresNoteRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresSessionRepoが正しく初期化されることを検証
func TestNewPostgresSessionRepo_Initializes(t *testing.T) {
	repo := NewPostgresSessionRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// ErrDuplicateUserはerrors.Isで比較可能な番兵エラーであることを検証
func TestErrDuplicateUser_IsSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), ErrDuplicateUser)
	if !errors.Is(wrapped, ErrDuplicateUser) {
		t.Error("ErrDuplicateUser should survive wrapping")
	}
}

// SessionWithUserは埋め込んだSessionのフィールドに直接アクセスできることを検証
func TestSessionWithUser_EmbedsSession(t *testing.T) {
	s := &SessionWithUser{
		Session: model.Session{
			ID:        "session-1",
			UserID:    42,
			ExpiresAt: time.Now().Add(time.Hour),
		},
		Username: "alice",
	}

	if s.ID != "session-1" {
		t.Errorf("s.ID = %q, want session-1", s.ID)
	}
	if s.UserID != 42 {
		t.Errorf("s.UserID = %d, want 42", s.UserID)
	}
	if s.Username != "alice" {
		t.Errorf("s.Username = %q, want alice", s.Username)
	}
}

// SessionRepoのFindByIDが期限切れセッションを返さないことの期待動作
func TestPostgresSessionRepo_ExpiredSession_Concept(t *testing.T) {
	// このテストはDB接続なしでコンセプトを検証する
	session := &model.Session{
		ID:        "expired-session",
		UserID:    1,
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}

	if session.ExpiresAt.After(time.Now()) {
		t.Error("expected session to be expired")
	}
}
