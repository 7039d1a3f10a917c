// Package auth は登録・ログイン・セッション管理のドメインロジックを提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/memopad/internal/model"
	"github.com/hitoshi/memopad/internal/repository"
)

// MetricsCollector は認証イベントのメトリクス記録インターフェース。
// nilの場合は記録をスキップする。
type MetricsCollector interface {
	RecordUserRegistered()
	RecordLoginSuccess()
	RecordLoginFailure()
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	hasher      *PasswordHasher
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	metrics     MetricsCollector
	config      ServiceConfig
}

// NewService はServiceを生成する。metricsはnilを許容する。
func NewService(
	hasher *PasswordHasher,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	metrics MetricsCollector,
	config ServiceConfig,
) *Service {
	return &Service{
		hasher:      hasher,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		metrics:     metrics,
		config:      config,
	}
}

// Register は新規ユーザーを登録する。
// パスワードはハッシュ化してから保存し、平文は保持しない。
// ユーザー名またはメールアドレスが重複している場合はAppError（conflict）を返す。
// 入力値の検証（必須項目・パスワード長）はハンドラー側で行う。
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		PasswordDigest: digest,
		CreatedAt:      time.Now(),
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.NewDuplicateUserError()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordUserRegistered()
	}

	slog.Info("new user registered",
		slog.Int64("user_id", userID),
		slog.String("username", username),
	)

	return nil
}

// Login は認証情報を検証し、成功した場合にセッションを発行する。
// ユーザーが存在しない場合もパスワードが一致しない場合も、
// アカウントの存在を推測されないよう同一のAppError（auth）を返す。
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil || !s.hasher.Verify(password, user.PasswordDigest) {
		if s.metrics != nil {
			s.metrics.RecordLoginFailure()
		}
		slog.Warn("login failed", slog.String("username", username))
		return nil, model.NewInvalidCredentialsError()
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordLoginSuccess()
	}

	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return session, nil
}

// Logout はセッションを破棄する。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user logged out")
	return nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, userID int64) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
