package users

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/matchroom/internal/common"
	"github.com/dmitrijs2005/matchroom/internal/server/auth"
	"github.com/dmitrijs2005/matchroom/internal/server/config"
	"github.com/dmitrijs2005/matchroom/internal/server/password"
)

// Service orchestrates registration, login, and token verification against
// the credential store.
type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration

	// decoy credentials hashed on unknown-user logins so that the two
	// failure paths cost the same
	decoySalt   []byte
	decoyDigest []byte
}

func NewService(repo Repository, cfg *config.Config) *Service {
	decoySalt := password.NewSalt()
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		decoySalt:             decoySalt,
		decoyDigest:           password.Hash("decoy", decoySalt),
	}
}

// Register creates a new user and returns a freshly issued session token.
// A taken username yields common.ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, username, pw string) (string, error) {

	if username == "" || pw == "" {
		return "", common.ErrorValidation
	}

	salt := password.NewSalt()
	user := &User{
		UserName:     username,
		Salt:         salt,
		PasswordHash: password.Hash(pw, salt),
	}

	user, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", common.ErrorInternal
	}

	return s.issueToken(user)
}

// Login verifies the credentials and returns a fresh token. An unknown
// username and a wrong password both return common.ErrorUnauthorized; the
// unknown-user path still performs a hash so the caller cannot tell the two
// apart by timing.
func (s *Service) Login(ctx context.Context, username, pw string) (string, error) {

	user, err := s.repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			password.Verify(pw, s.decoySalt, s.decoyDigest)
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !password.Verify(pw, user.Salt, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	return s.issueToken(user)
}

// AuthorizeConnection validates a session token presented at connect time.
// It checks the signature and expiry locally, then compares the embedded
// token version against the live user record, so revocation takes effect
// immediately. All failures should surface to the client as a uniform
// unauthorized signal.
func (s *Service) AuthorizeConnection(ctx context.Context, token string) (*auth.Claims, error) {

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByLogin(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, common.ErrTokenRevoked
	}

	return claims, nil
}

// ChangePassword verifies the old password, stores a new salt and hash, and
// bumps the token version so every outstanding token is revoked. It returns
// a fresh token minted against the new version.
func (s *Service) ChangePassword(ctx context.Context, username, oldPw, newPw string) (string, error) {

	if newPw == "" {
		return "", common.ErrorValidation
	}

	user, err := s.repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !password.Verify(oldPw, user.Salt, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	salt := password.NewSalt()
	version, err := s.repo.UpdatePassword(ctx, username, salt, password.Hash(newPw, salt))
	if err != nil {
		return "", common.ErrorInternal
	}

	user.TokenVersion = version
	return s.issueToken(user)
}

// RevokeSessions invalidates every token issued for the user so far.
func (s *Service) RevokeSessions(ctx context.Context, username string) error {
	_, err := s.repo.IncrementTokenVersion(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

func (s *Service) issueToken(user *User) (string, error) {
	token, err := auth.GenerateToken(user.UserName, user.TokenVersion, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
