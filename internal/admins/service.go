package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/auth"
	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/security"
)

const minPasswordLength = 6

// Session is the login result handed back to the SPA.
type Session struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

type Service struct {
	db     *gorm.DB
	jwtCfg config.JWTConfig
	pwCfg  config.PasswordConfig
	logg   *logger.Logger
	now    func() time.Time
}

func NewService(conn *gorm.DB, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig, logg *logger.Logger) (*Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("db is required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{db: conn, jwtCfg: jwtCfg, pwCfg: pwCfg, logg: logg, now: time.Now}, nil
}

// Authenticate checks credentials and mints a session token. Unknown username
// and wrong password return the same error so logins cannot enumerate
// accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	var admin models.Admin
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := auth.MintAdminToken(s.jwtCfg, s.now(), admin.ID, admin.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	logCtx := s.logg.WithAdminID(ctx, admin.ID)
	s.logg.Info(logCtx, "admin logged in")

	return &Session{Token: token, Admin: &admin}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Admin, error) {
	return s.find(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Admin, error) {
	var rows []models.Admin
	err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admins")
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if len(password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		if db.IsUniqueViolation(err, "admins.username") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin")
	}
	return admin, nil
}

// ChangeOwnPassword requires the current password before accepting a new one.
func (s *Service) ChangeOwnPassword(ctx context.Context, adminID int64, current, next string) error {
	if len(next) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	admin, err := s.find(ctx, adminID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(current, admin.PasswordHash)
	if err != nil || !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}
	return s.setPassword(ctx, admin, next)
}

// SetPassword is the admin-management variant with no current-password check.
func (s *Service) SetPassword(ctx context.Context, adminID int64, next string) error {
	if len(next) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	admin, err := s.find(ctx, adminID)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, admin, next)
}

// Delete removes an account; admins cannot delete themselves so the back
// office can never lock everyone out in one call.
func (s *Service) Delete(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot delete your own account")
	}
	if _, err := s.find(ctx, targetID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Admin{}, targetID).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete admin")
	}
	return nil
}

// EnsureBootstrap creates the configured startup account when no admins
// exist, so a fresh deployment is reachable.
func (s *Service) EnsureBootstrap(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&n).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count admins")
	}
	if n > 0 {
		return nil
	}

	if _, err := s.Create(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}
	logCtx := s.logg.WithField(ctx, "username", cfg.AdminUsername)
	s.logg.Info(logCtx, "bootstrap admin created")
	return nil
}

func (s *Service) setPassword(ctx context.Context, admin *models.Admin, password string) error {
	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.db.WithContext(ctx).Model(admin).Update("password_hash", hash).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return nil
}

func (s *Service) find(ctx context.Context, id int64) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}
	return &admin, nil
}
