package usecase

import (
	"context"
	"errors"
	"strings"

	"docspot-odonto/internal/converter"
	"docspot-odonto/internal/delivery/dto"
	"docspot-odonto/internal/domain/entity"
	"docspot-odonto/internal/domain/repository"
	"docspot-odonto/internal/service"
	"docspot-odonto/pkg/identifier"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists  = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials or role")
	ErrIDGeneration       = errors.New("could not allocate a unique id")
)

// maxIDAttempts bounds the retry loop for role-prefixed id generation.
// With 8 hex characters a collision is effectively impossible at clinic
// scale, so hitting the bound means something else is wrong.
const maxIDAttempts = 3

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// Register creates a new doctor or patient account. Duplicate detection is
// a single combined username-or-email lookup, backed by the unique indexes
// for requests that race past the check.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByUsernameOrEmail(tx, req.Username, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check existing user: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	userID, err := u.uniqueUserID(tx, req.Role)
	if err != nil {
		return nil, err
	}

	// Clinic is a doctor-only attribute, dropped silently for patients
	var clinic *string
	if req.Role == entity.RoleDoctor {
		clinic = req.Clinic
	}

	user := &entity.User{
		ID:       userID,
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Clinic:   clinic,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "username") || isDuplicateKeyError(err, "email") {
			return nil, ErrUserAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Best-effort, after the commit so an audit failure cannot undo the account
	u.auditService.LogAction(u.db.WithContext(ctx), &user.ID, service.AuditActionRegister, "user", user.ID, entity.JSON{
		"username": user.Username,
		"role":     user.Role,
	})

	return converter.UserToResponse(user), nil
}

// Login authenticates a user. A wrong username, wrong password and wrong
// role all produce the same error on purpose.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role != req.Role {
		return nil, ErrInvalidCredentials
	}

	return converter.UserToResponse(user), nil
}

// uniqueUserID generates a role-prefixed id and verifies it is unused,
// retrying on the (practically unreachable) collision.
func (u *authUsecase) uniqueUserID(tx *gorm.DB, role string) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := identifier.NewUserID(role)
		exists, err := u.userRepo.ExistsByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to check id uniqueness: %+v", err)
			return "", err
		}
		if !exists {
			return id, nil
		}
		u.log.Warnf("User id collision on %s, retrying", id)
	}
	return "", ErrIDGeneration
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// on the given constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
