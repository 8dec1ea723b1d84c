package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/MohamedX1935/SkillBoard/internal/apperr"
	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/MohamedX1935/SkillBoard/pkg/logger"
	"github.com/MohamedX1935/SkillBoard/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgUserNotFound     = "Utilisateur introuvable"
	msgSkillNotFound    = "Compétence introuvable"
	msgTrainingNotFound = "Formation introuvable"
	msgMissingFields    = "Nom, email et mot de passe requis"
	msgEmailTaken       = "Un utilisateur existe déjà avec cet email"
	msgBadCredentials   = "Identifiants invalides"
	msgPasswordTooLong  = "Mot de passe trop long (72 octets maximum)"
)

// Service encapsulates user-related business logic: the user aggregate and
// its embedded skills and trainings. Errors are *apperr.Error values.
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// parseID treats malformed identifiers as unknown resources.
func parseID(id, notFound string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound(notFound)
	}
	return oid, nil
}

func (s *Service) load(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id, msgUserNotFound)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, oid)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load user %s: %w", id, err))
	}
	return u, nil
}

func (s *Service) save(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return apperr.Validation(validation.Message(err))
	}
	err := s.repo.Replace(ctx, u)
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound(msgUserNotFound)
	case errors.Is(err, ErrDuplicateEmail):
		return apperr.Conflict(msgEmailTaken)
	case err != nil:
		return apperr.Internal(fmt.Errorf("save user %s: %w", u.ID.Hex(), err))
	}
	return nil
}

// List returns the users matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]*models.User, error) {
	list, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list users: %w", err))
	}
	return list, nil
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.load(ctx, id)
}

// hashInput rejects passwords bcrypt cannot take as a validation error.
func hashInput(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", apperr.Validation(msgPasswordTooLong)
	}
	h, err := HashPassword(password)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("hash password: %w", err))
	}
	return h, nil
}

// Create validates, hashes the password and stores a new user.
func (s *Service) Create(ctx context.Context, in models.NewUser) (*models.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation(msgMissingFields)
	}
	u := &models.User{
		Name:     in.Name,
		Position: in.Position,
		Email:    in.Email,
		Role:     in.Role,
	}
	u.Normalize()

	if _, err := s.repo.GetByEmail(ctx, u.Email); err == nil {
		return nil, apperr.Conflict(msgEmailTaken)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, apperr.Internal(fmt.Errorf("lookup email: %w", err))
	}

	pw, err := hashInput(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = pw
	if err := u.Validate(); err != nil {
		return nil, apperr.Validation(validation.Message(err))
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, apperr.Conflict(msgEmailTaken)
		}
		return nil, apperr.Internal(fmt.Errorf("create user: %w", err))
	}
	return u, nil
}

// Update applies p. A non-empty password is re-hashed; otherwise the stored
// hash is kept.
func (s *Service) Update(ctx context.Context, id string, p models.UserPatch) (*models.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Password != nil && *p.Password != "" {
		pw, err := hashInput(*p.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = pw
	}
	p.Apply(u)
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the user and everything embedded in it.
func (s *Service) Delete(ctx context.Context, id string) (primitive.ObjectID, error) {
	oid, err := parseID(id, msgUserNotFound)
	if err != nil {
		return oid, err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oid, apperr.NotFound(msgUserNotFound)
		}
		return oid, apperr.Internal(fmt.Errorf("delete user %s: %w", id, err))
	}
	return oid, nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords yield
// the same error so callers cannot probe which accounts exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("Email et mot de passe requis")
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.Auth(msgBadCredentials)
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("lookup email: %w", err))
	}
	if !ComparePassword(u.PasswordHash, password) {
		return nil, apperr.Auth(msgBadCredentials)
	}
	return u, nil
}

// EnsureAdmin provisions the bootstrap administrator when no user holds
// email yet. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set; no administrator created")
		return false, nil
	}
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}
	_, err = s.Create(ctx, models.NewUser{
		Name:     "Administrateur",
		Position: "RH",
		Email:    email,
		Role:     models.RoleAdmin,
		Password: password,
	})
	if err != nil {
		return false, err
	}
	logger.Infof("bootstrap administrator created: %s", models.NormalizeEmail(email))
	return true, nil
}
