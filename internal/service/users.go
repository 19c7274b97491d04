package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/localroots/marketplace/internal/audit"
	"github.com/localroots/marketplace/internal/auth"
	"github.com/localroots/marketplace/internal/models"
	"gorm.io/gorm"
)

const maxUserList = 500

// RegisterRequest holds parameters for creating an account.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// ProfileUpdate holds the user fields that may be changed through the API.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name      *string
	Phone     *string
	Community *string
	Specialty *string
	Bio       *string
	Avatar    *string
}

// AuthResult is returned after registration or login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService handles accounts and credentials.
type UserService struct {
	db     *gorm.DB
	issuer *auth.TokenIssuer
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB, issuer *auth.TokenIssuer) *UserService {
	return &UserService{db: db, issuer: issuer}
}

// NormalizeEmail trims and lower-cases an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and returns a signed token for it.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, invalid("Missing fields")
	}

	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}
	if !models.ValidRole(role) {
		return nil, invalid("Invalid role. Must be buyer, seller, or both")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		Role:           role,
		VerifiedSeller: role != models.RoleBuyer,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, storeError(err, "Email already registered")
	}

	slog.Info("User registered", "user_id", user.ID, "role", user.Role)
	return s.issue(&user)
}

// Login verifies credentials and returns a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("Missing fields")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		err = storeError(err, "")
		if err == ErrNotFound {
			slog.Warn("Login attempt with unknown email")
			return nil, &AuthenticationError{Message: "Invalid credentials"}
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		slog.Warn("Login attempt with incorrect password", "user_id", user.ID)
		return nil, &AuthenticationError{Message: "Invalid credentials"}
	}

	slog.Info("User logged in", "user_id", user.ID)
	return s.issue(&user)
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.issuer.Sign(auth.Identity{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Me returns the account behind an identity. Header identities carry only
// an ID; token identities are looked up by ID, then by e-mail.
func (s *UserService) Me(ctx context.Context, id auth.Identity) (*models.User, error) {
	var user models.User
	query := s.db.WithContext(ctx)
	if id.Email != "" {
		query = query.Where("id = ? OR email = ?", id.ID, NormalizeEmail(id.Email))
	} else {
		query = query.Where("id = ?", id.ID)
	}
	if err := query.First(&user).Error; err != nil {
		if err = storeError(err, ""); err == ErrNotFound {
			return nil, notFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// List returns users, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(maxUserList).Find(&users).Error; err != nil {
		return nil, storeError(err, "")
	}
	return users, nil
}

// ListArtisans returns users who sell (role seller or both), newest first.
func (s *UserService) ListArtisans(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Where("role IN ?", []string{models.RoleSeller, models.RoleBoth}).
		Order("created_at DESC").Limit(maxUserList).Find(&users).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	return users, nil
}

// Update changes profile fields. Password, e-mail, role and timestamps
// cannot be changed this way.
func (s *UserService) Update(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	set := func(column string, v *string) {
		if v != nil {
			changes[column] = *v
		}
	}
	set("name", upd.Name)
	set("phone", upd.Phone)
	set("community", upd.Community)
	set("specialty", upd.Specialty)
	set("bio", upd.Bio)
	set("avatar", upd.Avatar)

	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(changes).Error; err != nil {
			return nil, storeError(err, "")
		}
	}
	return s.get(ctx, id)
}

// SetRole changes the role of a user.
func (s *UserService) SetRole(ctx context.Context, actor, id, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, invalid("Invalid role. Must be buyer, seller, or both")
	}
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("role", role).Error; err != nil {
		return nil, storeError(err, "")
	}
	if err := audit.LogAction(s.db.WithContext(ctx), actor, audit.ActionUpdateUserRole, "user:"+id,
		map[string]string{"role": role}); err != nil {
		slog.Warn("Failed to write audit log", "action", audit.ActionUpdateUserRole, "error", err)
	}
	return s.get(ctx, id)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, actor, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return storeError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return notFound("User not found")
	}
	if err := audit.LogAction(s.db.WithContext(ctx), actor, audit.ActionDeleteUser, "user:"+id, nil); err != nil {
		slog.Warn("Failed to write audit log", "action", audit.ActionDeleteUser, "error", err)
	}
	return nil
}

func (s *UserService) get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if err = storeError(err, ""); err == ErrNotFound {
			return nil, notFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}
