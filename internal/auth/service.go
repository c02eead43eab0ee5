package auth

import (
	"context"

	"github.com/BruksfildServices01/clinic-crm/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/validators"
)

type StaffStore interface {
	Get(ctx context.Context, id uint) (*models.Staff, error)
	FindActiveByEmail(ctx context.Context, email string) (*models.Staff, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	Create(ctx context.Context, s *models.Staff) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type Service struct {
	store  StaffStore
	tokens *TokenManager
	hasher Hasher

	// compared against on unknown emails so both failure paths cost one hash
	dummyHash string
}

func NewService(store StaffStore, tokens *TokenManager, hasher Hasher) *Service {
	dummy, _ := hasher.Hash("clinic-crm-unknown-account")
	return &Service{
		store:     store,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: dummy,
	}
}

func (s *Service) Hasher() Hasher {
	return s.hasher
}

// ======================================================
// LOGIN
// ======================================================

type StaffSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	AccessToken string       `json:"access_token"`
	Staff       StaffSummary `json:"staff"`
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	st, err := s.store.FindActiveByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if kind, ok := httperr.KindOf(err); ok && kind == httperr.KindNotFound {
			s.hasher.Matches(s.dummyHash, password)
			return nil, httperr.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Matches(st.PasswordHash, password) {
		return nil, httperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(IdentityOf(st))
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		Staff: StaffSummary{
			ID:    st.ID,
			Name:  st.Name,
			Email: st.Email,
			Role:  st.Role,
		},
	}, nil
}

func IdentityOf(st *models.Staff) Identity {
	return Identity{
		StaffID: st.ID,
		Email:   st.Email,
		Role:    st.Role,
	}
}

// ======================================================
// REGISTER
// ======================================================

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Role     string
	Password string
	IsActive *bool
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Staff, error) {
	role := staff.RoleConsultant
	if in.Role != "" {
		r, err := staff.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}

	email := validators.NormalizeEmail(in.Email)
	if !validators.IsEmail(email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	taken, err := s.store.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrConflict("email_already_exists")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	st := &models.Staff{
		Name:         in.Name,
		Email:        email,
		Phone:        validators.NormalizePhone(in.Phone),
		Role:         string(role),
		PasswordHash: hash,
		IsActive:     active,
	}
	if err := s.store.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// ======================================================
// PASSWORD
// ======================================================

// ChangePassword re-hashes the password of staff id. Tokens issued before
// the change remain valid until they expire.
func (s *Service) ChangePassword(ctx context.Context, id uint, current, next string) error {
	st, err := s.store.Get(ctx, id)
	if err != nil {
		if kind, ok := httperr.KindOf(err); ok && kind == httperr.KindNotFound {
			return httperr.ErrUnauthenticated
		}
		return err
	}

	if !s.hasher.Matches(st.PasswordHash, current) {
		return httperr.ErrUnauthenticated
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, id, hash)
}

// ApplyPassword hashes password into st when one is supplied. A nil or
// empty password leaves the stored hash untouched.
func (s *Service) ApplyPassword(st *models.Staff, password *string) error {
	if password == nil || *password == "" {
		return nil
	}
	hash, err := s.hasher.Hash(*password)
	if err != nil {
		return err
	}
	st.PasswordHash = hash
	return nil
}

func (s *Service) Profile(ctx context.Context, id uint) (*models.Staff, error) {
	return s.store.Get(ctx, id)
}
