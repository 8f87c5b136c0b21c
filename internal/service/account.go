package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/models"
	"github.com/Skotchmaster/cellar_society/internal/repo"
	"github.com/Skotchmaster/cellar_society/pkg/hash"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
)

const (
	MinPasswordLength = 6
	MinAddressLength  = 10
	DeleteConfirmText = "DELETE"
)

var errBadCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Address         string
}

type ProfileInput struct {
	Name    string
	Phone   string
	Address string
}

type CustomerDetail struct {
	Customer models.Customer    `json:"customer"`
	Orders   []models.OrderView `json:"orders"`
}

type AccountService struct {
	Deps
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkNewPassword(password, confirm string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}
	return nil
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.Customer, error) {
	l := logging.FromContext(ctx).With("svc", "account.register")

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if err := checkNewPassword(in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	c := &models.Customer{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
	}
	if err := s.Repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	l.Info("customer_registered", "customer_id", c.ID)
	return c, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Customer, error) {
	c, err := s.Repo.GetCustomerByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(c.PasswordHash, password) {
		return nil, errBadCredentials
	}
	return c, nil
}

func (s *AccountService) AdminLogin(ctx context.Context, username, password string) (*models.Admin, error) {
	a, err := s.Repo.GetAdminByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(a.PasswordHash, password) {
		return nil, errBadCredentials
	}
	return a, nil
}

func (s *AccountService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	return s.Repo.GetCustomer(ctx, id)
}

func (s *AccountService) UpdateProfile(ctx context.Context, id uint, in ProfileInput) (*models.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	address := strings.TrimSpace(in.Address)
	if address != "" && utf8.RuneCountInString(address) < MinAddressLength {
		return nil, fmt.Errorf("%w: address must be at least %d characters", domain.ErrValidation, MinAddressLength)
	}
	if err := s.Repo.UpdateCustomerProfile(ctx, id, name, strings.TrimSpace(in.Phone), address); err != nil {
		return nil, err
	}
	return s.Repo.GetCustomer(ctx, id)
}

func (s *AccountService) ChangePassword(ctx context.Context, id uint, current, next, confirm string) error {
	c, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(c.PasswordHash, current) {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrValidation)
	}
	if err := checkNewPassword(next, confirm); err != nil {
		return err
	}

	pwHash, err := hash.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Repo.UpdateCustomerPassword(ctx, id, pwHash)
}

// DeleteAccount lets a customer close their own account. It needs the
// password and the literal confirmation text.
func (s *AccountService) DeleteAccount(ctx context.Context, id uint, password, confirmText string) error {
	if strings.TrimSpace(confirmText) != DeleteConfirmText {
		return fmt.Errorf("%w: type %s to confirm", domain.ErrValidation, DeleteConfirmText)
	}
	c, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(c.PasswordHash, password) {
		return fmt.Errorf("%w: password is incorrect", domain.ErrValidation)
	}
	return s.DeleteCustomer(ctx, id)
}

func (s *AccountService) DeleteCustomer(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("customer_deleted", "svc", "account.delete", "customer_id", id)
	return nil
}

func (s *AccountService) ListCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	return s.Repo.ListCustomers(ctx, search)
}

func (s *AccountService) CustomerDetail(ctx context.Context, id uint) (*CustomerDetail, error) {
	c, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListOrderViews(ctx, repo.OrderFilter{CustomerID: id})
	if err != nil {
		return nil, err
	}
	return &CustomerDetail{Customer: *c, Orders: orders}, nil
}
