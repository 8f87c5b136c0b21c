package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/schema"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	f.customer(t, "taken@example.com")

	tests := []struct {
		name    string
		in      RegisterInput
		wantErr error
	}{
		{"ok", RegisterInput{Name: "Rui", Email: " Rui@Example.com ", Password: "secret1", ConfirmPassword: "secret1"}, nil},
		{"mismatch", RegisterInput{Name: "Rui", Email: "r2@example.com", Password: "secret1", ConfirmPassword: "secret2"}, domain.ErrValidation},
		{"short password", RegisterInput{Name: "Rui", Email: "r3@example.com", Password: "abc", ConfirmPassword: "abc"}, domain.ErrValidation},
		{"bad email", RegisterInput{Name: "Rui", Email: "nope", Password: "secret1", ConfirmPassword: "secret1"}, domain.ErrValidation},
		{"no name", RegisterInput{Email: "r4@example.com", Password: "secret1", ConfirmPassword: "secret1"}, domain.ErrValidation},
		{"duplicate", RegisterInput{Name: "Rui", Email: "TAKEN@example.com", Password: "secret1", ConfirmPassword: "secret1"}, domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := f.accounts.Register(ctx, tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "rui@example.com", c.Email)
			assert.NotEqual(t, tt.in.Password, c.PasswordHash)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "login@example.com")

	got, err := f.accounts.Login(ctx, "LOGIN@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = f.accounts.Login(ctx, "login@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.accounts.Login(ctx, "ghost@example.com", "secret1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = schema.EnsureDefaultAdmin(ctx, f.deps.Repo.DB, "cellar-master")
	require.NoError(t, err)
	admin, err := f.accounts.AdminLogin(ctx, "admin", "cellar-master")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	_, err = f.accounts.AdminLogin(ctx, "admin", "admin123")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProfileAndPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "profile@example.com")

	updated, err := f.accounts.UpdateProfile(ctx, c.ID, ProfileInput{Name: "Samuel", Phone: "+351 900", Address: "7 Harbour Street"})
	require.NoError(t, err)
	assert.Equal(t, "Samuel", updated.Name)
	assert.Equal(t, "7 Harbour Street", updated.Address)

	_, err = f.accounts.UpdateProfile(ctx, c.ID, ProfileInput{Name: "Samuel", Address: "tiny"})
	require.ErrorIs(t, err, domain.ErrValidation)

	require.ErrorIs(t, f.accounts.ChangePassword(ctx, c.ID, "wrong", "newpass", "newpass"), domain.ErrValidation)
	require.ErrorIs(t, f.accounts.ChangePassword(ctx, c.ID, "secret1", "newpass", "other"), domain.ErrValidation)
	require.NoError(t, f.accounts.ChangePassword(ctx, c.ID, "secret1", "newpass", "newpass"))

	_, err = f.accounts.Login(ctx, "profile@example.com", "newpass")
	require.NoError(t, err)
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "bye@example.com")
	p := f.product(t, "Alvarinho", "16.00", 3)
	o := f.checkout(t, c.ID, p.ID, 1)

	require.ErrorIs(t, f.accounts.DeleteAccount(ctx, c.ID, "secret1", "delete"), domain.ErrValidation)
	require.ErrorIs(t, f.accounts.DeleteAccount(ctx, c.ID, "wrong", "DELETE"), domain.ErrValidation)
	require.ErrorIs(t, f.accounts.DeleteAccount(ctx, c.ID, "secret1", "DELETE"), domain.ErrConflict)

	_, err := f.orders.Cancel(ctx, c.ID, o.ID)
	require.NoError(t, err)
	require.NoError(t, f.accounts.DeleteAccount(ctx, c.ID, "secret1", "DELETE"))

	_, err = f.accounts.GetCustomer(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerDetailAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "detail@example.com")
	f.customer(t, "someone@example.org")
	p := f.product(t, "Bairrada", "14.00", 3)
	f.checkout(t, c.ID, p.ID, 2)

	detail, err := f.accounts.CustomerDetail(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, detail.Orders, 1)
	assert.Equal(t, "Bairrada", detail.Orders[0].ProductName)

	found, err := f.accounts.ListCustomers(ctx, "example.org")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "someone@example.org", found[0].Email)
}
