package user

import (
	"context"
	"testing"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, testutil.FixedClock(testutil.Now))
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserRequest{Email: " Ada <Ada@Example.com> "})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "ada", u.Name)
	assert.True(t, u.Active)

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
}

func TestCreateUser_Errors(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, models.ErrPersistence, "duplicate email violates the unique index")

	_, err = svc.GetUser(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidUserID)
	_, err = svc.GetUser(ctx, 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
