package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/policy"
	"github.com/Raulcudris/microservices-fargate-demo/internal/repository"
	"github.com/Raulcudris/microservices-fargate-demo/internal/testutil"
	"github.com/Raulcudris/microservices-fargate-demo/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) UserService {
	t.Helper()

	db := testutil.OpenDB(t, &model.User{})
	denylist := token.NewDenylist(time.Minute)
	t.Cleanup(denylist.Close)

	return NewUserService(
		repository.NewUserRepository(db),
		token.NewCodec("test-secret"),
		denylist,
		policy.Default(),
		time.Hour,
	)
}

func register(t *testing.T, svc UserService, username, password, role string) *model.User {
	t.Helper()

	user, err := svc.Register(context.Background(), &dto.NewUserRequest{
		Username: username,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestUserService_LoginThenValidate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user := register(t, svc, "alice", "s3cret", "user")

	login, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, user.ID, login.UserID)
	assert.Equal(t, model.RoleUser, login.Role)
	assert.Equal(t, "alice", login.Username)

	validated, err := svc.Validate(ctx, login.Token, "/orders/1", http.MethodGet)
	require.NoError(t, err)
	assert.Equal(t, login.UserID, validated.UserID)
	assert.Equal(t, login.Role, validated.Role)
	assert.Equal(t, login.Username, validated.Username)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	register(t, svc, "alice", "s3cret", "user")

	_, err := svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	register(t, svc, "alice", "s3cret", "user")

	_, err := svc.Register(ctx, &dto.NewUserRequest{Username: "alice", Password: "other", Role: "user"})
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestUserService_RegisterHashesPassword(t *testing.T) {
	svc := newUserService(t)

	user := register(t, svc, "alice", "s3cret", "admin")

	assert.NotEqual(t, "s3cret", user.Password)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestUserService_ValidateRoleGate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	register(t, svc, "bob", "pw", "user")
	register(t, svc, "root", "pw", "admin")

	userLogin, err := svc.Login(ctx, "bob", "pw")
	require.NoError(t, err)
	adminLogin, err := svc.Login(ctx, "root", "pw")
	require.NoError(t, err)

	// same USER token: refused on the admin path, accepted elsewhere
	_, err = svc.Validate(ctx, userLogin.Token, "/admin/reports", http.MethodGet)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = svc.Validate(ctx, userLogin.Token, "/orders", http.MethodGet)
	assert.NoError(t, err)

	_, err = svc.Validate(ctx, adminLogin.Token, "/admin/reports", http.MethodGet)
	assert.NoError(t, err)
}

func TestUserService_ValidateRejectsGarbage(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Validate(context.Background(), "not-a-token", "/orders", http.MethodGet)
	assert.ErrorIs(t, err, model.ErrMalformed)
}

func TestUserService_LogoutRevokesToken(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	register(t, svc, "alice", "s3cret", "user")

	login, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Validate(ctx, login.Token, "/orders", http.MethodGet)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.Token))

	_, err = svc.Validate(ctx, login.Token, "/orders", http.MethodGet)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}
