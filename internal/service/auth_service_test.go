package service

import (
	"context"
	"testing"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type sentMail struct {
	To    string
	Token string
}

type fakeEmail struct {
	sent []sentMail
}

func (f *fakeEmail) SendResetToken(toEmail, token string) error {
	f.sent = append(f.sent, sentMail{To: toEmail, Token: token})
	return nil
}

func newAuthService(env *testEnv, email *fakeEmail) IAuthService {
	return NewAuthService(env.factory, email, nil, nopLogger{})
}

func (e *testEnv) setPassword(user *entity.User, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user.PasswordHash = string(hash)
	_ = e.factory.Users.Update(context.Background(), user)
}

func TestLoginIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	env := newTestEnv()
	svc := newAuthService(env, &fakeEmail{})
	user := env.seedUser("emp001", "Taro", 1, nil)
	env.setPassword(user, "password123")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		EmployeeId: "emp001",
		Password:   "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, int(sessionTTL.Seconds()), res.ExpiresIn)
	assert.Equal(t, "emp001", res.User.EmployeeId)

	token, err := jwt.Parse(res.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.Id.String(), claims["user_id"])
	assert.Equal(t, float64(1), claims["role_level"])
}

func TestLoginRememberMeExtendsSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	env := newTestEnv()
	svc := newAuthService(env, &fakeEmail{})
	user := env.seedUser("emp001", "Taro", 1, nil)
	env.setPassword(user, "password123")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		EmployeeId: "emp001",
		Password:   "password123",
		RememberMe: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int(rememberedTTL.Seconds()), res.ExpiresIn)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	env := newTestEnv()
	svc := newAuthService(env, &fakeEmail{})
	user := env.seedUser("emp001", "Taro", 1, nil)
	env.setPassword(user, "password123")

	var forbiddenErr *apperrors.ForbiddenError

	_, err := svc.Login(context.Background(), &dto.LoginRequest{EmployeeId: "emp001", Password: "wrong"})
	require.ErrorAs(t, err, &forbiddenErr)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{EmployeeId: "ghost", Password: "password123"})
	require.ErrorAs(t, err, &forbiddenErr)
}

func TestChangePassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	env := newTestEnv()
	svc := newAuthService(env, &fakeEmail{})
	user := env.seedUser("emp001", "Taro", 1, nil)
	env.setPassword(user, "password123")

	ctx := context.Background()
	err := svc.ChangePassword(ctx, user.Id, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "replacement1",
	})
	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)

	require.NoError(t, svc.ChangePassword(ctx, user.Id, &dto.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "replacement1",
	}))

	_, err = svc.Login(ctx, &dto.LoginRequest{EmployeeId: "emp001", Password: "replacement1"})
	require.NoError(t, err)
}

func TestRequestPasswordResetUnknownAccountStaysSilent(t *testing.T) {
	env := newTestEnv()
	email := &fakeEmail{}
	svc := newAuthService(env, email)
	user := env.seedUser("emp001", "Taro", 1, nil)
	user.Email = strptr("taro@example.com")
	_ = env.factory.Users.Update(context.Background(), user)

	// Unknown id and mismatched email both report success without mailing.
	require.NoError(t, svc.RequestPasswordReset(context.Background(), &dto.PasswordResetRequest{
		EmployeeId: "ghost", Email: "taro@example.com",
	}))
	require.NoError(t, svc.RequestPasswordReset(context.Background(), &dto.PasswordResetRequest{
		EmployeeId: "emp001", Email: "other@example.com",
	}))
	assert.Empty(t, email.sent)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	env := newTestEnv()
	email := &fakeEmail{}
	svc := newAuthService(env, email)
	user := env.seedUser("emp001", "Taro", 1, nil)
	user.Email = strptr("taro@example.com")
	env.setPassword(user, "password123")

	ctx := context.Background()
	require.NoError(t, svc.RequestPasswordReset(ctx, &dto.PasswordResetRequest{
		EmployeeId: "emp001", Email: "taro@example.com",
	}))
	require.Len(t, email.sent, 1)
	assert.Equal(t, "taro@example.com", email.sent[0].To)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, &dto.PasswordResetConfirmRequest{
		Token:       email.sent[0].Token,
		NewPassword: "replacement1",
	}))

	_, err := svc.Login(ctx, &dto.LoginRequest{EmployeeId: "emp001", Password: "replacement1"})
	require.NoError(t, err)

	// The token is single use.
	err = svc.ConfirmPasswordReset(ctx, &dto.PasswordResetConfirmRequest{
		Token:       email.sent[0].Token,
		NewPassword: "replacement2",
	})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestConfirmPasswordResetExpiredToken(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env, &fakeEmail{})
	user := env.seedUser("emp001", "Taro", 1, nil)

	ctx := context.Background()
	_ = env.factory.Users.CreatePasswordResetToken(ctx, &entity.PasswordResetToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	err := svc.ConfirmPasswordReset(ctx, &dto.PasswordResetConfirmRequest{
		Token:       "stale-token",
		NewPassword: "replacement1",
	})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdateSoundEnabled(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env, &fakeEmail{})
	user := env.seedUser("emp001", "Taro", 1, nil)

	ctx := context.Background()
	require.NoError(t, svc.UpdateSoundEnabled(ctx, user.Id, true))

	stored, _ := env.factory.Users.FindById(ctx, user.Id)
	assert.True(t, stored.SoundEnabled)
}

func TestUpdateLastActivePage(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env, &fakeEmail{})
	user := env.seedUser("emp001", "Taro", 1, nil)

	ctx := context.Background()
	require.NoError(t, svc.UpdateLastActivePage(ctx, user.Id, "/history"))

	stored, _ := env.factory.Users.FindById(ctx, user.Id)
	require.NotNil(t, stored.LastActivePage)
	assert.Equal(t, "/history", *stored.LastActivePage)
}
