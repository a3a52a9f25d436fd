package userapp

import (
	"context"
	"testing"
	"time"

	dbadapter "inkwell/internal/adapters/database"
	"inkwell/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testinfra.NewDB(t)
	svc := NewUserService(dbadapter.NewUserRepositoryDatabase(db), []byte("secret"))
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, "Leo", "Tolstoy", "leo", "war-and-peace")
	require.NoError(t, err)
	assert.Equal(t, "leo", u.Username)

	_, err = svc.RegisterUser(ctx, "Other", "Leo", "leo", "x")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.LoginUser(ctx, "leo", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := svc.LoginUser(ctx, "leo", "war-and-peace")
	require.NoError(t, err)
	assert.Greater(t, res.ExpiresAt, time.Now().Unix())

	session, err := svc.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, session.UserID)
	assert.Equal(t, "leo", session.Username)
}

func TestParseToken_Rejects(t *testing.T) {
	db := testinfra.NewDB(t)
	repo := dbadapter.NewUserRepositoryDatabase(db)
	testinfra.CreateUser(t, db, "leo")

	issuer := NewUserService(repo, []byte("one"))
	res, err := issuer.LoginUser(context.Background(), "leo", "password")
	require.NoError(t, err)

	_, err = NewUserService(repo, []byte("two")).ParseToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewUserService(repo, []byte("one"))
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old, err := expired.LoginUser(context.Background(), "leo", "password")
	require.NoError(t, err)
	_, err = issuer.ParseToken(old.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
