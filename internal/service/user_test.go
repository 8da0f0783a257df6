package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/discoshop/backend/internal/hash"
	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/repo"
)

func newUserService(db *gorm.DB) *UserService {
	return &UserService{Repo: &repo.GormRepo{DB: db}}
}

func strPtr(s string) *string { return &s }

func TestUserService_UpdateAccount(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	user := seedUser(t, db, "me@example.com")
	svc := newUserService(db)

	updated, err := svc.UpdateAccount(context.Background(), user.ID, AccountUpdate{
		Name:  strPtr("  New Name  "),
		Image: strPtr("/avatars/me.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name, "name is trimmed")
	assert.Equal(t, "/avatars/me.png", updated.Image)
}

func TestUserService_UpdateAccount_NothingToUpdate(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	user := seedUser(t, db, "me@example.com")
	svc := newUserService(db)

	_, err := svc.UpdateAccount(context.Background(), user.ID, AccountUpdate{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNothingToUpdate, "an empty patch is an error, not a silent success")
}

func TestUserService_UpdateAccount_ShortName(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	user := seedUser(t, db, "me@example.com")
	svc := newUserService(db)

	_, err := svc.UpdateAccount(context.Background(), user.ID, AccountUpdate{Name: strPtr(" a ")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_UpdateUser_Role(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	user := seedUser(t, db, "promotee@example.com")
	svc := newUserService(db)

	role := models.RoleAdmin
	updated, err := svc.UpdateUser(context.Background(), user.ID, UserUpdate{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestUserService_UpdateUser_UnknownRole(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	user := seedUser(t, db, "promotee@example.com")
	svc := newUserService(db)

	role := models.Role("root")
	_, err := svc.UpdateUser(context.Background(), user.ID, UserUpdate{Role: &role})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_ChangeEmail(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	user := seedUser(t, db, "old@example.com")
	svc := newUserService(db)

	updated, err := svc.ChangeEmail(context.Background(), user.ID, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestUserService_ChangeEmail_TakenIsConflict(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	user := seedUser(t, db, "one@example.com")
	seedUser(t, db, "two@example.com")
	svc := newUserService(db)

	_, err := svc.ChangeEmail(context.Background(), user.ID, "two@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	user := seedUser(t, db, "me@example.com")
	svc := newUserService(db)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "hunter2hunter2"))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash, "password is stored hashed")
	assert.True(t, hash.Check(stored.PasswordHash, "hunter2hunter2"))
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	user := seedUser(t, db, "bye@example.com")
	svc := newUserService(db)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

	err := svc.DeleteUser(context.Background(), user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	svc := &AuthService{
		Repo:          &repo.GormRepo{DB: db},
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = svc.Register(ctx, "Other Ana", "ana@example.com", "different pass")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	logged, pair, err := svc.Login(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong pass")
	require.Error(t, err)
}
