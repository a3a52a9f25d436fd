package groupapp

import (
	"context"
	"testing"

	dbadapter "inkwell/internal/adapters/database"
	"inkwell/internal/core/apperror"
	"inkwell/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListGroups(t *testing.T) {
	db := testinfra.NewDB(t)
	svc := NewGroupService(dbadapter.NewGroupRepositoryDatabase(db))
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, "Dogs", "dogs", "")
	require.NoError(t, err)
	_, err = svc.CreateGroup(ctx, "Cats", "cats", "feline things")
	require.NoError(t, err)

	_, err = svc.CreateGroup(ctx, "Cats again", "cats", "")
	assert.Error(t, err, "slug is unique")

	_, err = svc.CreateGroup(ctx, "", "not a slug", "")
	verr, ok := apperror.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "slug")

	groups, err := svc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cats", groups[0].Title)
}
