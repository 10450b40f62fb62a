package objects

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomgrid/nomgrid/pkg/apperror"
)

func newTestService() *Service {
	svc := NewService(NewMemoryStore(), slog.Default())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateObject(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	projectID := uuid.New()
	userID := uuid.New()

	obj, err := svc.Create(ctx, projectID, userID, &CreateObjectRequest{
		Name:        "Customer",
		Description: "A paying customer",
		Synonyms:    []string{"client", "buyer"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Customer", obj.Name)
	assert.Equal(t, projectID, obj.ProjectID)
	assert.Equal(t, &userID, obj.CreatedBy)
	assert.Len(t, obj.Synonyms, 2)
}

func TestCreateObjectEmptyName(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &CreateObjectRequest{Name: "   "})
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.HTTPStatus)
}

func TestCreateObjectDuplicateName(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	projectID := uuid.New()
	userID := uuid.New()

	_, err := svc.Create(ctx, projectID, userID, &CreateObjectRequest{Name: "Order"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, projectID, userID, &CreateObjectRequest{Name: "Order"})
	assert.True(t, apperror.IsConflict(err))

	// Same name in another project is fine
	_, err = svc.Create(ctx, uuid.New(), userID, &CreateObjectRequest{Name: "Order"})
	assert.NoError(t, err)
}

func TestListObjectsOrderedByName(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	projectID := uuid.New()
	userID := uuid.New()

	for _, name := range []string{"Zebra", "Apple", "Mango"} {
		_, err := svc.Create(ctx, projectID, userID, &CreateObjectRequest{Name: name})
		require.NoError(t, err)
	}

	objs, err := svc.List(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, objs, 3)
	assert.Equal(t, "Apple", objs[0].Name)
	assert.Equal(t, "Mango", objs[1].Name)
	assert.Equal(t, "Zebra", objs[2].Name)
}

func TestUpdateObjectPartialFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	projectID := uuid.New()
	userID := uuid.New()

	obj, err := svc.Create(ctx, projectID, userID, &CreateObjectRequest{
		Name:        "Invoice",
		Description: "original",
	})
	require.NoError(t, err)

	desc := "updated"
	updated, err := svc.Update(ctx, projectID, obj.ID, &UpdateObjectRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Invoice", updated.Name)
	assert.Equal(t, "updated", updated.Description)
}

func TestUpdateObjectNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &UpdateObjectRequest{})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteObject(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	projectID := uuid.New()

	obj, err := svc.Create(ctx, projectID, uuid.New(), &CreateObjectRequest{Name: "Temp"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, projectID, obj.ID))
	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, projectID, obj.ID)))

	_, err = svc.Get(ctx, projectID, obj.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteObjectWrongProject(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	projectID := uuid.New()

	obj, err := svc.Create(ctx, projectID, uuid.New(), &CreateObjectRequest{Name: "Scoped"})
	require.NoError(t, err)

	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, uuid.New(), obj.ID)))

	exists, err := svc.Exists(ctx, projectID, obj.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}
