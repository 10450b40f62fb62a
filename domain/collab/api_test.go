package collab_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomgrid/nomgrid/domain/collab"
	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/matrix"
	"github.com/nomgrid/nomgrid/domain/objects"
	"github.com/nomgrid/nomgrid/domain/presence"
	"github.com/nomgrid/nomgrid/internal/testutil"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func createObject(t *testing.T, ts *testutil.TestServer, userID, projectID uuid.UUID, name string) *objects.Object {
	t.Helper()

	resp := ts.Client.POST("/api/objects",
		testutil.WithIdentity(userID, projectID, "sess-"+name),
		testutil.WithJSONBody(map[string]any{"name": name}),
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.String())

	var obj objects.Object
	require.NoError(t, resp.JSON(&obj))
	return &obj
}

func TestAPIRequiresIdentity(t *testing.T) {
	ts := testutil.NewTestServer()

	resp := ts.Client.GET("/api/matrix")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// User header alone is not enough, project scope is required too
	resp = ts.Client.GET("/api/matrix",
		testutil.WithHeader("X-User-ID", uuid.NewString()),
	)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPICellEditFlow(t *testing.T) {
	ts := testutil.NewTestServer()

	projectID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	source := createObject(t, ts, alice, projectID, "Customer")
	target := createObject(t, ts, alice, projectID, "Order")

	editPath := fmt.Sprintf("/api/collab/cells/%s/%s/edit", source.ID, target.ID)

	// Alice starts editing the cell
	resp := ts.Client.POST(editPath+"?row=0&col=1",
		testutil.WithIdentity(alice, projectID, "sess-alice"),
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.String())

	var started collab.CellEditResult
	require.NoError(t, resp.JSON(&started))
	require.NotNil(t, started.Lock)
	assert.Equal(t, locks.KindEdit, started.Lock.Kind)
	assert.Equal(t, alice, started.Lock.HolderID)
	require.NotNil(t, started.Presence)
	assert.Equal(t, presence.ActivityEditing, started.Presence.Activity)

	// Bob cannot edit the same cell while Alice holds the lock
	resp = ts.Client.POST(editPath,
		testutil.WithIdentity(bob, projectID, "sess-bob"),
	)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var conflict errorBody
	require.NoError(t, resp.JSON(&conflict))
	assert.Equal(t, "cell_locked", conflict.Error.Code)

	// The matrix reflects the held lock
	resp = ts.Client.GET("/api/matrix",
		testutil.WithIdentity(bob, projectID, "sess-bob"),
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m matrix.Matrix
	require.NoError(t, resp.JSON(&m))
	require.Equal(t, 2, m.TotalObjects)

	locked := 0
	for _, row := range m.Cells {
		for _, cell := range row {
			if cell.IsLocked {
				locked++
				require.NotNil(t, cell.LockedBy)
				assert.Equal(t, alice, *cell.LockedBy)
			}
		}
	}
	assert.Equal(t, 1, locked)

	// Alice finishes her edit
	resp = ts.Client.DELETE(editPath,
		testutil.WithIdentity(alice, projectID, "sess-alice"),
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var finished map[string]bool
	require.NoError(t, resp.JSON(&finished))
	assert.True(t, finished["released"])

	// Bob can now take the cell
	resp = ts.Client.POST(editPath,
		testutil.WithIdentity(bob, projectID, "sess-bob"),
	)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, resp.String())
}

func TestAPIDiagonalCellRejected(t *testing.T) {
	ts := testutil.NewTestServer()

	projectID := uuid.New()
	userID := uuid.New()
	obj := createObject(t, ts, userID, projectID, "Customer")

	resp := ts.Client.POST(
		fmt.Sprintf("/api/collab/cells/%s/%s/edit", obj.ID, obj.ID),
		testutil.WithIdentity(userID, projectID, "sess-1"),
	)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body errorBody
	require.NoError(t, resp.JSON(&body))
	assert.Equal(t, "validation_error", body.Error.Code)
}

func TestAPIRelationshipRoundTrip(t *testing.T) {
	ts := testutil.NewTestServer()

	projectID := uuid.New()
	userID := uuid.New()

	source := createObject(t, ts, userID, projectID, "Customer")
	target := createObject(t, ts, userID, projectID, "Order")

	resp := ts.Client.POST("/api/relationships",
		testutil.WithIdentity(userID, projectID, "sess-1"),
		testutil.WithJSONBody(map[string]any{
			"sourceId": source.ID,
			"targetId": target.ID,
			"label":    "places",
		}),
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.String())

	// Duplicate pair conflicts
	resp = ts.Client.POST("/api/relationships",
		testutil.WithIdentity(userID, projectID, "sess-1"),
		testutil.WithJSONBody(map[string]any{
			"sourceId": source.ID,
			"targetId": target.ID,
		}),
	)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// The pair is searchable
	resp = ts.Client.GET(
		fmt.Sprintf("/api/relationships/search?source_id=%s", source.ID),
		testutil.WithIdentity(userID, projectID, "sess-1"),
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var search struct {
		Total int `json:"total"`
	}
	require.NoError(t, resp.JSON(&search))
	assert.Equal(t, 1, search.Total)
}
