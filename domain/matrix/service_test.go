package matrix

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/objects"
	"github.com/nomgrid/nomgrid/domain/relationships"
	"github.com/nomgrid/nomgrid/internal/config"
)

type testEnv struct {
	matrix        *Service
	objects       *objects.Service
	relationships *relationships.Service
	locks         *locks.Service
	projectID     uuid.UUID
	userID        uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Collab.LockGrantDuration = 5 * time.Minute

	log := slog.Default()
	objectSvc := objects.NewService(objects.NewMemoryStore(), log)
	relationshipSvc := relationships.NewService(relationships.NewMemoryStore(), objectSvc, log)
	lockSvc := locks.NewService(locks.NewMemoryStore(), cfg, log)

	return &testEnv{
		matrix:        NewService(objectSvc, relationshipSvc, lockSvc, log),
		objects:       objectSvc,
		relationships: relationshipSvc,
		locks:         lockSvc,
		projectID:     uuid.New(),
		userID:        uuid.New(),
	}
}

func (e *testEnv) createObject(t *testing.T, name string, synonyms ...string) *objects.Object {
	t.Helper()
	obj, err := e.objects.Create(context.Background(), e.projectID, e.userID, &objects.CreateObjectRequest{
		Name:     name,
		Synonyms: synonyms,
	})
	require.NoError(t, err)
	return obj
}

func (e *testEnv) relate(t *testing.T, src, dst *objects.Object) *relationships.Relationship {
	t.Helper()
	rel, err := e.relationships.Create(context.Background(), e.projectID, e.userID, &relationships.CreateRelationshipRequest{
		SourceID: src.ID,
		TargetID: dst.ID,
	})
	require.NoError(t, err)
	return rel
}

func cellFor(t *testing.T, m *Matrix, src, dst uuid.UUID) Cell {
	t.Helper()
	for _, row := range m.Cells {
		for _, cell := range row {
			if cell.SourceID == src && cell.TargetID == dst {
				return cell
			}
		}
	}
	t.Fatalf("no cell for pair (%s, %s)", src, dst)
	return Cell{}
}

func TestAssembleEmptyProject(t *testing.T) {
	env := newTestEnv(t)

	m, err := env.matrix.Assemble(context.Background(), env.projectID)
	require.NoError(t, err)
	assert.Zero(t, m.TotalObjects)
	assert.Zero(t, m.TotalRelationships)
	assert.Zero(t, m.CompletionPercent)
	assert.Empty(t, m.Cells)
}

func TestAssembleSingleObject(t *testing.T) {
	env := newTestEnv(t)
	obj := env.createObject(t, "Solo")

	m, err := env.matrix.Assemble(context.Background(), env.projectID)
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalObjects)
	assert.Zero(t, m.CompletionPercent)

	cell := cellFor(t, m, obj.ID, obj.ID)
	assert.True(t, cell.IsSelfReference)
	assert.False(t, cell.CanEdit)
}

func TestAssembleGridShapeAndOrder(t *testing.T) {
	env := newTestEnv(t)
	env.createObject(t, "Gamma")
	env.createObject(t, "Alpha")
	env.createObject(t, "Beta")
	env.createObject(t, "Delta")

	m, err := env.matrix.Assemble(context.Background(), env.projectID)
	require.NoError(t, err)

	require.Equal(t, 4, m.TotalObjects)
	require.Len(t, m.Cells, 4)
	for _, row := range m.Cells {
		assert.Len(t, row, 4)
	}

	// Rows follow name order, reproducibly
	names := make([]string, len(m.Objects))
	for i, obj := range m.Objects {
		names[i] = obj.Name
	}
	assert.Equal(t, []string{"Alpha", "Beta", "Delta", "Gamma"}, names)

	// Diagonal is never editable
	for i := range m.Cells {
		assert.True(t, m.Cells[i][i].IsSelfReference)
		assert.False(t, m.Cells[i][i].CanEdit)
	}
}

func TestAssembleEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createObject(t, "A")
	b := env.createObject(t, "B")
	env.createObject(t, "C")

	env.relate(t, a, b)

	m, err := env.matrix.Assemble(ctx, env.projectID)
	require.NoError(t, err)

	assert.Equal(t, 3, m.TotalObjects)
	assert.Equal(t, 1, m.TotalRelationships)
	assert.InDelta(t, 100.0/6.0, m.CompletionPercent, 0.01)

	assert.NotNil(t, cellFor(t, m, a.ID, b.ID).Relationship)
	assert.Nil(t, cellFor(t, m, b.ID, a.ID).Relationship)
	assert.False(t, cellFor(t, m, a.ID, a.ID).CanEdit)
}

func TestAssembleReflectsLocks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createObject(t, "A")
	b := env.createObject(t, "B")

	holder := uuid.New()
	_, err := env.locks.Acquire(ctx, env.projectID, holder, "sess-1", locks.Pair{SourceID: a.ID, TargetID: b.ID}, locks.KindEdit)
	require.NoError(t, err)

	m, err := env.matrix.Assemble(ctx, env.projectID)
	require.NoError(t, err)

	locked := cellFor(t, m, a.ID, b.ID)
	assert.True(t, locked.IsLocked)
	require.NotNil(t, locked.LockedBy)
	assert.Equal(t, holder, *locked.LockedBy)

	free := cellFor(t, m, b.ID, a.ID)
	assert.False(t, free.IsLocked)
	assert.Nil(t, free.LockedBy)
}

func TestAssembleSummaries(t *testing.T) {
	env := newTestEnv(t)
	a := env.createObject(t, "A", "alpha", "first")
	b := env.createObject(t, "B")
	c := env.createObject(t, "C")

	env.relate(t, a, b)
	env.relate(t, a, c)
	env.relate(t, b, a)

	m, err := env.matrix.Assemble(context.Background(), env.projectID)
	require.NoError(t, err)

	byName := make(map[string]ObjectSummary)
	for _, s := range m.Summaries {
		byName[s.Name] = s
	}

	assert.Equal(t, 2, byName["A"].Outgoing)
	assert.Equal(t, 1, byName["A"].Incoming)
	assert.Equal(t, 2, byName["A"].SynonymCount)
	assert.Equal(t, 1, byName["B"].Outgoing)
	assert.Equal(t, 1, byName["B"].Incoming)
	assert.Zero(t, byName["C"].Outgoing)
	assert.Equal(t, 1, byName["C"].Incoming)
}

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		rels     int
		expected float64
	}{
		{name: "no objects", n: 0, rels: 0, expected: 0},
		{name: "single object", n: 1, rels: 0, expected: 0},
		{name: "empty grid", n: 3, rels: 0, expected: 0},
		{name: "one of six", n: 3, rels: 1, expected: 100.0 / 6.0},
		{name: "half full", n: 3, rels: 3, expected: 50},
		{name: "full grid", n: 3, rels: 6, expected: 100},
		{name: "overfull clamps", n: 2, rels: 5, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, completionPercent(tt.n, tt.rels), 0.0001)
		})
	}
}
