package dao_test

import (
	"context"
	"os"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warden-authz/warden/dao"
	warden_errors "github.com/warden-authz/warden/errors"
	logger "github.com/warden-authz/warden/logging"
	"github.com/warden-authz/warden/model"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	os.Exit(m.Run())
}

// newUnreachableDAO builds a DAO over a driver that has never connected.
// Creating a driver performs no I/O, so these tests exercise only the
// context plumbing, not a live database.
func newUnreachableDAO(t *testing.T) *dao.PolicyDAO {
	t.Helper()
	driver, err := neo4j.NewDriverWithContext("bolt://127.0.0.1:17687", neo4j.NoAuth())
	require.NoError(t, err)
	t.Cleanup(func() { driver.Close(context.Background()) })
	return &dao.PolicyDAO{Driver: driver}
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestPutCanceledContext(t *testing.T) {
	d := newUnreachableDAO(t)

	_, err := d.Put(canceledContext(), model.Policy{
		Level:   model.LevelGroup,
		Subject: "alice@x.com",
		Object:  "group1",
		Role:    "customer",
	})
	assert.ErrorIs(t, err, warden_errors.ErrStorageOperation)
}

func TestScanBySubjectCanceledContext(t *testing.T) {
	d := newUnreachableDAO(t)

	_, err := d.ScanBySubject(canceledContext(), "alice@x.com")
	assert.ErrorIs(t, err, warden_errors.ErrStorageOperation)
}

func TestDeleteCanceledContext(t *testing.T) {
	d := newUnreachableDAO(t)

	err := d.Delete(canceledContext(), model.LevelGroup, "alice@x.com", "group1")
	assert.ErrorIs(t, err, warden_errors.ErrStorageOperation)
}
