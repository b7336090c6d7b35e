package collection

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/pensign/cardroom/coordinator/types"
	"github.com/stretchr/testify/require"
)

func testDbPath(t *testing.T) string {
	t.Helper()

	path := "/tmp/cardroom_test_collections_" + uuid.New().String()
	t.Cleanup(func() { os.RemoveAll(path) })

	return path
}

func TestBaseCollectionRepo(t *testing.T) {
	req := require.New(t)
	dbPath := testDbPath(t)

	repo, err := NewCollectionRepo(dbPath)
	req.NoError(err)

	_, err = repo.GetCollection("collection_id")
	req.ErrorIs(err, ErrNotFound)

	coll := &types.DocumentCollection{
		ID:          "collection_id",
		Mode:        types.SigningModeOrderedGroupSign,
		DocumentIDs: []string{"document_id"},
		Signers: []types.Signer{
			{Token: "signer_1", Email: "one@example.com", Status: types.SignerStatusPending},
			{Token: "signer_2", Email: "two@example.com", Status: types.SignerStatusPending},
		},
	}
	req.NoError(repo.SaveCollection(coll))

	got, err := repo.GetCollection("collection_id")
	req.NoError(err)
	req.Empty(cmp.Diff(coll, got))

	// Saving again overwrites in place.
	coll.Signers[0].Status = types.SignerStatusSigned
	req.NoError(repo.SaveCollection(coll))

	req.NoError(repo.Close())

	// Collections survive a restart.
	reopened, err := NewCollectionRepo(dbPath)
	req.NoError(err)
	defer reopened.Close()

	got, err = reopened.GetCollection("collection_id")
	req.NoError(err)
	req.Equal(types.SignerStatusSigned, got.Signers[0].Status)

	req.NoError(reopened.DeleteCollection("collection_id"))
	_, err = reopened.GetCollection("collection_id")
	req.ErrorIs(err, ErrNotFound)

	// Deleting a missing collection is a no-op.
	req.NoError(reopened.DeleteCollection("collection_id"))
}
