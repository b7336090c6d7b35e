package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/pensign/cardroom/coordinator/types"
	"github.com/syndtr/goleveldb/leveldb"
)

const collectionsKey = "document_collections"

var ErrNotFound = errors.New("collection not found")

// CollectionRepo gives the completion workflow read/write access to
// document collections. The platform remains the source of truth, the
// repo is the coordinator's working copy of signer order and status.
type CollectionRepo interface {
	GetCollection(collectionID string) (*types.DocumentCollection, error)
	SaveCollection(collection *types.DocumentCollection) error
	DeleteCollection(collectionID string) error
}

var _ CollectionRepo = (*BaseCollectionRepo)(nil)

type BaseCollectionRepo struct {
	sync.Mutex
	stateDb *leveldb.DB
}

func NewCollectionRepo(stateDbPath string) (*BaseCollectionRepo, error) {
	db, err := leveldb.OpenFile(stateDbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open collections stateDB: %w", err)
	}

	repo := &BaseCollectionRepo{
		stateDb: db,
	}

	if _, err := repo.stateDb.Get([]byte(collectionsKey), nil); err != nil {
		if err := repo.initJsonKey(collectionsKey, map[string]*types.DocumentCollection{}); err != nil {
			return nil, fmt.Errorf("failed to init %s storage: %w", collectionsKey, err)
		}
	}

	return repo, nil
}

func (r *BaseCollectionRepo) initJsonKey(key string, data interface{}) error {
	bz, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal storage structure: %w", err)
	}
	if err := r.stateDb.Put([]byte(key), bz, nil); err != nil {
		return fmt.Errorf("failed to init state: %w", err)
	}

	return nil
}

func (r *BaseCollectionRepo) GetCollection(collectionID string) (*types.DocumentCollection, error) {
	r.Lock()
	defer r.Unlock()

	collections, err := r.getCollections()
	if err != nil {
		return nil, fmt.Errorf("failed to getCollections: %w", err)
	}

	collection, ok := collections[collectionID]
	if !ok {
		return nil, ErrNotFound
	}

	return collection, nil
}

func (r *BaseCollectionRepo) SaveCollection(collection *types.DocumentCollection) error {
	r.Lock()
	defer r.Unlock()

	collections, err := r.getCollections()
	if err != nil {
		return fmt.Errorf("failed to getCollections: %w", err)
	}

	collections[collection.ID] = collection

	return r.putCollections(collections)
}

func (r *BaseCollectionRepo) DeleteCollection(collectionID string) error {
	r.Lock()
	defer r.Unlock()

	collections, err := r.getCollections()
	if err != nil {
		return fmt.Errorf("failed to getCollections: %w", err)
	}

	delete(collections, collectionID)

	return r.putCollections(collections)
}

func (r *BaseCollectionRepo) Close() error {
	if err := r.stateDb.Close(); err != nil {
		return fmt.Errorf("failed to close collections stateDB: %w", err)
	}

	return nil
}

func (r *BaseCollectionRepo) getCollections() (map[string]*types.DocumentCollection, error) {
	bz, err := r.stateDb.Get([]byte(collectionsKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get collections (key: %s): %w", collectionsKey, err)
	}

	var collections map[string]*types.DocumentCollection
	if err := json.Unmarshal(bz, &collections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collections: %w", err)
	}

	return collections, nil
}

func (r *BaseCollectionRepo) putCollections(collections map[string]*types.DocumentCollection) error {
	collectionsJSON, err := json.Marshal(collections)
	if err != nil {
		return fmt.Errorf("failed to marshal collections: %w", err)
	}

	if err := r.stateDb.Put([]byte(collectionsKey), collectionsJSON, nil); err != nil {
		return fmt.Errorf("failed to put collections: %w", err)
	}

	return nil
}
