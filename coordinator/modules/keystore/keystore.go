package keystore

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

const secretsKey = "secrets"

type KeyPair struct {
	Pub  ed25519.PublicKey
	Priv ed25519.PrivateKey
}

func NewKeyPair() *KeyPair {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		// Never happens with crypto/rand.
		panic(err)
	}

	return &KeyPair{
		Pub:  pub,
		Priv: priv,
	}
}

// KeyStore holds the bus signing keypair shared by coordinator
// instances. Envelopes on the broadcast topic are signed with it so a
// consumer can drop messages that did not come from the cluster.
type KeyStore interface {
	PutKeys(name string, keyPair *KeyPair) error
	LoadKeys(name string) (*KeyPair, error)
}

var _ KeyStore = (*LevelDBKeyStore)(nil)

type LevelDBKeyStore struct {
	keystoreDb *leveldb.DB
}

func NewLevelDBKeyStore(keystorePath string) (*LevelDBKeyStore, error) {
	db, err := leveldb.OpenFile(keystorePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open keystore: %w", err)
	}

	keystore := &LevelDBKeyStore{
		keystoreDb: db,
	}

	if _, err := keystore.keystoreDb.Get([]byte(secretsKey), nil); err != nil {
		bz, err := json.Marshal(map[string]*KeyPair{})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal empty keystore: %w", err)
		}
		if err := db.Put([]byte(secretsKey), bz, nil); err != nil {
			return nil, fmt.Errorf("failed to init keystore: %w", err)
		}
	}

	return keystore, nil
}

func (s *LevelDBKeyStore) PutKeys(name string, keyPair *KeyPair) error {
	keyPairs, err := s.loadAll()
	if err != nil {
		return err
	}

	keyPairs[name] = keyPair

	keyPairsBz, err := json.Marshal(keyPairs)
	if err != nil {
		return fmt.Errorf("failed to marshal key pairs: %w", err)
	}

	if err := s.keystoreDb.Put([]byte(secretsKey), keyPairsBz, nil); err != nil {
		return fmt.Errorf("failed to put key pairs: %w", err)
	}

	return nil
}

func (s *LevelDBKeyStore) LoadKeys(name string) (*KeyPair, error) {
	keyPairs, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	keyPair, ok := keyPairs[name]
	if !ok {
		return nil, fmt.Errorf("no key pair found for %s", name)
	}

	return keyPair, nil
}

func (s *LevelDBKeyStore) loadAll() (map[string]*KeyPair, error) {
	bz, err := s.keystoreDb.Get([]byte(secretsKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	var keyPairs = map[string]*KeyPair{}
	if err := json.Unmarshal(bz, &keyPairs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key pairs: %w", err)
	}

	return keyPairs, nil
}
