package services

import (
	"context"
	"fmt"

	"github.com/pensign/cardroom/broadcast/kafka_broadcast"
	"github.com/pensign/cardroom/broadcast/local"
	"github.com/pensign/cardroom/coordinator/config"
	"github.com/pensign/cardroom/coordinator/modules/docstore"
	"github.com/pensign/cardroom/coordinator/modules/keystore"
	"github.com/pensign/cardroom/coordinator/modules/logger"
	"github.com/pensign/cardroom/coordinator/modules/notifier"
	"github.com/pensign/cardroom/coordinator/modules/pdfsign"
	"github.com/pensign/cardroom/coordinator/modules/session"
	"github.com/pensign/cardroom/coordinator/repositories/collection"
	"github.com/pensign/cardroom/coordinator/services/room"
	"github.com/pensign/cardroom/coordinator/services/signing"
	"github.com/pensign/cardroom/coordinator/services/workflow"
	"github.com/pensign/cardroom/coordinator/types"
)

const busKeyName = "bus_signing_key"

// InitServices builds the full dependency graph from configuration.
func InitServices(cfg *config.Config) (*ServiceProvider, error) {
	sp := &ServiceProvider{}

	log := logger.NewLogger(cfg.InstanceName)
	sp.SetLogger(log)

	collections, err := collection.NewCollectionRepo(cfg.CollectionsDBDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to init collection repo: %w", err)
	}
	sp.SetCollectionRepo(collections)

	docStorage, err := docstore.NewFileStorage(cfg.DocStorageConfig.BaseDir, cfg.DocStorageConfig.LockFile)
	if err != nil {
		return nil, fmt.Errorf("failed to init document storage: %w", err)
	}
	sp.SetDocStorage(docStorage)

	signService := pdfsign.NewHTTPSignService(cfg.SignServiceConfig.BaseUrl, cfg.SignServiceConfig.Timeout)
	sp.SetSignService(signService)

	var notify notifier.Notifier
	if cfg.NotifierConfig.Backend == "http" {
		notify = notifier.NewHTTPNotifier(cfg.NotifierConfig.BaseUrl, cfg.NotifierConfig.Timeout)
	} else {
		notify = notifier.NewLogNotifier(log)
	}
	sp.SetNotifier(notify)

	localBroadcaster := local.NewLocalBroadcaster()
	if cfg.KafkaBroadcastConfig != nil && cfg.KafkaBroadcastConfig.Enabled {
		keyStore, err := keystore.NewLevelDBKeyStore(cfg.KeyStoreDBDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to init key store: %w", err)
		}
		sp.SetKeyStore(keyStore)

		keyPair, err := keyStore.LoadKeys(busKeyName)
		if err != nil {
			return nil, fmt.Errorf("failed to LoadKeys: %w", err)
		}

		kafkaBroadcaster, err := kafka_broadcast.NewKafkaBroadcaster(
			localBroadcaster,
			log,
			cfg.KafkaBroadcastConfig.DBDSN,
			cfg.KafkaBroadcastConfig.Topic,
			cfg.KafkaBroadcastConfig.ConsumerGroup,
			cfg.KafkaBroadcastConfig.TlsConfig,
			cfg.KafkaBroadcastConfig.ProducerCredentials,
			cfg.KafkaBroadcastConfig.ConsumerCredentials,
			cfg.KafkaBroadcastConfig.Timeout,
			keyPair.Priv,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to init kafka broadcaster: %w", err)
		}
		sp.SetBroadcaster(kafkaBroadcaster)
	} else {
		sp.SetBroadcaster(localBroadcaster)
	}

	// Abandoned sessions surface through the eviction hook only: the
	// platform decides whether to mark the document as failed.
	onEviction := func(roomToken string, sess *types.SigningSession) {
		log.Log("session %s evicted after TTL, collection %s", roomToken, sess.CollectionID)

		coll, err := collections.GetCollection(sess.CollectionID)
		if err != nil {
			return
		}
		if err := notify.SendEmailNotification(context.Background(), notifier.NotificationSessionAbandoned, coll, nil); err != nil {
			log.Log("failed to send abandonment notification for %s: %v", sess.CollectionID, err)
		}
	}

	var sessionStore session.Store
	if cfg.SessionStoreConfig.Backend == "leveldb" {
		sessionStore, err = session.NewLevelDBStore(cfg.SessionStoreConfig.DBDSN, cfg.SessionStoreConfig.TTL, onEviction)
		if err != nil {
			return nil, fmt.Errorf("failed to init leveldb session store: %w", err)
		}
	} else {
		sessionStore = session.NewMemoryStore(cfg.SessionStoreConfig.TTL, onEviction)
	}
	sp.SetSessionStore(sessionStore)

	completionService := workflow.NewCompletionService(
		collections,
		log,
		workflow.NewOnlineFlow(notify, cfg.WorkflowConfig, nil, log),
		workflow.NewGroupSignFlow(notify, cfg.WorkflowConfig, nil, log),
		workflow.NewOrderedGroupSignFlow(notify, cfg.WorkflowConfig, nil, log),
	)
	sp.SetCompletionService(completionService)

	signingService := signing.NewSigningService(
		sessionStore,
		docStorage,
		signService,
		sp.GetBroadcaster(),
		completionService,
		log,
	)
	sp.SetSigningService(signingService)

	roomService := room.NewRoomService(sessionStore, sp.GetBroadcaster(), signingService, log)
	sp.SetRoomService(roomService)

	return sp, nil
}
