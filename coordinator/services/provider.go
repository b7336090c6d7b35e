package services

import (
	"github.com/pensign/cardroom/broadcast"
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
)

// ServiceProvider wires modules and services together; tests override
// individual slots with mocks.
type ServiceProvider struct {
	logger       logger.Logger
	sessionStore session.Store
	docStorage   docstore.Storage
	signService  pdfsign.SignService
	notifier     notifier.Notifier
	keyStore     keystore.KeyStore
	broadcaster  broadcast.Broadcaster
	collections  collection.CollectionRepo

	completionService workflow.CompletionService
	signingService    signing.SigningService
	roomService       room.RoomService
}

func (p *ServiceProvider) SetLogger(l logger.Logger)         { p.logger = l }
func (p *ServiceProvider) GetLogger() logger.Logger          { return p.logger }
func (p *ServiceProvider) SetSessionStore(s session.Store)   { p.sessionStore = s }
func (p *ServiceProvider) GetSessionStore() session.Store    { return p.sessionStore }
func (p *ServiceProvider) SetDocStorage(d docstore.Storage)  { p.docStorage = d }
func (p *ServiceProvider) GetDocStorage() docstore.Storage   { return p.docStorage }
func (p *ServiceProvider) SetSignService(s pdfsign.SignService) { p.signService = s }
func (p *ServiceProvider) GetSignService() pdfsign.SignService  { return p.signService }
func (p *ServiceProvider) SetNotifier(n notifier.Notifier)   { p.notifier = n }
func (p *ServiceProvider) GetNotifier() notifier.Notifier    { return p.notifier }
func (p *ServiceProvider) SetKeyStore(k keystore.KeyStore)   { p.keyStore = k }
func (p *ServiceProvider) GetKeyStore() keystore.KeyStore    { return p.keyStore }
func (p *ServiceProvider) SetBroadcaster(b broadcast.Broadcaster) { p.broadcaster = b }
func (p *ServiceProvider) GetBroadcaster() broadcast.Broadcaster  { return p.broadcaster }
func (p *ServiceProvider) SetCollectionRepo(r collection.CollectionRepo) { p.collections = r }
func (p *ServiceProvider) GetCollectionRepo() collection.CollectionRepo  { return p.collections }

func (p *ServiceProvider) SetCompletionService(s workflow.CompletionService) { p.completionService = s }
func (p *ServiceProvider) GetCompletionService() workflow.CompletionService  { return p.completionService }
func (p *ServiceProvider) SetSigningService(s signing.SigningService)        { p.signingService = s }
func (p *ServiceProvider) GetSigningService() signing.SigningService         { return p.signingService }
func (p *ServiceProvider) SetRoomService(s room.RoomService)                 { p.roomService = s }
func (p *ServiceProvider) GetRoomService() room.RoomService                  { return p.roomService }
