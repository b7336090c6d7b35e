package mocks

//go:generate mockgen -source=./../broadcast/types.go -destination=./broadcastMocks/broadcast_mock.go -package=broadcastMocks
//go:generate mockgen -source=./../coordinator/modules/pdfsign/pdfsign.go -destination=./signMocks/pdfsign_mock.go -package=signMocks
//go:generate mockgen -source=./../coordinator/modules/notifier/notifier.go -destination=./notifierMocks/notifier_mock.go -package=notifierMocks
//go:generate mockgen -source=./../coordinator/modules/docstore/docstore.go -destination=./docstoreMocks/docstore_mock.go -package=docstoreMocks
//go:generate mockgen -source=./../coordinator/repositories/collection/collection.go -destination=./repoMocks/collection_mock.go -package=repoMocks
//go:generate mockgen -source=./../coordinator/services/workflow/workflow_service.go -destination=./serviceMocks/workflow_mock.go -package=serviceMocks
//go:generate mockgen -source=./../coordinator/services/signing/signing_service.go -destination=./serviceMocks/signing_mock.go -package=serviceMocks
