package container

import (
	"shortboard/internal/blob"
	"shortboard/internal/integrations/googlesheets"
	"shortboard/internal/store"
	"shortboard/internal/tracking"
	"shortboard/internal/users"
	"shortboard/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Store           *store.Store
	UserRepository  users.Repository
	LoginHandler    *security.LoginHandler
	UserHandler     *users.UsersHandler
	TrackingHandler *tracking.TrackingHandler
	SheetsHandler   *googlesheets.SheetsHandler
}

func NewAppContainer(b blob.Store, log *zap.Logger) *Container {
	st := store.New(b, log)
	userRepo := users.NewRepository(st)
	trackingService := tracking.NewService(st, nil, log)
	trackingHandler := tracking.NewHandler(trackingService)
	userHandler := users.NewHandler(userRepo)
	loginHandler := security.NewLoginHandler(userRepo)

	// The sheets integration needs Google credentials; without them the
	// rest of the service still runs.
	var sheetsHandler *googlesheets.SheetsHandler
	sheetsService, err := googlesheets.NewShortageSheetService()
	if err != nil {
		log.Warn("Google Sheets integration disabled", zap.Error(err))
	} else {
		sheetsHandler = googlesheets.NewHandler(sheetsService, trackingService)
	}

	return &Container{
		Store:           st,
		UserRepository:  userRepo,
		LoginHandler:    loginHandler,
		UserHandler:     userHandler,
		TrackingHandler: trackingHandler,
		SheetsHandler:   sheetsHandler,
	}
}
