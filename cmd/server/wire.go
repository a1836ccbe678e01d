// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"studybuddy_backend/internal/app"
	"studybuddy_backend/internal/auth"
	"studybuddy_backend/internal/config"
	"studybuddy_backend/internal/dashboard"
	"studybuddy_backend/internal/firebase"
	"studybuddy_backend/internal/jobs"
	"studybuddy_backend/internal/notification"
	"studybuddy_backend/internal/platform/logger"
	"studybuddy_backend/internal/profile"
	"studybuddy_backend/internal/shared"
	"studybuddy_backend/internal/signup"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		provideDatabase,

		// Hosted provider
		provideFirebase,
		wire.Bind(new(shared.IdentityProvider), new(*firebase.FirebaseService)),
		wire.Bind(new(shared.Authenticator), new(*firebase.FirebaseService)),
		wire.Bind(new(profile.FirestoreProvider), new(*firebase.FirebaseService)),

		// Profiles
		profile.NewStore,
		profile.NewGORMGapRepository,

		// Signup flow
		signup.NewCacheStore,
		wire.Bind(new(signup.Store), new(*signup.CacheStore)),
		signup.NewSimulatedAuthorizer,
		wire.Bind(new(signup.PaymentAuthorizer), new(*signup.SimulatedAuthorizer)),
		notification.NewMailer,
		signup.NewController,
		wire.Bind(new(signup.Service), new(*signup.Controller)),
		signup.NewHandler,

		// Login / logout
		auth.NewInMemoryBlocklistService,
		wire.Bind(new(auth.TokenBlocklistService), new(*auth.InMemoryBlocklistService)),
		auth.NewService,
		auth.NewHandler,

		dashboard.NewHandler,
		jobs.NewReconciliationReportJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
