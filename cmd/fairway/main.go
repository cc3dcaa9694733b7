package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"fairway/config"
	"fairway/internal/delivery"
	"fairway/internal/delivery/http"
	"fairway/internal/delivery/http/middleware"
	"fairway/internal/delivery/http/router/handler"
	deliverymiddleware "fairway/internal/delivery/middleware"
	"fairway/internal/infra/auth"
	"fairway/internal/infra/firebase"
	logs "fairway/internal/infra/log"
	"fairway/internal/infra/notify"
	firestorerepo "fairway/internal/infra/persistence/firestore"
	"fairway/internal/infra/storage"
	"fairway/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firebase.NewApp,
		firebase.NewAuthClient,
		firebase.NewFirestoreClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestorerepo.NewProfileRepository,
			firestorerepo.NewCourseRepository,
			firestorerepo.NewRoundRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			auth.NewIdentityService,
			auth.NewPhoneVerifier,
			auth.NewStateSource,
			storage.NewPhotoStore,
			notify.NewHub,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewCourseService,
			impl.NewRoundService,
			impl.NewStatsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProfileHandler,
			handler.NewCourseHandler,
			handler.NewRoundHandler,
			handler.NewDashboardHandler,
			handler.NewPageHandler,
			handler.NewStreamHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
