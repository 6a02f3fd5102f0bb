package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"guideadmin/internal/dashboard/adapters/in/transport"
	"guideadmin/internal/dashboard/adapters/out/backend"
	"guideadmin/internal/dashboard/adapters/out/events"
	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/application/usecase"
	"guideadmin/internal/dashboard/viewstate"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/config"
	"guideadmin/internal/shared/logger"
	"guideadmin/internal/shared/mq"
	"guideadmin/internal/shared/ws"
)

const sweepInterval = 5 * time.Minute

// Run запускает Dashboard: страницы админки поверх REST API платформы
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{
		Action:  "dashboard_starting",
		Message: "initializing admin dashboard",
		Additional: map[string]any{
			"backend": cfg.Backend.BaseURL,
		},
	})

	// 1. Клиент бэкенда и сессии
	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), log)
	sessions := auth.NewSessionService(cfg.Session)

	// 2. Публикация событий в журнал действий
	var publisher out.ActionPublisher = events.NoopActionPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbit, err := mq.NewRabbitMQ(ctx, cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal(logger.Entry{
				Action:  "rabbitmq_connection_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
		defer rabbit.Close()

		if err := mq.SetupTopology(ctx, rabbit, log); err != nil {
			log.Fatal(logger.Entry{
				Action:  "rabbitmq_topology_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
		publisher = events.NewAMQPActionPublisher(rabbit, log)
	}

	// 3. Use cases
	uc := transport.UseCases{
		Login:               usecase.NewLoginService(api, sessions, log),
		Overview:            usecase.NewGetOverviewService(api, log),
		Analytics:           usecase.NewGetAnalyticsService(api, log),
		ListGuides:          usecase.NewListGuidesService(api, log),
		SetGuideSuspension:  usecase.NewSetGuideSuspensionService(api, publisher, log),
		ListRequests:        usecase.NewListRequestsService(api, log),
		GetRequest:          usecase.NewGetRequestService(api, log),
		ReviewRequest:       usecase.NewReviewRequestService(api, publisher, log),
		ListUsers:           usecase.NewListUsersService(api, log),
		ListBookings:        usecase.NewListBookingsService(api, log),
		ListContacts:        usecase.NewListContactsService(api, log),
		UpdateContactStatus: usecase.NewUpdateContactStatusService(api, publisher, log),
		ListReports:         usecase.NewListReportsService(api, log),
		UpdateReportStatus:  usecase.NewUpdateReportStatusService(api, publisher, log),
	}

	// 4. Состояние экранов живёт столько же, сколько сессия
	views := transport.NewViews(sessions.TTL())
	go viewstate.RunSweeper(ctx, sweepInterval, views.All()...)

	render, err := transport.NewRenderer()
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "templates_parse_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// 5. Live search
	hub := ws.NewHub(transport.SessionPrincipal, "", log)
	liveSearch := transport.NewLiveSearch(hub, uc.ListGuides, uc.ListUsers, views, render, log)
	go hub.Run(ctx)

	// 6. HTTP
	cookie := transport.SessionCookie{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.SecureCookie,
		TTL:    sessions.TTL(),
	}
	flash := transport.NewFlashStore(cfg.Session.Secret, cfg.Session.SecureCookie, log)
	httpHandler := transport.NewHTTPHandler(uc, views, render, flash, cookie, log)

	mux := http.NewServeMux()
	httpHandler.RegisterRoutes(mux, liveSearch)

	handler := transport.Chain(mux,
		transport.RequestID(log),
		transport.Gate(sessions, cookie, cfg.Session.ProtectedPrefixes, log),
		transport.CSRF(cfg.Session.Secret, cfg.Session.SecureCookie, log),
	)

	addr := fmt.Sprintf(":%d", cfg.Services.DashboardPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{
			Action:  "http_server_starting",
			Message: fmt.Sprintf("listening on %s", addr),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(logger.Entry{
				Action:  "http_server_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()
	log.Info(logger.Entry{Action: "dashboard_stopping", Message: "shutting down admin dashboard"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	} else {
		log.Info(logger.Entry{Action: "http_server_stopped", Message: "http server stopped gracefully"})
	}

	log.Info(logger.Entry{Action: "dashboard_stopped", Message: "admin dashboard stopped"})
}
