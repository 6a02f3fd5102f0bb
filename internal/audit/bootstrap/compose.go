package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"guideadmin/internal/audit/adapters/in/in_amqp"
	"guideadmin/internal/audit/adapters/in/transport"
	"guideadmin/internal/audit/adapters/out/repo"
	"guideadmin/internal/audit/application/usecase"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/config"
	db_conn "guideadmin/internal/shared/db"
	"guideadmin/internal/shared/logger"
	"guideadmin/internal/shared/mq"
)

// Run запускает Audit Service: consumer admin.actions + API журнала
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "audit_service_starting", Message: "initializing audit service"})

	// 1. PostgreSQL
	dbPool, err := db_conn.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer db_conn.Close(dbPool, log)

	if err := db_conn.Migrate(ctx, dbPool, log); err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_migration_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// 2. Репозиторий и use cases
	actionRepo := repo.NewActionPgRepository(dbPool, log)
	recordUC := usecase.NewRecordActionService(actionRepo, log)
	listUC := usecase.NewListActionsService(actionRepo, log)

	// 3. RabbitMQ consumer
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

		if err := in_amqp.NewActionConsumer(rabbit, recordUC, log).Start(ctx); err != nil {
			log.Fatal(logger.Entry{
				Action:  "action_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	} else {
		log.Warn(logger.Entry{
			Action:  "rabbitmq_disabled",
			Message: "RABBITMQ_ENABLED=false, journal is read-only",
		})
	}

	// 4. HTTP API
	sessions := auth.NewSessionService(cfg.Session)
	mux := http.NewServeMux()
	transport.NewHTTPHandler(listUC, log).
		RegisterRoutes(mux, transport.AdminAuthMiddleware(sessions, cfg.Session.AdminRole, log))

	addr := fmt.Sprintf(":%d", cfg.Services.AuditPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           transport.RequestID(mux),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
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
	log.Info(logger.Entry{Action: "audit_service_stopping", Message: "shutting down audit service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	log.Info(logger.Entry{Action: "audit_service_stopped", Message: "audit service stopped"})
}
