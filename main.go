package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"guideadmin/internal/shared/config"
	"guideadmin/internal/shared/logger"

	auditboot "guideadmin/internal/audit/bootstrap"
	dashboardboot "guideadmin/internal/dashboard/bootstrap"
)

func main() {
	svc := flag.String("service", "dashboard", "dashboard|audit|all")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	switch *svc {
	case "dashboard":
		dashboardboot.Run(ctx, cfg, logger.NewLogger("admin-dashboard"))

	case "audit":
		auditboot.Run(ctx, cfg, logger.NewLogger("audit-service"))

	case "all":
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); dashboardboot.Run(ctx, cfg, logger.NewLogger("admin-dashboard")) }()
		go func() { defer wg.Done(); auditboot.Run(ctx, cfg, logger.NewLogger("audit-service")) }()
		wg.Wait()

	default:
		log := logger.NewLogger("bootstrap")
		log.Fatal(logger.Entry{Action: "invalid_service", Message: *svc})
	}
}
