// sweep-run runs one missing-entry sweep and exits. It exists for
// deployments that drive the two daily triggers from an external cron or
// systemd timer instead of the in-process scheduler.
//
// Usage:
//
//	APP_BASE_URL=... MAIL_HOST=... DB_USER=... go run ./cmd/sweep-run -job first-alert
//	go run ./cmd/sweep-run -job escalation
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fuelchain/stationlog_backend/appctx"
	"github.com/fuelchain/stationlog_backend/config"
	"github.com/fuelchain/stationlog_backend/mail"
	"github.com/fuelchain/stationlog_backend/sweep"
	"github.com/google/uuid"
)

func main() {
	job := flag.String("job", "", "which sweep to run: first-alert or escalation")
	flag.Parse()

	logger := config.GetLogger()

	cfg, err := config.LoadSweepConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	execLog := sweep.NewExecutionLog()
	dispatcher := sweep.NewMailDispatcher(mail.NewSender(cfg, logger), logger)
	engine := sweep.NewEngine(sweep.NewStore(), dispatcher, execLog, logger, cfg)

	ctx := appctx.Set(context.Background(), appctx.ContextKeyRunId, uuid.NewString())

	switch *job {
	case "first-alert":
		err = engine.RunFirstAlertSweep(ctx)
	case "escalation":
		err = engine.RunEscalationSweep(ctx)
	default:
		fmt.Fprintln(os.Stderr, "usage: sweep-run -job first-alert|escalation")
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", *job, err)
		os.Exit(1)
	}

	for _, rec := range execLog.Snapshot() {
		fmt.Printf("%s [%s] %s\n", rec.ExecutedAt.Format("2006-01-02 15:04:05"), rec.Status, rec.Message)
	}
}
