package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/fuelchain/stationlog_backend/appctx"
	"github.com/fuelchain/stationlog_backend/config"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	JobFirstAlert = "missing-entry-first-alert"
	JobEscalation = "missing-entry-escalation"
)

// Engine runs the two daily sweeps: detect units with no entry for today,
// resolve each affected organization's members, filter by preference, send
// alerts, and append one execution record per run.
//
// Runs are independent and carry no state between each other; re-running the
// same sweep twice in a day duplicates notifications (the scheduler's per-day
// lock is the guard against that, not the engine).
type Engine struct {
	Store      Store
	Dispatcher Dispatcher
	Log        *ExecutionLog
	Logger     *logrus.Logger
	BaseURL    string
	Location   *time.Location

	// Now is the clock; tests override it.
	Now func() time.Time
}

func NewEngine(store Store, dispatcher Dispatcher, execLog *ExecutionLog, logger *logrus.Logger, cfg *config.SweepConfig) *Engine {
	return &Engine{
		Store:      store,
		Dispatcher: dispatcher,
		Log:        execLog,
		Logger:     logger,
		BaseURL:    cfg.AppBaseURL,
		Location:   cfg.Location(),
		Now:        time.Now,
	}
}

// sweepProfile parametrizes the shared run skeleton. The two sweeps differ
// only in audience tier, fallback policy, preference flag, and wording.
type sweepProfile struct {
	job string

	tier Tier

	// fallbackToAll widens the audience to the whole membership when no
	// member matches the tier. The first alert falls back so no unit goes
	// unmonitored; the escalation is strict: it reaches elevated roles or
	// does not happen for that unit at all.
	fallbackToAll bool

	prefEnabled  func(Recipient) bool
	annotateUnit func(string) string

	emptyMessage string
	summary      func(units, sent, skipped int) string
}

var firstAlertProfile = sweepProfile{
	job:           JobFirstAlert,
	tier:          TierFirstLine,
	fallbackToAll: true,
	prefEnabled:   func(r Recipient) bool { return r.MissingEntryAlertsEnabled },
	annotateUnit:  func(name string) string { return name },
	emptyMessage:  "no missing entries; all active units submitted today's entry",
	summary: func(units, sent, skipped int) string {
		return fmt.Sprintf("%d units missing today's entry: %d alerts sent, %d skipped by preference", units, sent, skipped)
	},
}

var escalationProfile = sweepProfile{
	job:           JobEscalation,
	tier:          TierElevated,
	fallbackToAll: false,
	prefEnabled:   func(r Recipient) bool { return r.EscalationEnabled },
	annotateUnit:  func(name string) string { return name + " (escalation)" },
	emptyMessage:  "no missing entries at escalation time; nothing to escalate",
	summary: func(units, sent, skipped int) string {
		return fmt.Sprintf("%d units still missing today's entry: %d escalations sent, %d skipped by preference", units, sent, skipped)
	},
}

// RunFirstAlertSweep notifies the front-line audience (member/operator roles,
// falling back to everyone) of every unit missing today's entry.
func (e *Engine) RunFirstAlertSweep(ctx context.Context) error {
	return e.run(ctx, firstAlertProfile)
}

// RunEscalationSweep re-detects independently and notifies only elevated
// roles (admin/owner/supervisor). Organizations without elevated members are
// skipped entirely.
func (e *Engine) RunEscalationSweep(ctx context.Context) error {
	return e.run(ctx, escalationProfile)
}

func (e *Engine) run(ctx context.Context, p sweepProfile) error {
	runId, ok := appctx.GetString(ctx, appctx.ContextKeyRunId)
	if !ok || runId == "" {
		runId = uuid.NewString()
	}
	today := e.today()

	e.Logger.WithFields(logrus.Fields{
		"field": "sweep",
		"job":   p.job,
		"runId": runId,
		"date":  today.Format("2006-01-02"),
	}).Info("sweep started")

	missing, err := e.DetectMissingEntries(ctx, today)
	if err != nil {
		return e.fail(p, runId, err)
	}

	if len(missing) == 0 {
		e.Log.Record(ExecutionRecord{
			ID:         runId,
			Job:        p.job,
			ExecutedAt: e.Now(),
			Status:     ExecutionSuccess,
			Message:    p.emptyMessage,
		})
		return nil
	}

	var (
		details []UnitAlertDetail
		sent    int
		skipped int
	)

	for _, unit := range missing {
		members, err := e.ResolveMembers(ctx, unit.OrganizationId)
		if err != nil {
			return e.fail(p, runId, err)
		}

		recipients := selectRecipients(members, p.tier, p.fallbackToAll)
		if len(recipients) == 0 {
			// Strict tier with no elevated members (or an empty
			// organization): the unit is omitted from the detail entirely.
			continue
		}

		detail := UnitAlertDetail{
			UnitId:   unit.UnitId,
			UnitCode: unit.UnitCode,
			UnitName: unit.UnitName,
		}
		seen := make(map[string]bool, len(recipients))

		for _, r := range recipients {
			if r.UserEmail == "" || seen[r.UserEmail] {
				continue
			}
			seen[r.UserEmail] = true

			if !p.prefEnabled(r) {
				detail.SkippedUsers = append(detail.SkippedUsers, r.UserEmail)
				skipped++
				continue
			}

			alert := Alert{
				UserName:      r.UserName,
				UserEmail:     r.UserEmail,
				UnitName:      p.annotateUnit(unit.UnitName),
				Date:          today,
				EntryFormLink: e.entryFormLink(unit.UnitId),
			}
			if err := e.Dispatcher.SendMissingEntryAlert(ctx, alert); err != nil {
				// Isolated per-recipient failure: the recipient is simply
				// absent from the notified list; the batch continues.
				config.LogError(e.Logger, "sweep", "run", p.job+" dispatch to "+r.UserEmail, nil, err)
				continue
			}
			detail.NotifiedUsers = append(detail.NotifiedUsers, r.UserEmail)
			sent++
		}

		details = append(details, detail)
	}

	e.Log.Record(ExecutionRecord{
		ID:            runId,
		Job:           p.job,
		ExecutedAt:    e.Now(),
		Status:        ExecutionSuccess,
		Message:       p.summary(len(missing), sent, skipped),
		AlertsSent:    sent,
		AlertsSkipped: skipped,
		Details:       details,
	})

	e.Logger.WithFields(logrus.Fields{
		"field":         "sweep",
		"job":           p.job,
		"runId":         runId,
		"missingUnits":  len(missing),
		"alertsSent":    sent,
		"alertsSkipped": skipped,
	}).Info("sweep completed")
	return nil
}

// fail records the error outcome and re-raises it to the caller. Only
// detection/resolution failures reach here; dispatch failures never do.
func (e *Engine) fail(p sweepProfile, runId string, err error) error {
	config.LogError(e.Logger, "sweep", "run", p.job, nil, err)
	e.Log.Record(ExecutionRecord{
		ID:         runId,
		Job:        p.job,
		ExecutedAt: e.Now(),
		Status:     ExecutionError,
		Message:    err.Error(),
	})
	return err
}

// today is midnight of the current civil date in the scheduling timezone —
// the same normalization entries are recorded with.
func (e *Engine) today() time.Time {
	now := e.Now().In(e.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.Location)
}

func (e *Engine) entryFormLink(unitId int) string {
	return fmt.Sprintf("%s/gas/units/%d/entry", e.BaseURL, unitId)
}

func selectRecipients(members []Recipient, tier Tier, fallbackToAll bool) []Recipient {
	var matched []Recipient
	for _, m := range members {
		if tier.Includes(m.Role) {
			matched = append(matched, m)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	if fallbackToAll {
		return members
	}
	return nil
}
