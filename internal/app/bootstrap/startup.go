// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/clubhub/internal/app/features/awards"
	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/mailer"
	"github.com/dalemusser/clubhub/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// jobRunner owns the background jobs for the process lifetime.
// Started here, stopped in Shutdown.
var jobRunner *tasks.Runner

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// ClubHub uses it to launch the monthly awards job.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	jobRunner = tasks.NewRunner(logger)

	if appCfg.AwardsEnabled {
		mail := newMailer(appCfg, logger)
		svc := awards.NewService(
			userstore.New(deps.MongoDatabase),
			mail,
			appCfg.AlertEmail,
			logger,
		)
		jobRunner.Add(svc.Job())
		logger.Info("monthly awards job scheduled")
	} else {
		logger.Info("monthly awards job disabled by configuration")
	}

	// The runner outlives the startup context; Shutdown stops it.
	jobRunner.Start(context.Background())
	return nil
}

func newMailer(appCfg AppConfig, logger *zap.Logger) *mailer.Mailer {
	return mailer.New(
		appCfg.MailSMTPHost,
		appCfg.MailSMTPPort,
		appCfg.MailSMTPUser,
		appCfg.MailSMTPPass,
		appCfg.MailFrom,
		appCfg.MailFromName,
		logger,
	)
}
