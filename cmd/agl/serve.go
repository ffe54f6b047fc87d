package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "github.com/rooman-dev/agl-new/docs"
	"github.com/rooman-dev/agl-new/internal/api"
	"github.com/rooman-dev/agl-new/internal/core/service"
	"github.com/rooman-dev/agl-new/internal/infrastructure/db/postgres"
	"github.com/rooman-dev/agl-new/internal/infrastructure/db/redis"
	mongodb "github.com/rooman-dev/agl-new/internal/infrastructure/db/mongo"
	"github.com/rooman-dev/agl-new/internal/infrastructure/mail"
	"github.com/rooman-dev/agl-new/internal/infrastructure/queue"
)

func newServeCmd() *cobra.Command {
	var docs bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema, bootstrap the admin account and serve the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, docs)
		},
	}

	cmd.Flags().BoolVar(&docs, "docs", true, "serve the OpenAPI UI under /swagger/")
	return cmd
}

func serve(ctx context.Context, docs bool) error {
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	cfg, log := a.cfg, a.log

	// Schema and bootstrap account must be in place before accepting traffic.
	if err := postgres.Migrate(ctx, a.pool, log); err != nil {
		log.Error().Err(err).Msg("schema migration failed")
		return err
	}

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var limiter service.LoginLimiter
	var deduper service.SubmissionDeduper
	if a.redis != nil {
		limiter = redis.NewLoginLimiter(a.redis, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		deduper = redis.NewSubmissionDeduper(a.redis, redis.SubmissionWindow)
	}

	authService := service.NewAuthService(postgres.NewAccountRepository(a.pool), tokens, limiter, log)
	if err := authService.Bootstrap(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		log.Error().Err(err).Msg("admin bootstrap failed")
		return err
	}

	postService := service.NewPostService(postgres.NewPostRepository(a.pool), log)
	if cfg.SeedSamplePosts {
		if _, err := postService.SeedSamples(ctx); err != nil {
			log.Warn().Err(err).Msg("sample post seeding failed")
		}
	}

	var archive service.SubmissionArchive
	if a.db != nil {
		repo := mongodb.NewSubmissionRepository(a.db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure submission indexes")
		}
		q := queue.NewArchiveQueue(0, repo, log)
		q.Start(context.WithoutCancel(ctx))
		defer func() {
			drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := q.Close(drainCtx); err != nil {
				log.Warn().Err(err).Msg("submission archive queue did not drain")
			}
		}()
		archive = q
	}

	mailer, err := mail.New(mail.Config{
		Provider:       cfg.Mail.Provider,
		From:           cfg.Mail.From,
		FromName:       cfg.Mail.FromName,
		SendGridAPIKey: cfg.Mail.SendGridAPIKey,
		MailgunDomain:  cfg.Mail.MailgunDomain,
		MailgunAPIKey:  cfg.Mail.MailgunAPIKey,
		MailgunAPIBase: cfg.Mail.MailgunAPIBase,
		SMTPHost:       cfg.Mail.SMTPHost,
		SMTPPort:       cfg.Mail.SMTPPort,
		SMTPUsername:   cfg.Mail.SMTPUsername,
		SMTPPassword:   cfg.Mail.SMTPPassword,
	}, log)
	if err != nil {
		return err
	}

	formService := service.NewFormService(mailer, deduper, archive, service.FormOptions{
		OperatorAddress: cfg.Mail.OperatorAddress,
		SiteName:        cfg.Site.Name,
		SiteURL:         cfg.Site.URL,
		ContactPhone:    cfg.Site.Phone,
	}, log)

	proxies, err := cfg.ProxyRanges()
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Options{
		AuthService:    authService,
		PostService:    postService,
		FormService:    formService,
		Tokens:         tokens,
		Readiness:      a.readinessChecks(),
		AllowedOrigins: cfg.AllowedOrigins,
		TrustedProxies: proxies,
		Logger:         log,
		EnableDocs:     docs,
	})

	return api.Serve(ctx, e, a.addr(), log)
}
