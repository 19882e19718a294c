package bot

import (
	"context"
	"fmt"
	"time"

	"jobly/internal/bot/handlers"
	"jobly/internal/bot/middleware"
	"jobly/internal/bot/utils"
	"jobly/internal/config"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot represents Telegram bot
type Bot struct {
	bot     *tele.Bot
	limiter middleware.Limiter
	deps    *handlers.Context
	logger  *zap.Logger
}

func New(
	cfg *config.Config,
	companies handlers.CompanyService,
	jobs handlers.JobService,
	limiter middleware.Limiter,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		limiter: limiter,
		deps: &handlers.Context{
			Companies: companies,
			Jobs:      jobs,
			Config:    cfg,
			Logger:    logger,
		},
		logger: logger,
	}

	bot.setupMiddleware()

	bot.registerHandlers()

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))

	b.bot.Use(middleware.Logger(b.logger))

	if b.limiter != nil {
		b.bot.Use(middleware.RateLimit(b.limiter, b.logger))
	}
}

func (b *Bot) registerHandlers() {
	ctx := b.deps

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/companies", handlers.HandleCompanies(ctx))
	b.bot.Handle("/company", handlers.HandleCompany(ctx))
	b.bot.Handle("/jobs", handlers.HandleJobs(ctx))
	b.bot.Handle("/job", handlers.HandleJob(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))

	b.bot.Handle(&tele.Btn{Unique: utils.CompaniesPageUnique}, handlers.HandleCompaniesPage(ctx))
	b.bot.Handle(&tele.Btn{Unique: utils.JobsPageUnique}, handlers.HandleJobsPage(ctx))
	b.bot.Handle(&tele.Btn{Unique: utils.NoopUnique}, handlers.HandleCallback(ctx))
	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))

	b.logger.Info("handlers registered")
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}
