package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"openmic/internal/adapters/discord"
	"openmic/internal/adapters/rest"
	"openmic/internal/adapters/scheduler"
	"openmic/internal/application"
	"openmic/internal/config"
	"openmic/internal/infrastructure/database"
	"openmic/internal/infrastructure/i18n"
	"openmic/internal/infrastructure/mail"
	"openmic/internal/infrastructure/memory"
	"openmic/internal/infrastructure/notify"
	"openmic/internal/infrastructure/session"
	"openmic/internal/infrastructure/token"
	"openmic/internal/ports/output"
	"openmic/pkg/tz"
)

// stores groups the repositories of one storage backend.
type stores struct {
	events  output.EventRepository
	venues  output.VenueRepository
	users   output.UserRepository
	signups output.SignupRepository
	tx      output.Transactor
	ping    func(context.Context) error
	close   func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("❌ Invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("❌ Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer st.close()

	sessions, err := openSessions(ctx, cfg)
	if err != nil {
		slog.Error("❌ Failed to initialize sessions", "error", err)
		os.Exit(1)
	}

	loc := tz.Load(cfg.Timezone)
	translator := i18n.NewTranslator(cfg.DefaultLocale)
	notifier, err := buildNotifier(cfg, translator, loc)
	if err != nil {
		slog.Error("❌ Failed to initialize notifications", "error", err)
		os.Exit(1)
	}
	defer notifier.Wait()

	tokens := token.NewJWTIssuer([]byte(cfg.JWTSecret), cfg.SessionTTL)
	authUC := application.NewAuthService(st.users, sessions, tokens, notifier, cfg.SessionTTL, cfg.ResetTokenTTL)
	eventUC := application.NewEventService(st.events, st.venues, st.signups, st.users, notifier)
	venueUC := application.NewVenueService(st.venues)
	signupUC := application.NewSignupService(st.signups, st.events, st.users, st.tx, notifier)

	if cfg.ReminderInterval > 0 && cfg.EmailEnabled() {
		go scheduler.NewReminders(eventUC, cfg.ReminderLead, cfg.ReminderInterval, cfg.DefaultLocale).Run(ctx)
	}

	handler := rest.NewHandler(rest.Deps{
		Auth:       authUC,
		Events:     eventUC,
		Venues:     venueUC,
		Signups:    signupUC,
		Translator: translator,
		Ping:       st.ping,
	})
	server := rest.NewServer(cfg.HTTPAddr, rest.NewRouter(handler), cfg.ShutdownTimeout)
	if err := server.Start(ctx); err != nil {
		slog.Error("❌ HTTP server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		slog.Warn("⚠️ In-memory storage: data is lost on restart")
		m := memory.NewStore()
		return &stores{
			events:  m.Events(),
			venues:  m.Venues(),
			users:   m.Users(),
			signups: m.Signups(),
			tx:      m,
			ping:    m.Ping,
			close:   func() {},
		}, nil
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &stores{
		events:  database.NewEventRepository(pool),
		venues:  database.NewVenueRepository(pool),
		users:   database.NewUserRepository(pool),
		signups: database.NewSignupRepository(pool),
		tx:      database.NewTransactor(pool),
		ping:    pool.Ping,
		close:   pool.Close,
	}, nil
}

func openSessions(ctx context.Context, cfg *config.Config) (output.SessionStore, error) {
	if cfg.SessionStore == config.DriverMemory {
		s := session.NewMemoryStore()
		go s.RunSweeper(ctx, time.Minute)
		return s, nil
	}
	client, err := session.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(client), nil
}

func buildNotifier(cfg *config.Config, translator output.T, loc *time.Location) (*notify.Async, error) {
	var targets notify.Multi
	if cfg.EmailEnabled() {
		mailer, err := mail.NewMailer(mail.Config{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			From:      cfg.MailFrom,
			FromName:  cfg.MailFromName,
			PublicURL: cfg.PublicURL,
			Location:  loc,
		}, translator)
		if err != nil {
			return nil, err
		}
		targets = append(targets, mailer)
	} else {
		slog.Warn("⚠️ SMTP_HOST not set: no email will be sent")
	}
	if cfg.DiscordEnabled() {
		hook, err := discord.NewNotifier(cfg.DiscordWebhookID, cfg.DiscordWebhookToken, cfg.DiscordUsername, cfg.DefaultLocale, translator, loc)
		if err != nil {
			return nil, err
		}
		targets = append(targets, hook)
	}
	var next output.Notifier = notify.Noop{}
	if len(targets) > 0 {
		next = targets
	}
	return notify.NewAsync(next, cfg.NotifyTimeout), nil
}
