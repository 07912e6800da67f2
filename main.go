package main

import (
	"DentEase/ai/gpt"
	"DentEase/bot"
	"DentEase/impl/core"
	"DentEase/internal/config"
	repository "DentEase/internal/database"
	"DentEase/internal/feed"
	"DentEase/internal/http-server/api"
	"DentEase/internal/inbox"
	"DentEase/internal/lib/fileurl"
	"DentEase/internal/lib/logger"
	"DentEase/internal/lib/sl"
	"DentEase/internal/presence"
	"DentEase/internal/service/auth"
	"DentEase/internal/service/calendar"
	"DentEase/internal/ws"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	seedPassword := flag.String("seed-password", os.Getenv("ADMIN_PASSWORD"), "create the admin account with this password if it does not exist")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.Info("telegram bot initialized")
		}
	}

	lg.Info("starting dentease", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	if conf.Sentry.Dsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         conf.Sentry.Dsn,
			Environment: conf.Env,
		})
		if err != nil {
			lg.Error("sentry init", sl.Err(err))
		} else {
			defer sentry.Flush(2 * time.Second)
			lg.Info("sentry initialized")
		}
	}

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil || db == nil {
		lg.With(sl.Err(err)).Error("mongo client is required, check the mongo section of the config")
		return
	}
	if err = db.EnsureIndexes(ctx); err != nil {
		lg.With(sl.Err(err)).Error("ensure indexes")
	}
	lg.With(
		slog.String("host", conf.Mongo.Host),
		slog.String("port", conf.Mongo.Port),
		slog.String("user", conf.Mongo.User),
		slog.String("database", conf.Mongo.Database),
	).Info("mongo client initialized")

	authService := auth.NewAuthService(conf.Auth.JWTSecret, conf.Auth.TokenTTL, lg)
	authService.SetRepository(db)
	if conf.Auth.AdminEmail != "" && *seedPassword != "" {
		if err = authService.SeedAdmin(ctx, conf.Auth.AdminEmail, conf.Auth.AdminName, *seedPassword); err != nil {
			lg.With(sl.Err(err)).Error("seed admin account")
		}
	}

	filesSecret := conf.Files.Secret
	if filesSecret == "" {
		filesSecret = uuid.NewString()
		lg.Warn("files secret not set, signed image urls will not survive a restart")
	}

	box := inbox.New(lg)
	operator := presence.NewOperator(db, lg)
	hub := ws.NewHub(lg)

	handler := core.New(conf.Clinic.Name, conf.Clinic.OperatorName, lg)
	handler.SetRepository(db)
	handler.SetFileStore(db)
	handler.SetURLSigner(fileurl.NewSigner(filesSecret, conf.Files.URLTTL))
	handler.SetAuthService(authService)
	handler.SetInbox(box)
	handler.SetOperator(operator)
	handler.SetBroadcaster(hub)
	if tgBot != nil {
		handler.SetNotifier(tgBot)
	}

	if conf.OpenAI.Enabled {
		handler.SetResponder(gpt.NewResponder(conf.OpenAI.ApiKey, conf.OpenAI.Model, conf.Clinic.Name, lg))
		lg.With(
			sl.Secret("openai_key", conf.OpenAI.ApiKey),
			slog.String("model", conf.OpenAI.Model),
		).Info("auto reply assistant initialized")
	}

	if conf.Calendar.Enabled {
		cal, err := calendar.New(ctx, conf.Calendar.CredentialsFile, conf.Calendar.CalendarID, conf.Calendar.TimeZone, lg)
		if err != nil {
			lg.With(sl.Err(err)).Error("google calendar")
		} else {
			handler.SetCalendar(cal)
			lg.Info("google calendar initialized", slog.String("calendar", conf.Calendar.CalendarID))
		}
	}

	handler.Init()

	hub.SetHandler(handler)
	hub.SetSnapshotProvider(func() ws.Snapshot {
		streams, connected := handler.FeedStatus()
		p := handler.Presence()
		return ws.Snapshot{
			Conversations: inbox.Summaries(box.Views()),
			Streams:       streams,
			Connected:     connected,
			Online:        p.Online,
			LastSeen:      p.LastSeen,
		}
	})
	go hub.Run(ctx)

	subscriptions := feed.New(db, conf.Feed.RetryDelay, lg)
	subscriptions.OnState(handler.HandleFeedState)
	go feed.Subscribe(ctx, subscriptions, repository.MessagesCollection, db.AllMessages, box.ApplyMessages)
	go feed.Subscribe(ctx, subscriptions, repository.ConversationsCollection, db.AllConversations, box.ApplyConversations)

	operator.Start(ctx, conf.Clinic.StartOnline)
	defer operator.Stop()

	// *** blocking start with http server ***
	if err = api.New(conf, lg, handler, hub).Run(ctx); err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Info("service stopped")
}
