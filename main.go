package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"gabbot/internal/adapters/generator"
	"gabbot/internal/adapters/handler"
	"gabbot/internal/adapters/lookup"
	"gabbot/internal/adapters/sender"
	"gabbot/internal/adapters/store"
	"gabbot/internal/core/command"
	"gabbot/internal/core/commands"
	"gabbot/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting gabbot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	viper.SetDefault("defaults.prefix", "~")
	viper.SetDefault("bot.data_file", "data/channels.json")
	viper.SetDefault("handler.timeout", "30s")
	viper.SetDefault("hangman.setup_timeout", "60s")
	viper.SetDefault("transport.message_limit", 2000)
	viper.SetDefault("transport.output_ceiling", 10000)
	viper.SetDefault("currency.endpoint", "https://free.currencyconverterapi.com/api/v6/convert")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	channelVars, err := store.New(ctx, viper.GetString("bot.data_file"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed opening channel variable store")
	}
	defer channelVars.Close()

	token := viper.GetString("telegram.bot_token")

	var msgHandler *handler.Message

	opts := []bot.Option{
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			msgHandler.Handle(ctx, b, update)
		}),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)
	defaults := service.ConfigDefaults{}
	vars := service.NewVarCache(channelVars, defaults)
	safe := service.NewSafeSender(s,
		viper.GetInt("transport.message_limit"),
		viper.GetInt("transport.output_ceiling"))

	registry := command.NewRegistry()

	setupTimeout, err := time.ParseDuration(viper.GetString("hangman.setup_timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid hangman setup timeout in config")
	}

	translator := generator.NewOpenRouter(
		viper.GetString("openrouter.api_key"),
		viper.GetString("translate.model"))

	ownerID := viper.GetInt64("bot.owner_id")

	hangman := commands.NewHangmanHandler(s, setupTimeout)

	handlers := &commands.Handlers{
		Basic: commands.NewBasic(),
		Lookup: commands.NewLookup(
			lookup.NewWikipedia(lookup.DefaultWikipediaEndpoint),
			lookup.NewCurrency(
				viper.GetString("currency.endpoint"),
				viper.GetString("currency.api_key"))),
		Translate: commands.NewTranslate(translator),
		Vars:      commands.NewVars(channelVars, registry, vars),
		Poll:      commands.NewPollHandler(ownerID),
		Hangman:   hangman,
		Help:      commands.NewHelp(registry),
	}

	if err := commands.Register(registry, handlers); err != nil {
		log.Fatal().Err(err).Msg("command catalog failed validation")
	}

	executor := command.NewExecutor(registry, vars, ownerID)
	tokenizer := command.NewTokenizer(registry, vars)

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	msgHandler = handler.NewMessage(handler.Config{
		Tokenizer: tokenizer,
		Executor:  executor,
		Vars:      vars,
		Safe:      safe,
		Sender:    s,
		Store:     channelVars,
		Defaults:  defaults,
		Private:   hangman,
		Admins:    handler.NewBotAdminChecker(b),
		OwnerID:   ownerID,
		Timeout:   handlerTimeout,
	})

	log.Info().Msg("bot listening")
	b.Start(ctx)
}
