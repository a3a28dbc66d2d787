package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/curiogate/curiogate/internal/api"
	"github.com/curiogate/curiogate/internal/genai"
	"github.com/curiogate/curiogate/internal/notify"
	"github.com/curiogate/curiogate/internal/store"
	"github.com/curiogate/curiogate/internal/util"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for CurioGate state data
	DefaultStateDir = "/var/lib/curiogate"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "curiogate.db"
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Ensure required directories exist
	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	// Build module options
	storeOpts := buildStoreOptions(flags)
	genaiOpts := buildGenAIOptions(flags)
	notifyOpts := buildNotifyOptions(flags)
	apiOpts := buildAPIOptions(flags)

	// Start the service
	slog.Info("Bootstrapping CurioGate with configured modules")
	slog.Debug("Module options counts", "store", len(storeOpts), "genai", len(genaiOpts), "notify", len(notifyOpts), "api", len(apiOpts))
	slog.Debug("Final configuration", "state_dir", *flags.stateDir, "dsn_set", *flags.dbDSN != "", "api_addr", *flags.apiAddr)
	if err := api.Run(storeOpts, genaiOpts, notifyOpts, apiOpts); err != nil {
		slog.Error("CurioGate failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("CurioGate exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL  string
	StateDir     string
	AIProvider   string
	OpenAIKey    string
	GeminiKey    string
	Model        string
	APIAddr      string
	TwilioSID    string
	TwilioToken  string
	TwilioFrom   string
	ParentNumber string
}

// Flags holds command line flag values
type Flags struct {
	stateDir     *string
	dbDSN        *string
	aiProvider   *string
	openaiKey    *string
	geminiKey    *string
	model        *string
	apiAddr      *string
	twilioSID    *string
	twilioToken  *string
	twilioFrom   *string
	parentNumber *string
}

// initializeLogger sets up structured logging. Debug level is the default;
// set CURIOGATE_DEBUG=false to reduce to info.
func initializeLogger() {
	level := slog.LevelDebug
	if !util.ParseBoolEnv("CURIOGATE_DEBUG", true) {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		StateDir:     os.Getenv("CURIOGATE_STATE_DIR"),
		AIProvider:   os.Getenv("CURIOGATE_AI_PROVIDER"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		GeminiKey:    os.Getenv("GEMINI_API_KEY"),
		Model:        os.Getenv("CURIOGATE_AI_MODEL"),
		APIAddr:      os.Getenv("API_ADDR"),
		TwilioSID:    os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:   os.Getenv("TWILIO_FROM_NUMBER"),
		ParentNumber: os.Getenv("PARENT_PHONE_NUMBER"),
	}

	// Set default state directory if not specified
	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No CURIOGATE_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	} else {
		slog.Debug("CURIOGATE_STATE_DIR found in environment", "state_dir", config.StateDir)
	}

	// If no database URL is provided, default to SQLite in the state directory
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"CURIOGATE_STATE_DIR", config.StateDir,
		"CURIOGATE_AI_PROVIDER", config.AIProvider,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"GEMINI_API_KEY_SET", config.GeminiKey != "",
		"API_ADDR", config.APIAddr,
		"TWILIO_CONFIGURED", config.TwilioSID != "" && config.TwilioToken != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:     flag.String("state-dir", config.StateDir, "state directory for CurioGate data (overrides $CURIOGATE_STATE_DIR)"),
		dbDSN:        flag.String("db-dsn", config.DatabaseURL, "database DSN for the settings store (overrides $DATABASE_URL)"),
		aiProvider:   flag.String("ai-provider", config.AIProvider, "AI provider, openai or gemini (overrides $CURIOGATE_AI_PROVIDER)"),
		openaiKey:    flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		geminiKey:    flag.String("gemini-api-key", config.GeminiKey, "Gemini API key (overrides $GEMINI_API_KEY)"),
		model:        flag.String("ai-model", config.Model, "model name for the selected provider (overrides $CURIOGATE_AI_MODEL)"),
		apiAddr:      flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		twilioSID:    flag.String("twilio-sid", config.TwilioSID, "Twilio account SID for parent alerts (overrides $TWILIO_ACCOUNT_SID)"),
		twilioToken:  flag.String("twilio-token", config.TwilioToken, "Twilio auth token (overrides $TWILIO_AUTH_TOKEN)"),
		twilioFrom:   flag.String("twilio-from", config.TwilioFrom, "Twilio sender number (overrides $TWILIO_FROM_NUMBER)"),
		parentNumber: flag.String("parent-number", config.ParentNumber, "parent phone number for alerts (overrides $PARENT_PHONE_NUMBER)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"aiProvider", *flags.aiProvider,
		"openaiKeySet", *flags.openaiKey != "",
		"geminiKeySet", *flags.geminiKey != "",
		"apiAddr", *flags.apiAddr)

	// Update database DSN if not explicitly set but state directory is provided
	if *flags.dbDSN == config.DatabaseURL && config.DatabaseURL == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "dsn_updated", true, "old_state_dir", config.StateDir, "new_state_dir", *flags.stateDir)
	}

	return flags
}

// isPostgresDSN reports whether the DSN targets PostgreSQL rather than a SQLite file.
func isPostgresDSN(dsn string) bool {
	return strings.Contains(dsn, "postgres://") || strings.Contains(dsn, "host=")
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	if !isPostgresDSN(*flags.dbDSN) {
		stateDir := filepath.Dir(*flags.dbDSN)
		slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "state_dir", stateDir)
			return err
		}
		slog.Debug("State directory created successfully", "state_dir", stateDir)
	}
	return nil
}

// buildStoreOptions constructs store configuration options
func buildStoreOptions(flags Flags) []store.Option {
	var storeOpts []store.Option
	if *flags.dbDSN != "" {
		storeOpts = append(storeOpts, store.WithDSN(*flags.dbDSN))
	}
	return storeOpts
}

// buildGenAIOptions constructs GenAI configuration options
func buildGenAIOptions(flags Flags) []genai.Option {
	var genaiOpts []genai.Option
	if *flags.aiProvider != "" {
		genaiOpts = append(genaiOpts, genai.WithProvider(*flags.aiProvider))
	}
	switch *flags.aiProvider {
	case genai.ProviderGemini:
		if *flags.geminiKey != "" {
			genaiOpts = append(genaiOpts, genai.WithAPIKey(*flags.geminiKey))
		}
	default:
		if *flags.openaiKey != "" {
			genaiOpts = append(genaiOpts, genai.WithAPIKey(*flags.openaiKey))
		}
	}
	if *flags.model != "" {
		genaiOpts = append(genaiOpts, genai.WithModel(*flags.model))
	}
	if d := util.ParseDurationEnv("CURIOGATE_EVALUATE_TIMEOUT", 0); d > 0 {
		genaiOpts = append(genaiOpts, genai.WithEvaluateTimeout(d))
	}
	return genaiOpts
}

// buildNotifyOptions constructs parent alert configuration options
func buildNotifyOptions(flags Flags) []notify.Option {
	var notifyOpts []notify.Option
	if *flags.twilioSID != "" {
		notifyOpts = append(notifyOpts, notify.WithAccountSID(*flags.twilioSID))
	}
	if *flags.twilioToken != "" {
		notifyOpts = append(notifyOpts, notify.WithAuthToken(*flags.twilioToken))
	}
	if *flags.twilioFrom != "" {
		notifyOpts = append(notifyOpts, notify.WithFromNumber(*flags.twilioFrom))
	}
	if *flags.parentNumber != "" {
		notifyOpts = append(notifyOpts, notify.WithToNumber(*flags.parentNumber))
	}
	return notifyOpts
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	if isPostgresDSN(*flags.dbDSN) {
		apiOpts = append(apiOpts, api.WithDBDriver("postgres"))
	}
	return apiOpts
}
