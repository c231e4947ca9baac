package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/reflectlab/JournalPipe/internal/api"
	"github.com/reflectlab/JournalPipe/internal/genai"
	"github.com/reflectlab/JournalPipe/internal/personality"
	"github.com/reflectlab/JournalPipe/internal/store"
	"github.com/reflectlab/JournalPipe/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for JournalPipe state data
	DefaultStateDir = "/var/lib/journalpipe"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "journalpipe.db"
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

	// Build the session store
	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Load style guides and build the GenAI client when a key is configured
	gaClient := buildGenAIClient(flags)

	slog.Info("Bootstrapping JournalPipe with configured modules")
	slog.Debug("Final configuration", "state_dir", *flags.stateDir, "dsn_set", *flags.dbDSN != "", "redis_addr", *flags.redisAddr, "api_addr", *flags.apiAddr, "genai_enabled", gaClient != nil)

	server := api.NewServer(st, gaClient, buildAPIOptions(flags)...)
	if err := server.Run(); err != nil {
		slog.Error("JournalPipe failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("JournalPipe exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseDSN      string
	RedisAddr        string
	RedisPassword    string
	StateDir         string
	OpenAIKey        string
	OpenAIModel      string
	APIAddr          string
	StyleGuidePath   string
	ConditionRefPath string
}

// Flags holds command line flag values
type Flags struct {
	stateDir         *string
	dbDSN            *string
	redisAddr        *string
	redisPassword    *string
	openaiKey        *string
	openaiModel      *string
	apiAddr          *string
	styleGuidePath   *string
	conditionRefPath *string
}

// initializeLogger sets up structured logging; JOURNALPIPE_DEBUG lowers
// the level to debug
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("JOURNALPIPE_DEBUG", false) {
		level = slog.LevelDebug
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
		DatabaseDSN:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		StateDir:         os.Getenv("JOURNALPIPE_STATE_DIR"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		APIAddr:          os.Getenv("API_ADDR"),
		StyleGuidePath:   os.Getenv("STYLE_GUIDE_PATH"),
		ConditionRefPath: os.Getenv("CONDITION_GUIDE_PATH"),
	}

	// Set default state directory if not specified
	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No JOURNALPIPE_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	} else {
		slog.Debug("JOURNALPIPE_STATE_DIR found in environment", "state_dir", config.StateDir)
	}

	// If no database URL and no Redis address is provided, default to
	// SQLite in the state directory
	if config.DatabaseDSN == "" && config.RedisAddr == "" {
		config.DatabaseDSN = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseDSN)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseDSN != "",
		"REDIS_ADDR", config.RedisAddr,
		"JOURNALPIPE_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr,
		"STYLE_GUIDE_PATH", config.StyleGuidePath,
		"CONDITION_GUIDE_PATH", config.ConditionRefPath)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:         flag.String("state-dir", config.StateDir, "state directory for JournalPipe data (overrides $JOURNALPIPE_STATE_DIR)"),
		dbDSN:            flag.String("db-dsn", config.DatabaseDSN, "database DSN for the session store (overrides $DATABASE_URL)"),
		redisAddr:        flag.String("redis-addr", config.RedisAddr, "Redis address for the session store (overrides $REDIS_ADDR)"),
		redisPassword:    flag.String("redis-password", config.RedisPassword, "Redis password (overrides $REDIS_PASSWORD)"),
		openaiKey:        flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		openaiModel:      flag.String("openai-model", config.OpenAIModel, "OpenAI model for feedback generation (overrides $OPENAI_MODEL)"),
		apiAddr:          flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		styleGuidePath:   flag.String("style-guides", config.StyleGuidePath, "path to the personality style guide file (overrides $STYLE_GUIDE_PATH)"),
		conditionRefPath: flag.String("condition-guides", config.ConditionRefPath, "path to the condition reference file (overrides $CONDITION_GUIDE_PATH)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"redisAddr", *flags.redisAddr,
		"openaiKeySet", *flags.openaiKey != "",
		"apiAddr", *flags.apiAddr)

	// Update database DSN if not explicitly set but state directory is provided
	if *flags.dbDSN == config.DatabaseDSN && config.DatabaseDSN == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "dsn_updated", true, "old_state_dir", config.StateDir, "new_state_dir", *flags.stateDir)
	}

	return flags
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	if *flags.dbDSN == "" || store.DetectDSNType(*flags.dbDSN) != "sqlite3" {
		return nil
	}
	stateDir := filepath.Dir(*flags.dbDSN)
	slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		slog.Error("Failed to create state directory", "error", err, "state_dir", stateDir)
		return err
	}
	slog.Debug("State directory created successfully", "state_dir", stateDir)
	return nil
}

// buildStore constructs the session store backend selected by the flags
func buildStore(flags Flags) (store.Store, error) {
	if *flags.redisAddr != "" {
		slog.Debug("Configuring Redis session store", "addr", *flags.redisAddr)
		return store.NewRedisStore(
			store.WithAddr(*flags.redisAddr),
			store.WithPassword(*flags.redisPassword),
		)
	}
	if *flags.dbDSN != "" {
		if store.DetectDSNType(*flags.dbDSN) == "postgres" {
			slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_set", true)
			return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
		}
		slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
		return store.NewSQLiteStore(store.WithDSN(*flags.dbDSN))
	}
	slog.Debug("No database DSN provided, using in-memory store")
	return store.NewInMemoryStore(), nil
}

// buildGenAIClient constructs the feedback client, or nil when no API key
// is configured
func buildGenAIClient(flags Flags) *genai.Client {
	if *flags.openaiKey == "" {
		slog.Info("No OpenAI API key configured, feedback will be composed locally")
		return nil
	}
	guides := personality.LoadGuides(*flags.styleGuidePath, *flags.conditionRefPath)
	opts := []genai.Option{genai.WithGuides(guides)}
	if *flags.openaiModel != "" {
		opts = append(opts, genai.WithModel(*flags.openaiModel))
	}
	return genai.NewClient(strings.TrimSpace(*flags.openaiKey), opts...)
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	return apiOpts
}
