package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// TaskConfig contains settings for the background task runner that archives
// readings off the request path.
type TaskConfig struct {
	QueueSize           int `mapstructure:"queue_size"             validate:"required,gt=0"`
	WorkerCount         int `mapstructure:"worker_count"           validate:"required,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
}

// EngineConfig exposes the tunable parameters of the divination engine.
// Zero values fall back to the engine's built-in defaults.
type EngineConfig struct {
	// DayHorizon bounds the forward day-branch search for timing
	// predictions, in days.
	DayHorizon int `mapstructure:"day_horizon" validate:"gte=0"`
	// MonthHorizon bounds the fallback month-branch search, in months.
	MonthHorizon int `mapstructure:"month_horizon" validate:"gte=0"`
	// MaxRelationItems caps how many relation narratives reach the
	// interpretation.
	MaxRelationItems int `mapstructure:"max_relation_items" validate:"gte=0"`
	// MaxTimingPredictions caps how many timing predictions are reported.
	MaxTimingPredictions int `mapstructure:"max_timing_predictions" validate:"gte=0"`
}
