package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AWSRegion    string `env:"AWS_REGION" envDefault:"us-east-2"`
	AWSAccessKey string `env:"AWS_ACCESS"`
	AWSSecretKey string `env:"AWS_SECRET_ACCESS"`
	S3Endpoint   string `env:"S3_ENDPOINT"`
	InputBucket  string `env:"AWS_BUCKET_NAME,required"`
	OutputBucket string `env:"AWS_OUTPUT_BUCKET_NAME,required"`

	AssemblyAIKey     string        `env:"ASSEMBLY_KEY,required"`
	AssemblyAIBaseURL string        `env:"ASSEMBLY_BASE_URL"`
	PollInterval      time.Duration `env:"TRANSCRIPT_POLL_INTERVAL" envDefault:"5s"`
	PollTimeout       time.Duration `env:"TRANSCRIPT_POLL_TIMEOUT" envDefault:"30m"`

	OpenAIKey     string `env:"OPENAI_KEY,required"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	CompletionRPM int    `env:"COMPLETION_RPM" envDefault:"60"`

	FFmpegPath string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	SquareSize int    `env:"SQUARE_SIZE" envDefault:"1080"`

	ScratchDir      string        `env:"SCRATCH_DIR" envDefault:"uploads"`
	SignedURLTTL    time.Duration `env:"SIGNED_URL_TTL" envDefault:"15m"`
	ConfirmInterval time.Duration `env:"CONFIRM_POLL_INTERVAL" envDefault:"5s"`
	ConfirmTimeout  time.Duration `env:"CONFIRM_POLL_TIMEOUT" envDefault:"5m"`

	MaxConcurrent int    `env:"MAX_CONCURRENT_VIDEOS" envDefault:"2"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}

// Overrides holds CLI flag values that take priority over env vars.
type Overrides struct {
	EnvFile    string
	ScratchDir string
	LogLevel   string
}

// Load reads configuration from a .env file, environment variables, and CLI
// overrides. Priority: CLI flags > environment variables > .env file >
// struct defaults.
func Load(overrides Overrides) (*Config, error) {
	envFile := overrides.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if overrides.ScratchDir != "" {
		cfg.ScratchDir = overrides.ScratchDir
	}
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}

	return cfg, nil
}
