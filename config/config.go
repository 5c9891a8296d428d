package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	NATS      NATSConfig
	OTP       OTPConfig
	Password  PasswordConfig
	Phone     PhoneConfig
	RateLimit RateLimitConfig
	Upload    UploadConfig
}

type AppConfig struct {
	Port        string
	Env         string
	BaseURL     string
	LogLevel    string
	CORSOrigins []string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// StorageConfig selects where uploaded files live. Backend is "local" or "minio".
type StorageConfig struct {
	Backend        string
	MediaRoot      string
	PublicBaseURL  string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type NATSConfig struct {
	URL        string
	OTPSubject string
}

type OTPConfig struct {
	TTL              time.Duration
	ExposeInResponse bool
	RequestsPerMin   int
}

type PasswordConfig struct {
	MinLength      int
	Validators     []string
	CommonListFile string
}

type PhoneConfig struct {
	DefaultRegion string
}

type RateLimitConfig struct {
	LoginPerMinute int
	// TrustedProxies are CIDRs or addresses allowed to set X-Forwarded-For.
	TrustedProxies []string
}

type UploadConfig struct {
	MaxMemory int64
	MaxSize   int64
	// MaxBody caps a whole multipart request, every file included.
	MaxBody int64
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional when everything comes from the environment
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 5 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 24 * time.Hour
	}

	otpTTL, err := time.ParseDuration(viper.GetString("OTP_TTL"))
	if err != nil {
		otpTTL = 10 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:        viper.GetString("APP_PORT"),
			Env:         viper.GetString("APP_ENV"),
			BaseURL:     strings.TrimRight(viper.GetString("APP_BASE_URL"), "/"),
			LogLevel:    viper.GetString("LOG_LEVEL"),
			CORSOrigins: splitList(viper.GetString("APP_CORS_ORIGINS")),
		},
		DB: DBConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Storage: StorageConfig{
			Backend:        viper.GetString("STORAGE_BACKEND"),
			MediaRoot:      viper.GetString("MEDIA_ROOT"),
			PublicBaseURL:  strings.TrimRight(viper.GetString("MEDIA_BASE_URL"), "/"),
			MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
			MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
			MinioBucket:    viper.GetString("MINIO_BUCKET"),
			MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		},
		NATS: NATSConfig{
			URL:        viper.GetString("NATS_URL"),
			OTPSubject: viper.GetString("NATS_OTP_SUBJECT"),
		},
		OTP: OTPConfig{
			TTL:              otpTTL,
			ExposeInResponse: viper.GetBool("OTP_EXPOSE_IN_RESPONSE"),
			RequestsPerMin:   viper.GetInt("OTP_REQUESTS_PER_MINUTE"),
		},
		Password: PasswordConfig{
			MinLength:      viper.GetInt("PASSWORD_MIN_LENGTH"),
			Validators:     splitList(viper.GetString("PASSWORD_VALIDATORS")),
			CommonListFile: viper.GetString("PASSWORD_COMMON_LIST_FILE"),
		},
		Phone: PhoneConfig{
			DefaultRegion: viper.GetString("PHONE_DEFAULT_REGION"),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: viper.GetInt("LOGIN_REQUESTS_PER_MINUTE"),
			TrustedProxies: splitList(viper.GetString("TRUSTED_PROXIES")),
		},
		Upload: UploadConfig{
			MaxMemory: viper.GetInt64("UPLOAD_MAX_MEMORY"),
			MaxSize:   viper.GetInt64("UPLOAD_MAX_SIZE"),
			MaxBody:   viper.GetInt64("UPLOAD_MAX_BODY"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("STORAGE_BACKEND", "local")
	viper.SetDefault("MEDIA_ROOT", "media")
	viper.SetDefault("MEDIA_BASE_URL", "/media")
	viper.SetDefault("NATS_OTP_SUBJECT", "mobile.otp.requested")
	viper.SetDefault("OTP_EXPOSE_IN_RESPONSE", true)
	viper.SetDefault("OTP_REQUESTS_PER_MINUTE", 5)
	viper.SetDefault("PASSWORD_MIN_LENGTH", 8)
	viper.SetDefault("PASSWORD_VALIDATORS", "minimum_length,common,numeric,user_attribute_similarity")
	viper.SetDefault("PHONE_DEFAULT_REGION", "IN")
	viper.SetDefault("LOGIN_REQUESTS_PER_MINUTE", 10)
	viper.SetDefault("UPLOAD_MAX_MEMORY", 10<<20)
	viper.SetDefault("UPLOAD_MAX_SIZE", 20<<20)
	viper.SetDefault("UPLOAD_MAX_BODY", 50<<20)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
