package config

import (
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Public holds values that are safe to log or expose.
type Public struct {
	Port             int           `yaml:"port"`
	LogLevel         string        `yaml:"log_level"`
	LogJSON          bool          `yaml:"log_json"`
	SecureCookies    bool          `yaml:"secure_cookies"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	JwtTTL           time.Duration `yaml:"jwt_ttl"`
	OtpTTL           time.Duration `yaml:"otp_ttl"`
	OtpCodeLen       int           `yaml:"otp_code_len"`
	MaxLoginFailures int           `yaml:"max_login_failures"`
	LockoutDuration  time.Duration `yaml:"lockout_duration"`
	TrackingBaseUrl  string        `yaml:"tracking_base_url"`
	CrmBaseUrl       string        `yaml:"crm_base_url"`
	LeadInbox        string        `yaml:"lead_inbox"` // notification recipient for new leads
}

type Private struct {
	Pg         Pg     `yaml:"pg"`
	Email      Email  `yaml:"email"`
	JwtKey     string `yaml:"jwt_key"`
	AdminEmail string `yaml:"admin_email"` // the single account allowed to reset its password
	CrmToken   string `yaml:"crm_token"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

// minJwtKeyLen is the shortest secret accepted for HMAC signing.
const minJwtKeyLen = 32

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, applies
// environment overrides for secrets and panics on anything that would make
// the process unsafe to run. There is no development fallback secret: a
// missing or short jwt key refuses to start.
func MustLoad(configFolder string) *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load(path.Join(configFolder, ".env"))

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	applyEnvOverrides(&private)

	cfg := &Config{public, private}
	cfg.mustValidate()
	return cfg
}

func applyEnvOverrides(private *Private) {
	if v := os.Getenv("TDL_JWT_KEY"); v != "" {
		private.JwtKey = v
	}
	if v := os.Getenv("TDL_ADMIN_EMAIL"); v != "" {
		private.AdminEmail = v
	}
	if v := os.Getenv("TDL_CRM_TOKEN"); v != "" {
		private.CrmToken = v
	}
	if v := os.Getenv("TDL_PG_PASSWORD"); v != "" {
		private.Pg.Password = v
	}
	if v := os.Getenv("TDL_SMTP_PASSWORD"); v != "" {
		private.Email.Password = v
	}
}

func (c *Config) mustValidate() {
	if len(c.Private.JwtKey) < minJwtKeyLen {
		panic("jwt_key must be at least 32 bytes")
	}
	if c.Private.AdminEmail == "" {
		panic("admin_email must be set")
	}
	if c.Public.JwtTTL == 0 {
		c.Public.JwtTTL = 24 * time.Hour
	}
	if c.Public.OtpTTL == 0 {
		c.Public.OtpTTL = 10 * time.Minute
	}
	if c.Public.OtpCodeLen == 0 {
		c.Public.OtpCodeLen = 6
	}
	if c.Public.MaxLoginFailures == 0 {
		c.Public.MaxLoginFailures = 5
	}
	if c.Public.LockoutDuration == 0 {
		c.Public.LockoutDuration = 30 * time.Minute
	}
}
