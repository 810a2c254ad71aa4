package config

import (
	"fmt"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	OAuth         OAuthConfig         `mapstructure:"oauth"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Security      SecurityConfig      `mapstructure:"security"`
	Comment       CommentConfig       `mapstructure:"comment"`
	Like          LikeConfig          `mapstructure:"like"`
	CORS          CORSConfig          `mapstructure:"cors"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres | mysql
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

// DSN 返回当前驱动对应的连接字符串
func (d *DatabaseConfig) DSN() string {
	if d.Driver == "mysql" {
		mc := mysqldriver.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
		mc.DBName = d.DBName
		mc.ParseTime = true
		mc.Loc = time.Local
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	ArchiveBucket string `mapstructure:"archive_bucket"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
	GroupID string            `mapstructure:"group_id"`
}

// EventsTopic 返回评论事件 topic
func (k *KafkaConfig) EventsTopic() string {
	if t, ok := k.Topics["comment_events"]; ok && t != "" {
		return t
	}
	return "comment-events"
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Hosts    []string          `mapstructure:"hosts"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Index    map[string]string `mapstructure:"index"`
}

// CommentsIndex 返回评论索引名
func (e *ElasticsearchConfig) CommentsIndex() string {
	if name := e.Index["comments"]; name != "" {
		return name
	}
	return "comments"
}

// OAuthConfig 第三方登录配置
type OAuthConfig struct {
	ClientID        string `mapstructure:"client_id"`
	ClientSecret    string `mapstructure:"client_secret"`
	CallbackURL     string `mapstructure:"callback_url"`
	DefaultRedirect string `mapstructure:"default_redirect"`
	StateTTL        int    `mapstructure:"state_ttl"` // 秒
	StatePrefix     string `mapstructure:"state_prefix"`
}

// StateTTLDuration 返回登录态有效期
func (o *OAuthConfig) StateTTLDuration() time.Duration {
	if o.StateTTL <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(o.StateTTL) * time.Second
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
	CookieName  string `mapstructure:"cookie_name"`
}

// ExpireDuration 返回过期时间
func (j *JWTConfig) ExpireDuration() time.Duration {
	return time.Duration(j.ExpireHours) * time.Hour
}

// SecurityConfig 安全相关配置
type SecurityConfig struct {
	// TokenKey 非空时第三方 access token 加密落库
	TokenKey string `mapstructure:"token_key"`
}

// CommentConfig 评论配置
type CommentConfig struct {
	EnforcePermission bool `mapstructure:"enforce_permission"`
}

// LikeConfig 点赞配置
type LikeConfig struct {
	EnforceUnique bool `mapstructure:"enforce_unique"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// 全局配置实例
var globalConfig *Config

// Load 加载配置文件，环境变量 CM_DATABASE_HOST 之类可覆盖同名配置
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	globalConfig = &cfg

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cm-go")
	v.SetDefault("app.mode", "debug")
	v.SetDefault("app.port", 8000)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("jwt.expire_hours", 72)
	v.SetDefault("jwt.cookie_name", "cm_token")
	v.SetDefault("oauth.state_ttl", 600)
	v.SetDefault("oauth.state_prefix", "cm:oauth:state:")
	v.SetDefault("oauth.default_redirect", "http://localhost:8080/")
	v.SetDefault("minio.archive_bucket", "comment-archives")
	v.SetDefault("kafka.group_id", "cm-go-indexer")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Set 直接替换全局配置（测试或嵌入式启动时使用）
func Set(cfg *Config) {
	globalConfig = cfg
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}

// GetApp 获取应用配置
func GetApp() *AppConfig {
	return &Get().App
}

// GetJWT 获取JWT配置
func GetJWT() *JWTConfig {
	return &Get().JWT
}

// GetOAuth 获取第三方登录配置
func GetOAuth() *OAuthConfig {
	return &Get().OAuth
}

// GetCORS 获取跨域配置
func GetCORS() *CORSConfig {
	return &Get().CORS
}

// GetElasticsearch 获取Elasticsearch配置
func GetElasticsearch() *ElasticsearchConfig {
	return &Get().Elasticsearch
}
