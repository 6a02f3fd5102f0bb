package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config — полная конфигурация проекта
type Config struct {
	Backend  BackendConfig
	Session  SessionConfig
	Services ServicesConfig
	Database DBConfig
	RabbitMQ MQConfig
}

// BackendConfig — REST API платформы, к которому ходит дашборд
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// SessionConfig — подпись и cookie админской сессии
type SessionConfig struct {
	Secret        string
	ExpiryMinutes int
	CookieName    string
	SecureCookie  bool
	// AdminRole — роль, которую требует audit API; пусто = любая
	AdminRole string
	// ProtectedPrefixes — пути, закрытые гейтом
	ProtectedPrefixes []string
}

type ServicesConfig struct {
	DashboardPort int
	AuditPort     int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type MQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
	// Enabled=false — события админских действий не публикуются
	Enabled bool
}

// Load — загрузка из CONFIG_DIR (по умолчанию ./config) + ENV перекрывает
func Load() Config {
	configDir := getEnv("CONFIG_DIR", "./config")
	cfg := Config{}

	// backend.yaml
	backendKV := loadOrEmpty(filepath.Join(configDir, "backend.yaml"))
	cfg.Backend.BaseURL = strings.TrimRight(getStrWithEnv([]string{"API_URL", "NEXT_PUBLIC_API_URL"}, backendKV, "base_url", "http://localhost:8000/api/v1"), "/")
	cfg.Backend.TimeoutSeconds = getIntWithEnv("API_TIMEOUT_SECONDS", backendKV, "timeout_seconds", 15)

	// session.yaml
	sessionKV := loadOrEmpty(filepath.Join(configDir, "session.yaml"))
	cfg.Session.Secret = getStrWithEnv([]string{"SESSION_SECRET", "NEXTAUTH_SECRET"}, sessionKV, "secret", "dev_secret")
	cfg.Session.ExpiryMinutes = getIntWithEnv("SESSION_EXPIRY_MINUTES", sessionKV, "expiry_minutes", 24*60)
	cfg.Session.CookieName = getStrWithEnv([]string{"SESSION_COOKIE"}, sessionKV, "cookie_name", "gmn_admin_session")
	cfg.Session.SecureCookie = getBoolWithEnv("SESSION_SECURE_COOKIE", sessionKV, "secure_cookie", false)
	cfg.Session.AdminRole = getStrWithEnv([]string{"SESSION_ADMIN_ROLE"}, sessionKV, "admin_role", "admin")
	cfg.Session.ProtectedPrefixes = splitList(getStrWithEnv([]string{"PROTECTED_PATHS"}, sessionKV, "protected_paths", "/"))

	// service.yaml
	svcKV := loadOrEmpty(filepath.Join(configDir, "service.yaml"))
	cfg.Services.DashboardPort = getIntWithEnv("DASHBOARD_PORT", svcKV, "dashboard", 3000)
	cfg.Services.AuditPort = getIntWithEnv("AUDIT_PORT", svcKV, "audit", 3005)

	// db.yaml
	dbKV := loadOrEmpty(filepath.Join(configDir, "db.yaml"))
	cfg.Database.Host = getStrWithEnv([]string{"DB_HOST"}, dbKV, "host", "localhost")
	cfg.Database.Port = getIntWithEnv("DB_PORT", dbKV, "port", 5432)
	cfg.Database.User = getStrWithEnv([]string{"DB_USER"}, dbKV, "user", "guideadmin")
	cfg.Database.Password = getStrWithEnv([]string{"DB_PASSWORD"}, dbKV, "password", "guideadmin")
	cfg.Database.Database = getStrWithEnv([]string{"DB_NAME"}, dbKV, "database", "guideadmin_audit")
	cfg.Database.SSLMode = getStrWithEnv([]string{"DB_SSLMODE"}, dbKV, "sslmode", "disable")

	// mq.yaml
	mqKV := loadOrEmpty(filepath.Join(configDir, "mq.yaml"))
	cfg.RabbitMQ.Host = getStrWithEnv([]string{"RABBITMQ_HOST"}, mqKV, "host", "localhost")
	cfg.RabbitMQ.Port = getIntWithEnv("RABBITMQ_PORT", mqKV, "port", 5672)
	cfg.RabbitMQ.User = getStrWithEnv([]string{"RABBITMQ_USER"}, mqKV, "user", "guest")
	cfg.RabbitMQ.Password = getStrWithEnv([]string{"RABBITMQ_PASSWORD"}, mqKV, "password", "guest")
	cfg.RabbitMQ.VHost = getStrWithEnv([]string{"RABBITMQ_VHOST"}, mqKV, "vhost", "/")
	cfg.RabbitMQ.Enabled = getBoolWithEnv("RABBITMQ_ENABLED", mqKV, "enabled", false)

	return cfg
}

// Timeout — таймаут HTTP клиента к бэкенду
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DSN возвращает строку подключения к БД
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// AMQPURL возвращает URL подключения к RabbitMQ
func (c MQConfig) AMQPURL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

// parseYAML — парсит простые YAML файлы без глубокой вложенности.
// Формат: key: value (плоский) либо section: \n  key: value.
// Ключи секций сохраняются как "section.key".
func parseYAML(path string) (map[string]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := map[string]string{}
	section := ""

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// начало секции: "name:" без значения и без отступа
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") && raw == strings.TrimLeft(raw, " \t") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		if raw == strings.TrimLeft(raw, " \t") {
			section = ""
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// поддержка ${VAR:-default}
		if strings.HasPrefix(val, "${") {
			val = expandEnv(val)
		}

		result[key] = val
		if section != "" {
			result[section+"."+key] = val
		}
	}

	return result, sc.Err()
}

func expandEnv(s string) string {
	s = strings.TrimPrefix(s, "${")
	s = strings.TrimSuffix(s, "}")
	parts := strings.SplitN(s, ":-", 2)
	if v := os.Getenv(parts[0]); v != "" {
		return v
	}
	if len(parts) == 2 {
		return parts[1]
	}
	return ""
}

func loadOrEmpty(path string) map[string]string {
	kv, err := parseYAML(path)
	if err != nil {
		return map[string]string{}
	}
	return kv
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getStrWithEnv: первая непустая ENV из envKeys, затем yaml, затем default
func getStrWithEnv(envKeys []string, yaml map[string]string, key, def string) string {
	for _, envKey := range envKeys {
		if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
			return v
		}
	}
	if val, ok := yaml[key]; ok && val != "" {
		return val
	}
	return def
}

func getIntWithEnv(envKey string, yaml map[string]string, key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if val, ok := yaml[key]; ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func getBoolWithEnv(envKey string, yaml map[string]string, key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	if val, ok := yaml[key]; ok && val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
