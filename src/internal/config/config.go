package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=account_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultKafkaAddr = "localhost:9092"
const defaultAccountTopic = "account-service-topic"
const defaultTransactionTopic = "transaction-service-topic"
const defaultNotificationQueueSize = 256

type Config struct {
	DatabaseDSN           string
	MigrationsDir         string
	HTTPAddr              string
	KafkaAddr             string
	AccountTopic          string
	TransactionTopic      string
	NotificationQueueSize int
}

func Load() (Config, error) {
	// Best effort; the environment wins over .env values already set.
	_ = godotenv.Load()

	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}

	kafkaAddr := strings.TrimSpace(os.Getenv("KAFKA_ADDR"))
	if kafkaAddr == "" {
		kafkaAddr = defaultKafkaAddr
	}

	accountTopic := strings.TrimSpace(os.Getenv("ACCOUNT_TOPIC"))
	if accountTopic == "" {
		accountTopic = defaultAccountTopic
	}

	transactionTopic := strings.TrimSpace(os.Getenv("TRANSACTION_TOPIC"))
	if transactionTopic == "" {
		transactionTopic = defaultTransactionTopic
	}

	return Config{
		DatabaseDSN:           normalizeConnectionString(conn),
		MigrationsDir:         filepath.Join("src", "migrations"),
		HTTPAddr:              httpAddr,
		KafkaAddr:             kafkaAddr,
		AccountTopic:          accountTopic,
		TransactionTopic:      transactionTopic,
		NotificationQueueSize: intFromEnv("NOTIFICATION_QUEUE_SIZE", defaultNotificationQueueSize),
	}, nil
}

func intFromEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
