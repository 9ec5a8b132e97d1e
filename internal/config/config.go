package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type EscrowConfig struct {
	Env                 string `yaml:"env"`
	HTTPServer          `yaml:"http_server"`
	EscrowDB            `yaml:"escrow_db"`
	LogConfig           `yaml:"log_config"`
	KafkaService        `yaml:"kafka-service"`
	PaymentService      `yaml:"payment-service"`
	NotificationService `yaml:"notification-service"`
	Storage             `yaml:"storage"`
	Escrow              `yaml:"escrow"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type EscrowDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host             string `yaml:"host"`
	Port             string `yaml:"port"`
	TransactionTopic string `yaml:"transaction_topic" env-default:"transaction-events"`
	DisputeTopic     string `yaml:"dispute_topic" env-default:"dispute-events"`
}

type PaymentService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type NotificationService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Storage struct {
	FilesRoot   string `yaml:"files_root"`
	ArchiveRoot string `yaml:"archive_root"`
}

type Escrow struct {
	InspectionWindow time.Duration `yaml:"inspection_window" env-default:"72h"`
	PaymentWindow    time.Duration `yaml:"payment_window" env-default:"168h"`
	ReminderInterval time.Duration `yaml:"reminder_interval" env-default:"10m"`
	DeletionInterval time.Duration `yaml:"deletion_interval" env-default:"1h"`
	ServiceFeeRate   float64       `yaml:"service_fee_rate" env-default:"0.025"`
	ServiceFeeMin    float64       `yaml:"service_fee_min" env-default:"25"`
	DealerCommission float64       `yaml:"dealer_commission_rate" env-default:"0.03"`
}

func MustLoad() *EscrowConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ESCROW_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ESCROW_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg EscrowConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
