package config

import (
	"crypto/tls"
	"time"

	"github.com/segmentio/kafka-go/sasl/plain"
)

type HttpApiConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

type SessionStoreConfig struct {
	// Backend is "memory" or "leveldb".
	Backend string        `mapstructure:"backend"`
	DBDSN   string        `mapstructure:"dbdsn"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type KafkaBroadcastConfig struct {
	Enabled             bool             `mapstructure:"enabled"`
	DBDSN               string           `mapstructure:"dbdsn"`
	Topic               string           `mapstructure:"topic"`
	ConsumerGroup       string           `mapstructure:"consumer_group"`
	TrustStorePath      string           `mapstructure:"truststore_path"`
	Timeout             time.Duration    `mapstructure:"timeout"`
	TlsConfig           *tls.Config      `mapstructure:"-"`
	ProducerCredentials *plain.Mechanism `mapstructure:"-"`
	ConsumerCredentials *plain.Mechanism `mapstructure:"-"`
}

type DocStorageConfig struct {
	BaseDir  string `mapstructure:"base_dir"`
	LockFile string `mapstructure:"lock_file"`
}

type SignServiceConfig struct {
	BaseUrl string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type NotifierConfig struct {
	// Backend is "http" or "log".
	Backend string        `mapstructure:"backend"`
	BaseUrl string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WorkflowConfig carries the completion policy knobs.
type WorkflowConfig struct {
	NotifyWhileSignerSigned bool `mapstructure:"notify_while_signer_signed"`
	ShouldSendForSigning    bool `mapstructure:"should_send_for_signing"`
}

type Config struct {
	InstanceName string `mapstructure:"instance_name"`

	HttpApiConfig        *HttpApiConfig        `mapstructure:"http_api_config"`
	SessionStoreConfig   *SessionStoreConfig   `mapstructure:"session_store_config"`
	KafkaBroadcastConfig *KafkaBroadcastConfig `mapstructure:"kafka_broadcast_config"`
	DocStorageConfig     *DocStorageConfig     `mapstructure:"doc_storage_config"`
	SignServiceConfig    *SignServiceConfig    `mapstructure:"sign_service_config"`
	NotifierConfig       *NotifierConfig       `mapstructure:"notifier_config"`
	WorkflowConfig       *WorkflowConfig       `mapstructure:"workflow_config"`

	CollectionsDBDSN string `mapstructure:"collections_dbdsn"`
	KeyStoreDBDSN    string `mapstructure:"key_store_dbdsn"`
}
