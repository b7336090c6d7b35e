package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pensign/cardroom/broadcast/kafka_broadcast"
	"github.com/pensign/cardroom/coordinator/api/http_api"
	"github.com/pensign/cardroom/coordinator/config"
	"github.com/pensign/cardroom/coordinator/modules/keystore"
	"github.com/pensign/cardroom/coordinator/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagConfigPath               = "config"
	flagInstanceName             = "instance_name"
	flagListenHost               = "listen_host"
	flagListenPort               = "listen_port"
	flagSessionBackend           = "session_backend"
	flagSessionDBDSN             = "session_dbdsn"
	flagSessionTTL               = "session_ttl"
	flagKafkaEnabled             = "kafka_enabled"
	flagKafkaDBDSN               = "kafka_dbdsn"
	flagKafkaTopic               = "kafka_topic"
	flagKafkaConsumerGroup       = "kafka_consumer_group"
	flagKafkaProducerCredentials = "producer_credentials"
	flagKafkaConsumerCredentials = "consumer_credentials"
	flagKafkaTrustStorePath      = "kafka_truststore_path"
	flagDocStorageDir            = "doc_storage_dir"
	flagSignServiceUrl           = "sign_service_url"
	flagNotifierBackend          = "notifier_backend"
	flagNotifierUrl              = "notifier_url"
	flagCollectionsDBDSN         = "collections_dbdsn"
	flagKeyStoreDBDSN            = "key_store_dbdsn"
	flagNotifyWhileSignerSigned  = "notify_while_signer_signed"
	flagShouldSendForSigning     = "should_send_for_signing"
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(flagConfigPath, "", "Path to a YAML config file (optional, flags win)")
	flags.String(flagInstanceName, "cardroom", "Coordinator instance name")
	flags.String(flagListenHost, "localhost", "HTTP API host")
	flags.Int(flagListenPort, 8080, "HTTP API port")
	flags.String(flagSessionBackend, "memory", "Session store backend: memory or leveldb")
	flags.String(flagSessionDBDSN, "./cardroom_session_state", "Session store DBDSN (leveldb backend)")
	flags.Duration(flagSessionTTL, 3*time.Minute, "Session sliding TTL")
	flags.Bool(flagKafkaEnabled, false, "Publish broadcasts over Kafka")
	flags.String(flagKafkaDBDSN, "localhost:9093", "Kafka broker endpoint")
	flags.String(flagKafkaTopic, "room_events", "Kafka topic for room events")
	flags.String(flagKafkaConsumerGroup, "", "Kafka consumer group (default: instance name)")
	flags.String(flagKafkaProducerCredentials, "", "Producer credentials for Kafka: username:password")
	flags.String(flagKafkaConsumerCredentials, "", "Consumer credentials for Kafka: username:password")
	flags.String(flagKafkaTrustStorePath, "", "Path to kafka truststore")
	flags.String(flagDocStorageDir, "./cardroom_documents", "Document storage directory")
	flags.String(flagSignServiceUrl, "http://localhost:8090", "PDF signing backend base URL")
	flags.String(flagNotifierBackend, "log", "Notifier backend: http or log")
	flags.String(flagNotifierUrl, "http://localhost:8091", "Notification backend base URL")
	flags.String(flagCollectionsDBDSN, "./cardroom_collections", "Collections DBDSN")
	flags.String(flagKeyStoreDBDSN, "./cardroom_key_store", "Key store DBDSN")
	flags.Bool(flagNotifyWhileSignerSigned, true, "Send a notification after each signer signs")
	flags.Bool(flagShouldSendForSigning, true, "Automatically send the signing link to the next signer")
}

var rootCmd = &cobra.Command{
	Use:   "cardroom_d",
	Short: "smart-card signing room coordinator daemon",
}

func readConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	v.SetEnvPrefix("CARDROOM")
	v.AutomaticEnv()

	if configPath := v.GetString(flagConfigPath); configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	consumerGroup := v.GetString(flagKafkaConsumerGroup)
	if consumerGroup == "" {
		consumerGroup = v.GetString(flagInstanceName)
	}

	cfg := &config.Config{
		InstanceName: v.GetString(flagInstanceName),
		HttpApiConfig: &config.HttpApiConfig{
			Host: v.GetString(flagListenHost),
			Port: v.GetInt(flagListenPort),
		},
		SessionStoreConfig: &config.SessionStoreConfig{
			Backend: v.GetString(flagSessionBackend),
			DBDSN:   v.GetString(flagSessionDBDSN),
			TTL:     v.GetDuration(flagSessionTTL),
		},
		KafkaBroadcastConfig: &config.KafkaBroadcastConfig{
			Enabled:       v.GetBool(flagKafkaEnabled),
			DBDSN:         v.GetString(flagKafkaDBDSN),
			Topic:         v.GetString(flagKafkaTopic),
			ConsumerGroup: consumerGroup,
			Timeout:       time.Second * 10,
		},
		DocStorageConfig: &config.DocStorageConfig{
			BaseDir: v.GetString(flagDocStorageDir),
		},
		SignServiceConfig: &config.SignServiceConfig{
			BaseUrl: v.GetString(flagSignServiceUrl),
			Timeout: time.Second * 30,
		},
		NotifierConfig: &config.NotifierConfig{
			Backend: v.GetString(flagNotifierBackend),
			BaseUrl: v.GetString(flagNotifierUrl),
			Timeout: time.Second * 10,
		},
		WorkflowConfig: &config.WorkflowConfig{
			NotifyWhileSignerSigned: v.GetBool(flagNotifyWhileSignerSigned),
			ShouldSendForSigning:    v.GetBool(flagShouldSendForSigning),
		},
		CollectionsDBDSN: v.GetString(flagCollectionsDBDSN),
		KeyStoreDBDSN:    v.GetString(flagKeyStoreDBDSN),
	}

	if cfg.KafkaBroadcastConfig.Enabled {
		tlsConfig, err := kafka_broadcast.GetTLSConfig(v.GetString(flagKafkaTrustStorePath))
		if err != nil {
			return nil, fmt.Errorf("failed to read kafka truststore: %w", err)
		}
		cfg.KafkaBroadcastConfig.TlsConfig = tlsConfig

		if creds := v.GetString(flagKafkaProducerCredentials); creds != "" {
			cfg.KafkaBroadcastConfig.ProducerCredentials, err = kafka_broadcast.ParseSaslPlain(creds)
			if err != nil {
				return nil, fmt.Errorf("failed to parse producer credentials: %w", err)
			}
		}
		if creds := v.GetString(flagKafkaConsumerCredentials); creds != "" {
			cfg.KafkaBroadcastConfig.ConsumerCredentials, err = kafka_broadcast.ParseSaslPlain(creds)
			if err != nil {
				return nil, fmt.Errorf("failed to parse consumer credentials: %w", err)
			}
		}
	}

	return cfg, nil
}

func genBusKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gen_bus_key",
		Short: "generates the keypair used to sign bus envelopes",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyStoreDBDSN, err := cmd.Flags().GetString(flagKeyStoreDBDSN)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}

			keyStore, err := keystore.NewLevelDBKeyStore(keyStoreDBDSN)
			if err != nil {
				return fmt.Errorf("failed to init key store: %w", err)
			}

			keyPair := keystore.NewKeyPair()
			if err := keyStore.PutKeys("bus_signing_key", keyPair); err != nil {
				return fmt.Errorf("failed to save keypair: %w", err)
			}

			fmt.Printf("bus signing keypair generated and saved to %s\n", keyStoreDBDSN)
			return nil
		},
	}
}

func startCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "starts the cardroom coordinator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			sp, err := services.InitServices(cfg)
			if err != nil {
				return fmt.Errorf("failed to init services: %w", err)
			}
			defer func() {
				if err := sp.GetSessionStore().Close(); err != nil {
					log.Printf("failed to close session store: %v", err)
				}
				if err := sp.GetBroadcaster().Close(); err != nil {
					log.Printf("failed to close broadcaster: %v", err)
				}
			}()

			var api http_api.RESTApiProvider
			if err := api.NewServer(cfg, sp); err != nil {
				return fmt.Errorf("failed to build HTTP server: %w", err)
			}

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigs

				log.Println("Received signal, stopping coordinator...")
				ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
				defer cancel()
				if err := api.Stop(ctx); err != nil {
					log.Printf("failed to stop HTTP server: %v", err)
				}
			}()

			sp.GetLogger().Log("starting HTTP API on %s:%d", cfg.HttpApiConfig.Host, cfg.HttpApiConfig.Port)
			if err := api.Start(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}

func main() {
	rootCmd.AddCommand(
		startCommand(),
		genBusKeyCommand(),
	)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute root command: %v", err)
	}
}
