package config

import (
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"pairing-hub/internal/utils/runtime"
	"strings"
)

const (
	kafkaHostFlag           = "kafka-host"
	kafkaPortFlag           = "kafka-port"
	mongoDBURIFlag          = "mongodb-uri"
	redisAddrFlag           = "redis-addr"
	redisPasswordFlag       = "redis-password"
	redisDBFlag             = "redis-db"
	jwtSecretFlag           = "jwt-secret"
	developmentFlag         = "development"
	portFlag                = "port"
	healthPortFlag          = "health-port"
	instanceIDFlag          = "instance-id"
	reannounceOnPollFlag    = "reannounce-on-poll"
	profileMaxBytesFlag     = "profile-max-bytes"
	profileMaxDimensionFlag = "profile-max-dimension"
)

type Config struct {
	Kafka   KafkaConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Hub     HubConfig

	Development bool

	Port       int
	HealthPort int

	// InstanceID identifies this process on the backplane. Every instance
	// must have a distinct value.
	InstanceID string
}

type KafkaConfig struct {
	Host string
	Port int
}

type MongoDBConfig struct {
	URI string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type HubConfig struct {
	// ReannounceOnPoll makes GetOnlinePairs push an online notification to every
	// returned pair. Poll frequency then directly drives notification volume.
	ReannounceOnPoll bool

	ProfileMaxBytes     int
	ProfileMaxDimension int
}

func LoadGlobalConfig() Config {
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)
	viper.SetDefault(mongoDBURIFlag, "mongodb://localhost:27017")
	viper.SetDefault(redisAddrFlag, "localhost:6379")
	viper.SetDefault(redisPasswordFlag, "")
	viper.SetDefault(redisDBFlag, 0)
	viper.SetDefault(jwtSecretFlag, "")
	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(portFlag, 6000)
	viper.SetDefault(healthPortFlag, 10010)
	viper.SetDefault(instanceIDFlag, "")
	viper.SetDefault(reannounceOnPollFlag, true)
	viper.SetDefault(profileMaxBytesFlag, 250*1024)
	viper.SetDefault(profileMaxDimensionFlag, 256)

	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.String(mongoDBURIFlag, viper.GetString(mongoDBURIFlag), "MongoDB URI")
	pflag.String(redisAddrFlag, viper.GetString(redisAddrFlag), "Redis address")
	pflag.String(redisPasswordFlag, viper.GetString(redisPasswordFlag), "Redis password")
	pflag.Int32(redisDBFlag, viper.GetInt32(redisDBFlag), "Redis database")
	pflag.String(jwtSecretFlag, viper.GetString(jwtSecretFlag), "HMAC secret used to verify client tokens")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.Int32(portFlag, viper.GetInt32(portFlag), "Hub websocket port")
	pflag.Int32(healthPortFlag, viper.GetInt32(healthPortFlag), "gRPC health port")
	pflag.String(instanceIDFlag, viper.GetString(instanceIDFlag), "Backplane instance id (random when empty)")
	pflag.Bool(reannounceOnPollFlag, viper.GetBool(reannounceOnPollFlag), "Re-announce online status to pairs on every online pairs poll")
	pflag.Int32(profileMaxBytesFlag, viper.GetInt32(profileMaxBytesFlag), "Maximum decoded profile image size in bytes")
	pflag.Int32(profileMaxDimensionFlag, viper.GetInt32(profileMaxDimensionFlag), "Maximum profile image width and height")
	pflag.Parse()
	runtime.Must(viper.BindPFlags(pflag.CommandLine))

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{
		kafkaHostFlag, kafkaPortFlag, mongoDBURIFlag, redisAddrFlag, redisPasswordFlag, redisDBFlag,
		jwtSecretFlag, developmentFlag, portFlag, healthPortFlag, instanceIDFlag, reannounceOnPollFlag,
		profileMaxBytesFlag, profileMaxDimensionFlag,
	} {
		runtime.Must(viper.BindEnv(key))
	}

	instanceID := viper.GetString(instanceIDFlag)
	if instanceID == "" {
		instanceID = uuid.NewString()
	}

	return Config{
		Kafka: KafkaConfig{
			Host: viper.GetString(kafkaHostFlag),
			Port: int(viper.GetInt32(kafkaPortFlag)),
		},
		MongoDB: MongoDBConfig{
			URI: viper.GetString(mongoDBURIFlag),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString(redisAddrFlag),
			Password: viper.GetString(redisPasswordFlag),
			DB:       int(viper.GetInt32(redisDBFlag)),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString(jwtSecretFlag),
		},
		Hub: HubConfig{
			ReannounceOnPoll:    viper.GetBool(reannounceOnPollFlag),
			ProfileMaxBytes:     int(viper.GetInt32(profileMaxBytesFlag)),
			ProfileMaxDimension: int(viper.GetInt32(profileMaxDimensionFlag)),
		},
		Development: viper.GetBool(developmentFlag),
		Port:        int(viper.GetInt32(portFlag)),
		HealthPort:  int(viper.GetInt32(healthPortFlag)),
		InstanceID:  instanceID,
	}
}
