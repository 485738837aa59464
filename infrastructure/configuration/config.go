package configuration

import (
	"fmt"
	"os"
	"strconv"

	"creedava-api/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	LinkedIn    LinkedIn    `json:"linkedin"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	GoogleSheet GoogleSheet `json:"googleSheet"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port        int    `json:"port"`
	SecretKey   string `json:"secretKey"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

type Database struct {
	Psql  Db `json:"psql"`
	Mssql Db `json:"mssql"`
	Mongo Db `json:"mongo"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LinkedIn holds the OAuth application credentials and API endpoints.
// Base URLs are overridable so tests can point the client at fakes.
type LinkedIn struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
	AuthBaseURL  string `json:"authBaseURL"`
	APIBaseURL   string `json:"apiBaseURL"`
	Version      string `json:"version"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
	Queue     string `json:"queue"`
}

type GoogleSheet struct {
	SpreadsheetId   string `json:"spreadsheetId"`
	SheetName       string `json:"sheetName"`
	CredentialsFile string `json:"credentialsFile"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initLinkedIn(&C)
	initIntegrations(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}

	// Azure SQL in production; env overrides config file
	if v := os.Getenv("MSSQL_DB_NAME"); v != "" {
		C.Database.Mssql.Name = v
	}
	if v := os.Getenv("MSSQL_HOST"); v != "" {
		C.Database.Mssql.Host = v
	}
	if v := os.Getenv("MSSQL_USER"); v != "" {
		C.Database.Mssql.User = v
	}
	if v := os.Getenv("MSSQL_PASSWORD"); v != "" {
		C.Database.Mssql.Password = v
	}
	if v := os.Getenv("MSSQL_PORT"); v != "" {
		C.Database.Mssql.Port = v
	}
	if C.Database.Mssql.Port == "" {
		C.Database.Mssql.Port = "1433"
	}

	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = os.Getenv("MONGO_HOST")
	}
	if C.Database.Mongo.Port == "" {
		C.Database.Mongo.Port = os.Getenv("MONGO_PORT")
	}
	if C.Database.Mongo.User == "" {
		C.Database.Mongo.User = os.Getenv("MONGO_USER")
	}
	if C.Database.Mongo.Password == "" {
		C.Database.Mongo.Password = os.Getenv("MONGO_PASSWORD")
	}
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = os.Getenv("MONGO_DB_NAME")
	}
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = "creedava"
	}

	if C.RedisClient.Host == "" {
		C.RedisClient.Host = os.Getenv("REDIS_HOST")
	}
	if C.RedisClient.Port == "" {
		C.RedisClient.Port = os.Getenv("REDIS_PORT")
	}
	if C.RedisClient.Port == "" {
		C.RedisClient.Port = "6379"
	}
	if C.RedisClient.Password == "" {
		C.RedisClient.Password = os.Getenv("REDIS_PASSWORD")
	}
}

func initApp(C *Config) {
	// SECRET_KEY from environment wins over the config file
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order: APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	if C.App.TLSCertFile == "" {
		C.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if C.App.TLSKeyFile == "" {
		C.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; admin API authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initLinkedIn(C *Config) {
	if v := os.Getenv("LINKEDIN_CLIENT_ID"); v != "" {
		C.LinkedIn.ClientID = v
	}
	if v := os.Getenv("LINKEDIN_CLIENT_SECRET"); v != "" {
		C.LinkedIn.ClientSecret = v
	}
	if v := os.Getenv("LINKEDIN_REDIRECT_URI"); v != "" {
		C.LinkedIn.RedirectURI = v
	}
	if C.LinkedIn.AuthBaseURL == "" {
		C.LinkedIn.AuthBaseURL = "https://www.linkedin.com/oauth/v2"
	}
	if C.LinkedIn.APIBaseURL == "" {
		C.LinkedIn.APIBaseURL = "https://api.linkedin.com"
	}
	if C.LinkedIn.Version == "" {
		C.LinkedIn.Version = "202405"
	}
}

func initIntegrations(C *Config) {
	if v := os.Getenv("PUBSUB_PROJECT_ID"); v != "" {
		C.Pubsub.ProjectID = v
	}
	if v := os.Getenv("SERVICEBUS_NAMESPACE"); v != "" {
		C.ServiceBus.Namespace = v
	}
	if C.ServiceBus.Queue == "" {
		C.ServiceBus.Queue = "lead-alerts"
	}
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		C.GoogleSheet.SpreadsheetId = v
	}
	if C.GoogleSheet.SheetName == "" {
		C.GoogleSheet.SheetName = "Leads"
	}
	if v := os.Getenv("GOOGLE_SHEET_CREDENTIALS"); v != "" {
		C.GoogleSheet.CredentialsFile = v
	}
}
