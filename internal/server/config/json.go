package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/flagx"
)

// JsonConfig is the DTO for reading a JSON configuration file. Durations are
// expressed in minutes so that plain JSON numbers work; after unmarshalling
// the values are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr               string `json:"endpoint_addr"`
	DatabaseDSN                string `json:"database_dsn"`
	SecretKey                  string `json:"secret_key"`
	AccessTokenValidityMinutes int    `json:"access_token_validity_minutes"`
	MaxUploadBytes             int64  `json:"max_upload_bytes"`
	DownloadURLTTLMinutes      int    `json:"download_url_ttl_minutes"`
	S3RootUser                 string `json:"s3_root_user"`
	S3RootPassword             string `json:"s3_root_password"`
	S3Bucket                   string `json:"s3_bucket"`
	S3Region                   string `json:"s3_region"`
	S3BaseEndpoint             string `json:"s3_base_endpoint"`
	RedisAddr                  string `json:"redis_addr"`
	CacheTTLMinutes            int    `json:"cache_ttl_minutes"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. An unreadable or invalid
// file panics: a broken explicit config should stop startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityMinutes) * time.Minute
	}
	if c.MaxUploadBytes > 0 {
		config.MaxUploadBytes = c.MaxUploadBytes
	}
	if c.DownloadURLTTLMinutes > 0 {
		config.DownloadURLTTL = time.Duration(c.DownloadURLTTLMinutes) * time.Minute
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.RedisAddr != "" {
		config.RedisAddr = c.RedisAddr
	}
	if c.CacheTTLMinutes > 0 {
		config.CacheTTL = time.Duration(c.CacheTTLMinutes) * time.Minute
	}
}
