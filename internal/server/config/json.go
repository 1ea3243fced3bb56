package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/blogauth/internal/flagx"
	"github.com/dmitrijs2005/blogauth/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	JWTIssuer                   string         `json:"jwt_issuer"`
	JWTAudience                 string         `json:"jwt_audience"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	ResetTokenValidityDuration  timex.Duration `json:"reset_token_validity_duration"`
	UserCacheTTL                timex.Duration `json:"user_cache_ttl"`
	DispatcherWorkers           int            `json:"dispatcher_workers"`
	DispatcherQueueSize         int            `json:"dispatcher_queue_size"`
	ResendAPIKey                string         `json:"resend_api_key"`
	EmailFrom                   string         `json:"email_from"`
	ResetLinkBaseURL            string         `json:"reset_link_base_url"`
	NATSAddr                    string         `json:"nats_addr"`
	AuditSubject                string         `json:"audit_subject"`
}

// parseJson loads configuration values from a JSON file (given via the
// -c/-config flags) into the provided Config. Fields absent from the file
// keep their current values. If the file cannot be read or contains invalid
// JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.JWTIssuer != "" {
		config.JWTIssuer = c.JWTIssuer
	}
	if c.JWTAudience != "" {
		config.JWTAudience = c.JWTAudience
	}
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ResetTokenValidityDuration.Duration > 0 {
		config.ResetTokenValidityDuration = c.ResetTokenValidityDuration.Duration
	}
	if c.UserCacheTTL.Duration > 0 {
		config.UserCacheTTL = c.UserCacheTTL.Duration
	}
	if c.DispatcherWorkers > 0 {
		config.DispatcherWorkers = c.DispatcherWorkers
	}
	if c.DispatcherQueueSize > 0 {
		config.DispatcherQueueSize = c.DispatcherQueueSize
	}
	if c.ResendAPIKey != "" {
		config.ResendAPIKey = c.ResendAPIKey
	}
	if c.EmailFrom != "" {
		config.EmailFrom = c.EmailFrom
	}
	if c.ResetLinkBaseURL != "" {
		config.ResetLinkBaseURL = c.ResetLinkBaseURL
	}
	if c.NATSAddr != "" {
		config.NATSAddr = c.NATSAddr
	}
	if c.AuditSubject != "" {
		config.AuditSubject = c.AuditSubject
	}
}
