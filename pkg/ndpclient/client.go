package ndpclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nordlys-io/ndp-client/internal/client"
	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// New creates an API client from configuration. The base URL is normalized
// to https and the OAuth2 token endpoint is derived from it when not given.
func New(config *ndp.Config) (ndp.Client, error) {
	if config == nil {
		return nil, ndp.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, ndp.ErrBaseURLRequired
	}

	if config.Project == "" {
		return nil, ndp.ErrProjectRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeEndpoint(config.BaseURL)

	if normalized.ClientID != "" && normalized.TokenURL == "" {
		normalized.TokenURL = normalized.BaseURL + "/oauth/token"
	}

	return client.New(&normalized)
}

// NewWithToken creates a client using a static access token.
func NewWithToken(baseURL, project, token string) (ndp.Client, error) {
	return New(&ndp.Config{
		BaseURL:     baseURL,
		Project:     project,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a client using the OAuth2
// client_credentials grant.
func NewWithClientCredentials(baseURL, project, clientID, clientSecret string) (ndp.Client, error) {
	return New(&ndp.Config{
		BaseURL:      baseURL,
		Project:      project,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// normalizeEndpoint ensures the base URL has a scheme and no trailing slash.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(endpoint, "/")

	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// configKeys maps configuration keys to the environment variables that can
// set them.
var configKeys = map[string]string{
	"baseUrl":      "NDP_BASE_URL",
	"project":      "NDP_PROJECT",
	"accessToken":  "NDP_ACCESS_TOKEN",
	"clientId":     "NDP_CLIENT_ID",
	"clientSecret": "NDP_CLIENT_SECRET",
	"tokenUrl":     "NDP_TOKEN_URL",
	"scopes":       "NDP_SCOPES",
	"maxWorkers":   "NDP_MAX_WORKERS",
	"retryMax":     "NDP_RETRY_MAX",
	"retryWaitMin": "NDP_RETRY_WAIT_MIN",
	"retryWaitMax": "NDP_RETRY_WAIT_MAX",
	"httpTimeout":  "NDP_HTTP_TIMEOUT",
	"debug":        "NDP_DEBUG",
	"userAgent":    "NDP_USER_AGENT",
}

// LoadConfig builds a Config from a YAML file and NDP_* environment
// variables. Environment variables override file values. configFile may be
// empty to use the environment alone.
func LoadConfig(configFile string) (*ndp.Config, error) {
	v := viper.New()

	for key, env := range configKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	config := &ndp.Config{
		BaseURL:      v.GetString("baseUrl"),
		Project:      v.GetString("project"),
		AccessToken:  v.GetString("accessToken"),
		ClientID:     v.GetString("clientId"),
		ClientSecret: v.GetString("clientSecret"),
		TokenURL:     v.GetString("tokenUrl"),
		MaxWorkers:   v.GetInt("maxWorkers"),
		RetryMax:     v.GetInt("retryMax"),
		Debug:        v.GetBool("debug"),
		UserAgent:    v.GetString("userAgent"),
	}

	if scopes := v.GetString("scopes"); scopes != "" {
		config.Scopes = strings.Split(scopes, ",")
	} else {
		config.Scopes = v.GetStringSlice("scopes")
	}

	config.RetryWaitMin = getDuration(v, "retryWaitMin")
	config.RetryWaitMax = getDuration(v, "retryWaitMax")
	config.HTTPTimeout = getDuration(v, "httpTimeout")

	return config, nil
}

func getDuration(v *viper.Viper, key string) time.Duration {
	if s := v.GetString(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}

	return v.GetDuration(key)
}

// NewFromEnv creates a client from NDP_* environment variables and an
// optional YAML config file.
func NewFromEnv(configFile string) (ndp.Client, error) {
	config, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	return New(config)
}
