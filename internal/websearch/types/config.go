package types

import (
	"net/url"
	"time"

	apperrors "github.com/lk2023060901/nitionsearch-console/internal/pkg/errors"
)

// ProviderConfig represents the search backend configuration
type ProviderConfig struct {
	// API settings
	APIHost   string `json:"api_host" mapstructure:"api_host"`
	UserAgent string `json:"user_agent,omitempty" mapstructure:"user_agent"`

	// Optional settings
	Timeout   time.Duration `json:"timeout,omitempty" mapstructure:"timeout"`       // 0 disables the client timeout
	SortOrder string        `json:"sort_order,omitempty" mapstructure:"sort_order"` // empty leaves the backend default
}

// Validate validates the provider configuration
func (c *ProviderConfig) Validate() error {
	if c.APIHost == "" {
		return apperrors.New(apperrors.ErrSearchInvalidConfig, "api_host is required")
	}
	u, err := url.Parse(c.APIHost)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrSearchInvalidConfig, "api_host is not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.Newf(apperrors.ErrSearchInvalidConfig, "unsupported api_host scheme %q", u.Scheme)
	}
	if c.Timeout < 0 {
		return apperrors.New(apperrors.ErrSearchInvalidConfig, "timeout must not be negative")
	}
	return nil
}
