package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch c.Auth.Provider {
	case AuthProviderBuiltin:
	case AuthProviderSupabase:
		if c.Supabase.URL == "" || c.Supabase.AnonKey == "" {
			return fmt.Errorf("supabase.url and supabase.anon_key are required when auth.provider is %q", AuthProviderSupabase)
		}
	default:
		return fmt.Errorf("auth.provider must be %q or %q (got %q)", AuthProviderBuiltin, AuthProviderSupabase, c.Auth.Provider)
	}

	if c.Auth.MagicLinkTTL <= 0 {
		return fmt.Errorf("auth.magic_link_ttl must be > 0 (got %s)", c.Auth.MagicLinkTTL)
	}

	if _, err := url.ParseRequestURI(c.Server.PublicURL); err != nil {
		return fmt.Errorf("server.public_url: %w", err)
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be within [0, 1] (got %v)", c.Tracing.SampleRatio)
	}

	if err := c.Items.validate(); err != nil {
		return fmt.Errorf("items: %w", err)
	}

	return nil
}

func (c *ItemsConfig) validate() error {
	if c.MaxPageSize <= 0 {
		return fmt.Errorf("max_page_size must be > 0 (got %d)", c.MaxPageSize)
	}
	if c.DefaultPageSize <= 0 || c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default_page_size must be within [1, %d] (got %d)", c.MaxPageSize, c.DefaultPageSize)
	}
	return nil
}
