package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offmind/offmind-backend/internal/adapter/postgres"
	contactrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/contact"
	destinationrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/destination"
	itemrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/item"
	magiclinkrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/magiclink"
	profilerepo "github.com/offmind/offmind-backend/internal/adapter/postgres/profile"
	tokenrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/token"
	"github.com/offmind/offmind-backend/internal/adapter/provider/mail"
	"github.com/offmind/offmind-backend/internal/adapter/provider/supabase"
	authpkg "github.com/offmind/offmind-backend/internal/auth"
	"github.com/offmind/offmind-backend/internal/config"
	"github.com/offmind/offmind-backend/internal/service/auth"
	boardsvc "github.com/offmind/offmind-backend/internal/service/board"
	"github.com/offmind/offmind-backend/internal/service/contact"
	"github.com/offmind/offmind-backend/internal/service/dashboard"
	"github.com/offmind/offmind-backend/internal/service/destination"
	"github.com/offmind/offmind-backend/internal/service/item"
	"github.com/offmind/offmind-backend/internal/service/profile"
)

// Repos holds the PostgreSQL repositories.
type Repos struct {
	Profiles     *profilerepo.Repo
	Tokens       *tokenrepo.Repo
	MagicLinks   *magiclinkrepo.Repo
	Destinations *destinationrepo.Repo
	Items        *itemrepo.Repo
	Contacts     *contactrepo.Repo
}

// Services holds the application services built over Repos.
type Services struct {
	Auth         *auth.Service
	Items        *item.Service
	Destinations *destination.Service
	Contacts     *contact.Service
	Board        *boardsvc.Service
	Dashboard    *dashboard.Service
	Profile      *profile.Service
}

// Container wires repositories, providers and services for one pool. The
// server and the admin CLI share it.
type Container struct {
	Repos    Repos
	Services Services
	// Supabase is nil unless auth.provider is "supabase".
	Supabase *supabase.Provider
}

// NewContainer builds the dependency graph.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Container, error) {
	repos := Repos{
		Profiles:     profilerepo.New(pool),
		Tokens:       tokenrepo.New(pool),
		MagicLinks:   magiclinkrepo.New(pool),
		Destinations: destinationrepo.New(pool),
		Items:        itemrepo.New(pool),
		Contacts:     contactrepo.New(pool),
	}
	tx := postgres.NewTxManager(pool)

	c := &Container{Repos: repos}

	destinations := destination.NewService(logger, repos.Destinations, repos.Items, tx)
	items := item.NewService(logger, repos.Items, repos.Destinations, repos.Profiles, cfg.Items)

	deps := auth.Deps{
		Profiles:     repos.Profiles,
		Tokens:       repos.Tokens,
		MagicLinks:   repos.MagicLinks,
		Destinations: destinations,
		Tx:           tx,
		JWT:          authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		Sender:       mail.NewLogSender(logger),
	}
	if cfg.Auth.UsesSupabase() {
		sb, err := supabase.New(cfg.Supabase, logger)
		if err != nil {
			return nil, fmt.Errorf("supabase provider: %w", err)
		}
		c.Supabase = sb
		deps.Sender = sb
		deps.Identity = sb
	}

	linkBase := strings.TrimRight(cfg.Server.PublicURL, "/") + cfg.Auth.MagicLinkPath

	c.Services = Services{
		Auth:         auth.NewService(logger, deps, cfg.Auth, linkBase),
		Items:        items,
		Destinations: destinations,
		Contacts:     contact.NewService(logger, repos.Contacts),
		Board:        boardsvc.NewService(logger, items),
		Dashboard:    dashboard.NewService(logger, repos.Items, repos.Profiles),
		Profile:      profile.NewService(logger, repos.Profiles),
	}
	return c, nil
}
