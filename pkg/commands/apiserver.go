package commands

import (
	"context"
	"net/http"

	"github.com/rancher/wrangler/pkg/signals"
	"github.com/sirupsen/logrus"
	"github.com/trackmaster/trackmaster/pkg/apiserver"
	"github.com/trackmaster/trackmaster/pkg/auth"
	"github.com/trackmaster/trackmaster/pkg/backend"
	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/lookup"
	"github.com/trackmaster/trackmaster/pkg/rand"
	"github.com/trackmaster/trackmaster/pkg/version"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

const generatedKeyLength = 48

type apiServerCommand struct{}

func (s *apiServerCommand) Execute(c *cli.Context) error {
	ctx := signals.SetupSignalHandler(context.Background())

	log := logrus.WithField("command", "api-server")

	log.Infof("version: %v", version.Get())

	database, err := db.New(ctx, c.String("sql-dialect"), c.String("sql-dsn"), &gorm.Config{
		Logger: db.NewLogger(c.String("log-level")),
	})
	if err != nil {
		return err
	}

	tokens, err := newTokens(log, c)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: c.Duration("lookup-timeout")}
	back, err := backend.NewBackend(database, backend.Options{
		Tokens:     tokens,
		Detector:   lookup.NewUserstack(c.String("userstack-url"), c.String("userstack-access-key"), client),
		Geolocator: lookup.NewAbstractAPI(c.String("abstract-api-url"), c.String("abstract-api-key"), client),
		BcryptCost: c.Int("bcrypt-cost"),
	})
	if err != nil {
		return err
	}

	apiServer := apiserver.NewAPIServer(ctx, log, c.Int("port"), c.Bool("trust-proxy-headers"))

	if err := apiServer.Start(back); err != nil {
		return err
	}

	return nil
}

// newTokens builds the token issuer. Without a configured key a random one is
// used, so tokens do not survive a restart.
func newTokens(log *logrus.Entry, c *cli.Context) (*auth.Tokens, error) {
	key := c.String("jwt-key")
	if key == "" {
		log.Warn("no JWT key configured, generating a random one; issued tokens will not survive a restart")
		generated, err := rand.String(generatedKeyLength)
		if err != nil {
			return nil, err
		}
		key = generated
	}
	return auth.NewTokens(key, c.Duration("token-ttl"))
}

func serverCommand() *cli.Command {
	cmd := apiServerCommand{}

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Port for the HTTP Server Port",
			EnvVars: []string{"TRACKMASTER_PORT", "PORT"},
			Value:   5000,
		},
		&cli.StringFlag{
			Name:    "sql-dialect",
			Usage:   "The type of sql to use, sqlite or mysql",
			EnvVars: []string{"TRACKMASTER_SQL_DIALECT", "SQL_DIALECT"},
			Value:   "sqlite",
		},
		&cli.StringFlag{
			Name:    "sql-dsn",
			Usage:   "The DSN to use to connect to",
			EnvVars: []string{"TRACKMASTER_SQL_DSN", "SQL_DSN", "DATABASE_URL"},
			Value:   "file:trackmaster.sqlite?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		},
		&cli.BoolFlag{
			Name:    "trust-proxy-headers",
			Usage:   "Take the visitor address from X-Forwarded-For or X-Real-IP; only enable behind a proxy that sets them",
			EnvVars: []string{"TRACKMASTER_TRUST_PROXY_HEADERS", "TRUST_PROXY_HEADERS"},
		},
		&cli.StringFlag{
			Name:    "jwt-key",
			Usage:   "Secret used to sign and verify bearer tokens",
			EnvVars: []string{"TRACKMASTER_JWT_KEY", "JWT_KEY"},
		},
		&cli.DurationFlag{
			Name:    "token-ttl",
			Usage:   "How long an issued token is valid",
			EnvVars: []string{"TRACKMASTER_TOKEN_TTL", "TOKEN_TTL"},
			Value:   auth.DefaultTTL,
		},
		&cli.IntFlag{
			Name:    "bcrypt-cost",
			Usage:   "bcrypt cost used to hash passwords",
			EnvVars: []string{"TRACKMASTER_BCRYPT_COST", "BCRYPT_COST"},
			Value:   12,
		},
		&cli.StringFlag{
			Name:    "userstack-access-key",
			Usage:   "Access key for the userstack user agent API",
			EnvVars: []string{"USERSTACK_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:    "userstack-url",
			Usage:   "Base URL of the userstack API",
			EnvVars: []string{"USERSTACK_URL"},
			Value:   lookup.DefaultUserstackURL,
		},
		&cli.StringFlag{
			Name:    "abstract-api-key",
			Usage:   "API key for the abstractapi IP geolocation API",
			EnvVars: []string{"ABSTRACT_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "abstract-api-url",
			Usage:   "Base URL of the abstractapi IP geolocation API",
			EnvVars: []string{"ABSTRACT_API_URL"},
			Value:   lookup.DefaultAbstractAPIURL,
		},
		&cli.DurationFlag{
			Name:    "lookup-timeout",
			Usage:   "Timeout for each lookup request, 0 for none",
			EnvVars: []string{"LOOKUP_TIMEOUT"},
		},
	}

	return &cli.Command{
		Name:   "api-server",
		Usage:  "trackmaster api server",
		Action: cmd.Execute,
		Flags:  append(flags, GlobalFlags()...),
		Before: Before,
	}
}
