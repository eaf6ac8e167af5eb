package app

import (
	"errors"
	"net/url"
	"os"
	"time"

	errorsUtils "github.com/Egor213/LogiStat/pkg/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts       = 10
	defaultTimeout        = time.Second
	defaultMigrationsPath = "migrations"
)

func Migrate(pgUrl string) {
	migrateUrl := withSSLModeDisabled(pgUrl)
	log.Info("Running migrations")

	var (
		connAttempts = defaultAttempts
		err          error
		mgrt         *migrate.Migrate
	)

	migrationsPath := defaultMigrationsPath
	if p, ok := os.LookupEnv("MIGRATIONS_PATH"); ok && p != "" {
		migrationsPath = p
	}

	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		log.Fatalf("migrations directory %q does not exist", migrationsPath)
	}

	for connAttempts > 0 {
		mgrt, err = migrate.New("file://"+migrationsPath, migrateUrl)
		if err == nil {
			break
		}

		time.Sleep(defaultTimeout)
		log.Infof("Postgres trying to connect, attempts left: %d", connAttempts)
		connAttempts--
	}

	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer mgrt.Close()

	if err = mgrt.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migration no change")
		return
	}

	log.Info("Migration successful up")
}

// withSSLModeDisabled keeps an sslmode already present in the URL.
func withSSLModeDisabled(pgUrl string) string {
	u, err := url.Parse(pgUrl)
	if err != nil {
		return pgUrl
	}
	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
