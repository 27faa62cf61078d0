package database

import (
	"fmt"
	stdlog "log"
	"strings"
	"time"

	"github.com/IliyaMhz/PersonalBlog/config"
	"github.com/IliyaMhz/PersonalBlog/errs"
	"github.com/IliyaMhz/PersonalBlog/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

const (
	DBTypePostgres = "postgres"
	DBTypeSupabase = "supa"
	DBTypeMemory   = "memory"
)

type connParams struct {
	host     string
	port     string
	user     string
	password string
	name     string
	sslMode  string

	// config keys reported when a required value is missing
	hostKey string
	nameKey string
}

func (p connParams) dsn() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.host, p.user, p.password, p.name, p.port, p.sslMode)
}

// withHost points the connection at another host, optionally given as host:port.
func (p connParams) withHost(hostPort string) connParams {
	host, port, found := strings.Cut(hostPort, ":")
	p.host = host
	if found && port != "" {
		p.port = port
	}
	return p
}

func connParamsFor(cfg map[string]string) (connParams, error) {
	dbType := config.GetString(cfg, "DB_TYPE", DBTypePostgres)
	switch dbType {
	case DBTypePostgres:
		return connParams{
			host:     config.GetString(cfg, "DB_HOST", "localhost"),
			port:     config.GetString(cfg, "DB_PORT", "5432"),
			user:     config.GetString(cfg, "DB_USER", ""),
			password: config.GetString(cfg, "DB_PASSWORD", ""),
			name:     config.GetString(cfg, "DB_NAME", ""),
			sslMode:  config.GetString(cfg, "DB_SSLMODE", "disable"),
			hostKey:  "DB_HOST",
			nameKey:  "DB_NAME",
		}, nil
	case DBTypeSupabase:
		return connParams{
			host:     config.GetString(cfg, "SUPABASE_DB_HOST", ""),
			port:     config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
			user:     config.GetString(cfg, "SUPABASE_DB_USER", ""),
			password: config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
			name:     config.GetString(cfg, "SUPABASE_DB_NAME", ""),
			sslMode:  "require",
			hostKey:  "SUPABASE_DB_HOST",
			nameKey:  "SUPABASE_DB_NAME",
		}, nil
	default:
		return connParams{}, errs.NewConfigInvalidError("DB_TYPE", dbType, "expected postgres, supa or memory")
	}
}

func (p connParams) validate() error {
	if p.host == "" {
		return errs.NewConfigMissingError(p.hostKey)
	}
	if p.name == "" {
		return errs.NewConfigMissingError(p.nameKey)
	}
	return nil
}

// BuildDSN returns the primary connection string for the configured DB_TYPE.
func BuildDSN(cfg map[string]string) (string, error) {
	params, err := connParamsFor(cfg)
	if err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	return params.dsn(), nil
}

// ReplicaDSNs returns one connection string per entry of DB_REPLICA_HOSTS.
// Replicas share credentials and database name with the primary.
func ReplicaDSNs(cfg map[string]string) ([]string, error) {
	hosts := config.GetList(cfg, "DB_REPLICA_HOSTS", nil)
	if len(hosts) == 0 {
		return nil, nil
	}

	params, err := connParamsFor(cfg)
	if err != nil {
		return nil, err
	}

	dsns := make([]string, 0, len(hosts))
	for _, host := range hosts {
		dsns = append(dsns, params.withHost(host).dsn())
	}
	return dsns, nil
}

func newGormLogger(cfg map[string]string) logger.Interface {
	gormLog := log.With().Str("component", "gorm").Logger()
	return logger.New(
		stdlog.New(gormLog, "", 0),
		logger.Config{
			SlowThreshold:             time.Duration(config.GetInt(cfg, "DB_SLOW_QUERY_MS", 500)) * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Open connects to PostgreSQL, verifies the connection and applies pool
// settings. Read replicas are registered when DB_REPLICA_HOSTS is set.
func Open(cfg map[string]string) (*gorm.DB, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newGormLogger(cfg),
	})
	if err != nil {
		return nil, errs.NewDatabaseConnectionError(err)
	}

	maxOpen := config.GetInt(cfg, "DB_MAX_OPEN_CONNS", 25)
	maxIdle := config.GetInt(cfg, "DB_MAX_IDLE_CONNS", 10)
	maxLifetime := config.GetDuration(cfg, "DB_CONN_MAX_LIFETIME", time.Hour)

	replicaDSNs, err := ReplicaDSNs(cfg)
	if err != nil {
		return nil, err
	}
	if len(replicaDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(replicaDSNs))
		for _, replicaDSN := range replicaDSNs {
			replicas = append(replicas, postgres.New(postgres.Config{
				DSN:                  replicaDSN,
				PreferSimpleProtocol: true,
			}))
		}

		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(maxOpen).
			SetMaxIdleConns(maxIdle).
			SetConnMaxLifetime(maxLifetime)

		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
		log.Info().Int("replicas", len(replicas)).Msg("Read replicas registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, errs.NewDatabaseConnectionError(err)
	}

	return db, nil
}

// Migrate creates or alters the blogs table and its indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Blog{}); err != nil {
		return fmt.Errorf("auto-migrate blogs: %w", err)
	}
	return nil
}
