package main

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"strconv"

	"gorm.io/gorm"

	"github.com/samletnorge/assist/catalog"
	"github.com/samletnorge/assist/database"
	"github.com/samletnorge/assist/planning"
	"github.com/samletnorge/assist/schedule"
)

// IOC container
type Assist struct {
	cat     *catalog.Catalog
	db      *gorm.DB
	service *schedule.Service
	mailer  planning.Mailer
	appCtx  context.Context
	config  *AppConfig
}

type AppConfig struct {
	AppName     string
	Port        int
	DBPath      string
	CropFixture string // optional override for the embedded crop catalog
	AutoMigrate bool
	SMTPAddr    string
	SMTPFrom    string
	SMTPUser    string
	SMTPPass    string
	Environment string
}

func DefaultConfig() *AppConfig {
	cfg := &AppConfig{
		AppName:     "Assist",
		Port:        3000,
		DBPath:      "assist.db",
		AutoMigrate: true,
		Environment: "dev",
	}
	if v := os.Getenv("ASSIST_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("ASSIST_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ASSIST_CROP_FIXTURE"); v != "" {
		cfg.CropFixture = v
	}
	cfg.SMTPAddr = os.Getenv("ASSIST_SMTP_ADDR")
	cfg.SMTPFrom = os.Getenv("ASSIST_SMTP_FROM")
	cfg.SMTPUser = os.Getenv("ASSIST_SMTP_USER")
	cfg.SMTPPass = os.Getenv("ASSIST_SMTP_PASS")
	return cfg
}

type AssistOption func(*Assist) error

func NewAssist(ctx context.Context, opts ...AssistOption) (*Assist, error) {
	a := &Assist{
		config: DefaultConfig(), // Default config
		appCtx: ctx,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	// Load the crop catalog if not provided
	if a.cat == nil {
		var (
			cat *catalog.Catalog
			err error
		)
		if a.config.CropFixture != "" {
			cat, err = catalog.LoadFile(a.config.CropFixture)
		} else {
			cat, err = catalog.LoadDefault()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load crop catalog: %w", err)
		}
		a.cat = cat
	}

	// Initialize database if not provided
	if a.db == nil {
		db, err := database.InitDatabase(a.config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
	}

	// Auto-migrate if enabled
	if a.config.AutoMigrate {
		if err := database.AutoMigrate(a.db, schedule.Models()...); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Real SMTP relay when configured, otherwise log-only delivery
	if a.mailer == nil {
		if a.config.SMTPAddr != "" {
			m := &planning.SMTPMailer{Addr: a.config.SMTPAddr, From: a.config.SMTPFrom}
			if a.config.SMTPUser != "" {
				host, _, _ := net.SplitHostPort(a.config.SMTPAddr)
				m.Auth = smtp.PlainAuth("", a.config.SMTPUser, a.config.SMTPPass, host)
			}
			a.mailer = m
		} else {
			a.mailer = planning.LogMailer{}
		}
	}

	a.service = schedule.NewService(a.db, a.cat, a.appCtx)

	return a, nil
}

func WithDatabase(db *gorm.DB) AssistOption {
	return func(a *Assist) error {
		a.db = db
		return nil
	}
}

func WithCatalog(cat *catalog.Catalog) AssistOption {
	return func(a *Assist) error {
		a.cat = cat
		return nil
	}
}

func WithMailer(m planning.Mailer) AssistOption {
	return func(a *Assist) error {
		a.mailer = m
		return nil
	}
}

func WithAppName(name string) AssistOption {
	return func(a *Assist) error {
		a.config.AppName = name
		return nil
	}
}

func WithPort(port int) AssistOption {
	return func(a *Assist) error {
		a.config.Port = port
		return nil
	}
}
