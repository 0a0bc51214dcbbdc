// Package main provisions organizations and organizer accounts out of band.
//
//	provision -org-slug acme -org-name "Acme" -username sara -password ... -phone 0912...
//
// An existing organization with the given slug is reused.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hosseinmostafavi2079/roydadpro/config"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/internal/organizations"
	"github.com/hosseinmostafavi2079/roydadpro/internal/users"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

type options struct {
	orgName   string
	orgSlug   string
	theme     string
	username  string
	password  string
	phone     string
	email     string
	firstName string
	lastName  string
	organizer bool
}

func main() {
	logger := newLogger()
	defer logger.Sync()

	var opts options
	flag.StringVar(&opts.orgSlug, "org-slug", "", "organization slug; created when missing")
	flag.StringVar(&opts.orgName, "org-name", "", "organization name, required when the organization is created")
	flag.StringVar(&opts.theme, "theme", string(models.ThemeIndigo), "organization theme color")
	flag.StringVar(&opts.username, "username", "", "username of the account to create")
	flag.StringVar(&opts.password, "password", "", "password of the account to create")
	flag.StringVar(&opts.phone, "phone", "", "phone number of the account to create")
	flag.StringVar(&opts.email, "email", "", "optional email")
	flag.StringVar(&opts.firstName, "first-name", "", "optional first name")
	flag.StringVar(&opts.lastName, "last-name", "", "optional last name")
	flag.BoolVar(&opts.organizer, "organizer", true, "mark the account as an organizer")
	flag.Parse()

	if opts.orgSlug == "" && opts.username == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	var orgID *int64
	if opts.orgSlug != "" {
		org, err := ensureOrganization(ctx, organizations.NewRepository(pool), opts)
		if err != nil {
			logger.Fatal("provision organization", zap.Error(err), zap.String("slug", opts.orgSlug))
		}
		logger.Info("organization ready", zap.Int64("id", org.ID), zap.String("slug", org.Slug))
		orgID = &org.ID
	}

	if opts.username != "" {
		u, err := createUser(ctx, users.NewRepository(pool), opts, orgID)
		if err != nil {
			logger.Fatal("provision user", zap.Error(err), zap.String("username", opts.username))
		}
		logger.Info("user created", zap.Int64("id", u.ID), zap.String("username", u.Username))
	}
}

func ensureOrganization(ctx context.Context, repo *organizations.Repository, opts options) (*models.Organization, error) {
	slug := strings.ToLower(strings.TrimSpace(opts.orgSlug))
	org, err := repo.GetBySlug(ctx, slug)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	if opts.orgName == "" {
		return nil, errors.New("-org-name is required to create a new organization")
	}
	theme := models.ThemeColor(opts.theme)
	if !theme.Valid() {
		return nil, errors.New("unknown theme color " + opts.theme)
	}
	org = &models.Organization{
		Name:       opts.orgName,
		Slug:       slug,
		ThemeColor: theme,
		FontFamily: models.DefaultFontFamily,
	}
	if err := repo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func createUser(ctx context.Context, repo *users.Repository, opts options, orgID *int64) (*models.User, error) {
	if opts.phone == "" {
		return nil, errors.New("-phone is required")
	}
	hashed, err := utils.HashPassword(opts.password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:       opts.username,
		Password:       hashed,
		FirstName:      opts.firstName,
		LastName:       opts.lastName,
		Email:          opts.email,
		Phone:          opts.phone,
		IsOrganizer:    opts.organizer,
		IsActive:       true,
		OrganizationID: orgID,
	}
	if err := repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func newLogger() *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := config.Build()
	return logger
}
