package main

import (
	"fmt"
	"os"
	"strings"

	"content-admin/cmd/bootstrap"
	"content-admin/config"
	"content-admin/internal/domain/entity"
	"content-admin/internal/infrastructure/database"
	"content-admin/internal/repository"
	"content-admin/pkg/password"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gorm.io/gorm"
)

type options struct {
	email     string
	password  string
	firstName string
	lastName  string
	superuser bool
}

func main() {
	opts := options{}
	pflag.StringVar(&opts.email, "email", "", "admin email (required)")
	pflag.StringVar(&opts.password, "password", "", "admin password (required)")
	pflag.StringVar(&opts.firstName, "first-name", "", "first name")
	pflag.StringVar(&opts.lastName, "last-name", "", "last name")
	pflag.BoolVar(&opts.superuser, "superuser", true, "grant superuser rights")
	pflag.Parse()

	logrus.SetFormatter(&logrus.JSONFormatter{})

	if err := run(opts); err != nil {
		logrus.Errorf("Failed to create admin: %v", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	opts.email = entity.NormalizeEmail(opts.email)
	if opts.email == "" || opts.password == "" {
		return fmt.Errorf("--email and --password are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	policy, err := bootstrap.NewPasswordPolicy(cfg.Password)
	if err != nil {
		return err
	}
	problems := policy.Check(opts.password, password.Attributes{
		"email":      opts.email,
		"first_name": opts.firstName,
		"last_name":  opts.lastName,
	})
	if len(problems) > 0 {
		return fmt.Errorf("password rejected: %s", strings.Join(problems, " "))
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	identity, err := createAdmin(db, opts)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"identity_id": identity.ID,
		"email":       opts.email,
		"superuser":   identity.IsSuperuser,
	}).Info("Admin created")
	return nil
}

func createAdmin(db *gorm.DB, opts options) (*entity.Identity, error) {
	identityRepo := repository.NewIdentityRepository()
	adminProfileRepo := repository.NewAdminProfileRepository()

	tx := db.Begin()
	defer tx.Rollback()

	taken, err := adminProfileRepo.EmailTaken(tx, opts.email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("admin user with this email already exists")
	}

	hash, err := password.Hash(opts.password)
	if err != nil {
		return nil, err
	}

	identity := entity.NewAdminIdentity(hash, &entity.AdminProfile{
		FirstName: opts.firstName,
		LastName:  opts.lastName,
		Email:     opts.email,
	})
	identity.IsSuperuser = opts.superuser

	if err := identityRepo.Create(tx, identity); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return identity, nil
}
