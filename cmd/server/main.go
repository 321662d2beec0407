package main

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/shady-cj/social-media-api/internal/router"
	"github.com/shady-cj/social-media-api/pkg/config"
	"github.com/shady-cj/social-media-api/pkg/firebase"
	"github.com/shady-cj/social-media-api/validators"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}
	defer config.CloseDB(db)

	// Firebase login is optional; without credentials only local auth is
	// available.
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			logrus.WithError(err).Fatal("failed to initialize Firebase")
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		logrus.Warn("no firebase credentials configured, firebase login disabled")
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, db, firebaseAuthClient); err != nil {
		logrus.WithError(err).Fatal("failed to set up routes")
	}

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
