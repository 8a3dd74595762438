package clients

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"github.com/jimlawless/whereami"
	config "github.com/shopsphere/catalog-service/internal/cfg"
	"github.com/shopsphere/catalog-service/pkg/e"
	"google.golang.org/api/option"
)

// NewFirebaseDB инициализирует клиент Firebase Realtime Database.
// Без FIREBASE_CREDENTIALS_FILE используются Application Default Credentials.
func NewFirebaseDB(ctx context.Context, cfg *config.FirebaseCfg) (*db.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: cfg.DatabaseURL,
	}, opts...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return client, nil
}
