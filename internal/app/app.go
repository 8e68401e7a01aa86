package app

import (
	"errors"
	"net/http"
	"os"

	"golang.org/x/oauth2/clientcredentials"
	"gorm.io/gorm"

	"github.com/phenrril/newmobile/internal/adapters/catalog"
	"github.com/phenrril/newmobile/internal/adapters/httpserver"
	"github.com/phenrril/newmobile/internal/adapters/repo/postgres"
	"github.com/phenrril/newmobile/internal/adapters/scraper"
	"github.com/phenrril/newmobile/internal/domain"
	"github.com/phenrril/newmobile/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	Catalog   domain.CatalogGateway
	Drafts    domain.DraftRepo
	SessionUC *usecase.SessionUC
	handler   http.Handler
}

// NewApp wires every adapter from the environment. db may be nil; drafts
// autosave is then disabled and everything else keeps working.
func NewApp(db *gorm.DB) (*App, error) {
	base := os.Getenv("BACKEND_BASE_URL")
	if base == "" {
		return nil, errors.New("BACKEND_BASE_URL not set")
	}

	var creds *clientcredentials.Config
	if id := os.Getenv("BACKEND_CLIENT_ID"); id != "" {
		creds = &clientcredentials.Config{
			ClientID:     id,
			ClientSecret: os.Getenv("BACKEND_CLIENT_SECRET"),
			TokenURL:     os.Getenv("BACKEND_TOKEN_URL"),
		}
	}
	gateway := catalog.NewClient(base, creds)

	var drafts domain.DraftRepo
	if db != nil {
		drafts = postgres.NewDraftRepo(db)
	}

	sessions := usecase.NewSessionUC(gateway, drafts, catalog.BuildSubmission)

	app := &App{
		DB:        db,
		Catalog:   gateway,
		Drafts:    drafts,
		SessionUC: sessions,
	}
	app.handler = httpserver.New(
		sessions,
		gateway,
		scraper.NewImageFinder(),
		httpserver.NewSEOSuggester(os.Getenv("OPENAI_API_KEY")),
	)
	return app, nil
}

func (a *App) Migrate() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.AutoMigrate(&domain.Draft{})
}

func (a *App) HTTPHandler() http.Handler { return a.handler }
