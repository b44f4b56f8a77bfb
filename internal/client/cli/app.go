package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/msivanov/materialhub/internal/client/api"
	"github.com/msivanov/materialhub/internal/client/config"
	"github.com/msivanov/materialhub/internal/client/localdb"
	"github.com/msivanov/materialhub/internal/client/payx"
	"github.com/msivanov/materialhub/internal/client/router"
	"github.com/msivanov/materialhub/internal/client/session"
	"github.com/msivanov/materialhub/internal/client/stores"
	"github.com/msivanov/materialhub/internal/logging"

	"go.uber.org/zap"
)

type App struct {
	config  *config.Config
	session *session.Session
	client  api.Client
	router  *router.Router

	materials *stores.MaterialStore
	users     *stores.UserStore
	uploads   *stores.UploadStore
	payments  *stores.PaymentStore

	// path is the current screen, maintained through router.Resolve.
	path   string
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	zl, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	logger := logging.NewZapLogger(zl)

	db, err := localdb.Open(ctx, c.LocalDBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	sess, err := session.Load(ctx, db)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  c,
		session: sess,
		router:  router.New(),
		path:    "/",
		reader:  bufio.NewReader(os.Stdin),
	}

	apiClient := api.NewHTTPClient(api.HTTPClientConfig{
		BaseURL:       c.BaseURL,
		Timeout:       c.Timeout,
		UploadTimeout: c.UploadTimeout,
		Tokens:        sess,
		Logger:        logger,
		OnUnauthorized: func() {
			// Session is already cleared by the HTTP client via Tokens.
			log.Printf("Session expired, please log in again")
			a.path = router.LoginRedirect(a.path)
		},
	})
	a.client = apiClient

	a.materials = stores.NewMaterialStore(stores.MaterialStoreConfig{
		Client:            apiClient,
		Logger:            logger,
		PageSize:          c.PageSize,
		RollbackOnFailure: c.RollbackOnFailure,
	})
	a.users = stores.NewUserStore(apiClient, sess, logger)
	a.uploads = stores.NewUploadStore(stores.UploadStoreConfig{Client: apiClient, Catalog: a.materials, Logger: logger})
	a.payments = stores.NewPaymentStore(stores.PaymentStoreConfig{Client: apiClient, Bridge: payx.NoBridge{}, Logger: logger})

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.users.IsAuthenticated()
}

// getStatus renders the prompt suffix: the user name when logged in and
// the current screen when it is not the home screen.
func (a *App) getStatus() string {
	s := ""
	if u := a.users.User(); u != nil {
		s = u.Username
	}
	if a.path != "/" {
		if s != "" {
			s += " "
		}
		s += a.path
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Open navigates to a path through the routing table, honoring the auth
// guard. The resolved screen name and title are reported to the user.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: open <path>")
		return nil
	}

	m := a.router.Resolve(args[0], a.isLoggedIn())
	if m.RedirectTo != "" {
		printlnFn("Login required, redirecting to", m.RedirectTo)
		a.path = m.RedirectTo
		return nil
	}

	a.path = args[0]
	printlnFn(fmt.Sprintf("%s: %s", m.Route.Name, m.Route.Title))
	if id, ok := m.Params["id"]; ok {
		return a.Detail(ctx, []string{id})
	}
	return nil
}
