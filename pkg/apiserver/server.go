package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/trackmaster/trackmaster/pkg/backend"
	"github.com/trackmaster/trackmaster/pkg/version"
)

type apiServer struct {
	ctx        context.Context
	log        *logrus.Entry
	port       int
	trustProxy bool
}

func NewAPIServer(ctx context.Context, log *logrus.Entry, port int, trustProxy bool) *apiServer {
	return &apiServer{
		ctx:        ctx,
		log:        log,
		port:       port,
		trustProxy: trustProxy,
	}
}

func (a *apiServer) Start(backend backend.Backend) error {
	logrus.Infof("Version: %s", version.Get())

	// Below this point is where the server is started and graceful shutdown occurs.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.port),
		Handler:           newRouter(a.log, backend, a.trustProxy),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.WithField("port", a.port).Info("starting api server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("listen: %s\n", err)
		}
	}()

	<-a.ctx.Done()

	a.log.Info("shutting down the api server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer func() {
		cancel()
	}()

	if err := srv.Shutdown(ctx); err != nil {
		a.log.WithError(err).Error("unable to shutdown the api server gracefully")
		return err
	}

	return nil
}

func newRouter(log *logrus.Entry, b backend.Backend, trustProxy bool) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(loggingMiddleware(log))
	h := newHandler(b, trustProxy)
	authed := tokenAuth(b)

	// When functioning properly, these routes will return the version of tha app that is running
	router.Path("/").HandlerFunc(h.root)
	router.Path("/healthz").HandlerFunc(h.root)

	api := router.PathPrefix("/api").Subrouter()

	// Every route lists its steps explicitly: validation first, then the token
	// check for anything that changes data.
	users := api.PathPrefix("/users").Subrouter()
	users.Path("/signup").Methods("POST").Handler(chain(h.signUp, validateBody(signupRules...)))
	users.Path("/login").Methods("POST").Handler(chain(h.login, validateBody(loginRules...)))
	users.Path("").Methods("GET").Handler(chain(h.getUsers, authed))
	users.Path("/{uid}").Methods("GET").Handler(chain(h.getUserByID, authed))
	users.Path("/{uid}").Methods("PATCH").Handler(chain(h.updateUser, validateBody(updateUserRules...), authed))

	domains := api.PathPrefix("/domains").Subrouter()
	domains.Path("").Methods("GET").Handler(chain(h.getDomains))
	domains.Path("/{did}").Methods("GET").Handler(chain(h.getDomainByID))
	domains.Path("").Methods("POST").Handler(chain(h.createDomain, validateBody(domainRules...), authed))
	domains.Path("/{did}").Methods("DELETE").Handler(chain(h.deleteDomain, authed))

	details := api.PathPrefix("/details").Subrouter()
	details.Path("").Methods("GET").Handler(chain(h.getDetails))
	details.Path("/{did}").Methods("GET").Handler(chain(h.getDetailByID))
	details.Path("").Methods("POST").Handler(chain(h.createDetail, validateBody(detailRules...), authed))
	details.Path("/{did}").Methods("DELETE").Handler(chain(h.deleteDetail, authed))

	devices := api.PathPrefix("/device").Subrouter()
	devices.Path("").Methods("GET").Handler(chain(h.getDevices))
	devices.Path("/{did}").Methods("GET").Handler(chain(h.getDeviceByID))
	devices.Path("").Methods("POST").Handler(chain(h.createDevice, validateBody(deviceRules...), authed))
	devices.Path("/{did}").Methods("DELETE").Handler(chain(h.deleteDevice, authed))

	data := api.PathPrefix("/data").Subrouter()
	data.Path("").Methods("GET").Handler(chain(h.getData))
	data.Path("/{did}").Methods("GET").Handler(chain(h.getDataByID))
	data.Path("").Methods("POST").Handler(chain(h.createData, validateBody(dataRules...), authed))
	data.Path("/{did}").Methods("DELETE").Handler(chain(h.deleteData, authed))

	// Note: this allows not found urls to be logged via the middleware
	// It **HAS** to be defined after all other paths are defined.
	router.NotFoundHandler = router.NewRoute().HandlerFunc(h.notFound).GetHandler()
	router.MethodNotAllowedHandler = http.HandlerFunc(h.notFound)

	return ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowCredentials(),
		ghandlers.AllowedHeaders([]string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"}),
		ghandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "PUT", "DELETE"}),
	)(router)
}
