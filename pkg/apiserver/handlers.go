package apiserver

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/backend"
	"github.com/trackmaster/trackmaster/pkg/model"
	"github.com/trackmaster/trackmaster/pkg/version"
)

type handler struct {
	backend backend.Backend
	// trustProxy takes the client address from X-Forwarded-For or X-Real-IP.
	trustProxy bool
}

func newHandler(b backend.Backend, trustProxy bool) *handler {
	return &handler{
		backend:    b,
		trustProxy: trustProxy,
	}
}

func (h *handler) clientIP(r *http.Request) string {
	if h.trustProxy {
		return realIP(r)
	}
	return remoteHost(r)
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, version.Get())
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, apierrors.NotFound("Could not find this route."))
}

// idVar parses a numeric route variable. Anything that is not a valid id
// cannot exist, so it is reported with the resource's not found message.
func idVar(r *http.Request, name, notFound string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, apierrors.NotFound(notFound)
	}
	return uint(id), nil
}

func deleted(w http.ResponseWriter, resource string) {
	writeSuccess(w, model.MessageResponse{Message: "Deleted " + resource + "."})
}
