package apiserver

import (
	"net/http"

	"github.com/trackmaster/trackmaster/pkg/model"
)

const domainNotFound = "Could not find this domain"

func (h *handler) createDomain(w http.ResponseWriter, r *http.Request) error {
	var input model.DomainRequest
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	domain, err := h.backend.CreateDomain(r.Context(), input)
	if err != nil {
		return err
	}

	writeCreated(w, domain)
	return nil
}

func (h *handler) getDomains(w http.ResponseWriter, r *http.Request) error {
	domains, err := h.backend.GetDomains(r.Context())
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"domains": domains})
	return nil
}

func (h *handler) getDomainByID(w http.ResponseWriter, r *http.Request) error {
	domainID, err := idVar(r, "did", domainNotFound)
	if err != nil {
		return err
	}

	domain, err := h.backend.GetDomain(r.Context(), domainID)
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"domain": domain})
	return nil
}

func (h *handler) deleteDomain(w http.ResponseWriter, r *http.Request) error {
	domainID, err := idVar(r, "did", domainNotFound)
	if err != nil {
		return err
	}

	if err := h.backend.DeleteDomain(r.Context(), domainID); err != nil {
		return err
	}

	deleted(w, "domain")
	return nil
}
