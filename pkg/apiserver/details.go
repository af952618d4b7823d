package apiserver

import (
	"net/http"

	"github.com/trackmaster/trackmaster/pkg/model"
)

const detailNotFound = "Could not find this detail"

func (h *handler) createDetail(w http.ResponseWriter, r *http.Request) error {
	var input model.DetailRequest
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	detail, err := h.backend.CreateDetail(r.Context(), input)
	if err != nil {
		return err
	}

	writeCreated(w, detail)
	return nil
}

func (h *handler) getDetails(w http.ResponseWriter, r *http.Request) error {
	details, err := h.backend.GetDetails(r.Context())
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"details": details})
	return nil
}

func (h *handler) getDetailByID(w http.ResponseWriter, r *http.Request) error {
	detailID, err := idVar(r, "did", detailNotFound)
	if err != nil {
		return err
	}

	detail, err := h.backend.GetDetail(r.Context(), detailID)
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"detail": detail})
	return nil
}

func (h *handler) deleteDetail(w http.ResponseWriter, r *http.Request) error {
	detailID, err := idVar(r, "did", detailNotFound)
	if err != nil {
		return err
	}

	if err := h.backend.DeleteDetail(r.Context(), detailID); err != nil {
		return err
	}

	deleted(w, "detail")
	return nil
}
