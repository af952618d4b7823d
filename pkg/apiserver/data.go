package apiserver

import (
	"net/http"
	"strconv"

	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/model"
)

const (
	dataNotFound = "Could not find this data"
	dataPageSize = 20
)

func (h *handler) createData(w http.ResponseWriter, r *http.Request) error {
	var input model.DataRequest
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	event, err := h.backend.CreateData(r.Context(), input, model.Visitor{
		IP:        h.clientIP(r),
		UserAgent: r.UserAgent(),
		Host:      r.Host,
	})
	if err != nil {
		return err
	}

	writeCreated(w, event)
	return nil
}

func (h *handler) getData(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.backend.GetData(r.Context(), pageFromQuery(r))
	if err != nil {
		return err
	}

	writeSuccess(w, resp)
	return nil
}

func (h *handler) getDataByID(w http.ResponseWriter, r *http.Request) error {
	dataID, err := idVar(r, "did", dataNotFound)
	if err != nil {
		return err
	}

	event, err := h.backend.GetDataByID(r.Context(), dataID)
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"data": event})
	return nil
}

func (h *handler) deleteData(w http.ResponseWriter, r *http.Request) error {
	dataID, err := idVar(r, "did", dataNotFound)
	if err != nil {
		return err
	}

	if err := h.backend.DeleteData(r.Context(), dataID); err != nil {
		return err
	}

	deleted(w, "data")
	return nil
}

// pageFromQuery reads ?page=N. Without it the whole set is listed; values
// that are not a page number from 1 up select the first page.
func pageFromQuery(r *http.Request) db.Page {
	values, ok := r.URL.Query()["page"]
	if !ok || len(values) == 0 {
		return db.Page{}
	}

	offset := 0
	if n, err := strconv.Atoi(values[0]); err == nil && n > 1 {
		offset = (n - 1) * dataPageSize
	}
	return db.Page{Limit: dataPageSize, Offset: offset}
}
