package apiserver

import (
	"net/http"

	"github.com/trackmaster/trackmaster/pkg/model"
)

const deviceNotFound = "Could not find this device"

func (h *handler) createDevice(w http.ResponseWriter, r *http.Request) error {
	var input model.DeviceRequest
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	device, err := h.backend.CreateDevice(r.Context(), input)
	if err != nil {
		return err
	}

	writeCreated(w, device)
	return nil
}

func (h *handler) getDevices(w http.ResponseWriter, r *http.Request) error {
	devices, err := h.backend.GetDevices(r.Context())
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"devices": devices})
	return nil
}

func (h *handler) getDeviceByID(w http.ResponseWriter, r *http.Request) error {
	deviceID, err := idVar(r, "did", deviceNotFound)
	if err != nil {
		return err
	}

	device, err := h.backend.GetDevice(r.Context(), deviceID)
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"device": device})
	return nil
}

func (h *handler) deleteDevice(w http.ResponseWriter, r *http.Request) error {
	deviceID, err := idVar(r, "did", deviceNotFound)
	if err != nil {
		return err
	}

	if err := h.backend.DeleteDevice(r.Context(), deviceID); err != nil {
		return err
	}

	deleted(w, "device")
	return nil
}
