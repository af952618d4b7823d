package apiserver

import (
	"net/http"

	"github.com/trackmaster/trackmaster/pkg/model"
)

func (h *handler) signUp(w http.ResponseWriter, r *http.Request) error {
	var input model.SignupRequest
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	user, err := h.backend.SignUp(r.Context(), input)
	if err != nil {
		return err
	}

	writeCreated(w, user)
	return nil
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) error {
	var input model.LoginRequest
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	resp, err := h.backend.Login(r.Context(), input)
	if err != nil {
		return err
	}

	writeSuccess(w, resp)
	return nil
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) error {
	caller, err := identityFromRequest(r)
	if err != nil {
		return err
	}

	userID, err := idVar(r, "uid", "Could not find user.")
	if err != nil {
		return err
	}

	var input model.UpdateUserRequest
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	user, err := h.backend.UpdateUser(r.Context(), caller, userID, input)
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"user": user})
	return nil
}

func (h *handler) getUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.backend.GetUsers(r.Context())
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"users": users})
	return nil
}

func (h *handler) getUserByID(w http.ResponseWriter, r *http.Request) error {
	userID, err := idVar(r, "uid", "Could not find user.")
	if err != nil {
		return err
	}

	user, err := h.backend.GetUser(r.Context(), userID)
	if err != nil {
		return err
	}

	writeSuccess(w, map[string]interface{}{"user": user})
	return nil
}
