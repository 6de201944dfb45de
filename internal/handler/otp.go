package handler

import (
	"net/http"
)

type passwordResetRequest struct {
	Action      string `validate:"required,oneof=request verify change_password" json:"action"`
	Email       string `validate:"required" json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// PasswordReset drives the three-step reset flow over a single endpoint:
// request a code, verify it, then change the password with the verified
// code.
func (h *Handler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	var err error
	switch req.Action {
	case "request":
		err = h.otp.Request(req.Email)
	case "verify":
		err = h.otp.Verify(req.Email, req.Code)
	case "change_password":
		err = h.otp.ChangePassword(req.Email, req.Code, req.NewPassword)
	}
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
