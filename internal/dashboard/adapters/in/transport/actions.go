package transport

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"guideadmin/internal/dashboard/application/ports/in"
	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/logger"
)

// actionBody — тело действия над строкой: форма или JSON
type actionBody struct {
	Action   string `json:"action"`
	Status   string `json:"status"`
	ReturnTo string `json:"return_to"`
}

func readActionBody(w http.ResponseWriter, r *http.Request) (actionBody, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var body actionBody
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return body, fmt.Errorf("decode action body: %w", err)
		}
		return body, nil
	}

	if err := r.ParseForm(); err != nil {
		return body, fmt.Errorf("parse action form: %w", err)
	}
	body.Action = r.PostFormValue("action")
	body.Status = r.PostFormValue("status")
	body.ReturnTo = r.PostFormValue("return_to")
	return body, nil
}

// backTo — куда вернуть форму: return_to, если он локальный
func backTo(returnTo, fallback string) string {
	if strings.HasPrefix(returnTo, "/") && !strings.HasPrefix(returnTo, "//") && !strings.HasPrefix(returnTo, "/\\") {
		return returnTo
	}
	return fallback
}

// actionDone — успех: JSON для скрипта страницы, тост и 303 для формы
func (h *HTTPHandler) actionDone(w http.ResponseWriter, r *http.Request, msg string, data any, redirect string) {
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, envelope{Success: true, Message: msg, Data: data})
		return
	}
	h.flash.Add(w, r, FlashSuccess, msg)
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// actionFailed — ошибка не блокирует страницу и не меняет состояние экрана
func (h *HTTPHandler) actionFailed(w http.ResponseWriter, r *http.Request, err error, fallback, redirect string) {
	if h.backendSessionExpired(w, r, err) {
		return
	}

	msg := domain.UserMessage(err, fallback)
	h.log.WithContext(r.Context()).Warn(logger.Entry{
		Action:     "row_action_failed",
		Message:    err.Error(),
		ResourceID: r.PathValue("id"),
		Additional: map[string]any{
			"path": r.URL.Path,
		},
	})

	if wantsJSON(r) {
		respondJSON(w, errorStatus(err), envelope{Success: false, Message: msg})
		return
	}
	h.flash.Add(w, r, FlashError, msg)
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// handleGuideSuspension обрабатывает POST /guides/{id}/suspension
func (h *HTTPHandler) handleGuideSuspension(w http.ResponseWriter, r *http.Request) {
	body, err := readActionBody(w, r)
	back := backTo(body.ReturnTo, "/guides")
	if err != nil {
		h.actionFailed(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidAction, err), "Invalid request", back)
		return
	}

	id := domain.ID(r.PathValue("id"))
	msg, err := h.uc.SetGuideSuspension.Execute(r.Context(), in.SetGuideSuspensionInput{
		GuideID: id,
		Action:  body.Action,
	})
	if err != nil {
		h.actionFailed(w, r, err, "Failed to update guide status", back)
		return
	}

	// после суспензии страница перезагружает список целиком
	h.actionDone(w, r, msg, map[string]any{"id": id, "action": body.Action, "reload": true}, back)
}

// handleReviewRequest обрабатывает POST /guide-requests/{id}/review
func (h *HTTPHandler) handleReviewRequest(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(r.PathValue("id"))
	detail := "/guide-requests/" + id.String()

	body, err := readActionBody(w, r)
	if err != nil {
		h.actionFailed(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidAction, err), "Invalid request", detail)
		return
	}

	msg, err := h.uc.ReviewRequest.Execute(r.Context(), in.ReviewRequestInput{
		RequestID: id,
		Action:    body.Action,
	})
	if err != nil {
		h.actionFailed(w, r, err, "Failed to process request", detail)
		return
	}

	h.views.Requests.Drop(sessionKey(r))
	h.actionDone(w, r, msg, map[string]any{"id": id, "action": body.Action, "redirect": "/guides"}, "/guides")
}

// handleContactStatus обрабатывает POST /contacts/{id}/status
func (h *HTTPHandler) handleContactStatus(w http.ResponseWriter, r *http.Request) {
	body, err := readActionBody(w, r)
	back := backTo(body.ReturnTo, "/contacts")
	if err != nil {
		h.actionFailed(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidStatus, err), "Invalid request", back)
		return
	}

	out, err := h.uc.UpdateContactStatus.Execute(r.Context(), in.UpdateStatusInput{
		ID:     domain.ID(r.PathValue("id")),
		Status: body.Status,
	})
	if err != nil {
		h.actionFailed(w, r, err, "Failed to update status", back)
		return
	}

	h.views.Contacts.Patch(sessionKey(r),
		func(c domain.ContactMessage) bool { return c.ID == out.ID },
		func(c *domain.ContactMessage) { c.Status = out.Status },
	)
	h.actionDone(w, r, out.Message, out, back)
}

// handleReportStatus обрабатывает POST /reports/{id}/status
func (h *HTTPHandler) handleReportStatus(w http.ResponseWriter, r *http.Request) {
	body, err := readActionBody(w, r)
	back := backTo(body.ReturnTo, "/reports")
	if err != nil {
		h.actionFailed(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidStatus, err), "Invalid request", back)
		return
	}

	out, err := h.uc.UpdateReportStatus.Execute(r.Context(), in.UpdateStatusInput{
		ID:     domain.ID(r.PathValue("id")),
		Status: body.Status,
	})
	if err != nil {
		h.actionFailed(w, r, err, "Failed to update status", back)
		return
	}

	h.views.Reports.Patch(sessionKey(r),
		func(g domain.GuideReport) bool { return g.ID == out.ID },
		func(g *domain.GuideReport) { g.Status = out.Status },
	)
	h.actionDone(w, r, out.Message, out, back)
}
