package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/types"
)

// ExamHandler provides HTTP handlers for exams.
type ExamHandler struct {
	examService *services.ExamService
}

func NewExamHandler(examService *services.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ExamRouter registers exam routes.
func ExamRouter(r chi.Router, examService *services.ExamService, requireAuth func(http.Handler) http.Handler) {
	handler := NewExamHandler(examService)
	manage := RequireRole(types.RoleSuperAdmin, types.RoleAdmin, types.RoleModerator)

	r.Get("/", handler.List)
	r.With(requireAuth, manage).Post("/", handler.Create)
	r.Route("/{examID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(requireAuth, manage).Put("/", handler.Update)
		r.With(requireAuth, manage).Delete("/", handler.Delete)
	})
}

// ExamView augments the stored record with the effective registration
// state, which also accounts for the registration window.
type ExamView struct {
	types.Exam
	RegistrationOpen bool `json:"registration_open"`
}

func toExamView(exam types.Exam, now time.Time) ExamView {
	return ExamView{Exam: exam, RegistrationOpen: exam.RegistrationOpen(now)}
}

type ExamListResponse struct {
	Items []ExamView `json:"items"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int        `json:"total"`
}

type ExamUpsertRequest struct {
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Banner                string    `json:"banner"`
	RegistrationStartDate time.Time `json:"registration_start_date"`
	RegistrationEndDate   time.Time `json:"registration_end_date"`
	ExamFee               float64   `json:"exam_fee"`
	IsRegistrationOpen    *bool     `json:"is_registration_open"`
	ResultPublished       bool      `json:"result_published"`
	ResultLink            string    `json:"result_link"`
	AnswerBookLink        string    `json:"answer_book_link"`
}

func (req *ExamUpsertRequest) validate() error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" {
		return errRequired("title and description")
	}
	if req.RegistrationStartDate.IsZero() || req.RegistrationEndDate.IsZero() {
		return errRequired("registration start and end dates")
	}
	if req.RegistrationEndDate.Before(req.RegistrationStartDate) {
		return errors.New("registration end date precedes start date")
	}
	if req.ExamFee < 0 {
		return errors.New("exam fee must not be negative")
	}
	return nil
}

func (req *ExamUpsertRequest) toExam(id int) types.Exam {
	// The toggle defaults to open, matching the original site behavior.
	open := true
	if req.IsRegistrationOpen != nil {
		open = *req.IsRegistrationOpen
	}
	return types.Exam{
		ID:                    id,
		Title:                 req.Title,
		Description:           req.Description,
		Banner:                req.Banner,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationEndDate:   req.RegistrationEndDate,
		ExamFee:               req.ExamFee,
		IsRegistrationOpen:    open,
		ResultPublished:       req.ResultPublished,
		ResultLink:            req.ResultLink,
		AnswerBookLink:        req.AnswerBookLink,
	}
}

func (h *ExamHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.examService.List(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, err, "failed to list exams")
		return
	}

	now := time.Now()
	views := make([]ExamView, 0, len(items))
	for _, exam := range items {
		views = append(views, toExamView(exam, now))
	}
	writeJSON(w, http.StatusOK, ExamListResponse{Items: views, Page: page, Limit: limit, Total: total})
}

func (h *ExamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exam, err := h.examService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch exam")
		return
	}

	writeJSON(w, http.StatusOK, toExamView(exam, time.Now()))
}

func (h *ExamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ExamUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.examService.Create(r.Context(), req.toExam(0))
	if err != nil {
		writeServiceError(w, err, "failed to create exam")
		return
	}

	writeJSON(w, http.StatusCreated, toExamView(created, time.Now()))
}

func (h *ExamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ExamUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.examService.Update(r.Context(), req.toExam(id))
	if err != nil {
		writeServiceError(w, err, "failed to update exam")
		return
	}

	writeJSON(w, http.StatusOK, toExamView(updated, time.Now()))
}

func (h *ExamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.examService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete exam")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
