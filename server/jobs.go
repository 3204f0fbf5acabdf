package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kasuboski/gapz/pkg/logger"
	"github.com/kasuboski/gapz/pkg/manager"
	"github.com/kasuboski/gapz/pkg/pagination"
	"github.com/kasuboski/gapz/pkg/storage"
	"go.uber.org/zap"
)

// JobPage is a page of jobs along with the pagination details
type JobPage struct {
	Jobs []manager.JobResponse `json:"jobs"`
	Meta pagination.Meta       `json:"meta"`
}

func (s Server) ListJobs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		params, err := ParsePaginationParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var filter storage.JobFilter
		qp := r.URL.Query()
		if t := qp.Get("type"); t != "" {
			filter.Type = &t
		}
		if st := qp.Get("state"); st != "" {
			state := storage.JobState(st)
			filter.State = &state
		}

		offset, limit := params.CalculateOffsetLimit()
		result, err := s.manager.ListJobs(r.Context(), offset, limit, filter)
		if err != nil {
			log.Errorw("failed to list jobs", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: JobPage{
			Jobs: result.Jobs,
			Meta: params.BuildMeta(result.Count),
		}})
	}
}

func (s Server) TriggerJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		var req manager.TriggerJobRequest
		if err := json.Unmarshal(body, &req); err != nil {
			log.Debugw("invalid request body", zap.ByteString("body", body))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.validate.Struct(req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		job, err := s.manager.TriggerJob(r.Context(), req)
		if err != nil {
			log.Debugw("failed to trigger job", zap.Error(err))
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusCreated, GenericResponse{Response: job})
	}
}

func (s Server) GetJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			http.Error(w, "Invalid job id format", http.StatusBadRequest)
			return
		}

		job, err := s.manager.GetJob(r.Context(), id)
		if err != nil {
			log.Debugw("failed to get job", zap.Error(err), zap.Int64("job_id", id))
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: job})
	}
}

func (s Server) CancelJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			http.Error(w, "Invalid job id format", http.StatusBadRequest)
			return
		}

		job, err := s.manager.CancelJob(r.Context(), id)
		if err != nil {
			log.Errorw("failed to cancel job", zap.Error(err), zap.Int64("job_id", id))
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: job})
	}
}

// statusFor maps manager and storage errors to a response status
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, manager.ErrInvalidJobType):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrJobAlreadyPending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
