package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wdream/freelancer-platform/internal/api/metrics"
	"github.com/wdream/freelancer-platform/internal/core/domain"
	"github.com/wdream/freelancer-platform/internal/core/ports"
)

// JobHandler serves job postings and proposal submission.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /api/jobs.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), user.ID, req.toInput())
	if err != nil {
		return err
	}
	metrics.JobsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, jobEnvelope{Success: true, Job: toJobResponse(job)})
}

// List handles GET /api/jobs.
//
// @Summary      List jobs
// @Description  Returns at most 200 jobs, newest first.
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  jobListEnvelope
// @Router       /api/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.JobsListedSize.Observe(float64(len(jobs)))

	return c.JSON(http.StatusOK, jobListEnvelope{Success: true, Count: len(jobs), Jobs: toJobResponses(jobs)})
}

// Mine handles GET /api/jobs/my.
//
// @Summary      List my jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  jobListEnvelope
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/jobs/my [get]
func (h *JobHandler) Mine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	jobs, err := h.service.ListByOwner(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobListEnvelope{Success: true, Count: len(jobs), Jobs: toJobResponses(jobs)})
}

// Get handles GET /api/jobs/:id.
//
// @Summary      Get a job
// @Description  Proposals are expanded in submission order.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  jobDetailEnvelope
// @Failure      404  {object}  ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobDetailEnvelope{Success: true, Job: toJobDetailResponse(detail)})
}

// Update handles PUT /api/jobs/:id.
//
// @Summary      Update a job
// @Description  Only title, description, budget, duration, skills, category and status may be sent.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job ID"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  jobEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	req, err := decodeUpdate(c.Request().Body)
	if err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.service.Update(c.Request().Context(), c.Param("id"), user.ID, req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobEnvelope{Success: true, Job: toJobResponse(job)})
}

// Delete handles DELETE /api/jobs/:id.
//
// @Summary      Delete a job
// @Description  Removes the job and all of its proposals.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	metrics.JobsDeletedTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Job deleted successfully"})
}

// SubmitProposal handles POST /api/jobs/:id/proposals.
//
// @Summary      Submit a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Job ID"
// @Param        body  body      submitProposalRequest  true  "Proposal"
// @Success      201   {object}  proposalEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/jobs/{id}/proposals [post]
func (h *JobHandler) SubmitProposal(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req submitProposalRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	proposal, err := h.service.SubmitProposal(c.Request().Context(), c.Param("id"), user.ID, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrProposalExists) {
			metrics.ProposalsSubmittedTotal.WithLabelValues("duplicate").Inc()
		}
		return err
	}
	metrics.ProposalsSubmittedTotal.WithLabelValues("created").Inc()

	return c.JSON(http.StatusCreated, proposalEnvelope{Success: true, Proposal: toProposalResponse(proposal)})
}

// decodeUpdate reads a partial job update, rejecting keys outside the
// mutable whitelist.
func decodeUpdate(body io.Reader) (updateJobRequest, error) {
	var req updateJobRequest

	raw, err := io.ReadAll(body)
	if err != nil {
		return req, invalidBody()
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return req, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			field = strings.Trim(field, `"`)
			return req, domain.NewValidationError("Field '"+field+"' cannot be updated",
				domain.FieldError{Field: field, Message: "not an updatable field"})
		}
		return req, invalidBody()
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return req, invalidBody()
	}
	return req, nil
}
