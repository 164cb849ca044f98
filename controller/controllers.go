// api/controller/controllers.go
package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sage_errors "github.com/sagelms/sage/api/errors"
	"github.com/sagelms/sage/api/util"
)

// Controllers aggregates all API controllers
type Controllers struct {
	Auth   *AuthController
	AI     *AIController
	Course *CourseController
	Audit  *AuditController
}

func NewControllers(auth *AuthController, ai *AIController, course *CourseController, auditCtrl *AuditController) *Controllers {
	return &Controllers{
		Auth:   auth,
		AI:     ai,
		Course: course,
		Audit:  auditCtrl,
	}
}

// respondWithOperationError maps a service error to the HTTP status for its
// kind: invalid input 400, forbidden 403, missing resource 404, upstream
// failure 502, anything else 500.
func respondWithOperationError(c *gin.Context, err error, fallback string) {
	switch {
	case stderrors.Is(err, sage_errors.ErrInvalidInput):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid input", err)
	case stderrors.Is(err, sage_errors.ErrForbidden):
		util.RespondWithError(c, http.StatusForbidden, err.Error(), err)
	case stderrors.Is(err, sage_errors.ErrCourseNotFound),
		stderrors.Is(err, sage_errors.ErrLectureNotFound),
		stderrors.Is(err, sage_errors.ErrSubmissionNotFound):
		util.RespondWithError(c, http.StatusNotFound, err.Error(), err)
	case stderrors.Is(err, sage_errors.ErrUpstream):
		util.RespondWithError(c, http.StatusBadGateway, "Upstream service unavailable", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
