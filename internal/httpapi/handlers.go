package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/novapath/trident/internal/assessment"
	"github.com/novapath/trident/internal/guidance"
	"github.com/novapath/trident/internal/identity"
	"github.com/novapath/trident/internal/report"
	"github.com/novapath/trident/internal/session"
)

type startRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type answerRequest struct {
	Value *int `json:"value" binding:"required"`
}

type scaleView struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

type questionView struct {
	Section string    `json:"section"`
	Trait   string    `json:"trait"`
	Number  int       `json:"number"`
	Text    string    `json:"text"`
	Scale   scaleView `json:"scale"`
}

type sessionView struct {
	Key      string        `json:"key"`
	RunID    string        `json:"run_id"`
	Answered int           `json:"answered"`
	Total    int           `json:"total"`
	Complete bool          `json:"complete"`
	Question *questionView `json:"question,omitempty"`
}

type reportView struct {
	*report.Summary
	Guidance *guidance.Guidance `json:"guidance,omitempty"`
}

type errorView struct {
	Error   string       `json:"error"`
	Session *sessionView `json:"session,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStart(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorView{Error: "user_id is required"})
		return
	}
	sess, err := s.opts.Sessions.Start(c.Request.Context(), req.UserID)
	if err != nil {
		s.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, s.view(sess))
}

func (s *Server) handleGet(c *gin.Context) {
	sess, err := s.opts.Sessions.Lookup(c.Request.Context(), c.Param("key"))
	if err != nil {
		s.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, s.view(sess))
}

func (s *Server) handleAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorView{Error: "value is required"})
		return
	}
	sess, err := s.opts.Sessions.AnswerKey(c.Request.Context(), c.Param("key"), *req.Value)
	if err != nil {
		s.fail(c, err, sess)
		return
	}
	c.JSON(http.StatusOK, s.view(sess))
}

func (s *Server) handleReset(c *gin.Context) {
	sess, err := s.opts.Sessions.ResetKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		s.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, s.view(sess))
}

func (s *Server) handleReport(c *gin.Context) {
	topN := s.opts.TopN
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, errorView{Error: "top must be a non-negative integer"})
			return
		}
		topN = n
	}

	ctx := c.Request.Context()
	sess, err := s.opts.Sessions.Lookup(ctx, c.Param("key"))
	if err != nil {
		s.fail(c, err, nil)
		return
	}
	sum, err := s.opts.Sessions.Summary(sess, topN)
	if err != nil {
		s.fail(c, err, sess)
		return
	}

	out := reportView{Summary: sum}
	if s.opts.Guidance != nil {
		g, err := s.opts.Guidance.Generate(ctx, sum)
		if err != nil {
			s.fail(c, err, nil)
			return
		}
		out.Guidance = g
	}
	c.JSON(http.StatusOK, out)
}

// view renders the session and its current question.
func (s *Server) view(sess *session.Session) *sessionView {
	v := &sessionView{
		Key:      sess.Key,
		RunID:    sess.RunID,
		Answered: sess.Answered(),
		Total:    sess.Total(),
		Complete: sess.Complete(),
	}
	if v.Complete {
		return v
	}
	pos, err := sess.Current()
	if err != nil {
		s.logger.Warn("current question", zap.String("user_key", sess.Key), zap.Error(err))
		return v
	}
	v.Question = &questionView{
		Section: pos.Section,
		Trait:   pos.Trait,
		Number:  pos.Number,
		Text:    pos.Question,
		Scale: scaleView{
			Min:     assessment.MinAnswer,
			Max:     assessment.MaxAnswer,
			Default: assessment.DefaultAnswer,
		},
	}
	return v
}

// fail maps domain errors to status codes. sess, when known, is echoed so
// clients can re-prompt without another round trip.
func (s *Server) fail(c *gin.Context, err error, sess *session.Session) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, identity.ErrEmptyIdentifier):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, assessment.ErrInvalidAnswer):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, assessment.ErrComplete),
		errors.Is(err, assessment.ErrIncomplete),
		errors.Is(err, assessment.ErrOutOfRange),
		errors.Is(err, session.ErrSeedMismatch):
		status = http.StatusConflict
	}

	body := errorView{Error: err.Error()}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("route", c.FullPath()), zap.Error(err))
		body.Error = "internal error"
	}
	if sess != nil && status != http.StatusInternalServerError {
		body.Session = s.view(sess)
	}
	c.JSON(status, body)
}
