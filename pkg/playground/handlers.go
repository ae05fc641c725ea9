package playground

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/diag"
	"tagl/interpreter-go/pkg/driver"
	"tagl/interpreter-go/pkg/interpreter"
	"tagl/interpreter-go/pkg/lexer"
)

// SourceRequest is the JSON body accepted by every pipeline endpoint.
type SourceRequest struct {
	Source              string `json:"source"`
	WordBoundedKeywords bool   `json:"wordBoundedKeywords"`
}

// Response reports the outcome of a pipeline request. User program failures
// are reported with OK false and a 200 status.
type Response struct {
	OK      bool          `json:"ok"`
	Output  []string      `json:"output,omitempty"`
	Value   string        `json:"value,omitempty"`
	Tokens  []lexer.Token `json:"tokens,omitempty"`
	Program *ast.Program  `json:"program,omitempty"`
	Error   *diag.Error   `json:"error,omitempty"`
}

// httpError is the body of a rejected request.
type httpError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func abort(ctx *gin.Context, status int, format string, args ...interface{}) {
	ctx.AbortWithStatusJSON(status, httpError{Status: status, Message: fmt.Sprintf(format, args...)})
}

// DoVersion handles GET /version.
func (s *Server) DoVersion(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, map[string]interface{}{
		"version":  s.Config.Version,
		"git-hash": s.Config.GitHash,
	})
}

// DoRun handles POST /run.
func (s *Server) DoRun(ctx *gin.Context) {
	req, ok := s.bindSource(ctx)
	if !ok {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx.Request.Context(), s.Config.Timeout)
	defer cancel()

	var out bytes.Buffer
	session := s.newSession(runCtx, req, &out)
	res, err := session.Run(req.Source)

	resp := Response{OK: err == nil, Output: splitLines(out.String())}
	if err == nil && res.Value != nil {
		resp.Value = interpreter.ValueToString(res.Value)
	}
	s.reply(ctx, resp, err)
}

// DoCheck handles POST /check.
func (s *Server) DoCheck(ctx *gin.Context) {
	req, ok := s.bindSource(ctx)
	if !ok {
		return
	}
	_, err := s.newSession(ctx.Request.Context(), req, nil).Check(req.Source)
	s.reply(ctx, Response{OK: err == nil}, err)
}

// DoTokens handles POST /tokens.
func (s *Server) DoTokens(ctx *gin.Context) {
	req, ok := s.bindSource(ctx)
	if !ok {
		return
	}
	tokens := s.newSession(ctx.Request.Context(), req, nil).Tokens(req.Source)
	ctx.JSON(http.StatusOK, Response{OK: true, Tokens: tokens})
}

// DoAST handles POST /ast.
func (s *Server) DoAST(ctx *gin.Context) {
	req, ok := s.bindSource(ctx)
	if !ok {
		return
	}
	res, err := s.newSession(ctx.Request.Context(), req, nil).Parse(req.Source)
	resp := Response{OK: err == nil}
	if err == nil {
		resp.Program = res.Program
	}
	s.reply(ctx, resp, err)
}

// DoLoggingLevel handles GET and PUT /logging/level. Query parameters name a
// logger and its new level, e.g. ?driver=debug.
func (s *Server) DoLoggingLevel(ctx *gin.Context) {
	for key, vals := range ctx.Request.URL.Query() {
		for _, level := range vals {
			if err := setLoggingLevel(key, level); err != nil {
				abort(ctx, http.StatusBadRequest, "failed to change logging level: %s", err)
				return
			}
		}
	}

	ctx.JSON(http.StatusOK, map[string]interface{}{
		"playground": GetLogLevel().String(),
		"driver":     driver.GetLogLevel().String(),
	})
}

func setLoggingLevel(logger string, level string) error {
	ll, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse level: %s", err)
	}

	switch strings.ToLower(logger) {
	case "playground":
		SetLogLevel(ll)
	case "driver":
		driver.SetLogLevel(ll)
	default:
		return fmt.Errorf("'%s' is unknown logger name", logger)
	}
	return nil // OK
}

func (s *Server) bindSource(ctx *gin.Context) (SourceRequest, bool) {
	var req SourceRequest

	// JSON escaping can expand the source, so the body gets some headroom.
	limit := 2*s.Config.MaxSourceBytes + 4096
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)

	if err := ctx.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abort(ctx, http.StatusRequestEntityTooLarge, "request body exceeds %d bytes", limit)
			return req, false
		}
		abort(ctx, http.StatusBadRequest, "invalid request: %s", err)
		return req, false
	}
	if int64(len(req.Source)) > s.Config.MaxSourceBytes {
		abort(ctx, http.StatusRequestEntityTooLarge, "source exceeds %d bytes", s.Config.MaxSourceBytes)
		return req, false
	}
	return req, true
}

func (s *Server) newSession(ctx context.Context, req SourceRequest, out *bytes.Buffer) *driver.Session {
	cfg := driver.Config{
		MaxCallDepth: s.Config.MaxCallDepth,
		Context:      ctx,
	}
	cfg.Lexer.WordBoundedKeywords = req.WordBoundedKeywords
	if out != nil {
		cfg.Stdout = out
	} else {
		cfg.Stdout = &bytes.Buffer{}
	}
	return driver.NewSession(cfg)
}

func (s *Server) reply(ctx *gin.Context, resp Response, err error) {
	if err != nil {
		de, ok := diag.As(err)
		if !ok {
			log.WithError(err).Error("unexpected pipeline failure")
			abort(ctx, http.StatusInternalServerError, "%s", err)
			return
		}
		resp.Error = de
	}
	ctx.JSON(http.StatusOK, resp)
}

func splitLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}
