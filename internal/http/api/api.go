package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/middleware"
)

const DefaultMessage = "Data retrieved successfully"

// Kind classifies an APIError; the resolver maps it to a status code.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConstraint
	KindRateLimited
)

func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConstraint:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type APIError struct {
	Kind    Kind
	Message string
	// Fields is the per-field message map for validation failures.
	Fields map[string][]string
	// Err is logged, and shown to clients only outside production.
	Err error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func NotFound(message string) *APIError {
	return &APIError{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *APIError {
	return &APIError{Kind: KindAuth, Message: message}
}

func BadRequest(message string) *APIError {
	return &APIError{Kind: KindValidation, Message: message}
}

func Internal(err error) *APIError {
	return &APIError{Kind: KindUnknown, Message: "Internal server error", Err: err}
}

// FromStore translates a store error. notFound is the message used when
// the row does not exist.
func FromStore(err error, notFound string) *APIError {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return NotFound(notFound)
	case errors.Is(err, db.ErrConstraint):
		return &APIError{Kind: KindConstraint, Message: "Constraint violation", Err: err}
	default:
		return Internal(err)
	}
}

// Response lets a handler pick the message and status of a success reply.
type Response struct {
	Status  int
	Message string
	Data    any
}

func OK(message string, data any) Response {
	return Response{Status: http.StatusOK, Message: message, Data: data}
}

func Created(message string, data any) Response {
	return Response{Status: http.StatusCreated, Message: message, Data: data}
}

type HandlerFuncWithAuth func(ctx *gin.Context, admin auth.Claims) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// ResolveEndpointWithAuth runs h for the authenticated admin. With
// production set, internal error text is hidden from 500 responses.
func ResolveEndpointWithAuth(h HandlerFuncWithAuth, production bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		admin, ok := middleware.GetCurrentAdmin(ctx)
		if !ok {
			WriteError(ctx, Unauthorized(middleware.MsgAuthRequired), production)
			return
		}

		result, apiErr := h(ctx, admin)
		if apiErr != nil {
			WriteError(ctx, apiErr, production)
			return
		}
		WriteSuccess(ctx, result)
	}
}

func ResolveEndpoint(h HandlerFunc, production bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			WriteError(ctx, apiErr, production)
			return
		}
		WriteSuccess(ctx, result)
	}
}

// WriteSuccess wraps result in {status: true, message, data}.
func WriteSuccess(ctx *gin.Context, result any) {
	resp, ok := result.(Response)
	if !ok {
		resp = OK(DefaultMessage, result)
	}
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	if resp.Message == "" {
		resp.Message = DefaultMessage
	}
	ctx.JSON(resp.Status, gin.H{"status": true, "message": resp.Message, "data": resp.Data})
}

// WriteError writes {status: false, message, errors?}.
func WriteError(ctx *gin.Context, e *APIError, production bool) {
	status := e.Kind.Status()
	message := e.Message
	if e.Kind == KindUnknown {
		log.Error().Err(e.Err).
			Str("method", ctx.Request.Method).
			Str("path", ctx.FullPath()).
			Msg("request failed")
		if production || e.Err == nil {
			message = "Internal server error"
		} else {
			message = e.Err.Error()
		}
	}

	body := gin.H{"status": false, "message": message}
	if len(e.Fields) > 0 {
		body["errors"] = e.Fields
	}
	ctx.AbortWithStatusJSON(status, body)
}

// Controller is a gin group that resolves endpoint handlers. Plain verbs
// require an authenticated admin; PUBLIC_ verbs do not.
type Controller struct {
	Group      *gin.RouterGroup
	Production bool
}

func (c *Controller) GET(path string, h HandlerFuncWithAuth) {
	c.Group.GET(path, ResolveEndpointWithAuth(h, c.Production))
}

func (c *Controller) POST(path string, h HandlerFuncWithAuth) {
	c.Group.POST(path, ResolveEndpointWithAuth(h, c.Production))
}

func (c *Controller) PUT(path string, h HandlerFuncWithAuth) {
	c.Group.PUT(path, ResolveEndpointWithAuth(h, c.Production))
}

func (c *Controller) PATCH(path string, h HandlerFuncWithAuth) {
	c.Group.PATCH(path, ResolveEndpointWithAuth(h, c.Production))
}

func (c *Controller) DELETE(path string, h HandlerFuncWithAuth) {
	c.Group.DELETE(path, ResolveEndpointWithAuth(h, c.Production))
}

func (c *Controller) PUBLIC_GET(path string, h HandlerFunc) {
	c.Group.GET(path, ResolveEndpoint(h, c.Production))
}

func (c *Controller) PUBLIC_POST(path string, h HandlerFunc) {
	c.Group.POST(path, ResolveEndpoint(h, c.Production))
}
