package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/MahmoudAkram21/um-qura-back/internal/calendar"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// report fields by their JSON / query names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		n := field.Interface().(model.NullableString)
		if n.Value == nil {
			return nil
		}
		return *n.Value
	}, model.NullableString{})
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColor.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("datestr", func(fl validator.FieldLevel) bool {
		_, err := calendar.ParseDate(fl.Field().String())
		return err == nil
	})
}

// BindJSON decodes and validates the request body into dst.
func BindJSON(ctx *gin.Context, dst any) *APIError {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// ParamID reads a positive-looking numeric path parameter.
func ParamID(ctx *gin.Context, name string) (int, *APIError) {
	raw := ctx.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 || strings.HasPrefix(raw, "+") {
		return 0, fieldError(name, "must be a numeric id")
	}
	return id, nil
}

// ListQuery is the shared page/limit query of list endpoints.
type ListQuery struct {
	Page  *int `form:"page"`
	Limit *int `form:"limit"`
}

// ToPage clamps the query into a db.Page with the given default limit.
func (q ListQuery) ToPage(def int) db.Page {
	page, limit := 0, def
	if q.Page != nil {
		page = *q.Page
	}
	if q.Limit != nil {
		// an explicit limit below 1 clamps up instead of taking the default
		limit = max(*q.Limit, 1)
	}
	return db.NewPage(page, limit, def)
}

// BindQuery binds and validates query parameters into dst.
func BindQuery(ctx *gin.Context, dst any) *APIError {
	if err := ctx.ShouldBindQuery(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return validationError(err)
		}
		return &APIError{
			Kind:    KindValidation,
			Message: "Validation failed",
			Fields:  map[string][]string{"query": {"page and limit must be integers"}},
		}
	}
	return nil
}

func fieldError(field, message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: "Validation failed",
		Fields:  map[string][]string{field: {message}},
	}
}

// validationError turns binding failures into a field -> messages map.
func validationError(err error) *APIError {
	var (
		ve        validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &ve):
		fields := map[string][]string{}
		for _, fe := range ve {
			name := fieldPath(fe)
			fields[name] = append(fields[name], describe(fe))
		}
		return &APIError{Kind: KindValidation, Message: "Validation failed", Fields: fields}
	case errors.As(err, &typeErr):
		return fieldError(typeErr.Field, "expected "+typeErr.Type.String())
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fieldError("body", "must be a valid JSON object")
	default:
		return fieldError("body", err.Error())
	}
}

// fieldPath drops the struct name prefix ("createStarRequest.name" -> "name").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "email":
		return "must be a valid email"
	case "hexcolor6":
		return "must be a hex color like #A1B2C3"
	case "datestr":
		return "must be YYYY-MM-DD or an ISO 8601 datetime"
	case "gtefield":
		return "must not be before " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
