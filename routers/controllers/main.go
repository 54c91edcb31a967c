package controllers

import (
	"encoding/json"
	"errors"
	"fmt"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/logging"
	"github.com/docfold/docfold/pkg/serializer"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/go-playground/validator/v10"
)

// ParamErrorMsg builds a readable message for a failed validation rule.
func ParamErrorMsg(field string, tag string) string {
	tagMap := map[string]string{
		"required": "is required",
		"min":      "is too short",
		"max":      "is too long",
		"oneof":    "has an unknown value",
	}

	if msg, ok := tagMap[tag]; ok {
		return fmt.Sprintf("%s %s", field, msg)
	}
	return ""
}

// ErrorResponse converts binding errors into a response.
func ErrorResponse(err error) serializer.Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, e := range ve {
			return serializer.ParamErr(ParamErrorMsg(e.Field(), e.Tag()), err)
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return serializer.ParamErr("Mismatched JSON type", err)
	}

	return serializer.ParamErr("", err)
}

// CurrentUser returns the acting user of the request.
func CurrentUser(c *gin.Context) *model.User {
	if user, _ := c.Get("user"); user != nil {
		if u, ok := user.(*model.User); ok {
			return u
		}
	}
	return nil
}

// reply writes res, stamped with the correlation ID of the request.
func reply(c *gin.Context, res serializer.Response) {
	if cid := logging.CorrelationID(c.Request.Context()); res.Code != 0 && cid != uuid.Nil {
		res.CorrelationID = cid.String()
	}
	c.JSON(200, res)
}
