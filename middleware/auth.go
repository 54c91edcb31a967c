package middleware

import (
	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/hashid"
	"github.com/docfold/docfold/pkg/logging"
	"github.com/docfold/docfold/pkg/serializer"
	"github.com/docfold/docfold/pkg/util"
	"github.com/gin-gonic/gin"
)

// CurrentUser resolves the acting user from the gateway identity header.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(conf.SystemConfig.UserHeader)
		if raw == "" {
			c.Next()
			return
		}

		uid, err := hashid.DecodeHashID(raw, hashid.UserID)
		if err != nil {
			logging.FromContext(c.Request.Context(), util.Log()).Debug("Invalid user header %q: %s", raw, err)
			c.Next()
			return
		}

		user, err := model.GetActiveUserByID(uid)
		if err == nil {
			c.Set("user", &user)
		}

		c.Next()
	}
}

// AuthRequired rejects requests without an acting user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _ := c.Get("user"); user != nil {
			if _, ok := user.(*model.User); ok {
				c.Next()
				return
			}
		}

		c.JSON(200, serializer.CheckLogin())
		c.Abort()
	}
}
