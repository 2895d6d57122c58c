package middleware

import (
	"github.com/haierkeys/notes-web-client/pkg/app"

	"github.com/gin-gonic/gin"
)

func AppInfo(name, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
