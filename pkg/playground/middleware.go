package playground

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger writes one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		beg := time.Now()
		path := ctx.Request.URL.Path
		method := ctx.Request.Method

		ctx.Next() // do actual processing

		log.WithFields(map[string]interface{}{
			"status":  ctx.Writer.Status(),
			"client":  ctx.ClientIP(),
			"request": ctx.Request.URL,
			"latency": time.Since(beg),
		}).Infof("[%s]: %s %s", "PLAYGROUND", method, path)
	}
}

// cors allows browser front-ends served from other origins.
func cors(origins string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origins)
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}
