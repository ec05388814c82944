package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"novalib-backend/internal/shared/utils"
)

// Logger emits one structured line per request once the handler chain
// has finished. Server errors log at error level, client errors at
// warn, so failures stand out from routine traffic.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		clientIP := c.GetString("client_ip")
		if clientIP == "" {
			clientIP = c.ClientIP()
		}

		status := c.Writer.Status()
		evt := log.Info()
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		}

		evt.
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("client_ip", clientIP).
			Bool("private_ip", utils.IsPrivateIP(clientIP)).
			Msg("request completed")
	}
}
