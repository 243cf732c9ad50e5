package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/zonagamer/console/internal/pkg/logger"
)

// PanicRecoveryMiddleware recovers from handler panics so a status request
// can never take the console down with it
func PanicRecoveryMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					handlePanic(c, r)
				}
			}()

			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r interface{}) {
	logger.Error("panic recovered",
		logger.Any("panic_value", r),
		logger.String("panic_type", fmt.Sprintf("%T", r)),
		logger.String("method", c.Request().Method),
		logger.String("path", c.Request().URL.Path),
		logger.String("client_ip", c.RealIP()),
		logger.String("stack_trace", string(debug.Stack())))

	if !c.Response().Committed {
		_ = c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "internal server error",
		})
	}
}
