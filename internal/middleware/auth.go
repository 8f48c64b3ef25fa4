package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Raulcudris/microservices-fargate-demo/internal/client"
	"github.com/Raulcudris/microservices-fargate-demo/internal/policy"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Identity headers injected for downstream services. They are trustworthy
// only while the gateway is the sole entry point into the deployment.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
	HeaderUsername = "X-Username"
)

const bearerPrefix = "Bearer "

// GatewayAuth validates the bearer token against the auth service before a
// request is forwarded, and stamps the verified identity onto it. Every
// failure, from a missing header to an unreachable auth service, is
// answered with 401: the gateway fails closed.
func GatewayAuth(authClient client.AuthClient, routes *policy.Table, log *logrus.Entry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// Whatever identity the client claims, it is not trusted.
			req.Header.Del(HeaderUserID)
			req.Header.Del(HeaderUserRole)
			req.Header.Del(HeaderUsername)

			if routes.Public(req.URL.Path, req.Method) {
				return next(c)
			}

			authHeader := req.Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			token := strings.TrimPrefix(authHeader, bearerPrefix)

			identity, err := authClient.Validate(req.Context(), token, req.URL.Path, req.Method)
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"path":   req.URL.Path,
					"method": req.Method,
				}).Warn("token validation failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			req.Header.Set(HeaderUserID, strconv.FormatUint(uint64(identity.UserID), 10))
			req.Header.Set(HeaderUserRole, identity.Role)
			req.Header.Set(HeaderUsername, identity.Username)

			return next(c)
		}
	}
}
