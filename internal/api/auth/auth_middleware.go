package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-travel-qa-suggestions/config"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

type contextKey string

const AccountIDKey contextKey = "accountID"

// Authenticate validates bearer tokens and stores the account id in the
// request context.
func Authenticate(logger *slog.Logger, jwtCfg config.JWTConfig) func(next http.Handler) http.Handler {
	secretKey := []byte(jwtCfg.SecretKey)
	if len(secretKey) == 0 {
		logger.Error("FATAL: JWT Secret Key is not configured!")
		panic("JWT Secret Key cannot be empty")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(jwtCfg.Issuer),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header required")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			claims := &types.Claims{}
			token, err := parser.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return secretKey, nil
			})
			if err != nil {
				l.WarnContext(ctx, "Token parsing/validation failed", slog.Any("error", err))
				errMsg := "Invalid or expired token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					errMsg = "Token has expired"
				} else if errors.Is(err, jwt.ErrTokenMalformed) {
					errMsg = "Malformed token"
				} else if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
					errMsg = "Invalid token signature"
				} else if errors.Is(err, jwt.ErrTokenInvalidIssuer) {
					errMsg = "Invalid token issuer"
				}
				api.ErrorResponse(w, r, http.StatusUnauthorized, errMsg)
				return
			}

			if !token.Valid || claims.AccountID <= 0 {
				l.WarnContext(ctx, "Token marked as invalid or carries no account")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}

			if !api.VerifyAudience(claims.Audience, jwtCfg.Audience) {
				l.WarnContext(ctx, "Token audience mismatch", slog.String("expected", jwtCfg.Audience), slog.Any("actual", claims.Audience))
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token audience")
				return
			}

			ctx = context.WithValue(ctx, AccountIDKey, claims.AccountID)
			l.DebugContext(ctx, "Authentication successful", slog.Int64("account_id", claims.AccountID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AccountIDKey).(int64)
	return id, ok
}

// RequireSelf rejects requests whose {param} path id is not the token's
// account. Runs after Authenticate.
func RequireSelf(logger *slog.Logger, param string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			accountID, ok := GetAccountIDFromContext(ctx)
			if !ok {
				logger.ErrorContext(ctx, "Account id missing from context")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}

			pathID, err := api.ParseIDParam(r, param)
			if err != nil {
				api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
				return
			}

			if pathID != accountID {
				logger.WarnContext(ctx, "Account mismatch", slog.Int64("token_account", accountID), slog.Int64("path_account", pathID))
				api.ErrorResponse(w, r, http.StatusForbidden, fmt.Sprintf("%s: account %d", types.ErrForbidden, pathID))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
