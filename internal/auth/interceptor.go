package auth

import (
	"context"

	"connectrpc.com/connect"
	"github.com/sirupsen/logrus"
)

// AuthInterceptor creates a Connect interceptor that requires a verified bearer token
func AuthInterceptor(verifier TokenVerifier, log logrus.FieldLogger) connect.UnaryInterceptorFunc {
	log = log.WithField("component", "auth")
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			// Skip auth for health checks or other public endpoints
			if isPublicEndpoint(req.Spec().Procedure) {
				return next(ctx, req)
			}

			// Claims may already be set by the debug interceptor
			if _, ok := GetUserClaims(ctx); ok {
				return next(ctx, req)
			}

			token, err := ExtractTokenFromHeader(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			claims, err := verifier.VerifyToken(ctx, token)
			if err != nil {
				log.WithError(err).WithField("procedure", req.Spec().Procedure).Debug("token rejected")
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(withUserClaims(ctx, claims), req)
		}
	}
}

// ImpersonateHeader names the header DebugAuthInterceptor reads.
const ImpersonateHeader = "X-Debug-Impersonate-User"

// DebugAuthInterceptor lets a caller act as any user by naming it in
// ImpersonateHeader. It is a no-op unless enabled, which the server only does
// for local or auth-skipping deployments.
func DebugAuthInterceptor(enabled bool) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		if !enabled {
			return next
		}
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if uid := req.Header().Get(ImpersonateHeader); uid != "" {
				ctx = withUserClaims(ctx, &UserClaims{UID: uid, Email: uid + "@debug.local"})
			}
			return next(ctx, req)
		}
	}
}

// publicProcedures skip token verification.
var publicProcedures = map[string]struct{}{
	"/health": {},
}

func isPublicEndpoint(procedure string) bool {
	_, ok := publicProcedures[procedure]
	return ok
}

type claimsKey struct{}

func withUserClaims(ctx context.Context, claims *UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// WithUserClaims attaches claims to ctx as if AuthInterceptor had verified them.
func WithUserClaims(ctx context.Context, claims *UserClaims) context.Context {
	return withUserClaims(ctx, claims)
}

// GetUserClaims returns the claims of the authenticated caller.
func GetUserClaims(ctx context.Context) (*UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*UserClaims)
	return claims, ok && claims != nil
}

// GetUserID returns the UID of the authenticated caller.
func GetUserID(ctx context.Context) (string, bool) {
	claims, ok := GetUserClaims(ctx)
	if !ok {
		return "", false
	}
	return claims.UID, true
}
