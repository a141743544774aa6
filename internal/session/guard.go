package session

import (
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// LoginPath is where guarded navigation redirects signed-out visitors. The
// original destination rides along in the redirect query parameter.
const LoginPath = "/login"

// Decision is the outcome of a navigation guard.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// allow is the passing decision.
var allow = Decision{Allowed: true}

func redirectToLogin(returnTo string) Decision {
	target := LoginPath
	if returnTo != "" {
		target += "?redirect=" + url.QueryEscape(returnTo)
	}
	return Decision{RedirectTo: target}
}

// Guard gates navigation on the locally stored session. It inspects the
// token's claims without verifying the signature; authenticity is the
// backend's concern, the guard only decides what UI to show.
type Guard struct {
	session *Store
	logger  zerolog.Logger
	// now is swappable in tests for expiry checks.
	now func() time.Time
}

// NewGuard returns a guard over the session store.
func NewGuard(session *Store, logger zerolog.Logger) *Guard {
	return &Guard{
		session: session,
		logger:  logger.With().Str("component", "route-guard").Logger(),
		now:     time.Now,
	}
}

// RequireAuth allows navigation when a session token is present, otherwise
// redirects to login carrying the return-to intent.
func (g *Guard) RequireAuth(returnTo string) Decision {
	if g.session.SignedIn() {
		return allow
	}
	g.logger.Debug().Str("return_to", returnTo).Msg("unauthenticated, redirecting to login")
	return redirectToLogin(returnTo)
}

// RequireAdmin additionally requires an unexpired token whose role claim is
// "admin". Malformed tokens are treated as signed-out.
func (g *Guard) RequireAdmin(returnTo string) Decision {
	token := g.session.Token()
	if token == "" {
		return redirectToLogin(returnTo)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		g.logger.Warn().Err(err).Msg("malformed session token")
		return redirectToLogin(returnTo)
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(g.now()) {
		g.logger.Debug().Time("expired_at", exp.Time).Msg("session token expired")
		return redirectToLogin(returnTo)
	}

	if role, _ := claims["role"].(string); role != "admin" {
		g.logger.Warn().Msg("non-admin session attempted admin navigation")
		return redirectToLogin(returnTo)
	}

	return allow
}
