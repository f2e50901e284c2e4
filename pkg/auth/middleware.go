// Package auth extracts the caller identity forwarded by the API gateway.
//
// The gateway terminates JWT verification and forwards only the token payload,
// base64-encoded, in the x-jwt-payload header. This service therefore never
// parses credentials; it decodes the payload document and carries the identity
// as an opaque value. No JWT library is involved; there is no signature left
// to check at this hop.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ghuser/auctionsite/pkg/httpx"
	"github.com/ghuser/auctionsite/pkg/logger"
	"github.com/ghuser/auctionsite/services/auction/domain/models"
)

// PayloadHeader is the gateway header carrying the verified JWT payload.
const PayloadHeader = "x-jwt-payload"

// jwtPayload is the decoded header document: subject, display name and the
// user-type discriminator ("0" buyer-or-seller, "1" support).
type jwtPayload struct {
	Sub  string `json:"sub"`
	Name string `json:"name"`
	UTyp string `json:"u_typ"`
}

// DecodeUser decodes the base64 payload into a caller identity.
func DecodeUser(header string) (models.User, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header))
	if err != nil {
		return models.User{}, err
	}

	var p jwtPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.User{}, err
	}

	typ := models.BuyerOrSeller
	if p.UTyp == "1" {
		typ = models.Support
	}
	return models.NewUser(p.Sub, p.Name, typ)
}

// RequireAuth is a chi middleware that enforces authentication via the
// x-jwt-payload header. It decodes the identity and injects it into the
// request context. Returns 401 Unauthorized if the header is missing or
// malformed.
//
// After this middleware, handlers can safely call auth.UserFromCtx(r.Context()).
func RequireAuth(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(PayloadHeader)
			if header == "" {
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			user, err := DecodeUser(header)
			if err != nil {
				log.WarnContext(r.Context(), "invalid jwt payload header", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ctx := WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
