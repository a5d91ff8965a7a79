package middleware

import (
	"net/http"

	"go-clinic-scheduling/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// RequireDoctorScope rejects requests whose {doctorId} route variable lies
// outside the caller's visibility filter. Must run after Authenticate.
func RequireDoctorScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentityFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Identity not found")
			return
		}

		raw, present := mux.Vars(r)["doctorId"]
		if !present {
			next.ServeHTTP(w, r)
			return
		}
		doctorID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid doctor ID")
			return
		}

		if !identity.Visibility.Allows(doctorID) {
			response.Forbidden(w, "You don't have access to this doctor")
			return
		}

		next.ServeHTTP(w, r)
	})
}
