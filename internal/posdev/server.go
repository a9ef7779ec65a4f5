package posdev

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
)

// Server wires the dev POS routes. The route shapes, envelope and status
// codes mirror the real POS so the client cannot tell them apart.
type Server struct {
	store  *Store
	secret []byte
}

func NewServer(store *Store, jwtSecret string) *Server {
	return &Server{store: store, secret: []byte(jwtSecret)}
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.auth)

			r.Route("/menu-categories", func(r chi.Router) {
				r.Get("/", s.listCategories)
				r.Post("/", s.createCategory)
				r.Put("/{id}/", s.updateCategory)
				r.Delete("/{id}/", s.deleteCategory)
			})

			r.Route("/menu-items", func(r chi.Router) {
				r.Get("/", s.listMenuItems)
				r.Post("/", s.createMenuItem)
				r.Get("/category/{id}", s.listMenuItemsByCategory)
				r.Put("/{id}/", s.updateMenuItem)
				r.Delete("/{id}/", s.deleteMenuItem)
			})

			r.Route("/menu-item-variants", func(r chi.Router) {
				r.Post("/", s.createVariant)
				r.Get("/menu-item/{id}", s.listVariants)
				r.Put("/{id}", s.updateVariant)
				r.Delete("/{id}", s.deleteVariant)
			})

			r.Get("/payments/grouped/sessions/details", s.paymentReport)
		})
	})

	return router
}

// auth rejects requests without a valid bearer token. The claims are not
// used; this server has exactly one tenant.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return s.secret, nil
		})
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) issueToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(12 * time.Hour).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "

	header := r.Header.Get("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return ""
	}

	return header[len(prefix):]
}
