package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/vknyazev/passvault/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// PassVault API. It applies request logging, JSON content-type
// enforcement on bodies, permissive CORS (with 204 preflight responses)
// and bearer-token authentication, and mounts all endpoints under /api.
//
// Routes:
//
//	POST   /api/register                              → authHandler.Register
//	POST   /api/login                                 → authHandler.Login
//	GET    /api/vaults                                → vaultHandler.List
//	POST   /api/vaults                                → vaultHandler.Create
//	GET    /api/vaults/{vaultID}/items                → itemHandler.ListByVault
//	POST   /api/vaults/{vaultID}/items                → itemHandler.Create
//	GET    /api/items/{itemID}                        → itemHandler.Get
//	PUT    /api/items/{itemID}                        → itemHandler.Update
//	DELETE /api/items/{itemID}                        → itemHandler.Delete
//	POST   /api/folders                               → folderHandler.Create
//	GET    /api/folders                               → folderHandler.List
//	POST   /api/items/{itemID}/folders/{folderID}     → folderHandler.AddItem
//	DELETE /api/items/{itemID}/folders/{folderID}     → folderHandler.RemoveItem
//	GET    /api/folders/{folderID}/items              → folderHandler.ListItems
//	GET    /api/search                                → itemHandler.Search
//
// Everything except register and login requires a valid bearer token.
// Unmatched routes get a JSON 404 body.
func NewRouter(
	authHandler *AuthHandler,
	vaultHandler *VaultHandler,
	itemHandler *ItemHandler,
	folderHandler *FolderHandler,
	authn middleware.Authenticator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Only allow JSON bodies; requests without a body are unaffected
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(authn))

			r.Get("/vaults", vaultHandler.List)
			r.Post("/vaults", vaultHandler.Create)
			r.Get("/vaults/{vaultID}/items", itemHandler.ListByVault)
			r.Post("/vaults/{vaultID}/items", itemHandler.Create)

			r.Get("/items/{itemID}", itemHandler.Get)
			r.Put("/items/{itemID}", itemHandler.Update)
			r.Delete("/items/{itemID}", itemHandler.Delete)

			r.Post("/folders", folderHandler.Create)
			r.Get("/folders", folderHandler.List)
			r.Post("/items/{itemID}/folders/{folderID}", folderHandler.AddItem)
			r.Delete("/items/{itemID}/folders/{folderID}", folderHandler.RemoveItem)
			r.Get("/folders/{folderID}/items", folderHandler.ListItems)

			r.Get("/search", itemHandler.Search)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})

	// Permissive cross-origin policy; preflight requests get an empty 204.
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	})

	return c.Handler(r)
}
