package api

import (
	"github.com/go-chi/chi/v5"
)

// setupBlogRoutes mounts the blog endpoints. Static segments are matched
// before {blogID}, so /blogs/search never reaches getBlog.
func setupBlogRoutes(r chi.Router, handlers *routeHandlers) {
	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", handlers.blogHandler.getAllBlogs())
		r.Post("/", handlers.blogHandler.createBlog())
		r.Get("/published", handlers.blogHandler.getPublishedBlogs())
		r.Get("/unpublished", handlers.blogHandler.getUnpublishedBlogs())
		r.Get("/search", handlers.blogHandler.searchBlogs())
		r.Get("/{blogID}", handlers.blogHandler.getBlog())
		r.Put("/{blogID}", handlers.blogHandler.updateBlog())
		r.Delete("/{blogID}", handlers.blogHandler.deleteBlog())
	})
}

// setupOperationalRoutes mounts health and metrics outside the API prefix.
func setupOperationalRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.health())
	r.Method("GET", "/metrics", MetricsHandler())
}
