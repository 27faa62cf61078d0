package api

import (
	"github.com/IliyaMhz/PersonalBlog/database"
	"github.com/IliyaMhz/PersonalBlog/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, router router) *routeHandlers {
	blogService := router.blogService
	if blogService == nil {
		blogService = services.NewBlogService(database.BlogRepo())
	}

	return &routeHandlers{
		blogHandler:   newBlogHandler(blogService, router.blogURL),
		healthHandler: newHealthHandler(database, router.startupTime),
	}
}
