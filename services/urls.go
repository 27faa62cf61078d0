package services

import (
	"fmt"
	"strings"

	"github.com/IliyaMhz/PersonalBlog/config"
)

// GetBaseURL retrieves the public base URL (scheme and host) from configuration.
// An empty result means links are built relative to the host.
func GetBaseURL(cfg map[string]string) string {
	return strings.TrimSuffix(config.GetString(cfg, "BASE_URL", ""), "/")
}

// BuildBlogURL constructs the canonical URL of a single post.
// Parameters:
//   - baseURL: The base URL (e.g., "https://example.com"), may be empty
//   - apiPrefix: The route prefix the API is mounted under (e.g., "/api")
//   - blogID: The post ID
//
// Returns:
//   - The post URL (e.g., "https://example.com/api/blogs/7")
func BuildBlogURL(baseURL, apiPrefix string, blogID int64) string {
	prefix := strings.Trim(apiPrefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return fmt.Sprintf("%s%s/blogs/%d", strings.TrimSuffix(baseURL, "/"), prefix, blogID)
}
