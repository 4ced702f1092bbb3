package middleware

import (
	"github.com/gin-gonic/gin"
)

const viewerContextKey = "telecast.viewer"

// Viewer is the narrow slice of profile context the core consumes: whether
// the caller is authenticated, and which channels are in play for them. The
// core is indifferent to why a channel is filtered.
type Viewer struct {
	Authenticated bool
	AllowChannel  func(channelID string) bool
}

// ChannelAllowed reports whether a channel is in play for this viewer.
// A viewer without a predicate sees everything.
func (v Viewer) ChannelAllowed(channelID string) bool {
	if v.AllowChannel == nil {
		return true
	}
	return v.AllowChannel(channelID)
}

// ViewerResolver maps a request to a Viewer. The real implementation lives
// with the out-of-scope auth/profile system; the default resolver treats a
// request with a user header as authenticated and allows every channel.
type ViewerResolver func(c *gin.Context) Viewer

// DefaultViewerResolver resolves a Viewer from the X-Telecast-User header
func DefaultViewerResolver(c *gin.Context) Viewer {
	return Viewer{
		Authenticated: c.GetHeader("X-Telecast-User") != "",
	}
}

// ViewerContext attaches the resolved Viewer to the request context
func ViewerContext(resolve ViewerResolver) gin.HandlerFunc {
	if resolve == nil {
		resolve = DefaultViewerResolver
	}
	return func(c *gin.Context) {
		c.Set(viewerContextKey, resolve(c))
		c.Next()
	}
}

// ViewerFrom extracts the Viewer from the request context, defaulting to an
// unauthenticated allow-all viewer
func ViewerFrom(c *gin.Context) Viewer {
	if v, ok := c.Get(viewerContextKey); ok {
		if viewer, ok := v.(Viewer); ok {
			return viewer
		}
	}
	return Viewer{}
}
