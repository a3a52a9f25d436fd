package httpapi

import (
	"net/http"

	"inkwell/internal/adapters/httpapi/middleware"
	"inkwell/internal/core/feed"
	"inkwell/internal/core/pagination"
	"inkwell/internal/metrics"

	"github.com/gin-gonic/gin"
)

type FeedController struct{ fc FeedUseCase }

func NewFeedController(fc FeedUseCase) *FeedController {
	return &FeedController{fc: fc}
}

func requestedPage(c *gin.Context) int {
	return pagination.ParsePage(c.Query("page"))
}

// Index renders the global feed. Its body must not depend on the viewer:
// it is cached per page for every visitor alike.
func (ctl *FeedController) Index(c *gin.Context) {
	page, err := ctl.fc.GetGlobalFeed(c.Request.Context(), requestedPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.FeedRequests.WithLabelValues(string(feed.Global)).Inc()
	c.JSON(http.StatusOK, gin.H{"page_obj": page})
}

func (ctl *FeedController) GroupPosts(c *gin.Context) {
	res, err := ctl.fc.GetGroupFeed(c.Request.Context(), c.Param("slug"), requestedPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.FeedRequests.WithLabelValues(string(feed.Group)).Inc()
	c.JSON(http.StatusOK, res)
}

func (ctl *FeedController) Profile(c *gin.Context) {
	viewerID, _, _ := middleware.CurrentUser(c)
	res, err := ctl.fc.GetProfileFeed(c.Request.Context(), c.Param("username"), viewerID, requestedPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.FeedRequests.WithLabelValues(string(feed.Profile)).Inc()
	c.JSON(http.StatusOK, res)
}

func (ctl *FeedController) FollowIndex(c *gin.Context) {
	viewerID, _, _ := middleware.CurrentUser(c)
	page, err := ctl.fc.GetFollowingFeed(c.Request.Context(), viewerID, requestedPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.FeedRequests.WithLabelValues(string(feed.Following)).Inc()
	c.JSON(http.StatusOK, gin.H{"page_obj": page})
}
