package httpapi

import (
	"errors"
	"net/http"

	"inkwell/internal/adapters/httpapi/middleware"
	"inkwell/internal/core/apperror"

	"github.com/gin-gonic/gin"
)

type FollowController struct{ fc FollowUseCase }

func NewFollowController(fc FollowUseCase) *FollowController {
	return &FollowController{fc: fc}
}

// Follow always lands back on the profile; following yourself or someone you
// already follow changes nothing.
func (ctl *FollowController) Follow(c *gin.Context) {
	userID, _, _ := middleware.CurrentUser(c)
	username := c.Param("username")

	err := ctl.fc.FollowUser(c.Request.Context(), userID, username)
	if err != nil && !errors.Is(err, apperror.ErrSelfFollow) {
		respondError(c, err)
		return
	}
	redirect(c, profileURL(username))
}

func (ctl *FollowController) Unfollow(c *gin.Context) {
	userID, _, _ := middleware.CurrentUser(c)
	username := c.Param("username")

	if err := ctl.fc.UnfollowUser(c.Request.Context(), userID, username); err != nil {
		respondError(c, err)
		return
	}
	redirect(c, profileURL(username))
}

func (ctl *FollowController) Followers(c *gin.Context) {
	followers, err := ctl.fc.GetFollowersByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

func (ctl *FollowController) Following(c *gin.Context) {
	following, err := ctl.fc.GetFollowingByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}
