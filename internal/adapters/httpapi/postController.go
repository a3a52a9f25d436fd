package httpapi

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"inkwell/internal/adapters/httpapi/middleware"
	"inkwell/internal/core/apperror"
	postPort "inkwell/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc     PostUseCase
	cc     CommentUseCase
	groups GroupUseCase
}

func NewPostController(pc PostUseCase, cc CommentUseCase, groups GroupUseCase) *PostController {
	return &PostController{pc: pc, cc: cc, groups: groups}
}

type postForm struct {
	Text  string `form:"text" json:"text" binding:"required"`
	Group string `form:"group" json:"group" binding:"omitempty,uuid"`
}

type commentForm struct {
	Text string `form:"text" json:"text"`
}

// bindPost reads the post form and its optional image. A validation failure
// has already been answered when ok is false.
func bindPost(c *gin.Context) (in postPort.PostInput, ok bool) {
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindErrors(err).Fields})
		return in, false
	}
	in = postPort.PostInput{Text: form.Text, GroupID: form.Group}

	if fh, err := c.FormFile("image"); err == nil {
		in.Image = imageUpload(fh)
	}
	return in, true
}

func imageUpload(fh *multipart.FileHeader) *postPort.ImageUpload {
	return &postPort.ImageUpload{
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

func (ctl *PostController) formContext(c *gin.Context, isEdit bool) gin.H {
	groups, err := ctl.groups.ListGroups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return nil
	}
	return gin.H{"is_edit": isEdit, "groups": groups}
}

func (ctl *PostController) PostDetail(c *gin.Context) {
	res, err := ctl.pc.GetPostDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) CreateForm(c *gin.Context) {
	if h := ctl.formContext(c, false); h != nil {
		c.JSON(http.StatusOK, h)
	}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	userID, username, _ := middleware.CurrentUser(c)
	in, ok := bindPost(c)
	if !ok {
		return
	}

	if _, err := ctl.pc.CreatePost(c.Request.Context(), userID, in); err != nil {
		if verr, ok := apperror.IsValidation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
			return
		}
		respondError(c, err)
		return
	}
	redirect(c, profileURL(username))
}

func (ctl *PostController) EditForm(c *gin.Context) {
	userID, username, _ := middleware.CurrentUser(c)
	p, err := ctl.pc.GetPostForEdit(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, apperror.ErrForbidden) {
		redirect(c, profileURL(username))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	h := ctl.formContext(c, true)
	if h == nil {
		return
	}
	h["post"] = p
	c.JSON(http.StatusOK, h)
}

// EditPost sends anyone but the author back to their own profile. The
// post and its author are checked before the form is read.
func (ctl *PostController) EditPost(c *gin.Context) {
	userID, username, _ := middleware.CurrentUser(c)
	postID := c.Param("id")

	_, err := ctl.pc.GetPostForEdit(c.Request.Context(), userID, postID)
	if errors.Is(err, apperror.ErrForbidden) {
		redirect(c, profileURL(username))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	in, ok := bindPost(c)
	if !ok {
		return
	}

	_, err = ctl.pc.UpdatePost(c.Request.Context(), userID, postID, in)
	if err != nil {
		if errors.Is(err, apperror.ErrForbidden) {
			redirect(c, profileURL(username))
			return
		}
		if verr, ok := apperror.IsValidation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
			return
		}
		respondError(c, err)
		return
	}
	redirect(c, postURL(postID))
}

// AddComment redirects to the post whether or not the comment was valid.
func (ctl *PostController) AddComment(c *gin.Context) {
	userID, _, _ := middleware.CurrentUser(c)
	postID := c.Param("id")

	var form commentForm
	_ = c.ShouldBind(&form)

	_, err := ctl.cc.AddComment(c.Request.Context(), userID, postID, form.Text)
	if err != nil {
		if _, ok := apperror.IsValidation(err); !ok {
			respondError(c, err)
			return
		}
	}
	redirect(c, postURL(postID))
}
