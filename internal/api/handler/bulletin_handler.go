package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seniorlearn/bulletin-api/internal/api/metrics"
	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

// BulletinHandler handles HTTP requests for bulletin operations.
type BulletinHandler struct {
	service ports.BulletinService
}

func NewBulletinHandler(service ports.BulletinService) *BulletinHandler {
	return &BulletinHandler{service: service}
}

// List handles GET /posts.
//
// @Summary      List bulletins
// @Description  Guests may only list official bulletins; member bulletins require a token.
// @Tags         bulletins
// @Produce      json
// @Param        type   query     string  false  "official (default) or member"
// @Param        limit  query     int     false  "page size, default 5, max 50"
// @Success      200    {object}  listPostsResponse
// @Failure      400    {object}  messageResponse
// @Failure      403    {object}  messageResponse
// @Failure      500    {object}  messageResponse
// @Router       /posts [get]
func (h *BulletinHandler) List(c echo.Context) error {
	var q listPostsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	views, err := h.service.ListBulletins(c.Request().Context(), ports.ListBulletinsInput{
		Type:    q.Type,
		Limit:   q.Limit,
		Session: ctxSession(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listPostsResponse{Posts: toPostResponses(views)})
}

// Get handles GET /posts/:id.
//
// @Summary      Get a bulletin
// @Tags         bulletins
// @Produce      json
// @Param        id   path      string  true  "Bulletin id"
// @Success      200  {object}  getPostResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /posts/{id} [get]
func (h *BulletinHandler) Get(c echo.Context) error {
	view, err := h.service.GetBulletin(c.Request().Context(), c.Param("id"), ctxSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, getPostResponse{Post: toPostResponse(*view)})
}

// Create handles POST /createpost.
//
// @Summary      Create a bulletin
// @Tags         bulletins
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createPostRequest  true  "Bulletin"
// @Success      201   {object}  postIDResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /createpost [post]
func (h *BulletinHandler) Create(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.CreateBulletin(c.Request().Context(), session, ports.CreateBulletinInput{
		Title:   req.Title,
		Content: req.Content,
		Type:    req.Type,
	})
	if err != nil {
		observeRejection("create", err)
		return err
	}

	metrics.BulletinMutationsTotal.WithLabelValues(string(domain.ActivityCreated)).Inc()
	return c.JSON(http.StatusCreated, postIDResponse{PostID: id})
}

// Edit handles POST /editpost.
//
// @Summary      Edit a bulletin
// @Description  Only the creator or an admin may edit; only admins may edit official bulletins.
// @Tags         bulletins
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      editPostRequest  true  "Replacement fields"
// @Success      201   {object}  postIDResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /editpost [post]
func (h *BulletinHandler) Edit(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	var req editPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.EditBulletin(c.Request().Context(), session, ports.EditBulletinInput{
		ID:      req.PostID,
		Title:   req.Title,
		Content: req.Content,
		Type:    req.Type,
	})
	if err != nil {
		observeRejection("edit", err)
		return err
	}

	metrics.BulletinMutationsTotal.WithLabelValues(string(domain.ActivityEdited)).Inc()
	return c.JSON(http.StatusCreated, postIDResponse{PostID: id})
}

// Delete handles DELETE /deletepost.
//
// @Summary      Delete a bulletin
// @Tags         bulletins
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        postId  query     string             false  "Bulletin id (alternative to the body)"
// @Param        body    body      deletePostRequest  false  "Bulletin id"
// @Success      200     {object}  messageResponse
// @Failure      400     {object}  messageResponse
// @Failure      403     {object}  messageResponse
// @Failure      404     {object}  messageResponse
// @Router       /deletepost [delete]
func (h *BulletinHandler) Delete(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	var req deletePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.DeleteBulletin(c.Request().Context(), session, req.PostID); err != nil {
		observeRejection("delete", err)
		return err
	}

	metrics.BulletinMutationsTotal.WithLabelValues(string(domain.ActivityDeleted)).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "post deleted"})
}

// Activity handles GET /admin/activity.
//
// @Summary      Recent bulletin activity
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Param        limit  query     int  false  "number of entries, default 20, max 100"
// @Success      200    {object}  listActivityResponse
// @Failure      403    {object}  messageResponse
// @Router       /admin/activity [get]
func (h *BulletinHandler) Activity(c echo.Context) error {
	var q activityQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	items, err := h.service.RecentActivity(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listActivityResponse{Activity: toActivityResponses(items)})
}

func observeRejection(action string, err error) {
	if errors.Is(err, domain.ErrPermission) {
		metrics.BulletinRejectionsTotal.WithLabelValues(action).Inc()
	}
}
