package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpingbuddy/forum-api/internal/core/ports"
)

// UserHandler handles profile, topic, and activity reads plus the
// self-service profile update.
type UserHandler struct {
	service ports.ForumService
}

func NewUserHandler(service ports.ForumService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile handles GET /users/:id.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	profile, err := h.service.GetUserProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		User:     toUserResponse(profile.User),
		Rooms:    toRoomResponses(profile.Rooms),
		Messages: toMessageResponses(profile.Messages),
		Topics:   toTopicResponses(profile.Topics),
	})
}

// UpdateProfile handles PUT /users/me. There is no target-id parameter: the
// mutation always applies to the acting identity's own record.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile form"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		RequesterID: userID,
		Username:    req.Username,
		Email:       req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Topics handles GET /topics.
//
// @Summary      List all topics
// @Tags         topics
// @Produce      json
// @Success      200  {array}  topicResponse
// @Router       /topics [get]
func (h *UserHandler) Topics(c echo.Context) error {
	topics, err := h.service.ListTopics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTopicResponses(topics))
}

// Activity handles GET /activity — all messages, newest first.
//
// @Summary      Site-wide activity feed
// @Tags         topics
// @Produce      json
// @Success      200  {array}  messageResponse
// @Router       /activity [get]
func (h *UserHandler) Activity(c echo.Context) error {
	msgs, err := h.service.ListActivity(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponses(msgs))
}
