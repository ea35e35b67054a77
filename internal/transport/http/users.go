package rest

import (
	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/pkg/httpx"
	"github.com/gin-gonic/gin"
)

const msgInvalidUserID = "Invalid user ID"

// userID: id пользователя из пути; false означает, что ответ уже отправлен.
func (h *Handler) userID(c *gin.Context) (int64, bool) {
	id, ok := httpx.PathInt64(c, "id")
	if !ok {
		h.respondError(c, domain.InvalidInput(msgInvalidUserID))
	}
	return id, ok
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.svc.Users.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, "Users retrieved successfully", toUserViews(users))
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	user, err := h.svc.Users.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, "User retrieved successfully", toUserView(user))
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}
	user, err := h.svc.Users.CreateUser(c.Request.Context(), domain.NewUser{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondCreated(c, "User created successfully", toUserView(user))
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}
	user, err := h.svc.Users.UpdateUser(c.Request.Context(), id, req.patch())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, "User updated successfully", toUserView(user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.svc.Users.DeleteUser(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, "User deleted successfully", nil)
}
