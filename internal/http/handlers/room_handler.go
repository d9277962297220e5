// Chat room listing.
//
// A "room" is a derived view, one per process the caller has messages in,
// carrying the process display name and the caller's unread count. Nothing
// is stored: the aggregate is computed from recipient entries on demand.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-process-chat/internal/domain"
	"github.com/tbourn/go-process-chat/internal/repo"
	"github.com/tbourn/go-process-chat/internal/utils"
)

// ListRoomsResponse contains the caller's chat rooms ordered by process id.
type ListRoomsResponse struct {
	Rooms []domain.ChatRoom `json:"rooms"`
	// Total is the number of rooms before pagination.
	Total int `json:"total"`
}

// ListRooms godoc
// @ID          listRooms
// @Summary     List the caller's chat rooms
// @Description Returns one entry per process the caller has messages in, with the unread count computed from recipient entries. Supports weak ETag via If-None-Match.
// @Tags        Rooms
// @Produce     json
//
// @Param       X-Actor-ID     header  string  true  "Calling actor ID"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       offset         query   int     false "Pagination offset (default 0)"
// @Param       limit          query   int     false "Pagination limit (default 50, max 200)"
//
// @Success     200  {object} handlers.ListRoomsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /rooms [get]
func (h *Handlers) ListRooms(c *gin.Context) {
	ctx := c.Request.Context()
	aid := actorID(c)

	// ETag from (total entries, read entries): any send, delete, or
	// mark-read for this actor changes at least one of the two.
	if total, read, err := repo.RoomsStats(ctx, h.db, aid); err == nil {
		etag := fmt.Sprintf(`W/"rooms:%s:%d:%d"`, aid, total, read)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	rooms, err := h.chatSvc.ListRooms(ctx, aid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	total := len(rooms)
	start, end := utils.PageBounds(
		utils.AtoiDefault(c.Query("offset"), 0),
		utils.AtoiDefault(c.Query("limit"), 50),
		50, 200, total)
	rooms = rooms[start:end]
	if rooms == nil {
		rooms = []domain.ChatRoom{}
	}

	ok(c, http.StatusOK, ListRoomsResponse{Rooms: rooms, Total: total})
}
