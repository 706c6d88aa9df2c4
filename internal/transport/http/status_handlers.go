package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/hackchat-bot/internal/bot"
	"github.com/vovakirdan/hackchat-bot/internal/core"
)

// SessionView is the read side of a session exposed over HTTP.
type SessionView interface {
	Channel() string
	Connected() bool
	Self() (core.Member, bool)
	Members() []core.Member
	Member(id int64) (core.Member, error)
}

// CommandView is the read side of a bot exposed over HTTP.
type CommandView interface {
	Prefix() string
	Commands() []*bot.Command
	Command(name string) (*bot.Command, error)
}

// StatusHandlers serves roster and command listings.
type StatusHandlers struct {
	session  SessionView
	commands CommandView
	log      *zerolog.Logger
}

// NewStatusHandlers creates a new status handlers instance.
func NewStatusHandlers(session SessionView, commands CommandView, logger *zerolog.Logger) *StatusHandlers {
	return &StatusHandlers{session: session, commands: commands, log: logger}
}

// Members returns the current roster.
// GET /api/members
func (h *StatusHandlers) Members(c *gin.Context) {
	members := h.session.Members()

	resp := MembersResponse{
		Channel:   h.session.Channel(),
		Connected: h.session.Connected(),
		Members:   make([]MemberDTO, len(members)),
	}
	for i, m := range members {
		resp.Members[i] = memberToDTO(m)
	}
	if self, ok := h.session.Self(); ok {
		dto := memberToDTO(self)
		resp.Self = &dto
	}

	c.JSON(http.StatusOK, resp)
}

// Member returns one roster entry.
// GET /api/members/:id
func (h *StatusHandlers) Member(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid member id"})
		return
	}

	m, err := h.session.Member(id)
	if err != nil {
		if errors.Is(err, core.ErrUnknownMember) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "member not found"})
			return
		}
		h.log.Error().Err(err).Int64("userid", id).Msg("failed to look up member")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, memberToDTO(m))
}

// Commands lists registered commands in registration order.
// GET /api/commands
func (h *StatusHandlers) Commands(c *gin.Context) {
	cmds := h.commands.Commands()
	prefix := h.commands.Prefix()

	out := make([]CommandDTO, len(cmds))
	for i, cmd := range cmds {
		out[i] = commandToDTO(prefix, cmd)
	}
	c.JSON(http.StatusOK, out)
}

// Command describes one command.
// GET /api/commands/:name
func (h *StatusHandlers) Command(c *gin.Context) {
	name := c.Param("name")

	cmd, err := h.commands.Command(name)
	if err != nil {
		if errors.Is(err, bot.ErrUnknownCommand) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "command not found"})
			return
		}
		h.log.Error().Err(err).Str("command", name).Msg("failed to look up command")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, commandToDTO(h.commands.Prefix(), cmd))
}
