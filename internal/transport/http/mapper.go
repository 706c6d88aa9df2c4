package http

import (
	"github.com/vovakirdan/hackchat-bot/internal/bot"
	"github.com/vovakirdan/hackchat-bot/internal/core"
)

// MemberDTO is a roster entry in API responses.
type MemberDTO struct {
	Nick string `json:"nick"`
	ID   int64  `json:"userid"`
}

// MembersResponse describes the session and its roster.
type MembersResponse struct {
	Channel   string      `json:"channel"`
	Connected bool        `json:"connected"`
	Self      *MemberDTO  `json:"self,omitempty"`
	Members   []MemberDTO `json:"members"`
}

// ArgDTO describes one command argument.
type ArgDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// CommandDTO describes one registered command.
type CommandDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Args        []ArgDTO `json:"args"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func memberToDTO(m core.Member) MemberDTO {
	return MemberDTO{Nick: m.Nick, ID: m.ID}
}

func commandToDTO(prefix string, cmd *bot.Command) CommandDTO {
	args := make([]ArgDTO, len(cmd.Args))
	for i, a := range cmd.Args {
		args[i] = ArgDTO{Name: a.Name, Description: a.Description, Required: a.Required}
	}
	return CommandDTO{
		Name:        cmd.Name,
		Description: cmd.Description,
		Usage:       cmd.Usage(prefix),
		Args:        args,
	}
}
