package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/vovakirdan/hackchat-bot/internal/markdown"
)

func (b *Bot) help(ctx context.Context, args Args) error {
	if name := args.Get(0); name != "" {
		cmd, err := b.commands.Get(name)
		if err != nil {
			return err
		}
		return b.channel.Send(ctx, CommandHelp(b.prefix, cmd))
	}

	if err := b.channel.Send(ctx, HelpHint(b.prefix)); err != nil {
		return err
	}
	return b.channel.Send(ctx, CommandList(b.commands.List()))
}

// HelpHint tells users how to ask about a single command.
func HelpHint(prefix string) string {
	return "**" + prefix + "help <command>** to get informations about a specific command."
}

// CommandList renders one "- **name**: description" line per command.
func CommandList(cmds []*Command) string {
	lines := make([]string, len(cmds))
	for i, cmd := range cmds {
		lines[i] = "- **" + cmd.Name + "**: " + cmd.Description
	}
	return strings.Join(lines, "\n")
}

// CommandHelp renders the usage line and the argument table of cmd.
func CommandHelp(prefix string, cmd *Command) string {
	rows := make([][]string, len(cmd.Args))
	for i, arg := range cmd.Args {
		rows[i] = []string{arg.Name, arg.Description, strconv.FormatBool(arg.Required)}
	}

	var b strings.Builder
	b.WriteString("---\n# Command **" + cmd.Name + "**\n")
	b.WriteString(cmd.Usage(prefix))
	b.WriteString("\n\n---\n## Arguments\n")
	b.WriteString(markdown.Table([]string{"name", "description", "required"}, rows))
	return b.String()
}
