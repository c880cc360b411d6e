// Package commands describes slash commands shown in the bot menu.
package commands

// Command is a slash command's menu metadata.
type Command struct {
	Description string
	// AdminOnly commands are routed but never listed in the public menu.
	AdminOnly bool
	Hidden    bool
	Aliases   []string
}
