package shell

import "fmt"

func (s *Shell) printHelp(command string) {
	if command == "" {
		fmt.Println("Available commands:")
		for _, cmd := range commandOrder {
			fmt.Printf("  %s\n", cmd)
		}
		fmt.Println("\nUse 'help <command>' for more information about a specific command.")
		return
	}
	if help, ok := commandHelp[command]; ok {
		fmt.Println(help)
		return
	}
	fmt.Printf("Unknown command: %s\n", command)
}

// commandOrder keeps the help listing stable.
var commandOrder = []string{
	"ls", "cd", "pwd", "mkdir", "touch", "edit", "view",
	"rm", "rmdir", "mv", "mvdir", "rename", "renamedir",
	"tag", "untag", "tags", "search",
	"trash", "restore",
	"history", "revert", "export",
	"encrypt", "decrypt", "remind", "attach", "color",
	"set", "logs", "help", "exit",
}

// commandHelp contains help text for each command.
var commandHelp = map[string]string{
	"ls": `Syntax: ls [folder]
Description: Lists the notes and subfolders of the current folder, or of
the given folder (by id or path).`,

	"cd": `Syntax: cd <path>
Description: Changes the current folder. Paths starting with / are
resolved from the root; ".." climbs one level.
Example: cd /projects/ideas`,

	"pwd": `Syntax: pwd
Description: Prints the path of the current folder.`,

	"mkdir": `Syntax: mkdir <name>
Description: Creates a subfolder in the current folder. Sibling folder
names must be unique.`,

	"touch": `Syntax: touch <title> [content]
Description: Creates a note in the current folder. Use quotes for a
title with spaces.
Example: touch "Meeting notes" agenda for monday`,

	"edit": `Syntax: edit <note>
Description: Replaces a note's content. Reads lines until a line
containing only EOF. The previous content is kept in the version
history.`,

	"view": `Syntax: view <note>
Description: Prints a note with its tags, metadata and content. Notes
are addressed by id or by title within the current folder.`,

	"rm": `Syntax: rm <note> [--purge]
Description: Moves a note to the trash. With --purge the note is
removed permanently, including its version history.`,

	"rmdir": `Syntax: rmdir <folder> [--purge]
Description: Moves a folder and everything under it to the trash. With
--purge the subtree is removed permanently.`,

	"mv": `Syntax: mv <note> <folder>
Description: Moves a note into another folder (by id or path).`,

	"mvdir": `Syntax: mvdir <folder> <new-parent>
Description: Moves a folder under a new parent. Moves that would create
a cycle are rejected.`,

	"rename": `Syntax: rename <note> <new-title>
Description: Changes a note's title; the backing file is renamed to
match.`,

	"renamedir": `Syntax: renamedir <folder> <new-name>
Description: Renames a folder. The root cannot be renamed.`,

	"tag": `Syntax: tag <note> <tag>...
Description: Attaches one or more tags to a note, creating tags that do
not exist yet.`,

	"untag": `Syntax: untag <note> <tag>
Description: Detaches a tag from a note.`,

	"tags": `Syntax: tags [del <name>]
Description: Lists the tags in use in the active tree, or deletes a tag
from the table and from every note referencing it.`,

	"search": `Syntax: search [keyword...] [--tag <t>]... [--from <date>] [--to <date>] [--trash|--all]
Description: Searches notes. The keyword is a case-sensitive substring
matched against titles and content; every --tag must be present; dates
bound the modification time (inclusive). By default only the active
tree is searched.
Example: search budget --tag finance --from 2025-01-01`,

	"trash": `Syntax: trash [empty]
Description: Lists the items in the trash, or empties it permanently.`,

	"restore": `Syntax: restore note|folder <id>
Description: Moves a trashed item back to where it was deleted from.
Fails if the original parent is gone or the name is taken.`,

	"history": `Syntax: history <note>
Description: Lists a note's version history, oldest first.`,

	"revert": `Syntax: revert <note> <index>
Description: Restores a note's content from a history snapshot. The
content being replaced is snapshotted as well.`,

	"export": `Syntax: export <note> <md|json|html> [file]
Description: Renders a note in the given format. Without a file the
result is printed; relative file names land in the export.dir setting.`,

	"encrypt": `Syntax: encrypt <note>
Description: Encrypts a note's content with the cipher.key setting.`,

	"decrypt": `Syntax: decrypt <note>
Description: Decrypts a note encrypted with the same key.`,

	"remind": `Syntax: remind <note> <YYYY-MM-DD> <description>
Description: Attaches a reminder to a note.`,

	"attach": `Syntax: attach <note> <path>
Description: Records a file attachment reference on a note.`,

	"color": `Syntax: color <note> <name> [hex] | color <note> none
Description: Sets or clears a note's color label.
Example: color 3 urgent "#ff0000"`,

	"set": `Syntax: set <key> <value>
Description: Stores a user setting (export.dir, cipher.key, ...).`,

	"logs": `Syntax: logs [n]
Description: Shows the newest n entries of the operation log (default 20).`,

	"help": `Syntax: help [command]
Description: Shows this listing, or help for one command.`,

	"exit": `Syntax: exit
Description: Leaves the shell.`,
}
