package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/quirelabs/quire/internal/models"
	"github.com/quirelabs/quire/internal/notes"
)

func (s *Shell) execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}

	switch args[0] {
	case "ls":
		return s.handleLs(args[1:])
	case "cd":
		return s.handleCd(args[1:])
	case "pwd":
		fmt.Println(s.mgr.CurrentPath())
		return nil
	case "mkdir":
		return s.handleMkdir(args[1:])
	case "touch":
		return s.handleTouch(args[1:])
	case "edit":
		return s.handleEdit(args[1:])
	case "view":
		return s.handleView(args[1:])
	case "rm":
		return s.handleRm(args[1:])
	case "rmdir":
		return s.handleRmdir(args[1:])
	case "mv":
		return s.handleMv(args[1:])
	case "mvdir":
		return s.handleMvdir(args[1:])
	case "rename":
		return s.handleRename(args[1:])
	case "renamedir":
		return s.handleRenamedir(args[1:])
	case "tag":
		return s.handleTag(args[1:])
	case "untag":
		return s.handleUntag(args[1:])
	case "tags":
		return s.handleTags(args[1:])
	case "search":
		return s.handleSearch(args[1:])
	case "trash":
		return s.handleTrash(args[1:])
	case "restore":
		return s.handleRestore(args[1:])
	case "history":
		return s.handleHistory(args[1:])
	case "revert":
		return s.handleRevert(args[1:])
	case "export":
		return s.handleExport(args[1:])
	case "encrypt":
		return s.handleCrypt(args[1:], true)
	case "decrypt":
		return s.handleCrypt(args[1:], false)
	case "remind":
		return s.handleRemind(args[1:])
	case "color":
		return s.handleColor(args[1:])
	case "attach":
		return s.handleAttach(args[1:])
	case "set":
		return s.handleSet(args[1:])
	case "logs":
		return s.handleLogs(args[1:])
	case "help":
		topic := ""
		if len(args) > 1 {
			topic = args[1]
		}
		s.printHelp(topic)
		return nil
	case "exit", "quit":
		return errExit
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (s *Shell) handleLs(args []string) error {
	folderID := s.mgr.CurrentFolder()
	if len(args) > 0 {
		id, err := s.resolveFolder(args[0])
		if err != nil {
			return err
		}
		folderID = id
	}
	folderNotes, subfolders, err := s.mgr.ListContents(folderID)
	if err != nil {
		return err
	}
	for _, f := range subfolders {
		fmt.Printf("  [%d] %s/\n", f.ID, f.Name)
	}
	for _, n := range folderNotes {
		tags, _ := s.mgr.TagNamesFor(n.ID)
		line := fmt.Sprintf("  [%d] %s", n.ID, n.Title)
		if len(tags) > 0 {
			line += "  #" + strings.Join(tags, " #")
		}
		fmt.Println(line)
	}
	return nil
}

func (s *Shell) handleCd(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cd <path>")
	}
	return s.mgr.ChangeCurrentFolder(args[0])
}

func (s *Shell) handleMkdir(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mkdir <name>")
	}
	id, err := s.mgr.CreateFolder(s.mgr.CurrentFolder(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Created folder %d\n", id)
	return nil
}

func (s *Shell) handleTouch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: touch <title> [content]")
	}
	content := strings.Join(args[1:], " ")
	id, err := s.mgr.CreateNote(s.mgr.CurrentFolder(), args[0], content, nil)
	if err != nil {
		return err
	}
	fmt.Printf("Created note %d\n", id)
	return nil
}

func (s *Shell) handleEdit(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: edit <note>")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	content, err := s.readBody()
	if err != nil {
		return err
	}
	return s.mgr.EditNote(id, content)
}

func (s *Shell) handleView(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: view <note>")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	n, err := s.mgr.Note(id)
	if err != nil {
		return err
	}
	tags, _ := s.mgr.TagNamesFor(id)
	fmt.Printf("# %s\n", n.Title)
	if len(tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(tags, ", "))
	}
	fmt.Printf("Modified: %s  Words: %d  Versions: %d\n",
		n.Modified.Format(time.RFC3339), n.WordCount, len(n.Versions))
	for _, r := range n.Reminders {
		fmt.Printf("Reminder: %s %s\n", r.Due.Format("2006-01-02"), r.Description)
	}
	fmt.Println()
	fmt.Println(n.Content)
	return nil
}

func (s *Shell) handleRm(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rm <note> [--purge]")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	permanent := len(args) > 1 && args[1] == "--purge"
	return s.mgr.DeleteNote(id, permanent)
}

func (s *Shell) handleRmdir(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rmdir <folder> [--purge]")
	}
	id, err := s.resolveFolder(args[0])
	if err != nil {
		return err
	}
	permanent := len(args) > 1 && args[1] == "--purge"
	return s.mgr.DeleteFolder(id, permanent)
}

func (s *Shell) handleMv(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: mv <note> <folder>")
	}
	noteID, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	folderID, err := s.resolveFolder(args[1])
	if err != nil {
		return err
	}
	return s.mgr.MoveNote(noteID, folderID)
}

func (s *Shell) handleMvdir(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: mvdir <folder> <new-parent>")
	}
	folderID, err := s.resolveFolder(args[0])
	if err != nil {
		return err
	}
	parentID, err := s.resolveFolder(args[1])
	if err != nil {
		return err
	}
	return s.mgr.MoveFolder(folderID, parentID)
}

func (s *Shell) handleRename(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rename <note> <new-title>")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	return s.mgr.RenameNote(id, args[1])
}

func (s *Shell) handleRenamedir(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: renamedir <folder> <new-name>")
	}
	id, err := s.resolveFolder(args[0])
	if err != nil {
		return err
	}
	return s.mgr.RenameFolder(id, args[1])
}

func (s *Shell) handleTag(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tag <note> <tag>...")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	for _, t := range args[1:] {
		if err := s.mgr.AddTagToNote(id, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) handleUntag(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: untag <note> <tag>")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	return s.mgr.RemoveTagFromNote(id, args[1])
}

func (s *Shell) handleTags(args []string) error {
	if len(args) == 2 && args[0] == "del" {
		return s.mgr.DeleteTag(args[1])
	}
	for _, t := range s.mgr.ActiveTags() {
		fmt.Printf("  [%d] %s\n", t.ID, t.Name)
	}
	return nil
}

func (s *Shell) handleSearch(args []string) error {
	c := notes.Criteria{Scope: notes.ScopeActive}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--tag":
			if i+1 >= len(args) {
				return fmt.Errorf("--tag needs a value")
			}
			i++
			c.Tags = append(c.Tags, args[i])
		case "--from", "--to":
			if i+1 >= len(args) {
				return fmt.Errorf("%s needs a date (YYYY-MM-DD)", args[i])
			}
			t, err := time.Parse("2006-01-02", args[i+1])
			if err != nil {
				return fmt.Errorf("bad date %q", args[i+1])
			}
			if args[i] == "--from" {
				c.From = t
			} else {
				c.To = t.Add(24*time.Hour - time.Nanosecond)
			}
			i++
		case "--trash":
			c.Scope = notes.ScopeTrash
		case "--all":
			c.Scope = notes.ScopeBoth
		default:
			if c.Keyword != "" {
				c.Keyword += " "
			}
			c.Keyword += args[i]
		}
	}

	hits := s.mgr.Search(c)
	if len(hits) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, n := range hits {
		marker := ""
		if n.Trashed {
			marker = " (trash)"
		}
		fmt.Printf("  [%d] %s%s\n", n.ID, n.Title, marker)
	}
	return nil
}

func (s *Shell) handleTrash(args []string) error {
	if len(args) == 1 && args[0] == "empty" {
		return s.mgr.EmptyTrash()
	}
	trashNotes, trashFolders := s.mgr.TrashContents()
	if len(trashNotes) == 0 && len(trashFolders) == 0 {
		fmt.Println("Trash is empty.")
		return nil
	}
	for _, f := range trashFolders {
		fmt.Printf("  folder [%d] %s/\n", f.ID, f.Name)
	}
	for _, n := range trashNotes {
		fmt.Printf("  note   [%d] %s\n", n.ID, n.Title)
	}
	return nil
}

func (s *Shell) handleRestore(args []string) error {
	if len(args) != 2 || (args[0] != "note" && args[0] != "folder") {
		return fmt.Errorf("usage: restore note|folder <id>")
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad id %q", args[1])
	}
	return s.mgr.RestoreItem(id, args[0] == "note")
}

func (s *Shell) handleHistory(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: history <note>")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	n, err := s.mgr.Note(id)
	if err != nil {
		return err
	}
	if len(n.Versions) == 0 {
		fmt.Println("No previous versions.")
		return nil
	}
	for i, v := range n.Versions {
		preview := v.Content
		if len(preview) > 60 {
			preview = preview[:60] + "..."
		}
		preview = strings.ReplaceAll(preview, "\n", " ")
		fmt.Printf("  [%d] %s  %s\n", i, v.Timestamp.Format(time.RFC3339), preview)
	}
	return nil
}

func (s *Shell) handleRevert(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: revert <note> <index>")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad index %q", args[1])
	}
	return s.mgr.RevertNote(id, index)
}

func (s *Shell) handleExport(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: export <note> <md|json|html> [file]")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	out, err := s.mgr.ExportNote(id, args[1])
	if err != nil {
		return err
	}
	if len(args) < 3 {
		fmt.Println(out)
		return nil
	}
	target := args[2]
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.prefs.Get("export.dir", "."), target)
	}
	if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", target)
	return nil
}

func (s *Shell) handleCrypt(args []string, encrypt bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <note>", map[bool]string{true: "encrypt", false: "decrypt"}[encrypt])
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	key := s.prefs.Get("cipher.key", "")
	if key == "" {
		return fmt.Errorf("no cipher key configured; run: set cipher.key <key>")
	}
	if encrypt {
		return s.mgr.EncryptNote(id, key)
	}
	return s.mgr.DecryptNote(id, key)
}

func (s *Shell) handleRemind(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: remind <note> <YYYY-MM-DD> <description>")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	due, err := time.Parse("2006-01-02", args[1])
	if err != nil {
		return fmt.Errorf("bad date %q", args[1])
	}
	return s.mgr.SetReminder(id, models.Reminder{
		Due:         due,
		Description: strings.Join(args[2:], " "),
	})
}

func (s *Shell) handleColor(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: color <note> <name> [hex] | color <note> none")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	if args[1] == "none" {
		return s.mgr.SetColorLabel(id, nil)
	}
	label := &models.ColorLabel{Name: args[1]}
	if len(args) > 2 {
		label.Hex = args[2]
	}
	return s.mgr.SetColorLabel(id, label)
}

func (s *Shell) handleAttach(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: attach <note> <path>")
	}
	id, err := s.resolveNote(args[0])
	if err != nil {
		return err
	}
	return s.mgr.AttachFile(id, args[1])
}

func (s *Shell) handleSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set <key> <value>")
	}
	s.prefs.Set(args[0], args[1])
	if !s.prefs.Save() {
		fmt.Println("Warning: settings not persisted.")
	}
	return nil
}

func (s *Shell) handleLogs(args []string) error {
	n := 20
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad count %q", args[0])
		}
		n = parsed
	}
	events, err := s.auditDB.Recent(n)
	if err != nil {
		return err
	}
	for _, e := range events {
		fmt.Printf("  %s  %-5s  %s\n", e.At.Format(time.RFC3339), e.Level, e.Message)
	}
	return nil
}
