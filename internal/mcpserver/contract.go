package mcpserver

// NoteFormatContract describes how notes are stored on disk. LLM
// consumers should not try to write these files directly; the tools
// manage them. The contract exists so generated content fits the model.
const NoteFormatContract = `# Quire Note Format Contract

Every note managed by Quire is stored as one Markdown file.

## Structure

` + "```" + `markdown
---
title: Human-readable title        # REQUIRED
tags:                               # OPTIONAL - YAML list of tag names
  - tag-one
  - tag-two
created: 2025-01-15T09:00:00Z       # Set by the manager
modified: 2025-01-20T17:30:00Z      # Set by the manager
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory.** The ` + "`---`" + ` fences must be the first
   thing in the file.
2. **` + "`title`" + ` is required.** Sibling notes within a folder must have
   distinct titles.
3. **File names are derived from the title and the note id**
   (` + "`my-title-42.md`" + `); do not invent paths, the manager assigns them.
4. **Tags** are plain names, matched exactly and case-sensitively.
5. **Encoding** is UTF-8.

## Example

` + "```" + `markdown
---
title: Weekly standup
tags:
  - meeting-notes
created: 2025-01-20T09:00:00Z
modified: 2025-01-20T09:45:00Z
---

# Weekly standup

Attendees: Alice, Bob.
` + "```" + `
`
