package lsp

import "tempo/internal/source"

// applyChangesToFile applies incremental or full-document content changes in
// order. Each range is resolved against the document as left by the previous
// change, which is why the file is updated per iteration.
func applyChangesToFile(file *source.File, changes []textDocumentContentChangeEvent) {
	for _, change := range changes {
		if change.Range == nil {
			file.SetContent([]byte(change.Text))
			continue
		}
		start := int(offsetForPositionInFile(file, change.Range.Start))
		end := int(offsetForPositionInFile(file, change.Range.End))
		content := file.Content
		if start > len(content) {
			start = len(content)
		}
		if end < start {
			end = start
		}
		if end > len(content) {
			end = len(content)
		}
		next := make([]byte, 0, len(content)-(end-start)+len(change.Text))
		next = append(next, content[:start]...)
		next = append(next, change.Text...)
		next = append(next, content[end:]...)
		file.SetContent(next)
	}
}
