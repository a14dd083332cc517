package workflow

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/holywrit/ideas/pkg/datauri"
	"github.com/holywrit/ideas/pkg/formatting"
)

// ComposeBody renders the notification text for req.
func ComposeBody(req Request, doc *datauri.URI, filename string) string {
	var b strings.Builder

	b.WriteString("A new idea has been submitted.\n")
	fmt.Fprintf(&b, "Class: %s\n", req.ClassName)

	if hasTeam(req) || req.StudentInfo == "" {
		fmt.Fprintf(&b, "Team Name: %s\n", req.TeamName)
		fmt.Fprintf(&b, "Team Leader: %s\n", req.TeamLeaderName)
		b.WriteString("Team Members:\n")
		b.WriteString(req.TeamMembers)
		b.WriteString("\n")
	}
	if req.StudentInfo != "" {
		b.WriteString("Student:\n")
		b.WriteString(req.StudentInfo)
		b.WriteString("\n")
	}

	b.WriteString("\nThe attached file is included.\n")
	fmt.Fprintf(&b, "Attachment: %s (%s", filename, formatting.FormatBytes(int64(len(doc.Data)), 1))
	if n, ok := pageCount(doc); ok {
		fmt.Fprintf(&b, ", %d pages", n)
	}
	b.WriteString(")\n")

	return b.String()
}

// AttachmentName returns a safe filename for the attachment, deriving one
// from the media type when name is blank.
func AttachmentName(name, mediaType string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, `\`, "/")))
	if name != "" && name != "." && name != ".." && name != "/" {
		return name
	}
	return "submission" + extension(mediaType)
}

func extension(mediaType string) string {
	switch mediaType {
	case "application/pdf":
		return ".pdf"
	case "application/msword":
		return ".doc"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	case "application/vnd.oasis.opendocument.text":
		return ".odt"
	case "application/rtf":
		return ".rtf"
	case "application/vnd.ms-powerpoint":
		return ".ppt"
	case "application/vnd.openxmlformats-officedocument.presentationml.presentation":
		return ".pptx"
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

func hasTeam(req Request) bool {
	return req.TeamName != "" || req.TeamLeaderName != "" || req.TeamMembers != ""
}

// pageCount reads the page count of PDF documents. Malformed PDFs report ok=false.
func pageCount(doc *datauri.URI) (n int, ok bool) {
	if doc.MediaType != "application/pdf" {
		return 0, false
	}
	defer func() {
		if recover() != nil {
			n, ok = 0, false
		}
	}()

	count, err := api.PageCount(bytes.NewReader(doc.Data), nil)
	if err != nil {
		return 0, false
	}
	return count, true
}
