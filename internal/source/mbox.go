package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
)

// MboxSource reads raw messages from a local mbox archive.
type MboxSource struct {
	Path string
}

// NewMboxSource creates an MboxSource for the given archive path.
func NewMboxSource(path string) *MboxSource {
	return &MboxSource{Path: path}
}

// Read parses the archive into raw messages in archive order. A malformed
// entry degrades to its raw payload as the body instead of failing the
// whole batch; an unreadable file or a failed scan aborts with an error.
func (s *MboxSource) Read() ([]RawMessage, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArchiveNotFound
		}
		return nil, err
	}
	defer file.Close()

	entries, err := splitMbox(file)
	if err != nil {
		return nil, fmt.Errorf("archive read failed: %v", err)
	}

	var messages []RawMessage
	for _, entry := range entries {
		messages = append(messages, parseEntry(entry))
	}
	if len(messages) == 0 {
		return nil, ErrEmptyArchive
	}
	return messages, nil
}

// splitMbox splits an mbox stream into raw RFC 822 entries on "From "
// separator lines, reversing ">From " quoting inside bodies. A scan
// failure mid-stream fails the whole split; a truncated batch must never
// look complete.
func splitMbox(r io.Reader) ([][]byte, error) {
	var entries [][]byte
	var current bytes.Buffer
	inEntry := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "From ") {
			if inEntry && current.Len() > 0 {
				entries = append(entries, append([]byte(nil), current.Bytes()...))
			}
			current.Reset()
			inEntry = true
			continue
		}
		if !inEntry {
			continue
		}
		if strings.HasPrefix(line, ">From ") {
			line = line[1:]
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if inEntry && current.Len() > 0 {
		entries = append(entries, append([]byte(nil), current.Bytes()...))
	}
	return entries, nil
}

// parseEntry decodes one RFC 822 entry into a RawMessage. MIME structure
// and transfer encodings are handled by go-message; a plain net/mail parse
// is the fallback, and the raw payload the last resort.
func parseEntry(raw []byte) RawMessage {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		if m, err := mail.ReadMessage(bytes.NewReader(raw)); err == nil {
			body, _ := io.ReadAll(m.Body)
			return RawMessage{
				Subject: m.Header.Get("Subject"),
				From:    m.Header.Get("From"),
				To:      m.Header.Get("To"),
				Date:    m.Header.Get("Date"),
				Body:    string(body),
			}
		}
		return RawMessage{Body: string(raw)}
	}

	msg := RawMessage{
		Subject: entity.Header.Get("Subject"),
		From:    entity.Header.Get("From"),
		To:      entity.Header.Get("To"),
		Date:    entity.Header.Get("Date"),
	}
	msg.Body = textBody(entity)
	return msg
}

// textBody walks an entity tree and returns the concatenation of every
// text/plain part, falling back to the first text/html part when no plain
// text exists anywhere in the tree.
func textBody(entity *message.Entity) string {
	mediaType, _, _ := entity.Header.ContentType()

	if strings.HasPrefix(mediaType, "multipart/") {
		plain, html := collectText(entity)
		if plain != "" {
			return plain
		}
		return html
	}

	body, _ := io.ReadAll(entity.Body)
	return string(body)
}

// collectText descends a multipart tree. Only text/plain parts contribute
// to the concatenated body; attachments and other types are skipped.
func collectText(entity *message.Entity) (plain, html string) {
	mediaType, _, _ := entity.Header.ContentType()

	if strings.HasPrefix(mediaType, "multipart/") {
		mr := entity.MultipartReader()
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			p, h := collectText(part)
			plain += p
			if html == "" {
				html = h
			}
		}
		return plain, html
	}

	switch mediaType {
	case "text/plain":
		b, _ := io.ReadAll(entity.Body)
		return string(b), ""
	case "text/html":
		b, _ := io.ReadAll(entity.Body)
		return "", string(b)
	}
	return "", ""
}
