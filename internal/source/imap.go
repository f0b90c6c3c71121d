package source

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/emersion/go-imap"
	id "github.com/emersion/go-imap-id"
	"github.com/emersion/go-imap/client"
)

// IMAPSource reads raw messages from a folder on an IMAP server. It is the
// alternative to a local mbox archive when the notification mailbox is
// still live.
type IMAPSource struct {
	Host     string
	Port     int
	Username string
	Password string
	UseSSL   bool
	// Folder defaults to INBOX.
	Folder string
	// Days limits the fetch to messages since N days ago; 0 fetches all.
	Days int
}

const (
	imapDialTimeout    = 10 * time.Second
	imapCommandTimeout = 5 * time.Minute
	imapFetchBatch     = 10
)

// Read connects, fetches the folder and maps every message to a RawMessage
// in mailbox order.
func (s *IMAPSource) Read() ([]RawMessage, error) {
	c, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	folder := s.Folder
	if folder == "" {
		folder = "INBOX"
	}
	mbox, err := c.Select(folder, true)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %v", folder, err)
	}
	if mbox.Messages == 0 {
		return nil, ErrEmptyArchive
	}

	seqNums := s.search(c, mbox.Messages)
	if len(seqNums) == 0 {
		return nil, ErrEmptyArchive
	}

	var messages []RawMessage
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	for i := 0; i < len(seqNums); i += imapFetchBatch {
		end := i + imapFetchBatch
		if end > len(seqNums) {
			end = len(seqNums)
		}
		seqSet := new(imap.SeqSet)
		seqSet.AddNum(seqNums[i:end]...)

		ch := make(chan *imap.Message, imapFetchBatch)
		done := make(chan error, 1)
		go func() {
			done <- c.Fetch(seqSet, items, ch)
		}()
		for msg := range ch {
			messages = append(messages, s.toRawMessage(msg, section))
		}
		if err := <-done; err != nil {
			return nil, fmt.Errorf("fetch failed: %v", err)
		}
	}
	return messages, nil
}

// connect dials the server, performs the ID handshake for providers that
// require client identification, and logs in.
func (s *IMAPSource) connect() (*client.Client, error) {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	dialer := &net.Dialer{Timeout: imapDialTimeout}

	var c *client.Client
	if s.UseSSL {
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: s.Host})
		if err != nil {
			return nil, fmt.Errorf("imap connection failed: %v", err)
		}
		c, err = client.New(conn)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("imap connection failed: %v", err)
		}
	} else {
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("imap connection failed: %v", err)
		}
		c, err = client.New(conn)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("imap connection failed: %v", err)
		}
	}
	c.Timeout = imapCommandTimeout

	if ok, _ := c.Support("ID"); ok {
		idClient := id.NewClient(c)
		// Some providers reject logins from unidentified clients; a
		// failed ID is not fatal for the rest.
		idClient.ID(id.ID{
			id.FieldName:    "StayLens",
			id.FieldVersion: "1.0.0",
			id.FieldVendor:  "StayLens",
		})
	}

	if err := c.Login(s.Username, s.Password); err != nil {
		c.Logout()
		return nil, fmt.Errorf("imap login failed: %v", err)
	}
	return c, nil
}

// search returns the sequence numbers to fetch, falling back to the whole
// folder when the SINCE search fails.
func (s *IMAPSource) search(c *client.Client, total uint32) []uint32 {
	criteria := imap.NewSearchCriteria()
	if s.Days > 0 {
		since := time.Now().AddDate(0, 0, -s.Days)
		criteria.Since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, time.UTC)
	}
	seqNums, err := c.Search(criteria)
	if err != nil || len(seqNums) == 0 {
		seqNums = make([]uint32, total)
		for i := uint32(1); i <= total; i++ {
			seqNums[i-1] = i
		}
	}
	return seqNums
}

// toRawMessage maps a fetched IMAP message to the archive-entry shape the
// pipeline consumes.
func (s *IMAPSource) toRawMessage(msg *imap.Message, section *imap.BodySectionName) RawMessage {
	raw := RawMessage{}
	if msg.Envelope != nil {
		raw.Subject = msg.Envelope.Subject
		if !msg.Envelope.Date.IsZero() {
			raw.Date = msg.Envelope.Date.Format(time.RFC1123Z)
		}
		if len(msg.Envelope.From) > 0 {
			raw.From = formatAddress(msg.Envelope.From[0])
		}
		if len(msg.Envelope.To) > 0 {
			raw.To = formatAddress(msg.Envelope.To[0])
		}
	}

	if literal := msg.GetBody(section); literal != nil {
		if content, err := io.ReadAll(literal); err == nil {
			parsed := parseEntry(content)
			raw.Body = parsed.Body
			if raw.Subject == "" {
				raw.Subject = parsed.Subject
			}
			if raw.From == "" {
				raw.From = parsed.From
			}
			if raw.To == "" {
				raw.To = parsed.To
			}
			if raw.Date == "" {
				raw.Date = parsed.Date
			}
		}
	}
	return raw
}

// formatAddress renders an IMAP address the way it appears in a header.
func formatAddress(addr *imap.Address) string {
	if addr.PersonalName != "" {
		return fmt.Sprintf("%s <%s@%s>", addr.PersonalName, addr.MailboxName, addr.HostName)
	}
	return fmt.Sprintf("%s@%s", addr.MailboxName, addr.HostName)
}
