// Package mail 发送通知邮件
// console 只写日志，sendgrid 通过 SendGrid v3 API 投递
package mail

import (
	"context"
	"fmt"
	"net/http"
	netmail "net/mail"
	"strings"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/logger"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// Message 邮件内容
type Message struct {
	To      []netmail.Address
	Subject string
	Text    string
	HTML    string
}

// HasRecipients 是否有收件人
func (m *Message) HasRecipients() bool {
	return len(m.To) > 0
}

// Mailer 邮件发送接口
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// New 根据配置创建邮件发送器
func New(cfg config.MailConfig) Mailer {
	from := netmail.Address{Name: cfg.FromName, Address: cfg.FromAddress}
	if cfg.Provider == "sendgrid" {
		return NewSendGridMailer(cfg.SendGridAPIKey, from)
	}
	return NewConsoleMailer(from)
}

// Addresses 将邮箱字符串转换为地址列表，无效地址会被跳过
func Addresses(emails ...string) []netmail.Address {
	out := make([]netmail.Address, 0, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		addr, err := netmail.ParseAddress(e)
		if err != nil {
			logger.Warnf("skip invalid email address %q: %v", e, err)
			continue
		}
		out = append(out, *addr)
	}
	return out
}

// ConsoleMailer 把邮件写入日志
type ConsoleMailer struct {
	from netmail.Address

	mu   sync.Mutex
	sent []Message
}

// NewConsoleMailer 创建控制台邮件发送器
func NewConsoleMailer(from netmail.Address) *ConsoleMailer {
	return &ConsoleMailer{from: from}
}

// Send 实现 Mailer
func (m *ConsoleMailer) Send(ctx context.Context, msg *Message) error {
	if !msg.HasRecipients() {
		return nil
	}

	to := make([]string, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, addr.String())
	}
	logger.WithFields(map[string]interface{}{
		"from":    m.from.String(),
		"to":      strings.Join(to, ", "),
		"subject": msg.Subject,
	}).Info(msg.Text)

	m.mu.Lock()
	m.sent = append(m.sent, *msg)
	m.mu.Unlock()
	return nil
}

// Sent 返回已发送邮件的副本
func (m *ConsoleMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// SendGridMailer 通过 SendGrid 发送邮件
type SendGridMailer struct {
	key  string
	from *sgmail.Email
}

// NewSendGridMailer 创建 SendGrid 邮件发送器
func NewSendGridMailer(key string, from netmail.Address) *SendGridMailer {
	return &SendGridMailer{
		key:  key,
		from: sgmail.NewEmail(from.Name, from.Address),
	}
}

// Send 实现 Mailer
func (m *SendGridMailer) Send(ctx context.Context, msg *Message) error {
	if !msg.HasRecipients() {
		return nil
	}

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned %d: %s", res.StatusCode, res.Body)
	}

	logger.WithFields(map[string]interface{}{
		"subject": msg.Subject,
		"status":  res.StatusCode,
	}).Debug("Mail sent via SendGrid")
	return nil
}

func (m *SendGridMailer) prepare(msg *Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail(to.Name, to.Address))
	}

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return v3
}
