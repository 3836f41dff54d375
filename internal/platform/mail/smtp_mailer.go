// Package mail はSMTP経由のメール送信を提供します。
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"chirusapo_backend/internal/feature/account/domain/entity"
	"chirusapo_backend/internal/feature/account/usecase"
)

// SMTPMailer はusecase.MailerのSMTP実装です。
// ポート465のImplicit TLSで接続します。
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// SMTPMailerがMailerを実装していることをコンパイル時に検証します。
var _ usecase.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer はSMTPMailerの新しいインスタンスを生成します。
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	if from == "" {
		from = username
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendPasswordReset は再発行した仮パスワードをアカウントのメールアドレスへ送信します。
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, account *entity.Account, tempPassword string) error {
	subject := "【ちるさぽ】パスワード再設定のお知らせ"
	body := fmt.Sprintf(
		"%s様<br><br>"+
			"パスワードの再設定を受け付けました。<br>"+
			"新しい仮パスワードは以下の通りです。<br><br>"+
			"仮パスワード: %s<br><br>"+
			"ログイン後、パスワードの変更をお願いいたします。<br>"+
			"このメールに心当たりがない場合は破棄してください。",
		account.UserName, tempPassword,
	)
	return m.send(ctx, account.Email, subject, body)
}

// send はHTMLメールを1通送信します。
func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := []byte(
		fmt.Sprintf("From: %s\r\n", m.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	addr := m.host + ":" + m.port

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.Mail(m.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
