package utils

import (
	"fmt"
	"net/smtp"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/config"
)

// SendWelcomeEmail sends a greeting email after signup
func SendWelcomeEmail(email, userName string) error {
	subject := "Subject: Selamat Datang di Progressia\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Selamat Datang di Progressia!</h2>
					<p style="font-size: 16px; color: #555555;">Halo %s,</p>
					<p style="font-size: 14px; color: #555555;">Akun Anda sudah aktif. Mulai jelajahi katalog kursus dan tetapkan target belajar pertama Anda.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Selamat belajar!</p>
				</div>
			</body>
		</html>
	`, userName)

	return sendMail(email, subject, body)
}

// SendCertificateEmail notifies the user that a certificate was issued
func SendCertificateEmail(email, userName, courseName, certificateNumber string) error {
	subject := "Subject: Sertifikat Kursus Anda Telah Terbit - Progressia\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Selamat, %s!</h2>
					<p style="font-size: 14px; color: #555555;">Anda telah menyelesaikan kursus <b>%s</b>.</p>
					<p style="font-size: 14px; color: #555555;">Nomor sertifikat Anda: <b>%s</b></p>
					<p style="font-size: 14px; color: #555555;">Sertifikat dapat diunduh dari halaman Sertifikat di akun Anda.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Terima kasih telah belajar bersama kami.</p>
				</div>
			</body>
		</html>
	`, userName, courseName, certificateNumber)

	return sendMail(email, subject, body)
}

// SendGoalExpiredEmail reminds the user that a learning goal has expired
func SendGoalExpiredEmail(email, userName, goalTitle string) error {
	subject := "Subject: Target Belajar Anda Telah Berakhir - Progressia\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Halo %s</h2>
					<p style="font-size: 14px; color: #555555;">Target belajar Anda "<b>%s</b>" telah melewati tenggat waktu.</p>
					<p style="font-size: 14px; color: #555555;">Buat target baru untuk menjaga semangat belajar Anda!</p>
				</div>
			</body>
		</html>
	`, userName, goalTitle)

	return sendMail(email, subject, body)
}

func sendMail(to, subject, body string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	if from == "" || password == "" {
		// Email delivery not configured; treat as a no-op
		return nil
	}

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
}
